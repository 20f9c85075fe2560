package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/HammerMeetNail/microstartup/internal/models"
	"github.com/HammerMeetNail/microstartup/internal/tui"
)

func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "startup.yaml")
	body := fmt.Sprintf("base_url: %s\nanon_key: anon\naccess_token: token\ntimeout: 5s\n", baseURL)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerateCommandPrintsIdea(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/functions/v1/generate-startup-idea" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"name":"Trail Tales","concept":"c","monetization":"m","toolsNeeded":["Canva"],"mvpPlan":["Day 1"]}`))
	}))
	defer ts.Close()

	out, err := execute(t, "--config", writeConfig(t, ts.URL), "generate",
		"--time-commitment", "5 hours",
		"--interests", "hiking",
		"--desired-income", "$500",
		"--skills", "writing",
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var idea models.StartupIdea
	if err := json.Unmarshal([]byte(out), &idea); err != nil {
		t.Fatalf("output is not an idea: %v\n%s", err, out)
	}
	if idea.Name != "Trail Tales" {
		t.Errorf("name = %q", idea.Name)
	}
}

func TestGenerateCommandRequiresAllAnswers(t *testing.T) {
	_, err := execute(t, "generate", "--interests", "hiking")
	if err == nil || !strings.Contains(err.Error(), "all four answers are required") {
		t.Fatalf("expected missing answers error, got %v", err)
	}
}

func TestGenerateCommandRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "startup.yaml")
	if err := os.WriteFile(path, []byte("base_url: http://localhost:1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STARTUP_ANON_KEY", "")

	_, err := execute(t, "--config", path, "generate",
		"--time-commitment", "5 hours", "--interests", "hiking",
		"--desired-income", "$500", "--skills", "writing",
	)
	if err == nil || !strings.Contains(err.Error(), "anon_key") {
		t.Fatalf("expected anon_key error, got %v", err)
	}
}

func TestInteractiveCommandsStartProgram(t *testing.T) {
	orig := runProgram
	t.Cleanup(func() { runProgram = orig })

	for _, args := range [][]string{{}, {"new"}, {"history"}} {
		t.Run(strings.Join(append([]string{"startup"}, args...), " "), func(t *testing.T) {
			var got tea.Model
			runProgram = func(m tea.Model) error {
				got = m
				return nil
			}

			all := append([]string{"--config", writeConfig(t, "http://localhost:1")}, args...)
			if _, err := execute(t, all...); err != nil {
				t.Fatalf("execute: %v", err)
			}
			if _, ok := got.(*tui.App); !ok {
				t.Fatalf("expected *tui.App, got %T", got)
			}
		})
	}
}

func TestLogFileReceivesLogs(t *testing.T) {
	orig := runProgram
	t.Cleanup(func() { runProgram = orig })
	runProgram = func(tea.Model) error { return nil }

	logPath := filepath.Join(t.TempDir(), "startup.log")
	if _, err := execute(t, "--config", writeConfig(t, "http://localhost:1"), "--log-file", logPath, "--verbose", "history"); err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "Client configured") {
		t.Errorf("log file missing debug entry: %s", data)
	}
}
