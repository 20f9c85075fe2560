package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/HammerMeetNail/microstartup/internal/client"
	"github.com/HammerMeetNail/microstartup/internal/generation"
	"github.com/HammerMeetNail/microstartup/internal/logging"
	"github.com/HammerMeetNail/microstartup/internal/models"
	"github.com/HammerMeetNail/microstartup/internal/tui"
)

type rootOptions struct {
	configPath string
	logFile    string
	verbose    bool
}

// runProgram is swapped in tests so commands never take over the terminal.
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "startup",
		Short: "Generate micro-startup ideas from four questions",
		Long: `startup asks how much time you have, what you are into, what you want
to earn and what you can already do, then proposes a small business you can
start this week. Ideas are saved to your account.

Run without arguments to open the interactive menu.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to startup.yaml")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newInteractiveCmd("new", "Answer the four questions and generate an idea", opts, tui.StartInWizard()),
		newInteractiveCmd("history", "Browse and delete your saved ideas", opts, tui.StartInHistory()),
		newGenerateCmd(opts),
	)
	return root
}

func newInteractiveCmd(use, short string, opts *rootOptions, start tui.Option) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts, start)
		},
	}
}

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var answers models.FormAnswers

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one idea without the interactive form and print it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !answers.Complete() {
				return fmt.Errorf("all four answers are required: --time-commitment, --interests, --desired-income, --skills")
			}

			c, closeLog, err := setup(cmd, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			orchestrator := generation.New(c, generation.WithLogger(logging.Default))
			idea := orchestrator.Generate(cmd.Context(), answers)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(idea)
		},
	}

	cmd.Flags().StringVar(&answers.TimeCommitment, "time-commitment", "", "hours per week, e.g. \"5-10 hours\"")
	cmd.Flags().StringVar(&answers.Interests, "interests", "", "hobbies or areas of expertise")
	cmd.Flags().StringVar(&answers.DesiredIncome, "desired-income", "", "monthly income target, e.g. \"$1000\"")
	cmd.Flags().StringVar(&answers.Skills, "skills", "", "skills, tools or experience")
	return cmd
}

func runInteractive(cmd *cobra.Command, opts *rootOptions, start ...tui.Option) error {
	// Anything written to the terminal would corrupt the UI.
	c, closeLog, err := setup(cmd, opts, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	orchestrator := generation.New(c, generation.WithLogger(logging.Default))
	return runProgram(tui.NewApp(cmd.Context(), c, orchestrator, start...))
}

// setup loads the client config and points the default logger at the log file,
// or at fallback when none was given.
func setup(cmd *cobra.Command, opts *rootOptions, fallback io.Writer) (*client.Client, func(), error) {
	cfg, err := client.LoadConfig(opts.configPath)
	if err != nil {
		return nil, nil, err
	}

	closeLog := func() {}
	out := fallback
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = f
		closeLog = func() { _ = f.Close() }
	}
	logging.Default.SetOutput(out)
	if opts.verbose {
		logging.SetDefaultLevel(logging.LevelDebug)
	}

	logging.Default.Debug("Client configured", map[string]interface{}{
		"base_url":  cfg.BaseURL,
		"signed_in": strings.TrimSpace(cfg.AccessToken) != "",
		"command":   cmd.Name(),
	})
	return client.New(cfg), closeLog, nil
}
