// Package wizard holds the four-question form as a state machine, independent of
// how it is rendered.
package wizard

import (
	"context"
	"strings"

	"github.com/HammerMeetNail/microstartup/internal/models"
)

type Step int

const (
	StepTimeCommitment Step = iota + 1
	StepInterests
	StepDesiredIncome
	StepSkills
)

const StepCount = 4

type Phase int

const (
	PhaseEditing Phase = iota
	PhaseLoading
	PhaseDone
	PhaseExited
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseLoading:
		return "loading"
	case PhaseDone:
		return "done"
	case PhaseExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Prompt is the copy shown for a step.
type Prompt struct {
	Title       string
	Hint        string
	Label       string
	Placeholder string
}

var prompts = map[Step]Prompt{
	StepTimeCommitment: {
		Title:       "How much time can you dedicate?",
		Hint:        "Be realistic about your weekly availability",
		Label:       "Hours per week",
		Placeholder: "e.g., 5-10 hours",
	},
	StepInterests: {
		Title:       "What are your interests?",
		Hint:        "Tell us about your hobbies, passions, or areas of expertise",
		Label:       "Interests & Hobbies",
		Placeholder: "e.g., cooking, fitness, photography, gaming, writing...",
	},
	StepDesiredIncome: {
		Title:       "What's your income goal?",
		Hint:        "How much would you like to earn monthly from this venture?",
		Label:       "Monthly income target",
		Placeholder: "e.g., $500, $1000, $5000",
	},
	StepSkills: {
		Title:       "What skills do you have?",
		Hint:        "List your current skills, tools, or experience",
		Label:       "Skills & Tools",
		Placeholder: "e.g., video editing, social media, writing, design, programming...",
	},
}

func (s Step) Prompt() Prompt {
	return prompts[s]
}

// Generator turns complete answers into an idea. It must not fail.
type Generator interface {
	Generate(ctx context.Context, answers models.FormAnswers) models.StartupIdea
}

// Flow walks the user through the steps in order. Next is refused until the
// current answer has non-whitespace content, and the last step submits instead.
type Flow struct {
	step      Step
	phase     Phase
	answers   models.FormAnswers
	idea      *models.StartupIdea
	generator Generator
	onExit    func()
	onResult  func(models.StartupIdea)
}

// New starts a flow at step 1. onExit runs when the user backs out of step 1;
// onResult receives the generated idea. Either may be nil.
func New(generator Generator, onExit func(), onResult func(models.StartupIdea)) *Flow {
	return &Flow{
		step:      StepTimeCommitment,
		phase:     PhaseEditing,
		generator: generator,
		onExit:    onExit,
		onResult:  onResult,
	}
}

func (f *Flow) Step() Step                  { return f.step }
func (f *Flow) Phase() Phase                { return f.phase }
func (f *Flow) Loading() bool               { return f.phase == PhaseLoading }
func (f *Flow) Answers() models.FormAnswers { return f.answers }

// Idea returns the generated idea once the flow is done.
func (f *Flow) Idea() (models.StartupIdea, bool) {
	if f.idea == nil {
		return models.StartupIdea{}, false
	}
	return *f.idea, true
}

func (f *Flow) field(step Step) *string {
	switch step {
	case StepTimeCommitment:
		return &f.answers.TimeCommitment
	case StepInterests:
		return &f.answers.Interests
	case StepDesiredIncome:
		return &f.answers.DesiredIncome
	case StepSkills:
		return &f.answers.Skills
	default:
		return nil
	}
}

// SetValue records the answer for the current step. Ignored unless editing.
func (f *Flow) SetValue(value string) {
	if f.phase != PhaseEditing {
		return
	}
	if p := f.field(f.step); p != nil {
		*p = value
	}
}

func (f *Flow) Value() string {
	return f.ValueAt(f.step)
}

func (f *Flow) ValueAt(step Step) string {
	if p := f.field(step); p != nil {
		return *p
	}
	return ""
}

func (f *Flow) IsStepValid() bool {
	return strings.TrimSpace(f.Value()) != ""
}

func (f *Flow) CanAdvance() bool {
	return f.phase == PhaseEditing && f.step < StepSkills && f.IsStepValid()
}

func (f *Flow) CanSubmit() bool {
	return f.phase == PhaseEditing && f.step == StepSkills && f.answers.Complete()
}

// Next moves forward one step and reports whether it did.
func (f *Flow) Next() bool {
	if !f.CanAdvance() {
		return false
	}
	f.step++
	return true
}

// Previous moves back one step. From step 1 it leaves the flow through onExit.
func (f *Flow) Previous() bool {
	if f.phase != PhaseEditing {
		return false
	}
	if f.step == StepTimeCommitment {
		f.phase = PhaseExited
		if f.onExit != nil {
			f.onExit()
		}
		return true
	}
	f.step--
	return true
}

// BeginSubmit enters the loading phase and returns the answers to generate from.
// UIs that generate asynchronously call Complete when the idea arrives.
func (f *Flow) BeginSubmit() (models.FormAnswers, bool) {
	if !f.CanSubmit() {
		return models.FormAnswers{}, false
	}
	f.phase = PhaseLoading
	return f.answers, true
}

// Complete finishes a submission started with BeginSubmit.
func (f *Flow) Complete(idea models.StartupIdea) bool {
	if f.phase != PhaseLoading {
		return false
	}
	idea.Normalize()
	f.idea = &idea
	f.phase = PhaseDone
	if f.onResult != nil {
		f.onResult(idea)
	}
	return true
}

// Submit generates synchronously and hands the idea to onResult.
func (f *Flow) Submit(ctx context.Context) (models.StartupIdea, bool) {
	answers, ok := f.BeginSubmit()
	if !ok {
		return models.StartupIdea{}, false
	}
	idea := f.generator.Generate(ctx, answers)
	f.Complete(idea)
	return idea, true
}
