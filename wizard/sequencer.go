package wizard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCannotProceed = errors.New("required fields are missing")
	ErrUnknownStep   = errors.New("step is not on the current path")
)

type Step int

const (
	StepEventType Step = iota
	StepPackage
	StepAddOns
	StepServices
	StepGuestCount
	StepVenue
	StepBudget
	StepDate
)

var stepNames = map[Step]string{
	StepEventType:  "event_type",
	StepPackage:    "package",
	StepAddOns:     "add_ons",
	StepServices:   "services",
	StepGuestCount: "guest_count",
	StepVenue:      "venue",
	StepBudget:     "budget",
	StepDate:       "date",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

var (
	packagePath   = []Step{StepEventType, StepPackage, StepAddOns, StepVenue, StepDate}
	noPackagePath = []Step{StepEventType, StepPackage, StepServices, StepGuestCount, StepVenue, StepBudget, StepDate}
)

// Path returns the ordered steps the wizard visits for the given form.
func Path(form *FormState) []Step {
	if form.HasPackage() {
		return packagePath
	}
	return noPackagePath
}

// CanProceed reports whether the fields required by step are filled in.
func CanProceed(step Step, form *FormState) bool {
	switch step {
	case StepEventType:
		return form.ResolvedType() != ""
	case StepPackage, StepAddOns, StepServices:
		return true
	case StepGuestCount:
		return strings.TrimSpace(form.GuestCount) != ""
	case StepVenue:
		return form.HasVenue != nil
	case StepBudget:
		return strings.TrimSpace(form.Budget) != ""
	case StepDate:
		return form.DateFlexible || (strings.TrimSpace(form.Date) != "" && strings.TrimSpace(form.Time) != "")
	}
	return false
}

// Sequencer walks a form through its steps. The path is re-read from the form on every call, so
// selecting or clearing a package on the package step switches branches immediately.
type Sequencer struct {
	form    *FormState
	current Step
}

func NewSequencer(form *FormState) *Sequencer {
	return &Sequencer{form: form, current: StepEventType}
}

func (s *Sequencer) Form() *FormState { return s.form }
func (s *Sequencer) Current() Step    { return s.current }
func (s *Sequencer) Total() int       { return len(Path(s.form)) }

// Number is the 1-based position of the current step on the active path.
func (s *Sequencer) Number() int {
	return s.index() + 1
}

func (s *Sequencer) IsLastStep() bool {
	return s.Number() == s.Total()
}

func (s *Sequencer) CanProceed() bool {
	return CanProceed(s.current, s.form)
}

// Next advances one step. At the last step it stays put; submission is the caller's move.
func (s *Sequencer) Next() error {
	if !s.CanProceed() {
		return fmt.Errorf("%s: %w", s.current, ErrCannotProceed)
	}
	path := Path(s.form)
	if i := s.index(); i+1 < len(path) {
		s.current = path[i+1]
	}
	return nil
}

// Back moves one step back and reports whether it moved.
func (s *Sequencer) Back() bool {
	i := s.index()
	if i == 0 {
		return false
	}
	s.current = Path(s.form)[i-1]
	return true
}

// Goto positions the sequencer at a 1-based step number of the active path.
func (s *Sequencer) Goto(number int) error {
	path := Path(s.form)
	if number < 1 || number > len(path) {
		return fmt.Errorf("step %d of %d: %w", number, len(path), ErrUnknownStep)
	}
	s.current = path[number-1]
	return nil
}

// Reset clears the form and returns to the first step.
func (s *Sequencer) Reset() {
	s.form.Reset()
	s.current = StepEventType
}

// index locates the current step on the active path. A step left behind by a branch switch maps to the
// first later step that is still on the path.
func (s *Sequencer) index() int {
	path := Path(s.form)
	for i, step := range path {
		if step >= s.current {
			return i
		}
	}
	return len(path) - 1
}

// Complete checks every step of the active path and names the first one that cannot proceed.
func Complete(form *FormState) error {
	for _, step := range Path(form) {
		if !CanProceed(step, form) {
			return fmt.Errorf("%s: %w", step, ErrCannotProceed)
		}
	}
	return nil
}

// EvaluateInput asks how the wizard renders Form at Step (1-based).
type EvaluateInput struct {
	Form FormState `json:"form"`
	Step int       `json:"step" validate:"required,min=1,max=7"`
}

type Evaluation struct {
	Step       string   `json:"step"`
	Number     int      `json:"number"`
	Total      int      `json:"total"`
	CanProceed bool     `json:"canProceed"`
	IsLastStep bool     `json:"isLastStep"`
	Path       []string `json:"path"`
}

// Evaluate reports how the wizard renders the given form at step number.
func Evaluate(form FormState, number int) (Evaluation, error) {
	seq := NewSequencer(&form)
	if err := seq.Goto(number); err != nil {
		return Evaluation{}, err
	}
	path := Path(&form)
	names := make([]string, len(path))
	for i, step := range path {
		names[i] = step.String()
	}
	return Evaluation{
		Step:       seq.Current().String(),
		Number:     seq.Number(),
		Total:      seq.Total(),
		CanProceed: seq.CanProceed(),
		IsLastStep: seq.IsLastStep(),
		Path:       names,
	}, nil
}
