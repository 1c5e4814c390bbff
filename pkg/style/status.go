package style

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Status is the state of one materialization step
type Status string

const (
	StatusDone    Status = "done"    // step ran
	StatusPlanned Status = "planned" // step will run (dry run)
	StatusSkipped Status = "skipped" // step is switched off
	StatusFailed  Status = "failed"  // step stopped the run
	StatusNotRun  Status = "not run" // step after a failure
)

// StepKind names what a step does
type StepKind string

const (
	StepWrite    StepKind = "write"
	StepCopy     StepKind = "copy"
	StepGit      StepKind = "git"
	StepRegister StepKind = "register"
	StepSync     StepKind = "sync"
)

// StepVerbs holds past and future tense verbs for each step kind
var StepVerbs = map[StepKind]struct {
	Past   string
	Future string
}{
	StepWrite:    {Past: "written", Future: "will be written"},
	StepCopy:     {Past: "copied from", Future: "will be copied from"},
	StepGit:      {Past: "ran", Future: "will run"},
	StepRegister: {Past: "added to", Future: "will be added to"},
	StepSync:     {Past: "ran", Future: "will run"},
}

// StatusStyle returns the pterm style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusDone:
		return pterm.NewStyle(pterm.FgGreen)
	case StatusPlanned:
		return pterm.NewStyle(pterm.FgYellow)
	case StatusFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Step is one line of a plan or result listing
type Step struct {
	Kind   StepKind
	Target string // file path relative to the project, or a command line
	Status Status
	Detail string // template source, workspace root, and so on
}

// StepMessage returns the uncoloured verb phrase for a step
func StepMessage(s Step) string {
	var msg string
	verbs, ok := StepVerbs[s.Kind]
	switch {
	case s.Status == StatusSkipped:
		return "skipped"
	case s.Status == StatusNotRun:
		return "not run"
	case s.Status == StatusFailed:
		msg = fmt.Sprintf("failed to %s", s.Kind)
	case !ok:
		msg = string(s.Status)
	case s.Status == StatusDone:
		msg = verbs.Past
	default:
		msg = verbs.Future
	}
	if s.Detail != "" {
		msg += " " + s.Detail
	}
	return msg
}

// RenderStep renders a single step line
func RenderStep(s Step) string {
	kind := StatusStyle(s.Status).Sprint(fmt.Sprintf("%-8s", s.Kind))
	return fmt.Sprintf("    %s : %-24s : %s", kind, s.Target, StepMessage(s))
}
