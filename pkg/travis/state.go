package travis

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleWaiting  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleRunning  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	stylePassed   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleFailed   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleCanceled = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// JobState classifies an API job state string for display: a one-character
// glyph, whether the job is still going, and a color.
type JobState struct {
	Glyph   string
	Running bool

	style lipgloss.Style
}

// ClassifyState maps a Travis job state to its display classification.
// Unrecognized states are an error so that new API states surface loudly
// instead of rendering as something misleading.
func ClassifyState(state string) (JobState, error) {
	switch state {
	case "", "queued", "created", "received":
		return JobState{Glyph: "*", Running: true, style: styleWaiting}, nil
	case "started", "running":
		return JobState{Glyph: "*", Running: true, style: styleRunning}, nil
	case "passed":
		return JobState{Glyph: "P", style: stylePassed}, nil
	case "failed":
		return JobState{Glyph: "X", style: styleFailed}, nil
	case "errored":
		return JobState{Glyph: "!", style: styleFailed}, nil
	case "canceled":
		return JobState{Glyph: "X", style: styleCanceled}, nil
	default:
		return JobState{}, fmt.Errorf("unknown job state: %q", state)
	}
}

// Render colorizes one status line according to the state.
func (s JobState) Render(line string) string {
	return s.style.Render(line)
}
