package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts a full-screen program and returns its final model.
func Run(model tea.Model) (tea.Model, error) {
	return tea.NewProgram(model, tea.WithAltScreen()).Run()
}

// ProgressDisplay prints one-line status updates.
// Symbols are only used when the session is interactive.
type ProgressDisplay struct {
	out     io.Writer
	symbols bool
}

// NewProgressDisplay creates a ProgressDisplay writing to out.
func NewProgressDisplay(out io.Writer) *ProgressDisplay {
	return &ProgressDisplay{out: out, symbols: IsInteractive()}
}

func (p *ProgressDisplay) Start(message string) {
	p.line(SymbolArrowRight, "", message)
}

func (p *ProgressDisplay) Success(message string) {
	p.line(SuccessStyle.Render(SymbolCheck), "OK", message)
}

func (p *ProgressDisplay) Error(message string) {
	p.line(ErrorStyle.Render(SymbolCross), "ERROR", message)
}

func (p *ProgressDisplay) line(symbol, plain, message string) {
	switch {
	case p.symbols:
		fmt.Fprintf(p.out, "%s %s\n", symbol, message)
	case plain != "":
		fmt.Fprintf(p.out, "%s: %s\n", plain, message)
	default:
		fmt.Fprintln(p.out, message)
	}
}
