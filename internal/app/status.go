package app

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// step writes a "<label> " progress line and returns the completion
// function that finishes it with "done." or "error.".
func (a *App) step(label string) func(error) {
	fmt.Fprint(a.outW, headerStyle.Render(label)+" ")
	return func(err error) {
		if err != nil {
			fmt.Fprintln(a.outW, errorStyle.Render("error."))
			return
		}
		fmt.Fprintln(a.outW, doneStyle.Render("done."))
	}
}
