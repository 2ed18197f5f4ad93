// Package ui renders reduction progress for the swiftreduce CLI, styled
// after codeNERD's brand palette.
package ui

import (
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	barFilled   = lipgloss.Color("#8BC34A") // Lime Green, codeNERD accent
	barEmpty    = lipgloss.Color("#2a3850")
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f2f2f2")).Bold(true)
	fractionSty = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))

	barWidth = 40
)

// progressMsg carries one progress report into the bubbletea loop.
type progressMsg struct {
	fraction float64
	message  string
}

type doneMsg struct{}

type model struct {
	title    string
	fraction float64
	message  string
	done     bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.fraction = msg.fraction
		m.message = msg.message
		return m, nil
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	filled := int(m.fraction * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	bar := lipgloss.NewStyle().Foreground(barFilled).Render(strings.Repeat("#", filled)) +
		lipgloss.NewStyle().Foreground(barEmpty).Render(strings.Repeat("-", barWidth-filled))

	return fmt.Sprintf("%s [%s] %s  %s\n",
		labelStyle.Render(m.title), bar, fractionSty.Render(fmt.Sprintf("%5.1f%%", m.fraction*100)), m.message)
}

// ProgressProgram drives a bubbletea program showing reduction progress,
// fed by Report calls from driver.Run's progress callback.
type ProgressProgram struct {
	program  *tea.Program
	done     chan struct{}
	stopOnce sync.Once
}

// NewProgressProgram builds (but does not start) a progress display.
func NewProgressProgram(title string) *ProgressProgram {
	p := tea.NewProgram(model{title: title})
	return &ProgressProgram{program: p, done: make(chan struct{})}
}

// Start runs the bubbletea event loop in the background.
func (pp *ProgressProgram) Start() {
	go func() {
		_, _ = pp.program.Run()
		close(pp.done)
	}()
}

// Report feeds one progress update into the program; suitable for use
// directly as a driver.ProgressFunc.
func (pp *ProgressProgram) Report(fraction float64, message string) {
	pp.program.Send(progressMsg{fraction: fraction, message: message})
}

// Stop signals completion and waits for the event loop to exit. Safe to
// call more than once.
func (pp *ProgressProgram) Stop() {
	pp.stopOnce.Do(func() {
		pp.program.Send(doneMsg{})
		<-pp.done
	})
}
