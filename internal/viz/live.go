// Package viz renders a live terminal view of a running FTLE computation.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/george9932/LCS-FTLE-Optimized/internal/pipeline"
	"github.com/george9932/LCS-FTLE-Optimized/internal/simparams"
)

const historyCapacity = 600

// ProgressMsg carries one pipeline progress update into the TUI.
type ProgressMsg pipeline.Progress

// DoneMsg signals the computation finished.
type DoneMsg struct{ Err error }

type tickMsg time.Time

// Model is the bubbletea model for the live compute view.
type Model struct {
	params *simparams.Params

	phase   string
	step    int
	total   int
	t0      float64
	maxHist []float64
	start   time.Time
	done    bool
	err     error
}

func NewModel(params *simparams.Params) Model {
	return Model{
		params:  params,
		maxHist: make([]float64, 0, historyCapacity),
		start:   time.Now(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		if m.done {
			return m, nil
		}
		return m, tick()
	case ProgressMsg:
		m.phase = msg.Phase
		m.step = msg.Step
		m.total = msg.Total
		m.t0 = msg.T0
		if msg.Phase == pipeline.PhaseCompose {
			if len(m.maxHist) == historyCapacity {
				m.maxHist = m.maxHist[1:]
			}
			m.maxHist = append(m.maxHist, msg.MaxFTLE)
		}
		return m, nil
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	title := fmt.Sprintf("%s FTLE computation", m.params.Direction)
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	phase := m.phase
	if phase == "" {
		phase = "starting"
	}
	row("phase", phase)
	if m.total > 0 {
		row("step", fmt.Sprintf("[%d/%d] t = %s", m.step, m.total, m.params.FormatTime(m.t0)))
	}
	row("elapsed", time.Since(m.start).Truncate(100*time.Millisecond).String())

	if len(m.maxHist) >= 2 {
		chart := asciigraph.Plot(m.maxHist,
			asciigraph.Height(6),
			asciigraph.Width(50),
			asciigraph.Caption("max FTLE per step"),
		)
		b.WriteString(graphStyle.Render(chart))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	out := panelStyle.Render(b.String())
	return out + helpStyle.Render("\nq to quit") + "\n"
}

// Err returns the computation error, if any, after the program exits.
func (m Model) Err() error { return m.err }
