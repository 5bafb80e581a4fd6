// Copyright ©2024 The LEAC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kortschak/leac/runstate"
)

// tickMsg drives the progress viewer's playback of an already-completed
// run history, one recorded generation per tick (the demo runs a driver to
// completion and then replays its history, rather than wiring a live
// progress channel through every driver's generation loop).
type tickMsg time.Time

const tickInterval = 30 * time.Millisecond

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	statStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var quitKey = key.NewBinding(
	key.WithKeys("q", "ctrl+c", "esc"),
	key.WithHelp("q", "quit"),
)

// progressModel replays a completed runstate.History, one generation per
// tick, showing the best/mean/min/max objective curve as a simple bar.
type progressModel struct {
	driver string
	hist   []runstate.Generation
	idx    int
	width  int
	done   bool
}

func newProgressModel(driver string, h runstate.History) progressModel {
	return progressModel{driver: driver, hist: h.Records, width: 60}
}

func (m progressModel) Init() tea.Cmd {
	if len(m.hist) == 0 {
		return tea.Quit
	}
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

//nolint:ireturn // bubbletea requires returning the tea.Model interface
func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 20 {
			m.width = msg.Width - 10
		}
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, quitKey) {
			return m, tea.Quit
		}
		return m, nil
	case tickMsg:
		if m.done {
			return m, nil
		}
		if m.idx >= len(m.hist)-1 {
			m.done = true
			return m, nil
		}
		m.idx++
		return m, tick()
	}
	return m, nil
}

func (m progressModel) View() string {
	if len(m.hist) == 0 {
		return "no history recorded\n"
	}
	g := m.hist[m.idx]
	first := m.hist[0]

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("leac-cluster — %s driver", m.driver)))
	sb.WriteString("\n\n")
	sb.WriteString(barStyle.Render(objectiveBar(g.Best, first.Best, m.width)))
	sb.WriteString("\n\n")
	sb.WriteString(statStyle.Render(fmt.Sprintf(
		"generation %d/%d   best %.6g   mean %.6g   stdev %.6g   min %.6g   max %.6g",
		g.Index, m.hist[len(m.hist)-1].Index, g.Best, g.Mean, g.StdDev, g.Min, g.Max,
	)))
	sb.WriteString("\n\n")
	if m.done {
		sb.WriteString(helpStyle.Render("run complete — press q to exit"))
	} else {
		sb.WriteString(helpStyle.Render("replaying recorded generations — press q to exit"))
	}
	sb.WriteString("\n")
	return sb.String()
}

// objectiveBar draws a left-to-right bar whose fill fraction tracks how far
// best has fallen from the first generation's best (minimization: lower is
// better, so a fuller bar means more progress).
func objectiveBar(best, startBest float64, width int) string {
	if width < 10 {
		width = 10
	}
	frac := 0.0
	if startBest > 0 {
		frac = 1 - best/startBest
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

// RunProgressTUI replays h's recorded generations in a bubbletea program,
// blocking until the user quits.
func RunProgressTUI(driver string, h runstate.History) error {
	p := tea.NewProgram(newProgressModel(driver, h), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
