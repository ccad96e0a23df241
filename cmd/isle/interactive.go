package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/archipelab/isle/island"
)

var helpStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#666666"))

type evolveMsg struct {
	champion float64
	err      error
}

type tuiModel struct {
	cfg      runConfig
	isl      *island.Island
	prog     progress.Model
	gen      uint
	initial  float64
	champion float64
	err      error
	done     bool
}

func runInteractive(cfg runConfig) error {
	ctx := context.Background()

	isl, cleanup, err := cfg.build(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	champ, err := isl.Population().Champion()
	if err != nil {
		return err
	}

	m := tuiModel{
		cfg:      cfg,
		isl:      isl,
		prog:     progress.New(progress.WithDefaultGradient()),
		initial:  champ.F[0],
		champion: champ.F[0],
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(tuiModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

func (m tuiModel) evolveOnce() tea.Cmd {
	return func() tea.Msg {
		if err := m.isl.Evolve(context.Background(), 1); err != nil {
			return evolveMsg{err: err}
		}
		champ, err := m.isl.Population().Champion()
		if err != nil {
			return evolveMsg{err: err}
		}
		return evolveMsg{champion: champ.F[0]}
	}
}

func (m tuiModel) Init() tea.Cmd {
	return m.evolveOnce()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil

	case evolveMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.gen++
		m.champion = msg.champion
		if m.gen >= m.cfg.gens {
			m.done = true
			return m, tea.Quit
		}
		return m, m.evolveOnce()

	case tea.WindowSizeMsg:
		m.prog.Width = msg.Width - 8
		if m.prog.Width > 60 {
			m.prog.Width = 60
		}
		return m, nil
	}

	return m, nil
}

func (m tuiModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("isle evolution monitor"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s %s on %s\n",
		labelStyle.Render(m.isl.Name()),
		valueStyle.Render(m.isl.Algorithm().Name()),
		valueStyle.Render(m.isl.Population().Problem().Name())))

	percent := float64(m.gen) / float64(m.cfg.gens)
	b.WriteString(fmt.Sprintf("\n  %s %d/%d\n", m.prog.ViewAs(percent), m.gen, m.cfg.gens))

	b.WriteString(fmt.Sprintf("\n%s %s\n",
		labelStyle.Render("Initial champion:"),
		valueStyle.Render(fmt.Sprintf("%.10f", m.initial))))
	b.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render("Current champion:"),
		valueStyle.Render(fmt.Sprintf("%.10f", m.champion))))

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n")
	} else if m.done {
		b.WriteString("\n" + valueStyle.Render("Done.") + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("q: quit") + "\n")
	return b.String()
}
