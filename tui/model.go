package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/moyu-x/forganize/pkg/organizer"
)

type State int

const (
	StatePreparing State = iota
	StateMoving
	StateStopping
	StateComplete
)

type model struct {
	state       State
	cancel      context.CancelFunc
	done        int
	total       int
	currentFile string
	progressBar progress.Model
	spinner     spinner.Model

	outcome *organizer.Outcome
	err     error
}

func newModel(cancel context.CancelFunc) model {
	progressBar := progress.New(progress.WithDefaultGradient())
	progressBar.PercentageStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Width(4)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		state:       StatePreparing,
		cancel:      cancel,
		progressBar: progressBar,
		spinner:     s,
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && m.state != StateComplete {
			if m.cancel != nil {
				m.cancel()
			}
			m.state = StateStopping
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.progressBar.Width = min(max(msg.Width-10, 10), 80)
		return m, nil

	case progressMsg:
		if m.state != StateStopping {
			m.state = StateMoving
		}
		m.done = msg.Done
		m.total = msg.Total
		m.currentFile = msg.Current
		return m, nil

	case doneMsg:
		m.state = StateComplete
		m.outcome = msg.outcome
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	switch m.state {
	case StatePreparing:
		b.WriteString(m.spinner.View() + " " + titleStyle.Render("正在扫描和分类...") + "\n")
	case StateMoving, StateStopping:
		b.WriteString(titleStyle.Render("📦 正在整理文件") + "\n")
		b.WriteString(m.progressBar.ViewAs(m.percent()) + "\n")
		b.WriteString(fmt.Sprintf("%d/%d  ", m.done, m.total))
		b.WriteString(filePathStyle.Render(m.currentFile) + "\n")
		if m.state == StateStopping {
			b.WriteString(hintStyle.Render("正在停止，等待当前文件完成...") + "\n")
		} else {
			b.WriteString(hintStyle.Render("按 ctrl+c 中断") + "\n")
		}
	case StateComplete:
		if m.err != nil {
			b.WriteString(errorStyle.Render("整理未完成") + "\n")
		} else {
			b.WriteString(successTitleStyle.Render("✔ 整理完成") + "\n")
		}
	}

	return b.String()
}

func (m model) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}
