// # cmd/doccomplete/ui.go
package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"doccomplete/internal/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	problemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list         list.Model
	files        []report.FileProblems
	lastUpdate   time.Time
	fileCount    int
	problemCount int
}

type updateMsg struct {
	files []report.FileProblems
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.files = msg.files
		m.fileCount = len(msg.files)
		m.problemCount = report.Total(msg.files)
		m.lastUpdate = time.Now()

		items := []list.Item{}
		for _, file := range m.files {
			for _, problem := range file.Problems {
				items = append(items, item{
					title: fmt.Sprintf("%s %s:%d:%d", problem.Code, file.Path, problem.Line, problem.Col+1),
					desc:  problem.Msg,
				})
			}
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files",
		m.lastUpdate.Format("15:04:05"), m.fileCount))

	var summary string
	if m.problemCount == 0 {
		summary = successStyle.Render("✅ Docstrings Complete")
	} else {
		summary = fmt.Sprintf("⚠️  %s",
			problemStyle.Render(fmt.Sprintf("%d Findings", m.problemCount)))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Docstring Monitor"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func initialModel() model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Findings"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return model{
		list:       l,
		lastUpdate: time.Now(),
	}
}
