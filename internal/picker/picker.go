// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

// Package picker presents an interactive list of posts and reports the one
// the user lands on.
package picker

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/blogctl/blogctl/internal/api"
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

type item struct {
	post api.Post
}

func (i item) Title() string { return i.post.Title }

func (i item) Description() string {
	return fmt.Sprintf("#%d by %s, %s",
		i.post.ID, i.post.Author.Username, humanize.Time(i.post.DatePosted))
}

func (i item) FilterValue() string { return i.post.Title }

type model struct {
	list   list.Model
	choice *api.Post
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			if it, ok := m.list.SelectedItem().(item); ok {
				m.choice = &it.post
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	return docStyle.Render(m.list.View())
}

// Pick runs the interactive picker over the given posts. A nil post with a
// nil error means the user backed out.
func Pick(title string, posts []api.Post) (*api.Post, error) {
	items := make([]list.Item, 0, len(posts))
	for _, p := range posts {
		items = append(items, item{post: p})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title

	p := tea.NewProgram(model{list: l}, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run picker: %w", err)
	}

	return final.(model).choice, nil
}
