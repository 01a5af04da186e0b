package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/todoapp/core/internal/client"
	"github.com/todoapp/core/internal/domain/entities"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeConfirmDelete
)

// Model drives the terminal UI over the client view-model. Network calls
// run inline on the event loop; the view-model falls back to the local
// mirror on failure, so a slow or dead backend degrades rather than
// breaks the session.
type Model struct {
	vm     *client.ViewModel
	cursor int
	mode   mode
	ta     textarea.Model

	confirmID int64
}

// filterTabs is the ALL sentinel followed by every category tag.
func filterTabs() []string {
	tabs := []string{entities.CategoryAll}
	for _, c := range entities.Categories() {
		tabs = append(tabs, string(c))
	}
	return tabs
}

// New creates the TUI model. The view-model should already be loaded.
func New(vm *client.ViewModel) Model {
	ta := textarea.New()
	ta.Placeholder = "What needs doing? (multi-line allowed)"
	ta.SetHeight(4)
	ta.CharLimit = 0

	return Model{vm: vm, ta: ta}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ta.SetWidth(msg.Width - 4)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.vm.Visible())-1 {
			m.cursor++
		}

	case "tab":
		m.cycleFilter(1)
		m.cursor = 0

	case "shift+tab":
		m.cycleFilter(-1)
		m.cursor = 0

	case "a":
		m.mode = modeAdd
		m.ta.Reset()
		m.ta.Focus()
		return m, textarea.Blink

	case "c":
		m.cycleCategory()

	case " ", "enter":
		if t, ok := m.current(); ok {
			m.vm.Toggle(context.Background(), t.ID)
		}

	case "d", "x":
		if t, ok := m.current(); ok {
			m.confirmID = t.ID
			m.mode = modeConfirmDelete
		}

	case "r":
		m.vm.Load(context.Background())
		m.cursor = 0
	}

	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.ta.Blur()
		return m, nil

	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.cycleCategory()
		return m, nil

	case "ctrl+s", "ctrl+d":
		m.vm.SetInput(m.ta.Value())
		m.vm.Add(context.Background())
		m.ta.Reset()
		m.mode = modeBrowse
		m.ta.Blur()
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.vm.Delete(context.Background(), m.confirmID)
		if m.cursor >= len(m.vm.Visible()) && m.cursor > 0 {
			m.cursor--
		}
	}
	m.confirmID = 0
	m.mode = modeBrowse
	return m, nil
}

func (m *Model) cycleFilter(delta int) {
	tabs := filterTabs()
	cur := 0
	for i, t := range tabs {
		if t == m.vm.Filter() {
			cur = i
			break
		}
	}
	next := (cur + delta + len(tabs)) % len(tabs)
	m.vm.SetFilter(tabs[next])
}

func (m *Model) cycleCategory() {
	cats := entities.Categories()
	for i, c := range cats {
		if c == m.vm.Selected() {
			m.vm.SetCategory(cats[(i+1)%len(cats)])
			return
		}
	}
	m.vm.SetCategory(cats[0])
}

func (m Model) current() (entities.Todo, bool) {
	visible := m.vm.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return entities.Todo{}, false
	}
	return visible[m.cursor], true
}

func (m Model) View() string {
	var b strings.Builder

	total, completed, byCategory := m.vm.Counts()
	b.WriteString(fmt.Sprintf("%s   %s %d  %s %d\n\n",
		titleStyle.Render("My Todos"),
		successStyle.Render("✔"), completed,
		accentStyle.Render("Total"), total,
	))

	// Filter tabs with per-category counts
	var tabs []string
	for _, tab := range filterTabs() {
		count := total
		if tab != entities.CategoryAll {
			count = byCategory[entities.Category(tab)]
		}
		label := fmt.Sprintf("%s %d", tab, count)
		if tab == m.vm.Filter() {
			tabs = append(tabs, activeTab.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	if m.vm.LocalMode() {
		b.WriteString(bannerStyle.Render("⚠ Local mode: changes are saved on this device only") + "\n")
	}
	if notice := m.vm.Notice(); notice != "" {
		b.WriteString(errorStyle.Render(notice) + "\n")
	}
	if m.vm.LocalMode() || m.vm.Notice() != "" {
		b.WriteString("\n")
	}

	switch m.mode {
	case modeAdd:
		b.WriteString(fmt.Sprintf("Category: %s (tab to change)\n", accentStyle.Render(string(m.vm.Selected()))))
		b.WriteString(m.ta.View())
		b.WriteString("\n" + helpStyle.Render("ctrl+s save · esc cancel"))
		return b.String()

	case modeConfirmDelete:
		b.WriteString("Delete this todo? " + selectedStyle.Render("y") + "/n\n\n")
	}

	visible := m.vm.Visible()
	if m.vm.Loading() {
		b.WriteString(mutedStyle.Render("Loading...") + "\n")
	} else if len(visible) == 0 {
		if m.vm.Filter() == entities.CategoryAll {
			b.WriteString(mutedStyle.Render("Nothing to do.") + "\n")
		} else {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("No todos in %s.", m.vm.Filter())) + "\n")
		}
	}

	for i, t := range visible {
		box := mutedStyle.Render(boxUnchecked)
		text := t.Title
		if t.Completed {
			box = successStyle.Render(boxChecked)
			text = doneStyle.Render(text)
		}

		prefix := "  "
		if i == m.cursor && m.mode == modeBrowse {
			prefix = selectedStyle.Render("> ")
		}

		tag := mutedStyle.Render(fmt.Sprintf("[%s]", t.Category))
		when := mutedStyle.Render(t.CreatedAt.Format("06.01.02 15:04"))

		// Multi-line titles keep their line breaks, indented under the box.
		text = strings.ReplaceAll(text, "\n", "\n      ")
		b.WriteString(fmt.Sprintf("%s%s %s %s  %s\n", prefix, box, tag, text, when))
	}

	b.WriteString("\n" + helpStyle.Render("a add · space toggle · d delete · tab filter · c category · r reload · q quit"))
	return b.String()
}
