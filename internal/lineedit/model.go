package lineedit

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type outcome int

const (
	outcomePending outcome = iota
	outcomeSubmit
	outcomeEOF
	outcomeInterrupt
)

type model struct {
	input   textinput.Model
	history *History
	pos     int    // history index being shown; history.Len() means the draft
	draft   string // text typed before browsing started
	outcome outcome
}

func newModel(prompt string, h *History, promptStyle lipgloss.Style) model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.PromptStyle = promptStyle
	ti.Focus()
	return model{input: ti, history: h, pos: h.Len()}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.outcome != outcomePending {
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.outcome = outcomeSubmit
			return m, tea.Quit
		case tea.KeyCtrlC:
			m.outcome = outcomeInterrupt
			return m, tea.Quit
		case tea.KeyCtrlD:
			if m.input.Value() == "" {
				m.outcome = outcomeEOF
				return m, tea.Quit
			}
		case tea.KeyUp:
			m.older()
			return m, nil
		case tea.KeyDown:
			m.newer()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.outcome != outcomePending {
		return ""
	}
	return m.input.View()
}

func (m *model) older() {
	if m.pos == 0 {
		return
	}
	if m.pos == m.history.Len() {
		m.draft = m.input.Value()
	}
	m.pos--
	m.show(m.history.At(m.pos))
}

func (m *model) newer() {
	n := m.history.Len()
	if m.pos >= n {
		return
	}
	m.pos++
	if m.pos == n {
		m.show(m.draft)
		return
	}
	m.show(m.history.At(m.pos))
}

func (m *model) show(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
}
