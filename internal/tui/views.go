package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/spendwise/internal/llm"
)

// chromeHeight is the number of lines taken by the header, input and help.
const chromeHeight = 5

// View renders the chat screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.viewport.View(),
		m.renderInput(),
		m.help.View(m.keymap),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("💰 Spendwise Chat")

	status := m.theme.StatusPending.Render("Context: OFF")
	if m.contextOn {
		status = m.theme.StatusSuccess.Render("Context: ON")
	}

	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(status), 1)
	header := title + strings.Repeat(" ", gap) + status
	rule := lipgloss.NewStyle().Foreground(m.theme.Border).Render(strings.Repeat("─", max(m.width, 1)))
	return header + "\n" + rule
}

func (m Model) renderInput() string {
	if m.waiting {
		return m.spinner.View() + m.theme.StatusPending.Render(" Thinking...")
	}
	return m.input.View()
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return m.theme.Subtitle.Render("Ask a question about your spending. Press ctrl+t to toggle budget context.")
	}

	wrap := lipgloss.NewStyle().Width(max(m.width-2, 10))
	blocks := make([]string, 0, len(m.transcript))
	for _, e := range m.transcript {
		blocks = append(blocks, wrap.Render(m.renderEntry(e)))
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) renderEntry(e entry) string {
	switch e.role {
	case RoleUser:
		return m.theme.UserLabel.Render("You: ") + m.theme.Normal.Render(e.text)
	case RoleSystem:
		return m.theme.StatusError.Render(e.text)
	}

	label := m.theme.AssistantLabel.Render("Assistant: ")
	switch {
	case llm.IsErrorMessage(e.text):
		return label + m.theme.StatusError.Render(e.text)
	case llm.IsFailureReply(e.text):
		return label + m.theme.StatusWarning.Render(e.text)
	}
	return label + m.theme.Normal.Render(e.text)
}
