// Package tui implements the interactive chat screen.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/spendwise/internal/tui/themes"
)

// Role identifies who wrote a transcript entry.
type Role int

const (
	RoleUser Role = iota
	RoleAssistant
	RoleSystem
)

// entry is one message in the transcript.
type entry struct {
	text string
	role Role
	err  bool
}

// Model holds the chat screen state.
type Model struct {
	ctx        context.Context
	theme      themes.Theme
	config     Config
	keymap     KeyMap
	help       help.Model
	viewport   viewport.Model
	input      textinput.Model
	spinner    spinner.Model
	transcript []entry
	width      int
	height     int
	contextOn  bool
	waiting    bool
	quitting   bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	input := textinput.New()
	input.Placeholder = "Ask about your budget..."
	input.Prompt = "› "
	input.CharLimit = 2000
	input.Focus()

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(cfg.Theme.StatusPending),
	)

	vp := viewport.New(cfg.Width, 1)
	vp.KeyMap = viewport.KeyMap{
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
	}

	m := Model{
		ctx:       ctx,
		theme:     cfg.Theme,
		config:    cfg,
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		viewport:  vp,
		input:     input,
		spinner:   spin,
		contextOn: cfg.ContextEnabled,
	}
	m.resize(cfg.Width, cfg.Height)
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.append(entry{role: RoleSystem, text: msg.err.Error(), err: true})
		} else {
			m.append(entry{role: RoleAssistant, text: msg.reply})
		}
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.ToggleContext):
		m.contextOn = !m.contextOn
		return m, nil

	case key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keymap.Send):
		text := strings.TrimSpace(m.input.Value())
		if text == "" || m.waiting {
			return m, nil
		}
		m.input.Reset()
		m.waiting = true
		m.append(entry{role: RoleUser, text: text})
		return m, tea.Batch(m.spinner.Tick, m.ask(text, m.contextOn))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ask sends text to the assistant off the update loop.
func (m Model) ask(text string, withContext bool) tea.Cmd {
	ctx := m.ctx
	assistant := m.config.Assistant
	data := m.config.Data
	opts := m.config.CallOptions

	return func() tea.Msg {
		if !withContext {
			return replyMsg{reply: assistant.Complete(ctx, text, opts...)}
		}
		snapshot, err := data.Load(ctx)
		if err != nil {
			return replyMsg{err: fmt.Errorf("failed to load budget data: %w", err)}
		}
		return replyMsg{reply: assistant.CompleteWithContext(ctx, snapshot, text, opts...)}
	}
}

func (m *Model) append(e entry) {
	m.transcript = append(m.transcript, e)
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.input.Width = max(width-4, 10)
	m.viewport.Width = width
	m.viewport.Height = max(height-chromeHeight, 1)
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// ContextEnabled reports whether prompts carry the budget context.
func (m Model) ContextEnabled() bool {
	return m.contextOn
}

// Waiting reports whether a reply is outstanding.
func (m Model) Waiting() bool {
	return m.waiting
}
