package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/styles"
)

// Fixed rows outside the transcript: header, blank, bordered input (3) and status bar.
const chromeHeight = 6

// Entry is one line of the conversation.
type Entry struct {
	Role messages.Role
	Text string
}

// ChatModel is the chat screen following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type ChatModel struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	input      *input.MessageInput
	transcript viewport.Model
	status     *status.Bar

	entries []Entry
	pending bool

	width  int
	height int
}

// Ensure ChatModel implements tea.Model.
var _ tea.Model = (*ChatModel)(nil)

// NewChat creates the chat screen over the given ports.
func NewChat(ports *Ports) (*ChatModel, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating chat: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	m := &ChatModel{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		input:      input.NewMessageInput(s),
		transcript: viewport.New(80, 24-chromeHeight),
		status:     status.NewBar(s, km),
	}
	m.refreshCorpusSize()
	m.SetDimensions(80, 24)
	return m, nil
}

// WithContext sets the context passed to chat calls.
func (m *ChatModel) WithContext(ctx context.Context) *ChatModel {
	m.ctx = ctx
	return m
}

// Init implements tea.Model.
func (m *ChatModel) Init() tea.Cmd {
	return tea.Batch(
		m.input.Init(),
		tea.SetWindowTitle("docchat"),
	)
}

// Update implements tea.Model.
func (m *ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetDimensions(msg.Width, msg.Height)
		return m, nil

	case messages.ReplyReceived:
		m.pending = false
		if msg.Response.OK() {
			m.entries = append(m.entries, Entry{Role: messages.RoleBot, Text: msg.Response.Message})
			m.status.SetState(status.StateReady)
		} else {
			m.entries = append(m.entries, Entry{Role: messages.RoleError, Text: msg.Response.Message})
			m.status.SetState(status.StateError)
			m.status.SetMessage(msg.Response.Message)
		}
		m.status.SetChunkCount(msg.Response.DocumentCount)
		m.render()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ChatModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, m.keymap.Quit):
		return m, tea.Quit

	case keymap.Matches(k, m.keymap.Send):
		text := strings.TrimSpace(m.input.Value())
		if text == "" || m.pending {
			return m, nil
		}
		m.input.Reset()
		m.entries = append(m.entries, Entry{Role: messages.RoleUser, Text: text})
		m.pending = true
		m.status.SetState(status.StateThinking)
		m.render()
		return m, m.reply(text)

	case keymap.Matches(k, m.keymap.Clear):
		m.entries = nil
		m.status.SetState(status.StateReady)
		m.render()
		return m, nil

	case keymap.Matches(k, m.keymap.ScrollUp):
		m.transcript.SetYOffset(m.transcript.YOffset - m.transcript.Height)
		return m, nil

	case keymap.Matches(k, m.keymap.ScrollDown):
		m.transcript.SetYOffset(m.transcript.YOffset + m.transcript.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// reply asks the chat service off the update loop.
func (m *ChatModel) reply(text string) tea.Cmd {
	ctx, chat := m.ctx, m.ports.Chat
	return func() tea.Msg {
		return messages.ReplyReceived{Message: text, Response: chat.Reply(ctx, text)}
	}
}

// View implements tea.Model.
func (m *ChatModel) View() string {
	header := m.styles.Title.Render("docchat") + "  " + m.styles.Muted.Render("chat with your documents")
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.transcript.View(),
		m.input.View(),
		m.status.View(),
	)
}

// SetDimensions resizes every component.
func (m *ChatModel) SetDimensions(width, height int) {
	m.width, m.height = width, height
	m.input.SetWidth(width)
	m.status.SetWidth(width)
	m.transcript.Width = width
	m.transcript.Height = max(height-chromeHeight, 1)
	m.render()
}

// Transcript returns the conversation so far.
func (m *ChatModel) Transcript() []Entry {
	return append([]Entry(nil), m.entries...)
}

// Pending reports whether a reply is outstanding.
func (m *ChatModel) Pending() bool {
	return m.pending
}

func (m *ChatModel) refreshCorpusSize() {
	if m.ports.Search != nil {
		m.status.SetChunkCount(m.ports.Search.CorpusSize())
	}
}

// render rebuilds the transcript and scrolls to the latest entry.
func (m *ChatModel) render() {
	if len(m.entries) == 0 {
		m.transcript.SetContent(m.styles.Muted.Render("Type a question and press enter."))
		return
	}

	wrap := lipgloss.NewStyle().Width(max(m.width-2, 10))
	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch e.Role {
		case messages.RoleUser:
			b.WriteString(m.styles.UserLabel.Render("You") + "\n")
			b.WriteString(wrap.Render(e.Text))
		case messages.RoleBot:
			b.WriteString(m.styles.BotLabel.Render("docchat") + "\n")
			b.WriteString(wrap.Render(e.Text))
		case messages.RoleError:
			b.WriteString(m.styles.Error.Render("Error") + "\n")
			b.WriteString(wrap.Inherit(m.styles.Error).Render(e.Text))
		}
	}
	if m.pending {
		b.WriteString("\n\n" + m.styles.Muted.Render("..."))
	}
	m.transcript.SetContent(b.String())
	m.transcript.GotoBottom()
}
