package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rpggio/itemboard/internal/client"
	"github.com/rpggio/itemboard/internal/domain/item"
)

// ItemsClient is the subset of the API the UI drives.
type ItemsClient interface {
	ListItems(ctx context.Context) ([]item.Item, error)
	CreateItem(ctx context.Context, draft client.Draft) (*item.Item, error)
	DeleteItem(ctx context.Context, id int64) error
}

type itemsLoadedMsg struct {
	items []item.Item
	err   error
}

type itemCreatedMsg struct {
	item *item.Item
	err  error
}

type itemDeletedMsg struct {
	id  int64
	err error
}

type mode int

const (
	modeBrowse mode = iota
	modeAdd
)

const (
	fieldName = iota
	fieldDescription
)

// Model renders client.State and turns key presses into state transitions
// and API calls.
type Model struct {
	api     ItemsClient
	logger  *slog.Logger
	timeout time.Duration

	state  client.State
	mode   mode
	cursor int

	name        textinput.Model
	description textinput.Model
	focus       int

	keys  keyMap
	help  help.Model
	width int
}

// New builds the UI with the initial load already marked in flight; Init
// issues the request.
func New(api ItemsClient, apiURL string, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	name := textinput.New()
	name.Prompt = "name > "
	name.Placeholder = "Item name"
	name.CharLimit = 255

	description := textinput.New()
	description.Prompt = "desc > "
	description.Placeholder = "Item description"

	state, _ := client.NewState(apiURL).BeginLoad()

	return Model{
		api:         api,
		logger:      logger,
		timeout:     30 * time.Second,
		state:       state,
		name:        name,
		description: description,
		keys:        defaultKeyMap(),
		help:        help.New(),
	}
}

// State exposes the current client state.
func (m Model) State() client.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return m.fetchItems()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case itemsLoadedMsg:
		if msg.err != nil {
			m.logger.Error("error fetching items", "error", msg.err)
			m.state = m.state.LoadFailed()
		} else {
			m.state = m.state.LoadSucceeded(msg.items)
		}
		m.clampCursor()
		return m, nil

	case itemCreatedMsg:
		if msg.err != nil {
			m.logger.Error("error adding item", "error", msg.err)
			m.state = m.state.AddFailed()
			return m, nil
		}
		m.state = m.state.AddSucceeded(*msg.item)
		m.name.Reset()
		m.description.Reset()
		m.cursor = len(m.state.Items) - 1
		m.leaveForm()
		return m, nil

	case itemDeletedMsg:
		if msg.err != nil {
			m.logger.Error("error deleting item", "error", msg.err, "id", msg.id)
			m.state = m.state.DeleteFailed()
		} else {
			m.state = m.state.DeleteSucceeded(msg.id)
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeAdd {
			return m.updateForm(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.Items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Refresh):
		state, ok := m.state.BeginLoad()
		if !ok {
			return m, nil
		}
		m.state = state
		return m, m.fetchItems()

	case key.Matches(msg, m.keys.Add):
		if m.state.Loading {
			return m, nil
		}
		m.mode = modeAdd
		m.focus = fieldName
		m.description.Blur()
		return m, m.name.Focus()

	case key.Matches(msg, m.keys.Delete):
		if len(m.state.Items) == 0 {
			return m, nil
		}
		return m, m.deleteItem(m.state.Items[m.cursor].ID)
	}

	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.leaveForm()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		if m.focus == fieldName {
			m.focus = fieldDescription
			m.name.Blur()
			return m, m.description.Focus()
		}
		m.focus = fieldName
		m.description.Blur()
		return m, m.name.Focus()

	case key.Matches(msg, m.keys.Submit):
		state, ok := m.state.BeginAdd()
		if !ok {
			return m, nil
		}
		m.state = state
		return m, m.createItem(m.state.Draft)
	}

	// Inputs are disabled while a request is in flight.
	if m.state.Loading {
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == fieldName {
		m.name, cmd = m.name.Update(msg)
	} else {
		m.description, cmd = m.description.Update(msg)
	}
	m.state = m.state.SetDraft(client.Draft{
		Name:        m.name.Value(),
		Description: m.description.Value(),
	})
	return m, cmd
}

func (m *Model) leaveForm() {
	m.mode = modeBrowse
	m.name.Blur()
	m.description.Blur()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.state.Items) {
		m.cursor = len(m.state.Items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) fetchItems() tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		items, err := api.ListItems(ctx)
		return itemsLoadedMsg{items: items, err: err}
	}
}

func (m Model) createItem(draft client.Draft) tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		created, err := api.CreateItem(ctx, draft)
		return itemCreatedMsg{item: created, err: err}
	}
}

func (m Model) deleteItem(id int64) tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return itemDeletedMsg{id: id, err: api.DeleteItem(ctx, id)}
	}
}

// Run starts the interactive UI and blocks until the user quits.
func Run(api ItemsClient, apiURL string, logger *slog.Logger) error {
	_, err := tea.NewProgram(New(api, apiURL, logger), tea.WithAltScreen()).Run()
	return err
}
