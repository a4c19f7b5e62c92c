// Package tui implements the interactive as-you-type check digit screen.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morrisraybrooks/PalletManager/internal/config"
	"github.com/morrisraybrooks/PalletManager/internal/lookup"
	"github.com/morrisraybrooks/PalletManager/internal/model"
	"github.com/morrisraybrooks/PalletManager/internal/service"
)

// Config configures the lookup screen.
type Config struct {
	Storage  service.Storage
	Building int
}

// Model holds the lookup screen state. It is replaced wholesale on every
// Update; nothing mutates in place.
type Model struct {
	storage  service.Storage
	resolver *lookup.Resolver
	result   *lookup.Result
	err      error
	mostUsed []model.StationRecord
	building int
	width    int
	height   int
	input    textinput.Model
	quitting bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "58-01, 5801, or 3-58-01-1"
	ti.CharLimit = 12
	ti.Focus()

	building := cfg.Building
	if building == 0 {
		building = config.DefaultBuilding
	}

	return Model{
		storage:  cfg.Storage,
		resolver: lookup.NewResolver(cfg.Storage),
		building: building,
		input:    ti,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.loadMostUsed(m.building),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.resolver.Cancel()
			return m, tea.Quit

		case "tab":
			return m.switchBuilding()

		case "enter":
			// Confirm the displayed hit: bump its usage counter.
			if m.result != nil && m.result.CheckDigit != "" {
				return m, m.recordUsage(m.building, m.result.Key)
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, tea.Batch(cmd, m.triggerLookup())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case lookupResultMsg:
		// A result for input the operator has already typed past is stale;
		// drop it so it can never overwrite the newer answer.
		if msg.result.Query != m.input.Value() || msg.result.Building != m.building {
			return m, nil
		}
		result := msg.result
		m.result = &result
		m.err = result.Err
		return m, nil

	case mostUsedLoadedMsg:
		if msg.building != m.building {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mostUsed = msg.records
		return m, nil

	case usageRecordedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, m.loadMostUsed(m.building)
	}

	return m, nil
}

// triggerLookup starts a resolution for the current input, superseding any
// lookup still in flight. Clearing the input cancels outright.
func (m *Model) triggerLookup() tea.Cmd {
	raw := m.input.Value()
	if raw == "" {
		m.resolver.Cancel()
		m.result = nil
		return nil
	}
	return m.lookupCmd(m.building, raw)
}

// switchBuilding cycles to the next known building and drops the context of
// the previous one: outstanding lookup, displayed result, quick list.
func (m Model) switchBuilding() (tea.Model, tea.Cmd) {
	m.resolver.Cancel()
	m.result = nil
	m.mostUsed = nil

	for i, b := range config.KnownBuildings {
		if b == m.building {
			m.building = config.KnownBuildings[(i+1)%len(config.KnownBuildings)]
			break
		}
	}

	return m, tea.Batch(m.loadMostUsed(m.building), m.triggerLookup())
}
