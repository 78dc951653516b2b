// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package picker is the Bubble Tea host of the selection engine: a
// searchable list over model spec presets and provider endpoints, with
// expandable model sub-catalogs. All selection state lives in the
// engine; this package only translates key events into engine commands
// and renders the result.
package picker

import (
	"sort"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nurbergenoovv/CustomLibreChat1/internal/announce"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/catalog"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/search"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/selection"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// CatalogMsg delivers a new catalog snapshot (initial load or watcher
// reload) into the picker's event loop.
type CatalogMsg struct {
	Snapshot catalog.Snapshot
}

// SearchCommittedMsg arrives when the debouncer commits a search value.
type SearchCommittedMsg struct {
	Value string
}

// reconcileMsg schedules the default-agent resolver for the cycle after
// a state or catalog change; it never runs inside the changing update.
type reconcileMsg struct{}

func reconcileCmd() tea.Cmd {
	return func() tea.Msg { return reconcileMsg{} }
}

// =============================================================================
// ROWS
// =============================================================================

type rowKind int

const (
	rowSpec rowKind = iota
	rowEndpoint
	rowModel
)

// row is one visible line of the list.
type row struct {
	kind     rowKind
	spec     catalog.ModelSpec
	endpoint catalog.Endpoint
	modelID  string
	label    string
	indent   bool
}

// =============================================================================
// PICKER MODEL
// =============================================================================

// Model is the Bubble Tea model for the picker.
type Model struct {
	engine *selection.Engine
	theme  *styles.Theme
	status *announce.StatusSink

	input textinput.Model

	rows     []row
	selected int
	expanded map[string]bool

	// Per-endpoint filter editing state. While active, keystrokes edit
	// the expanded endpoint's filter text instead of the global search.
	filterEndpoint string
	filterInput    textinput.Model

	width      int
	height     int
	maxResults int
}

// New creates a picker over the given engine. status may be nil when the
// host does not render announcements.
func New(engine *selection.Engine, theme *styles.Theme, status *announce.StatusSink, maxResults int) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search models, agents, endpoints..."
	ti.Prompt = "> "
	ti.CharLimit = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	ti.Focus()

	fi := textinput.New()
	fi.Prompt = "/ "
	fi.CharLimit = 60

	if maxResults <= 0 {
		maxResults = 10
	}

	m := &Model{
		engine:      engine,
		theme:       theme,
		status:      status,
		input:       ti,
		filterInput: fi,
		expanded:    make(map[string]bool),
		maxResults:  maxResults,
	}
	m.rebuildRows()
	return m
}

// Init implements tea.Model. The first reconcile is scheduled here so
// default resolution runs on the cycle after mount, once the seeded
// selection is in place.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, reconcileCmd())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case CatalogMsg:
		m.engine.SetCatalog(msg.Snapshot)
		m.rebuildRows()
		// Resolver runs on the next cycle, not inside this one.
		return m, reconcileCmd()

	case reconcileMsg:
		m.engine.Reconcile()
		m.rebuildRows()
		return m, nil

	case SearchCommittedMsg:
		m.rebuildRows()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes one key event.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filterEndpoint != "" {
		return m.handleFilterKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		if m.input.Value() != "" && msg.String() == "esc" {
			m.input.SetValue("")
			m.engine.Search().Input("")
			return m, nil
		}
		return m, tea.Quit

	case "up":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "down":
		if m.selected < len(m.rows)-1 {
			m.selected++
		}
		return m, nil

	case "enter":
		return m.activate()

	case "/":
		// Start editing the expanded endpoint's model filter.
		if r, ok := m.currentRow(); ok && r.kind == rowEndpoint && m.expanded[r.endpoint.Value] {
			m.filterEndpoint = r.endpoint.Value
			m.filterInput.SetValue(m.engine.Search().EndpointText(r.endpoint.Value))
			m.filterInput.Focus()
			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.engine.Search().Input(v)
	}
	return m, cmd
}

// handleFilterKey edits the per-endpoint filter text. Updates apply
// synchronously, with no debounce.
func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.filterEndpoint = ""
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.engine.Search().SetEndpointText(m.filterEndpoint, m.filterInput.Value())
	m.rebuildRows()
	return m, cmd
}

// activate applies the selected row.
func (m *Model) activate() (tea.Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok {
		return m, nil
	}

	switch r.kind {
	case rowSpec:
		m.engine.SelectSpec(r.spec)

	case rowEndpoint:
		if r.endpoint.HasModels {
			m.expanded[r.endpoint.Value] = !m.expanded[r.endpoint.Value]
			m.rebuildRows()
			return m, nil
		}
		m.engine.SelectEndpoint(r.endpoint)

	case rowModel:
		m.engine.SelectModel(r.endpoint, r.modelID)
	}

	m.rebuildRows()
	return m, reconcileCmd()
}

func (m *Model) currentRow() (row, bool) {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.selected], true
}

// =============================================================================
// ROW BUILDING
// =============================================================================

// rebuildRows recomputes the visible rows from the engine's state:
// search results while a search is active, the full catalog otherwise.
func (m *Model) rebuildRows() {
	snap := m.engine.Catalog()
	results := m.engine.Search().Results()

	var rows []row
	if results != nil {
		for _, it := range results {
			rows = append(rows, itemRow(it))
		}
	} else {
		for _, s := range snap.Specs {
			rows = append(rows, row{kind: rowSpec, spec: s, label: s.DisplayName()})
		}
		for _, e := range snap.Endpoints {
			rows = append(rows, row{kind: rowEndpoint, endpoint: e, label: e.DisplayName()})
			if e.HasModels && m.expanded[e.Value] {
				rows = append(rows, m.modelRows(snap, e)...)
			}
		}
	}

	m.rows = rows
	if m.selected >= len(rows) {
		m.selected = len(rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func itemRow(it search.Item) row {
	if it.Kind == search.ItemSpec {
		return row{kind: rowSpec, spec: it.Spec, label: it.Spec.DisplayName()}
	}
	return row{kind: rowEndpoint, endpoint: it.Endpoint, label: it.Endpoint.DisplayName()}
}

// modelRows lists an expanded endpoint's sub-catalog, narrowed by the
// endpoint's synchronous filter text.
func (m *Model) modelRows(snap catalog.Snapshot, e catalog.Endpoint) []row {
	filter := m.engine.Search().EndpointText(e.Value)
	match := func(texts ...string) bool {
		if filter == "" {
			return true
		}
		for _, t := range texts {
			if _, ok := search.Match(filter, t); ok {
				return true
			}
		}
		return false
	}

	var rows []row
	switch {
	case catalog.IsAgentsEndpoint(e.Value):
		for _, id := range snap.Agents.IDs() {
			name := snap.AgentName(id)
			if match(id, name) {
				rows = append(rows, row{kind: rowModel, endpoint: e, modelID: id, label: name, indent: true})
			}
		}

	case catalog.IsAssistantsEndpoint(e.Value):
		ids := make([]string, 0, len(snap.Assistants[e.Value]))
		for id := range snap.Assistants[e.Value] {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			name := snap.AssistantName(e.Value, id)
			if match(id, name) {
				rows = append(rows, row{kind: rowModel, endpoint: e, modelID: id, label: name, indent: true})
			}
		}

	default:
		for _, id := range e.Models {
			if match(id) {
				rows = append(rows, row{kind: rowModel, endpoint: e, modelID: id, label: id, indent: true})
			}
		}
	}
	return rows
}
