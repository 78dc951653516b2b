// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package picker

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/nurbergenoovv/CustomLibreChat1/internal/announce"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/catalog"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/model"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/selection"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/ui/styles"
)

func testSnapshot() catalog.Snapshot {
	return catalog.Snapshot{
		Specs: []catalog.ModelSpec{
			{Name: "fast", Label: "Fast", Preset: catalog.Preset{Endpoint: "openAI", Model: "gpt-4o-mini"}},
		},
		Endpoints: []catalog.Endpoint{
			{Value: "openAI", Label: "OpenAI", HasModels: true, Models: []string{"gpt-4o", "gpt-4o-mini", "o1"}},
			{Value: catalog.EndpointAgents, Label: "Agents"},
			{Value: "bedrock", Label: "Bedrock"},
		},
		Agents: catalog.NewAgentsMap(
			catalog.Agent{ID: "g1", Name: "Researcher", Model: "gpt-4o"},
		),
		AgentList: []catalog.Agent{
			{ID: "g1", Name: "Researcher", Model: "gpt-4o"},
		},
	}.Normalize()
}

// newTestPicker builds a picker over a live engine with an in-memory
// conversation and no persistence tiers.
func newTestPicker(t *testing.T) (*Model, *model.Conversation) {
	t.Helper()

	conv := model.NewConversation()
	status := &announce.StatusSink{}
	eng := selection.New(selection.Options{
		Mention:       model.NewMention(conv),
		AnnounceSink:  status,
		Language:      language.English,
		DebounceDelay: time.Hour, // tests drive the debouncer via Flush
	})
	t.Cleanup(eng.Close)
	eng.SetCatalog(testSnapshot())

	m := New(eng, styles.NewTheme(), status, 10)
	return m, conv
}

func update(m *Model, msg tea.Msg) *Model {
	next, _ := m.Update(msg)
	return next.(*Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func rowLabels(m *Model) []string {
	labels := make([]string, len(m.rows))
	for i, r := range m.rows {
		labels[i] = r.label
	}
	return labels
}

// =============================================================================
// ROW BUILDING
// =============================================================================

func TestPicker_FullCatalogRows(t *testing.T) {
	m, _ := newTestPicker(t)
	assert.Equal(t, []string{"Fast", "OpenAI", "Agents", "Bedrock"}, rowLabels(m))
}

func TestPicker_ExpandCollapseEndpoint(t *testing.T) {
	m, _ := newTestPicker(t)

	// Move onto OpenAI and expand its sub-catalog.
	m = update(m, key("down"))
	m = update(m, key("enter"))
	assert.Equal(t, []string{"Fast", "OpenAI", "gpt-4o", "gpt-4o-mini", "o1", "Agents", "Bedrock"}, rowLabels(m))

	// Enter again collapses.
	m = update(m, key("enter"))
	assert.Equal(t, []string{"Fast", "OpenAI", "Agents", "Bedrock"}, rowLabels(m))
}

func TestPicker_CursorStopsAtEdges(t *testing.T) {
	m, _ := newTestPicker(t)

	m = update(m, key("up"))
	assert.Equal(t, 0, m.selected)

	for i := 0; i < 10; i++ {
		m = update(m, key("down"))
	}
	assert.Equal(t, len(m.rows)-1, m.selected)
}

// =============================================================================
// COMMAND DISPATCH
// =============================================================================

func TestPicker_EnterOnSpecSelects(t *testing.T) {
	m, conv := newTestPicker(t)

	m = update(m, key("enter")) // first row is the spec
	assert.Equal(t, "fast", conv.ModelSpec)
	assert.Equal(t, "openAI", conv.Endpoint)
	assert.Equal(t, "gpt-4o-mini", conv.Model)

	sel := m.engine.Selected()
	assert.Equal(t, "fast", sel.ModelSpec)
}

func TestPicker_EnterOnModelSelects(t *testing.T) {
	m, conv := newTestPicker(t)

	m = update(m, key("down"))  // OpenAI
	m = update(m, key("enter")) // expand
	m = update(m, key("down"))  // gpt-4o
	m = update(m, key("enter"))

	assert.Equal(t, "openAI", conv.Endpoint)
	assert.Equal(t, "gpt-4o", conv.Model)
	assert.Empty(t, conv.ModelSpec)
}

func TestPicker_EnterOnBareEndpointSelects(t *testing.T) {
	m, conv := newTestPicker(t)

	for i := 0; i < 3; i++ {
		m = update(m, key("down"))
	}
	m = update(m, key("enter")) // Bedrock has no models
	assert.Equal(t, "bedrock", conv.Endpoint)
	assert.Empty(t, conv.Model)
}

func TestPicker_ActivationSchedulesReconcile(t *testing.T) {
	m, _ := newTestPicker(t)

	next, cmd := m.Update(key("enter"))
	m = next.(*Model)
	require.NotNil(t, cmd)

	// The resolver runs on the following cycle, not inside the command.
	msg := cmd()
	assert.IsType(t, reconcileMsg{}, msg)
	m = update(m, msg)
}

// =============================================================================
// CATALOG AND RECONCILE MESSAGES
// =============================================================================

func TestPicker_CatalogMsgSwapsSnapshot(t *testing.T) {
	m, _ := newTestPicker(t)

	snap := catalog.Snapshot{
		Endpoints: []catalog.Endpoint{{Value: "anthropic", Label: "Anthropic"}},
	}.Normalize()

	next, cmd := m.Update(CatalogMsg{Snapshot: snap})
	m = next.(*Model)
	require.NotNil(t, cmd, "catalog swap schedules a reconcile")
	assert.Equal(t, []string{"Anthropic"}, rowLabels(m))
}

func TestPicker_ReconcileMsgRunsResolver(t *testing.T) {
	m, conv := newTestPicker(t)

	// Seeded on the agents endpoint with no model: the resolver must
	// fill in the first eligible agent.
	m.engine.SetSelected(selection.SelectedValue{Endpoint: catalog.EndpointAgents})
	m = update(m, reconcileMsg{})

	assert.Equal(t, "g1", m.engine.Selected().Model)
	assert.Equal(t, "g1", conv.AgentID)
}

// =============================================================================
// SEARCH AND FILTER KEYS
// =============================================================================

func TestPicker_TypingFeedsDebouncedSearch(t *testing.T) {
	m, _ := newTestPicker(t)

	m = update(m, key("f"))
	m = update(m, key("a"))
	assert.Equal(t, "fa", m.input.Value())

	// Nothing committed yet; the full catalog is still showing.
	assert.Nil(t, m.engine.Search().Results())

	m.engine.Search().Flush()
	m = update(m, SearchCommittedMsg{Value: "fa"})

	assert.Equal(t, []string{"Fast"}, rowLabels(m))
}

func TestPicker_EscClearsSearchBeforeQuitting(t *testing.T) {
	m, _ := newTestPicker(t)

	m = update(m, key("x"))
	next, cmd := m.Update(key("esc"))
	m = next.(*Model)
	assert.Nil(t, cmd, "first esc only clears the query")
	assert.Empty(t, m.input.Value())

	m.engine.Search().Flush()
	assert.Nil(t, m.engine.Search().Results(), "cleared query deactivates search")
}

func TestPicker_EndpointFilterNarrowsModels(t *testing.T) {
	m, _ := newTestPicker(t)

	m = update(m, key("down"))  // OpenAI
	m = update(m, key("enter")) // expand
	m = update(m, key("/"))     // start filter editing
	require.Equal(t, "openAI", m.filterEndpoint)

	m = update(m, key("o"))
	m = update(m, key("1"))
	assert.Equal(t, []string{"Fast", "OpenAI", "o1", "Agents", "Bedrock"}, rowLabels(m))

	// Esc leaves filter mode but keeps the narrowing.
	m = update(m, key("esc"))
	assert.Empty(t, m.filterEndpoint)
	assert.Equal(t, "o1", m.engine.Search().EndpointText("openAI"))
}

// =============================================================================
// VIEW
// =============================================================================

func TestPicker_ViewRendersSelection(t *testing.T) {
	m, _ := newTestPicker(t)
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m = update(m, key("down"))  // OpenAI
	m = update(m, key("enter")) // expand
	m = update(m, key("down"))  // gpt-4o
	m = update(m, key("enter"))

	out := m.View()
	assert.Contains(t, out, "gpt-4o")
	assert.Contains(t, out, "openAI / gpt-4o")
	assert.Contains(t, out, "gpt-4o selected")
}

func TestPicker_ViewShowsPresetStatus(t *testing.T) {
	m, _ := newTestPicker(t)
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = update(m, key("enter")) // first row is the spec

	assert.Contains(t, m.View(), "preset fast")
}
