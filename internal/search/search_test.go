// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurbergenoovv/CustomLibreChat1/internal/catalog"
)

// Short delay keeps the timing tests fast while leaving a wide margin.
const testDelay = 30 * time.Millisecond

// =============================================================================
// DEBOUNCER
// =============================================================================

// recorder collects debounced commits.
type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

func TestDebouncer_RapidInputCommitsOnlyFinalValue(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(testDelay, rec.record)
	defer d.Stop()

	// Keystrokes arriving faster than the delay.
	for _, v := range []string{"g", "gp", "gpt", "gpt-4"} {
		d.Input(v)
		time.Sleep(testDelay / 4)
	}

	time.Sleep(4 * testDelay)
	assert.Equal(t, []string{"gpt-4"}, rec.snapshot())
}

func TestDebouncer_SingleInputCommitsAfterQuiet(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(testDelay, rec.record)
	defer d.Stop()

	d.Input("claude")
	assert.Empty(t, rec.snapshot(), "must not commit before the quiet interval")

	time.Sleep(4 * testDelay)
	assert.Equal(t, []string{"claude"}, rec.snapshot())
}

func TestDebouncer_StopCancelsPendingCommit(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(testDelay, rec.record)

	d.Input("stale")
	d.Stop()

	time.Sleep(4 * testDelay)
	assert.Empty(t, rec.snapshot(), "no commit may land after Stop")

	// Input after Stop is ignored too.
	d.Input("later")
	time.Sleep(4 * testDelay)
	assert.Empty(t, rec.snapshot())
}

func TestDebouncer_FlushCommitsImmediately(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(time.Hour, rec.record)
	defer d.Stop()

	d.Input("now")
	d.Flush()
	assert.Equal(t, []string{"now"}, rec.snapshot())

	// Nothing pending: Flush is a no-op.
	d.Flush()
	assert.Equal(t, []string{"now"}, rec.snapshot())
}

// =============================================================================
// PIPELINE
// =============================================================================

func pipelineSnapshot() catalog.Snapshot {
	return catalog.Snapshot{
		Specs: []catalog.ModelSpec{
			{Name: "research", Label: "Research", Preset: catalog.Preset{Endpoint: catalog.EndpointAgents, AgentID: "g1"}},
		},
		Endpoints: []catalog.Endpoint{
			{Value: catalog.EndpointAgents, HasModels: true},
			{Value: "openAI", HasModels: true, Models: []string{"gpt-4o"}},
		},
		Agents: catalog.NewAgentsMap(catalog.Agent{ID: "g1", Name: "Research Assistant"}),
	}.Normalize()
}

func committed(p *Pipeline, value string) {
	p.Input(value)
	p.Flush()
}

func TestPipeline_NilResultsWhenNoActiveSearch(t *testing.T) {
	p := NewPipeline(nil, time.Hour)
	defer p.Stop()
	p.SetCatalog(pipelineSnapshot())

	assert.Nil(t, p.Results(), "empty committed value means no active search")

	committed(p, "research")
	assert.NotNil(t, p.Results())

	committed(p, "")
	assert.Nil(t, p.Results(), "clearing the search returns to nil, not empty")
}

func TestPipeline_EmptyResultsDistinctFromNil(t *testing.T) {
	p := NewPipeline(nil, time.Hour)
	defer p.Stop()
	p.SetCatalog(pipelineSnapshot())

	committed(p, "zzzzzz")
	results := p.Results()
	require.NotNil(t, results)
	assert.Empty(t, results)
}

func TestPipeline_MergesSpecsAndEndpoints(t *testing.T) {
	p := NewPipeline(nil, time.Hour)
	defer p.Stop()
	p.SetCatalog(pipelineSnapshot())

	// "a" fuzzy-matches both the spec and endpoint names.
	committed(p, "a")
	kinds := map[ItemKind]bool{}
	for _, it := range p.Results() {
		kinds[it.Kind] = true
	}
	assert.True(t, kinds[ItemSpec])
	assert.True(t, kinds[ItemEndpoint])
}

func TestPipeline_MemoizesIdenticalInputs(t *testing.T) {
	var calls int
	filter := func(query string, items []Item, agents *catalog.AgentsMap, assistants catalog.AssistantsMap) []Item {
		calls++
		return nil
	}

	p := NewPipeline(filter, time.Hour)
	defer p.Stop()
	p.SetCatalog(pipelineSnapshot())

	committed(p, "gpt")
	p.Results()
	p.Results()
	p.Results()
	assert.Equal(t, 1, calls, "identical inputs must not recompute")

	// New committed value invalidates the memo.
	committed(p, "gpt-4")
	p.Results()
	assert.Equal(t, 2, calls)

	// New catalog invalidates the memo even for the same query.
	p.SetCatalog(pipelineSnapshot())
	p.Results()
	assert.Equal(t, 3, calls)
}

func TestPipeline_OnCommitNotifiesHost(t *testing.T) {
	p := NewPipeline(nil, time.Hour)
	defer p.Stop()

	var got []string
	p.SetOnCommit(func(v string) { got = append(got, v) })

	committed(p, "agents")
	assert.Equal(t, []string{"agents"}, got)
	assert.Equal(t, "agents", p.Query())
}

func TestPipeline_EndpointTextIsSynchronous(t *testing.T) {
	p := NewPipeline(nil, time.Hour)
	defer p.Stop()

	p.SetEndpointText("openAI", "4o")
	assert.Equal(t, "4o", p.EndpointText("openAI"))
	assert.Equal(t, "", p.EndpointText("bedrock"))

	// Independent of the debounced global search.
	assert.Equal(t, "", p.Query())

	p.SetEndpointText("openAI", "")
	assert.Equal(t, "", p.EndpointText("openAI"))
}

// =============================================================================
// FUZZY FILTER
// =============================================================================

func TestMatch_Basics(t *testing.T) {
	tests := []struct {
		query   string
		target  string
		matched bool
	}{
		{"", "anything", true},
		{"gpt", "gpt-4o", true},
		{"g4", "gpt-4o", true},
		{"ra", "Research Assistant", true},
		{"xyz", "gpt-4o", false},
		{"longer than target", "short", false},
	}
	for _, tt := range tests {
		_, matched := Match(tt.query, tt.target)
		assert.Equal(t, tt.matched, matched, "%q vs %q", tt.query, tt.target)
	}
}

func TestMatch_PrefersStartAndConsecutive(t *testing.T) {
	start, _ := Match("gpt", "gpt-4o")
	scattered, _ := Match("gpt", "gigapet")
	assert.Greater(t, start, scattered)
}

func TestFuzzyFilter_MatchesAgentNamesBehindEndpoint(t *testing.T) {
	snap := pipelineSnapshot()
	items := mergeItems(snap)

	// "Research Assistant" is only reachable through the agents map.
	got := FuzzyFilter("assistant", items, snap.Agents, snap.Assistants)
	require.NotEmpty(t, got)

	foundAgentsEndpoint := false
	for _, it := range got {
		if it.Kind == ItemEndpoint && it.Endpoint.Value == catalog.EndpointAgents {
			foundAgentsEndpoint = true
		}
	}
	assert.True(t, foundAgentsEndpoint)
}

func TestFuzzyFilter_MatchesAssistantNamesBehindEndpoint(t *testing.T) {
	snap := catalog.Snapshot{
		Endpoints: []catalog.Endpoint{
			{Value: catalog.EndpointAzureAssistants, HasModels: true},
		},
		Assistants: catalog.AssistantsMap{
			catalog.EndpointAzureAssistants: {
				"a1": catalog.Assistant{ID: "a1", Name: "Billing Helper"},
			},
		},
	}.Normalize()

	// "Billing Helper" is only reachable through the assistants map; the
	// endpoint descriptor carries no pre-derived names.
	got := FuzzyFilter("billing", mergeItems(snap), snap.Agents, snap.Assistants)
	require.Len(t, got, 1)
	assert.Equal(t, catalog.EndpointAzureAssistants, got[0].Endpoint.Value)
}

func TestFuzzyFilter_RanksBetterMatchesFirst(t *testing.T) {
	snap := catalog.Snapshot{
		Specs: []catalog.ModelSpec{
			{Name: "gpt-pro", Preset: catalog.Preset{Endpoint: "openAI", Model: "gpt-4o"}},
		},
		Endpoints: []catalog.Endpoint{
			{Value: "gadget-provider-thing", HasModels: false},
		},
	}.Normalize()

	got := FuzzyFilter("gpt", mergeItems(snap), snap.Agents, snap.Assistants)
	require.NotEmpty(t, got)
	assert.Equal(t, ItemSpec, got[0].Kind, "exact prefix should outrank scattered letters")
}
