// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"sync"
	"time"

	"github.com/nurbergenoovv/CustomLibreChat1/internal/catalog"
)

// =============================================================================
// SEARCH ITEMS
// =============================================================================

// ItemKind discriminates the heterogeneous catalog entries a search
// ranges over.
type ItemKind int

const (
	ItemSpec     ItemKind = iota // A named model spec preset
	ItemEndpoint                 // A provider endpoint
)

// Item is one merged catalog entry. Exactly the field matching Kind is
// meaningful.
type Item struct {
	Kind     ItemKind
	Spec     catalog.ModelSpec
	Endpoint catalog.Endpoint
}

// DisplayName returns the entry's human-readable name.
func (it Item) DisplayName() string {
	if it.Kind == ItemSpec {
		return it.Spec.DisplayName()
	}
	return it.Endpoint.DisplayName()
}

// FilterFunc is the type-agnostic matching collaborator. It receives the
// committed query, the merged items, and the agent/assistant maps for
// name-based matching, and returns the matching items in rank order.
type FilterFunc func(query string, items []Item, agents *catalog.AgentsMap, assistants catalog.AssistantsMap) []Item

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline owns the debounced global search and the per-endpoint filter
// text. Safe for use from one logical event loop; internally locked so
// the debounce timer goroutine can commit.
type Pipeline struct {
	mu sync.Mutex

	debouncer *Debouncer
	filter    FilterFunc
	onCommit  func(string)

	// Committed state
	query string

	// Catalog inputs
	snapshot catalog.Snapshot
	revision uint64

	// Memoized results: valid while (query, revision) is unchanged.
	results      []Item
	memoQuery    string
	memoRevision uint64
	memoValid    bool

	// Per-endpoint model filter text; synchronous, never debounced.
	endpointText map[string]string
}

// NewPipeline creates a pipeline using filter for matching. A nil filter
// defaults to FuzzyFilter. Delay <= 0 uses DebounceDelay.
func NewPipeline(filter FilterFunc, delay time.Duration) *Pipeline {
	if filter == nil {
		filter = FuzzyFilter
	}
	p := &Pipeline{
		filter:       filter,
		snapshot:     catalog.Snapshot{}.Normalize(),
		endpointText: make(map[string]string),
	}
	p.debouncer = NewDebouncer(delay, p.commit)
	return p
}

// SetOnCommit registers a host callback invoked after each committed
// search value (for example to push a message into a UI event loop).
func (p *Pipeline) SetOnCommit(fn func(string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onCommit = fn
}

// Input feeds one raw keystroke's full text into the debouncer.
func (p *Pipeline) Input(raw string) {
	p.debouncer.Input(raw)
}

// Flush commits any pending input immediately. Test and teardown helper.
func (p *Pipeline) Flush() {
	p.debouncer.Flush()
}

// Stop cancels the debounce timer permanently.
func (p *Pipeline) Stop() {
	p.debouncer.Stop()
}

// Query returns the committed search value.
func (p *Pipeline) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

// SetCatalog replaces the catalog inputs. Results are recomputed lazily;
// an unchanged (query, catalog) pair never recomputes.
func (p *Pipeline) SetCatalog(snap catalog.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshot = snap.Normalize()
	p.revision++
}

// Results returns the current search results: nil when the committed
// query is empty, otherwise the filtered items (possibly an empty slice).
func (p *Pipeline) Results() []Item {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.query == "" {
		return nil
	}
	if p.memoValid && p.memoQuery == p.query && p.memoRevision == p.revision {
		return p.results
	}

	items := mergeItems(p.snapshot)
	matched := p.filter(p.query, items, p.snapshot.Agents, p.snapshot.Assistants)
	if matched == nil {
		matched = []Item{}
	}

	p.results = matched
	p.memoQuery = p.query
	p.memoRevision = p.revision
	p.memoValid = true
	return p.results
}

// SetEndpointText sets the secondary filter text for one expanded
// endpoint. Applied synchronously, independent of the global search.
func (p *Pipeline) SetEndpointText(endpoint, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if text == "" {
		delete(p.endpointText, endpoint)
		return
	}
	p.endpointText[endpoint] = text
}

// EndpointText returns the secondary filter text for an endpoint.
func (p *Pipeline) EndpointText(endpoint string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.endpointText[endpoint]
}

// commit is the debouncer callback.
func (p *Pipeline) commit(value string) {
	p.mu.Lock()
	p.query = value
	fn := p.onCommit
	p.mu.Unlock()

	if fn != nil {
		fn(value)
	}
}

// mergeItems concatenates specs then endpoints, the order search results
// are presented in.
func mergeItems(snap catalog.Snapshot) []Item {
	items := make([]Item, 0, len(snap.Specs)+len(snap.Endpoints))
	for _, s := range snap.Specs {
		items = append(items, Item{Kind: ItemSpec, Spec: s})
	}
	for _, e := range snap.Endpoints {
		items = append(items, Item{Kind: ItemEndpoint, Endpoint: e})
	}
	return items
}
