// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package selection

import (
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/nurbergenoovv/CustomLibreChat1/internal/announce"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/catalog"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/logging"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/search"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/storage"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Extra carries the concrete choice applied alongside an endpoint
// selection. A nil Extra means the endpoint was selected directly.
type Extra struct {
	Model       string
	AgentID     string
	AssistantID string
}

// Mention applies a selection to the live conversation. It is the only
// way a selection leaves this engine.
type Mention interface {
	// OnSelectEndpoint applies an endpoint (plus optional concrete
	// model/agent/assistant) to the conversation.
	OnSelectEndpoint(endpoint string, extra *Extra)

	// OnSelectSpec applies a named preset to the conversation.
	OnSelectSpec(spec catalog.ModelSpec)
}

// KeyDialog is the API-key dialog collaborator. The engine merely
// forwards its open/close state.
type KeyDialog interface {
	Open() bool
	SetOpen(open bool)
}

// nopKeyDialog is used when the host wires no dialog.
type nopKeyDialog struct{ open bool }

func (d *nopKeyDialog) Open() bool        { return d.open }
func (d *nopKeyDialog) SetOpen(open bool) { d.open = open }

// =============================================================================
// ENGINE
// =============================================================================

// Options configures a new Engine. Mention is required; everything else
// has a working default.
type Options struct {
	// Mention applies selections to the conversation. Required.
	Mention Mention

	// Seed is the initial selection, taken from the ambient conversation
	// context at mount.
	Seed SelectedValue

	// Defaults is the dual-tier persisted default store. Nil disables
	// persistence (resolution still works in-memory).
	Defaults *storage.DefaultStore

	// AnnounceSink receives accessibility announcements. Nil discards.
	AnnounceSink announce.Sink

	// Language selects the announcement locale. Zero value is English.
	Language language.Tag

	// Filter overrides the search matching collaborator.
	Filter search.FilterFunc

	// DebounceDelay overrides the search debounce interval (tests).
	DebounceDelay time.Duration

	// KeyDialog is the API-key dialog whose state the engine forwards.
	KeyDialog KeyDialog

	// Log receives diagnostics. Nil discards.
	Log *logging.Logger
}

// Engine is the selection-state engine. One instance per picker mount.
type Engine struct {
	mu sync.Mutex

	store     *Store
	pipeline  *search.Pipeline
	snapshot  catalog.Snapshot
	mention   Mention
	announcer *announce.Announcer
	defaults  *storage.DefaultStore
	keyDialog KeyDialog
	log       *logging.Logger
}

// New creates an engine. A nil Mention is a wiring bug and panics: the
// engine is unusable outside a host that applies selections somewhere.
func New(opts Options) *Engine {
	if opts.Mention == nil {
		panic("selection: Engine requires a Mention collaborator")
	}
	lang := opts.Language
	if lang == (language.Tag{}) {
		lang = language.English
	}
	keyDialog := opts.KeyDialog
	if keyDialog == nil {
		keyDialog = &nopKeyDialog{}
	}
	if opts.Defaults == nil {
		opts.Defaults = storage.NewDefaultStore(nil, nil, opts.Log)
	}

	return &Engine{
		store:     NewStore(opts.Seed),
		pipeline:  search.NewPipeline(opts.Filter, opts.DebounceDelay),
		snapshot:  catalog.Snapshot{}.Normalize(),
		mention:   opts.Mention,
		announcer: announce.New(lang, opts.AnnounceSink),
		defaults:  opts.Defaults,
		keyDialog: keyDialog,
		log:       logging.OrNop(opts.Log).Component("selection"),
	}
}

// Selected returns the current selection.
func (e *Engine) Selected() SelectedValue {
	return e.store.Get()
}

// SetSelected overwrites the selection directly. Callers own the
// SelectedValue invariants; prefer the Select* commands.
func (e *Engine) SetSelected(v SelectedValue) {
	e.store.Set(v)
}

// Search exposes the debounced search pipeline.
func (e *Engine) Search() *search.Pipeline {
	return e.pipeline
}

// Catalog returns the engine's current catalog snapshot.
func (e *Engine) Catalog() catalog.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot
}

// SetCatalog installs a new catalog snapshot for both selection and
// search. Hosts should call Reconcile afterwards, on the next cycle of
// their event loop.
func (e *Engine) SetCatalog(snap catalog.Snapshot) {
	snap = snap.Normalize()
	e.mu.Lock()
	e.snapshot = snap
	e.mu.Unlock()
	e.pipeline.SetCatalog(snap)
}

// KeyDialogOpen forwards the API-key dialog's open state.
func (e *Engine) KeyDialogOpen() bool {
	return e.keyDialog.Open()
}

// SetKeyDialogOpen forwards an open/close request to the API-key dialog.
func (e *Engine) SetKeyDialogOpen(open bool) {
	e.keyDialog.SetOpen(open)
}

// Close releases engine resources: the debounce timer is canceled so no
// stale search commit can land after teardown.
func (e *Engine) Close() {
	e.pipeline.Stop()
}
