// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package selection

import (
	"github.com/nurbergenoovv/CustomLibreChat1/internal/catalog"
)

// =============================================================================
// DEFAULT-AGENT RESOLVER
// =============================================================================

// Reconcile picks a default agent when nothing concrete is selected.
// Hosts call it after every catalog or selection change, on the cycle
// following the change — never synchronously inside a command — so the
// resolver cannot fight an in-flight user action. The guard makes it
// idempotent: once a non-agents selection or a fully-specified agent
// selection exists, Reconcile is a no-op.
//
// Precedence: persisted default (if still present in the catalog), then
// the first non-ephemeral agents-map entry, then the first non-ephemeral
// entry of the raw agents list. Auto-picks run through the same command
// path as an explicit model selection and are persisted to both storage
// tiers, each best-effort.
func (e *Engine) Reconcile() {
	e.mu.Lock()
	defer e.mu.Unlock()

	sel := e.store.Get()
	if sel.Endpoint != "" && !catalog.IsAgentsEndpoint(sel.Endpoint) {
		return
	}
	if catalog.IsAgentsEndpoint(sel.Endpoint) && sel.Model != "" {
		return
	}

	agentsEndpoint, ok := e.snapshot.Endpoint(catalog.EndpointAgents)
	if !ok {
		// No agents endpoint surfaced; nothing to default to.
		return
	}

	// Persisted default, if it still references a live agent.
	if id, found := e.defaults.Read(); found && !catalog.IsEphemeralAgent(id) {
		if e.snapshot.Agents.Has(id) || agentListHas(e.snapshot.AgentList, id) {
			e.log.Debug().Str("agent", id).Msg("restoring persisted default agent")
			e.selectModelLocked(agentsEndpoint, id)
			return
		}
		e.log.Debug().Str("agent", id).Msg("persisted default agent no longer in catalog, ignoring")
	}

	// Map-first fallback, then list-first.
	id := firstEligible(e.snapshot.Agents.IDs())
	if id == "" {
		ids := make([]string, 0, len(e.snapshot.AgentList))
		for _, a := range e.snapshot.AgentList {
			ids = append(ids, a.ID)
		}
		id = firstEligible(ids)
	}
	if id == "" {
		// No agents available at all; silently leave nothing selected.
		return
	}

	e.log.Debug().Str("agent", id).Msg("auto-selecting default agent")
	e.selectModelLocked(agentsEndpoint, id)
	e.defaults.Write(id)
}

// firstEligible returns the first id that may serve as a default.
func firstEligible(ids []string) string {
	for _, id := range ids {
		if !catalog.IsEphemeralAgent(id) {
			return id
		}
	}
	return ""
}

// agentListHas reports whether the raw agents list contains id,
// ephemeral entries excluded.
func agentListHas(agents []catalog.Agent, id string) bool {
	for _, a := range agents {
		if catalog.IsEphemeralAgent(a.ID) {
			continue
		}
		if a.ID == id {
			return true
		}
	}
	return false
}
