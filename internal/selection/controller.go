// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package selection

import (
	"github.com/nurbergenoovv/CustomLibreChat1/internal/catalog"
)

// =============================================================================
// SELECTION COMMANDS
// =============================================================================
//
// The three commands below are the only writers of the selected value in
// response to user actions. Each notifies the mention collaborator first,
// then writes the store, mirroring the upstream conversation before the
// local state flips.

// SelectSpec selects a named preset. The effective model identifier is
// resolved from the preset: agent id on the agents endpoint, assistant id
// on an assistants endpoint, otherwise the plain model field (empty when
// absent). ModelSpec records the spec name.
func (e *Engine) SelectSpec(spec catalog.ModelSpec) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selectSpecLocked(spec)
}

// SelectEndpoint selects an endpoint directly. Only endpoints without a
// model sub-catalog can be selected this way; for model-bearing endpoints
// this is a no-op and a model must be chosen instead.
func (e *Engine) SelectEndpoint(ep catalog.Endpoint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selectEndpointLocked(ep)
}

// SelectModel selects a concrete model, agent, or assistant under an
// endpoint, notifies the mention collaborator with the payload matching
// the endpoint category, and announces the new selection.
func (e *Engine) SelectModel(ep catalog.Endpoint, modelID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selectModelLocked(ep, modelID)
}

func (e *Engine) selectSpecLocked(spec catalog.ModelSpec) {
	p := spec.Preset

	model := p.Model
	switch {
	case catalog.IsAgentsEndpoint(p.Endpoint):
		model = p.AgentID
	case catalog.IsAssistantsEndpoint(p.Endpoint):
		model = p.AssistantID
	}

	e.mention.OnSelectSpec(spec)
	e.store.Set(SelectedValue{
		Endpoint:  p.Endpoint,
		Model:     model,
		ModelSpec: spec.Name,
	})
	e.log.Debug().Str("spec", spec.Name).Str("endpoint", p.Endpoint).Str("model", model).Msg("spec selected")
}

func (e *Engine) selectEndpointLocked(ep catalog.Endpoint) {
	if ep.HasModels {
		return
	}
	e.mention.OnSelectEndpoint(ep.Value, nil)
	e.store.Set(SelectedValue{Endpoint: ep.Value})
	e.log.Debug().Str("endpoint", ep.Value).Msg("endpoint selected")
}

func (e *Engine) selectModelLocked(ep catalog.Endpoint, modelID string) {
	var name string
	switch {
	case catalog.IsAgentsEndpoint(ep.Value):
		agent, _ := e.snapshot.Agents.Get(modelID)
		e.mention.OnSelectEndpoint(ep.Value, &Extra{AgentID: modelID, Model: agent.Model})
		name = e.snapshot.AgentName(modelID)

	case catalog.IsAssistantsEndpoint(ep.Value):
		asst, _ := e.snapshot.Assistants.Assistant(ep.Value, modelID)
		e.mention.OnSelectEndpoint(ep.Value, &Extra{AssistantID: modelID, Model: asst.Model})
		name = e.snapshot.AssistantName(ep.Value, modelID)

	default:
		e.mention.OnSelectEndpoint(ep.Value, &Extra{Model: modelID})
		name = modelID
	}

	e.store.Set(SelectedValue{Endpoint: ep.Value, Model: modelID})
	e.announcer.ModelSelected(name)
	e.log.Debug().Str("endpoint", ep.Value).Str("model", modelID).Msg("model selected")
}
