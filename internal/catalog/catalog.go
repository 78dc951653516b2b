// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

// =============================================================================
// WELL-KNOWN ENDPOINTS
// =============================================================================

// Well-known endpoint values with special selection semantics.
const (
	// EndpointAgents is the agents-capable provider. Selecting a "model"
	// on this endpoint actually selects an agent id.
	EndpointAgents = "agents"

	// EndpointAssistants is the assistants-capable provider.
	EndpointAssistants = "assistants"

	// EndpointAzureAssistants is the Azure-hosted assistants provider.
	EndpointAzureAssistants = "azureAssistants"
)

// EphemeralAgentID is the reserved marker for a transient, unsaved agent.
// It is never eligible for persistence or automatic default selection.
const EphemeralAgentID = "ephemeral"

// IsAgentsEndpoint reports whether the endpoint value denotes the
// agents-capable provider.
func IsAgentsEndpoint(value string) bool {
	return value == EndpointAgents
}

// IsAssistantsEndpoint reports whether the endpoint value denotes an
// assistants-capable provider.
func IsAssistantsEndpoint(value string) bool {
	return value == EndpointAssistants || value == EndpointAzureAssistants
}

// IsEphemeralAgent reports whether the id is the reserved ephemeral marker.
func IsEphemeralAgent(id string) bool {
	return id == EphemeralAgentID
}

// =============================================================================
// CATALOG TYPES
// =============================================================================

// Endpoint describes one provider/category in the selection catalog.
// Immutable once published in a Snapshot.
type Endpoint struct {
	// Value is the endpoint identifier used in selections.
	Value string `toml:"value"`

	// Label is the human-readable display name. Falls back to Value.
	Label string `toml:"label"`

	// HasModels indicates the endpoint carries a model sub-catalog.
	// Endpoints without one are selected directly.
	HasModels bool `toml:"has_models"`

	// Models is the model sub-catalog for plain model endpoints.
	Models []string `toml:"models"`

	// AgentNames maps agent id to display name for the agents endpoint.
	AgentNames map[string]string `toml:"agent_names"`

	// AssistantNames maps assistant id to display name for assistants
	// endpoints.
	AssistantNames map[string]string `toml:"assistant_names"`
}

// DisplayName returns the label, falling back to the raw endpoint value.
func (e Endpoint) DisplayName() string {
	if e.Label != "" {
		return e.Label
	}
	return e.Value
}

// Preset is the pre-configured selection carried by a ModelSpec.
type Preset struct {
	Endpoint    string `toml:"endpoint"`
	Model       string `toml:"model"`
	AgentID     string `toml:"agent_id"`
	AssistantID string `toml:"assistant_id"`
}

// ModelSpec is a named preset bundling an endpoint with a concrete
// model, agent, or assistant choice.
type ModelSpec struct {
	Name        string `toml:"name"`
	Label       string `toml:"label"`
	Description string `toml:"description"`
	Preset      Preset `toml:"preset"`
}

// DisplayName returns the spec label, falling back to the spec name.
func (s ModelSpec) DisplayName() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Name
}

// Agent is one entry of the agents catalog.
type Agent struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Model string `toml:"model"`

	// Access is the minimum permission level required to see this agent.
	Access AccessLevel `toml:"access"`
}

// Assistant is one entry of a provider's assistants catalog.
type Assistant struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Model string `toml:"model"`
}

// AssistantsMap maps a provider endpoint to its assistants, keyed by
// assistant id.
type AssistantsMap map[string]map[string]Assistant

// Assistant looks up an assistant under an endpoint. The zero value is
// returned when either level of the map is absent.
func (m AssistantsMap) Assistant(endpoint, id string) (Assistant, bool) {
	a, ok := m[endpoint][id]
	return a, ok
}

// =============================================================================
// ACCESS LEVELS
// =============================================================================

// AccessLevel is the permission level used to filter the agents list
// before it reaches the selection engine.
type AccessLevel int

const (
	AccessViewer AccessLevel = iota // Read-only visibility
	AccessEditor                    // Can edit agents
	AccessAdmin                     // Full administration
)

// String returns the config-file spelling of the level.
func (l AccessLevel) String() string {
	switch l {
	case AccessEditor:
		return "editor"
	case AccessAdmin:
		return "admin"
	default:
		return "viewer"
	}
}

// =============================================================================
// AGENTS MAP
// =============================================================================

// AgentsMap is an insertion-ordered map from agent id to Agent. The
// upstream catalogs guarantee a stable order, and default resolution
// depends on it, so a plain Go map is not enough.
type AgentsMap struct {
	order []string
	byID  map[string]Agent
}

// NewAgentsMap builds an AgentsMap from agents in the given order.
// Later duplicates overwrite the value but keep the original position.
func NewAgentsMap(agents ...Agent) *AgentsMap {
	m := &AgentsMap{byID: make(map[string]Agent, len(agents))}
	for _, a := range agents {
		m.Set(a)
	}
	return m
}

// Set inserts or replaces an agent.
func (m *AgentsMap) Set(a Agent) {
	if m.byID == nil {
		m.byID = make(map[string]Agent)
	}
	if _, exists := m.byID[a.ID]; !exists {
		m.order = append(m.order, a.ID)
	}
	m.byID[a.ID] = a
}

// Get returns the agent for id.
func (m *AgentsMap) Get(id string) (Agent, bool) {
	if m == nil {
		return Agent{}, false
	}
	a, ok := m.byID[id]
	return a, ok
}

// Has reports whether id is present.
func (m *AgentsMap) Has(id string) bool {
	_, ok := m.Get(id)
	return ok
}

// Len returns the number of agents.
func (m *AgentsMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// IDs returns agent ids in insertion order. The returned slice is a copy.
func (m *AgentsMap) IDs() []string {
	if m == nil {
		return nil
	}
	ids := make([]string, len(m.order))
	copy(ids, m.order)
	return ids
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is one immutable view of the full catalog, the unit handed to
// the selection engine. Consumers must treat it as read-only.
type Snapshot struct {
	// Specs are the named preset shortcuts.
	Specs []ModelSpec

	// Endpoints are the provider categories, in display order.
	Endpoints []Endpoint

	// Agents is the permission-filtered agents map.
	Agents *AgentsMap

	// AgentList is the raw ordered agents list, before map construction.
	AgentList []Agent

	// Assistants maps provider endpoint to its assistants.
	Assistants AssistantsMap
}

// Normalize replaces absent maps and slices with empty ones so that
// consumers never see nil. Returns the receiver for chaining.
func (s Snapshot) Normalize() Snapshot {
	if s.Specs == nil {
		s.Specs = []ModelSpec{}
	}
	if s.Endpoints == nil {
		s.Endpoints = []Endpoint{}
	}
	if s.Agents == nil {
		s.Agents = NewAgentsMap()
	}
	if s.AgentList == nil {
		s.AgentList = []Agent{}
	}
	if s.Assistants == nil {
		s.Assistants = AssistantsMap{}
	}
	return s
}

// Endpoint returns the endpoint descriptor with the given value.
func (s Snapshot) Endpoint(value string) (Endpoint, bool) {
	for _, e := range s.Endpoints {
		if e.Value == value {
			return e, true
		}
	}
	return Endpoint{}, false
}

// AgentName resolves an agent id to a display name, consulting the
// agents endpoint descriptor first and the agents map second. Falls back
// to the raw id.
func (s Snapshot) AgentName(id string) string {
	if ep, ok := s.Endpoint(EndpointAgents); ok {
		if name := ep.AgentNames[id]; name != "" {
			return name
		}
	}
	if a, ok := s.Agents.Get(id); ok && a.Name != "" {
		return a.Name
	}
	return id
}

// AssistantName resolves an assistant id to a display name under the
// given endpoint. Falls back to the raw id.
func (s Snapshot) AssistantName(endpoint, id string) string {
	if ep, ok := s.Endpoint(endpoint); ok {
		if name := ep.AssistantNames[id]; name != "" {
			return name
		}
	}
	if a, ok := s.Assistants.Assistant(endpoint, id); ok && a.Name != "" {
		return a.Name
	}
	return id
}
