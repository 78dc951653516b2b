// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound  = errors.New("catalog file not found")
	ErrInvalid   = errors.New("invalid catalog")
	ErrDuplicate = errors.New("duplicate catalog entry")
	ErrBadPreset = errors.New("spec preset references unknown endpoint")
	ErrBadAccess = errors.New("unknown access level")
)

// =============================================================================
// CATALOG FILE
// =============================================================================

// File is the on-disk TOML representation of the catalog.
//
// Layout:
//
//	[[endpoint]]
//	value = "openAI"
//	has_models = true
//	models = ["gpt-4o", "gpt-4o-mini"]
//
//	[[agent]]
//	id = "agent_research"
//	name = "Research Assistant"
//	model = "gpt-4o"
//	access = "viewer"
//
//	[[spec]]
//	name = "fast-default"
//	[spec.preset]
//	endpoint = "openAI"
//	model = "gpt-4o-mini"
//
//	[assistants.azureAssistants.asst_1]
//	name = "Helper"
//	model = "gpt-4o"
type File struct {
	Specs      []ModelSpec   `toml:"spec"`
	Endpoints  []Endpoint    `toml:"endpoint"`
	Agents     []Agent       `toml:"agent"`
	Assistants AssistantsMap `toml:"assistants"`
}

// Load reads and validates a catalog file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	// Assistant ids live in the map key; mirror them into the values.
	for _, byID := range f.Assistants {
		for id, a := range byID {
			if a.ID == "" {
				a.ID = id
				byID[id] = a
			}
		}
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks internal consistency of the catalog.
func (f *File) Validate() error {
	seen := make(map[string]bool, len(f.Endpoints))
	for _, e := range f.Endpoints {
		if e.Value == "" {
			return fmt.Errorf("%w: endpoint with empty value", ErrInvalid)
		}
		if seen[e.Value] {
			return fmt.Errorf("%w: endpoint %q", ErrDuplicate, e.Value)
		}
		seen[e.Value] = true
	}

	agentIDs := make(map[string]bool, len(f.Agents))
	for _, a := range f.Agents {
		if a.ID == "" {
			return fmt.Errorf("%w: agent with empty id", ErrInvalid)
		}
		if agentIDs[a.ID] {
			return fmt.Errorf("%w: agent %q", ErrDuplicate, a.ID)
		}
		agentIDs[a.ID] = true
	}

	for _, s := range f.Specs {
		if s.Name == "" {
			return fmt.Errorf("%w: spec with empty name", ErrInvalid)
		}
		if s.Preset.Endpoint == "" {
			return fmt.Errorf("%w: spec %q has no preset endpoint", ErrInvalid, s.Name)
		}
		if !seen[s.Preset.Endpoint] {
			return fmt.Errorf("%w: spec %q -> %q", ErrBadPreset, s.Name, s.Preset.Endpoint)
		}
	}

	return nil
}

// Snapshot builds a normalized catalog snapshot visible at the given
// access level. Agents above the level are filtered out before the map
// is built, matching what upstream providers do.
func (f *File) Snapshot(level AccessLevel) Snapshot {
	visible := make([]Agent, 0, len(f.Agents))
	for _, a := range f.Agents {
		if a.Access > level {
			continue
		}
		visible = append(visible, a)
	}

	endpoints := make([]Endpoint, len(f.Endpoints))
	copy(endpoints, f.Endpoints)

	// Derive display-name maps on the well-known endpoints when the file
	// does not spell them out.
	for i, e := range endpoints {
		switch {
		case IsAgentsEndpoint(e.Value) && e.AgentNames == nil:
			names := make(map[string]string, len(visible))
			for _, a := range visible {
				names[a.ID] = a.Name
			}
			endpoints[i].AgentNames = names
		case IsAssistantsEndpoint(e.Value) && e.AssistantNames == nil:
			names := make(map[string]string, len(f.Assistants[e.Value]))
			for id, a := range f.Assistants[e.Value] {
				names[id] = a.Name
			}
			endpoints[i].AssistantNames = names
		}
	}

	return Snapshot{
		Specs:      f.Specs,
		Endpoints:  endpoints,
		Agents:     NewAgentsMap(visible...),
		AgentList:  visible,
		Assistants: f.Assistants,
	}.Normalize()
}

// =============================================================================
// ACCESS LEVEL TOML SUPPORT
// =============================================================================

// UnmarshalText parses the config-file spelling of an access level.
func (l *AccessLevel) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "viewer":
		*l = AccessViewer
	case "editor":
		*l = AccessEditor
	case "admin":
		*l = AccessAdmin
	default:
		return fmt.Errorf("%w: %q", ErrBadAccess, text)
	}
	return nil
}

// MarshalText renders the config-file spelling of an access level.
func (l AccessLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
