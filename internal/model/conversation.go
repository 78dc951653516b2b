// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the ambient conversation context the selection
// engine is mounted in: the conversation seeds the initial selection and
// receives every applied selection back through the mention collaborator.
package model

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nurbergenoovv/CustomLibreChat1/internal/catalog"
	"github.com/nurbergenoovv/CustomLibreChat1/internal/selection"
)

// =============================================================================
// CONVERSATION
// =============================================================================

// Conversation is the live conversation/session the picker acts on.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Active selection applied to this conversation.
	Endpoint    string `json:"endpoint"`
	Model       string `json:"model"`
	ModelSpec   string `json:"model_spec,omitempty"`
	AgentID     string `json:"agent_id,omitempty"`
	AssistantID string `json:"assistant_id,omitempty"`
}

// NewConversation creates an empty conversation with a generated id.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Seed returns the selection this conversation was last using, in the
// form the engine is seeded with at mount.
func (c *Conversation) Seed() selection.SelectedValue {
	return selection.SelectedValue{
		Endpoint:  c.Endpoint,
		Model:     c.Model,
		ModelSpec: c.ModelSpec,
	}
}

// =============================================================================
// MENTION COLLABORATOR
// =============================================================================

// Mention applies selections to a conversation. It is the default
// implementation of the engine's mention collaborator.
type Mention struct {
	mu   sync.Mutex
	conv *Conversation
}

// NewMention wraps a conversation.
func NewMention(conv *Conversation) *Mention {
	return &Mention{conv: conv}
}

// OnSelectEndpoint implements selection.Mention.
func (m *Mention) OnSelectEndpoint(endpoint string, extra *selection.Extra) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.conv
	c.Endpoint = endpoint
	c.ModelSpec = ""
	c.Model = ""
	c.AgentID = ""
	c.AssistantID = ""
	if extra != nil {
		c.Model = extra.Model
		c.AgentID = extra.AgentID
		c.AssistantID = extra.AssistantID
	}
	c.UpdatedAt = time.Now()
}

// OnSelectSpec implements selection.Mention.
func (m *Mention) OnSelectSpec(spec catalog.ModelSpec) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := spec.Preset
	c := m.conv
	c.Endpoint = p.Endpoint
	c.Model = p.Model
	c.AgentID = p.AgentID
	c.AssistantID = p.AssistantID
	c.ModelSpec = spec.Name
	c.UpdatedAt = time.Now()
}

// Conversation returns the wrapped conversation.
func (m *Mention) Conversation() *Conversation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conv
}
