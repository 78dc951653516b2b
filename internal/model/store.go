// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nurbergenoovv/CustomLibreChat1/internal/util"
)

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// ErrConversationNotFound is returned when looking up an unknown id.
var ErrConversationNotFound = errors.New("conversation not found")

// ConversationStore persists conversations as one JSON file per
// conversation. The persisted record carries the last applied selection,
// which seeds the picker on the next mount.
type ConversationStore struct {
	// BaseDir is the directory holding conversation files.
	BaseDir string

	// MaxConversations limits stored conversations (0 = unlimited).
	// Oldest records by update time are pruned first.
	MaxConversations int
}

// NewConversationStore creates a store rooted at baseDir, creating the
// directory if needed.
func NewConversationStore(baseDir string) (*ConversationStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create conversations dir: %w", err)
	}
	return &ConversationStore{
		BaseDir:          baseDir,
		MaxConversations: 100,
	}, nil
}

// Save writes the conversation to disk atomically and enforces the
// store limit.
func (s *ConversationStore) Save(conv *Conversation) error {
	if conv.ID == "" {
		return errors.New("conversation has no id")
	}

	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal conversation: %w", err)
	}
	if err := util.AtomicWriteFile(s.filePath(conv.ID), data, 0644); err != nil {
		return fmt.Errorf("write conversation: %w", err)
	}

	s.enforceLimit()
	return nil
}

// Load reads one conversation by id.
func (s *ConversationStore) Load(id string) (*Conversation, error) {
	data, err := os.ReadFile(s.filePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConversationNotFound, id)
		}
		return nil, fmt.Errorf("read conversation: %w", err)
	}

	var conv Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("parse conversation %s: %w", id, err)
	}
	return &conv, nil
}

// Latest returns the most recently updated conversation, or
// ErrConversationNotFound when the store is empty. Unreadable files are
// skipped.
func (s *ConversationStore) Latest() (*Conversation, error) {
	convs, err := s.list()
	if err != nil {
		return nil, err
	}
	if len(convs) == 0 {
		return nil, ErrConversationNotFound
	}
	return convs[0], nil
}

// List returns all stored conversations, most recently updated first.
func (s *ConversationStore) List() ([]*Conversation, error) {
	return s.list()
}

// Delete removes one conversation. Deleting an unknown id is not an
// error.
func (s *ConversationStore) Delete(id string) error {
	err := os.Remove(s.filePath(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete conversation: %w", err)
	}
	return nil
}

// Clear removes every stored conversation.
func (s *ConversationStore) Clear() error {
	convs, err := s.list()
	if err != nil {
		return err
	}
	for _, c := range convs {
		if err := s.Delete(c.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *ConversationStore) list() ([]*Conversation, error) {
	entries, err := os.ReadDir(s.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read conversations dir: %w", err)
	}

	var convs []*Conversation
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".json")
		conv, err := s.Load(id)
		if err != nil {
			continue // Corrupt file, skip
		}
		convs = append(convs, conv)
	}

	sort.Slice(convs, func(i, j int) bool {
		return convs[i].UpdatedAt.After(convs[j].UpdatedAt)
	})
	return convs, nil
}

// enforceLimit prunes the oldest conversations past MaxConversations.
// Failures are ignored; the limit is advisory.
func (s *ConversationStore) enforceLimit() {
	if s.MaxConversations <= 0 {
		return
	}
	convs, err := s.list()
	if err != nil || len(convs) <= s.MaxConversations {
		return
	}
	for _, c := range convs[s.MaxConversations:] {
		os.Remove(s.filePath(c.ID))
	}
}

func (s *ConversationStore) filePath(id string) string {
	return filepath.Join(s.BaseDir, id+".json")
}
