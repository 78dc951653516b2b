// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"github.com/nurbergenoovv/CustomLibreChat1/internal/logging"
)

// =============================================================================
// DUAL-TIER DEFAULT STORE
// =============================================================================

// DefaultAgentKey is the fixed key the persisted default agent id lives
// under, in both tiers.
const DefaultAgentKey = "agent_id__0"

// DefaultStore is the read-with-fallback / write-to-both accessor over
// the two storage tiers. Selection logic only ever talks to this type;
// tier failures are swallowed here and logged at debug level.
type DefaultStore struct {
	kv  *KV
	jar *CookieJar
	log *logging.Logger
}

// NewDefaultStore combines the two tiers. Either tier may be nil, in
// which case it is treated as permanently unavailable.
func NewDefaultStore(kv *KV, jar *CookieJar, log *logging.Logger) *DefaultStore {
	return &DefaultStore{kv: kv, jar: jar, log: logging.OrNop(log).Component("storage")}
}

// Read returns the persisted default agent id, trying the key-value tier
// first and falling back to the cookie tier when the former is empty or
// failing. A cookie hit is mirrored back into the key-value tier,
// best-effort, so the fast tier heals after a wipe.
func (s *DefaultStore) Read() (string, bool) {
	if s.kv != nil {
		value, ok, err := s.kv.Get(DefaultAgentKey)
		if err != nil {
			s.log.Debug().Err(err).Msg("kv read failed, falling back to cookie")
		} else if ok && value != "" {
			return value, true
		}
	}

	if s.jar == nil {
		return "", false
	}
	value, ok, err := s.jar.Get(DefaultAgentKey)
	if err != nil {
		s.log.Debug().Err(err).Msg("cookie read failed, treating as absent")
		return "", false
	}
	if !ok || value == "" {
		return "", false
	}

	// Heal the key-value tier from the durable one.
	if s.kv != nil {
		if err := s.kv.Set(DefaultAgentKey, value); err != nil {
			s.log.Debug().Err(err).Msg("kv mirror failed, continuing")
		}
	}
	return value, true
}

// Write persists the default agent id into both tiers, swallowing each
// tier's failure independently.
func (s *DefaultStore) Write(id string) {
	if s.kv != nil {
		if err := s.kv.Set(DefaultAgentKey, id); err != nil {
			s.log.Debug().Err(err).Str("agent", id).Msg("kv write failed, skipped")
		}
	}
	if s.jar != nil {
		if err := s.jar.Set(DefaultAgentKey, id); err != nil {
			s.log.Debug().Err(err).Str("agent", id).Msg("cookie write failed, skipped")
		}
	}
}
