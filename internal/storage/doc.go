// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists the user's default agent across sessions.
//
// The value is a single agent id stored redundantly in two independent
// tiers: a SQLite key-value store and a cookie file with a multi-year
// expiry. The cookie tier is the durable fallback when the key-value
// store has been cleared. Both tiers are ambient and unscoped; multiple
// processes may race on them and last-write-wins is accepted.
//
// Every read and write is wrapped so that a failing tier degrades to
// "value absent" or "skip persistence" instead of surfacing an error to
// selection logic. The only consumer-facing API is DefaultStore with its
// Read/Write pair.
package storage
