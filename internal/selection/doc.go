// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package selection is the selection-state engine behind the model and
// agent picker.
//
// It owns the canonical selected value (endpoint/model/spec triple) and
// its transition rules, resolves a default agent when nothing is
// selected, mirrors that default into two storage tiers, and exposes the
// debounced catalog search. It reconciles three independently-changing
// inputs (catalog snapshots, user commands, persisted state) into one
// consistent selection.
//
// The engine does not fetch catalogs, render anything, or own network
// concerns; those belong to its collaborators. Collaborator callbacks
// (Mention, announce.Sink) run while the engine holds its lock and must
// not call back into the engine synchronously.
package selection
