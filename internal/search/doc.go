// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package search implements the debounced catalog search pipeline.
//
// Raw keystrokes go in at any rate; a trailing-edge debouncer commits a
// search value once input pauses. A committed non-empty value produces
// filtered results over the merged catalog (model specs plus endpoints),
// with the actual matching delegated to a pluggable FilterFunc. An empty
// committed value means "no active search" and yields nil results, which
// is distinct from a search with zero matches.
package search
