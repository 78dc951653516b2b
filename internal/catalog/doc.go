// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog defines the selectable-target catalog: provider
// endpoints, named model spec presets, and the agent/assistant maps
// supplied by upstream providers.
//
// The selection engine never fetches catalog data itself. It consumes
// immutable Snapshot values produced here, either from a TOML catalog
// file (see Load) or from any other provider that can build a Snapshot.
// A Snapshot handed to the engine is always normalized: absent maps are
// replaced with empty ones so consumers never special-case nil.
package catalog
