// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/nurbergenoovv/CustomLibreChat1/internal/catalog"
)

// =============================================================================
// FUZZY MATCHING
// =============================================================================

// Match performs fuzzy matching between a query and a target string.
// Returns a score (higher is better) and whether the match succeeded.
//
// Matching rules:
//   - Each query character must appear in order in the target
//   - Consecutive matches score higher
//   - Matches at the start or at word boundaries score higher
//   - Case-insensitive, with a small bonus for exact case
func Match(query, target string) (score int, matched bool) {
	if query == "" {
		return 0, true
	}

	q := []rune(strings.ToLower(query))
	t := []rune(strings.ToLower(target))
	if len(q) > len(t) {
		return 0, false
	}

	qOrig := []rune(query)
	tOrig := []rune(target)

	qi := 0
	last := -1
	for ti := 0; ti < len(t) && qi < len(q); ti++ {
		if t[ti] != q[qi] {
			continue
		}
		s := 1
		if last == ti-1 {
			s += 5
		}
		if ti == 0 {
			s += 10
		}
		if wordBoundary(t, ti) {
			s += 7
		}
		if tOrig[ti] == qOrig[qi] {
			s += 2
		}
		score += s
		last = ti
		qi++
	}

	matched = qi == len(q)
	if matched {
		// Shorter targets are better matches.
		score -= len(t) / 4
	}
	return score, matched
}

// wordBoundary reports whether pos follows a separator or a camelCase hump.
func wordBoundary(runes []rune, pos int) bool {
	if pos == 0 {
		return true
	}
	prev := runes[pos-1]
	if prev == ' ' || prev == '/' || prev == '-' || prev == '_' || prev == '.' {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(runes[pos])
}

// =============================================================================
// CATALOG FILTER
// =============================================================================

// FuzzyFilter is the default FilterFunc: it matches the query against
// every name a catalog entry can be known by, including the agent and
// assistant display names behind an endpoint, and returns items ranked
// by their best-scoring text.
func FuzzyFilter(query string, items []Item, agents *catalog.AgentsMap, assistants catalog.AssistantsMap) []Item {
	type scored struct {
		item  Item
		score int
	}

	var matches []scored
	for _, it := range items {
		best, ok := bestScore(query, searchTexts(it, agents, assistants))
		if !ok {
			continue
		}
		matches = append(matches, scored{item: it, score: best})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	out := make([]Item, len(matches))
	for i, m := range matches {
		out[i] = m.item
	}
	return out
}

// bestScore returns the highest score among texts that match the query.
func bestScore(query string, texts []string) (int, bool) {
	best := 0
	ok := false
	for _, text := range texts {
		score, matched := Match(query, text)
		if !matched {
			continue
		}
		if !ok || score > best {
			best = score
			ok = true
		}
	}
	return best, ok
}

// searchTexts collects every string an item can be found by.
func searchTexts(it Item, agents *catalog.AgentsMap, assistants catalog.AssistantsMap) []string {
	switch it.Kind {
	case ItemSpec:
		texts := []string{it.Spec.Name, it.Spec.Label, it.Spec.Description}
		p := it.Spec.Preset
		if p.AgentID != "" {
			if a, ok := agents.Get(p.AgentID); ok {
				texts = append(texts, a.Name)
			}
		}
		if p.AssistantID != "" {
			if a, ok := assistants.Assistant(p.Endpoint, p.AssistantID); ok {
				texts = append(texts, a.Name)
			}
		}
		if p.Model != "" {
			texts = append(texts, p.Model)
		}
		return texts

	case ItemEndpoint:
		e := it.Endpoint
		texts := []string{e.Value, e.Label}
		texts = append(texts, e.Models...)
		for _, name := range e.AgentNames {
			texts = append(texts, name)
		}
		for _, name := range e.AssistantNames {
			texts = append(texts, name)
		}
		// The agent/assistant maps carry the authoritative names; the
		// descriptor fields above are aliases a provider may pre-derive.
		if catalog.IsAgentsEndpoint(e.Value) {
			for _, id := range agents.IDs() {
				if a, ok := agents.Get(id); ok && a.Name != "" {
					texts = append(texts, a.Name)
				}
			}
		}
		if catalog.IsAssistantsEndpoint(e.Value) {
			for _, a := range assistants[e.Value] {
				if a.Name != "" {
					texts = append(texts, a.Name)
				}
			}
		}
		return texts
	}
	return nil
}
