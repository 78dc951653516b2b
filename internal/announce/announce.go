// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package announce is the accessibility boundary of the selection engine.
//
// Each model/agent selection produces exactly one polite-priority status
// announcement, built from a localized template with the display name
// substituted. The engine talks to a Sink; hosts decide what "polite"
// means for them (status bar, screen-reader live region, log line).
package announce

import (
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// =============================================================================
// SINKS
// =============================================================================

// Sink receives status announcements.
type Sink interface {
	// Polite delivers a non-interrupting status announcement.
	Polite(text string)
}

// NopSink discards announcements. Default for headless use.
type NopSink struct{}

// Polite implements Sink.
func (NopSink) Polite(string) {}

// StatusSink keeps the most recent announcement for display in a status
// line. Safe for concurrent use.
type StatusSink struct {
	mu   sync.Mutex
	last string
}

// Polite implements Sink.
func (s *StatusSink) Polite(text string) {
	s.mu.Lock()
	s.last = text
	s.mu.Unlock()
}

// Last returns the most recent announcement, if any.
func (s *StatusSink) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// =============================================================================
// LOCALIZED ANNOUNCER
// =============================================================================

func init() {
	message.SetString(language.English, "%s selected", "%s selected")
	message.SetString(language.Russian, "%s selected", "Выбрано: %s")
}

// Announcer formats announcements through a localized message printer
// and delivers them to a sink.
type Announcer struct {
	printer *message.Printer
	sink    Sink
}

// New creates an announcer for the given language. A nil sink defaults
// to NopSink.
func New(tag language.Tag, sink Sink) *Announcer {
	if sink == nil {
		sink = NopSink{}
	}
	return &Announcer{printer: message.NewPrinter(tag), sink: sink}
}

// ModelSelected announces that the named model, agent, or assistant is
// now the active selection.
func (a *Announcer) ModelSelected(name string) {
	a.sink.Polite(a.printer.Sprintf("%s selected", name))
}
