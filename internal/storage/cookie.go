// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/nurbergenoovv/CustomLibreChat1/internal/util"
)

// =============================================================================
// COOKIE TIER
// =============================================================================

// CookieMaxAge is the lifetime of persisted default cookies. Long enough
// to survive any realistic key-value store wipe.
const CookieMaxAge = 10 * 365 * 24 * time.Hour

// CookieJar is the durable cookie tier: a plain text file holding one
// Set-Cookie record per line. Records carry Path=/, SameSite=Lax and a
// multi-year expiry, and expired or malformed lines read as absent.
type CookieJar struct {
	path string
}

// NewCookieJar returns a jar backed by the file at path. The file is
// created lazily on first Set.
func NewCookieJar(path string) *CookieJar {
	return &CookieJar{path: path}
}

// Get returns the unexpired value stored under name.
func (j *CookieJar) Get(name string) (string, bool, error) {
	cookies, err := j.readAll()
	if err != nil {
		return "", false, err
	}
	for _, c := range cookies {
		if c.Name != name {
			continue
		}
		if !c.Expires.IsZero() && time.Now().After(c.Expires) {
			return "", false, nil
		}
		return c.Value, true, nil
	}
	return "", false, nil
}

// Set writes name=value with the standard attributes, replacing any
// existing record of the same name. The rewrite is atomic.
func (j *CookieJar) Set(name, value string) error {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(CookieMaxAge).UTC(),
	}
	if err := cookie.Valid(); err != nil {
		return fmt.Errorf("invalid cookie: %w", err)
	}

	cookies, err := j.readAll()
	if err != nil {
		// Unreadable jar is rebuilt from scratch rather than abandoned.
		cookies = nil
	}

	var sb strings.Builder
	replaced := false
	for _, c := range cookies {
		if c.Name == name {
			sb.WriteString(cookie.String())
			replaced = true
		} else {
			sb.WriteString(c.String())
		}
		sb.WriteByte('\n')
	}
	if !replaced {
		sb.WriteString(cookie.String())
		sb.WriteByte('\n')
	}

	return util.AtomicWriteFile(j.path, []byte(sb.String()), 0600)
}

// readAll parses every well-formed record in the jar. A missing file is
// an empty jar.
func (j *CookieJar) readAll() ([]*http.Cookie, error) {
	f, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var cookies []*http.Cookie
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c, err := http.ParseSetCookie(line)
		if err != nil {
			continue // Malformed line, skip
		}
		cookies = append(cookies, c)
	}
	return cookies, scanner.Err()
}
