// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// KEY-VALUE TIER
// =============================================================================

func openTestKV(t *testing.T) *KV {
	t.Helper()
	kv, err := OpenKV(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestKV_RoundTrip(t *testing.T) {
	kv := openTestKV(t)

	_, ok, err := kv.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("k", "v1"))
	v, ok, err := kv.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	// Upsert replaces.
	require.NoError(t, kv.Set("k", "v2"))
	v, _, err = kv.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)

	require.NoError(t, kv.Delete("k"))
	_, ok, err = kv.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKV_ClosedIsAnError(t *testing.T) {
	kv := openTestKV(t)
	require.NoError(t, kv.Close())

	_, _, err := kv.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, kv.Set("k", "v"), ErrClosed)
}

// =============================================================================
// COOKIE TIER
// =============================================================================

func TestCookieJar_RoundTrip(t *testing.T) {
	jar := NewCookieJar(filepath.Join(t.TempDir(), "cookies.txt"))

	_, ok, err := jar.Get(DefaultAgentKey)
	require.NoError(t, err)
	assert.False(t, ok, "missing file reads as empty jar")

	require.NoError(t, jar.Set(DefaultAgentKey, "g1"))
	v, ok, err := jar.Get(DefaultAgentKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "g1", v)

	// Replacing keeps a single record.
	require.NoError(t, jar.Set(DefaultAgentKey, "g2"))
	v, _, err = jar.Get(DefaultAgentKey)
	require.NoError(t, err)
	assert.Equal(t, "g2", v)
}

func TestCookieJar_RecordAttributes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")
	jar := NewCookieJar(path)
	require.NoError(t, jar.Set(DefaultAgentKey, "g1"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))

	c, err := http.ParseSetCookie(line)
	require.NoError(t, err)
	assert.Equal(t, DefaultAgentKey, c.Name)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	// Multi-year expiry: comfortably past nine years out.
	assert.True(t, c.Expires.After(time.Now().Add(9*365*24*time.Hour)))
}

func TestCookieJar_ExpiredReadsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")
	expired := &http.Cookie{
		Name:    DefaultAgentKey,
		Value:   "old",
		Path:    "/",
		Expires: time.Now().Add(-time.Hour).UTC(),
	}
	require.NoError(t, os.WriteFile(path, []byte(expired.String()+"\n"), 0600))

	jar := NewCookieJar(path)
	_, ok, err := jar.Get(DefaultAgentKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCookieJar_MalformedLinesSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")
	good := &http.Cookie{Name: DefaultAgentKey, Value: "g1", Path: "/", Expires: time.Now().Add(time.Hour).UTC()}
	content := "not a cookie line\n" + good.String() + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	jar := NewCookieJar(path)
	v, ok, err := jar.Get(DefaultAgentKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "g1", v)
}

func TestCookieJar_PreservesOtherCookies(t *testing.T) {
	jar := NewCookieJar(filepath.Join(t.TempDir(), "cookies.txt"))
	require.NoError(t, jar.Set("other", "keep"))
	require.NoError(t, jar.Set(DefaultAgentKey, "g1"))
	require.NoError(t, jar.Set(DefaultAgentKey, "g2"))

	v, ok, err := jar.Get("other")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "keep", v)
}

// =============================================================================
// DUAL-TIER DEFAULT STORE
// =============================================================================

func TestDefaultStore_WriteToBothReadPrefersKV(t *testing.T) {
	dir := t.TempDir()
	kv, err := OpenKV(filepath.Join(dir, "store.db"))
	require.NoError(t, err)
	defer kv.Close()
	jar := NewCookieJar(filepath.Join(dir, "cookies.txt"))

	s := NewDefaultStore(kv, jar, nil)
	s.Write("g1")

	v, ok, err := kv.Get(DefaultAgentKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "g1", v)

	v, ok, err = jar.Get(DefaultAgentKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "g1", v)

	got, ok := s.Read()
	assert.True(t, ok)
	assert.Equal(t, "g1", got)
}

func TestDefaultStore_CookieFallbackHealsKV(t *testing.T) {
	dir := t.TempDir()
	kv, err := OpenKV(filepath.Join(dir, "store.db"))
	require.NoError(t, err)
	defer kv.Close()
	jar := NewCookieJar(filepath.Join(dir, "cookies.txt"))

	// Simulate a cleared key-value store: only the cookie survives.
	require.NoError(t, jar.Set(DefaultAgentKey, "g7"))

	s := NewDefaultStore(kv, jar, nil)
	got, ok := s.Read()
	require.True(t, ok)
	assert.Equal(t, "g7", got)

	// The hit was mirrored back into the fast tier.
	v, ok, err := kv.Get(DefaultAgentKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "g7", v)
}

func TestDefaultStore_DegradesWhenTiersUnavailable(t *testing.T) {
	// Nil tiers stand in for disabled storage: reads report absent,
	// writes are silently skipped, nothing panics.
	s := NewDefaultStore(nil, nil, nil)

	_, ok := s.Read()
	assert.False(t, ok)
	s.Write("g1") // must not panic
}

func TestDefaultStore_ClosedKVFallsBackToCookie(t *testing.T) {
	dir := t.TempDir()
	kv, err := OpenKV(filepath.Join(dir, "store.db"))
	require.NoError(t, err)
	jar := NewCookieJar(filepath.Join(dir, "cookies.txt"))
	require.NoError(t, jar.Set(DefaultAgentKey, "g3"))

	require.NoError(t, kv.Close())

	s := NewDefaultStore(kv, jar, nil)
	got, ok := s.Read()
	assert.True(t, ok)
	assert.Equal(t, "g3", got)
}
