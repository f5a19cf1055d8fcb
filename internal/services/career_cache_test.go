package services

import (
	"testing"
	"time"
)

func TestStableKeyOrderInsensitive(t *testing.T) {
	a := map[string]any{
		"interests": "tech",
		"skills":    "go",
		"context":   map[string]any{"task": "explore", "extra": []any{1, 2}},
	}
	b := map[string]any{
		"context":   map[string]any{"extra": []any{1, 2}, "task": "explore"},
		"skills":    "go",
		"interests": "tech",
	}
	if StableKey(a) != StableKey(b) {
		t.Errorf("key order should not matter: %q vs %q", StableKey(a), StableKey(b))
	}
}

func TestStableKeyDistinguishesValues(t *testing.T) {
	a := map[string]any{"interests": "tech"}
	b := map[string]any{"interests": "design"}
	if StableKey(a) == StableKey(b) {
		t.Error("different values must produce different keys")
	}

	// Array order is semantic and must be preserved.
	c := map[string]any{"list": []any{"a", "b"}}
	d := map[string]any{"list": []any{"b", "a"}}
	if StableKey(c) == StableKey(d) {
		t.Error("array order must affect the key")
	}
}

func TestStableKeyPrimitives(t *testing.T) {
	if got := StableKey(nil); got != "" {
		t.Errorf("nil should map to empty string, got %q", got)
	}
	if got := StableKey("plain"); got != "plain" {
		t.Errorf("got %q, want %q", got, "plain")
	}
	if got := StableKey(42); got != "42" {
		t.Errorf("got %q, want %q", got, "42")
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	now := time.Unix(1000, 0)
	cache := NewTTLCacheWithClock(time.Minute, func() time.Time { return now })

	cache.Set("k", &CareerResult{Mood: MoodTagNeutral})

	var got CareerResult
	if !cache.Get("k", &got) {
		t.Fatal("expected hit before expiry")
	}

	now = now.Add(59 * time.Second)
	if !cache.Get("k", &got) {
		t.Fatal("expected hit just before expiry")
	}

	now = now.Add(2 * time.Second)
	if cache.Get("k", &got) {
		t.Fatal("expected miss after expiry")
	}
	if cache.Len() != 0 {
		t.Errorf("expired entry should be evicted, len = %d", cache.Len())
	}
}

func TestTTLCacheDeepCopy(t *testing.T) {
	cache := NewTTLCache(time.Minute)

	original := &CareerResult{Careers: []CareerItem{{Title: "Software Developer"}}}
	cache.Set("k", original)
	original.Careers[0].Title = "mutated after set"

	var first CareerResult
	if !cache.Get("k", &first) {
		t.Fatal("expected hit")
	}
	if first.Careers[0].Title != "Software Developer" {
		t.Errorf("cache must not alias the stored value, got %q", first.Careers[0].Title)
	}

	// Mutating a returned copy must not leak into later reads.
	first.Careers[0].Title = "mutated after get"
	first.Meta = &CareerMeta{Source: "fallback_cache"}

	var second CareerResult
	if !cache.Get("k", &second) {
		t.Fatal("expected hit")
	}
	if second.Careers[0].Title != "Software Developer" {
		t.Errorf("later reads must see the original value, got %q", second.Careers[0].Title)
	}
	if second.Meta != nil {
		t.Error("meta attached to one copy must not appear on another")
	}
}

func TestTTLCacheMissLeavesDstUntouched(t *testing.T) {
	cache := NewTTLCache(time.Minute)
	got := CareerResult{Mood: "preexisting"}
	if cache.Get("absent", &got) {
		t.Fatal("expected miss")
	}
	if got.Mood != "preexisting" {
		t.Errorf("dst was modified on a miss: %q", got.Mood)
	}
}
