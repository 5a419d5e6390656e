package ristretto

import (
	"testing"
	"time"
)

func TestCache_SetAndGet(t *testing.T) {
	t.Parallel()
	cache, err := New[string]()
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	// 1. Basic Set and Get
	key, value := "test-key", "test-value"
	cache.Set(key, value, 1)
	// Ristretto processes writes asynchronously, so a small delay is needed for the value to become available.
	time.Sleep(10 * time.Millisecond)

	retrieved, found := cache.Get(key)
	if !found {
		t.Errorf("expected to find key %q, but it was not found", key)
	}
	if retrieved != value {
		t.Errorf("expected value %q, but got %q", value, retrieved)
	}

	// 2. Get Non-Existent Key
	retrieved, found = cache.Get("non-existent-key")
	if found {
		t.Error("expected not to find key, but it was found")
	}
	if retrieved != "" {
		t.Errorf("expected zero value \"\", but got %q", retrieved)
	}

	// 3. Overwrite Key
	newValue := "new-value"
	cache.Set(key, newValue, 1)
	time.Sleep(10 * time.Millisecond)

	retrieved, found = cache.Get(key)
	if !found {
		t.Errorf("expected to find key %q after overwrite, but it was not found", key)
	}
	if retrieved != newValue {
		t.Errorf("expected overwritten value %q, but got %q", newValue, retrieved)
	}
}

func TestCache_SetWithTTL(t *testing.T) {
	t.Parallel()
	cache, err := New[int]()
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	key, value := "ttl-key", 123
	ttl := 20 * time.Millisecond

	cache.SetWithTTL(key, value, 1, ttl)
	time.Sleep(10 * time.Millisecond) // Wait for write to process

	retrieved, found := cache.Get(key)
	if !found {
		t.Fatal("key not found before TTL expiration")
	}
	if retrieved != value {
		t.Fatalf("expected value %d, but got %d", value, retrieved)
	}

	time.Sleep(ttl)

	retrieved, found = cache.Get(key)
	if found {
		t.Errorf("key was found after TTL expiration, but should have been evicted")
	}
	if retrieved != 0 {
		t.Errorf("expected zero value 0 for int, but got %d", retrieved)
	}
}

func TestCache_Del(t *testing.T) {
	t.Parallel()
	cache, err := New[string]()
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	cache.Set("key", "value", 1)
	time.Sleep(10 * time.Millisecond)

	if _, found := cache.Get("key"); !found {
		t.Fatal("key not found before Del")
	}

	cache.Del("key")

	if _, found := cache.Get("key"); found {
		t.Error("key was found after Del, but should have been removed")
	}
}
