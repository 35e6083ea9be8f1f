package cache

import (
	"testing"
	"time"
)

func TestGetSetAndEviction(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("get a: %v %v", v, ok)
	}
	// "b" is now least recently used; adding "c" evicts it.
	c.Set("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Fatalf("b should have been evicted")
	}
	if c.Size() != 2 {
		t.Fatalf("size = %d", c.Size())
	}
}

func TestTTLExpiry(t *testing.T) {
	c := NewLRUCache[string](10, 50*time.Millisecond)
	c.Set("k", "v")
	time.Sleep(80 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expired entry served")
	}
	if n := c.CleanExpired(); n != 0 {
		// Get already dropped it.
		t.Fatalf("CleanExpired removed %d entries", n)
	}
}

func TestClear(t *testing.T) {
	c := NewLRUCache[int](10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()
	if c.Size() != 0 {
		t.Fatalf("size after clear = %d", c.Size())
	}
	if _, ok := c.Get("a"); ok {
		t.Fatalf("cleared entry served")
	}
}
