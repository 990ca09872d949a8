package cache

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c, err := New[int](1000, time.Minute)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	defer c.Close()

	c.Set("m123", 3)
	c.Wait()
	got, ok := c.Get("m123")
	if !ok || got != 3 {
		t.Fatalf("Get = %d,%v, want 3,true", got, ok)
	}

	c.Delete("m123")
	c.Wait()
	if _, ok := c.Get("m123"); ok {
		t.Fatalf("deleted key still present")
	}
}

func TestCacheTypeMismatch(t *testing.T) {
	c, err := New[[]string](10, 0)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	defer c.Close()

	if _, ok := c.Get("missing"); ok {
		t.Fatalf("missing key reported as hit")
	}
}

func TestCacheRejectsNonPositiveSize(t *testing.T) {
	if _, err := New[int](0, 0); err == nil {
		t.Fatalf("expected error for zero size")
	}
}
