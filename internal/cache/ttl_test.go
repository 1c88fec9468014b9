package cache

import (
	"testing"
	"time"
)

func TestTTLSetGetDelete(t *testing.T) {
	c := New(50 * time.Millisecond)
	if got := c.Get("k"); got != nil {
		t.Fatalf("expected miss, got %q", got)
	}
	c.Set("k", []byte("v"))
	if got := c.Get("k"); string(got) != "v" {
		t.Fatalf("expected v, got %q", got)
	}
	c.Delete("k")
	if got := c.Get("k"); got != nil {
		t.Fatalf("expected miss after delete, got %q", got)
	}
}

func TestTTLExpiry(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Set("k", []byte("v"))
	time.Sleep(25 * time.Millisecond)
	if got := c.Get("k"); got != nil {
		t.Fatalf("expected expired entry, got %q", got)
	}
}
