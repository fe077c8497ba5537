package idgen

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func fixedClock() time.Time { return time.UnixMilli(1718000000000) }

func TestIDsUniqueWithinSameMillisecond(t *testing.T) {
	g := New(WithClock(fixedClock))
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		for _, id := range []string{g.NodeID(), g.ConnectionID()} {
			if seen[id] {
				t.Fatalf("duplicate id %q after %d iterations", id, i)
			}
			seen[id] = true
		}
	}
}

func TestIDFormat(t *testing.T) {
	g := New(WithClock(fixedClock), WithSession("abcd1234"))

	node := g.NodeID()
	if !strings.HasPrefix(node, "node_1718000000000_") || !strings.HasSuffix(node, "_abcd1234") {
		t.Errorf("NodeID() = %q, unexpected format", node)
	}
	conn := g.ConnectionID()
	if !strings.HasPrefix(conn, "conn_1718000000000_") {
		t.Errorf("ConnectionID() = %q, unexpected format", conn)
	}
	if parts := strings.Split(node, "_"); len(parts) != 4 {
		t.Errorf("NodeID() = %q, want 4 underscore-separated parts", node)
	}
}

func TestEmptySessionOmitsSuffix(t *testing.T) {
	g := New(WithClock(fixedClock), WithSession(""))
	if parts := strings.Split(g.NodeID(), "_"); len(parts) != 3 {
		t.Errorf("NodeID() parts = %v, want 3", parts)
	}
}

func TestDefaultSessionTag(t *testing.T) {
	a, b := New(), New()
	if len(a.Session()) != 8 {
		t.Errorf("Session() = %q, want 8 characters", a.Session())
	}
	if a.Session() == b.Session() {
		t.Errorf("two generators share session tag %q", a.Session())
	}
}

func TestGeneratorsShareCounter(t *testing.T) {
	a := New(WithClock(fixedClock), WithSession("s"))
	b := New(WithClock(fixedClock), WithSession("s"))
	if a.NodeID() == b.NodeID() {
		t.Error("generators with identical clock and session produced the same id")
	}
}

func TestConcurrentGeneration(t *testing.T) {
	g := New(WithClock(fixedClock))
	const workers, per = 8, 200

	var mu sync.Mutex
	seen := make(map[string]bool, workers*per)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < per; i++ {
				id := g.NodeID()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*per {
		t.Errorf("got %d unique ids, want %d", len(seen), workers*per)
	}
}
