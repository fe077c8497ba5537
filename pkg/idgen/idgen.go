// Package idgen produces collision-free identifiers for nodes and connections.
//
// Identifiers combine a millisecond timestamp, a process-wide monotonic
// counter and a short session tag:
//
//	node_1718000000000_7_3f9a0c12
//	conn_1718000000000_8_3f9a0c12
//
// The counter alone makes ids unique within a process even when many are
// created in the same millisecond (programmatic bulk-add). The session tag, a
// prefix of a random UUID, keeps ids from separate editor sessions apart when
// their documents are imported into one another.
package idgen

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Prefixes for generated identifiers.
const (
	NodePrefix       = "node"
	ConnectionPrefix = "conn"
)

// counter is shared by every Generator so that two generators in the same
// process never hand out the same (timestamp, counter) pair.
var counter atomic.Uint64

// Generator hands out node and connection identifiers.
// It is safe for concurrent use.
type Generator struct {
	now     func() time.Time
	session string
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithSession sets the session tag appended to every id.
// An empty tag omits the suffix.
func WithSession(tag string) Option {
	return func(g *Generator) { g.session = tag }
}

// New creates a Generator with a fresh random session tag.
func New(opts ...Option) *Generator {
	g := &Generator{
		now:     time.Now,
		session: newSessionTag(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Session returns the generator's session tag.
func (g *Generator) Session() string { return g.session }

// NodeID returns a new node identifier.
func (g *Generator) NodeID() string { return g.next(NodePrefix) }

// ConnectionID returns a new connection identifier.
func (g *Generator) ConnectionID() string { return g.next(ConnectionPrefix) }

func (g *Generator) next(prefix string) string {
	n := counter.Add(1)
	ms := g.now().UnixMilli()
	if g.session == "" {
		return fmt.Sprintf("%s_%d_%d", prefix, ms, n)
	}
	return fmt.Sprintf("%s_%d_%d_%s", prefix, ms, n, g.session)
}

func newSessionTag() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
