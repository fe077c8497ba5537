// Package store holds the committed mind-map graph and mediates every change
// to it.
//
// A [Store] owns the node and connection collections, the current selection
// and a [history.Manager]. Each structural mutation that actually changes the
// graph records exactly one snapshot, so every committed edit is undoable:
//
//	st := store.New(store.WithLogger(logger))
//	_ = st.AddNode(mindmap.Node{ID: "a", Content: "Idea", Size: mindmap.SizeMedium})
//	st.Undo() // back to the empty graph
//
// Mutations that would violate referential integrity are rejected with a
// VALIDATION_FAILED error and leave the graph untouched. Duplicate ids are
// logged and ignored; unknown ids on update or delete are silent no-ops.
//
// Readers always return copies. A Store is not safe for concurrent use;
// hosts serialise calls through their event loop.
package store

import (
	"io"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sgazz/acai-mindmap/pkg/errors"
	"github.com/sgazz/acai-mindmap/pkg/history"
	"github.com/sgazz/acai-mindmap/pkg/mindmap"
	"github.com/sgazz/acai-mindmap/pkg/observability"
)

// Op names a store operation in change events and hook calls.
type Op string

// Store operations.
const (
	OpAddNode          Op = "add_node"
	OpUpdateNode       Op = "update_node"
	OpDeleteNode       Op = "delete_node"
	OpAddConnection    Op = "add_connection"
	OpDeleteConnection Op = "delete_connection"
	OpClear            Op = "clear"
	OpReplace          Op = "replace"
	OpUndo             Op = "undo"
	OpRedo             Op = "redo"
	OpSelect           Op = "select"
)

// Event describes a committed change. ID is the node or connection the
// operation targeted, empty for whole-graph operations.
type Event struct {
	Op Op
	ID string
}

// Store is the single source of truth for the committed graph.
type Store struct {
	nodes    []mindmap.Node
	conns    []mindmap.Connection
	selected string

	hist   *history.Manager
	logger *log.Logger
	now    func() time.Time
	hooks  observability.EditorHooks

	subs   []subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func(Event)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for warnings about ignored mutations.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxHistory bounds the number of retained snapshots.
func WithMaxHistory(n int) Option {
	return func(s *Store) { s.hist = history.New(n) }
}

// WithClock overrides the time source used for node metadata.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithHooks overrides the globally registered editor hooks. The store and
// the document importer report through them.
func WithHooks(h observability.EditorHooks) Option {
	return func(s *Store) {
		if h != nil {
			s.hooks = h
		}
	}
}

// New creates an empty Store. The empty graph is recorded as the first
// history entry.
func New(opts ...Option) *Store {
	s := &Store{
		nodes:  []mindmap.Node{},
		conns:  []mindmap.Connection{},
		hist:   history.New(history.DefaultMaxSize),
		logger: log.New(io.Discard),
		now:    time.Now,
		hooks:  observability.Editor(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hist.Record(s.Snapshot())
	return s
}

// =============================================================================
// Node mutations
// =============================================================================

// AddNode appends n to the graph. A node whose id already exists is ignored
// with a warning.
func (s *Store) AddNode(n mindmap.Node) error {
	if n.ID == "" {
		return errors.New(errors.ErrCodeValidation, "node id must not be empty")
	}
	if n.Size == "" {
		n.Size = mindmap.SizeMedium
	}
	if err := validateNodeFields(n.ID, n.Size, n.Color, n.Position); err != nil {
		return err
	}
	if s.nodeIndex(n.ID) >= 0 {
		s.logger.Warn("duplicate node id ignored", "id", n.ID)
		return nil
	}

	n = n.Clone()
	if n.Metadata != nil {
		now := s.now()
		if n.Metadata.Created.IsZero() {
			n.Metadata.Created = now
		}
		if n.Metadata.Modified.IsZero() {
			n.Metadata.Modified = now
		}
	}
	s.nodes = append(s.nodes, n)
	s.commit(OpAddNode, n.ID)
	return nil
}

// UpdateNode merges p into the node with the given id. Unknown ids and empty
// patches are no-ops. Only the fields p sets are validated.
func (s *Store) UpdateNode(id string, p mindmap.NodePatch) error {
	i := s.nodeIndex(id)
	if i < 0 || p.Empty() {
		return nil
	}

	if err := validatePatch(id, p); err != nil {
		return err
	}
	updated := s.nodes[i].Apply(p)
	if updated.Metadata != nil && p.Metadata == nil {
		updated.Metadata.Modified = s.now()
	}
	s.nodes[i] = updated
	s.commit(OpUpdateNode, id)
	return nil
}

// DeleteNode removes a node together with every connection that touches it.
// A selection pointing at the node is cleared.
func (s *Store) DeleteNode(id string) {
	i := s.nodeIndex(id)
	if i < 0 {
		return
	}
	s.nodes = slices.Delete(s.nodes, i, i+1)

	removed := 0
	s.conns = slices.DeleteFunc(s.conns, func(c mindmap.Connection) bool {
		if c.Touches(id) {
			removed++
			return true
		}
		return false
	})
	if removed > 0 {
		s.logger.Debug("cascaded connections", "node", id, "removed", removed)
	}
	if s.selected == id {
		s.selected = ""
	}
	s.commit(OpDeleteNode, id)
}

// =============================================================================
// Connection mutations
// =============================================================================

// AddConnection appends c to the graph. Both endpoints must name existing
// nodes. An empty type defaults to solid.
func (s *Store) AddConnection(c mindmap.Connection) error {
	if c.ID == "" {
		return errors.New(errors.ErrCodeValidation, "connection id must not be empty")
	}
	if s.connIndex(c.ID) >= 0 {
		s.logger.Warn("duplicate connection id ignored", "id", c.ID)
		return nil
	}
	if c.Type == "" {
		c.Type = mindmap.ConnectionSolid
	}
	if !c.Type.Valid() {
		return errors.New(errors.ErrCodeValidation, "connection %s: invalid type %q", c.ID, c.Type)
	}
	if s.nodeIndex(c.From) < 0 {
		return errors.New(errors.ErrCodeValidation, "connection %s: unknown source node %q", c.ID, c.From)
	}
	if s.nodeIndex(c.To) < 0 {
		return errors.New(errors.ErrCodeValidation, "connection %s: unknown target node %q", c.ID, c.To)
	}
	if err := errors.ValidateColor(c.Color); err != nil {
		return errors.Wrap(errors.ErrCodeValidation, err, "connection %s", c.ID)
	}
	if c.Thickness != nil && !(*c.Thickness > 0 && !math.IsInf(*c.Thickness, 0)) {
		return errors.New(errors.ErrCodeValidation, "connection %s: thickness must be positive", c.ID)
	}

	s.conns = append(s.conns, c.Clone())
	s.commit(OpAddConnection, c.ID)
	return nil
}

// DeleteConnection removes the connection with the given id.
func (s *Store) DeleteConnection(id string) {
	i := s.connIndex(id)
	if i < 0 {
		return
	}
	s.conns = slices.Delete(s.conns, i, i+1)
	s.commit(OpDeleteConnection, id)
}

// =============================================================================
// Whole-graph mutations
// =============================================================================

// Clear removes every node and connection. Clearing an empty graph changes
// nothing and records no history entry.
func (s *Store) Clear() {
	if len(s.nodes) == 0 && len(s.conns) == 0 {
		// Already empty: no snapshot is recorded.
		s.setSelection("")
		return
	}
	s.nodes = []mindmap.Node{}
	s.conns = []mindmap.Connection{}
	s.selected = ""
	s.commit(OpClear, "")
}

// Replace swaps in an entire graph in one step, as done by import. The
// snapshot must satisfy every integrity rule; otherwise nothing changes.
func (s *Store) Replace(snap mindmap.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeSchema, err, "replace graph")
	}
	s.restore(snap.Clone())
	s.selected = ""
	s.commit(OpReplace, "")
	return nil
}

// =============================================================================
// Selection
// =============================================================================

// SelectNode marks a node as selected. An empty id clears the selection.
// Selection is view state and never enters history.
func (s *Store) SelectNode(id string) {
	if id != "" && s.nodeIndex(id) < 0 {
		s.logger.Warn("cannot select unknown node", "id", id)
		return
	}
	s.setSelection(id)
}

func (s *Store) setSelection(id string) {
	if s.selected == id {
		return
	}
	s.selected = id
	s.emit(Event{Op: OpSelect, ID: id})
}

// =============================================================================
// History
// =============================================================================

// Undo restores the previous snapshot. It returns false at the oldest entry.
func (s *Store) Undo() bool {
	snap, ok := s.hist.Undo()
	if !ok {
		return false
	}
	s.travel(OpUndo, snap)
	return true
}

// Redo restores the next snapshot. It returns false at the newest entry.
func (s *Store) Redo() bool {
	snap, ok := s.hist.Redo()
	if !ok {
		return false
	}
	s.travel(OpRedo, snap)
	return true
}

func (s *Store) travel(op Op, snap mindmap.Snapshot) {
	s.restore(snap)
	if s.selected != "" && s.nodeIndex(s.selected) < 0 {
		s.selected = ""
	}
	s.hooks.OnHistory(string(op), s.hist.Index(), s.hist.Len())
	s.emit(Event{Op: op})
}

// CanUndo reports whether Undo would change the graph.
func (s *Store) CanUndo() bool { return s.hist.CanUndo() }

// CanRedo reports whether Redo would change the graph.
func (s *Store) CanRedo() bool { return s.hist.CanRedo() }

// HistoryLen returns the number of retained snapshots.
func (s *Store) HistoryLen() int { return s.hist.Len() }

// HistoryIndex returns the position of the current snapshot in history.
func (s *Store) HistoryIndex() int { return s.hist.Index() }

// =============================================================================
// Subscriptions
// =============================================================================

// Subscribe registers fn to be called after every committed change,
// undo/redo and selection change. The returned function unregisters it.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
	}
}

func (s *Store) emit(ev Event) {
	// Copy so subscribers may unsubscribe while being notified.
	for _, sub := range slices.Clone(s.subs) {
		sub.fn(ev)
	}
}

// =============================================================================
// Internals
// =============================================================================

func (s *Store) commit(op Op, id string) {
	if evicted := s.hist.Record(s.Snapshot()); evicted > 0 {
		s.logger.Debug("history full, dropped oldest entries", "evicted", evicted, "max", s.hist.Max())
	}
	s.hooks.OnMutation(string(op), len(s.nodes), len(s.conns))
	s.emit(Event{Op: op, ID: id})
}

func (s *Store) restore(snap mindmap.Snapshot) {
	s.nodes = snap.Nodes
	s.conns = snap.Connections
	if s.nodes == nil {
		s.nodes = []mindmap.Node{}
	}
	if s.conns == nil {
		s.conns = []mindmap.Connection{}
	}
}

func (s *Store) nodeIndex(id string) int {
	return slices.IndexFunc(s.nodes, func(n mindmap.Node) bool { return n.ID == id })
}

func (s *Store) connIndex(id string) int {
	return slices.IndexFunc(s.conns, func(c mindmap.Connection) bool { return c.ID == id })
}

func validateNodeFields(id string, size mindmap.Size, color string, pos mindmap.Point) error {
	if !size.Valid() {
		return errors.New(errors.ErrCodeValidation, "node %s: invalid size %q", id, size)
	}
	if !pos.Finite() {
		return errors.New(errors.ErrCodeValidation, "node %s: position must be finite", id)
	}
	if err := errors.ValidateColor(color); err != nil {
		return errors.Wrap(errors.ErrCodeValidation, err, "node %s", id)
	}
	return nil
}

func validatePatch(id string, p mindmap.NodePatch) error {
	if p.Size != nil && !p.Size.Valid() {
		return errors.New(errors.ErrCodeValidation, "node %s: invalid size %q", id, *p.Size)
	}
	if p.Position != nil && !p.Position.Finite() {
		return errors.New(errors.ErrCodeValidation, "node %s: position must be finite", id)
	}
	if p.Color != nil {
		if err := errors.ValidateColor(*p.Color); err != nil {
			return errors.Wrap(errors.ErrCodeValidation, err, "node %s", id)
		}
	}
	return nil
}
