// Package drag turns a stream of pointer events into a single committed move.
//
// While a node is being dragged its position lives only in the [Controller]
// as a pending value. Renderers merge it in with [Controller.PositionOf] or
// [Controller.Overlay]; the store and its history never see the intermediate
// positions. Releasing the pointer commits exactly one update, so a drag is a
// single undo step no matter how many move events it produced.
//
//	ctl := drag.New(st, &view)
//	ctl.Start(id, pointer, view.ToScreen(node.Position))
//	ctl.Update(pointer) // any number of times
//	ctl.End()           // one UpdateNode, one history entry
//
// The controller is a two-state machine, Idle and Dragging. It is not safe
// for concurrent use.
package drag

import (
	"github.com/sgazz/acai-mindmap/pkg/errors"
	"github.com/sgazz/acai-mindmap/pkg/mindmap"
)

// State is the controller's state.
type State int

// Controller states.
const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Target is the committed graph the controller reads from and writes to.
// *store.Store satisfies it.
type Target interface {
	Node(id string) (mindmap.Node, bool)
	UpdateNode(id string, p mindmap.NodePatch) error
}

// Projector maps screen coordinates to model coordinates.
// viewport.Transform satisfies it.
type Projector interface {
	ToModel(p mindmap.Point) mindmap.Point
}

// Controller tracks one drag session at a time.
type Controller struct {
	target Target
	proj   Projector

	state   State
	nodeID  string
	grab    mindmap.Point // pointer minus node center, screen space
	pending mindmap.Point // model space
}

// New creates an idle controller. The projector is consulted on every
// update, so a host that pans or zooms mid-drag should pass a pointer to its
// live transform.
func New(target Target, proj Projector) *Controller {
	return &Controller{target: target, proj: proj}
}

// Start begins dragging nodeID. pointer and nodeScreen are the pointer
// position and the node's center, both in screen coordinates. Starting while
// already dragging cancels the previous session without committing it.
func (c *Controller) Start(nodeID string, pointer, nodeScreen mindmap.Point) error {
	c.Cancel()
	n, ok := c.target.Node(nodeID)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "node %q not found", nodeID)
	}
	c.state = Dragging
	c.nodeID = nodeID
	c.grab = pointer.Sub(nodeScreen)
	c.pending = n.Position
	return nil
}

// Update moves the pending position so the grab point stays under the
// pointer. It returns the new pending model position, or false when idle.
func (c *Controller) Update(pointer mindmap.Point) (mindmap.Point, bool) {
	if c.state != Dragging {
		return mindmap.Point{}, false
	}
	c.pending = c.proj.ToModel(pointer.Sub(c.grab))
	return c.pending, true
}

// End commits the pending position and returns to Idle. It reports false
// when there was nothing to commit: the controller was idle, or the node was
// deleted while being dragged.
func (c *Controller) End() (bool, error) {
	if c.state != Dragging {
		return false, nil
	}
	id, pos := c.nodeID, c.pending
	c.reset()

	if _, ok := c.target.Node(id); !ok {
		return false, nil
	}
	if err := c.target.UpdateNode(id, mindmap.MovePatch(pos)); err != nil {
		return false, err
	}
	return true, nil
}

// Cancel discards the session without touching the target.
func (c *Controller) Cancel() { c.reset() }

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Active reports whether a drag is in progress.
func (c *Controller) Active() bool { return c.state == Dragging }

// NodeID returns the dragged node id, or "" when idle.
func (c *Controller) NodeID() string { return c.nodeID }

// Pending returns the uncommitted model position of the dragged node.
func (c *Controller) Pending() (mindmap.Point, bool) {
	if c.state != Dragging {
		return mindmap.Point{}, false
	}
	return c.pending, true
}

// PositionOf returns where n should be drawn: the pending position if n is
// being dragged, its committed position otherwise.
func (c *Controller) PositionOf(n mindmap.Node) mindmap.Point {
	if c.state == Dragging && n.ID == c.nodeID {
		return c.pending
	}
	return n.Position
}

// Overlay returns a copy of nodes with the pending position merged in.
func (c *Controller) Overlay(nodes []mindmap.Node) []mindmap.Node {
	out := make([]mindmap.Node, len(nodes))
	copy(out, nodes)
	if c.state != Dragging {
		return out
	}
	for i := range out {
		if out[i].ID == c.nodeID {
			out[i].Position = c.pending
		}
	}
	return out
}

func (c *Controller) reset() {
	c.state = Idle
	c.nodeID = ""
	c.grab = mindmap.Point{}
	c.pending = mindmap.Point{}
}
