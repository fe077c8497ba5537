package store_test

import (
	"fmt"

	"github.com/sgazz/acai-mindmap/pkg/errors"
	"github.com/sgazz/acai-mindmap/pkg/mindmap"
	"github.com/sgazz/acai-mindmap/pkg/store"
)

func Example() {
	st := store.New()
	_ = st.AddNode(mindmap.Node{ID: "root", Content: "Project", Size: mindmap.SizeLarge})
	_ = st.AddNode(mindmap.Node{ID: "task", Content: "Task", Position: mindmap.Pt(150, 0)})
	_ = st.AddConnection(mindmap.Connection{ID: "c1", From: "root", To: "task"})

	st.DeleteNode("task")
	fmt.Println("after delete:", st.NodeCount(), "nodes,", st.ConnectionCount(), "connections")

	st.Undo()
	fmt.Println("after undo:", st.NodeCount(), "nodes,", st.ConnectionCount(), "connections")
	// Output:
	// after delete: 1 nodes, 0 connections
	// after undo: 2 nodes, 1 connections
}

func ExampleStore_AddConnection() {
	st := store.New()
	_ = st.AddNode(mindmap.Node{ID: "a"})

	err := st.AddConnection(mindmap.Connection{ID: "c", From: "a", To: "missing"})
	fmt.Println(errors.GetCode(err))
	// Output:
	// VALIDATION_FAILED
}
