package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/sgazz/acai-mindmap/pkg/mindmap"
	"github.com/sgazz/acai-mindmap/pkg/render/nodelink"
)

func ExampleToDOT() {
	snap := mindmap.Snapshot{
		Nodes: []mindmap.Node{
			{ID: "root", Content: "Plan", Position: mindmap.Pt(0, 0), Size: mindmap.SizeLarge},
			{ID: "task", Content: "Ship", Position: mindmap.Pt(150, 80), Size: mindmap.SizeSmall},
		},
		Connections: []mindmap.Connection{
			{ID: "c1", From: "root", To: "task", Type: mindmap.ConnectionSolid},
		},
	}

	dot := nodelink.ToDOT(snap, nodelink.Options{})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "root" -> "task";
}
