package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/sgazz/acai-mindmap/pkg/mindmap"
)

func sample() mindmap.Snapshot {
	label := "uses"
	width := 3.0
	return mindmap.Snapshot{
		Nodes: []mindmap.Node{
			{ID: "a", Content: "Alpha", Position: mindmap.Pt(100, 100), Size: mindmap.SizeMedium},
			{ID: "b", Content: "Beta", Position: mindmap.Pt(200, 50), Size: mindmap.SizeLarge, Color: "#ff0000",
				Metadata: &mindmap.Metadata{Tags: []string{"core", "v2"}}},
		},
		Connections: []mindmap.Connection{
			{ID: "ab", From: "a", To: "b", Type: mindmap.ConnectionDashed, Thickness: &width, Label: &label},
			{ID: "ax", From: "a", To: "gone", Type: mindmap.ConnectionSolid},
		},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	for _, want := range []string{
		"digraph G",
		"layout=neato",
		"inputscale=72",
		`"a" [label="Alpha", pos="100,-100!", width=1.11, fillcolor="#3b82f6"]`,
		`"b" [label="Beta", pos="200,-50!", width=1.39, fillcolor="#ff0000"]`,
		`"a" -> "b" [style=dashed, penwidth=3, label="uses"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"gone"`) {
		t.Error("ToDOT() emitted a dangling connection")
	}
}

func TestToDOT_Empty(t *testing.T) {
	dot := ToDOT(mindmap.Snapshot{}, Options{DefaultColor: "#000000"})
	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("ToDOT(empty) = %q", dot)
	}
}

func TestFmtLabel(t *testing.T) {
	tests := []struct {
		name     string
		node     mindmap.Node
		detailed bool
		want     string
	}{
		{"content", mindmap.Node{ID: "n1", Content: "Idea"}, false, "Idea"},
		{"id fallback", mindmap.Node{ID: "n1"}, false, "n1"},
		{"detailed", mindmap.Node{ID: "n1", Content: "Idea"}, true, "Idea\nn1"},
		{"detailed tags", mindmap.Node{ID: "n1", Content: "Idea",
			Metadata: &mindmap.Metadata{Tags: []string{"x", "y"}}}, true, "Idea\nn1\n#x #y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fmtLabel(tt.node, tt.detailed); got != tt.want {
				t.Errorf("fmtLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFmtEdgeAttrs(t *testing.T) {
	tests := []struct {
		typ  mindmap.ConnectionType
		want string
	}{
		{mindmap.ConnectionSolid, ""},
		{mindmap.ConnectionDashed, "style=dashed"},
		{mindmap.ConnectionDotted, "style=dotted"},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			got := strings.Join(fmtEdgeAttrs(mindmap.Connection{Type: tt.typ}), ", ")
			if got != tt.want {
				t.Errorf("fmtEdgeAttrs(%s) = %q, want %q", tt.typ, got, tt.want)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Alpha", `"Alpha"`},
		{"css color", "rgb(59, 130, 246)", `"rgb(59, 130, 246)"`},
		{"double quote", `say "hi"`, `"say \"hi\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"trailing backslash", `tail\`, `"tail\\"`},
		{"newline", "one\ntwo", `"one\ntwo"`},
		{"escape dropped", "red\x1b[0m", `"red[0m"`},
		{"unicode kept", "Ideja\u2028č", "\"Ideja\u2028č\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quote(tt.in); got != tt.want {
				t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestToDOTEscapesAttributes(t *testing.T) {
	label := `He said "go"`
	snap := mindmap.Snapshot{
		Nodes: []mindmap.Node{
			{ID: `n"1`, Content: "x\x1by", Position: mindmap.Pt(0, 0), Size: mindmap.SizeSmall, Color: "rgb(1, 2, 3)"},
		},
		Connections: []mindmap.Connection{
			{ID: "c", From: `n"1`, To: `n"1`, Type: mindmap.ConnectionSolid, Label: &label},
		},
	}
	dot := ToDOT(snap, Options{})
	for _, want := range []string{
		`"n\"1" [label="xy", pos="0,0!", width=0.83, fillcolor="rgb(1, 2, 3)"]`,
		`"n\"1" -> "n\"1" [label="He said \"go\""]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s\n%s", want, dot)
		}
	}
	if strings.ContainsRune(dot, '\x1b') || strings.Contains(dot, `\x`) {
		t.Errorf("ToDOT() leaked a control character or Go escape:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sample(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
	if !strings.Contains(string(svg), "Alpha") {
		t.Error("RenderSVG() output missing node label")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	_, err := RenderSVG(context.Background(), `not valid DOT {{{`)
	if err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
