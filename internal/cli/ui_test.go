package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestStatsLine(t *testing.T) {
	tests := []struct {
		nodes, conns int
		extra        []string
		want         string
	}{
		{0, 0, nil, "0 nodes · 0 connections"},
		{1, 1, nil, "1 node · 1 connection"},
		{5, 4, []string{"2 roots"}, "5 nodes · 4 connections · 2 roots"},
	}
	for _, tt := range tests {
		if got := statsLine(tt.nodes, tt.conns, tt.extra...); got != tt.want {
			t.Errorf("statsLine(%d, %d) = %q, want %q", tt.nodes, tt.conns, got, tt.want)
		}
	}
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := printer{w: &buf}

	p.success("Created %s", "map.json")
	p.failure("bad %d", 1)
	p.info("note")
	p.detail("code: %s", "PARSE_ERROR")
	p.file("out.svg")
	p.stats(2, 1)
	p.next("Edit it with", "mindmap edit map.json")

	out := buf.String()
	for _, want := range []string{"✓ Created map.json", "✗ bad 1", "› note", "  code: PARSE_ERROR", "out.svg", "2 nodes · 1 connection", "mindmap edit map.json"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "\n"); n != 7 {
		t.Errorf("printed %d lines, want 7", n)
	}
}
