package preview_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sgazz/acai-mindmap/pkg/errors"
	"github.com/sgazz/acai-mindmap/pkg/mindmap"
	"github.com/sgazz/acai-mindmap/pkg/preview"
)

func sampleSnapshot() mindmap.Snapshot {
	label := "next"
	return mindmap.Snapshot{
		Nodes: []mindmap.Node{
			{ID: "a", Content: "Alpha", Position: mindmap.Pt(0, 0), Size: mindmap.SizeLarge, Color: "#3b82f6"},
			{ID: "b", Content: "Beta", Position: mindmap.Pt(200, 0), Size: mindmap.SizeSmall, Color: "#ef4444"},
			{ID: "c", Content: "Gamma", Position: mindmap.Pt(0, 200), Size: mindmap.SizeMedium, Color: "#10b981"},
		},
		Connections: []mindmap.Connection{
			{ID: "ab", From: "a", To: "b", Type: mindmap.ConnectionDashed, Label: &label},
			{ID: "ac", From: "a", To: "c", Type: mindmap.ConnectionSolid},
		},
	}
}

func staticHandler(snap mindmap.Snapshot, err error) http.Handler {
	return preview.NewHandler(preview.LoaderFunc(func(context.Context) (mindmap.Snapshot, error) {
		return snap, err
	}), preview.WithTitle("Plans <draft>"))
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRoutes(t *testing.T) {
	h := staticHandler(sampleSnapshot(), nil)

	tests := []struct {
		path        string
		contentType string
		contains    []string
	}{
		{"/healthz", "application/json", []string{`"status":"ok"`}},
		{"/", "text/html", []string{"Plans &lt;draft&gt;", "3 nodes, 2 connections", `src="map.svg"`, "http-equiv=\"refresh\""}},
		{"/map.svg", "image/svg+xml", []string{"<svg", "Alpha", `stroke-dasharray="8,4"`}},
		{"/map.dot", "text/vnd.graphviz", []string{"layout=neato", `"a" -> "b"`}},
		{"/map.json", "application/json", []string{`"nodes"`, `"connections"`, `"exportDate"`}},
		{"/nodes", "application/json", []string{`"Alpha"`, `"Beta"`, `"Gamma"`}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, h, tt.path)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			for _, want := range tt.contains {
				if !strings.Contains(rec.Body.String(), want) {
					t.Errorf("body missing %q", want)
				}
			}
		})
	}
}

func TestNodeRoute(t *testing.T) {
	h := staticHandler(sampleSnapshot(), nil)

	rec := get(t, h, "/nodes/b")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Node struct {
			ID      string `json:"id"`
			Content string `json:"content"`
		} `json:"node"`
		Connections []struct {
			ID string `json:"id"`
		} `json:"connections"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Node.ID != "b" || body.Node.Content != "Beta" {
		t.Errorf("node = %+v", body.Node)
	}
	if len(body.Connections) != 1 || body.Connections[0].ID != "ab" {
		t.Errorf("connections = %+v", body.Connections)
	}

	rec = get(t, h, "/nodes/zzz")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown node status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "NOT_FOUND") {
		t.Errorf("error body = %s", rec.Body)
	}
}

func TestLoadErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing", errors.New(errors.ErrCodeFileNotFound, "open map.json"), http.StatusNotFound},
		{"malformed", errors.New(errors.ErrCodeParse, "bad json"), http.StatusUnprocessableEntity},
		{"schema", errors.New(errors.ErrCodeSchema, "nodes must be an array"), http.StatusUnprocessableEntity},
		{"other", context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, staticHandler(mindmap.Snapshot{}, tt.err), "/map.svg")
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestFileLoaderFollowsEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.json")
	write := func(body string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	h := preview.NewHandler(preview.FileLoader(path), preview.WithRefresh(0))

	if rec := get(t, h, "/"); rec.Code != http.StatusNotFound {
		t.Errorf("status before the file exists = %d, want 404", rec.Code)
	}

	write(`{"nodes":[],"connections":[]}`)
	rec := get(t, h, "/")
	if !strings.Contains(rec.Body.String(), "0 nodes") || strings.Contains(rec.Body.String(), "refresh") {
		t.Errorf("index = %s", rec.Body)
	}

	write(`{"nodes":[{"id":"n1","content":"Hi","position":{"x":1,"y":2},"color":"#000000","size":"small","parentId":null}],"connections":[]}`)
	if rec := get(t, h, "/"); !strings.Contains(rec.Body.String(), "1 nodes") {
		t.Errorf("index after edit = %s", rec.Body)
	}

	write(`{"nodes":{}}`)
	if rec := get(t, h, "/map.json"); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("malformed document status = %d, want 422", rec.Code)
	}
}
