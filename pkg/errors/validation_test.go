package errors

import (
	"strings"
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"generated node id", "node_1718000000000_1_ab12cd34", false},
		{"short", "a", false},
		{"dash and dot", "conn-1.2", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", 129), true},
		{"space", "node 1", true},
		{"tab", "node\t1", true},
		{"null byte", "node\x00", true},
		{"newline", "node\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidInput {
				t.Errorf("ValidateID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"short hex", "#fff", false},
		{"hex with alpha", "#ffff", false},
		{"long hex", "#3B82F6", false},
		{"long hex alpha", "#3b82f680", false},
		{"keyword", "lightblue", false},
		{"mixed case keyword", "Blue", false},
		{"camel keyword", "currentColor", false},
		{"rgb", "rgb(59, 130, 246)", false},
		{"rgba compact", "rgba(0,0,0,0.5)", false},
		{"hsl space syntax", "hsl(210deg 50% 40% / 0.5)", false},
		{"uppercase function", "RGB(1, 2, 3)", false},
		{"oklch", "oklch(0.7 0.1 250)", false},

		{"no hash", "3b82f6", true},
		{"bad length", "#12345", true},
		{"bad digit", "#ggg", true},
		{"unknown function", "url(x)", true},
		{"unclosed function", "rgb(1, 2, 3", true},
		{"quote in function", "rgb(1\", 2, 3)", true},
		{"control character", "red\x1b", true},
		{"newline", "rgb(1,\n2,3)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative file", "maps/study.json", false},
		{"absolute file", "/tmp/study.json", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "map\x00.json", true},
		{"control char", "map\x01.json", true},
		{"directory", "maps/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
