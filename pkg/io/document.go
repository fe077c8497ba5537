package io

import (
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// FormatVersion is written to every exported document.
const FormatVersion = "1"

// Document is the JSON form of a graph.
type Document struct {
	Version     string          `json:"version,omitempty"`
	Nodes       []NodeDoc       `json:"nodes" validate:"dive"`
	Connections []ConnectionDoc `json:"connections" validate:"dive"`
	ExportDate  string          `json:"exportDate,omitempty"`
}

// PositionDoc is a node center. Pointers distinguish a missing coordinate
// from zero.
type PositionDoc struct {
	X *float64 `json:"x" validate:"required,finite"`
	Y *float64 `json:"y" validate:"required,finite"`
}

// NodeDoc is the JSON form of a node.
type NodeDoc struct {
	ID       string       `json:"id" validate:"required"`
	Content  string       `json:"content"`
	Position *PositionDoc `json:"position" validate:"required"`
	Color    string       `json:"color"`
	Size     string       `json:"size" validate:"omitempty,oneof=small medium large"`
	ParentID *string      `json:"parentId"`
	Children []string     `json:"children,omitempty"`
	Metadata *MetadataDoc `json:"metadata,omitempty"`
}

// MetadataDoc is the JSON form of node metadata.
type MetadataDoc struct {
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
	Tags     []string  `json:"tags,omitempty"`
	Notes    string    `json:"notes,omitempty"`
}

// ConnectionDoc is the JSON form of a connection.
type ConnectionDoc struct {
	ID        string   `json:"id" validate:"required"`
	From      string   `json:"from" validate:"required"`
	To        string   `json:"to" validate:"required"`
	Type      string   `json:"type" validate:"omitempty,oneof=solid dashed dotted"`
	Color     string   `json:"color"`
	Thickness *float64 `json:"thickness,omitempty" validate:"omitempty,finite,gt=0"`
	Label     *string  `json:"label,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON names ("nodes[0].position.x") rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("finite", isFinite)
	return v
}

func isFinite(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return true
}

// formatValidationError joins every field failure into one message.
func formatValidationError(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return strings.Join(msgs, "; ")
}

func formatFieldError(e validator.FieldError) string {
	// Namespace is "Document.nodes[0].id"; drop the root type.
	field := e.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	switch e.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return field + " must be one of: " + e.Param()
	case "finite":
		return field + " must be a finite number"
	case "gt":
		return field + " must be greater than " + e.Param()
	default:
		return field + " is invalid"
	}
}
