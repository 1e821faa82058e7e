package text

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dyuri/lvlinfo/internal/model"
	"gopkg.in/yaml.v3"
)

// Writer handles writing LevelInfo data to its text form
type Writer struct {
	w      io.Writer
	format string
}

// NewWriter creates a new text form writer for the given format
// (FormatYAML or FormatJSON).
func NewWriter(w io.Writer, format string) *Writer {
	return &Writer{w: w, format: format}
}

// Write outputs the file in the writer's format
func (w *Writer) Write(f *model.File) error {
	doc := fromModel(f)

	switch w.format {
	case FormatYAML:
		return w.writeYAML(&doc)
	case FormatJSON:
		return w.writeJSON(&doc)
	default:
		return CheckFormat(w.format)
	}
}

func (w *Writer) writeYAML(doc *document) error {
	enc := yaml.NewEncoder(w.w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		enc.Close()
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close yaml encoder: %w", err)
	}
	return nil
}

func (w *Writer) writeJSON(doc *document) error {
	enc := json.NewEncoder(w.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
