package text

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dyuri/lvlinfo/internal/model"
	"gopkg.in/yaml.v3"
)

// Reader handles parsing of the LevelInfo text form
type Reader struct {
	r      io.Reader
	format string
}

// NewReader creates a new text form reader for the given format
// (FormatYAML or FormatJSON).
func NewReader(r io.Reader, format string) *Reader {
	return &Reader{r: r, format: format}
}

// Read parses the whole input and returns the internal model. Unknown
// fields are rejected.
func (r *Reader) Read() (*model.File, error) {
	var doc document

	switch r.format {
	case FormatYAML:
		dec := yaml.NewDecoder(r.r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r.r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, CheckFormat(r.format)
	}

	return doc.toModel()
}
