// Package lvlinfo provides functions for working with LevelInfo.bin files,
// the world and level table of a game's level-selection screen.
//
// This package can be used as a library to parse, edit, and regenerate
// LevelInfo files programmatically.
//
// Example usage:
//
//	data, _ := os.ReadFile("LevelInfo.bin")
//
//	f, err := lvlinfo.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	f.Worlds[0].AddLevel().SetName("1-Secret")
//
//	out, err := lvlinfo.Encode(f)
package lvlinfo

import (
	"bytes"
	"errors"
	"io"

	"github.com/dyuri/lvlinfo/internal/binary"
	"github.com/dyuri/lvlinfo/internal/model"
	"github.com/dyuri/lvlinfo/internal/text"
)

// Text formats accepted by ParseText and WriteText
const (
	FormatYAML = text.FormatYAML
	FormatJSON = text.FormatJSON
)

// Decode parses the bytes of a LevelInfo file.
//
// A buffer that does not start with "NWRp" fails with ErrInvalidMagic;
// offsets or lengths outside the buffer fail with ErrInvalidFormat. No
// partial file is returned in either case.
func Decode(data []byte) (*model.File, error) {
	return ParseBinary(bytes.NewReader(data), int64(len(data)))
}

// ParseBinary reads a binary LevelInfo file and returns the internal model.
//
// The reader must support ReadAt for random access. The size parameter
// should be the total file size in bytes.
//
// Example:
//
//	f, _ := os.Open("LevelInfo.bin")
//	defer f.Close()
//	stat, _ := f.Stat()
//	file, err := ParseBinary(f, stat.Size())
func ParseBinary(r io.ReaderAt, size int64) (*model.File, error) {
	reader := binary.NewReader(r, size)
	f, err := reader.Parse()
	if err != nil {
		switch {
		case errors.Is(err, binary.ErrInvalidMagic):
			return nil, &Error{Code: ErrInvalidMagic.Code, Message: ErrInvalidMagic.Message, Cause: err}
		case errors.Is(err, binary.ErrOutOfBounds):
			return nil, &Error{Code: ErrInvalidFormat.Code, Message: ErrInvalidFormat.Message, Cause: err}
		}
		return nil, err
	}
	return f, nil
}

// Encode serializes f into the bytes of a LevelInfo file. Layout and
// offsets are always recomputed from the current content of f.
func Encode(f *model.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteBinary(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteBinary writes f as a binary LevelInfo file.
func WriteBinary(w io.Writer, f *model.File) error {
	writer := binary.NewWriter(w)
	return writer.Write(f)
}

// ParseText reads the YAML or JSON text form of a LevelInfo file.
//
// Every value goes through the model setters, so out-of-range numbers
// and over-long names are reported with their path, e.g.
// "worlds[2].levels[4].display".
func ParseText(r io.Reader, format string) (*model.File, error) {
	reader := text.NewReader(r, format)
	f, err := reader.Read()
	if err != nil {
		return nil, &Error{Code: ErrInvalidText.Code, Message: ErrInvalidText.Message, Cause: err}
	}
	return f, nil
}

// WriteText writes f in its YAML or JSON text form.
//
// Example:
//
//	out, _ := os.Create("levelinfo.yaml")
//	defer out.Close()
//	err := WriteText(out, f, FormatYAML)
func WriteText(w io.Writer, f *model.File, format string) error {
	writer := text.NewWriter(w, format)
	return writer.Write(f)
}

// Common errors
var (
	ErrInvalidMagic  = &Error{Code: "invalid_magic", Message: "not a LevelInfo file"}
	ErrInvalidFormat = &Error{Code: "invalid_format", Message: "invalid file format"}
	ErrInvalidText   = &Error{Code: "invalid_text", Message: "invalid text form"}
)

// Error represents an lvlinfo error
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code, so errors.Is(err, ErrInvalidMagic) holds for
// any error carrying that code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}
