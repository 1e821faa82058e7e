package lvlinfo

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dyuri/lvlinfo/internal/model"
	"github.com/elliotwutingfeng/asciiset"
)

// Validation levels
const (
	LevelError   = "error"
	LevelWarning = "warning"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
	Level   string // "error" or "warning"
}

func (e ValidationError) String() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

var (
	// printable is the ASCII range the in-game font draws as text.
	printable = makeSet(func(c byte) bool { return c >= 0x20 && c < 0x7f })
	// commentChars additionally allows line breaks and tabs.
	commentChars = makeSet(func(c byte) bool {
		return (c >= 0x20 && c < 0x7f) || c == '\n' || c == '\r' || c == '\t'
	})
)

func makeSet(keep func(byte) bool) asciiset.ASCIISet {
	var chars []byte
	for c := byte(0); c < utf8.RuneSelf; c++ {
		if keep(c) {
			chars = append(chars, c)
		}
	}
	set, _ := asciiset.MakeASCIISet(string(chars))
	return set
}

// Validate checks f for values the binary format cannot store and for
// content that is legal but unusual. It never modifies f.
//
// Errors mean Encode would fail or the file would not read back the same;
// warnings are advisory.
func Validate(f *model.File) []ValidationError {
	v := &validator{}
	v.validate(f)
	return v.issues
}

// HasErrors reports whether any issue is at error level.
func HasErrors(issues []ValidationError) bool {
	for _, i := range issues {
		if i.Level == LevelError {
			return true
		}
	}
	return false
}

type validator struct {
	issues []ValidationError
}

func (v *validator) error(field, msg string, args ...interface{}) {
	v.issues = append(v.issues, ValidationError{Field: field, Message: fmt.Sprintf(msg, args...), Level: LevelError})
}

func (v *validator) warning(field, msg string, args ...interface{}) {
	v.issues = append(v.issues, ValidationError{Field: field, Message: fmt.Sprintf(msg, args...), Level: LevelWarning})
}

func (v *validator) validate(f *model.File) {
	switch err := model.CheckComments(f.Comments); {
	case errors.Is(err, model.ErrCommentsNUL):
		v.warning("comments", "NUL byte at %d: the game stops reading the comment there", strings.IndexByte(f.Comments, 0))
	case err != nil:
		v.error("comments", "%v", err)
	default:
		v.checkPrintable("comments", f.Comments, &commentChars)
	}

	seen := make(map[int]int)
	for i := range f.Worlds {
		w := &f.Worlds[i]
		field := fmt.Sprintf("worlds[%d]", i)

		v.validateWorld(field, w)

		if w.Number != nil {
			if first, ok := seen[*w.Number]; ok {
				v.warning(field+".number", "duplicate world number %d (also worlds[%d])", *w.Number, first)
			} else {
				seen[*w.Number] = i
			}
		}

		for j := range w.Levels {
			v.validateLevel(fmt.Sprintf("%s.levels[%d]", field, j), &w.Levels[j])
		}
	}
}

func (v *validator) validateWorld(field string, w *model.World) {
	halves := w.HasLeft || w.HasRight

	switch {
	case halves && w.Number == nil:
		v.error(field+".number", "world has a header half but no number")
	case !halves && w.Number != nil:
		v.warning(field+".number", "number %d is not stored: world has no header half", *w.Number)
	}
	if w.Number != nil && (*w.Number < 0 || *w.Number > model.MaxByteValue) {
		v.error(field+".number", "invalid world number %d (must be 0-%d)", *w.Number, model.MaxByteValue)
	}

	if w.HasLeft {
		v.validateName(field+".left", w.NameLeft)
	}
	if w.HasRight {
		v.validateName(field+".right", w.NameRight)
	}

	if len(w.Levels) == 0 {
		v.warning(field, "world has no levels")
	}
}

func (v *validator) validateLevel(field string, l *model.Level) {
	v.validateName(field+".name", l.Name)
	if l.Name == "" {
		v.warning(field+".name", "empty level name")
	}

	if l.FileWorld < model.MinFileNumber || l.FileWorld > model.MaxFileNumber ||
		l.FileLevel < model.MinFileNumber || l.FileLevel > model.MaxFileNumber {
		v.error(field+".file", "invalid file number %d-%d (must be %d-%d)",
			l.FileWorld, l.FileLevel, model.MinFileNumber, model.MaxFileNumber)
	}

	if l.DisplayWorld < 0 || l.DisplayWorld > model.MaxByteValue ||
		l.DisplayLevel < 0 || l.DisplayLevel > model.MaxByteValue {
		v.error(field+".display", "invalid display number %d-%d (must be 0-%d)",
			l.DisplayWorld, l.DisplayLevel, model.MaxByteValue)
	} else if l.DisplayLevel >= model.HeaderThreshold {
		v.error(field+".display", "display level %d would be read back as a world header (must be below %d)",
			l.DisplayLevel, model.HeaderThreshold)
	}
}

func (v *validator) validateName(field, name string) {
	if err := model.CheckName(name); err != nil {
		v.error(field, "%v", err)
		return
	}
	v.checkPrintable(field, name, &printable)
}

// checkPrintable warns about the first character outside set. Callers
// have already checked that every rune fits in one byte.
func (v *validator) checkPrintable(field, s string, set *asciiset.ASCIISet) {
	for i, r := range s {
		if r >= utf8.RuneSelf || !set.Contains(byte(r)) {
			v.warning(field, "non-printable character %U at byte %d (stored as 0x%02x)", r, i, byte(r))
			return
		}
	}
}
