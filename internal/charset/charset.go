// Package charset converts between the single-byte text stored in
// LevelInfo files and Go strings.
//
// Stored text is mapped through ISO-8859-1, so each stored byte becomes
// exactly one rune (U+0000..U+00FF) and every byte value survives a
// decode/encode cycle. Plain ASCII text is unchanged by the mapping.
package charset

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// MaxRune is the highest rune that can be stored.
const MaxRune = 0xFF

// ErrUnsupportedChar is returned when a string holds a rune outside the
// single-byte range.
var ErrUnsupportedChar = errors.New("character not representable in a single byte")

// Decode converts stored bytes into a string.
func Decode(data []byte) string {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// ISO-8859-1 maps every byte, so this only happens on a broken decoder
		return string(data)
	}
	return string(decoded)
}

// Encode converts a string into stored bytes.
func Encode(s string) ([]byte, error) {
	if i, r := firstUnsupported(s); i >= 0 {
		return nil, fmt.Errorf("%w: %q at byte %d", ErrUnsupportedChar, r, i)
	}
	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", s, err)
	}
	return encoded, nil
}

// Len returns the number of bytes s occupies once encoded. It does not
// check that s is encodable; see Check.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// Check reports whether every rune of s can be stored.
func Check(s string) error {
	if i, r := firstUnsupported(s); i >= 0 {
		return fmt.Errorf("%w: %q at byte %d", ErrUnsupportedChar, r, i)
	}
	return nil
}

func firstUnsupported(s string) (int, rune) {
	for i, r := range s {
		// invalid UTF-8 decodes to utf8.RuneError, which is also > MaxRune
		if r > MaxRune {
			return i, r
		}
	}
	return -1, 0
}
