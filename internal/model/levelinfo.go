package model

import (
	"fmt"
	"strings"
)

// File represents the complete LevelInfo data in a format-agnostic way.
// This is the unified internal representation shared by the binary
// codec and the text form.
type File struct {
	Worlds   []World // Worlds in on-disk order
	Comments string  // Free-form text stored before the text pool
}

// World is a world on the level-selection screen. It has up to two
// halves (left and right) sharing one world number.
type World struct {
	Number    *int    // nil when neither half exists
	HasLeft   bool    // Left half present
	HasRight  bool    // Right half present
	NameLeft  string  // Left half display name
	NameRight string  // Right half display name
	Levels    []Level // Levels in on-disk order
}

// Level is one playable level.
type Level struct {
	Name         string // Display name
	FileWorld    int    // 1-based world number of the level file (1-256)
	FileLevel    int    // 1-based level number of the level file (1-256)
	DisplayWorld int    // On-screen world number (0-255)
	DisplayLevel int    // On-screen level number (0-99, 100+ is reserved)

	InStarCoinsMenu bool // Listed in the star coins menu
	HasNormalExit   bool // Has a normal exit
	HasSecretExit   bool // Has a secret exit
	IsRightSide     bool // Shown on the right (second) half of the world
}

// Limits of the single-byte fields of the binary format.
const (
	MaxNameLen      = 255 // Names are stored with a one-byte length
	MaxByteValue    = 255 // World numbers and display numbers
	MinFileNumber   = 1   // File numbers are stored minus one
	MaxFileNumber   = 256
	HeaderThreshold = 100 // DisplayLevel values from here up mark world halves
)

// NewFile creates a new empty LevelInfo file
func NewFile() *File {
	return &File{
		Worlds: make([]World, 0),
	}
}

// NewLevel creates a level with the defaults used for newly added levels.
func NewLevel() Level {
	return Level{
		Name:            "New Level",
		FileWorld:       1,
		FileLevel:       1,
		InStarCoinsMenu: true,
	}
}

// HasNumber reports whether the world carries a world number.
func (w *World) HasNumber() bool {
	return w.Number != nil
}

// NumberOr returns the world number, or def if the world has none.
func (w *World) NumberOr(def int) int {
	if w.Number == nil {
		return def
	}
	return *w.Number
}

// HalfCount returns how many world-header halves the world has.
func (w *World) HalfCount() int {
	n := 0
	if w.HasLeft {
		n++
	}
	if w.HasRight {
		n++
	}
	return n
}

// Label returns the text the level-selection editor shows for a world:
// "World ?" without a number, otherwise "World N" followed by the
// non-empty half names in parentheses.
func (w *World) Label() string {
	if w.Number == nil {
		return "World ?"
	}

	label := fmt.Sprintf("World %d", *w.Number)

	var names []string
	if w.HasLeft {
		if n := strings.TrimSpace(w.NameLeft); n != "" {
			names = append(names, n)
		}
	}
	if w.HasRight {
		if n := strings.TrimSpace(w.NameRight); n != "" {
			names = append(names, n)
		}
	}
	if len(names) > 0 {
		label += " (" + strings.Join(names, ", ") + ")"
	}
	return label
}

// LevelCount returns the number of real levels across all worlds.
func (f *File) LevelCount() int {
	n := 0
	for i := range f.Worlds {
		n += len(f.Worlds[i].Levels)
	}
	return n
}

// EntryCount returns the number of 12-byte table entries the file needs:
// one per level plus one per world half.
func (f *File) EntryCount() int {
	n := 0
	for i := range f.Worlds {
		n += len(f.Worlds[i].Levels) + f.Worlds[i].HalfCount()
	}
	return n
}
