package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dyuri/lvlinfo/internal/charset"
)

// Errors returned by the mutation methods. They are wrapped with the
// offending value, so compare with errors.Is.
var (
	ErrOutOfRange      = errors.New("value out of range")
	ErrNameTooLong     = errors.New("name longer than 255 bytes")
	ErrUnsupportedChar = charset.ErrUnsupportedChar
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrCommentsNUL     = errors.New("comments contain a NUL byte")
	ErrNoHalves        = errors.New("world has neither a left nor a right half")
)

// CheckName reports whether s can be stored as a world or level name.
func CheckName(s string) error {
	if err := charset.Check(s); err != nil {
		return err
	}
	if n := charset.Len(s); n > MaxNameLen {
		return fmt.Errorf("%w: %d bytes", ErrNameTooLong, n)
	}
	return nil
}

// CheckComments reports whether s can be stored as the file comment.
// The comment is terminated by a NUL, so it may not contain one.
func CheckComments(s string) error {
	if err := charset.Check(s); err != nil {
		return err
	}
	if strings.IndexByte(s, 0) >= 0 {
		return ErrCommentsNUL
	}
	return nil
}

func checkRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s %d not in [%d, %d]", ErrOutOfRange, field, v, lo, hi)
	}
	return nil
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, i, n)
	}
	return nil
}

// move relocates s[from] to position to, shifting the elements between.
func move[T any](s []T, from, to int) {
	if from == to {
		return
	}
	item := s[from]
	if from < to {
		copy(s[from:to], s[from+1:to+1])
	} else {
		copy(s[to+1:from+1], s[to:from])
	}
	s[to] = item
}

// File operations

// SetComments replaces the file comment.
func (f *File) SetComments(s string) error {
	if err := CheckComments(s); err != nil {
		return err
	}
	f.Comments = s
	return nil
}

// World returns the world at index i.
func (f *File) World(i int) (*World, error) {
	if err := checkIndex(i, len(f.Worlds)); err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}
	return &f.Worlds[i], nil
}

// AddWorld appends an empty, unnumbered world and returns it.
// The returned pointer is valid until the next structural change to f.Worlds.
func (f *File) AddWorld() *World {
	f.Worlds = append(f.Worlds, World{})
	return &f.Worlds[len(f.Worlds)-1]
}

// InsertWorld inserts w before index i. i == len(f.Worlds) appends.
func (f *File) InsertWorld(i int, w World) error {
	if err := checkIndex(i, len(f.Worlds)+1); err != nil {
		return fmt.Errorf("insert world: %w", err)
	}
	f.Worlds = append(f.Worlds, World{})
	copy(f.Worlds[i+1:], f.Worlds[i:])
	f.Worlds[i] = w
	return nil
}

// RemoveWorld removes the world at index i and returns it.
func (f *File) RemoveWorld(i int) (World, error) {
	if err := checkIndex(i, len(f.Worlds)); err != nil {
		return World{}, fmt.Errorf("remove world: %w", err)
	}
	w := f.Worlds[i]
	f.Worlds = append(f.Worlds[:i], f.Worlds[i+1:]...)
	return w, nil
}

// MoveWorld moves the world at index from so that it ends up at index to.
func (f *File) MoveWorld(from, to int) error {
	if err := checkIndex(from, len(f.Worlds)); err != nil {
		return fmt.Errorf("move world: %w", err)
	}
	if err := checkIndex(to, len(f.Worlds)); err != nil {
		return fmt.Errorf("move world: %w", err)
	}
	move(f.Worlds, from, to)
	return nil
}

// World operations

// SetNumber sets the world number. Only worlds with at least one half
// carry a number.
func (w *World) SetNumber(n int) error {
	if !w.HasLeft && !w.HasRight {
		return ErrNoHalves
	}
	if err := checkRange("world number", n, 0, MaxByteValue); err != nil {
		return err
	}
	w.Number = &n
	return nil
}

// SetLeft adds or removes the left half.
func (w *World) SetLeft(exists bool) {
	w.HasLeft = exists
	if !exists {
		w.NameLeft = ""
	}
	w.syncNumber()
}

// SetRight adds or removes the right half.
func (w *World) SetRight(exists bool) {
	w.HasRight = exists
	if !exists {
		w.NameRight = ""
	}
	w.syncNumber()
}

// syncNumber keeps Number set exactly when at least one half exists.
func (w *World) syncNumber() {
	switch {
	case !w.HasLeft && !w.HasRight:
		w.Number = nil
	case w.Number == nil:
		n := 0
		w.Number = &n
	}
}

// SetLeftName sets the left half's name.
func (w *World) SetLeftName(s string) error {
	if err := CheckName(s); err != nil {
		return fmt.Errorf("left name: %w", err)
	}
	w.NameLeft = s
	return nil
}

// SetRightName sets the right half's name.
func (w *World) SetRightName(s string) error {
	if err := CheckName(s); err != nil {
		return fmt.Errorf("right name: %w", err)
	}
	w.NameRight = s
	return nil
}

// Level returns the level at index i.
func (w *World) Level(i int) (*Level, error) {
	if err := checkIndex(i, len(w.Levels)); err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	return &w.Levels[i], nil
}

// AddLevel appends a level with default values and returns it.
// The returned pointer is valid until the next structural change to w.Levels.
func (w *World) AddLevel() *Level {
	w.Levels = append(w.Levels, NewLevel())
	return &w.Levels[len(w.Levels)-1]
}

// InsertLevel inserts l before index i. i == len(w.Levels) appends.
func (w *World) InsertLevel(i int, l Level) error {
	if err := checkIndex(i, len(w.Levels)+1); err != nil {
		return fmt.Errorf("insert level: %w", err)
	}
	w.Levels = append(w.Levels, Level{})
	copy(w.Levels[i+1:], w.Levels[i:])
	w.Levels[i] = l
	return nil
}

// RemoveLevel removes the level at index i and returns it.
func (w *World) RemoveLevel(i int) (Level, error) {
	if err := checkIndex(i, len(w.Levels)); err != nil {
		return Level{}, fmt.Errorf("remove level: %w", err)
	}
	l := w.Levels[i]
	w.Levels = append(w.Levels[:i], w.Levels[i+1:]...)
	return l, nil
}

// MoveLevel moves the level at index from so that it ends up at index to.
func (w *World) MoveLevel(from, to int) error {
	if err := checkIndex(from, len(w.Levels)); err != nil {
		return fmt.Errorf("move level: %w", err)
	}
	if err := checkIndex(to, len(w.Levels)); err != nil {
		return fmt.Errorf("move level: %w", err)
	}
	move(w.Levels, from, to)
	return nil
}

// Level operations

// SetName sets the level's display name.
func (l *Level) SetName(s string) error {
	if err := CheckName(s); err != nil {
		return fmt.Errorf("level name: %w", err)
	}
	l.Name = s
	return nil
}

// SetFileNumber sets the 1-based world/level pair naming the level file.
func (l *Level) SetFileNumber(world, level int) error {
	if err := checkRange("file world", world, MinFileNumber, MaxFileNumber); err != nil {
		return err
	}
	if err := checkRange("file level", level, MinFileNumber, MaxFileNumber); err != nil {
		return err
	}
	l.FileWorld, l.FileLevel = world, level
	return nil
}

// SetDisplayNumber sets the on-screen world/level pair. Display levels of
// 100 and above fit the field but are read back as world halves.
func (l *Level) SetDisplayNumber(world, level int) error {
	if err := checkRange("display world", world, 0, MaxByteValue); err != nil {
		return err
	}
	if err := checkRange("display level", level, 0, MaxByteValue); err != nil {
		return err
	}
	l.DisplayWorld, l.DisplayLevel = world, level
	return nil
}
