package binary

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/dyuri/lvlinfo/internal/charset"
	"github.com/dyuri/lvlinfo/internal/model"
)

// Writer handles writing LevelInfo files to binary format
type Writer struct {
	w      io.Writer
	endian binary.ByteOrder

	// Accumulated sections during write
	tables *bytes.Buffer // header, offset table and world tables
	text   *bytes.Buffer // obfuscated text pool

	textOffset uint32 // absolute offset of the next name
}

// NewWriter creates a new binary LevelInfo writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:      w,
		endian: byteOrder,
		tables: &bytes.Buffer{},
		text:   &bytes.Buffer{},
	}
}

// Write writes a complete LevelInfo file.
//
// All offsets are recomputed from f. Names are placed in the text pool in
// the order their entries are written: per world the left half, the right
// half, then the levels. The comment sits directly before the first name
// and is written as stored, NUL bytes included.
func (w *Writer) Write(f *model.File) error {
	w.tables.Reset()
	w.text.Reset()

	comments, err := charset.Encode(f.Comments)
	if err != nil {
		return fmt.Errorf("encode comments: %w", err)
	}

	commentsOffset := CommentsOffset(f)
	textStart := commentsOffset + int64(len(comments)) + 1
	if err := checkOffset(textStart); err != nil {
		return err
	}
	w.textOffset = uint32(textStart)

	// Header with placeholder world offsets
	w.tables.WriteString(Magic)
	w.putUint32(uint32(len(f.Worlds)))
	w.tables.Write(make([]byte, worldSlotSize*len(f.Worlds)))

	for i := range f.Worlds {
		slot := headerSize + worldSlotSize*i
		w.endian.PutUint32(w.tables.Bytes()[slot:], uint32(w.tables.Len()))

		if err := w.writeWorld(&f.Worlds[i]); err != nil {
			return fmt.Errorf("write world %d: %w", i, err)
		}
	}

	if int64(w.tables.Len()) != commentsOffset {
		return fmt.Errorf("world tables end at 0x%x, expected 0x%x", w.tables.Len(), commentsOffset)
	}

	// Comments, then the text pool
	w.tables.Write(comments)
	w.tables.WriteByte(0)

	if _, err := w.tables.WriteTo(w.w); err != nil {
		return fmt.Errorf("write tables: %w", err)
	}
	if _, err := w.text.WriteTo(w.w); err != nil {
		return fmt.Errorf("write text: %w", err)
	}

	return nil
}

// writeWorld writes one world table: the entry count, the world halves
// (left before right) and the levels in list order.
func (w *Writer) writeWorld(world *model.World) error {
	w.putUint32(uint32(world.HalfCount() + len(world.Levels)))

	number := world.NumberOr(0)
	if number < 0 || number > model.MaxByteValue {
		return fmt.Errorf("%w: world number %d", model.ErrOutOfRange, number)
	}

	if world.HasLeft {
		e := Entry{
			FileWorld:    worldHeaderFile,
			FileLevel:    worldHeaderFile,
			DisplayWorld: uint8(number),
			DisplayLevel: leftHalfLevel,
		}
		if err := w.writeEntry(e, world.NameLeft); err != nil {
			return fmt.Errorf("left half: %w", err)
		}
	}

	if world.HasRight {
		e := Entry{
			FileWorld:    worldHeaderFile,
			FileLevel:    worldHeaderFile,
			DisplayWorld: uint8(number),
			DisplayLevel: rightHalfLevel,
			Flags:        model.FlagRightSide,
		}
		if err := w.writeEntry(e, world.NameRight); err != nil {
			return fmt.Errorf("right half: %w", err)
		}
	}

	for i := range world.Levels {
		e, err := levelEntry(&world.Levels[i])
		if err != nil {
			return fmt.Errorf("level %d: %w", i, err)
		}
		if err := w.writeEntry(e, world.Levels[i].Name); err != nil {
			return fmt.Errorf("level %d: %w", i, err)
		}
	}

	return nil
}

// levelEntry maps a level onto its table entry. File numbers are stored
// minus one and wrap into a byte.
func levelEntry(l *model.Level) (Entry, error) {
	if l.DisplayWorld < 0 || l.DisplayWorld > model.MaxByteValue {
		return Entry{}, fmt.Errorf("%w: display world %d", model.ErrOutOfRange, l.DisplayWorld)
	}
	if l.DisplayLevel < 0 || l.DisplayLevel > model.MaxByteValue {
		return Entry{}, fmt.Errorf("%w: display level %d", model.ErrOutOfRange, l.DisplayLevel)
	}

	return Entry{
		FileWorld:    uint8((l.FileWorld - 1) & 0xff),
		FileLevel:    uint8((l.FileLevel - 1) & 0xff),
		DisplayWorld: uint8(l.DisplayWorld),
		DisplayLevel: uint8(l.DisplayLevel),
		Flags:        l.Flags(),
	}, nil
}

// writeEntry fills in the name's length and offset, appends the entry to
// the world tables and the obfuscated, NUL-terminated name to the text
// pool.
func (w *Writer) writeEntry(e Entry, name string) error {
	plain, err := charset.Encode(name)
	if err != nil {
		return fmt.Errorf("encode name: %w", err)
	}
	if len(plain) > model.MaxNameLen {
		return fmt.Errorf("%w: %d bytes", model.ErrNameTooLong, len(plain))
	}

	e.TextLength = uint8(len(plain))
	e.TextOffset = w.textOffset

	var buf [entrySize]byte
	e.marshal(buf[:])
	w.tables.Write(buf[:])

	// the terminator is obfuscated along with the name
	w.text.Write(EncodeText(append(plain, 0)))

	next := int64(w.textOffset) + int64(len(plain)) + 1
	if err := checkOffset(next); err != nil {
		return err
	}
	w.textOffset = uint32(next)
	return nil
}

func (w *Writer) putUint32(v uint32) {
	var buf [4]byte
	w.endian.PutUint32(buf[:], v)
	w.tables.Write(buf[:])
}

// checkOffset fails if an offset no longer fits the 32-bit offset fields.
func checkOffset(offset int64) error {
	if offset > int64(^uint32(0)) {
		return fmt.Errorf("%w: offset 0x%x exceeds 32 bits", model.ErrOutOfRange, offset)
	}
	return nil
}
