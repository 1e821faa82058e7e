package binary

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/dyuri/lvlinfo/internal/charset"
	"github.com/dyuri/lvlinfo/internal/model"
)

// Reader handles parsing of binary LevelInfo files
type Reader struct {
	r      io.ReaderAt
	size   int64
	endian binary.ByteOrder // LevelInfo is big-endian
}

// NewReader creates a new binary LevelInfo reader
func NewReader(r io.ReaderAt, size int64) *Reader {
	return &Reader{
		r:      r,
		size:   size,
		endian: byteOrder,
	}
}

// Parse reads the entire file and returns the internal model.
//
// A file that does not start with "NWRp" yields ErrInvalidMagic; any
// offset or length pointing outside the file yields ErrOutOfBounds. In
// both cases no partial model is returned.
func (r *Reader) Parse() (*model.File, error) {
	count, err := r.ReadHeader()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	offsets, err := r.ReadWorldOffsets(count)
	if err != nil {
		return nil, fmt.Errorf("read world offsets: %w", err)
	}

	f := model.NewFile()
	minTextOffset := int64(math.MaxUint32)
	haveText := false

	for i, offset := range offsets {
		entries, err := r.ReadWorldTable(int64(offset))
		if err != nil {
			return nil, fmt.Errorf("read world %d table: %w", i, err)
		}

		world, err := r.buildWorld(entries)
		if err != nil {
			return nil, fmt.Errorf("read world %d: %w", i, err)
		}
		f.Worlds = append(f.Worlds, world)

		for _, e := range entries {
			haveText = true
			minTextOffset = min(minTextOffset, int64(e.TextOffset))
		}
	}

	comments, err := r.readComments(CommentsOffset(f), minTextOffset, haveText)
	if err != nil {
		return nil, fmt.Errorf("read comments: %w", err)
	}
	f.Comments = comments

	return f, nil
}

// ReadHeader checks the signature and returns the world count.
func (r *Reader) ReadHeader() (uint32, error) {
	if r.size < int64(len(Magic)) {
		return 0, ErrInvalidMagic
	}

	magic, err := r.readAt(0, int64(len(Magic)))
	if err != nil {
		return 0, err
	}
	if string(magic) != Magic {
		return 0, ErrInvalidMagic
	}

	buf, err := r.readAt(4, 4)
	if err != nil {
		return 0, fmt.Errorf("world count: %w", err)
	}
	return r.endian.Uint32(buf), nil
}

// ReadWorldOffsets reads the table of world offsets that follows the header.
func (r *Reader) ReadWorldOffsets(count uint32) ([]uint32, error) {
	buf, err := r.readAt(headerSize, int64(count)*worldSlotSize)
	if err != nil {
		return nil, err
	}

	offsets := make([]uint32, count)
	for i := range offsets {
		offsets[i] = r.endian.Uint32(buf[i*worldSlotSize:])
	}
	return offsets, nil
}

// ReadWorldTable reads the entry count at offset and the entries after it.
func (r *Reader) ReadWorldTable(offset int64) ([]Entry, error) {
	buf, err := r.readAt(offset, entryCountSize)
	if err != nil {
		return nil, fmt.Errorf("entry count: %w", err)
	}
	count := int64(r.endian.Uint32(buf))

	buf, err = r.readAt(offset+entryCountSize, count*entrySize)
	if err != nil {
		return nil, fmt.Errorf("entries: %w", err)
	}

	entries := make([]Entry, count)
	for i := range entries {
		entries[i] = unmarshalEntry(buf[i*entrySize:])
	}
	return entries, nil
}

// buildWorld turns a world table into a model world. Entries with a
// display level of 100 or more are world-header halves, everything else
// is a level, kept in table order.
func (r *Reader) buildWorld(entries []Entry) (model.World, error) {
	var world model.World

	for i, e := range entries {
		text, err := r.readText(e)
		if err != nil {
			return model.World{}, fmt.Errorf("entry %d text: %w", i, err)
		}

		if e.IsWorldHalf() {
			number := int(e.DisplayWorld)
			world.Number = &number
			if e.IsLeftHalf() {
				world.HasLeft = true
				world.NameLeft = text
			} else {
				world.HasRight = true
				world.NameRight = text
			}
			continue
		}

		level := model.Level{
			Name:         text,
			FileWorld:    int(e.FileWorld) + 1,
			FileLevel:    int(e.FileLevel) + 1,
			DisplayWorld: int(e.DisplayWorld),
			DisplayLevel: int(e.DisplayLevel),
		}
		level.SetFlags(e.Flags)
		world.Levels = append(world.Levels, level)
	}

	return world, nil
}

// readText reads and de-obfuscates the name an entry points at
func (r *Reader) readText(e Entry) (string, error) {
	stored, err := r.readAt(int64(e.TextOffset), int64(e.TextLength))
	if err != nil {
		return "", err
	}
	return charset.Decode(DecodeText(stored)), nil
}

// readComments reads the plain comment between the world tables and the
// first name of the text pool. The byte just before the first name is the
// comment's NUL terminator. Without any names the comment runs to the
// last byte of the file, which is its terminator.
func (r *Reader) readComments(start, minTextOffset int64, haveText bool) (string, error) {
	end := r.size - 1
	if haveText {
		end = minTextOffset - 1
	}

	if end < start {
		return "", fmt.Errorf("%w: comments end 0x%x before start 0x%x", ErrOutOfBounds, end, start)
	}

	buf, err := r.readAt(start, end-start)
	if err != nil {
		return "", err
	}
	return charset.Decode(buf), nil
}

// readAt reads exactly n bytes at offset, failing with ErrOutOfBounds if
// the range is not inside the file.
func (r *Reader) readAt(offset, n int64) ([]byte, error) {
	if offset < 0 || n < 0 || offset > r.size || n > r.size-offset {
		return nil, fmt.Errorf("%w: %d bytes at 0x%x (file size %d)", ErrOutOfBounds, n, offset, r.size)
	}

	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}

	read, err := r.r.ReadAt(buf, offset)
	if read < len(buf) {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("read %d bytes at 0x%x: %w", n, offset, err)
	}
	return buf, nil
}
