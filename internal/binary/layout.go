package binary

import (
	"encoding/binary"
	"errors"

	"github.com/dyuri/lvlinfo/internal/model"
)

// LevelInfo layout (big-endian throughout):
//
//	0x00  "NWRp"
//	0x04  uint32 world count N
//	0x08  N x uint32 absolute world table offsets
//	....  per world: uint32 entry count M, then M x 12-byte entries
//	....  comments, plain, NUL-terminated
//	....  text pool: obfuscated names, each NUL-terminated
const (
	Magic = "NWRp"

	headerSize      = 8  // magic + world count
	worldSlotSize   = 4  // one offset-table slot
	entryCountSize  = 4  // per-world entry count
	entrySize       = 12 // one level or world-half entry
	worldHeaderFile = 98 // file number written for world-half entries

	leftHalfLevel  = 100
	rightHalfLevel = 101
)

// byteOrder is the byte order of every multi-byte field.
var byteOrder = binary.BigEndian

// Errors returned while decoding
var (
	ErrInvalidMagic = errors.New("missing NWRp signature")
	ErrOutOfBounds  = errors.New("offset out of bounds")
)

// Entry is one 12-byte record of a world table: either a real level or
// one half of the world header.
type Entry struct {
	FileWorld    uint8  // 0-based file world (98 for world halves)
	FileLevel    uint8  // 0-based file level (98 for world halves)
	DisplayWorld uint8  // On-screen world number
	DisplayLevel uint8  // On-screen level; 100 left half, 101+ right half
	TextLength   uint8  // Length of the name in the text pool
	Flags        uint16 // Level flags (0x0400 on right halves)
	TextOffset   uint32 // Absolute offset of the name
}

// IsWorldHalf reports whether the entry is a world-header half rather
// than a level.
func (e Entry) IsWorldHalf() bool {
	return e.DisplayLevel >= model.HeaderThreshold
}

// IsLeftHalf reports whether the entry is the left world-header half.
func (e Entry) IsLeftHalf() bool {
	return e.DisplayLevel == leftHalfLevel
}

func (e Entry) marshal(buf []byte) {
	buf[0] = e.FileWorld
	buf[1] = e.FileLevel
	buf[2] = e.DisplayWorld
	buf[3] = e.DisplayLevel
	buf[4] = e.TextLength
	buf[5] = 0 // padding
	byteOrder.PutUint16(buf[6:8], e.Flags)
	byteOrder.PutUint32(buf[8:12], e.TextOffset)
}

func unmarshalEntry(buf []byte) Entry {
	return Entry{
		FileWorld:    buf[0],
		FileLevel:    buf[1],
		DisplayWorld: buf[2],
		DisplayLevel: buf[3],
		TextLength:   buf[4],
		Flags:        byteOrder.Uint16(buf[6:8]),
		TextOffset:   byteOrder.Uint32(buf[8:12]),
	}
}

// CommentsOffset returns where the comments start for the given file:
// the size of the header, the offset table and every world table. It is
// computed from the model, never by scanning the data.
func CommentsOffset(f *model.File) int64 {
	offset := int64(headerSize)
	for i := range f.Worlds {
		w := &f.Worlds[i]
		offset += worldSlotSize + entryCountSize
		offset += int64(entrySize * (w.HalfCount() + len(w.Levels)))
	}
	return offset
}
