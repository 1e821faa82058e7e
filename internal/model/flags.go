package model

// Level flag bits. Only these four carry meaning; every other bit of the
// 16-bit field is written as zero.
const (
	FlagStarCoinsMenu uint16 = 0x0002
	FlagNormalExit    uint16 = 0x0010
	FlagSecretExit    uint16 = 0x0020
	FlagRightSide     uint16 = 0x0400

	FlagMask = FlagStarCoinsMenu | FlagNormalExit | FlagSecretExit | FlagRightSide
)

// Flags packs the level's booleans into the on-disk flags field.
func (l *Level) Flags() uint16 {
	var flags uint16
	if l.InStarCoinsMenu {
		flags |= FlagStarCoinsMenu
	}
	if l.HasNormalExit {
		flags |= FlagNormalExit
	}
	if l.HasSecretExit {
		flags |= FlagSecretExit
	}
	if l.IsRightSide {
		flags |= FlagRightSide
	}
	return flags
}

// SetFlags sets the level's booleans from an on-disk flags field.
// Unknown bits are ignored.
func (l *Level) SetFlags(flags uint16) {
	l.InStarCoinsMenu = flags&FlagStarCoinsMenu != 0
	l.HasNormalExit = flags&FlagNormalExit != 0
	l.HasSecretExit = flags&FlagSecretExit != 0
	l.IsRightSide = flags&FlagRightSide != 0
}
