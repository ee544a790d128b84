package cartridge

import (
	"errors"

	"nescore/internal/translate"
)

var f = translate.From

var (
	ErrInvalidHeader = errors.New(f("not an iNES image"))
	ErrEmptyPRG      = errors.New(f("PRG ROM size is zero"))
	ErrPRGSize       = errors.New(f("PRG ROM must be 16KB or 32KB"))
	ErrTruncated     = errors.New(f("image truncated"))
)

// ErrUnsupportedMapper is returned for images using a mapper other than
// NROM.
type ErrUnsupportedMapper uint8

func (err ErrUnsupportedMapper) Error() string {
	return f("mapper %d not supported", uint8(err))
}
