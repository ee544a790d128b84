package nes

import (
	"errors"

	"nescore/internal/translate"
)

var f = translate.From

var (
	ErrStateRAM    = errors.New(f("state RAM size does not match"))
	ErrStatePRGRAM = errors.New(f("state cartridge RAM does not match the inserted cartridge"))
)
