package script

import (
	"errors"

	"nescore/internal/translate"
)

var f = translate.From

var (
	ErrAddress = errors.New(f("address out of range"))
	ErrValue   = errors.New(f("value out of range"))
	ErrCount   = errors.New(f("count must not be negative"))
	ErrPort    = errors.New(f("no such controller port"))
)
