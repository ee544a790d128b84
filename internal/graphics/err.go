package graphics

import (
	"errors"

	"nescore/internal/translate"
)

var f = translate.From

var (
	ErrUnknownBackend     = errors.New(f("unknown graphics backend"))
	ErrUnavailable        = errors.New(f("graphics backend not available in this build"))
	ErrNotInitialized     = errors.New(f("backend not initialized"))
	ErrAlreadyInitialized = errors.New(f("backend already initialized"))
)
