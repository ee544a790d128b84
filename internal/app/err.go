package app

import (
	"errors"
	"fmt"

	"nescore/internal/translate"
)

var f = translate.From

var (
	ErrNotInitialized = errors.New(f("application not initialized"))
	ErrNoROM          = errors.New(f("no ROM loaded"))
	ErrSlot           = errors.New(f("invalid save slot"))
	ErrNoState        = errors.New(f("no save state in slot"))
	ErrStateVersion   = errors.New(f("save state has no version"))
	ErrStateROM       = errors.New(f("save state is for a different ROM"))
)

// ConfigError reports a configuration value that cannot be used.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return f("config error in field '%s' with value '%v': %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ApplicationError wraps a failure of one of the application's components.
type ApplicationError struct {
	Component string
	Operation string
	Err       error
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Component, e.Operation, e.Err)
}

func (e *ApplicationError) Unwrap() error {
	return e.Err
}
