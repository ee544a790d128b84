package cpu

import (
	"errors"

	"nescore/internal/translate"
)

var f = translate.From

var (
	// ErrDecode is matched by every decode failure.
	ErrDecode = errors.New(f("decode failure"))

	// ErrAddressingMode is the cause of a decode failure when the opcode
	// table names a mode that has no resolver.
	ErrAddressingMode = errors.New(f("addressing mode has no resolver"))

	// ErrUndefinedOpcode is the cause of a decode failure when the opcode
	// has no table entry.
	ErrUndefinedOpcode = errors.New(f("undefined opcode"))
)

// DecodeError is returned by Tick when an instruction cannot be decoded.
// The processor stays halted until Reset.
type DecodeError struct {
	Opcode uint8
	PC     uint16
	Err    error
}

func (err *DecodeError) Error() string {
	return f("opcode $%02X at $%04X: %v", err.Opcode, err.PC, err.Err)
}

func (err *DecodeError) Unwrap() error {
	return err.Err
}

func (err *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
