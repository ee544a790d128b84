package cpu

import "fmt"

// Register is a fixed width value holder. Arithmetic wraps at the width of
// the register.
type Register[T uint8 | uint16] struct {
	value T
}

// Register8 is used for the accumulator, index registers and stack pointer.
type Register8 = Register[uint8]

// Register16 is used for the program counter.
type Register16 = Register[uint16]

// Load returns the current value.
func (r *Register[T]) Load() T {
	return r.value
}

// Store replaces the current value.
func (r *Register[T]) Store(v T) {
	r.value = v
}

// Add v to the register, wrapping on overflow.
func (r *Register[T]) Add(v T) {
	r.value += v
}

// Subtract v from the register, wrapping on underflow.
func (r *Register[T]) Subtract(v T) {
	r.value -= v
}

// Clear sets the register to zero.
func (r *Register[T]) Clear() {
	r.value = 0
}

// Bit returns true if bit pos is set.
func (r *Register[T]) Bit(pos uint) bool {
	return (r.value>>pos)&1 == 1
}

// SetBit sets or clears bit pos. No other bit is changed.
func (r *Register[T]) SetBit(pos uint, v bool) {
	if v {
		r.value |= 1 << pos
	} else {
		r.value &^= 1 << pos
	}
}

func (r Register[T]) String() string {
	var zero T
	if ^zero > 0xff {
		return fmt.Sprintf("$%04X", r.value)
	}
	return fmt.Sprintf("$%02X", r.value)
}
