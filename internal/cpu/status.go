package cpu

import "strings"

// Flag is the mask of a single bit in the status register.
type Flag uint8

// List of status flags.
const (
	Carry            Flag = 0x01
	Zero             Flag = 0x02
	InterruptDisable Flag = 0x04
	Decimal          Flag = 0x08
	Break            Flag = 0x10
	Unused           Flag = 0x20
	Overflow         Flag = 0x40
	Negative         Flag = 0x80
)

// Status is the processor status register. Get and Set only ever touch the
// bits named by the flag.
type Status struct {
	Register8
}

// Get returns the state of flag.
func (s *Status) Get(flag Flag) bool {
	return s.value&uint8(flag) != 0
}

// Set sets or clears flag.
func (s *Status) Set(flag Flag, v bool) {
	if v {
		s.value |= uint8(flag)
	} else {
		s.value &^= uint8(flag)
	}
}

// carry returns the carry flag as a number suitable for arithmetic.
func (s *Status) carry() uint8 {
	return s.value & uint8(Carry)
}

// setZN sets the zero and negative flags from v.
func (s *Status) setZN(v uint8) {
	s.Set(Zero, v == 0)
	s.Set(Negative, v&0x80 != 0)
}

// String renders the flags in NV-BDIZC order, upper case for set flags.
func (s Status) String() string {
	return statusString(s.value)
}

func statusString(p uint8) string {
	const labels = "nv-bdizc"
	b := strings.Builder{}
	for i := 0; i < 8; i++ {
		c := labels[i]
		if p&(0x80>>i) != 0 {
			c = strings.ToUpper(string(c))[0]
		}
		b.WriteByte(c)
	}
	return b.String()
}
