package cpu

// AddressingMode describes how the operand of an instruction is located.
type AddressingMode int

// List of addressing modes.
const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX // (zp,X)
	IndirectY // (zp),Y
)

var modeNames = [...]string{
	Implied:     "implied",
	Accumulator: "accumulator",
	Immediate:   "immediate",
	ZeroPage:    "zero page",
	ZeroPageX:   "zero page,X",
	ZeroPageY:   "zero page,Y",
	Relative:    "relative",
	Absolute:    "absolute",
	AbsoluteX:   "absolute,X",
	AbsoluteY:   "absolute,Y",
	Indirect:    "indirect",
	IndirectX:   "(indirect,X)",
	IndirectY:   "(indirect),Y",
}

func (m AddressingMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// operandBytes is the number of bytes following the opcode.
func (m AddressingMode) operandBytes() int {
	switch m {
	case Implied, Accumulator:
		return 0
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 2
	}
	return 1
}

const pageMask = 0xff00

func pageCrossed(a, b uint16) bool {
	return a&pageMask != b&pageMask
}

// resolve computes the operand address for mode and stores it in the
// transient address register, consuming operand bytes from PC. The returned
// value is true if indexing moved the address onto a different page.
//
// Implied and accumulator instructions have no operand address and resolve
// to nothing.
func (c *CPU) resolve(mode AddressingMode) (bool, error) {
	switch mode {
	case Implied, Accumulator:
		return false, nil

	case Immediate:
		c.addr = c.pc.Load()
		c.pc.Add(1)

	case ZeroPage:
		c.addr = uint16(c.fetch())

	case ZeroPageX:
		c.addr = uint16(c.fetch() + c.x.Load())

	case ZeroPageY:
		c.addr = uint16(c.fetch() + c.y.Load())

	case Relative:
		offset := int8(c.fetch())
		c.addr = c.pc.Load() + uint16(offset)

	case Absolute:
		c.addr = c.fetchWord()

	case AbsoluteX:
		base := c.fetchWord()
		c.addr = base + uint16(c.x.Load())
		return pageCrossed(base, c.addr), nil

	case AbsoluteY:
		base := c.fetchWord()
		c.addr = base + uint16(c.y.Load())
		return pageCrossed(base, c.addr), nil

	case Indirect:
		ptr := c.fetchWord()
		lo := uint16(c.bus.Read(ptr))

		// the high byte of a pointer at the end of a page is fetched from
		// the start of the same page, not the next one
		var hi uint16
		if ptr&0x00ff == 0x00ff {
			hi = uint16(c.bus.Read(ptr & pageMask))
		} else {
			hi = uint16(c.bus.Read(ptr + 1))
		}
		c.addr = hi<<8 | lo

	case IndirectX:
		zp := c.fetch() + c.x.Load()
		lo := uint16(c.bus.Read(uint16(zp)))
		hi := uint16(c.bus.Read(uint16(zp + 1)))
		c.addr = hi<<8 | lo

	case IndirectY:
		zp := c.fetch()
		lo := uint16(c.bus.Read(uint16(zp)))
		hi := uint16(c.bus.Read(uint16(zp + 1)))
		base := hi<<8 | lo
		c.addr = base + uint16(c.y.Load())
		return pageCrossed(base, c.addr), nil

	default:
		return false, ErrAddressingMode
	}

	return false, nil
}
