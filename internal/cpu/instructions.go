package cpu

// Instruction handlers. Each handler runs after the operand address has been
// resolved into c.addr and returns the number of extra cycles it consumed
// beyond the table cost.

// operand reads the byte at the resolved operand address.
func (c *CPU) operand() uint8 {
	return c.bus.Read(c.addr)
}

// modify applies fn to the accumulator or to the byte at the operand address
// and writes the result back.
func (c *CPU) modify(mode AddressingMode, fn func(uint8) uint8) {
	if mode == Accumulator {
		c.a.Store(fn(c.a.Load()))
		return
	}
	c.bus.Write(c.addr, fn(c.operand()))
}

// load/store

func (c *CPU) lda(_ AddressingMode) uint8 {
	c.a.Store(c.operand())
	c.p.setZN(c.a.Load())
	return 0
}

func (c *CPU) ldx(_ AddressingMode) uint8 {
	c.x.Store(c.operand())
	c.p.setZN(c.x.Load())
	return 0
}

func (c *CPU) ldy(_ AddressingMode) uint8 {
	c.y.Store(c.operand())
	c.p.setZN(c.y.Load())
	return 0
}

func (c *CPU) sta(_ AddressingMode) uint8 {
	c.bus.Write(c.addr, c.a.Load())
	return 0
}

func (c *CPU) stx(_ AddressingMode) uint8 {
	c.bus.Write(c.addr, c.x.Load())
	return 0
}

func (c *CPU) sty(_ AddressingMode) uint8 {
	c.bus.Write(c.addr, c.y.Load())
	return 0
}

// arithmetic

// add is the binary mode adder shared by ADC and SBC. The decimal flag is
// ignored.
func (c *CPU) add(operand uint8) {
	a := c.a.Load()
	sum := uint16(a) + uint16(operand) + uint16(c.p.carry())
	result := uint8(sum)

	c.p.Set(Carry, sum > 0xff)
	c.p.Set(Zero, result == 0)
	c.p.Set(Overflow, ^(a^operand)&(a^result)&0x80 != 0)
	c.p.Set(Negative, result&0x80 != 0)
	c.a.Store(result)
}

func (c *CPU) adc(_ AddressingMode) uint8 {
	c.add(c.operand())
	return 0
}

func (c *CPU) sbc(_ AddressingMode) uint8 {
	c.add(c.operand() ^ 0xff)
	return 0
}

func (c *CPU) compare(reg uint8) {
	m := c.operand()
	c.p.Set(Carry, reg >= m)
	c.p.setZN(reg - m)
}

func (c *CPU) cmp(_ AddressingMode) uint8 {
	c.compare(c.a.Load())
	return 0
}

func (c *CPU) cpx(_ AddressingMode) uint8 {
	c.compare(c.x.Load())
	return 0
}

func (c *CPU) cpy(_ AddressingMode) uint8 {
	c.compare(c.y.Load())
	return 0
}

// logical

func (c *CPU) and(_ AddressingMode) uint8 {
	c.a.Store(c.a.Load() & c.operand())
	c.p.setZN(c.a.Load())
	return 0
}

func (c *CPU) ora(_ AddressingMode) uint8 {
	c.a.Store(c.a.Load() | c.operand())
	c.p.setZN(c.a.Load())
	return 0
}

func (c *CPU) eor(_ AddressingMode) uint8 {
	c.a.Store(c.a.Load() ^ c.operand())
	c.p.setZN(c.a.Load())
	return 0
}

func (c *CPU) bit(_ AddressingMode) uint8 {
	m := c.operand()
	c.p.Set(Zero, c.a.Load()&m == 0)
	c.p.Set(Overflow, m&0x40 != 0)
	c.p.Set(Negative, m&0x80 != 0)
	return 0
}

// shifts

func (c *CPU) asl(mode AddressingMode) uint8 {
	c.modify(mode, func(v uint8) uint8 {
		t := uint16(v) << 1
		c.p.Set(Carry, t&0x100 != 0)
		c.p.setZN(uint8(t))
		return uint8(t)
	})
	return 0
}

func (c *CPU) lsr(mode AddressingMode) uint8 {
	c.modify(mode, func(v uint8) uint8 {
		c.p.Set(Carry, v&0x01 != 0)
		v >>= 1
		c.p.setZN(v)
		return v
	})
	return 0
}

func (c *CPU) rol(mode AddressingMode) uint8 {
	c.modify(mode, func(v uint8) uint8 {
		r := v<<1 | c.p.carry()
		c.p.Set(Carry, v&0x80 != 0)
		c.p.setZN(r)
		return r
	})
	return 0
}

func (c *CPU) ror(mode AddressingMode) uint8 {
	c.modify(mode, func(v uint8) uint8 {
		r := v>>1 | c.p.carry()<<7
		c.p.Set(Carry, v&0x01 != 0)
		c.p.setZN(r)
		return r
	})
	return 0
}

// increment/decrement

func (c *CPU) inc(mode AddressingMode) uint8 {
	c.modify(mode, func(v uint8) uint8 {
		v++
		c.p.setZN(v)
		return v
	})
	return 0
}

func (c *CPU) dec(mode AddressingMode) uint8 {
	c.modify(mode, func(v uint8) uint8 {
		v--
		c.p.setZN(v)
		return v
	})
	return 0
}

func (c *CPU) inx(_ AddressingMode) uint8 {
	c.x.Add(1)
	c.p.setZN(c.x.Load())
	return 0
}

func (c *CPU) iny(_ AddressingMode) uint8 {
	c.y.Add(1)
	c.p.setZN(c.y.Load())
	return 0
}

func (c *CPU) dex(_ AddressingMode) uint8 {
	c.x.Subtract(1)
	c.p.setZN(c.x.Load())
	return 0
}

func (c *CPU) dey(_ AddressingMode) uint8 {
	c.y.Subtract(1)
	c.p.setZN(c.y.Load())
	return 0
}

// transfers

func (c *CPU) tax(_ AddressingMode) uint8 {
	c.x.Store(c.a.Load())
	c.p.setZN(c.x.Load())
	return 0
}

func (c *CPU) tay(_ AddressingMode) uint8 {
	c.y.Store(c.a.Load())
	c.p.setZN(c.y.Load())
	return 0
}

func (c *CPU) txa(_ AddressingMode) uint8 {
	c.a.Store(c.x.Load())
	c.p.setZN(c.a.Load())
	return 0
}

func (c *CPU) tya(_ AddressingMode) uint8 {
	c.a.Store(c.y.Load())
	c.p.setZN(c.a.Load())
	return 0
}

func (c *CPU) tsx(_ AddressingMode) uint8 {
	c.x.Store(c.sp.Load())
	c.p.setZN(c.x.Load())
	return 0
}

// TXS does not affect the flags.
func (c *CPU) txs(_ AddressingMode) uint8 {
	c.sp.Store(c.x.Load())
	return 0
}

// stack

func (c *CPU) pha(_ AddressingMode) uint8 {
	c.push(c.a.Load())
	return 0
}

func (c *CPU) php(_ AddressingMode) uint8 {
	c.push(c.p.Load() | uint8(Break|Unused))
	return 0
}

func (c *CPU) pla(_ AddressingMode) uint8 {
	c.a.Store(c.pop())
	c.p.setZN(c.a.Load())
	return 0
}

// pullStatus restores the status register from the stack. The break and
// unused bits do not exist as storage in the processor so the live values of
// those bits are kept.
func (c *CPU) pullStatus() {
	const kept = uint8(Break | Unused)
	c.p.Store(c.pop()&^kept | c.p.Load()&kept)
}

func (c *CPU) plp(_ AddressingMode) uint8 {
	c.pullStatus()
	return 0
}

// flags

func (c *CPU) clc(_ AddressingMode) uint8 {
	c.p.Set(Carry, false)
	return 0
}

func (c *CPU) cld(_ AddressingMode) uint8 {
	c.p.Set(Decimal, false)
	return 0
}

func (c *CPU) cli(_ AddressingMode) uint8 {
	c.p.Set(InterruptDisable, false)
	return 0
}

func (c *CPU) clv(_ AddressingMode) uint8 {
	c.p.Set(Overflow, false)
	return 0
}

func (c *CPU) sec(_ AddressingMode) uint8 {
	c.p.Set(Carry, true)
	return 0
}

func (c *CPU) sed(_ AddressingMode) uint8 {
	c.p.Set(Decimal, true)
	return 0
}

func (c *CPU) sei(_ AddressingMode) uint8 {
	c.p.Set(InterruptDisable, true)
	return 0
}

// control flow

func (c *CPU) jmp(_ AddressingMode) uint8 {
	c.pc.Store(c.addr)
	return 0
}

// JSR pushes the address of the last byte of the instruction.
func (c *CPU) jsr(_ AddressingMode) uint8 {
	c.pushWord(c.pc.Load() - 1)
	c.pc.Store(c.addr)
	return 0
}

func (c *CPU) rts(_ AddressingMode) uint8 {
	c.pc.Store(c.popWord() + 1)
	return 0
}

func (c *CPU) rti(_ AddressingMode) uint8 {
	c.pullStatus()
	c.pc.Store(c.popWord())
	return 0
}

// BRK skips a padding byte, so the pushed return address is two bytes past
// the opcode.
func (c *CPU) brk(_ AddressingMode) uint8 {
	c.fetch()
	c.p.Set(InterruptDisable, true)
	c.pushWord(c.pc.Load())

	c.p.Set(Break, true)
	c.push(c.p.Load())
	c.p.Set(Break, false)

	c.pc.Store(c.bus.ReadWord(irqVector))
	return 0
}

func (c *CPU) nop(_ AddressingMode) uint8 {
	return 0
}

// branches

// branch moves PC to the resolved relative target if cond holds. A taken
// branch costs one cycle, and one more if the target is on a different page
// to the instruction that follows the branch.
func (c *CPU) branch(cond bool) uint8 {
	if !cond {
		return 0
	}
	extra := uint8(1)
	if pageCrossed(c.addr, c.pc.Load()) {
		extra++
	}
	c.pc.Store(c.addr)
	return extra
}

func (c *CPU) bcc(_ AddressingMode) uint8 { return c.branch(!c.p.Get(Carry)) }
func (c *CPU) bcs(_ AddressingMode) uint8 { return c.branch(c.p.Get(Carry)) }
func (c *CPU) beq(_ AddressingMode) uint8 { return c.branch(c.p.Get(Zero)) }
func (c *CPU) bne(_ AddressingMode) uint8 { return c.branch(!c.p.Get(Zero)) }
func (c *CPU) bmi(_ AddressingMode) uint8 { return c.branch(c.p.Get(Negative)) }
func (c *CPU) bpl(_ AddressingMode) uint8 { return c.branch(!c.p.Get(Negative)) }
func (c *CPU) bvc(_ AddressingMode) uint8 { return c.branch(!c.p.Get(Overflow)) }
func (c *CPU) bvs(_ AddressingMode) uint8 { return c.branch(c.p.Get(Overflow)) }
