package cpu

// Instruction is an entry in the opcode table.
type Instruction struct {
	Opcode   uint8
	Mnemonic string
	Mode     AddressingMode
	Cycles   uint8

	// PagePenalty is set for instructions that take an extra cycle when
	// indexing crosses a page boundary. Stores and read-modify-write
	// instructions always take the long path and the cost is included in
	// Cycles.
	PagePenalty bool

	exec func(*CPU, AddressingMode) uint8
}

// instructions is indexed by opcode. Undefined opcodes are nil.
var instructions = buildInstructions()

// Lookup returns the table entry for opcode or nil if the opcode is not
// defined.
func Lookup(opcode uint8) *Instruction {
	return instructions[opcode]
}

// Size returns the number of bytes occupied by the instruction, including
// the opcode.
func (ins *Instruction) Size() int {
	return 1 + ins.Mode.operandBytes()
}

func buildInstructions() [256]*Instruction {
	defs := []Instruction{
		{0x69, "ADC", Immediate, 2, false, (*CPU).adc},
		{0x65, "ADC", ZeroPage, 3, false, (*CPU).adc},
		{0x75, "ADC", ZeroPageX, 4, false, (*CPU).adc},
		{0x6d, "ADC", Absolute, 4, false, (*CPU).adc},
		{0x7d, "ADC", AbsoluteX, 4, true, (*CPU).adc},
		{0x79, "ADC", AbsoluteY, 4, true, (*CPU).adc},
		{0x61, "ADC", IndirectX, 6, false, (*CPU).adc},
		{0x71, "ADC", IndirectY, 5, true, (*CPU).adc},

		{0x29, "AND", Immediate, 2, false, (*CPU).and},
		{0x25, "AND", ZeroPage, 3, false, (*CPU).and},
		{0x35, "AND", ZeroPageX, 4, false, (*CPU).and},
		{0x2d, "AND", Absolute, 4, false, (*CPU).and},
		{0x3d, "AND", AbsoluteX, 4, true, (*CPU).and},
		{0x39, "AND", AbsoluteY, 4, true, (*CPU).and},
		{0x21, "AND", IndirectX, 6, false, (*CPU).and},
		{0x31, "AND", IndirectY, 5, true, (*CPU).and},

		{0x0a, "ASL", Accumulator, 2, false, (*CPU).asl},
		{0x06, "ASL", ZeroPage, 5, false, (*CPU).asl},
		{0x16, "ASL", ZeroPageX, 6, false, (*CPU).asl},
		{0x0e, "ASL", Absolute, 6, false, (*CPU).asl},
		{0x1e, "ASL", AbsoluteX, 7, false, (*CPU).asl},

		{0x90, "BCC", Relative, 2, false, (*CPU).bcc},
		{0xb0, "BCS", Relative, 2, false, (*CPU).bcs},
		{0xf0, "BEQ", Relative, 2, false, (*CPU).beq},
		{0x30, "BMI", Relative, 2, false, (*CPU).bmi},
		{0xd0, "BNE", Relative, 2, false, (*CPU).bne},
		{0x10, "BPL", Relative, 2, false, (*CPU).bpl},
		{0x50, "BVC", Relative, 2, false, (*CPU).bvc},
		{0x70, "BVS", Relative, 2, false, (*CPU).bvs},

		{0x24, "BIT", ZeroPage, 3, false, (*CPU).bit},
		{0x2c, "BIT", Absolute, 4, false, (*CPU).bit},

		{0x00, "BRK", Implied, 7, false, (*CPU).brk},

		{0x18, "CLC", Implied, 2, false, (*CPU).clc},
		{0xd8, "CLD", Implied, 2, false, (*CPU).cld},
		{0x58, "CLI", Implied, 2, false, (*CPU).cli},
		{0xb8, "CLV", Implied, 2, false, (*CPU).clv},

		{0xc9, "CMP", Immediate, 2, false, (*CPU).cmp},
		{0xc5, "CMP", ZeroPage, 3, false, (*CPU).cmp},
		{0xd5, "CMP", ZeroPageX, 4, false, (*CPU).cmp},
		{0xcd, "CMP", Absolute, 4, false, (*CPU).cmp},
		{0xdd, "CMP", AbsoluteX, 4, true, (*CPU).cmp},
		{0xd9, "CMP", AbsoluteY, 4, true, (*CPU).cmp},
		{0xc1, "CMP", IndirectX, 6, false, (*CPU).cmp},
		{0xd1, "CMP", IndirectY, 5, true, (*CPU).cmp},

		{0xe0, "CPX", Immediate, 2, false, (*CPU).cpx},
		{0xe4, "CPX", ZeroPage, 3, false, (*CPU).cpx},
		{0xec, "CPX", Absolute, 4, false, (*CPU).cpx},

		{0xc0, "CPY", Immediate, 2, false, (*CPU).cpy},
		{0xc4, "CPY", ZeroPage, 3, false, (*CPU).cpy},
		{0xcc, "CPY", Absolute, 4, false, (*CPU).cpy},

		{0xc6, "DEC", ZeroPage, 5, false, (*CPU).dec},
		{0xd6, "DEC", ZeroPageX, 6, false, (*CPU).dec},
		{0xce, "DEC", Absolute, 6, false, (*CPU).dec},
		{0xde, "DEC", AbsoluteX, 7, false, (*CPU).dec},
		{0xca, "DEX", Implied, 2, false, (*CPU).dex},
		{0x88, "DEY", Implied, 2, false, (*CPU).dey},

		{0x49, "EOR", Immediate, 2, false, (*CPU).eor},
		{0x45, "EOR", ZeroPage, 3, false, (*CPU).eor},
		{0x55, "EOR", ZeroPageX, 4, false, (*CPU).eor},
		{0x4d, "EOR", Absolute, 4, false, (*CPU).eor},
		{0x5d, "EOR", AbsoluteX, 4, true, (*CPU).eor},
		{0x59, "EOR", AbsoluteY, 4, true, (*CPU).eor},
		{0x41, "EOR", IndirectX, 6, false, (*CPU).eor},
		{0x51, "EOR", IndirectY, 5, true, (*CPU).eor},

		{0xe6, "INC", ZeroPage, 5, false, (*CPU).inc},
		{0xf6, "INC", ZeroPageX, 6, false, (*CPU).inc},
		{0xee, "INC", Absolute, 6, false, (*CPU).inc},
		{0xfe, "INC", AbsoluteX, 7, false, (*CPU).inc},
		{0xe8, "INX", Implied, 2, false, (*CPU).inx},
		{0xc8, "INY", Implied, 2, false, (*CPU).iny},

		{0x4c, "JMP", Absolute, 3, false, (*CPU).jmp},
		{0x6c, "JMP", Indirect, 5, false, (*CPU).jmp},
		{0x20, "JSR", Absolute, 6, false, (*CPU).jsr},

		{0xa9, "LDA", Immediate, 2, false, (*CPU).lda},
		{0xa5, "LDA", ZeroPage, 3, false, (*CPU).lda},
		{0xb5, "LDA", ZeroPageX, 4, false, (*CPU).lda},
		{0xad, "LDA", Absolute, 4, false, (*CPU).lda},
		{0xbd, "LDA", AbsoluteX, 4, true, (*CPU).lda},
		{0xb9, "LDA", AbsoluteY, 4, true, (*CPU).lda},
		{0xa1, "LDA", IndirectX, 6, false, (*CPU).lda},
		{0xb1, "LDA", IndirectY, 5, true, (*CPU).lda},

		{0xa2, "LDX", Immediate, 2, false, (*CPU).ldx},
		{0xa6, "LDX", ZeroPage, 3, false, (*CPU).ldx},
		{0xb6, "LDX", ZeroPageY, 4, false, (*CPU).ldx},
		{0xae, "LDX", Absolute, 4, false, (*CPU).ldx},
		{0xbe, "LDX", AbsoluteY, 4, true, (*CPU).ldx},

		{0xa0, "LDY", Immediate, 2, false, (*CPU).ldy},
		{0xa4, "LDY", ZeroPage, 3, false, (*CPU).ldy},
		{0xb4, "LDY", ZeroPageX, 4, false, (*CPU).ldy},
		{0xac, "LDY", Absolute, 4, false, (*CPU).ldy},
		{0xbc, "LDY", AbsoluteX, 4, true, (*CPU).ldy},

		{0x4a, "LSR", Accumulator, 2, false, (*CPU).lsr},
		{0x46, "LSR", ZeroPage, 5, false, (*CPU).lsr},
		{0x56, "LSR", ZeroPageX, 6, false, (*CPU).lsr},
		{0x4e, "LSR", Absolute, 6, false, (*CPU).lsr},
		{0x5e, "LSR", AbsoluteX, 7, false, (*CPU).lsr},

		{0xea, "NOP", Implied, 2, false, (*CPU).nop},

		{0x09, "ORA", Immediate, 2, false, (*CPU).ora},
		{0x05, "ORA", ZeroPage, 3, false, (*CPU).ora},
		{0x15, "ORA", ZeroPageX, 4, false, (*CPU).ora},
		{0x0d, "ORA", Absolute, 4, false, (*CPU).ora},
		{0x1d, "ORA", AbsoluteX, 4, true, (*CPU).ora},
		{0x19, "ORA", AbsoluteY, 4, true, (*CPU).ora},
		{0x01, "ORA", IndirectX, 6, false, (*CPU).ora},
		{0x11, "ORA", IndirectY, 5, true, (*CPU).ora},

		{0x48, "PHA", Implied, 3, false, (*CPU).pha},
		{0x08, "PHP", Implied, 3, false, (*CPU).php},
		{0x68, "PLA", Implied, 4, false, (*CPU).pla},
		{0x28, "PLP", Implied, 4, false, (*CPU).plp},

		{0x2a, "ROL", Accumulator, 2, false, (*CPU).rol},
		{0x26, "ROL", ZeroPage, 5, false, (*CPU).rol},
		{0x36, "ROL", ZeroPageX, 6, false, (*CPU).rol},
		{0x2e, "ROL", Absolute, 6, false, (*CPU).rol},
		{0x3e, "ROL", AbsoluteX, 7, false, (*CPU).rol},

		{0x6a, "ROR", Accumulator, 2, false, (*CPU).ror},
		{0x66, "ROR", ZeroPage, 5, false, (*CPU).ror},
		{0x76, "ROR", ZeroPageX, 6, false, (*CPU).ror},
		{0x6e, "ROR", Absolute, 6, false, (*CPU).ror},
		{0x7e, "ROR", AbsoluteX, 7, false, (*CPU).ror},

		{0x40, "RTI", Implied, 6, false, (*CPU).rti},
		{0x60, "RTS", Implied, 6, false, (*CPU).rts},

		{0xe9, "SBC", Immediate, 2, false, (*CPU).sbc},
		{0xe5, "SBC", ZeroPage, 3, false, (*CPU).sbc},
		{0xf5, "SBC", ZeroPageX, 4, false, (*CPU).sbc},
		{0xed, "SBC", Absolute, 4, false, (*CPU).sbc},
		{0xfd, "SBC", AbsoluteX, 4, true, (*CPU).sbc},
		{0xf9, "SBC", AbsoluteY, 4, true, (*CPU).sbc},
		{0xe1, "SBC", IndirectX, 6, false, (*CPU).sbc},
		{0xf1, "SBC", IndirectY, 5, true, (*CPU).sbc},

		{0x38, "SEC", Implied, 2, false, (*CPU).sec},
		{0xf8, "SED", Implied, 2, false, (*CPU).sed},
		{0x78, "SEI", Implied, 2, false, (*CPU).sei},

		{0x85, "STA", ZeroPage, 3, false, (*CPU).sta},
		{0x95, "STA", ZeroPageX, 4, false, (*CPU).sta},
		{0x8d, "STA", Absolute, 4, false, (*CPU).sta},
		{0x9d, "STA", AbsoluteX, 5, false, (*CPU).sta},
		{0x99, "STA", AbsoluteY, 5, false, (*CPU).sta},
		{0x81, "STA", IndirectX, 6, false, (*CPU).sta},
		{0x91, "STA", IndirectY, 6, false, (*CPU).sta},

		{0x86, "STX", ZeroPage, 3, false, (*CPU).stx},
		{0x96, "STX", ZeroPageY, 4, false, (*CPU).stx},
		{0x8e, "STX", Absolute, 4, false, (*CPU).stx},

		{0x84, "STY", ZeroPage, 3, false, (*CPU).sty},
		{0x94, "STY", ZeroPageX, 4, false, (*CPU).sty},
		{0x8c, "STY", Absolute, 4, false, (*CPU).sty},

		{0xaa, "TAX", Implied, 2, false, (*CPU).tax},
		{0xa8, "TAY", Implied, 2, false, (*CPU).tay},
		{0xba, "TSX", Implied, 2, false, (*CPU).tsx},
		{0x8a, "TXA", Implied, 2, false, (*CPU).txa},
		{0x9a, "TXS", Implied, 2, false, (*CPU).txs},
		{0x98, "TYA", Implied, 2, false, (*CPU).tya},
	}

	var tab [256]*Instruction
	for i := range defs {
		d := defs[i]
		if tab[d.Opcode] != nil {
			panic("cpu: opcode defined twice")
		}
		tab[d.Opcode] = &d
	}
	return tab
}
