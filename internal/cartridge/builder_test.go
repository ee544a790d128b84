package cartridge

import "bytes"

// imageBuilder assembles iNES images in memory.
type imageBuilder struct {
	prgBanks uint8
	chrBanks uint8
	flags6   uint8
	flags7   uint8
	trainer  bool
	prg      map[int]uint8
	truncate int
}

func newImage() *imageBuilder {
	return &imageBuilder{prgBanks: 1, chrBanks: 1, prg: map[int]uint8{}}
}

func (b *imageBuilder) withPRGBanks(n uint8) *imageBuilder { b.prgBanks = n; return b }
func (b *imageBuilder) withCHRBanks(n uint8) *imageBuilder { b.chrBanks = n; return b }

func (b *imageBuilder) withMapper(id uint8) *imageBuilder {
	b.flags6 = b.flags6&0x0f | id<<4
	b.flags7 = b.flags7&0x0f | id&0xf0
	return b
}

func (b *imageBuilder) withFlags6(bits uint8) *imageBuilder { b.flags6 |= bits; return b }

func (b *imageBuilder) withTrainer() *imageBuilder {
	b.trainer = true
	b.flags6 |= 0x04
	return b
}

func (b *imageBuilder) withPRGByte(offset int, v uint8) *imageBuilder {
	b.prg[offset] = v
	return b
}

// truncatedBy drops n bytes from the end of the image.
func (b *imageBuilder) truncatedBy(n int) *imageBuilder { b.truncate = n; return b }

func (b *imageBuilder) build() []uint8 {
	buf := &bytes.Buffer{}
	buf.WriteString(magic)
	buf.Write([]uint8{b.prgBanks, b.chrBanks, b.flags6, b.flags7, 0, 0, 0, 0, 0, 0, 0, 0})
	if b.trainer {
		buf.Write(bytes.Repeat([]uint8{0xee}, trainerSize))
	}
	prg := make([]uint8, int(b.prgBanks)*prgBankSize)
	for off, v := range b.prg {
		prg[off] = v
	}
	buf.Write(prg)
	buf.Write(bytes.Repeat([]uint8{0x55}, int(b.chrBanks)*chrBankSize))

	img := buf.Bytes()
	return img[:len(img)-b.truncate]
}

func (b *imageBuilder) reader() *bytes.Reader {
	return bytes.NewReader(b.build())
}
