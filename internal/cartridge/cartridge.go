// Package cartridge loads iNES images and attaches their program memory to
// the CPU bus. Only NROM (mapper 0) boards are supported; there is no bank
// switching.
package cartridge

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"nescore/internal/logger"
)

const (
	prgBankSize = 0x4000
	chrBankSize = 0x2000
	trainerSize = 512
	prgRAMSize  = 0x2000

	magic = "NES\x1a"
)

// MirrorMode is the nametable arrangement wired on the board. It is carried
// for the picture unit and has no effect on the CPU bus.
type MirrorMode uint8

// List of mirror modes.
const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorFourScreen
)

func (m MirrorMode) String() string {
	switch m {
	case MirrorVertical:
		return "vertical"
	case MirrorFourScreen:
		return "four screen"
	}
	return "horizontal"
}

// header is the 16 byte iNES header.
type header struct {
	Magic      [4]uint8
	PRGROMSize uint8 // 16KB units
	CHRROMSize uint8 // 8KB units
	Flags6     uint8
	Flags7     uint8
	PRGRAMSize uint8
	TVSystem1  uint8
	TVSystem2  uint8
	Padding    [5]uint8
}

// Cartridge is a loaded image.
type Cartridge struct {
	prgROM []uint8
	chrROM []uint8
	prgRAM [prgRAMSize]uint8

	mapperID   uint8
	mirror     MirrorMode
	hasBattery bool
	hasCHRRAM  bool

	nrom *NROM
}

// LoadFromFile loads a cartridge from an iNES file.
func LoadFromFile(filename string) (*Cartridge, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cart, err := LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	logger.Logf("cartridge", "%s: %s", filename, cart)
	return cart, nil
}

// LoadFromReader loads a cartridge from an iNES stream.
func LoadFromReader(r io.Reader) (*Cartridge, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, truncated(err)
	}

	if string(h.Magic[:]) != magic {
		return nil, ErrInvalidHeader
	}
	if h.PRGROMSize == 0 {
		return nil, ErrEmptyPRG
	}

	cart := &Cartridge{
		mapperID:   h.Flags7&0xf0 | h.Flags6>>4,
		hasBattery: h.Flags6&0x02 != 0,
	}
	if cart.mapperID != 0 {
		return nil, ErrUnsupportedMapper(cart.mapperID)
	}
	if h.PRGROMSize > 2 {
		return nil, ErrPRGSize
	}

	switch {
	case h.Flags6&0x08 != 0:
		cart.mirror = MirrorFourScreen
	case h.Flags6&0x01 != 0:
		cart.mirror = MirrorVertical
	default:
		cart.mirror = MirrorHorizontal
	}

	if h.Flags6&0x04 != 0 {
		if _, err := io.CopyN(io.Discard, r, trainerSize); err != nil {
			return nil, truncated(err)
		}
	}

	cart.prgROM = make([]uint8, int(h.PRGROMSize)*prgBankSize)
	if _, err := io.ReadFull(r, cart.prgROM); err != nil {
		return nil, truncated(err)
	}

	if h.CHRROMSize > 0 {
		cart.chrROM = make([]uint8, int(h.CHRROMSize)*chrBankSize)
		if _, err := io.ReadFull(r, cart.chrROM); err != nil {
			return nil, truncated(err)
		}
	} else {
		cart.chrROM = make([]uint8, chrBankSize)
		cart.hasCHRRAM = true
	}

	cart.nrom = newNROM(cart)
	return cart, nil
}

// FromPRG builds an NROM cartridge around raw program bytes. The program
// must be 16KB or 32KB long; shorter programs are padded to 16KB with zeros.
// CHR is 8KB of RAM.
func FromPRG(prg []uint8) (*Cartridge, error) {
	size := prgBankSize
	switch {
	case len(prg) > 2*prgBankSize:
		return nil, ErrPRGSize
	case len(prg) > prgBankSize:
		size = 2 * prgBankSize
	}

	cart := &Cartridge{
		prgROM:    make([]uint8, size),
		chrROM:    make([]uint8, chrBankSize),
		hasCHRRAM: true,
	}
	copy(cart.prgROM, prg)
	cart.nrom = newNROM(cart)
	return cart, nil
}

// Bytes encodes the cartridge as an iNES image. PRG-RAM contents are not
// part of the image.
func (c *Cartridge) Bytes() []uint8 {
	h := header{
		PRGROMSize: uint8(len(c.prgROM) / prgBankSize),
		Flags6:     c.mapperID << 4,
		Flags7:     c.mapperID & 0xf0,
	}
	copy(h.Magic[:], magic)
	if !c.hasCHRRAM {
		h.CHRROMSize = uint8(len(c.chrROM) / chrBankSize)
	}
	switch c.mirror {
	case MirrorVertical:
		h.Flags6 |= 0x01
	case MirrorFourScreen:
		h.Flags6 |= 0x08
	}
	if c.hasBattery {
		h.Flags6 |= 0x02
	}

	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, &h)
	buf.Write(c.prgROM)
	if !c.hasCHRRAM {
		buf.Write(c.chrROM)
	}
	return buf.Bytes()
}

// Device returns the bus device for the cartridge's CPU address space.
func (c *Cartridge) Device() *NROM {
	return c.nrom
}

// Mirror returns the nametable arrangement.
func (c *Cartridge) Mirror() MirrorMode {
	return c.mirror
}

// HasBattery returns true if PRG-RAM is battery backed.
func (c *Cartridge) HasBattery() bool {
	return c.hasBattery
}

// ReadCHR reads the pattern memory seen by the picture unit.
func (c *Cartridge) ReadCHR(addr uint16) uint8 {
	return c.chrROM[int(addr)%len(c.chrROM)]
}

// WriteCHR writes pattern memory. Writes are ignored unless the board has
// CHR RAM.
func (c *Cartridge) WriteCHR(addr uint16, value uint8) {
	if c.hasCHRRAM {
		c.chrROM[int(addr)%len(c.chrROM)] = value
	}
}

func (c *Cartridge) String() string {
	chr := fmt.Sprintf("CHR-ROM %dKB", len(c.chrROM)/1024)
	if c.hasCHRRAM {
		chr = "CHR-RAM 8KB"
	}
	return fmt.Sprintf("mapper %d, PRG-ROM %dKB, %s, %s mirroring", c.mapperID, len(c.prgROM)/1024, chr, c.mirror)
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}

// PRGRAM returns the cartridge RAM mapped at 0x6000. The slice aliases the
// cartridge memory.
func (c *Cartridge) PRGRAM() []uint8 {
	return c.prgRAM[:]
}
