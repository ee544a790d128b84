// Package script drives a machine from starlark programs. Scripts can
// inspect and patch memory, step the processor and run whole frames:
//
//	write(0x0200, [0xa9, 0x01, 0x8d, 0x00, 0x03])
//	step()
//	print(regs()["a"], peek(0x0300))
package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"nescore/internal/input"
	"nescore/internal/logger"
	"nescore/internal/nes"
)

// RunFile executes the starlark program in filename.
func RunFile(m *nes.Machine, filename string, out io.Writer) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return Run(m, filename, src, out)
}

// Run executes a starlark program against m. Output of print() goes to
// out. A decode failure raised while the script runs the machine stops the
// script and is returned wrapped in the evaluation error.
func Run(m *nes.Machine, name string, src []uint8, out io.Writer) error {
	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(out, msg)
		},
	}
	opts := syntax.FileOptions{}

	logger.Logf("script", "running %s", name)
	_, err := starlark.ExecFileOptions(&opts, thread, name, src, builtins(m))
	if err != nil {
		if fault := m.CPU().Fault(); fault != nil && !errors.Is(err, fault) {
			err = fmt.Errorf("%w: %w", err, fault)
		}
		logger.Logf("script", "%s: %v", name, err)
		return err
	}
	return nil
}

func builtins(m *nes.Machine) starlark.StringDict {
	b := &machine{m: m}
	return starlark.StringDict{
		"CYCLES_PER_FRAME": starlark.MakeInt(nes.CyclesPerFrame),
		"BUTTON_A":         starlark.MakeInt(int(input.ButtonA)),
		"BUTTON_B":         starlark.MakeInt(int(input.ButtonB)),
		"BUTTON_SELECT":    starlark.MakeInt(int(input.ButtonSelect)),
		"BUTTON_START":     starlark.MakeInt(int(input.ButtonStart)),
		"BUTTON_UP":        starlark.MakeInt(int(input.ButtonUp)),
		"BUTTON_DOWN":      starlark.MakeInt(int(input.ButtonDown)),
		"BUTTON_LEFT":      starlark.MakeInt(int(input.ButtonLeft)),
		"BUTTON_RIGHT":     starlark.MakeInt(int(input.ButtonRight)),

		"peek":  starlark.NewBuiltin("peek", b.peek),
		"poke":  starlark.NewBuiltin("poke", b.poke),
		"write": starlark.NewBuiltin("write", b.write),
		"reset": starlark.NewBuiltin("reset", b.reset),
		"tick":  starlark.NewBuiltin("tick", b.tick),
		"step":  starlark.NewBuiltin("step", b.step),
		"frame": starlark.NewBuiltin("frame", b.frame),
		"regs":  starlark.NewBuiltin("regs", b.regs),

		"buttons": starlark.NewBuiltin("buttons", b.buttons),
	}
}

type machine struct {
	m *nes.Machine
}

func address(v int) (uint16, error) {
	if v < 0 || v > 0xffff {
		return 0, fmt.Errorf("%w: %d", ErrAddress, v)
	}
	return uint16(v), nil
}

func byteValue(v int) (uint8, error) {
	if v < 0 || v > 0xff {
		return 0, fmt.Errorf("%w: %d", ErrValue, v)
	}
	return uint8(v), nil
}

// peek(addr) returns the byte at addr.
func (b *machine) peek(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v int
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &v); err != nil {
		return nil, err
	}
	addr, err := address(v)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(int(b.m.Read(addr))), nil
}

// poke(addr, value) writes a byte.
func (b *machine) poke(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var a, v int
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &a, &v); err != nil {
		return nil, err
	}
	addr, err := address(a)
	if err != nil {
		return nil, err
	}
	value, err := byteValue(v)
	if err != nil {
		return nil, err
	}
	b.m.Write(addr, value)
	return starlark.None, nil
}

// write(addr, values) writes a sequence of bytes starting at addr.
func (b *machine) write(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var a int
	var values starlark.Iterable
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &a, &values); err != nil {
		return nil, err
	}
	addr, err := address(a)
	if err != nil {
		return nil, err
	}

	iter := values.Iterate()
	defer iter.Done()

	var data []uint8
	var x starlark.Value
	for iter.Next(&x) {
		var v int
		if err := starlark.AsInt(x, &v); err != nil {
			return nil, fmt.Errorf("%s: %w", fn.Name(), err)
		}
		value, err := byteValue(v)
		if err != nil {
			return nil, err
		}
		data = append(data, value)
	}
	if int(addr)+len(data) > 0x10000 {
		return nil, fmt.Errorf("%w: %d bytes at $%04X", ErrAddress, len(data), addr)
	}

	for i, v := range data {
		b.m.Write(addr+uint16(i), v)
	}
	return starlark.MakeInt(len(data)), nil
}

// reset() resets the machine.
func (b *machine) reset(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	b.m.Reset()
	return starlark.None, nil
}

// tick(n=1) advances the CPU by n cycles and returns the last mnemonic.
func (b *machine) tick(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	n := 1
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "n?", &n); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, ErrCount
	}

	mnemonic := b.m.CPU().Mnemonic()
	for range n {
		var err error
		if mnemonic, err = b.m.TickCPU(); err != nil {
			return nil, err
		}
	}
	return starlark.String(mnemonic), nil
}

// step() runs the CPU up to and including the next instruction and returns
// its mnemonic.
func (b *machine) step(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}

	for b.m.CPU().Cycles() > 0 {
		if _, err := b.m.TickCPU(); err != nil {
			return nil, err
		}
	}
	mnemonic, err := b.m.TickCPU()
	if err != nil {
		return nil, err
	}
	return starlark.String(mnemonic), nil
}

// frame(n=1) runs n frames and returns the frame count.
func (b *machine) frame(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	n := 1
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "n?", &n); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, ErrCount
	}

	for range n {
		if err := b.m.TickFrame(); err != nil {
			return nil, err
		}
	}
	return starlark.MakeUint64(b.m.Frames()), nil
}

// regs() returns the register file as a dict.
func (b *machine) regs(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}

	r := b.m.CPU().Registers()
	d := starlark.NewDict(6)
	for _, kv := range []struct {
		k string
		v int
	}{
		{"pc", int(r.PC)},
		{"sp", int(r.SP)},
		{"a", int(r.A)},
		{"x", int(r.X)},
		{"y", int(r.Y)},
		{"p", int(r.P)},
	} {
		if err := d.SetKey(starlark.String(kv.k), starlark.MakeInt(kv.v)); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// buttons(port, mask) holds the buttons in mask on controller port 0 or 1
// and returns the previous mask.
func (b *machine) buttons(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var port, mask int
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &port, &mask); err != nil {
		return nil, err
	}
	if port != 0 && port != 1 {
		return nil, fmt.Errorf("%w: %d", ErrPort, port)
	}
	value, err := byteValue(mask)
	if err != nil {
		return nil, err
	}
	c := b.m.Input().Controller(port)
	prev := c.Buttons()
	c.SetButtons(input.Button(value))
	return starlark.MakeInt(int(prev)), nil
}
