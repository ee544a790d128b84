package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_RepeatCollapse(t *testing.T) {
	assert := assert.New(t)

	l := newLogger(10)
	l.log("cpu", "BNE")
	l.log("cpu", "BNE")
	l.log("cpu", "BNE")
	l.log("nes", "reset")

	s := &strings.Builder{}
	assert.True(l.write(s))
	assert.Equal("cpu: BNE (repeat x3)\nnes: reset\n", s.String())
}

func TestLogger_Bounded(t *testing.T) {
	assert := assert.New(t)

	l := newLogger(3)
	for _, d := range []string{"a", "b", "c", "d", "e"} {
		l.log("t", d)
	}

	entries := l.copy()
	assert.Len(entries, 3)
	assert.Equal("c", entries[0].Detail)
	assert.Equal("e", entries[2].Detail)
}

func TestLogger_TailAndEcho(t *testing.T) {
	assert := assert.New(t)

	l := newLogger(10)
	echo := &strings.Builder{}
	l.setEcho(echo)
	l.log("a", "one\n")
	l.log("b", "two")
	l.setEcho(nil)
	l.log("c", "three")

	assert.Equal("a: one\nb: two\n", echo.String())

	s := &strings.Builder{}
	l.tail(s, 2)
	assert.Equal("b: two\nc: three\n", s.String())

	s.Reset()
	l.tail(s, 100)
	assert.Equal(3, strings.Count(s.String(), "\n"))
}

func TestLogger_Clear(t *testing.T) {
	assert := assert.New(t)

	l := newLogger(10)
	l.log("a", "one")
	l.clear()
	assert.False(l.write(&strings.Builder{}))
}
