package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("opcode $02 undefined", From("opcode $%02X undefined", 2))
	assert.Equal("plain", From("plain"))
}
