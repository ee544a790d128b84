//go:build !statsview

package statsview

import "io"

// Address of the stats server.
const Address = ""

// Launch does nothing without the statsview build tag.
func Launch(output io.Writer) {
}

// Available returns true if the stats server can be launched.
func Available() bool {
	return false
}
