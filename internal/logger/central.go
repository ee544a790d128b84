package logger

import (
	"fmt"
	"io"
)

var central = newLogger(maxCentral)

// Log adds an entry to the central logger.
func Log(tag, detail string) {
	central.log(tag, detail)
}

// Logf adds a formatted entry to the central logger.
func Logf(tag, detail string, args ...any) {
	central.log(tag, fmt.Sprintf(detail, args...))
}

// Clear all entries from the central logger.
func Clear() {
	central.clear()
}

// Write the contents of the central logger to output. Returns false if
// there was nothing to write.
func Write(output io.Writer) bool {
	return central.write(output)
}

// Tail writes the last number of entries to output.
func Tail(output io.Writer, number int) {
	central.tail(output, number)
}

// SetEcho prints new entries to output as they are logged. A nil writer
// stops the echo.
func SetEcho(output io.Writer) {
	central.setEcho(output)
}

// Copy returns a copy of the current entries.
func Copy() []Entry {
	return central.copy()
}
