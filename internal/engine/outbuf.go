package engine

import (
	"bytes"
	"fmt"
	"os"
)

// OutputBuffer stages rewritten program text before it is committed to a
// file or stdout. It exists to keep a half-written pass result from ever
// reaching disk: writes are only accepted before Commit, and Bytes only
// after, so a caller cannot accidentally flush a buffer that a later step
// in the same request still meant to append to.
type OutputBuffer struct {
	buf       bytes.Buffer
	committed bool
	name      string
	Verbose   bool
}

// NewOutputBuffer creates a buffer identified by name for diagnostics.
func NewOutputBuffer(name string) *OutputBuffer {
	return &OutputBuffer{name: name}
}

// Write appends to the buffer. It panics if called after Commit.
func (b *OutputBuffer) Write(p []byte) (int, error) {
	if b.committed {
		panic(fmt.Sprintf("engine: write to committed output buffer %q", b.name))
	}
	return b.buf.Write(p)
}

// Commit marks the buffer as final. No further writes are accepted.
func (b *OutputBuffer) Commit() {
	if b.Verbose {
		fmt.Fprintf(os.Stderr, "%s: committed %d bytes\n", b.name, b.buf.Len())
	}
	b.committed = true
}

// Bytes returns the committed contents.
func (b *OutputBuffer) Bytes() []byte {
	if !b.committed {
		panic(fmt.Sprintf("engine: read from uncommitted output buffer %q", b.name))
	}
	return b.buf.Bytes()
}

// WriteFile commits the buffer and writes it to path with perm.
func (b *OutputBuffer) WriteFile(path string, perm os.FileMode) error {
	b.Commit()
	return os.WriteFile(path, b.Bytes(), perm)
}
