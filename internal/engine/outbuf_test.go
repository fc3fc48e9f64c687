package engine

import "testing"

func TestOutputBufferPanicsOnWriteAfterCommit(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic writing to a committed buffer")
		}
	}()
	buf := NewOutputBuffer("test")
	buf.Commit()
	buf.Write([]byte("too late"))
}

func TestOutputBufferPanicsOnReadBeforeCommit(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic reading an uncommitted buffer")
		}
	}()
	buf := NewOutputBuffer("test")
	buf.Bytes()
}

func TestOutputBufferRoundTrip(t *testing.T) {
	buf := NewOutputBuffer("test")
	if _, err := buf.Write([]byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	buf.Commit()
	if got := string(buf.Bytes()); got != "hello" {
		t.Errorf("Bytes() = %q, want %q", got, "hello")
	}
}
