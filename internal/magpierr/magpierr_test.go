package magpierr

import (
	"errors"
	"testing"
)

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(DataFile, "loading thing", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("Wrap should preserve errors.Is compatibility with the cause")
	}
	if err.Kind != DataFile {
		t.Fatalf("Kind = %v, want DataFile", err.Kind)
	}
}

func TestStackBoundedDepth(t *testing.T) {
	s := NewStack(3)
	for i := 0; i < 5; i++ {
		s.Push(New(Internal, "err"))
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 after exceeding depth", s.Len())
	}
}

func TestStackDrainEmpties(t *testing.T) {
	s := NewStack(8)
	s.Push(New(Configuration, "first"))
	s.Push(New(Configuration, "second"))
	msgs := s.Drain()
	if len(msgs) != 2 {
		t.Fatalf("Drain() returned %d messages, want 2", len(msgs))
	}
	if s.Len() != 0 {
		t.Fatalf("Stack should be empty after Drain")
	}
}

func TestKindString(t *testing.T) {
	if Configuration.String() != "configuration" {
		t.Fatalf("Configuration.String() = %q", Configuration.String())
	}
}
