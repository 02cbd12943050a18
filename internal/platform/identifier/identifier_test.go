package identifier

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNew_VersionAndVariant(t *testing.T) {
	id := New()

	if id == uuid.Nil {
		t.Fatalf("expected non-nil uuid")
	}
	if id.Version() != 7 {
		t.Fatalf("expected version 7, got %d", id.Version())
	}
	if id.Variant() != uuid.RFC4122 {
		t.Fatalf("expected RFC4122 variant, got %v", id.Variant())
	}
}

func TestNew_Unique(t *testing.T) {
	seen := map[uuid.UUID]struct{}{}
	for i := 0; i < 1000; i++ {
		id := New()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate uuid generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestNew_TimeOrdered(t *testing.T) {
	// Ids generados con un ms de diferencia deben ordenar byte a byte
	// en el mismo sentido (los 48 bits altos son epoch millis).
	earlier := New()
	time.Sleep(2 * time.Millisecond)
	later := New()

	if bytes.Compare(earlier[:], later[:]) >= 0 {
		t.Fatalf("expected %s to sort before %s", earlier, later)
	}
}

func TestNew_CanonicalForm(t *testing.T) {
	s := New().String()
	if len(s) != 36 {
		t.Fatalf("expected 36-char canonical form, got %q", s)
	}
	if _, err := uuid.Parse(s); err != nil {
		t.Fatalf("round-trip parse failed: %v", err)
	}
}
