package codes

import (
	"strings"
	"testing"
)

func TestGeneratorReference(t *testing.T) {
	g := NewGenerator(Config{})

	seen := make(map[string]bool)
	for range 50 {
		ref, err := g.Reference()
		if err != nil {
			t.Fatalf("Reference() error = %v", err)
		}
		if len(ref) != DefaultReferenceLength {
			t.Fatalf("Reference() length = %d, want %d", len(ref), DefaultReferenceLength)
		}
		for _, r := range ref {
			if !strings.ContainsRune(charsetReference, r) {
				t.Fatalf("Reference() = %q contains %q outside charset", ref, r)
			}
		}
		seen[ref] = true
	}
	if len(seen) < 45 {
		t.Errorf("Reference() produced only %d distinct codes out of 50", len(seen))
	}
}

func TestGenerateCodeErrors(t *testing.T) {
	if _, err := GenerateCode(0, "AB"); err != ErrInvalidLength {
		t.Errorf("GenerateCode(0) error = %v, want ErrInvalidLength", err)
	}
	if _, err := GenerateCode(4, ""); err != ErrEmptyCharset {
		t.Errorf("GenerateCode(empty charset) error = %v, want ErrEmptyCharset", err)
	}
}
