package catalog

import (
	"testing"
	"unicode/utf8"
)

func TestTruncateShortTextUnchanged(t *testing.T) {
	text, truncated := Truncate("short", 10, true)

	if truncated {
		t.Error("Expected no truncation for text within budget")
	}
	if text != "short" {
		t.Errorf("Expected text unchanged, got '%s'", text)
	}
}

func TestTruncateCutsOnCodePoints(t *testing.T) {
	text, truncated := Truncate("Привет мир", 5, true)

	if !truncated {
		t.Error("Expected truncation")
	}
	if text != "Приве" {
		t.Errorf("Expected 'Приве', got '%s'", text)
	}
	if !utf8.ValidString(text) {
		t.Error("Expected cut on a code-point boundary")
	}
}

func TestTruncateBacksOffToWordBoundary(t *testing.T) {
	// The space after "world" is late enough in the budget to back off to.
	text, truncated := Truncate("hello world foobar", 13, true)

	if !truncated {
		t.Error("Expected truncation")
	}
	if text != "hello world" {
		t.Errorf("Expected backoff to 'hello world', got '%s'", text)
	}
}

func TestTruncateKeepsHardCutoffForEarlySpace(t *testing.T) {
	// The only space is well before 60% of the budget; the hard cut stays.
	text, _ := Truncate("hi aaaaaaaaaaaaaaaaaa", 10, true)

	if text != "hi aaaaaaa" {
		t.Errorf("Expected hard cutoff 'hi aaaaaaa', got '%s'", text)
	}
}

func TestTruncateWithoutWordBoundaryPreservation(t *testing.T) {
	text, truncated := Truncate("hello world foobar", 13, false)

	if !truncated {
		t.Error("Expected truncation")
	}
	if text != "hello world f" {
		t.Errorf("Expected hard cut 'hello world f', got '%s'", text)
	}
}

func TestTruncateZeroBudget(t *testing.T) {
	text, truncated := Truncate("anything", 0, true)

	if text != "" {
		t.Errorf("Expected empty result, got '%s'", text)
	}
	if !truncated {
		t.Error("Expected truncation to be reported")
	}
}
