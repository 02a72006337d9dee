package tui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestWrapTextBreaksOnSpaces(t *testing.T) {
	got := wrapText("one two three four", 9)
	want := []string{"one two", "three", "four"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapTextHardBreaksLongWords(t *testing.T) {
	got := wrapText("abcdefghij", 4)
	want := []string{"abcd", "efgh", "ij"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapTextRespectsWideRunes(t *testing.T) {
	for _, line := range wrapText("日本語 のテキスト を 折り返す", 6) {
		if w := runewidth.StringWidth(line); w > 6 {
			t.Fatalf("line %q is %d cells wide", line, w)
		}
	}
}

func TestWrapTextEmpty(t *testing.T) {
	if got := wrapText("   ", 10); len(got) != 0 {
		t.Fatalf("expected no lines, got %q", got)
	}
}

func TestWrapTextNoWidth(t *testing.T) {
	got := wrapText("a b  c", 0)
	if len(got) != 1 || got[0] != "a b  c" {
		t.Fatalf("expected a single unwrapped line, got %q", got)
	}
}
