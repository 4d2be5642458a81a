package typing

import (
	"reflect"
	"testing"
)

func TestSingleLineProgress(t *testing.T) {
	lines := []string{"AB CD"}
	full := "AB CD"

	tests := []struct {
		frame int
		want  []string
	}{
		{0, nil},             // progress 0, nothing visible
		{4, []string{"AB"}},  // progress 0.4 -> floor(5*0.4) = 2 chars
		{9, []string{"AB C"}}, // progress 0.9 -> 4 chars; full text only on hold frames
	}
	for _, tt := range tests {
		got := VisibleLines(tt.frame, 10, 0, lines, full)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("frame %d: got %v, want %v", tt.frame, got, tt.want)
		}
	}
}

func TestBufferRegimes(t *testing.T) {
	lines := []string{"AB CD"}
	full := "AB CD"
	total, buffer := 10, 2

	for _, frame := range []int{0, 1} {
		if got := VisibleLines(frame, total, buffer, lines, full); got != nil {
			t.Errorf("leading hold frame %d: got %v, want nothing", frame, got)
		}
	}
	for _, frame := range []int{8, 9} {
		got := VisibleLines(frame, total, buffer, lines, full)
		if !reflect.DeepEqual(got, lines) {
			t.Errorf("trailing hold frame %d: got %v, want all lines", frame, got)
		}
	}

	// typingFrames = 6; frame 5 -> progress 0.5 -> 2 chars.
	got := VisibleLines(5, total, buffer, lines, full)
	if !reflect.DeepEqual(got, []string{"AB"}) {
		t.Errorf("frame 5: got %v, want [AB]", got)
	}
}

func TestVisibleCharsMonotonic(t *testing.T) {
	full := "the quick brown fox jumps over the lazy dog"
	total, buffer := 120, 15

	prev := -1
	for frame := 0; frame < total; frame++ {
		n := VisibleChars(frame, total, buffer, full)
		if n < prev {
			t.Fatalf("frame %d: visible chars dropped from %d to %d", frame, prev, n)
		}
		prev = n
	}
	if prev != len(full) {
		t.Errorf("final frame shows %d chars, want %d", prev, len(full))
	}
}

func TestMultiLineClipping(t *testing.T) {
	lines := []string{"AB CD", "EF"}
	_ = "AB CD EF" // full text: 8 chars; the line break swallows one space

	tests := []struct {
		visible int
		want    []string
	}{
		{0, nil},
		{2, []string{"AB"}},
		{5, []string{"AB CD"}}, // budget ends exactly at the break: no blank row
		{6, []string{"AB CD", "E"}},
	}
	for _, tt := range tests {
		got := clip(lines, tt.visible)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("clip to %d: got %v, want %v", tt.visible, got, tt.want)
		}
	}
}

func TestBufferConsumesEverything(t *testing.T) {
	lines := []string{"HI"}
	full := "HI"

	// buffer*2 == total: no typing window remains. Everything past the
	// leading hold shows the full text instead of dividing by zero.
	if got := VisibleLines(4, 10, 5, lines, full); got != nil {
		t.Errorf("leading hold frame: got %v, want nothing", got)
	}
	got := VisibleLines(5, 10, 5, lines, full)
	if !reflect.DeepEqual(got, lines) {
		t.Errorf("post-hold frame: got %v, want full text", got)
	}
}

func TestLastTypingFrameMatchesHold(t *testing.T) {
	lines := []string{"some words", "wrap here"}
	full := "some words wrap here"
	total, buffer := 60, 12

	last := VisibleLines(total-1, total, buffer, lines, full)
	firstHold := VisibleLines(total-buffer, total, buffer, lines, full)
	if !reflect.DeepEqual(last, firstHold) {
		t.Errorf("hold frames disagree: %v vs %v", last, firstHold)
	}
	if !reflect.DeepEqual(last, lines) {
		t.Errorf("hold frame shows %v, want every line", last)
	}
}

func TestUnicodeClipKeepsRunesWhole(t *testing.T) {
	lines := []string{"héllo wörld"}
	_ = "héllo wörld" // full text

	for n := 0; n <= 11; n++ {
		for _, line := range clip(lines, n) {
			for _, r := range line {
				if r == '�' {
					t.Fatalf("clip to %d produced a broken rune in %q", n, line)
				}
			}
		}
	}
}
