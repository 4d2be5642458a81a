// Package typing maps frame indices to the portion of text visible on that
// frame. The video splits into three regimes: a leading hold with no text, a
// typing window where characters appear one by one, and a trailing hold with
// the full text shown.
package typing

import (
	"math"
	"unicode/utf8"
)

// VisibleChars returns how many characters (runes) of fullText are visible at
// the given frame. The count is non-decreasing in frame.
func VisibleChars(frame, totalFrames, bufferFrames int, fullText string) int {
	total := utf8.RuneCountInString(fullText)

	if frame < bufferFrames {
		return 0
	}
	if frame >= totalFrames-bufferFrames {
		return total
	}

	typingFrames := totalFrames - 2*bufferFrames
	if typingFrames <= 0 {
		// The holds consumed the whole video; nothing is left to animate, so
		// everything past the leading hold shows the full text.
		return total
	}

	progress := float64(frame-bufferFrames) / float64(typingFrames)
	return int(math.Floor(float64(total) * progress))
}

// VisibleLines returns the display lines of one frame: whole lines while the
// visible-character budget covers them, then at most one partial line. During
// the leading hold it returns nil, during the trailing hold all lines.
func VisibleLines(frame, totalFrames, bufferFrames int, lines []string, fullText string) []string {
	if frame >= totalFrames-bufferFrames {
		return lines
	}
	visible := VisibleChars(frame, totalFrames, bufferFrames, fullText)
	if visible == 0 {
		return nil
	}
	return clip(lines, visible)
}

// clip cuts the line set down to the first n characters. A partial line that
// would be empty is dropped rather than shown as a blank row.
func clip(lines []string, n int) []string {
	var display []string
	used := 0
	for _, line := range lines {
		runes := []rune(line)
		if used+len(runes) <= n {
			display = append(display, line)
			used += len(runes)
			continue
		}
		if rest := n - used; rest > 0 {
			display = append(display, string(runes[:rest]))
		}
		break
	}
	return display
}
