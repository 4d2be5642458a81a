package config

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ValidationError reports a settings field that failed validation. All
// validation failures are fatal and surface before any rendering begins.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the whole settings structure and returns the first
// violation found.
func (s *Settings) Validate() error {
	if s.Text == "" {
		return &ValidationError{Field: "text", Reason: "must not be empty"}
	}

	width, height, err := s.Size()
	if err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return &ValidationError{Field: "resolution", Reason: "dimensions must be positive"}
	}
	// yuv420p output requires even dimensions.
	if width%2 != 0 || height%2 != 0 {
		return &ValidationError{Field: "resolution", Reason: "dimensions must be even"}
	}

	if s.VideoLength <= 0 {
		return &ValidationError{Field: "videoLength", Reason: "must be positive"}
	}
	if s.FPS <= 0 {
		return &ValidationError{Field: "fps", Reason: "must be positive"}
	}
	if s.BufferTime < 0 {
		return &ValidationError{Field: "bufferTime", Reason: "must not be negative"}
	}
	if s.BufferTime*2 >= s.VideoLength {
		return &ValidationError{Field: "bufferTime", Reason: "must be less than half the video length"}
	}

	for _, m := range []struct {
		name  string
		value float64
	}{
		{"margins.top", s.Margins.Top},
		{"margins.bottom", s.Margins.Bottom},
		{"margins.left", s.Margins.Left},
		{"margins.right", s.Margins.Right},
	} {
		if m.value < 0 || m.value >= 1 {
			return &ValidationError{Field: m.name, Reason: "must be in [0, 1)"}
		}
	}
	if s.Margins.Left+s.Margins.Right >= 1 {
		return &ValidationError{Field: "margins", Reason: "left + right must be less than 1"}
	}
	if s.Margins.Top+s.Margins.Bottom >= 1 {
		return &ValidationError{Field: "margins", Reason: "top + bottom must be less than 1"}
	}

	if s.HighlightOpacity < 0 || s.HighlightOpacity > 1 {
		return &ValidationError{Field: "highlightOpacity", Reason: "must be in [0, 1]"}
	}

	if _, err := colorful.Hex(s.TextColor); err != nil {
		return &ValidationError{Field: "textColor", Reason: fmt.Sprintf("%q is not a hex color", s.TextColor)}
	}
	if _, err := colorful.Hex(s.BackgroundColor); err != nil {
		return &ValidationError{Field: "backgroundColor", Reason: fmt.Sprintf("%q is not a hex color", s.BackgroundColor)}
	}

	if s.MinFontSize <= 0 {
		return &ValidationError{Field: "minFontSize", Reason: "must be positive"}
	}
	if s.MaxFontSize < s.MinFontSize {
		return &ValidationError{Field: "maxFontSize", Reason: "must not be below minFontSize"}
	}

	if s.OutputFileName == "" {
		return &ValidationError{Field: "outputFileName", Reason: "must not be empty"}
	}
	if s.Workers < 0 {
		return &ValidationError{Field: "workers", Reason: "must not be negative"}
	}

	return nil
}
