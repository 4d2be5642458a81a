package config

import (
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func valid() Settings {
	s := Default()
	s.Text = "Hello"
	s.Resolution = "100x100"
	return s
}

func TestValidateAcceptsDefaults(t *testing.T) {
	s := valid()
	if err := s.Validate(); err != nil {
		t.Fatalf("valid settings rejected: %v", err)
	}
}

func TestValidateTable(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		field  string
	}{
		{"empty text", func(s *Settings) { s.Text = "" }, "text"},
		{"bad resolution", func(s *Settings) { s.Resolution = "wide" }, "resolution"},
		{"odd resolution", func(s *Settings) { s.Resolution = "101x100" }, "resolution"},
		{"negative resolution", func(s *Settings) { s.Resolution = "-100x100" }, "resolution"},
		{"zero length", func(s *Settings) { s.VideoLength = 0 }, "videoLength"},
		{"zero fps", func(s *Settings) { s.FPS = 0 }, "fps"},
		{"negative buffer", func(s *Settings) { s.BufferTime = -1 }, "bufferTime"},
		{"buffer eats video", func(s *Settings) { s.BufferTime = 5 }, "bufferTime"},
		{"margin out of range", func(s *Settings) { s.Margins.Top = 1 }, "margins.top"},
		{"margins sum horizontal", func(s *Settings) { s.Margins.Left = 0.6; s.Margins.Right = 0.5 }, "margins"},
		{"margins sum vertical", func(s *Settings) { s.Margins.Top = 0.6; s.Margins.Bottom = 0.5 }, "margins"},
		{"opacity above one", func(s *Settings) { s.HighlightOpacity = 1.5 }, "highlightOpacity"},
		{"bad text color", func(s *Settings) { s.TextColor = "red" }, "textColor"},
		{"bad background color", func(s *Settings) { s.BackgroundColor = "#12" }, "backgroundColor"},
		{"zero min font", func(s *Settings) { s.MinFontSize = 0 }, "minFontSize"},
		{"inverted font range", func(s *Settings) { s.MaxFontSize = 10 }, "maxFontSize"},
		{"empty output", func(s *Settings) { s.OutputFileName = "" }, "outputFileName"},
		{"negative workers", func(s *Settings) { s.Workers = -1 }, "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)

			err := s.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestSize(t *testing.T) {
	s := valid()
	s.Resolution = "1280x720"
	w, h, err := s.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if w != 1280 || h != 720 {
		t.Errorf("Size = %dx%d, want 1280x720", w, h)
	}
}

func TestTextBoxAppliesMargins(t *testing.T) {
	s := valid()
	s.Resolution = "100x100"
	s.Margins = Margins{Top: 0.1, Bottom: 0.1, Left: 0.1, Right: 0.1}

	maxW, maxH := s.TextBox()
	if math.Abs(maxW-80) > 1e-9 || math.Abs(maxH-80) > 1e-9 {
		t.Errorf("TextBox = %vx%v, want 80x80", maxW, maxH)
	}
}

func TestFrameCounts(t *testing.T) {
	s := valid()
	s.VideoLength = 10
	s.BufferTime = 1
	s.FPS = 30

	if got := s.TotalFrames(); got != 300 {
		t.Errorf("TotalFrames = %d, want 300", got)
	}
	if got := s.BufferFrames(); got != 30 {
		t.Errorf("BufferFrames = %d, want 30", got)
	}
}

func TestColorParsing(t *testing.T) {
	s := valid()
	s.TextColor = "#ff8000"
	want := color.RGBA{R: 255, G: 128, B: 0, A: 255}
	if got := s.TextRGBA(); got != want {
		t.Errorf("TextRGBA = %v, want %v", got, want)
	}
	if got := s.BackgroundRGBA(); got != (color.RGBA{A: 255}) {
		t.Errorf("BackgroundRGBA = %v, want opaque black", got)
	}
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	data := []byte("text: from file\nfps: 60\nmargins:\n  left: 0.2\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Text != "from file" {
		t.Errorf("Text = %q", s.Text)
	}
	if s.FPS != 60 {
		t.Errorf("FPS = %d, want 60", s.FPS)
	}
	if s.Margins.Left != 0.2 {
		t.Errorf("Margins.Left = %v, want 0.2", s.Margins.Left)
	}
	// Untouched fields keep defaults.
	if s.VideoLength != 10 {
		t.Errorf("VideoLength = %v, want default 10", s.VideoLength)
	}
	if s.Resolution != "1280x720" {
		t.Errorf("Resolution = %q, want default", s.Resolution)
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("written defaults do not validate: %v", err)
	}
}
