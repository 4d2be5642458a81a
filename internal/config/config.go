package config

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Margins are fractions of the canvas reserved as empty border on each side.
type Margins struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
}

// Settings is the full configuration of one render job. It is validated once
// at job start and treated as immutable afterwards.
type Settings struct {
	Text             string  `yaml:"text"`
	Resolution       string  `yaml:"resolution"` // "WxH", e.g. "1280x720"
	TextColor        string  `yaml:"textColor"`
	BackgroundColor  string  `yaml:"backgroundColor"`
	BackgroundImage  string  `yaml:"backgroundImage"` // path, URL or PDF; empty = flat fill
	VideoLength      float64 `yaml:"videoLength"`     // seconds
	BufferTime       float64 `yaml:"bufferTime"`      // seconds of hold on each end
	FPS              int     `yaml:"fps"`
	OutputFileName   string  `yaml:"outputFileName"`
	Margins          Margins `yaml:"margins"`
	FlowFromTop      bool    `yaml:"flowFromTop"`
	HighlightText    bool    `yaml:"highlightText"`
	HighlightOpacity float64 `yaml:"highlightOpacity"`
	QRContent        string  `yaml:"qrContent"` // optional QR overlay payload
	FontPath         string  `yaml:"fontPath"`  // empty = embedded Go Regular
	MinFontSize      float64 `yaml:"minFontSize"`
	MaxFontSize      float64 `yaml:"maxFontSize"`
	Workers          int     `yaml:"workers"` // 0 = auto
}

// Default returns the settings every job starts from. Text and Resolution
// carry no useful defaults and must be supplied by the caller.
func Default() Settings {
	return Settings{
		Resolution:       "1280x720",
		TextColor:        "#ffffff",
		BackgroundColor:  "#000000",
		VideoLength:      10,
		BufferTime:       1,
		FPS:              30,
		OutputFileName:   "output.mp4",
		Margins:          Margins{Top: 0.1, Bottom: 0.1, Left: 0.1, Right: 0.1},
		HighlightOpacity: 0.5,
		MinFontSize:      12,
		MaxFontSize:      100,
	}
}

// Size parses the Resolution string into pixel dimensions.
func (s *Settings) Size() (width, height int, err error) {
	n, err := fmt.Sscanf(s.Resolution, "%dx%d", &width, &height)
	if err != nil || n != 2 {
		return 0, 0, &ValidationError{Field: "resolution", Reason: fmt.Sprintf("%q is not WxH", s.Resolution)}
	}
	return width, height, nil
}

// TextBox returns the bounding box available to text after margins.
func (s *Settings) TextBox() (maxWidth, maxHeight float64) {
	w, h, _ := s.Size()
	maxWidth = float64(w) * (1 - s.Margins.Left - s.Margins.Right)
	maxHeight = float64(h) * (1 - s.Margins.Top - s.Margins.Bottom)
	return maxWidth, maxHeight
}

// TotalFrames is the frame count of the whole video.
func (s *Settings) TotalFrames() int {
	return int(math.Round(s.VideoLength * float64(s.FPS)))
}

// BufferFrames is the frame count of one hold period.
func (s *Settings) BufferFrames() int {
	return int(math.Round(s.BufferTime * float64(s.FPS)))
}

// TextRGBA returns the parsed text color.
func (s *Settings) TextRGBA() color.RGBA {
	return mustHex(s.TextColor)
}

// BackgroundRGBA returns the parsed background fill color.
func (s *Settings) BackgroundRGBA() color.RGBA {
	return mustHex(s.BackgroundColor)
}

// mustHex assumes Validate already vetted the string; a bad value reaching
// this point is a programming error.
func mustHex(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(fmt.Sprintf("color %q escaped validation: %v", hex, err))
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
