package font

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Source is a parsed font shared across the job. Parsing happens once;
// lightweight faces at specific sizes are derived from it.
type Source struct {
	ft *opentype.Font
}

// NewSource parses raw TTF/OTF data.
func NewSource(data []byte) (*Source, error) {
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Source{ft: ft}, nil
}

// NewSourceFromFile loads and parses a font file.
func NewSourceFromFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	return NewSource(data)
}

// Embedded returns the bundled Go Regular font, used when no font path is
// configured.
func Embedded() *Source {
	src, err := NewSource(goregular.TTF)
	if err != nil {
		// The embedded font is known good; failing to parse it is a build
		// problem, not a runtime condition.
		panic(err)
	}
	return src
}

// Face creates a face at the given pixel size. A Face caches glyphs and is
// not safe for concurrent use; create one per goroutine.
func (s *Source) Face(size float64) (*Face, error) {
	f, err := opentype.NewFace(s.ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("face at %.1fpx: %w", size, err)
	}
	return &Face{face: f, size: size}, nil
}

// Face measures and draws text at one fixed size.
type Face struct {
	face font.Face
	size float64
}

// Width returns the pixel advance width of text at this face's size.
func (f *Face) Width(text string) float64 {
	return fixedToFloat(font.MeasureString(f.face, text))
}

// Ascent is the distance from the top of a line cell to the baseline.
func (f *Face) Ascent() float64 {
	return fixedToFloat(f.face.Metrics().Ascent)
}

// Size returns the pixel size the face was created at.
func (f *Face) Size() float64 {
	return f.size
}

// Raw exposes the underlying face for font.Drawer.
func (f *Face) Raw() font.Face {
	return f.face
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
