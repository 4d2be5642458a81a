// Package render composes single video frames: backdrop, highlight bars,
// typed text and the optional QR overlay. Frames are independent of each
// other; everything a frame needs is precomputed and read-only.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/Gingerbreadfork/type-trance/internal/config"
	"github.com/Gingerbreadfork/type-trance/internal/font"
	"github.com/Gingerbreadfork/type-trance/internal/layout"
	"github.com/Gingerbreadfork/type-trance/internal/typing"
)

// highlightPadding is the fixed pixel border around a highlighted line.
const highlightPadding = 5

// Options carry the precomputed, immutable inputs of a render job. The
// background and overlay images are shared read-only across renderers.
type Options struct {
	Settings   *config.Settings
	Layout     *layout.Spec
	Background *image.RGBA
	Overlay    *image.RGBA // optional, drawn bottom-right inside the margins
}

// Renderer draws frames of one job. A Renderer owns a glyph-caching font
// face and is therefore not safe for concurrent use; create one per worker.
type Renderer struct {
	width, height int
	totalFrames   int
	bufferFrames  int

	text   string
	layout *layout.Spec
	face   *font.Face

	background *image.RGBA
	textSrc    *image.Uniform
	highlight  *image.Uniform // nil when highlighting is off

	flowFromTop bool
	marginTop   float64
	marginLeft  float64
	marginRight float64
	marginBot   float64

	overlay *image.RGBA
}

// New builds a renderer for one worker. The face is created here so each
// worker gets its own glyph cache.
func New(opts Options, faces *font.Source) (*Renderer, error) {
	face, err := faces.Face(opts.Layout.FontSize)
	if err != nil {
		return nil, err
	}

	s := opts.Settings
	width, height, err := s.Size()
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		width:        width,
		height:       height,
		totalFrames:  s.TotalFrames(),
		bufferFrames: s.BufferFrames(),
		text:         s.Text,
		layout:       opts.Layout,
		face:         face,
		background:   opts.Background,
		textSrc:      image.NewUniform(s.TextRGBA()),
		flowFromTop:  s.FlowFromTop,
		marginTop:    s.Margins.Top,
		marginLeft:   s.Margins.Left,
		marginRight:  s.Margins.Right,
		marginBot:    s.Margins.Bottom,
		overlay:      opts.Overlay,
	}
	if s.HighlightText {
		alpha := uint8(math.Round(s.HighlightOpacity * 255))
		r.highlight = image.NewUniform(color.RGBA{A: alpha})
	}
	return r, nil
}

// Draw composes the frame with the given index into dst, repainting every
// pixel. dst must match the job resolution.
func (r *Renderer) Draw(frame int, dst *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), r.background, image.Point{}, draw.Src)

	lines := typing.VisibleLines(frame, r.totalFrames, r.bufferFrames, r.layout.Lines, r.text)

	originX := float64(r.width) * r.marginLeft
	originY := float64(r.height) * r.marginTop
	if !r.flowFromTop {
		originY = (float64(r.height) - float64(len(lines))*r.layout.LineHeight) / 2
	}

	for i, line := range lines {
		lineTop := originY + float64(i)*r.layout.LineHeight
		if r.highlight != nil {
			r.drawHighlight(dst, line, originX, lineTop)
		}
		r.drawLine(dst, line, originX, lineTop)
	}

	if r.overlay != nil {
		r.drawOverlay(dst)
	}
}

// drawHighlight paints the translucent bar behind one line: line width plus
// the fixed padding on all sides, one line height tall. Bars of adjacent
// lines may overlap; overlapping paint blends twice, matching the original
// behavior.
func (r *Renderer) drawHighlight(dst *image.RGBA, line string, x, lineTop float64) {
	w := r.face.Width(line)
	rect := image.Rect(
		int(x)-highlightPadding,
		int(lineTop)-highlightPadding,
		int(x+w)+highlightPadding,
		int(lineTop)-highlightPadding+int(r.layout.LineHeight),
	)
	draw.Draw(dst, rect, r.highlight, image.Point{}, draw.Over)
}

func (r *Renderer) drawLine(dst *image.RGBA, line string, x, lineTop float64) {
	d := xfont.Drawer{
		Dst:  dst,
		Src:  r.textSrc,
		Face: r.face.Raw(),
		Dot: fixed.Point26_6{
			X: floatToFixed(x),
			Y: floatToFixed(lineTop + r.face.Ascent()),
		},
	}
	d.DrawString(line)
}

func (r *Renderer) drawOverlay(dst *image.RGBA) {
	size := r.overlay.Bounds().Dx()
	x := int(float64(r.width)*(1-r.marginRight)) - size
	y := int(float64(r.height)*(1-r.marginBot)) - size
	rect := image.Rect(x, y, x+size, y+size)
	draw.Draw(dst, rect, r.overlay, r.overlay.Bounds().Min, draw.Over)
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
