// Package source loads the backdrop a render job draws every frame on top
// of: a flat color, a still image from disk or URL, or the first page of a
// PDF. The rendered backdrop is scaled to the exact target resolution once
// and shared read-only afterwards.
package source

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// ResourceError wraps a failure to fetch or decode an external resource.
// Resource failures are fatal to the job and abort before the frame loop.
type ResourceError struct {
	Ref string
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource %s: %v", e.Ref, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// Background renders a backdrop at exactly the requested resolution.
type Background interface {
	Render(width, height int) (*image.RGBA, error)
}

// For picks a Background for a settings reference: empty means a flat fill,
// a .pdf path renders the first page, anything else decodes as a still image
// (local file or http/https URL).
func For(ref string, fill color.RGBA) Background {
	switch {
	case ref == "":
		return &ColorBackground{Color: fill}
	case strings.HasSuffix(strings.ToLower(ref), ".pdf"):
		return &PDFBackground{Path: ref}
	default:
		return &ImageBackground{Ref: ref}
	}
}

// ColorBackground fills the canvas with a single color.
type ColorBackground struct {
	Color color.RGBA
}

func (b *ColorBackground) Render(width, height int) (*image.RGBA, error) {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(b.Color), image.Point{}, draw.Src)
	return dst, nil
}

// scaleTo resamples img to exactly width x height, ignoring aspect ratio.
func scaleTo(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}
