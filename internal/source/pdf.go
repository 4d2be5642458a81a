package source

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// renderDPI gives the rasterizer enough pixels that the downscale to the
// canvas stays sharp for common resolutions.
const renderDPI = 144

// PDFBackground rasterizes the first page of a PDF and scales it to the
// canvas.
type PDFBackground struct {
	Path string
}

func (b *PDFBackground) Render(width, height int) (*image.RGBA, error) {
	doc, err := fitz.New(b.Path)
	if err != nil {
		return nil, &ResourceError{Ref: b.Path, Err: err}
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, &ResourceError{Ref: b.Path, Err: fmt.Errorf("document has no pages")}
	}

	img, err := doc.ImageDPI(0, renderDPI)
	if err != nil {
		return nil, &ResourceError{Ref: b.Path, Err: fmt.Errorf("render page: %w", err)}
	}
	return scaleTo(img, width, height), nil
}
