package render

import (
	"image"
	"image/draw"

	qrcode "github.com/skip2/go-qrcode"
)

const minOverlaySize = 64

// QROverlay renders the QR tile drawn in the corner of every frame. The tile
// is sized to 12% of the shorter canvas edge, with a floor so the code stays
// scannable at small resolutions.
func QROverlay(content string, width, height int) (*image.RGBA, error) {
	size := int(0.12 * float64(min(width, height)))
	if size < minOverlaySize {
		size = minOverlaySize
	}

	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	img := code.Image(size)
	tile := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(tile, tile.Bounds(), img, img.Bounds().Min, draw.Src)
	return tile, nil
}
