package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
)

// ImageBackground decodes a still image (JPEG or PNG) from a local path or
// an http/https URL and scales it to the canvas.
type ImageBackground struct {
	Ref string
}

func (b *ImageBackground) Render(width, height int) (*image.RGBA, error) {
	r, err := b.open()
	if err != nil {
		return nil, &ResourceError{Ref: b.Ref, Err: err}
	}
	defer r.Close()

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &ResourceError{Ref: b.Ref, Err: fmt.Errorf("decode: %w", err)}
	}
	return scaleTo(img, width, height), nil
}

func (b *ImageBackground) open() (io.ReadCloser, error) {
	if strings.HasPrefix(b.Ref, "http://") || strings.HasPrefix(b.Ref, "https://") {
		resp, err := http.Get(b.Ref)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch: status %s", resp.Status)
		}
		return resp.Body, nil
	}
	return os.Open(b.Ref)
}
