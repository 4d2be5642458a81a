package system

import (
	"image"
	"sync"
)

// FramePool recycles RGBA frame buffers of a single geometry so the render
// loop does not allocate one canvas per frame. A job owns its pool; buffers
// taken from it must be returned once the encoder is done with them.
type FramePool struct {
	rect image.Rectangle
	pool sync.Pool
}

// NewFramePool creates a pool for frames of the given bounds.
func NewFramePool(rect image.Rectangle) *FramePool {
	return &FramePool{
		rect: rect,
		pool: sync.Pool{
			New: func() any {
				return image.NewRGBA(rect)
			},
		},
	}
}

// Get returns a frame buffer. Its pixel content is whatever the previous
// user left; callers are expected to repaint it fully.
func (p *FramePool) Get() *image.RGBA {
	return p.pool.Get().(*image.RGBA)
}

// Put returns a buffer for reuse. Buffers of a different geometry are
// dropped.
func (p *FramePool) Put(img *image.RGBA) {
	if img == nil || img.Rect != p.rect {
		return
	}
	p.pool.Put(img)
}
