// Package engine wires the pipeline together: settings validation, layout
// optimization, parallel frame rendering and the ordered hand-off to the
// encoder. Frame rendering is embarrassingly parallel; the encoder is not,
// so rendered frames are re-sequenced before they reach it.
package engine

import (
	"context"
	"fmt"
	"image"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/Gingerbreadfork/type-trance/internal/config"
	"github.com/Gingerbreadfork/type-trance/internal/font"
	"github.com/Gingerbreadfork/type-trance/internal/layout"
	"github.com/Gingerbreadfork/type-trance/internal/render"
	"github.com/Gingerbreadfork/type-trance/internal/source"
	"github.com/Gingerbreadfork/type-trance/internal/system"
	"github.com/Gingerbreadfork/type-trance/internal/video"
)

// Job holds everything one render run needs. All collaborators are injected;
// the engine never reaches for process-wide state.
type Job struct {
	Settings   *config.Settings
	Fonts      *font.Source
	Background source.Background
	Encoder    video.Encoder
	Progress   ProgressSink

	Codec   string // ffmpeg encoder name; empty means libx264
	Quality int    // 0 = per-codec default
}

type frameResult struct {
	index int
	img   *image.RGBA
}

// Run executes the whole pipeline. On failure the partial output file is
// removed; the first error wins and is returned as the single terminal
// outcome.
func (j *Job) Run(ctx context.Context) (err error) {
	s := j.Settings
	if err := s.Validate(); err != nil {
		return err
	}
	if j.Progress == nil {
		j.Progress = NopSink{}
	}

	width, height, err := s.Size()
	if err != nil {
		return err
	}

	maxWidth, maxHeight := s.TextBox()
	spec, err := layout.Optimize(s.Text, maxWidth, maxHeight, s.MinFontSize, s.MaxFontSize,
		func(size float64) (layout.Measurer, error) {
			return j.Fonts.Face(size)
		})
	if err != nil {
		return err
	}

	background, err := j.Background.Render(width, height)
	if err != nil {
		return err
	}

	var overlay *image.RGBA
	if s.QRContent != "" {
		overlay, err = render.QROverlay(s.QRContent, width, height)
		if err != nil {
			return fmt.Errorf("qr overlay: %w", err)
		}
	}

	codec := j.Codec
	if codec == "" {
		codec = "libx264"
	}
	if err := j.Encoder.Start(ctx, video.Params{
		Width:      width,
		Height:     height,
		FPS:        s.FPS,
		Codec:      codec,
		Quality:    j.Quality,
		OutputPath: s.OutputFileName,
	}); err != nil {
		return err
	}
	defer func() {
		closeErr := j.Encoder.Close()
		if err == nil {
			err = closeErr
		}
		if err != nil {
			os.Remove(s.OutputFileName)
		}
	}()

	return j.renderLoop(ctx, render.Options{
		Settings:   s,
		Layout:     spec,
		Background: background,
		Overlay:    overlay,
	})
}

// renderLoop runs the worker pool and streams frames to the encoder in
// strictly increasing index order.
func (j *Job) renderLoop(ctx context.Context, opts render.Options) error {
	s := j.Settings
	width, height, _ := s.Size()
	totalFrames := s.TotalFrames()

	workers := s.Workers
	if workers == 0 {
		workers = system.WorkerCount(uint64(width * height * 4))
	}
	if workers > totalFrames {
		workers = totalFrames
	}

	pool := system.NewFramePool(image.Rect(0, 0, width, height))
	jobs := make(chan int)
	results := make(chan frameResult, workers)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < totalFrames; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var renderers errgroup.Group
	for w := 0; w < workers; w++ {
		renderers.Go(func() error {
			// One renderer per worker: the glyph cache inside a font face
			// is not safe for concurrent use.
			r, err := render.New(opts, j.Fonts)
			if err != nil {
				return err
			}
			for idx := range jobs {
				buf := pool.Get()
				r.Draw(idx, buf)
				select {
				case results <- frameResult{index: idx, img: buf}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(results)
		return renderers.Wait()
	})

	g.Go(func() error {
		return j.sequence(results, totalFrames, pool)
	})

	return g.Wait()
}

// sequence re-orders worker output and writes frames to the encoder in index
// order. After an encoder error it keeps draining so the workers can finish
// and shut down cleanly.
func (j *Job) sequence(results <-chan frameResult, totalFrames int, pool *system.FramePool) error {
	pending := make(map[int]*image.RGBA, totalFrames)
	next := 0
	var failed error

	for res := range results {
		if failed != nil {
			pool.Put(res.img)
			continue
		}
		pending[res.index] = res.img
		for img, ok := pending[next]; ok; img, ok = pending[next] {
			delete(pending, next)
			err := j.Encoder.WriteFrame(img)
			pool.Put(img)
			if err != nil {
				failed = err
				break
			}
			j.Progress.Advance(1)
			next++
		}
	}
	if failed != nil {
		return failed
	}
	if next != totalFrames {
		return fmt.Errorf("encoded %d of %d frames", next, totalFrames)
	}
	return nil
}
