// Package video is the boundary to the external encoder. It consumes an
// ordered sequence of raster frames plus a frame rate and produces an MP4,
// driving ffmpeg with raw RGBA frames over stdin so no intermediate frame
// files touch the disk.
package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
)

// EncodingError wraps an encoder failure together with the collected ffmpeg
// output, which is usually the only useful diagnostic.
type EncodingError struct {
	Err    error
	Output string
}

func (e *EncodingError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("encode: %v", e.Err)
	}
	return fmt.Sprintf("encode: %v\nffmpeg output:\n%s", e.Err, e.Output)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Params describe one encode run.
type Params struct {
	Width      int
	Height     int
	FPS        int
	Codec      string // ffmpeg -c:v name, e.g. libx264
	Quality    int    // 0 picks a per-codec default
	OutputPath string
}

// Encoder consumes frames in strictly increasing index order. Start must be
// called once before the first WriteFrame; Close flushes and finalizes the
// container. The caller is responsible for the ordering.
type Encoder interface {
	Start(ctx context.Context, p Params) error
	WriteFrame(img *image.RGBA) error
	Close() error
}

// FFmpegEncoder pipes raw RGBA frames into an ffmpeg child process.
type FFmpegEncoder struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	log   bytes.Buffer
	done  bool
}

func (e *FFmpegEncoder) Start(ctx context.Context, p Params) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", BuildArgs(p)...)
	cmd.Stdout = &e.log
	cmd.Stderr = &e.log

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return &EncodingError{Err: fmt.Errorf("stdin pipe: %w", err)}
	}
	if err := cmd.Start(); err != nil {
		return &EncodingError{Err: fmt.Errorf("start ffmpeg: %w", err)}
	}

	e.cmd = cmd
	e.stdin = stdin
	return nil
}

// WriteFrame streams one frame as raw RGBA. Frames must match the geometry
// announced in Start.
func (e *FFmpegEncoder) WriteFrame(img *image.RGBA) error {
	if _, err := e.stdin.Write(rawRGBA(img)); err != nil {
		return &EncodingError{Err: fmt.Errorf("write frame: %w", err), Output: e.log.String()}
	}
	return nil
}

// Close closes the frame stream and waits for ffmpeg to finish the file.
// Safe to call more than once; later calls are no-ops.
func (e *FFmpegEncoder) Close() error {
	if e.done || e.cmd == nil {
		return nil
	}
	e.done = true

	e.stdin.Close()
	if err := e.cmd.Wait(); err != nil {
		return &EncodingError{Err: err, Output: e.log.String()}
	}
	return nil
}

// BuildArgs assembles the full ffmpeg argument list for an encode run.
func BuildArgs(p Params) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"-framerate", fmt.Sprintf("%d", p.FPS),
		"-i", "-",
		"-c:v", p.Codec,
	}
	args = append(args, qualityArgs(p.Codec, p.Quality)...)
	args = append(args, "-pix_fmt", "yuv420p", p.OutputPath)
	return args
}

// qualityArgs maps a quality number onto the flag each encoder understands.
func qualityArgs(codec string, quality int) []string {
	switch codec {
	case "h264_videotoolbox":
		// VideoToolbox rejects -q:v on several versions; a bitrate works
		// everywhere. 75 -> 7.5 Mbit/s.
		if quality == 0 {
			quality = 75
		}
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		if quality == 0 {
			quality = 28
		}
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		if quality == 0 {
			quality = 23
		}
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

// rawRGBA returns the pixel data in tight rawvideo layout, converting only
// when the buffer's stride or origin is non-standard.
func rawRGBA(img *image.RGBA) []byte {
	bounds := img.Bounds()
	if img.Stride == bounds.Dx()*4 && bounds.Min.X == 0 && bounds.Min.Y == 0 {
		return img.Pix
	}
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst.Pix
}
