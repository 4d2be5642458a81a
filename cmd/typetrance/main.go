package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gingerbreadfork/type-trance/internal/config"
	"github.com/Gingerbreadfork/type-trance/internal/engine"
	"github.com/Gingerbreadfork/type-trance/internal/font"
	"github.com/Gingerbreadfork/type-trance/internal/source"
	"github.com/Gingerbreadfork/type-trance/internal/system"
	"github.com/Gingerbreadfork/type-trance/internal/video"
)

func main() {
	configPath := flag.String("config", "", "YAML settings file")
	writeConfig := flag.String("write-config", "", "Write a default settings file to this path and exit")
	text := flag.String("text", "", "Text to type out")
	resolution := flag.String("resolution", "", "Output resolution as WxH, e.g. 1280x720")
	out := flag.String("out", "", "Output video path")
	length := flag.Float64("length", 0, "Video length in seconds")
	buffer := flag.Float64("buffer", 0, "Hold time before and after typing, in seconds")
	fps := flag.Int("fps", 0, "Frames per second")
	bg := flag.String("bg", "", "Background: image path, URL or PDF (first page)")
	bgColor := flag.String("bg-color", "", "Background fill color (hex), used when no image is set")
	textColor := flag.String("text-color", "", "Text color (hex)")
	fromTop := flag.Bool("from-top", false, "Anchor text at the top margin instead of centering")
	highlight := flag.Bool("highlight", false, "Draw a translucent bar behind each line")
	highlightOpacity := flag.Float64("highlight-opacity", 0, "Highlight bar opacity (0..1)")
	qr := flag.String("qr", "", "Content for an optional QR overlay in the corner")
	fontPath := flag.String("font", "", "TTF font file (default: embedded Go Regular)")
	workers := flag.Int("workers", 0, "Render workers (0 = auto)")
	quality := flag.Int("quality", 0, "Encoder quality (0 = auto; x264: CRF, VideoToolbox: bitrate = Q*100kbit/s)")

	flag.Parse()

	if *writeConfig != "" {
		if err := config.WriteDefault(*writeConfig); err != nil {
			log.Fatalf("[-] Could not write settings: %v", err)
		}
		fmt.Printf("[+] Settings written to %s\n", *writeConfig)
		return
	}

	settings := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("[-] %v", err)
		}
		settings = *loaded
	}

	// Flags set on the command line override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "text":
			settings.Text = *text
		case "resolution":
			settings.Resolution = *resolution
		case "out":
			settings.OutputFileName = *out
		case "length":
			settings.VideoLength = *length
		case "buffer":
			settings.BufferTime = *buffer
		case "fps":
			settings.FPS = *fps
		case "bg":
			settings.BackgroundImage = *bg
		case "bg-color":
			settings.BackgroundColor = *bgColor
		case "text-color":
			settings.TextColor = *textColor
		case "from-top":
			settings.FlowFromTop = *fromTop
		case "highlight":
			settings.HighlightText = *highlight
		case "highlight-opacity":
			settings.HighlightOpacity = *highlightOpacity
		case "qr":
			settings.QRContent = *qr
		case "font":
			settings.FontPath = *fontPath
		case "workers":
			settings.Workers = *workers
		}
	})

	if err := settings.Validate(); err != nil {
		log.Fatalf("[-] %v", err)
	}

	fonts := font.Embedded()
	if settings.FontPath != "" {
		var err error
		fonts, err = font.NewSourceFromFile(settings.FontPath)
		if err != nil {
			log.Fatalf("[-] %v", err)
		}
	}

	codec := system.DetectEncoder()
	if codec != "libx264" {
		fmt.Printf("[*] Hardware encoder detected: %s\n", codec)
	}

	width, height, _ := settings.Size()
	fmt.Printf("[*] Resolution: %dx%d @ %d FPS | Frames: %d\n", width, height, settings.FPS, settings.TotalFrames())

	job := &engine.Job{
		Settings:   &settings,
		Fonts:      fonts,
		Background: source.For(settings.BackgroundImage, settings.BackgroundRGBA()),
		Encoder:    &video.FFmpegEncoder{},
		Progress:   &engine.ConsoleSink{Total: settings.TotalFrames()},
		Codec:      codec,
		Quality:    *quality,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := job.Run(ctx); err != nil {
		log.Fatalf("[-] Render failed: %v", err)
	}
	fmt.Printf("[+++] Done: %s\n", settings.OutputFileName)
}
