package video

import (
	"context"
	"fmt"
	"image"
	"image/color"

	vidio "github.com/AlexEidt/Vidio"
	xdraw "golang.org/x/image/draw"

	"github.com/screenkit/screenkit/internal/config"
	"github.com/screenkit/screenkit/internal/tracking"
)

// Pipeline converts a raw capture plus its mouse-event log into the
// beautified output: each frame is resized, optionally decorated with a
// title bar and cursor, then composited onto the background canvas with a
// rounded-corner mask and a blurred drop shadow.
type Pipeline struct {
	opts     config.Enhance
	events   *tracking.EventLog
	cache    *maskShadowCache
	progress ProgressReporter
}

// NewPipeline validates the options up front; missing screen dimensions or
// out-of-range style parameters never reach the frame loop.
func NewPipeline(opts config.Enhance, events *tracking.EventLog) (*Pipeline, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if events == nil {
		events = &tracking.EventLog{}
	}
	return &Pipeline{
		opts:   opts,
		events: events,
		cache:  newMaskShadowCache(),
	}, nil
}

// SetProgressReporter overrides the default console progress bar.
func (p *Pipeline) SetProgressReporter(r ProgressReporter) {
	p.progress = r
}

// Enhance runs the frame loop over inputPath and writes the result to
// outputPath. The input reader and output writer are released on every
// path out; frames already written stay on disk if the run aborts.
func (p *Pipeline) Enhance(ctx context.Context, inputPath, outputPath string) (string, error) {
	video, err := vidio.NewVideo(inputPath)
	if err != nil {
		return "", fmt.Errorf("failed to open input video %s: %w", inputPath, err)
	}
	defer video.Close()

	renderer, err := p.newFrameRenderer(video.Width(), video.Height(), video.FPS())
	if err != nil {
		return "", err
	}

	outWidth, outHeight := p.opts.ScreenWidth, p.opts.ScreenHeight
	if p.opts.OutputRaw {
		outWidth, outHeight = renderer.geo.ContentWidth, renderer.geo.ContentHeight
	}

	options := vidio.Options{FPS: video.FPS(), Bitrate: video.Bitrate()}
	writer, err := vidio.NewVideoWriter(outputPath, outWidth, outHeight, &options)
	if err != nil {
		return "", fmt.Errorf("failed to open output video %s: %w", outputPath, err)
	}
	defer writer.Close()

	progress := p.progress
	if progress == nil {
		progress = NewProgressBar("Enhancing Video", video.Frames())
	}

	// Decode into a buffer we own so it can be wrapped as an image once.
	buffer := make([]byte, video.Width()*video.Height()*4)
	if err := video.SetFrameBuffer(buffer); err != nil {
		return "", fmt.Errorf("failed to set frame buffer: %w", err)
	}
	frame := &image.RGBA{
		Pix:    buffer,
		Stride: video.Width() * 4,
		Rect:   image.Rect(0, 0, video.Width(), video.Height()),
	}

	for i := 0; video.Read(); i++ {
		if err := ctx.Err(); err != nil {
			progress.ReportError(err)
			return "", err
		}

		out := renderer.render(frame, i)
		if err := writer.Write(out.Pix); err != nil {
			progress.ReportError(err)
			return "", fmt.Errorf("failed to write frame %d: %w", i, err)
		}
		progress.Advance()
	}
	progress.ReportComplete()

	return outputPath, nil
}

// frameRenderer holds everything the per-frame step needs, resolved once at
// pipeline start.
type frameRenderer struct {
	opts       config.Enhance
	geo        Geometry
	background *image.RGBA
	sprite     *image.NRGBA
	events     *tracking.EventLog
	cache      *maskShadowCache
	key        CacheKey
	startTime  float64
	fps        float64
}

func (p *Pipeline) newFrameRenderer(origWidth, origHeight int, fps float64) (*frameRenderer, error) {
	geo := PlanGeometry(origWidth, origHeight, p.opts.ScreenWidth, p.opts.ScreenHeight, p.opts.Padding)

	var bg Background
	var err error
	if len(p.opts.BackgroundRGB) > 0 {
		bg, err = BackgroundRGB(p.opts.BackgroundRGB)
	} else {
		bg, err = ParseBackground(p.opts.Background, &p.opts)
	}
	if err != nil {
		return nil, err
	}
	canvas, err := bg.Resolve(p.opts.ScreenWidth, p.opts.ScreenHeight)
	if err != nil {
		return nil, err
	}

	sprite, err := LoadCursorSprite(p.opts.AssetPath(config.CursorImagePath))
	if err != nil {
		return nil, err
	}

	return &frameRenderer{
		opts:       p.opts,
		geo:        geo,
		background: canvas,
		sprite:     sprite,
		events:     p.events,
		cache:      p.cache,
		key: CacheKey{
			OffsetX:       geo.OffsetX,
			OffsetY:       geo.OffsetY,
			Radius:        p.opts.BorderRadius,
			ShadowBlur:    p.opts.ShadowBlur,
			ShadowOpacity: p.opts.ShadowOpacity,
		},
		startTime: p.events.StartTime(),
		fps:       fps,
	}, nil
}

// render maps one raw frame to one output frame. index is the 0-based frame
// number, used to derive the frame's timestamp for cursor lookup.
func (r *frameRenderer) render(raw *image.RGBA, index int) *image.RGBA {
	resized := image.NewRGBA(image.Rect(0, 0, r.geo.ContentWidth, r.geo.ContentHeight))
	xdraw.ApproxBiLinear.Scale(resized, resized.Bounds(), raw, raw.Bounds(), xdraw.Src, nil)

	if r.opts.OutputRaw {
		return resized
	}

	if r.opts.MacOSTitlebar {
		drawTitleBar(resized, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}

	currentTime := r.startTime
	if r.fps > 0 {
		currentTime += float64(index) / r.fps
	}
	if ev, ok := r.events.LatestMoveBefore(currentTime); ok {
		cursorX := int(ev.X*float64(r.opts.ScreenWidth)) - r.opts.RecordRegion.Left
		cursorY := int(ev.Y*float64(r.opts.ScreenHeight)) - r.opts.RecordRegion.Top
		overlayCursor(resized, r.sprite, cursorX, cursorY, r.opts.CursorScale)
	}

	canvas := cloneRGBA(r.background)
	mask := r.cache.mask(r.key, r.geo.ContentWidth, r.geo.ContentHeight)
	shadow := r.cache.shadow(r.key, r.geo.CanvasWidth, r.geo.CanvasHeight, r.geo.ContentWidth, r.geo.ContentHeight)
	compositeFrame(canvas, resized, mask, shadow, r.geo.OffsetX, r.geo.OffsetY)
	return canvas
}
