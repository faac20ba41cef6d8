package aquatask

import (
	"fmt"
	"image/color"
)

// VideoFormat selects the encoding backend for ground-truth animations.
type VideoFormat string

const (
	// VideoMP4 encodes H.264 MP4 via an external ffmpeg binary. Unavailable
	// when ffmpeg is not on PATH.
	VideoMP4 VideoFormat = "mp4"
	// VideoGIF encodes an animated GIF in pure Go. Always available.
	VideoGIF VideoFormat = "gif"
)

// Config holds every knob the task synthesizer recognizes. Construct with
// DefaultConfig and override fields before passing to NewGenerator; Validate
// runs eagerly, before any sampling, and rejects contradictory bounds.
type Config struct {
	// Domain is the dataset domain literal written into every task record.
	Domain string

	// CanvasWidth and CanvasHeight are the rendered image dimensions in pixels.
	CanvasWidth  int
	CanvasHeight int

	// MinContainerWidth and MaxContainerWidth bound the sampled container
	// cross-sectional widths. Both containers draw from the same range.
	MinContainerWidth int
	MaxContainerWidth int

	// ContainerHeight is the wall height shared by both containers.
	ContainerHeight int

	// MinWidthSeparation is the smallest allowed |source - target| width
	// difference. Pairs closer than this are resampled so the task stays
	// visually non-trivial.
	MinWidthSeparation int

	// MinFillRatio and MaxFillRatio bound the sampled fraction of the source
	// container's height occupied by water before the transfer.
	MinFillRatio float64
	MaxFillRatio float64

	// Colors. Water is drawn opaque; alpha on these values is ignored.
	BackgroundColor  color.RGBA
	ContainerColor   color.RGBA
	WaterColor       color.RGBA
	MeasurementColor color.RGBA

	// GenerateVideos enables the ground-truth animation stage. When false, or
	// when the selected encoder reports itself unavailable, tasks are produced
	// without a video. That is a degraded but valid output, not an error.
	GenerateVideos bool
	Format         VideoFormat
	VideoFPS       int

	// HoldFrames is the number of frames the initial image is held before the
	// transfer begins. The final image is held for twice as long.
	HoldFrames int
	// TransitionFrames is the number of interpolated frames between the
	// initial and final states. Must be at least 2 so the transition includes
	// both endpoints.
	TransitionFrames int

	// Seed is the base seed for the run when SeedSet is true. Every task
	// derives its own random source from (Seed, task index), so re-running
	// with the same seed and task count reproduces identical physical states
	// regardless of worker count. When SeedSet is false a base seed is drawn
	// once per run from an unseeded source.
	Seed    uint64
	SeedSet bool

	// Workers bounds how many tasks are generated concurrently. Values below
	// 1 mean sequential generation.
	Workers int
}

// DefaultConfig returns the standard water-level task configuration.
func DefaultConfig() Config {
	return Config{
		Domain:             "water_level",
		CanvasWidth:        512,
		CanvasHeight:       512,
		MinContainerWidth:  60,
		MaxContainerWidth:  150,
		ContainerHeight:    200,
		MinWidthSeparation: 20,
		MinFillRatio:       0.3,
		MaxFillRatio:       0.8,
		BackgroundColor:    color.RGBA{255, 255, 255, 255},
		ContainerColor:     color.RGBA{100, 100, 100, 255},
		WaterColor:         color.RGBA{50, 150, 255, 255},
		MeasurementColor:   color.RGBA{200, 50, 50, 255},
		GenerateVideos:     true,
		Format:             VideoMP4,
		VideoFPS:           10,
		HoldFrames:         5,
		TransitionFrames:   30,
		Workers:            1,
	}
}

// Validate checks the configuration for out-of-range or contradictory values.
// It must pass before any sampling begins; a configuration that validates
// cannot produce degenerate geometry at runtime.
func (c Config) Validate() error {
	if c.Domain == "" {
		return fmt.Errorf("config: domain must not be empty")
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return fmt.Errorf("config: canvas size %dx%d must be positive", c.CanvasWidth, c.CanvasHeight)
	}
	if c.MinContainerWidth < 1 {
		return fmt.Errorf("config: min container width %d must be at least 1", c.MinContainerWidth)
	}
	if c.MinContainerWidth > c.MaxContainerWidth {
		return fmt.Errorf("config: min container width %d exceeds max %d", c.MinContainerWidth, c.MaxContainerWidth)
	}
	if c.ContainerHeight <= 0 {
		return fmt.Errorf("config: container height %d must be positive", c.ContainerHeight)
	}
	if c.MinWidthSeparation < 0 {
		return fmt.Errorf("config: width separation %d must be non-negative", c.MinWidthSeparation)
	}
	if c.MaxContainerWidth-c.MinContainerWidth < c.MinWidthSeparation {
		return fmt.Errorf("config: width range [%d, %d] is narrower than the required separation %d; no valid container pair exists",
			c.MinContainerWidth, c.MaxContainerWidth, c.MinWidthSeparation)
	}
	if c.MinFillRatio < 0 || c.MaxFillRatio > 1 || c.MinFillRatio > c.MaxFillRatio {
		return fmt.Errorf("config: fill ratio range [%g, %g] must satisfy 0 <= min <= max <= 1", c.MinFillRatio, c.MaxFillRatio)
	}
	if c.CanvasWidth < 2*c.MaxContainerWidth+containerGap {
		return fmt.Errorf("config: canvas width %d cannot fit two containers of width %d with a %dpx gap",
			c.CanvasWidth, c.MaxContainerWidth, containerGap)
	}
	if c.CanvasHeight < c.ContainerHeight {
		return fmt.Errorf("config: canvas height %d is smaller than container height %d", c.CanvasHeight, c.ContainerHeight)
	}
	if c.GenerateVideos {
		if c.Format != VideoMP4 && c.Format != VideoGIF {
			return fmt.Errorf("config: unknown video format %q", c.Format)
		}
		if c.VideoFPS <= 0 {
			return fmt.Errorf("config: video fps %d must be positive", c.VideoFPS)
		}
		if c.HoldFrames < 0 {
			return fmt.Errorf("config: hold frame count %d must be non-negative", c.HoldFrames)
		}
		if c.TransitionFrames < 2 {
			return fmt.Errorf("config: transition frame count %d must be at least 2", c.TransitionFrames)
		}
	}
	return nil
}
