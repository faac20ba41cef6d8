package aquatask

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"os/exec"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// Encoder turns an ordered sequence of same-sized frames into a video file.
//
// Unavailability of an encoding backend is a queryable capability, not an
// error: callers check Available before animating and skip the stage when it
// reports false.
type Encoder interface {
	// Available reports whether the encoding backend can run on this host.
	Available() bool
	// Extension returns the output file extension including the dot.
	Extension() string
	// Encode writes the frames to path at the given frame rate.
	Encode(frames []*image.RGBA, fps int, path string) error
}

// NewEncoder returns the encoder for a video format.
func NewEncoder(format VideoFormat) (Encoder, error) {
	switch format {
	case VideoMP4:
		return &FFmpegEncoder{}, nil
	case VideoGIF:
		return &GIFEncoder{}, nil
	default:
		return nil, fmt.Errorf("encoder: unknown video format %q", format)
	}
}

// prepFrames validates that all frames share the first frame's size. With
// allowResize set, mismatched frames are rescaled with a Catmull-Rom filter
// instead; this is the only place resizing happens, and only on request.
func prepFrames(frames []*image.RGBA, allowResize bool) ([]*image.RGBA, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("encode: no frames provided")
	}
	ref := frames[0].Bounds()
	out := make([]*image.RGBA, len(frames))
	for i, f := range frames {
		if f.Bounds() == ref {
			out[i] = f
			continue
		}
		if !allowResize {
			return nil, fmt.Errorf("encode: frame %d size %v does not match first frame %v", i, f.Bounds(), ref)
		}
		scaled := image.NewRGBA(ref)
		xdraw.CatmullRom.Scale(scaled, ref, f, f.Bounds(), xdraw.Src, nil)
		out[i] = scaled
	}
	return out, nil
}

// FFmpegEncoder produces an MP4 by staging frames as PNG files and invoking
// the ffmpeg binary. Frames are staged in a temporary directory that is
// removed on every exit path.
type FFmpegEncoder struct {
	// AllowResize opts in to rescaling mismatched frames instead of
	// rejecting them.
	AllowResize bool
}

// Available reports whether an ffmpeg binary is on PATH.
func (e *FFmpegEncoder) Available() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// Extension returns ".mp4".
func (e *FFmpegEncoder) Extension() string { return ".mp4" }

// Encode writes the frames to an H.264 MP4 file at path.
func (e *FFmpegEncoder) Encode(frames []*image.RGBA, fps int, path string) error {
	frames, err := prepFrames(frames, e.AllowResize)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	stage, err := os.MkdirTemp("", "aquatask-frames-")
	if err != nil {
		return fmt.Errorf("encode: stage frames: %w", err)
	}
	defer os.RemoveAll(stage)

	for i, f := range frames {
		name := filepath.Join(stage, fmt.Sprintf("frame_%05d.png", i))
		if err := writePNG(name, f); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	}

	cmd := exec.Command("ffmpeg",
		"-y",
		"-loglevel", "error",
		"-framerate", fmt.Sprint(fps),
		"-i", filepath.Join(stage, "frame_%05d.png"),
		"-pix_fmt", "yuv420p",
		path,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("encode: ffmpeg: %w: %s", err, out)
	}
	return nil
}

// GIFEncoder produces an animated GIF in pure Go. Frames are quantized to
// the Plan 9 palette without dithering, which keeps encoding deterministic.
type GIFEncoder struct {
	// AllowResize opts in to rescaling mismatched frames instead of
	// rejecting them.
	AllowResize bool
}

// Available always reports true; GIF encoding has no external dependency.
func (e *GIFEncoder) Available() bool { return true }

// Extension returns ".gif".
func (e *GIFEncoder) Extension() string { return ".gif" }

// Encode writes the frames to an animated GIF at path.
func (e *GIFEncoder) Encode(frames []*image.RGBA, fps int, path string) error {
	frames, err := prepFrames(frames, e.AllowResize)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	delay := 100 / fps // GIF delays are in 100ths of a second
	if delay < 1 {
		delay = 1
	}

	anim := &gif.GIF{}
	for _, f := range frames {
		pal := image.NewPaletted(f.Bounds(), palette.Plan9)
		draw.Draw(pal, f.Bounds(), f, f.Bounds().Min, draw.Src)
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delay)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := gif.EncodeAll(out, anim); err != nil {
		out.Close()
		return fmt.Errorf("encode: gif %s: %w", path, err)
	}
	return out.Close()
}
