package aquatask

import (
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"
)

func solidFrame(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestGIFEncoderRoundTrip(t *testing.T) {
	frames := []*image.RGBA{
		solidFrame(16, 16, color.RGBA{255, 0, 0, 255}),
		solidFrame(16, 16, color.RGBA{0, 255, 0, 255}),
		solidFrame(16, 16, color.RGBA{0, 0, 255, 255}),
	}
	path := filepath.Join(t.TempDir(), "out.gif")

	enc := &GIFEncoder{}
	if !enc.Available() {
		t.Fatal("gif encoder must always be available")
	}
	if err := enc.Encode(frames, 10, path); err != nil {
		t.Fatalf("encode: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	decoded, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Image) != len(frames) {
		t.Errorf("decoded %d frames, want %d", len(decoded.Image), len(frames))
	}
	if decoded.Delay[0] != 10 {
		t.Errorf("frame delay = %d, want 10 (100ths of a second at 10fps)", decoded.Delay[0])
	}
}

func TestEncodeRejectsEmptyAndMismatched(t *testing.T) {
	enc := &GIFEncoder{}
	path := filepath.Join(t.TempDir(), "out.gif")

	if err := enc.Encode(nil, 10, path); err == nil {
		t.Error("expected error for empty frame list")
	}

	frames := []*image.RGBA{
		solidFrame(16, 16, color.RGBA{255, 0, 0, 255}),
		solidFrame(8, 8, color.RGBA{0, 255, 0, 255}),
	}
	if err := enc.Encode(frames, 10, path); err == nil {
		t.Error("expected error for mismatched frame sizes without AllowResize")
	}
}

func TestEncodeResizeIsOptIn(t *testing.T) {
	frames := []*image.RGBA{
		solidFrame(16, 16, color.RGBA{255, 0, 0, 255}),
		solidFrame(8, 8, color.RGBA{0, 255, 0, 255}),
	}
	path := filepath.Join(t.TempDir(), "out.gif")

	enc := &GIFEncoder{AllowResize: true}
	if err := enc.Encode(frames, 10, path); err != nil {
		t.Fatalf("encode with resize: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	decoded, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i, img := range decoded.Image {
		if got := img.Bounds().Dx(); got != 16 {
			t.Errorf("frame %d width = %d, want 16 (scaled to the first frame)", i, got)
		}
	}
}

func TestNewEncoder(t *testing.T) {
	if _, err := NewEncoder(VideoMP4); err != nil {
		t.Errorf("mp4: %v", err)
	}
	if _, err := NewEncoder(VideoGIF); err != nil {
		t.Errorf("gif: %v", err)
	}
	if _, err := NewEncoder("webm"); err == nil {
		t.Error("expected error for unknown format")
	}
}
