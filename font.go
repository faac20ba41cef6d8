package aquatask

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// fontSet holds the faces used by the scene compositor. Faces come from the
// embedded Go fonts rather than the host filesystem, so text rendering never
// depends on what fonts happen to be installed.
type fontSet struct {
	label   font.Face // container labels beneath each vessel
	readout font.Face // numeric level readout next to the indicator arrow
	hint    font.Face // large placeholder glyph inside the empty target
}

func loadFonts() (fontSet, error) {
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return fontSet{}, fmt.Errorf("parse embedded bold font: %w", err)
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return fontSet{}, fmt.Errorf("parse embedded regular font: %w", err)
	}

	var fs fontSet
	if fs.label, err = newFace(bold, 16); err != nil {
		return fontSet{}, err
	}
	if fs.readout, err = newFace(regular, 14); err != nil {
		return fontSet{}, err
	}
	if fs.hint, err = newFace(bold, 48); err != nil {
		return fontSet{}, err
	}
	return fs, nil
}

func newFace(f *sfnt.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create %gpt face: %w", size, err)
	}
	return face, nil
}
