package aquatask

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// Visual constants shared by every scene variant. These are cosmetic: the
// ripple decoration in particular carries no physical meaning and never
// affects measurements.
const (
	containerGap  = 80 // horizontal gap between the two containers
	wallThickness = 4

	tickIntervals = 5 // graduations per container wall
	tickLong      = 15
	tickShort     = 8

	rippleAmplitude = 3.0
	ripplePhaseStep = 0.3
	rippleSpacing   = 10

	streamDots = 10 // dots tracing the pouring stream
	streamBow  = 20 // sideways bow of the stream path in pixels
)

var (
	tickColor  = color.RGBA{150, 150, 150, 255}
	arrowColor = color.RGBA{100, 100, 100, 255}
	labelColor = color.RGBA{100, 100, 100, 255}
	hintColor  = color.RGBA{200, 200, 200, 255}
)

// Renderer composes physical states into raster scenes. It is stateless apart
// from configuration and loaded font faces; all drawing happens on a per-call
// canvas.
//
// Rendering is deterministic: the same state, options, and configuration
// always produce byte-identical pixel buffers.
type Renderer struct {
	cfg   Config
	fonts fontSet
}

// NewRenderer creates a renderer for the given (validated) configuration.
func NewRenderer(cfg Config) (*Renderer, error) {
	fonts, err := loadFonts()
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	return &Renderer{cfg: cfg, fonts: fonts}, nil
}

// sceneOptions selects the variant-specific decorations for one composition.
type sceneOptions struct {
	sourceWater int
	targetWater int

	showMeasurements bool
	sourceLabel      string
	targetLabel      string

	transferArrow  bool    // initial variant: arrow from source to target
	placeholder    bool    // initial variant: "?" glyph inside the target
	levelIndicator bool    // final variant: arrow + readout at the waterline
	streamProgress float64 // transition variant: pouring stream when in (0, 1)
}

// RenderInitial draws the scene before the transfer: full source container,
// empty target with a placeholder glyph, and an arrow indicating the pour
// direction.
func (r *Renderer) RenderInitial(state PhysicalState) (*image.RGBA, error) {
	return r.compose(state, sceneOptions{
		sourceWater:      state.SourceWaterHeight,
		targetWater:      0,
		showMeasurements: true,
		sourceLabel:      "A (Source)",
		targetLabel:      "B (Target)",
		transferArrow:    true,
		placeholder:      true,
	})
}

// RenderFinal draws the scene after the transfer: empty source, filled
// target, and a level indicator pointing at the resulting waterline.
func (r *Renderer) RenderFinal(state PhysicalState) (*image.RGBA, error) {
	return r.compose(state, sceneOptions{
		sourceWater:      0,
		targetWater:      state.TargetWaterHeight,
		showMeasurements: true,
		sourceLabel:      "A (Empty)",
		targetLabel:      "B (Filled)",
		levelIndicator:   true,
	})
}

// RenderTransition draws one intermediate frame of the transfer with the
// given instantaneous water heights. Measurements are omitted to declutter
// the moving view; a pouring stream is drawn while progress is strictly
// between 0 and 1.
func (r *Renderer) RenderTransition(state PhysicalState, sourceWater, targetWater int, progress float64) (*image.RGBA, error) {
	return r.compose(state, sceneOptions{
		sourceWater:    sourceWater,
		targetWater:    targetWater,
		sourceLabel:    "A",
		targetLabel:    "B",
		streamProgress: progress,
	})
}

// sceneLayout is the resolved placement of both containers on the canvas.
type sceneLayout struct {
	sourceX, targetX int
	topY             int // shared container top edge, centered by the taller wall
}

func (r *Renderer) layoutFor(state PhysicalState) sceneLayout {
	totalWidth := state.SourceWidth + state.TargetWidth + containerGap
	startX := (r.cfg.CanvasWidth - totalWidth) / 2
	tallest := state.SourceHeight
	if state.TargetHeight > tallest {
		tallest = state.TargetHeight
	}
	return sceneLayout{
		sourceX: startX,
		targetX: startX + state.SourceWidth + containerGap,
		topY:    (r.cfg.CanvasHeight - tallest) / 2,
	}
}

func (r *Renderer) compose(state PhysicalState, opts sceneOptions) (*image.RGBA, error) {
	if opts.sourceWater < 0 || opts.sourceWater > state.SourceHeight {
		return nil, fmt.Errorf("render: source water height %d outside container [0, %d]", opts.sourceWater, state.SourceHeight)
	}
	if opts.targetWater < 0 || opts.targetWater > state.TargetHeight {
		return nil, fmt.Errorf("render: target water height %d outside container [0, %d]", opts.targetWater, state.TargetHeight)
	}

	dc := gg.NewContext(r.cfg.CanvasWidth, r.cfg.CanvasHeight)
	dc.SetColor(r.cfg.BackgroundColor)
	dc.Clear()

	lay := r.layoutFor(state)

	r.drawContainer(dc, lay.sourceX, lay.topY, state.SourceWidth, state.SourceHeight,
		opts.sourceWater, opts.showMeasurements, opts.sourceLabel)
	r.drawContainer(dc, lay.targetX, lay.topY, state.TargetWidth, state.TargetHeight,
		opts.targetWater, opts.showMeasurements, opts.targetLabel)

	if opts.transferArrow {
		r.drawTransferArrow(dc, state, lay)
	}
	if opts.placeholder {
		dc.SetFontFace(r.fonts.hint)
		dc.SetColor(hintColor)
		dc.DrawStringAnchored("?",
			float64(lay.targetX+state.TargetWidth/2),
			float64(lay.topY+state.TargetHeight/2), 0.5, 0.5)
	}
	if opts.levelIndicator {
		r.drawLevelIndicator(dc, lay.targetX, lay.topY, state.TargetWidth, state.TargetHeight, opts.targetWater)
	}
	if opts.streamProgress > 0 && opts.streamProgress < 1 {
		r.drawStream(dc, state, lay, opts.sourceWater, opts.targetWater)
	}

	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("render: unexpected canvas pixel format %T", dc.Image())
	}
	return img, nil
}

// drawContainer draws one open-top container (two walls and a bottom, no
// lid), its water column, and optionally graduations and a label.
func (r *Renderer) drawContainer(dc *gg.Context, x, y, width, height, waterHeight int, showMeasurements bool, label string) {
	fx, fy := float64(x), float64(y)
	fw, fh := float64(width), float64(height)

	dc.SetColor(r.cfg.ContainerColor)
	dc.DrawRectangle(fx, fy, wallThickness, fh+wallThickness)    // left wall
	dc.DrawRectangle(fx+fw, fy, wallThickness, fh+wallThickness) // right wall
	dc.DrawRectangle(fx, fy+fh, fw+wallThickness, wallThickness) // bottom
	dc.Fill()

	if waterHeight > 0 {
		waterY := fy + fh - float64(waterHeight)
		dc.SetColor(r.cfg.WaterColor)
		dc.DrawRectangle(fx+wallThickness, waterY, fw-wallThickness, float64(waterHeight))
		// Rippled surface: small circles along the waterline on a fixed
		// sinusoid. Purely decorative.
		for i := 0; i < width-wallThickness; i += rippleSpacing {
			offset := rippleAmplitude * math.Sin(float64(i)*ripplePhaseStep)
			dc.DrawCircle(fx+wallThickness+float64(i), waterY+offset, rippleAmplitude)
		}
		dc.Fill()
	}

	if showMeasurements {
		dc.SetColor(tickColor)
		dc.SetLineWidth(1)
		for i := 0; i <= tickIntervals; i++ {
			markY := fy + fh - float64(i*height/tickIntervals)
			length := float64(tickShort)
			if i%2 == 0 {
				length = tickLong
			}
			dc.DrawLine(fx-length, markY, fx, markY)
		}
		dc.Stroke()
	}

	if label != "" {
		dc.SetFontFace(r.fonts.label)
		dc.SetColor(labelColor)
		dc.DrawStringAnchored(label, fx+(fw+wallThickness)/2, fy+fh+24, 0.5, 0.5)
	}
}

// drawTransferArrow draws the pour-direction arrow between the containers in
// the initial scene.
func (r *Renderer) drawTransferArrow(dc *gg.Context, state PhysicalState, lay sceneLayout) {
	arrowY := float64(lay.topY + state.SourceHeight/2)
	startX := float64(lay.sourceX + state.SourceWidth + 20)
	endX := float64(lay.targetX - 15)

	dc.SetColor(arrowColor)
	dc.SetLineWidth(3)
	dc.DrawLine(startX, arrowY, endX, arrowY)
	dc.Stroke()

	dc.MoveTo(endX, arrowY)
	dc.LineTo(endX-10, arrowY-7)
	dc.LineTo(endX-10, arrowY+7)
	dc.ClosePath()
	dc.Fill()
}

// drawLevelIndicator draws an arrow and a numeric readout pointing at the
// target container's waterline in the final scene.
func (r *Renderer) drawLevelIndicator(dc *gg.Context, x, y, width, height, waterHeight int) {
	waterY := float64(y + height - waterHeight)
	arrowX := float64(x + width + 30)

	dc.SetColor(r.cfg.MeasurementColor)
	dc.SetLineWidth(2)
	dc.DrawLine(arrowX, waterY, arrowX+30, waterY)
	dc.Stroke()

	dc.MoveTo(arrowX, waterY)
	dc.LineTo(arrowX+8, waterY-5)
	dc.LineTo(arrowX+8, waterY+5)
	dc.ClosePath()
	dc.Fill()

	dc.SetFontFace(r.fonts.readout)
	dc.DrawStringAnchored(fmt.Sprintf("%dpx", waterHeight), arrowX+35, waterY, 0, 0.4)
}

// drawStream draws the transient pouring stream: a trail of dots on a
// sinusoidally bowed path from the source's waterline down into the target's
// rising column.
func (r *Renderer) drawStream(dc *gg.Context, state PhysicalState, lay sceneLayout, sourceWater, targetWater int) {
	startX := float64(lay.sourceX + state.SourceWidth + 10)
	endX := float64(lay.targetX - 5)
	startY := float64(lay.topY + state.SourceHeight - sourceWater)
	endY := float64(lay.topY + state.TargetHeight - targetWater)

	dc.SetColor(r.cfg.WaterColor)
	for i := 0; i < streamDots; i++ {
		t := float64(i) / float64(streamDots-1)
		x := startX + (endX-startX)*t
		y := startY + (endY-startY)*t + streamBow*math.Sin(t*math.Pi)
		dc.DrawCircle(x, y, 4)
	}
	dc.Fill()
}
