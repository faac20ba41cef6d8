package aquatask

import (
	"fmt"
	"image"
	"math"

	"github.com/tanema/gween/ease"
)

// Animator turns an initial and a final physical state into a temporally
// coherent frame sequence: the initial image held still, an eased transfer
// with a pouring stream, then the final image held still for twice as long so
// the viewer registers the outcome.
//
// The water heights of the first and last transition frames match the initial
// and final states within one unit of rounding, so the sequence is continuous
// with the held end frames.
type Animator struct {
	cfg      Config
	renderer *Renderer
}

// NewAnimator creates an animator that renders transition frames with the
// given renderer.
func NewAnimator(cfg Config, renderer *Renderer) *Animator {
	return &Animator{cfg: cfg, renderer: renderer}
}

// Frames produces the ordered frame sequence for one task.
//
// first and final must be the same size; a mismatch is rejected rather than
// silently resized (resizing is an explicit opt-in step at encoding time, see
// Encoder).
func (a *Animator) Frames(state PhysicalState, first, final *image.RGBA) ([]*image.RGBA, error) {
	if first == nil || final == nil {
		return nil, fmt.Errorf("animate: both end frames are required")
	}
	if first.Bounds() != final.Bounds() {
		return nil, fmt.Errorf("animate: end frame sizes differ: first %v, final %v", first.Bounds(), final.Bounds())
	}

	n := a.cfg.TransitionFrames
	frames := make([]*image.RGBA, 0, a.cfg.HoldFrames*3+n)

	for i := 0; i < a.cfg.HoldFrames; i++ {
		frames = append(frames, first)
	}

	for i := 0; i < n; i++ {
		p := float32(i) / float32(n-1)
		// Deceleration curve 1-(1-p)^2: the pour starts fast and settles.
		eased := float64(ease.OutQuad(p, 0, 1, 1))

		sourceWater := int(math.Round(float64(state.SourceWaterHeight) * (1 - eased)))
		targetWater := int(math.Round(float64(state.TargetWaterHeight) * eased))

		frame, err := a.renderer.RenderTransition(state, sourceWater, targetWater, eased)
		if err != nil {
			return nil, fmt.Errorf("animate: frame %d: %w", i, err)
		}
		frames = append(frames, frame)
	}

	for i := 0; i < 2*a.cfg.HoldFrames; i++ {
		frames = append(frames, final)
	}
	return frames, nil
}
