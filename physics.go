package aquatask

import (
	"fmt"
	"math/rand/v2"
)

// PhysicalState is the sampled geometric configuration for one task: two
// container cross-sections and the water heights before and after the
// transfer. Values are in scene pixels; widths double as cross-sectional
// areas per unit height because container depth is uniform and implicit.
//
// A PhysicalState is immutable once constructed. It always satisfies
//
//	SourceWidth * SourceWaterHeight == TargetWidth * TargetWaterHeight
//
// within one unit of height (integer truncation), and neither water column
// exceeds its container.
type PhysicalState struct {
	SourceWidth       int
	SourceHeight      int
	SourceWaterHeight int

	TargetWidth       int
	TargetHeight      int
	TargetWaterHeight int

	// WaterVolume is the conserved 2D volume proxy (width x water height).
	WaterVolume int
}

// SourceFillRatio returns the fraction of the source container occupied by
// water before the transfer.
func (s PhysicalState) SourceFillRatio() float64 {
	return float64(s.SourceWaterHeight) / float64(s.SourceHeight)
}

// Sampler draws volume-conserving physical states from a configuration and an
// explicit random source. The source is never shared implicitly: callers
// create one per run or per task depending on the reproducibility scheme.
type Sampler struct {
	cfg Config
	rng *rand.Rand
}

// NewSampler creates a sampler. The configuration must already be validated.
func NewSampler(cfg Config, rng *rand.Rand) *Sampler {
	return &Sampler{cfg: cfg, rng: rng}
}

// intIn returns a uniform integer in [min, max], inclusive.
func (s *Sampler) intIn(min, max int) int {
	return min + s.rng.IntN(max-min+1)
}

// Sample draws one physical state.
//
// The source width, target width, and source fill ratio are sampled
// uniformly; the target water height follows from volume conservation. When
// the conserved volume would overflow the target container, the target height
// is clamped to the wall height and the source water height is re-derived
// from the clamped volume, which becomes authoritative. Water heights
// truncate toward zero (floor), so conservation holds within one unit of
// height rather than exactly.
func (s *Sampler) Sample() (PhysicalState, error) {
	cfg := s.cfg

	sourceWidth := s.intIn(cfg.MinContainerWidth, cfg.MaxContainerWidth)

	// Rejection-sample the target width until the pair is visually
	// distinguishable. Validate guarantees a conforming pair exists, so the
	// bound is only hit by a pathological random source.
	maxAttempts := 4 * (cfg.MaxContainerWidth - cfg.MinContainerWidth + 1)
	if maxAttempts < 32 {
		maxAttempts = 32
	}
	targetWidth := -1
	for i := 0; i < maxAttempts; i++ {
		w := s.intIn(cfg.MinContainerWidth, cfg.MaxContainerWidth)
		if abs(w-sourceWidth) >= cfg.MinWidthSeparation {
			targetWidth = w
			break
		}
	}
	if targetWidth < 0 {
		return PhysicalState{}, fmt.Errorf("sample: no target width at least %d from %d found in %d draws; width range [%d, %d] is too narrow",
			cfg.MinWidthSeparation, sourceWidth, maxAttempts, cfg.MinContainerWidth, cfg.MaxContainerWidth)
	}

	fill := cfg.MinFillRatio + s.rng.Float64()*(cfg.MaxFillRatio-cfg.MinFillRatio)
	sourceWaterHeight := int(float64(cfg.ContainerHeight) * fill)

	return derive(cfg.ContainerHeight, sourceWidth, targetWidth, sourceWaterHeight), nil
}

// derive completes a physical state from sampled widths and the provisional
// source water height, enforcing conservation and the no-overflow clamp.
//
// Heights truncate toward zero throughout. Rounding to nearest would tighten
// the conservation discrepancy but change the declared tolerance bound, so
// floor semantics are kept deliberately.
func derive(containerHeight, sourceWidth, targetWidth, sourceWaterHeight int) PhysicalState {
	// Provisional state under exact conservation.
	volume := sourceWidth * sourceWaterHeight
	targetWaterHeight := float64(volume) / float64(targetWidth)

	// Overflow: clamp the target column and re-derive the rest from the
	// clamped volume, which becomes authoritative. The provisional source
	// height is discarded.
	if targetWaterHeight > float64(containerHeight) {
		targetWaterHeight = float64(containerHeight)
		volume = targetWidth * containerHeight
		sourceWaterHeight = volume / sourceWidth
	}

	return PhysicalState{
		SourceWidth:       sourceWidth,
		SourceHeight:      containerHeight,
		SourceWaterHeight: sourceWaterHeight,
		TargetWidth:       targetWidth,
		TargetHeight:      containerHeight,
		TargetWaterHeight: int(targetWaterHeight),
		WaterVolume:       volume,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
