package aquatask

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Distribution describes one sampled quantity across a dataset.
type Distribution struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// DatasetSummary aggregates the physical quantities of a generated dataset.
// It is written into the run manifest so a dataset's sampling balance can be
// inspected without re-reading every task.
type DatasetSummary struct {
	SourceWidth       Distribution `json:"source_width"`
	TargetWidth       Distribution `json:"target_width"`
	TargetWaterHeight Distribution `json:"target_water_height"`
	SourceFillRatio   Distribution `json:"source_fill_ratio"`
	VideosEncoded     int          `json:"videos_encoded"`
}

// Summarize computes distribution statistics over the tasks' physical states.
func Summarize(tasks []*TaskPair) (DatasetSummary, error) {
	if len(tasks) == 0 {
		return DatasetSummary{}, fmt.Errorf("summarize: no tasks")
	}

	sourceWidths := make([]float64, len(tasks))
	targetWidths := make([]float64, len(tasks))
	targetHeights := make([]float64, len(tasks))
	fillRatios := make([]float64, len(tasks))
	videos := 0
	for i, t := range tasks {
		sourceWidths[i] = float64(t.State.SourceWidth)
		targetWidths[i] = float64(t.State.TargetWidth)
		targetHeights[i] = float64(t.State.TargetWaterHeight)
		fillRatios[i] = t.State.SourceFillRatio()
		if t.GroundTruthVideo != "" {
			videos++
		}
	}

	var summary DatasetSummary
	var err error
	if summary.SourceWidth, err = distributionOf(sourceWidths); err != nil {
		return DatasetSummary{}, err
	}
	if summary.TargetWidth, err = distributionOf(targetWidths); err != nil {
		return DatasetSummary{}, err
	}
	if summary.TargetWaterHeight, err = distributionOf(targetHeights); err != nil {
		return DatasetSummary{}, err
	}
	if summary.SourceFillRatio, err = distributionOf(fillRatios); err != nil {
		return DatasetSummary{}, err
	}
	summary.VideosEncoded = videos
	return summary, nil
}

func distributionOf(data []float64) (Distribution, error) {
	mean, err := stats.Mean(data)
	if err != nil {
		return Distribution{}, fmt.Errorf("summarize: %w", err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return Distribution{}, fmt.Errorf("summarize: %w", err)
	}
	min, err := stats.Min(data)
	if err != nil {
		return Distribution{}, fmt.Errorf("summarize: %w", err)
	}
	max, err := stats.Max(data)
	if err != nil {
		return Distribution{}, fmt.Errorf("summarize: %w", err)
	}
	return Distribution{Mean: mean, Median: median, Min: min, Max: max}, nil
}
