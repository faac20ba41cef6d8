package aquatask

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DatasetWriter persists generated task pairs to a directory layout:
//
//	<root>/<domain>_task/<task_id>/first.png
//	<root>/<domain>_task/<task_id>/final.png
//	<root>/<domain>_task/<task_id>/ground_truth.<ext>   (when present)
//	<root>/<domain>_task/<task_id>/metadata.json
//	<root>/<domain>_task/manifest.json
type DatasetWriter struct {
	root string
}

// NewDatasetWriter creates a writer rooted at the given output directory.
func NewDatasetWriter(root string) *DatasetWriter {
	return &DatasetWriter{root: root}
}

// taskMetadata is the on-disk record for a single task.
type taskMetadata struct {
	TaskID            string `json:"task_id"`
	Domain            string `json:"domain"`
	Prompt            string `json:"prompt"`
	SourceWidth       int    `json:"source_width"`
	SourceHeight      int    `json:"source_height"`
	SourceWaterHeight int    `json:"source_water_height"`
	TargetWidth       int    `json:"target_width"`
	TargetHeight      int    `json:"target_height"`
	TargetWaterHeight int    `json:"target_water_height"`
	WaterVolume       int    `json:"water_volume"`
	GroundTruthVideo  string `json:"ground_truth_video,omitempty"`
}

// runManifest is the on-disk record for a whole generation run.
type runManifest struct {
	RunID       string         `json:"run_id"`
	Domain      string         `json:"domain"`
	GeneratedAt string         `json:"generated_at"`
	Seed        uint64         `json:"seed"`
	TaskCount   int            `json:"task_count"`
	Summary     DatasetSummary `json:"summary"`
}

// WriteDataset persists every task and a run-level manifest, returning the
// dataset directory. Ground-truth videos are moved out of their temporary
// location into the task directory.
func (w *DatasetWriter) WriteDataset(tasks []*TaskPair, cfg Config, baseSeed uint64) (string, error) {
	dir := filepath.Join(w.root, cfg.Domain+"_task")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("write dataset: %w", err)
	}

	for _, task := range tasks {
		if err := w.writeTask(dir, task); err != nil {
			return "", fmt.Errorf("write dataset: %w", err)
		}
	}

	summary, err := Summarize(tasks)
	if err != nil {
		return "", fmt.Errorf("write dataset: %w", err)
	}
	manifest := runManifest{
		RunID:       uuid.NewString(),
		Domain:      cfg.Domain,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Seed:        baseSeed,
		TaskCount:   len(tasks),
		Summary:     summary,
	}
	if err := writeJSON(filepath.Join(dir, "manifest.json"), manifest); err != nil {
		return "", fmt.Errorf("write dataset: %w", err)
	}
	return dir, nil
}

func (w *DatasetWriter) writeTask(dir string, task *TaskPair) error {
	taskDir := filepath.Join(dir, task.TaskID)
	if err := os.MkdirAll(taskDir, 0o755); err != nil {
		return err
	}

	if err := writePNG(filepath.Join(taskDir, "first.png"), task.FirstImage); err != nil {
		return err
	}
	if err := writePNG(filepath.Join(taskDir, "final.png"), task.FinalImage); err != nil {
		return err
	}

	meta := taskMetadata{
		TaskID:            task.TaskID,
		Domain:            task.Domain,
		Prompt:            task.Prompt,
		SourceWidth:       task.State.SourceWidth,
		SourceHeight:      task.State.SourceHeight,
		SourceWaterHeight: task.State.SourceWaterHeight,
		TargetWidth:       task.State.TargetWidth,
		TargetHeight:      task.State.TargetHeight,
		TargetWaterHeight: task.State.TargetWaterHeight,
		WaterVolume:       task.State.WaterVolume,
	}
	if task.GroundTruthVideo != "" {
		name := "ground_truth" + filepath.Ext(task.GroundTruthVideo)
		if err := moveFile(task.GroundTruthVideo, filepath.Join(taskDir, name)); err != nil {
			return err
		}
		meta.GroundTruthVideo = name
	}
	return writeJSON(filepath.Join(taskDir, "metadata.json"), meta)
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}

// moveFile renames src to dst, falling back to copy-and-remove when the two
// paths are on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("move %s: %w", src, err)
	}
	out, err := os.Create(dst)
	if err != nil {
		in.Close()
		return fmt.Errorf("move %s: %w", src, err)
	}
	_, err = io.Copy(out, in)
	in.Close()
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("move %s: %w", src, err)
	}
	return os.Remove(src)
}
