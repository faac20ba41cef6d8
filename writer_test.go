package aquatask

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteDatasetLayout(t *testing.T) {
	cfg := noVideoConfig()
	gen, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("generator: %v", err)
	}
	tasks, err := gen.GenerateDataset(context.Background(), 2)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	root := t.TempDir()
	dir, err := NewDatasetWriter(root).WriteDataset(tasks, cfg, gen.BaseSeed())
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if dir != filepath.Join(root, "water_level_task") {
		t.Errorf("dataset dir = %q", dir)
	}

	for _, task := range tasks {
		taskDir := filepath.Join(dir, task.TaskID)
		for _, name := range []string{"first.png", "final.png", "metadata.json"} {
			if _, err := os.Stat(filepath.Join(taskDir, name)); err != nil {
				t.Errorf("missing %s for %s: %v", name, task.TaskID, err)
			}
		}

		data, err := os.ReadFile(filepath.Join(taskDir, "metadata.json"))
		if err != nil {
			t.Fatalf("read metadata: %v", err)
		}
		var meta taskMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			t.Fatalf("unmarshal metadata: %v", err)
		}
		if meta.TaskID != task.TaskID || meta.Domain != "water_level" {
			t.Errorf("metadata header %+v does not match task %s", meta, task.TaskID)
		}
		if meta.SourceWidth != task.State.SourceWidth || meta.TargetWaterHeight != task.State.TargetWaterHeight {
			t.Errorf("metadata geometry %+v does not match state %+v", meta, task.State)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var manifest runManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}
	if manifest.RunID == "" {
		t.Error("manifest has no run id")
	}
	if manifest.Seed != gen.BaseSeed() {
		t.Errorf("manifest seed = %d, want %d", manifest.Seed, gen.BaseSeed())
	}
	if manifest.TaskCount != 2 {
		t.Errorf("manifest task count = %d, want 2", manifest.TaskCount)
	}
}

func TestWriteDatasetMovesVideo(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed, cfg.SeedSet = 7, true
	cfg.Format = VideoGIF
	cfg.HoldFrames = 1
	cfg.TransitionFrames = 4

	gen, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("generator: %v", err)
	}
	if !gen.VideoEnabled() {
		t.Fatal("gif encoding should always be available")
	}

	tasks, err := gen.GenerateDataset(context.Background(), 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	tempVideo := tasks[0].GroundTruthVideo
	if tempVideo == "" {
		t.Fatal("task has no ground-truth video")
	}

	dir, err := NewDatasetWriter(t.TempDir()).WriteDataset(tasks, cfg, gen.BaseSeed())
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	moved := filepath.Join(dir, tasks[0].TaskID, "ground_truth.gif")
	if _, err := os.Stat(moved); err != nil {
		t.Errorf("video not moved into dataset: %v", err)
	}
	if _, err := os.Stat(tempVideo); !os.IsNotExist(err) {
		t.Errorf("temporary video %s still exists", tempVideo)
	}
}

func TestSummarize(t *testing.T) {
	tasks := []*TaskPair{
		{State: derive(200, 100, 60, 100)},
		{State: derive(200, 150, 60, 160), GroundTruthVideo: "v.gif"},
	}

	summary, err := Summarize(tasks)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.SourceWidth.Min != 100 || summary.SourceWidth.Max != 150 {
		t.Errorf("source width range [%g, %g], want [100, 150]", summary.SourceWidth.Min, summary.SourceWidth.Max)
	}
	if summary.SourceWidth.Mean != 125 {
		t.Errorf("source width mean = %g, want 125", summary.SourceWidth.Mean)
	}
	if summary.TargetWaterHeight.Max != 200 {
		t.Errorf("target water max = %g, want 200 (clamped case)", summary.TargetWaterHeight.Max)
	}
	if summary.VideosEncoded != 1 {
		t.Errorf("videos encoded = %d, want 1", summary.VideosEncoded)
	}

	if _, err := Summarize(nil); err == nil {
		t.Error("expected error for empty dataset")
	}
}
