package aquatask

import (
	"context"
	"fmt"
	"image"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/semaphore"
)

// TaskPair is one complete benchmark instance: the instruction, the rendered
// end states, and optionally a ground-truth animation of the transfer.
type TaskPair struct {
	TaskID string
	Domain string
	Prompt string

	FirstImage *image.RGBA
	FinalImage *image.RGBA

	// GroundTruthVideo is the path of the encoded animation. Empty when
	// video generation is disabled or no encoding backend is available.
	GroundTruthVideo string

	// State is the physical configuration the images were rendered from,
	// kept for dataset metadata.
	State PhysicalState
}

// Generator assembles complete task pairs: it sequences sampling, the two end
// renders, the optional animation, and prompt selection. Failures are fatal
// for the task and propagate to the caller; there are no retries, since every
// stage is deterministic given its inputs.
type Generator struct {
	cfg      Config
	renderer *Renderer
	animator *Animator
	encoder  Encoder // nil when video generation is off or unavailable

	baseSeed uint64
	videoDir string
}

// NewGenerator validates the configuration and builds a generator. When video
// generation is enabled but the selected encoder's backend is unavailable,
// the generator still succeeds and produces tasks without animations.
func NewGenerator(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	renderer, err := NewRenderer(cfg)
	if err != nil {
		return nil, err
	}

	var encoder Encoder
	if cfg.GenerateVideos {
		enc, err := NewEncoder(cfg.Format)
		if err != nil {
			return nil, err
		}
		if enc.Available() {
			encoder = enc
		}
	}

	baseSeed := cfg.Seed
	if !cfg.SeedSet {
		baseSeed = rand.Uint64()
	}

	return &Generator{
		cfg:      cfg,
		renderer: renderer,
		animator: NewAnimator(cfg, renderer),
		encoder:  encoder,
		baseSeed: baseSeed,
		videoDir: filepath.Join(os.TempDir(), cfg.Domain+"_videos"),
	}, nil
}

// BaseSeed returns the seed this run derives every task's random source from.
func (g *Generator) BaseSeed() uint64 { return g.baseSeed }

// VideoEnabled reports whether tasks will carry ground-truth animations.
func (g *Generator) VideoEnabled() bool { return g.encoder != nil }

// taskRNG derives the random source for one task from the base seed and the
// task index. The derivation is what makes dataset generation reproducible
// under any worker count: task i sees the same stream no matter when or
// where it runs.
func (g *Generator) taskRNG(index int) *rand.Rand {
	return rand.New(rand.NewPCG(g.baseSeed, uint64(index)))
}

// SampleState draws the physical state for the given task index without
// rendering anything.
func (g *Generator) SampleState(index int) (PhysicalState, error) {
	return NewSampler(g.cfg, g.taskRNG(index)).Sample()
}

// BuildTask generates the complete task pair for one (taskID, index). The
// index selects the task's random stream; the ID only names the output.
func (g *Generator) BuildTask(taskID string, index int) (*TaskPair, error) {
	rng := g.taskRNG(index)

	state, err := NewSampler(g.cfg, rng).Sample()
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", taskID, err)
	}

	first, err := g.renderer.RenderInitial(state)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", taskID, err)
	}
	final, err := g.renderer.RenderFinal(state)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", taskID, err)
	}

	videoPath := ""
	if g.encoder != nil {
		videoPath, err = g.encodeAnimation(taskID, state, first, final)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", taskID, err)
		}
	}

	return &TaskPair{
		TaskID:           taskID,
		Domain:           g.cfg.Domain,
		Prompt:           NewPromptProvider(rng).Prompt("default"),
		FirstImage:       first,
		FinalImage:       final,
		GroundTruthVideo: videoPath,
		State:            state,
	}, nil
}

// encodeAnimation renders the transfer frames and encodes them into the
// run's temporary video directory. A partially written file is removed on
// the failure path.
func (g *Generator) encodeAnimation(taskID string, state PhysicalState, first, final *image.RGBA) (string, error) {
	frames, err := g.animator.Frames(state, first, final)
	if err != nil {
		return "", err
	}
	path := filepath.Join(g.videoDir, taskID+"_ground_truth"+g.encoder.Extension())
	if err := g.encoder.Encode(frames, g.cfg.VideoFPS, path); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// GenerateDataset builds n task pairs, at most Config.Workers at a time.
// Task IDs are "<domain>_<index>" with a zero-padded index. The first task
// failure aborts the run; already-running tasks finish first so their
// temporary resources are released.
func (g *Generator) GenerateDataset(ctx context.Context, n int) ([]*TaskPair, error) {
	if n <= 0 {
		return nil, fmt.Errorf("generate: task count %d must be positive", n)
	}

	workers := g.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	tasks := make([]*TaskPair, n)
	sem := semaphore.NewWeighted(int64(workers))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	for i := 0; i < n; i++ {
		if failed() {
			break
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			fail(err)
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)

			taskID := fmt.Sprintf("%s_%04d", g.cfg.Domain, i)
			pair, err := g.BuildTask(taskID, i)
			if err != nil {
				fail(err)
				return
			}
			tasks[i] = pair
		}(i)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return tasks, nil
}
