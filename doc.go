// Package aquatask synthesizes labeled water-level prediction tasks for
// physical-reasoning benchmarks.
//
// Each task shows water in a source container and asks what level it will
// reach when poured into a differently shaped target container. A task is a
// (prompt, initial image, final image, optional ground-truth animation)
// tuple, produced deterministically from a sampled physical configuration.
//
// # Quick start
//
// The simplest way to generate a dataset is [Generator.GenerateDataset]:
//
//	cfg := aquatask.DefaultConfig()
//	cfg.Seed, cfg.SeedSet = 42, true
//
//	gen, err := aquatask.NewGenerator(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	tasks, err := gen.GenerateDataset(context.Background(), 100)
//
// For a single task, use [Generator.BuildTask] with an explicit task index;
// the index seeds the task's random source, so the same (seed, index) pair
// always reproduces the same physical state.
//
// # Pipeline
//
// Generation runs in four stages. A [Sampler] draws container widths and a
// fill ratio and derives volume-conserving water heights for both containers.
// A [Renderer] composes each physical state into a raster scene: containers,
// water with a rippled surface, measurement graduations, labels, and either a
// transfer arrow with a placeholder glyph (initial scene) or a level
// indicator (final scene). An [Animator] interpolates between the two states
// with an ease-out curve and renders every intermediate frame. An [Encoder]
// turns the frame sequence into a video file; when no encoding backend is
// available the animation stage is skipped and the task is still valid.
//
// Rendering is pure CPU rasterization with embedded fonts, so the same
// physical state and configuration always produce byte-identical images.
package aquatask
