package aquatask

import "math/rand/v2"

// promptPool maps a task-type tag to the fixed pool of natural-language
// instructions for that type.
var promptPool = map[string][]string{
	"default": {
		"Pour all water from container A into container B. Show the final water level in B.",
		"Transfer the water from the source container to the target. What will be the water level?",
		"If all water is moved from container A to B, predict and show the resulting water level.",
	},
}

// PromptProvider selects instruction strings from a fixed pool. Selection
// uses the provided random source, so it is deterministic under a seeded run.
type PromptProvider struct {
	rng *rand.Rand
}

// NewPromptProvider creates a provider backed by the given random source.
func NewPromptProvider(rng *rand.Rand) *PromptProvider {
	return &PromptProvider{rng: rng}
}

// Prompt returns one instruction for the task type. Unknown types fall back
// to the default pool.
func (p *PromptProvider) Prompt(taskType string) string {
	pool, ok := promptPool[taskType]
	if !ok {
		pool = promptPool["default"]
	}
	return pool[p.rng.IntN(len(pool))]
}

// Prompts returns the full pool for a task type, falling back to the default
// pool for unknown types.
func Prompts(taskType string) []string {
	pool, ok := promptPool[taskType]
	if !ok {
		pool = promptPool["default"]
	}
	out := make([]string, len(pool))
	copy(out, pool)
	return out
}
