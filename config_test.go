package aquatask

import (
	"strings"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{
			name:    "empty domain",
			mutate:  func(c *Config) { c.Domain = "" },
			wantSub: "domain",
		},
		{
			name:    "zero canvas",
			mutate:  func(c *Config) { c.CanvasWidth = 0 },
			wantSub: "canvas size",
		},
		{
			name:    "zero width container",
			mutate:  func(c *Config) { c.MinContainerWidth = 0 },
			wantSub: "at least 1",
		},
		{
			name:    "inverted width range",
			mutate:  func(c *Config) { c.MinContainerWidth, c.MaxContainerWidth = 100, 80 },
			wantSub: "exceeds max",
		},
		{
			name:    "range narrower than separation",
			mutate:  func(c *Config) { c.MinContainerWidth, c.MaxContainerWidth = 60, 70 },
			wantSub: "separation",
		},
		{
			name:    "inverted fill ratios",
			mutate:  func(c *Config) { c.MinFillRatio, c.MaxFillRatio = 0.8, 0.3 },
			wantSub: "fill ratio",
		},
		{
			name:    "fill ratio above one",
			mutate:  func(c *Config) { c.MaxFillRatio = 1.5 },
			wantSub: "fill ratio",
		},
		{
			name:    "canvas too narrow for containers",
			mutate:  func(c *Config) { c.CanvasWidth = 200 },
			wantSub: "cannot fit",
		},
		{
			name:    "canvas shorter than container",
			mutate:  func(c *Config) { c.CanvasHeight = 100 },
			wantSub: "canvas height",
		},
		{
			name:    "unknown video format",
			mutate:  func(c *Config) { c.Format = "webm" },
			wantSub: "video format",
		},
		{
			name:    "zero fps",
			mutate:  func(c *Config) { c.VideoFPS = 0 },
			wantSub: "fps",
		},
		{
			name:    "single transition frame",
			mutate:  func(c *Config) { c.TransitionFrames = 1 },
			wantSub: "transition frame",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestValidateIgnoresVideoKnobsWhenDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GenerateVideos = false
	cfg.VideoFPS = 0
	cfg.TransitionFrames = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("video knobs should not be checked when videos are off: %v", err)
	}
}
