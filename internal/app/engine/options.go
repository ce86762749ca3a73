package engine

import "time"

// Options represents configuration options for the Engine.
type Options struct {
	StepInterval  time.Duration
	DepthInterval time.Duration
	DepthLevels   int
	Steps         int // 0 means run until stopped
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		StepInterval:  100 * time.Millisecond,
		DepthInterval: time.Second,
		DepthLevels:   10,
	}
}
