package ethsig

import "runtime"

// BatchConfig configures parallel signature verification.
type BatchConfig struct {
	// NumWorkers controls parallelization (0 = one per CPU)
	NumWorkers int

	// StopOnFailure cancels the remaining vectors after the first failure
	StopOnFailure bool

	// ProgressInterval logs progress every N vectors (0 = never)
	ProgressInterval int64
}

// DefaultBatchConfig returns a sensible default configuration.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		NumWorkers:       0, // Auto-detect
		StopOnFailure:    false,
		ProgressInterval: 1000,
	}
}

func (c BatchConfig) workers() int {
	if c.NumWorkers > 0 {
		return c.NumWorkers
	}
	return runtime.NumCPU()
}
