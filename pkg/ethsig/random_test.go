package ethsig

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandom(t *testing.T) {
	a := make([]byte, 32)
	b := make([]byte, 32)
	Random(a)
	Random(b)

	assert.NotEqual(t, make([]byte, 32), a, "buffer should be filled")
	assert.NotEqual(t, a, b, "consecutive calls should differ")

	// Zero-length buffers are allowed.
	Random(nil)
}

func TestRandom_Concurrent(t *testing.T) {
	const workers = 16

	var wg sync.WaitGroup
	outputs := make([][]byte, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outputs[i] = make([]byte, 64)
			Random(outputs[i])
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, workers)
	for _, out := range outputs {
		assert.False(t, seen[string(out)], "duplicate output from concurrent calls")
		seen[string(out)] = true
	}
}
