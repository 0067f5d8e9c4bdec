package ethsig

import (
	crand "crypto/rand"
	"math/rand/v2"
	"sync"
)

var (
	generatorOnce sync.Once
	generatorMu   sync.Mutex
	generator     *rand.ChaCha8
)

// Random fills buf with output from a process-wide generator. The generator
// is seeded once from the operating system and never reseeded. It is shared
// mutable state, so calls are serialized.
//
// Random panics if the operating system cannot provide the seed.
func Random(buf []byte) {
	generatorOnce.Do(func() {
		var seed [32]byte
		if _, err := crand.Read(seed[:]); err != nil {
			panic("ethsig: cannot seed random generator: " + err.Error())
		}
		generator = rand.NewChaCha8(seed)
	})

	generatorMu.Lock()
	defer generatorMu.Unlock()
	// ChaCha8.Read never returns an error.
	_, _ = generator.Read(buf)
}
