package ethsig

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// BatchVerifier recovers the signers of many vectors on a pool of workers.
type BatchVerifier struct {
	Config BatchConfig
	logger *zap.Logger
}

// NewBatchVerifier creates a verifier with default settings and no logging.
func NewBatchVerifier() *BatchVerifier {
	return &BatchVerifier{
		Config: DefaultBatchConfig(),
		logger: zap.NewNop(),
	}
}

// WithConfig sets the batch configuration.
func (b *BatchVerifier) WithConfig(config BatchConfig) *BatchVerifier {
	b.Config = config
	return b
}

// WithLogger sets the logger used for progress and failures.
func (b *BatchVerifier) WithLogger(logger *zap.Logger) *BatchVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	b.logger = logger
	return b
}

// Run recovers the signer of every vector and checks it against the vector's
// expectation. Results are returned in input order. Run returns the context
// error if it was cancelled before all vectors were processed; in that case
// unprocessed entries carry the same error. With StopOnFailure, Run returns
// the first failing vector's error and unprocessed entries carry
// ErrBatchStopped.
func (b *BatchVerifier) Run(ctx context.Context, vectors []*SignatureVector) ([]BatchResult, error) {
	results := make([]BatchResult, len(vectors))
	if len(vectors) == 0 {
		return results, nil
	}
	if err := ctx.Err(); err != nil {
		for i := range results {
			results[i] = BatchResult{Index: i, Err: err}
		}
		return results, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	numWorkers := b.Config.workers()
	if numWorkers > len(vectors) {
		numWorkers = len(vectors)
	}

	var (
		processed int64
		failed    int64
		done      = make([]bool, len(vectors))
		stopOnce  sync.Once
		stopErr   error
	)
	workChan := make(chan int, numWorkers*4)

	b.logger.Debug("starting batch verification",
		zap.Int("vectors", len(vectors)),
		zap.Int("workers", numWorkers))

	// Generate work
	go func() {
		defer close(workChan)
		for i := range vectors {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-workChan:
					if !ok || ctx.Err() != nil {
						return
					}
					results[i] = verifyVector(i, vectors[i])
					done[i] = true

					if results[i].Err != nil {
						atomic.AddInt64(&failed, 1)
						b.logger.Warn("vector failed",
							zap.Int("index", i),
							zap.Stringer("digest", vectors[i].Digest),
							zap.Error(results[i].Err))
						if b.Config.StopOnFailure {
							stopOnce.Do(func() {
								stopErr = errors.Wrapf(results[i].Err, "vector %d", i)
							})
							cancel()
						}
					}

					n := atomic.AddInt64(&processed, 1)
					if b.Config.ProgressInterval > 0 && n%b.Config.ProgressInterval == 0 {
						b.logger.Info("batch progress",
							zap.Int64("processed", n),
							zap.Int("total", len(vectors)))
					}
				}
			}
		}()
	}
	wg.Wait()

	b.logger.Info("batch verification finished",
		zap.Int64("processed", atomic.LoadInt64(&processed)),
		zap.Int64("failed", atomic.LoadInt64(&failed)),
		zap.Int("total", len(vectors)))

	if stopErr != nil {
		for i := range results {
			if !done[i] {
				results[i] = BatchResult{Index: i, Err: ErrBatchStopped}
			}
		}
		return results, stopErr
	}
	if atomic.LoadInt64(&processed) == int64(len(vectors)) {
		return results, nil
	}

	err := ctx.Err()
	if err == nil {
		err = context.Canceled
	}
	for i := range results {
		if !done[i] {
			results[i] = BatchResult{Index: i, Err: err}
		}
	}
	return results, err
}

// verifyVector recovers the signer of one vector and checks it against the
// vector's expectation, if any.
func verifyVector(index int, vector *SignatureVector) BatchResult {
	result := BatchResult{Index: index}

	recovered, err := Recover(vector.Digest, vector.Signature)
	if err != nil {
		result.Err = err
		return result
	}
	result.Common = recovered
	result.Address = recovered.Address()

	if !vector.HasExpectation() {
		// Nothing to compare against; recovery alone is not verification.
		return result
	}
	if vector.Common != nil && *vector.Common != recovered {
		result.Err = errors.Wrapf(ErrSignerMismatch, "recovered %s", recovered.Hex())
		return result
	}
	if vector.Address != nil && *vector.Address != result.Address {
		result.Err = errors.Wrapf(ErrSignerMismatch, "recovered %s, expected %s",
			result.Address.Hex(), vector.Address.Hex())
		return result
	}
	result.Verified = true
	return result
}
