package ethsig

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Client provides a high-level API for verifying signature vectors.
type Client struct {
	verifier *BatchVerifier
	parser   SignatureParser
	logger   *zap.Logger
}

// NewClient creates a new client with default settings.
func NewClient() *Client {
	return &Client{
		verifier: NewBatchVerifier(),
		parser:   &JSONParser{},
		logger:   zap.NewNop(),
	}
}

// WithParser sets a custom vector parser.
func (c *Client) WithParser(parser SignatureParser) *Client {
	c.parser = parser
	return c
}

// WithLogger sets the logger for the client and its batch verifier.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
	c.verifier.WithLogger(logger.Named("batch"))
	return c
}

// WithBatchConfig sets the batch verification configuration.
func (c *Client) WithBatchConfig(config BatchConfig) *Client {
	c.verifier.WithConfig(config)
	return c
}

// VerifyFile loads signature vectors from source and verifies them.
//
// Args:
//   - ctx: Context for cancellation.
//   - source: Path to the vector file (JSON or CSV, depending on the parser).
//
// Returns:
//   - One BatchResult per vector, in file order, or an error if the file
//     cannot be parsed or verification was cancelled.
func (c *Client) VerifyFile(ctx context.Context, source string) ([]BatchResult, error) {
	vectors, err := c.parser.ParseVectors(source)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse vectors")
	}
	c.logger.Debug("loaded signature vectors",
		zap.String("source", source),
		zap.Int("count", len(vectors)))
	return c.VerifySignatures(ctx, vectors)
}

// VerifySignatures verifies in-memory vectors. Use this when the vectors come
// from your own parser or API.
func (c *Client) VerifySignatures(ctx context.Context, vectors []*SignatureVector) ([]BatchResult, error) {
	if len(vectors) == 0 {
		return nil, errors.New("no signature vectors to verify")
	}
	return c.verifier.Run(ctx, vectors)
}

// Summarize counts verified, unchecked (recovered but without an
// expectation) and failed results.
func Summarize(results []BatchResult) (verified, unchecked, failed int) {
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
		case r.Verified:
			verified++
		default:
			unchecked++
		}
	}
	return verified, unchecked, failed
}
