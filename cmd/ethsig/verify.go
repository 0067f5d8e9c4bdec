package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mahdiidarabi/ethsig/pkg/ethsig"
)

var (
	verifyFormat        string
	verifyWorkers       int
	verifyStopOnFailure bool
	verifyProgress      int64
	verifyAll           bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Verify a file of signature vectors",
	Long: `Recover the signer of every vector in a JSON or CSV file and compare it
with the vector's expected address or public key.

Examples:
  ethsig verify vectors.json
  ethsig verify --format csv --workers 8 vectors.csv
  ethsig verify --stop-on-failure --all vectors.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var parser ethsig.SignatureParser
		switch strings.ToLower(verifyFormat) {
		case "json":
			parser = &ethsig.JSONParser{}
		case "csv":
			parser = &ethsig.CSVParser{}
		default:
			return errors.Errorf("unknown format %q (expected json or csv)", verifyFormat)
		}

		config := ethsig.DefaultBatchConfig()
		config.NumWorkers = verifyWorkers
		config.StopOnFailure = verifyStopOnFailure
		config.ProgressInterval = verifyProgress

		client := ethsig.NewClient().
			WithParser(parser).
			WithLogger(logger).
			WithBatchConfig(config)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		results, runErr := client.VerifyFile(ctx, args[0])
		if results == nil {
			return runErr
		}

		out := cmd.OutOrStdout()
		for _, r := range results {
			switch {
			case errors.Is(r.Err, ethsig.ErrBatchStopped):
			case r.Err != nil:
				fmt.Fprintf(out, "[-] #%d: %v\n", r.Index, r.Err)
			case r.Verified:
				if verifyAll {
					fmt.Fprintf(out, "[+] #%d: %s\n", r.Index, r.Address.Hex())
				}
			default:
				fmt.Fprintf(out, "[?] #%d: recovered %s, nothing to compare\n", r.Index, r.Address.Hex())
			}
		}

		verified, unchecked, failed := ethsig.Summarize(results)
		fmt.Fprintf(out, "\nverified: %d  unchecked: %d  failed: %d  total: %d\n",
			verified, unchecked, failed, len(results))
		logger.Debug("verify finished",
			zap.String("file", args[0]),
			zap.Int("failed", failed))

		if runErr != nil {
			return runErr
		}
		if failed > 0 {
			return errors.Errorf("%d of %d vectors failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVarP(&verifyFormat, "format", "f", "json", "vector file format: json|csv")
	verifyCmd.Flags().IntVarP(&verifyWorkers, "workers", "w", 0, "number of parallel workers (0 = number of CPUs)")
	verifyCmd.Flags().BoolVar(&verifyStopOnFailure, "stop-on-failure", false, "stop at the first failing vector")
	verifyCmd.Flags().Int64Var(&verifyProgress, "progress", 1000, "log progress every N vectors (0 disables)")
	verifyCmd.Flags().BoolVar(&verifyAll, "all", false, "print verified vectors too")
}
