package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// GlobalFlags holds flags shared by every subcommand.
type GlobalFlags struct {
	Verbose   bool   // Debug level logging
	LogFormat string // console or json
}

var (
	globalFlags GlobalFlags
	logger      = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "ethsig",
	Short: "Ethereum-style secp256k1 signature tool",
	Long: `ethsig works with recoverable secp256k1 signatures as used by Ethereum.

It can:
  - hash data with Keccak-256
  - derive the 64-byte public key and address of a secret
  - sign a digest and recover the signer of a signature
  - verify files of signature vectors in parallel
  - encode ASN.1 object identifiers and decode length prefixes`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(globalFlags)
		if err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globalFlags.LogFormat, "log-format", "console", "log encoding: console|json")

	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(commonizeCmd)
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(recoverCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(oidCmd)
	rootCmd.AddCommand(lengthCmd)
}

// newLogger builds a stderr logger from the global flags.
func newLogger(flags GlobalFlags) (*zap.Logger, error) {
	var config zap.Config
	if flags.Verbose {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
		config.Sampling = nil
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	switch flags.LogFormat {
	case "console", "json":
		config.Encoding = flags.LogFormat
	default:
		return nil, errors.Errorf("unknown log format %q", flags.LogFormat)
	}
	return config.Build()
}
