package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mahdiidarabi/ethsig/pkg/ethsig"
)

var (
	hashHex        bool
	commonizeNew   bool
	signDigest     string
	signMessage    string
	recoverDigest  string
	recoverMessage string
)

var hashCmd = &cobra.Command{
	Use:   "hash <data>",
	Short: "Keccak-256 digest of the argument",
	Long: `Print the Keccak-256 digest of the argument.

Examples:
  ethsig hash hello
  ethsig hash --hex 0x68656c6c6f`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data := []byte(args[0])
		if hashHex {
			decoded, err := hexutil.Decode(args[0])
			if err != nil {
				return errors.Wrap(err, "failed to decode input")
			}
			data = decoded
		}
		fmt.Fprintln(cmd.OutOrStdout(), ethsig.Hash(data).Hex())
		return nil
	},
}

var commonizeCmd = &cobra.Command{
	Use:   "commonize [secret]",
	Short: "Derive the public key and address of a secret",
	Long: `Derive the 64-byte public key and the address of a 32-byte hex secret.

With --new a fresh random secret is generated and printed as well.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			secret ethsig.Secret
			err    error
		)
		switch {
		case commonizeNew:
			secret, err = newSecret()
		case len(args) == 1:
			secret, err = ethsig.SecretFromHex(args[0])
		default:
			err = errors.New("a secret or --new is required")
		}
		if err != nil {
			return err
		}

		key, err := ethsig.Commonize(secret)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if commonizeNew {
			fmt.Fprintf(out, "secret:     %s\n", hexutil.Encode(secret[:]))
		}
		fmt.Fprintf(out, "public key: %s\n", key.Hex())
		fmt.Fprintf(out, "address:    %s\n", key.Address().Hex())
		return nil
	},
}

var signCmd = &cobra.Command{
	Use:   "sign <secret>",
	Short: "Sign a digest or message",
	Long: `Produce a deterministic 65-byte r||s||v signature.

Exactly one of --digest (32-byte hex) or --message (hashed with Keccak-256)
must be given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, err := ethsig.SecretFromHex(args[0])
		if err != nil {
			return err
		}
		digest, err := digestFromFlags(signDigest, signMessage)
		if err != nil {
			return err
		}

		sig, err := ethsig.Sign(secret, digest)
		if err != nil {
			return err
		}
		logger.Debug("signed digest",
			zap.Stringer("digest", digest),
			zap.Int("recovery_id", sig.RecoveryID()))
		fmt.Fprintln(cmd.OutOrStdout(), sig.Hex())
		return nil
	},
}

var recoverCmd = &cobra.Command{
	Use:   "recover <signature>",
	Short: "Recover the signer of a signature",
	Long: `Recover the 64-byte public key and address that produced a 65-byte
r||s||v signature over --digest or --message.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sig, err := ethsig.ParseSignatureHex(args[0])
		if err != nil {
			return err
		}
		digest, err := digestFromFlags(recoverDigest, recoverMessage)
		if err != nil {
			return err
		}
		if !sig.IsCanonical() {
			logger.Warn("signature is not in low-s form", zap.Stringer("signature", sig))
		}

		key, err := ethsig.Recover(digest, sig)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "public key: %s\n", key.Hex())
		fmt.Fprintf(out, "address:    %s\n", key.Address().Hex())
		return nil
	},
}

func init() {
	hashCmd.Flags().BoolVar(&hashHex, "hex", false, "treat the argument as 0x-prefixed hex")

	commonizeCmd.Flags().BoolVar(&commonizeNew, "new", false, "generate a random secret")

	signCmd.Flags().StringVar(&signDigest, "digest", "", "32-byte hex digest to sign")
	signCmd.Flags().StringVar(&signMessage, "message", "", "message to hash and sign")

	recoverCmd.Flags().StringVar(&recoverDigest, "digest", "", "32-byte hex digest that was signed")
	recoverCmd.Flags().StringVar(&recoverMessage, "message", "", "message that was hashed and signed")
}

func digestFromFlags(digestHex, message string) (ethsig.Digest, error) {
	switch {
	case digestHex != "" && message != "":
		return ethsig.Digest{}, errors.New("--digest and --message are mutually exclusive")
	case digestHex != "":
		return ethsig.DigestFromHex(digestHex)
	case message != "":
		return ethsig.HashString(message), nil
	default:
		return ethsig.Digest{}, errors.New("one of --digest or --message is required")
	}
}

// newSecret draws secrets until one is a valid scalar.
func newSecret() (ethsig.Secret, error) {
	for i := 0; i < 16; i++ {
		var secret ethsig.Secret
		ethsig.Random(secret[:])
		_, err := ethsig.Commonize(secret)
		if err == nil {
			return secret, nil
		}
		if !errors.Is(err, ethsig.ErrInvalidSecret) {
			return ethsig.Secret{}, err
		}
	}
	return ethsig.Secret{}, errors.New("failed to generate a valid secret")
}
