package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/cryptobyte"

	"github.com/mahdiidarabi/ethsig/pkg/ethsig"
)

var oidNID int

var oidCmd = &cobra.Command{
	Use:   "oid [long-name]",
	Short: "DER encoding of a registered object identifier",
	Long: `Print the DER encoding of an object identifier, selected by long name or
by numeric identifier.

Examples:
  ethsig oid secp256k1
  ethsig oid --nid 714`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			encoded []byte
			err     error
		)
		switch {
		case len(args) == 1 && oidNID != 0:
			return errors.New("give either a long name or --nid, not both")
		case len(args) == 1:
			encoded, err = ethsig.ObjectByName(args[0])
		case oidNID != 0:
			encoded, err = ethsig.Object(oidNID)
		default:
			return errors.New("a long name or --nid is required")
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(encoded))
		return nil
	},
}

var lengthCmd = &cobra.Command{
	Use:   "length <hex>",
	Short: "Decode the length prefixes in a hex byte string",
	Long: `Decode consecutive length prefixes from a 0x-prefixed byte string and print
one value per line. Bytes below 0xc0 are lengths on their own; a byte
b >= 0xc0 is followed by b-0xc0 big-endian length bytes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := hexutil.Decode(args[0])
		if err != nil {
			return errors.Wrap(err, "failed to decode input")
		}

		cursor := cryptobyte.String(data)
		out := cmd.OutOrStdout()
		for !cursor.Empty() {
			value, err := ethsig.Length(&cursor)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, value)
		}
		return nil
	},
}

func init() {
	oidCmd.Flags().IntVar(&oidNID, "nid", 0, "numeric identifier of the object")
}
