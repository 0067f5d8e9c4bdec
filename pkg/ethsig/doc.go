// Package ethsig provides the primitive cryptographic operations behind
// Ethereum-style signing and addressing: Keccak-256 hashing, deterministic
// recoverable secp256k1 signatures in canonical low-S form, public key
// recovery, and two encoding helpers used by certificate and handshake code
// (DER object identifiers and a variable-length size field).
//
// The binary layouts are fixed by other implementations and must not drift:
//   - digests are 32 bytes of legacy Keccak-256 (not SHA3-256);
//   - public keys are 64 bytes, the uncompressed point without its 0x04 marker;
//   - packed signatures are 65 bytes r || s || v with s <= n/2 and v in {27, 28}.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/ethsig/pkg/ethsig"
//
//	secret, err := ethsig.SecretFromHex("0x4c0883a6...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	digest := ethsig.HashString("hello")
//	sig, err := ethsig.Sign(secret, digest)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	signer, err := ethsig.Recover(digest, sig)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(signer.Address().Hex())
//
// # Batch Verification
//
// Signature vectors can be loaded from JSON or CSV and checked in parallel:
//
//	client := ethsig.NewClient().
//	    WithLogger(logger).
//	    WithBatchConfig(ethsig.BatchConfig{NumWorkers: 8})
//
//	results, err := client.VerifyFile(ctx, "vectors.json")
//
// # Errors
//
// Every operation returns an error instead of panicking. Errors wrap one of
// the exported sentinels and can be checked with errors.Is. The only panic is
// a failure to seed the random generator from the operating system.
package ethsig
