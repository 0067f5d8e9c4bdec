// Command ethsig hashes, signs, recovers and verifies Ethereum-style
// secp256k1 signatures.
package main

func main() {
	Execute()
}
