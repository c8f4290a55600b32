// cryptocli is a small demonstration binary exercising every operation
// in cryptocore's core: Keccak-256, secp256k1 key/sign/recover,
// Ed25519, EIP-712 typed-data hashing, BIP-137 signed messages, and
// the MessagePack encoder. It is the one place in the repository that
// does I/O — the internal/ packages stay pure functions of their byte
// inputs.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gipsh/cryptocore/internal/config"
)

func main() {
	cfg := config.Load()
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "keccak256":
		err = cmdKeccak256(args)
	case "genkey":
		err = cmdGenkey(args)
	case "pubkey":
		err = cmdPubkey(args)
	case "address":
		err = cmdAddress(args)
	case "sign":
		err = cmdSign(args)
	case "recover":
		err = cmdRecover(args)
	case "ed25519-genkey":
		err = cmdEd25519Genkey(args)
	case "ed25519-sign":
		err = cmdEd25519Sign(args)
	case "ed25519-verify":
		err = cmdEd25519Verify(args)
	case "eip712-hash":
		err = cmdEIP712Hash(args, cfg)
	case "bip137-sign":
		err = cmdBIP137Sign(args)
	case "bip137-verify":
		err = cmdBIP137Verify(args)
	case "pack":
		err = cmdPack(args)
	case "-h", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Printf("[cryptocli] %s: %v", cmd, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `cryptocli — cryptocore demo CLI

Usage:
  cryptocli keccak256 <hex-or-string>
  cryptocli genkey
  cryptocli pubkey <priv-hex>
  cryptocli address <priv-hex>
  cryptocli sign <priv-hex> <hash-hex>
  cryptocli recover <hash-hex> <r-hex> <s-hex> <recid>
  cryptocli ed25519-genkey <seed-hex>
  cryptocli ed25519-sign <seed-hex> <message>
  cryptocli ed25519-verify <pub-hex> <message> <sig-hex>
  cryptocli eip712-hash <json-file>
  cryptocli bip137-sign <priv-hex> <message>
  cryptocli bip137-verify <pub-hex> <message> <sig-base64>
  cryptocli pack <json-file>`)
}
