package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/gipsh/cryptocore/internal/config"
	"github.com/gipsh/cryptocore/internal/ed25519"
	"github.com/gipsh/cryptocore/internal/keccak"
	"github.com/gipsh/cryptocore/internal/msgpack"
	"github.com/gipsh/cryptocore/internal/secp256k1"
	"github.com/gipsh/cryptocore/internal/signedmsg"
)

// decodeHexArg accepts a hex string with or without a leading 0x.
func decodeHexArg(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	return hex.DecodeString(s)
}

func decodeHex32(s string) ([32]byte, error) {
	var out [32]byte
	b, err := decodeHexArg(s)
	if err != nil {
		return out, err
	}
	if len(b) != 32 {
		return out, fmt.Errorf("expected 32 bytes, got %d", len(b))
	}
	copy(out[:], b)
	return out, nil
}

func cmdKeccak256(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: keccak256 <hex-or-string>")
	}
	var data []byte
	if b, err := decodeHexArg(args[0]); err == nil && strings.HasPrefix(args[0], "0x") {
		data = b
	} else {
		data = []byte(args[0])
	}
	h := keccak.Sum256(data)
	fmt.Println("0x" + hex.EncodeToString(h[:]))
	return nil
}

func cmdGenkey(args []string) error {
	for {
		var priv [32]byte
		if _, err := rand.Read(priv[:]); err != nil {
			return fmt.Errorf("rand: %w", err)
		}
		if _, err := secp256k1.PrivateKeyToPublicKey(priv); err == nil {
			fmt.Println("0x" + hex.EncodeToString(priv[:]))
			return nil
		}
	}
}

func cmdPubkey(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: pubkey <priv-hex>")
	}
	priv, err := decodeHex32(args[0])
	if err != nil {
		return err
	}
	pub, err := secp256k1.PrivateKeyToPublicKey(priv)
	if err != nil {
		return err
	}
	fmt.Println("0x" + hex.EncodeToString(pub[:]))
	return nil
}

func cmdAddress(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: address <priv-hex>")
	}
	priv, err := decodeHex32(args[0])
	if err != nil {
		return err
	}
	addr, err := secp256k1.PrivateKeyToAddress(priv)
	if err != nil {
		return err
	}
	fmt.Println(addr)
	return nil
}

func cmdSign(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: sign <priv-hex> <hash-hex>")
	}
	priv, err := decodeHex32(args[0])
	if err != nil {
		return err
	}
	hash, err := decodeHex32(args[1])
	if err != nil {
		return err
	}
	sig, err := secp256k1.SignRecoverable(priv, hash)
	if err != nil {
		return err
	}
	fmt.Printf("r=0x%064x s=0x%064x v=%d\n", sig.R, sig.S, sig.V)
	return nil
}

func cmdRecover(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: recover <hash-hex> <r-hex> <s-hex> <recid>")
	}
	hash, err := decodeHex32(args[0])
	if err != nil {
		return err
	}
	r, ok := new(big.Int).SetString(strings.TrimPrefix(args[1], "0x"), 16)
	if !ok {
		return fmt.Errorf("bad r")
	}
	s, ok := new(big.Int).SetString(strings.TrimPrefix(args[2], "0x"), 16)
	if !ok {
		return fmt.Errorf("bad s")
	}
	recid, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("bad recid: %w", err)
	}
	pub, err := secp256k1.RecoverPublicKey(hash, r, s, byte(recid))
	if err != nil {
		return err
	}
	fmt.Println("0x" + hex.EncodeToString(pub[:]))
	return nil
}

func cmdEd25519Genkey(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ed25519-genkey <seed-hex>")
	}
	seed, err := decodeHex32(args[0])
	if err != nil {
		return err
	}
	pub := ed25519.PublicKey(seed)
	fmt.Println("0x" + hex.EncodeToString(pub[:]))
	return nil
}

func cmdEd25519Sign(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: ed25519-sign <seed-hex> <message>")
	}
	seed, err := decodeHex32(args[0])
	if err != nil {
		return err
	}
	sig := ed25519.Sign(seed, []byte(args[1]))
	fmt.Println("0x" + hex.EncodeToString(sig[:]))
	return nil
}

func cmdEd25519Verify(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: ed25519-verify <pub-hex> <message> <sig-hex>")
	}
	pub, err := decodeHex32(args[0])
	if err != nil {
		return err
	}
	sig, err := decodeHexArg(args[2])
	if err != nil {
		return err
	}
	fmt.Println(ed25519.Verify(pub, []byte(args[1]), sig))
	return nil
}

// eip712Document is the on-disk shape cryptocli's eip712-hash
// subcommand reads (spec.md §4.E's typed-data input).
type eip712Document struct {
	Types       map[string][]signedmsg.FieldType `json:"types"`
	PrimaryType string                           `json:"primaryType"`
	Domain      map[string]interface{}           `json:"domain"`
	Message     map[string]interface{}           `json:"message"`
}

func cmdEIP712Hash(args []string, cfg config.Config) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: eip712-hash <json-file>")
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	var doc eip712Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}

	if doc.Domain == nil {
		doc.Domain = map[string]interface{}{}
	}
	if _, ok := doc.Domain["chainId"]; !ok {
		doc.Domain["chainId"] = cfg.ChainID
	}
	if _, ok := doc.Domain["verifyingContract"]; !ok {
		doc.Domain["verifyingContract"] = cfg.VerifyingContract
	}

	tm := signedmsg.TypedMessage{
		Types:       doc.Types,
		PrimaryType: doc.PrimaryType,
		Domain:      doc.Domain,
		Message:     doc.Message,
	}
	h, err := signedmsg.HashFullMessage(tm)
	if err != nil {
		return err
	}
	fmt.Println("0x" + hex.EncodeToString(h[:]))
	return nil
}

func cmdBIP137Sign(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: bip137-sign <priv-hex> <message>")
	}
	priv, err := decodeHex32(args[0])
	if err != nil {
		return err
	}
	sig, err := signedmsg.SignMessage(priv, []byte(args[1]))
	if err != nil {
		return err
	}
	fmt.Println(sig)
	return nil
}

func cmdBIP137Verify(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: bip137-verify <pub-hex> <message> <sig-base64>")
	}
	pubBytes, err := decodeHexArg(args[0])
	if err != nil {
		return err
	}
	if len(pubBytes) != 65 {
		return fmt.Errorf("expected 65-byte uncompressed public key, got %d", len(pubBytes))
	}
	var pub [65]byte
	copy(pub[:], pubBytes)

	ok := signedmsg.VerifyMessage([]byte(args[1]), args[2], pub)
	fmt.Println(ok)
	return nil
}

func cmdPack(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: pack <json-file>")
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}

	v, err := jsonToValue(doc)
	if err != nil {
		return err
	}
	out, err := msgpack.Pack(v)
	if err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(out))
	return nil
}

// jsonToValue converts a decoded JSON document into a msgpack.Value.
// JSON objects become maps whose keys are emitted in sorted order; the
// key order written in the document is not preserved. JSON arrays
// become msgpack arrays.
func jsonToValue(doc interface{}) (msgpack.Value, error) {
	switch v := doc.(type) {
	case nil:
		return msgpack.Nil(), nil
	case bool:
		return msgpack.Bool(v), nil
	case float64:
		return msgpack.Int(int64(v)), nil
	case string:
		return msgpack.Str(v), nil
	case []interface{}:
		items := make([]msgpack.Value, len(v))
		for i, item := range v {
			mv, err := jsonToValue(item)
			if err != nil {
				return msgpack.Value{}, err
			}
			items[i] = mv
		}
		return msgpack.Array(items), nil
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]msgpack.Pair, 0, len(v))
		for _, k := range keys {
			mv, err := jsonToValue(v[k])
			if err != nil {
				return msgpack.Value{}, err
			}
			pairs = append(pairs, msgpack.Pair{Key: msgpack.Str(k), Val: mv})
		}
		return msgpack.Map(pairs), nil
	default:
		return msgpack.Value{}, fmt.Errorf("unsupported JSON value of type %T", doc)
	}
}
