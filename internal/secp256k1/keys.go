package secp256k1

import (
	"fmt"
	"math/big"

	"github.com/gipsh/cryptocore/internal/bigint"
	"github.com/gipsh/cryptocore/internal/cryptoerrs"
	"github.com/gipsh/cryptocore/internal/keccak"
)

// PrivateKeyToPublicKey derives the 65-byte uncompressed public key
// 04 || X(32BE) || Y(32BE) for a 32-byte big-endian private key.
func PrivateKeyToPublicKey(priv [32]byte) ([65]byte, error) {
	d, err := decodePrivateKey(priv)
	if err != nil {
		return [65]byte{}, err
	}
	q := scalarMul(d, generator())
	return encodePubkey(q), nil
}

// PrivateKeyToAddress derives the lowercase 0x-prefixed 20-byte
// Ethereum address for a private key: the last 20 bytes of
// Keccak-256(X || Y) (spec.md §4.C).
func PrivateKeyToAddress(priv [32]byte) (string, error) {
	pub, err := PrivateKeyToPublicKey(priv)
	if err != nil {
		return "", err
	}
	return addressFromPubkey(pub), nil
}

func addressFromPubkey(pub [65]byte) string {
	h := keccak.Sum256(pub[1:])
	return "0x" + hexLower(h[12:])
}

func decodePrivateKey(priv [32]byte) (*big.Int, error) {
	d := bigint.FromBytesBE(priv[:])
	if !bigint.InRange(d, N) {
		return nil, fmt.Errorf("%w: private key must satisfy 0 < d < N", cryptoerrs.ErrInputRange)
	}
	return d, nil
}

func encodePubkey(q point) [65]byte {
	var out [65]byte
	out[0] = 0x04
	x := bigint.ToBytesBE32(q.x)
	y := bigint.ToBytesBE32(q.y)
	copy(out[1:33], x[:])
	copy(out[33:65], y[:])
	return out
}

const hexDigits = "0123456789abcdef"

func hexLower(b []byte) string {
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0xF]
	}
	return string(out)
}
