package signedmsg

import (
	"crypto/sha256"
	"encoding/base64"

	"github.com/gipsh/cryptocore/internal/bigint"
	"github.com/gipsh/cryptocore/internal/secp256k1"
)

// SignedMessageHash is single SHA-256 of the raw message — not the
// Bitcoin double-SHA with the "\x18Bitcoin Signed Message:\n<len>"
// prefix. This is nonstandard but intentional: it matches the source
// this core is derived from (spec.md §9 open question 1).
func SignedMessageHash(msg []byte) [32]byte {
	return sha256.Sum256(msg)
}

// SignMessage signs msg with priv and returns the BIP-137 wire format:
// Base64 of header(1) ‖ r(32BE) ‖ s(32BE), where header = 32+recid for
// recid < 3, else 31 (spec.md §4.E).
func SignMessage(priv [32]byte, msg []byte) (string, error) {
	h := SignedMessageHash(msg)
	sig, err := secp256k1.SignRecoverable(priv, h)
	if err != nil {
		return "", err
	}

	recid := sig.V - 27
	header := byte(32 + recid)
	if recid >= 3 {
		header = 31
	}

	rBytes := bigint.ToBytesBE32(sig.R)
	sBytes := bigint.ToBytesBE32(sig.S)

	out := make([]byte, 0, 65)
	out = append(out, header)
	out = append(out, rBytes[:]...)
	out = append(out, sBytes[:]...)
	return base64.StdEncoding.EncodeToString(out), nil
}

// VerifyMessage reports whether sigB64 is a valid BIP-137 signature
// over msg by the holder of pub. It never returns an error; any
// malformed input (short Base64, bad recid, unrecoverable point)
// yields false (spec.md §7).
func VerifyMessage(msg []byte, sigB64 string, pub [65]byte) bool {
	raw, err := base64.StdEncoding.DecodeString(sigB64)
	if err != nil || len(raw) != 65 {
		return false
	}

	header := raw[0]
	recid := header & 3

	r := bigint.FromBytesBE(raw[1:33])
	s := bigint.FromBytesBE(raw[33:65])

	h := SignedMessageHash(msg)
	recovered, err := secp256k1.RecoverPublicKey(h, r, s, recid)
	if err != nil {
		return false
	}
	return recovered == pub
}
