package ed25519

import (
	"crypto/sha512"
	"math/big"

	"github.com/gipsh/cryptocore/internal/bigint"
)

// clamp applies the RFC 8032 bit-twiddles to the first 32 bytes of a
// SHA-512 digest so the resulting scalar is a multiple of the cofactor
// 8 and has its high bit fixed (spec.md §4.D). RFC 8032 treats the 32
// bytes as a little-endian integer.
func clamp(h [32]byte) *big.Int {
	h[0] &= 0xF8
	h[31] &= 0x7F
	h[31] |= 0x40
	return bigint.FromBytesLE(h[:])
}

// PublicKey derives the 32-byte public key from a 32-byte seed.
func PublicKey(seed [32]byte) [32]byte {
	h := sha512.Sum512(seed[:])
	var hHead [32]byte
	copy(hHead[:], h[:32])
	a := clamp(hHead)
	A := scalarMul(a, basePoint)
	return compress(A)
}

// Sign produces a 64-byte signature R || S over msg using seed,
// following RFC 8032's deterministic Ed25519 scheme (spec.md §4.D).
func Sign(seed [32]byte, msg []byte) [64]byte {
	h := sha512.Sum512(seed[:])
	var hHead [32]byte
	copy(hHead[:], h[:32])
	a := clamp(hHead)
	prefix := h[32:64]

	A := compress(scalarMul(a, basePoint))

	rHash := sha512.New()
	rHash.Write(prefix)
	rHash.Write(msg)
	rDigest := rHash.Sum(nil)
	r := new(big.Int).Mod(bigint.FromBytesLE(rDigest), L)

	R := compress(scalarMul(r, basePoint))

	hHash := sha512.New()
	hHash.Write(R[:])
	hHash.Write(A[:])
	hHash.Write(msg)
	hDigest := hHash.Sum(nil)
	hScalar := new(big.Int).Mod(bigint.FromBytesLE(hDigest), L)

	s := new(big.Int).Mul(hScalar, a)
	s.Add(s, r)
	s.Mod(s, L)

	var out [64]byte
	copy(out[:32], R[:])
	sBytes := bigint.ToBytesLE32(s)
	copy(out[32:], sBytes[:])
	return out
}

// Verify reports whether sig is a valid Ed25519 signature over msg
// under pub (spec.md §4.D). Like BIP-137's VerifyMessage, it is a pure
// predicate: any malformed input collapses to false rather than an
// error.
func Verify(pub [32]byte, msg []byte, sig []byte) bool {
	if len(sig) != SignatureSize {
		return false
	}

	var rEnc [32]byte
	copy(rEnc[:], sig[:32])
	R, ok := decompress(rEnc)
	if !ok {
		return false
	}

	A, ok := decompress(pub)
	if !ok {
		return false
	}

	s := bigint.FromBytesLE(sig[32:64])
	if s.Cmp(L) >= 0 {
		return false
	}

	hHash := sha512.New()
	hHash.Write(rEnc[:])
	hHash.Write(pub[:])
	hHash.Write(msg)
	hDigest := hHash.Sum(nil)
	hScalar := new(big.Int).Mod(bigint.FromBytesLE(hDigest), L)

	lhs := scalarMul(s, basePoint)
	rhs := addPoints(R, scalarMul(hScalar, A))

	return equalAffine(lhs, rhs)
}
