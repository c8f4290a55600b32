// Package bigint collects the modular-arithmetic helpers shared by
// secp256k1 and ed25519: both curves need add/sub/mul/inverse/pow over a
// prime modulus and fixed-width big-endian/little-endian byte encoding.
// Per spec.md's design notes, a systems-language rewrite may use a fixed
// 256-bit limb representation or arbitrary-precision integers; this
// package takes the latter route (math/big), matching the reference's
// own host-language big integers, since neither curve here needs
// constant-time arithmetic (spec.md §1 Non-goals).
package bigint

import "math/big"

// AddMod returns (a + b) mod m, result in [0, m).
func AddMod(a, b, m *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return r.Mod(r, m)
}

// SubMod returns (a - b) mod m, result in [0, m).
func SubMod(a, b, m *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, m)
}

// MulMod returns (a * b) mod m, result in [0, m).
func MulMod(a, b, m *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, m)
}

// NegMod returns (-a) mod m, result in [0, m).
func NegMod(a, m *big.Int) *big.Int {
	r := new(big.Int).Neg(a)
	return r.Mod(r, m)
}

// PowMod returns (a^e) mod m via square-and-multiply (math/big.Exp).
func PowMod(a, e, m *big.Int) *big.Int {
	return new(big.Int).Exp(a, e, m)
}

// InverseMod returns the modular inverse of a mod m via the extended
// Euclidean algorithm, lifted into [0, m). Returns nil if a has no
// inverse (gcd(a, m) != 1).
func InverseMod(a, m *big.Int) *big.Int {
	inv := new(big.Int).ModInverse(a, m)
	if inv == nil {
		return nil
	}
	return inv.Mod(inv, m)
}

// FromBytesBE decodes a big-endian byte slice as an unsigned integer.
func FromBytesBE(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// ToBytesBE32 encodes v as a 32-byte big-endian fixed-width buffer.
// Panics if v does not fit (callers reduce mod P or mod N first).
func ToBytesBE32(v *big.Int) [32]byte {
	var out [32]byte
	b := v.Bytes()
	if len(b) > 32 {
		panic("bigint: value does not fit in 32 bytes")
	}
	copy(out[32-len(b):], b)
	return out
}

// FromBytesLE decodes a little-endian byte slice as an unsigned integer.
func FromBytesLE(b []byte) *big.Int {
	rev := make([]byte, len(b))
	for i, x := range b {
		rev[len(b)-1-i] = x
	}
	return new(big.Int).SetBytes(rev)
}

// ToBytesLE32 encodes v as a 32-byte little-endian fixed-width buffer.
func ToBytesLE32(v *big.Int) [32]byte {
	be := ToBytesBE32(v)
	var out [32]byte
	for i, b := range be {
		out[31-i] = b
	}
	return out
}

// IsZero reports whether v is the zero integer.
func IsZero(v *big.Int) bool {
	return v.Sign() == 0
}

// InRange reports whether 0 < v < m (the open interval used for scalars
// that must be nonzero and reduced, e.g. private keys and signature
// components).
func InRange(v, m *big.Int) bool {
	return v.Sign() > 0 && v.Cmp(m) < 0
}
