package secp256k1

import (
	"fmt"
	"math/big"

	"github.com/gipsh/cryptocore/internal/bigint"
	"github.com/gipsh/cryptocore/internal/cryptoerrs"
)

// Signature is a recoverable ECDSA signature: r, s are 256-bit
// scalars (s already normalized to the low-S form) and V is the
// Ethereum-style recovery indicator 27..30 (spec.md's data model).
type Signature struct {
	R, S *big.Int
	V    byte
}

// maxKAttempts bounds the recid-brute-force / k-retry loop in
// SignRecoverable (spec.md §4.C: "If no attempt succeeds in 256
// iterations, fail").
const maxKAttempts = 256

// SignRecoverable signs msgHash with priv, producing a low-S
// recoverable signature. The k-derivation is the source's homebrew
// scheme (spec.md §4.C, §9 open question 4), not RFC 6979: signatures
// from this function are not bit-compatible with standards-conforming
// secp256k1 libraries, by design — see DESIGN.md.
func SignRecoverable(priv [32]byte, msgHash [32]byte) (Signature, error) {
	d, err := decodePrivateKey(priv)
	if err != nil {
		return Signature{}, err
	}
	z := bigint.FromBytesBE(msgHash[:])

	pub, err := PrivateKeyToPublicKey(priv)
	if err != nil {
		return Signature{}, err
	}
	wantAddr := addressFromPubkey(pub)

	nMinus2 := new(big.Int).Sub(N, big.NewInt(2))
	k0 := new(big.Int).Add(z, d)
	k0.Mod(k0, nMinus2)
	k0.Add(k0, big.NewInt(1))

	for attempt := 0; attempt < maxKAttempts; attempt++ {
		k := new(big.Int).Add(k0, big.NewInt(int64(attempt)))
		k.Mod(k, N)
		if k.Sign() == 0 {
			continue
		}

		kPoint := scalarMul(k, generator())
		r := new(big.Int).Mod(kPoint.x, N)
		if r.Sign() == 0 {
			continue
		}

		kInv := bigint.InverseMod(k, N)
		s := bigint.MulMod(kInv, bigint.AddMod(z, bigint.MulMod(r, d, N), N), N)
		if s.Sign() == 0 {
			continue
		}
		if s.Cmp(halfN) > 0 {
			s = new(big.Int).Sub(N, s)
		}

		for recid := byte(0); recid < 4; recid++ {
			recovered, err := RecoverPublicKey(msgHash, r, s, recid)
			if err != nil {
				continue
			}
			if addressFromPubkey(recovered) == wantAddr {
				return Signature{R: r, S: s, V: 27 + recid}, nil
			}
		}
	}

	return Signature{}, fmt.Errorf("%w: exhausted %d k-attempts", cryptoerrs.ErrSignFailure, maxKAttempts)
}

// RecoverPublicKey recovers the 65-byte uncompressed public key from a
// message hash and signature components, per spec.md §4.C's recovery
// algorithm.
func RecoverPublicKey(msgHash [32]byte, r, s *big.Int, recid byte) ([65]byte, error) {
	if !bigint.InRange(r, N) || !bigint.InRange(s, N) {
		return [65]byte{}, fmt.Errorf("%w: r and s must be in [1, N-1]", cryptoerrs.ErrInputRange)
	}
	if recid > 3 {
		return [65]byte{}, fmt.Errorf("%w: recid must be in 0..3", cryptoerrs.ErrInputRange)
	}

	x := new(big.Int).Set(r)
	if recid&2 != 0 {
		x = new(big.Int).Add(r, N)
		if x.Cmp(P) >= 0 {
			return [65]byte{}, fmt.Errorf("%w: r + N >= P", cryptoerrs.ErrInputRange)
		}
	}

	alpha := bigint.AddMod(bigint.MulMod(bigint.MulMod(x, x, P), x, P), big.NewInt(7), P)
	beta := sqrtModP(alpha)
	if bigint.MulMod(beta, beta, P).Cmp(alpha) != 0 {
		return [65]byte{}, fmt.Errorf("%w: no square root for candidate x", cryptoerrs.ErrNoSolution)
	}

	y := beta
	if y.Bit(0) != uint(recid&1) {
		y = new(big.Int).Sub(P, y)
	}
	rPoint := point{x: x, y: y}

	z := new(big.Int).Mod(bigint.FromBytesBE(msgHash[:]), N)
	rInv := bigint.InverseMod(r, N)
	u1 := bigint.MulMod(bigint.NegMod(z, N), rInv, N)
	u2 := bigint.MulMod(s, rInv, N)

	q := add(scalarMul(u1, generator()), scalarMul(u2, rPoint))
	if isInfinity(q) {
		return [65]byte{}, fmt.Errorf("%w: recovered point is the identity", cryptoerrs.ErrNoSolution)
	}

	return encodePubkey(q), nil
}
