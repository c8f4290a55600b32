// Package secp256k1 implements the secp256k1 curve (spec.md §4.C):
// private-key-to-public-key and private-key-to-Ethereum-address
// derivation, recoverable ECDSA signing, and public-key recovery.
//
// Field and scalar arithmetic are implemented from scratch on top of
// math/big (see internal/bigint) rather than delegated to a curve
// library such as btcec or decred/secp256k1 — that delegation is
// exactly what spec.md's "hard core" asks us not to do; see DESIGN.md.
// Points are affine with explicit doubling/vertical-tangent handling,
// which spec.md §4.C calls out as an acceptable (if slower) choice.
package secp256k1

import (
	"math/big"

	"github.com/gipsh/cryptocore/internal/bigint"
)

// P is the field prime: 2^256 - 2^32 - 977.
var P = mustHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F")

// N is the group order.
var N = mustHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141")

// halfN is N/2, used for low-S canonicalization.
var halfN = new(big.Int).Rsh(N, 1)

// Gx, Gy are the generator point coordinates (SEC2).
var (
	Gx = mustHex("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798")
	Gy = mustHex("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8")
)

func mustHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("secp256k1: bad hex constant")
	}
	return v
}

// point is an affine point on the curve. The identity (point at
// infinity) is represented as infinity=true; x/y are then unused.
type point struct {
	x, y     *big.Int
	infinity bool
}

func infinityPoint() point { return point{infinity: true} }

func isInfinity(p point) bool { return p.infinity }

// generator is G as a point value.
func generator() point { return point{x: new(big.Int).Set(Gx), y: new(big.Int).Set(Gy)} }

// add computes p + q on the curve (affine, y^2 = x^3 + 7 mod P).
func add(p, q point) point {
	if p.infinity {
		return q
	}
	if q.infinity {
		return p
	}
	if p.x.Cmp(q.x) == 0 {
		if bigint.AddMod(p.y, q.y, P).Sign() == 0 {
			// P == -Q: vertical line, result is the identity.
			return infinityPoint()
		}
		return double(p)
	}

	// slope = (qy - py) / (qx - px) mod P
	num := bigint.SubMod(q.y, p.y, P)
	den := bigint.SubMod(q.x, p.x, P)
	denInv := bigint.InverseMod(den, P)
	lambda := bigint.MulMod(num, denInv, P)

	return fromSlope(lambda, p, q.x)
}

// double computes 2P (slope = 3x^2 / 2y).
func double(p point) point {
	if p.infinity || p.y.Sign() == 0 {
		return infinityPoint()
	}
	three := big.NewInt(3)
	two := big.NewInt(2)
	num := bigint.MulMod(bigint.MulMod(p.x, p.x, P), three, P)
	den := bigint.MulMod(p.y, two, P)
	denInv := bigint.InverseMod(den, P)
	lambda := bigint.MulMod(num, denInv, P)
	return fromSlope(lambda, p, p.x)
}

// fromSlope finishes a point addition/doubling given slope lambda, the
// first operand p, and the second operand's x-coordinate (qx, which
// equals p.x for doubling).
func fromSlope(lambda *big.Int, p point, qx *big.Int) point {
	lambdaSq := bigint.MulMod(lambda, lambda, P)
	rx := bigint.SubMod(bigint.SubMod(lambdaSq, p.x, P), qx, P)
	ry := bigint.SubMod(bigint.MulMod(lambda, bigint.SubMod(p.x, rx, P), P), p.y, P)
	return point{x: rx, y: ry}
}

// scalarMul computes k*P via left-to-right double-and-add. k is
// reduced mod N first (spec.md §4.C).
func scalarMul(k *big.Int, p point) point {
	kk := new(big.Int).Mod(k, N)
	result := infinityPoint()
	for i := kk.BitLen() - 1; i >= 0; i-- {
		result = double(result)
		if kk.Bit(i) == 1 {
			result = add(result, p)
		}
	}
	return result
}

// sqrtModP returns a square root of a mod P using P ≡ 3 (mod 4), i.e.
// a^((P+1)/4) mod P. The caller must verify the result squares back to
// a — P is prime but a may not be a quadratic residue.
func sqrtModP(a *big.Int) *big.Int {
	exp := new(big.Int).Add(P, big.NewInt(1))
	exp.Rsh(exp, 2)
	return bigint.PowMod(a, exp, P)
}
