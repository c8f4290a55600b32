// Package keccak implements Keccak-256, the FIPS-202-predecessor variant
// used by Ethereum (domain separator 0x01, not SHA-3's 0x06).
//
// The permutation and sponge construction follow the reference Keccak
// description: a 1600-bit state as 25 64-bit lanes, rate 1088 bits
// (136 bytes), capacity 512 bits, 24 rounds. Lane layout, rotation
// table and round constants are grounded on the pack's own pure-Go
// Keccak implementations.
package keccak

import "encoding/binary"

const (
	laneCount = 25
	rate      = 136 // bytes; 1088 bits
	rounds    = 24
	domain    = 0x01
)

var roundConstants = [rounds]uint64{
	0x0000000000000001, 0x0000000000008082,
	0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001,
	0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088,
	0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B,
	0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080,
	0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080,
	0x0000000080000001, 0x8000000080008008,
}

// rotationOffsets[x][y] is the ROT[x,y] table from spec.md §4.A, indexed
// the same way as the state: lane (x, y) lives at S[x + 5*y].
var rotationOffsets = [5][5]uint{
	{0, 36, 3, 41, 18},
	{1, 44, 10, 45, 2},
	{62, 6, 43, 15, 61},
	{28, 55, 25, 21, 56},
	{27, 20, 39, 8, 14},
}

// Sum256 computes the Keccak-256 digest of data in one call.
func Sum256(data []byte) [32]byte {
	var h Hasher
	h.Write(data)
	var out [32]byte
	h.sum(out[:])
	return out
}

// Hasher is a streaming Keccak-256 hasher, owned exclusively by its
// caller (spec.md §5: no shared mutable state). The zero value is
// ready to use.
type Hasher struct {
	state [laneCount]uint64
	buf   []byte
}

// Write absorbs more input. It never returns an error.
func (h *Hasher) Write(p []byte) (int, error) {
	n := len(p)
	if len(h.buf) > 0 {
		need := rate - len(h.buf)
		if need > len(p) {
			need = len(p)
		}
		h.buf = append(h.buf, p[:need]...)
		p = p[need:]
		if len(h.buf) < rate {
			return n, nil
		}
		h.absorb(h.buf)
		h.buf = h.buf[:0]
	}
	for len(p) >= rate {
		h.absorb(p[:rate])
		p = p[rate:]
	}
	h.buf = append(h.buf, p...)
	return n, nil
}

// Sum appends the 32-byte digest to b and returns the resulting slice.
// It does not mutate the hasher's absorbed state (a copy is finalized),
// matching the hash.Hash contract.
func (h *Hasher) Sum(b []byte) []byte {
	cp := *h
	cp.buf = append([]byte(nil), h.buf...)
	var out [32]byte
	cp.sum(out[:])
	return append(b, out[:]...)
}

// Reset clears the hasher back to its zero state for reuse.
func (h *Hasher) Reset() {
	for i := range h.state {
		h.state[i] = 0
	}
	h.buf = h.buf[:0]
}

func (h *Hasher) sum(out []byte) {
	h.pad()
	var lanes [4]uint64
	for i := 0; i < 4; i++ {
		lanes[i] = h.state[i]
	}
	for i, l := range lanes {
		binary.LittleEndian.PutUint64(out[i*8:], l)
	}
}

// pad applies the final block with pad10*1 and permutes it. m =
// len(buf) is the remaining partial-block length, 0 <= m < rate. The
// domain byte 0x01 is placed at position m, the 0x80 terminator is
// OR'd into position rate-1; when m == rate-1 both land on the same
// byte, producing 0x81 (spec.md §4.A's required edge case).
func (h *Hasher) pad() {
	block := make([]byte, rate)
	copy(block, h.buf)
	block[len(h.buf)] |= domain
	block[rate-1] |= 0x80
	h.absorb(block)
}

func (h *Hasher) absorb(block []byte) {
	if len(block) != rate {
		panic("keccak: absorb requires a full-rate block")
	}
	for i := 0; i < rate/8; i++ {
		h.state[i] ^= binary.LittleEndian.Uint64(block[i*8:])
	}
	permute(&h.state)
}

// permute applies the 24-round Keccak-f[1600] permutation in place.
func permute(a *[laneCount]uint64) {
	var c [5]uint64
	var d [5]uint64
	var b [laneCount]uint64

	for round := 0; round < rounds; round++ {
		// theta
		for x := 0; x < 5; x++ {
			c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
		}
		for x := 0; x < 5; x++ {
			d[x] = rotl64(c[(x+1)%5], 1) ^ c[(x+4)%5]
		}
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] ^= d[x]
			}
		}

		// rho + pi: B[y, (2x+3y) mod 5] = rotl(A[x,y], ROT[x,y])
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				ny := (2*x + 3*y) % 5
				b[y+5*ny] = rotl64(a[x+5*y], rotationOffsets[x][y])
			}
		}

		// chi
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] = b[x+5*y] ^ ((^b[(x+1)%5+5*y]) & b[(x+2)%5+5*y])
			}
		}

		// iota
		a[0] ^= roundConstants[round]
	}
}

func rotl64(x uint64, n uint) uint64 {
	if n == 0 {
		return x
	}
	return (x << n) | (x >> (64 - n))
}
