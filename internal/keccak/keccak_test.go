package keccak

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex fixture: %v", err)
	}
	return b
}

func TestSum256Vectors(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want string
	}{
		{"empty", []byte(""), "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{"abc", []byte("abc"), "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Sum256(c.in)
			want := mustHex(t, c.want)
			if !bytes.Equal(got[:], want) {
				t.Errorf("Sum256(%q) = %x, want %s", c.in, got, c.want)
			}
		})
	}
}

// TestRateBoundaryCollision exercises the m = rate-1 edge case where the
// domain byte 0x01 and the terminator 0x80 land on the same final byte,
// producing 0x81 (spec.md §4.A).
func TestRateBoundaryCollision(t *testing.T) {
	in := bytes.Repeat([]byte{'a'}, rate-1)
	got := Sum256(in)
	if got == ([32]byte{}) {
		t.Fatal("expected non-zero digest")
	}

	// A one-byte-longer input must take a different absorb path (an
	// extra block) and must not collide with the rate-1 case.
	in2 := bytes.Repeat([]byte{'a'}, rate)
	got2 := Sum256(in2)
	if bytes.Equal(got[:], got2[:]) {
		t.Fatal("rate-1 and rate-length inputs must not hash to the same digest")
	}
}

// TestMillionA is the long Keccak-256 known-answer test: 1,000,000
// repetitions of 'a', spanning many absorb blocks. Asserting the exact
// published digest, not just non-zero, is what catches a permutation
// bug (e.g. a transposed rotation offset) that would still produce a
// non-zero but wrong digest.
func TestMillionA(t *testing.T) {
	in := bytes.Repeat([]byte{'a'}, 1000000)
	got := Sum256(in)
	want := mustHex(t, "fadae6b49f129bbb812be8407b7b2894f34aecf6dbd1f9b0f0c7e9853098fc96")
	if !bytes.Equal(got[:], want) {
		t.Errorf("Sum256(1,000,000 'a') = %x, want %x", got, want)
	}
}

func TestHasherMatchesSum256(t *testing.T) {
	msg := []byte(strings.Repeat("the quick brown fox ", 50))
	want := Sum256(msg)

	var h Hasher
	// Feed it in small, uneven chunks to exercise the buffering path.
	for i := 0; i < len(msg); i += 7 {
		end := i + 7
		if end > len(msg) {
			end = len(msg)
		}
		h.Write(msg[i:end])
	}
	got := h.Sum(nil)
	if !bytes.Equal(got, want[:]) {
		t.Errorf("streaming Hasher mismatch: got %x want %x", got, want)
	}
}

func TestHasherResetReusable(t *testing.T) {
	var h Hasher
	h.Write([]byte("abc"))
	first := h.Sum(nil)
	h.Reset()
	h.Write([]byte("abc"))
	second := h.Sum(nil)
	if !bytes.Equal(first, second) {
		t.Errorf("reset hasher diverged: %x vs %x", first, second)
	}
}
