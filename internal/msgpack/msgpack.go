// Package msgpack implements a deterministic MessagePack-subset encoder
// for a closed, restricted type set (spec.md §4.B). It is encode-only:
// decoding is an explicit non-goal. Byte-strings are encoded with the
// same tags as text-strings (no bin8/16/32) — this is a deliberate
// departure from the published MessagePack spec, so no off-the-shelf
// MessagePack library can serve as a dependency here; see DESIGN.md.
package msgpack

import (
	"encoding/binary"
	"fmt"

	"github.com/gipsh/cryptocore/internal/cryptoerrs"
)

// Kind identifies which alternative of Value is populated.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindBytes
	KindStr
	KindArray
	KindMap
)

// Pair is one entry of an ordered Map value. Order is caller-supplied
// and is preserved bit-for-bit in the encoding (spec.md §4.B).
type Pair struct {
	Key Value
	Val Value
}

// Value is the tagged sum type accepted at the encoder boundary:
// Nil | Bool | Int | Bytes | Str | Array | Map. Any other shape is
// rejected with cryptoerrs.ErrUnsupported.
type Value struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Bytes []byte
	Str   string
	Array []Value
	Map   []Pair
}

func Nil() Value                { return Value{Kind: KindNil} }
func Bool(b bool) Value         { return Value{Kind: KindBool, Bool: b} }
func Int(i int64) Value         { return Value{Kind: KindInt, Int: i} }
func Bytes(b []byte) Value      { return Value{Kind: KindBytes, Bytes: b} }
func Str(s string) Value        { return Value{Kind: KindStr, Str: s} }
func Array(items []Value) Value { return Value{Kind: KindArray, Array: items} }
func Map(pairs []Pair) Value    { return Value{Kind: KindMap, Map: pairs} }

// Pack encodes v per the wire format in spec.md §4.B.
func Pack(v Value) ([]byte, error) {
	var buf []byte
	return appendValue(buf, v)
}

func appendValue(buf []byte, v Value) ([]byte, error) {
	// Bool-before-int rule (spec.md §4.B): in this Go representation
	// Bool and Int are distinct Kinds, so there is no ambiguity, but
	// the dispatch order below still checks Bool first to mirror the
	// source's match order.
	switch v.Kind {
	case KindNil:
		return append(buf, 0xC0), nil
	case KindBool:
		if v.Bool {
			return append(buf, 0xC3), nil
		}
		return append(buf, 0xC2), nil
	case KindInt:
		return appendInt(buf, v.Int), nil
	case KindBytes:
		return appendStrLike(buf, v.Bytes), nil
	case KindStr:
		return appendStrLike(buf, []byte(v.Str)), nil
	case KindArray:
		buf = appendArrayHeader(buf, len(v.Array))
		for _, item := range v.Array {
			var err error
			buf, err = appendValue(buf, item)
			if err != nil {
				return nil, err
			}
		}
		return buf, nil
	case KindMap:
		buf = appendMapHeader(buf, len(v.Map))
		for _, pair := range v.Map {
			var err error
			buf, err = appendValue(buf, pair.Key)
			if err != nil {
				return nil, err
			}
			buf, err = appendValue(buf, pair.Val)
			if err != nil {
				return nil, err
			}
		}
		return buf, nil
	default:
		return nil, fmt.Errorf("%w: msgpack kind %d", cryptoerrs.ErrUnsupported, v.Kind)
	}
}

// appendInt dispatches by value range, not by a declared type width
// (spec.md §4.B: "Integer width selection is value-range-based").
func appendInt(buf []byte, v int64) []byte {
	switch {
	case v >= 0 && v <= 127:
		return append(buf, byte(v))
	case v >= -32 && v < 0:
		return append(buf, byte(0x100+v))
	case v >= 0:
		return appendUint(buf, uint64(v))
	default:
		return appendSignedWidth(buf, v)
	}
}

func appendUint(buf []byte, v uint64) []byte {
	switch {
	case v <= 0xFF:
		return append(buf, 0xCC, byte(v))
	case v <= 0xFFFF:
		b := make([]byte, 2)
		binary.BigEndian.PutUint16(b, uint16(v))
		return append(append(buf, 0xCD), b...)
	case v <= 0xFFFFFFFF:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, uint32(v))
		return append(append(buf, 0xCE), b...)
	default:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, v)
		return append(append(buf, 0xCF), b...)
	}
}

func appendSignedWidth(buf []byte, v int64) []byte {
	switch {
	case v >= -128:
		return append(buf, 0xD0, byte(int8(v)))
	case v >= -32768:
		b := make([]byte, 2)
		binary.BigEndian.PutUint16(b, uint16(int16(v)))
		return append(append(buf, 0xD1), b...)
	case v >= -2147483648:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, uint32(int32(v)))
		return append(append(buf, 0xD2), b...)
	default:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, uint64(v))
		return append(append(buf, 0xD3), b...)
	}
}

// appendStrLike encodes raw bytes with the string tags (A0/DA/DB),
// used for both Str and Bytes per spec.md's "does NOT use C4/C5/C6".
func appendStrLike(buf []byte, b []byte) []byte {
	n := len(b)
	switch {
	case n <= 31:
		buf = append(buf, 0xA0|byte(n))
	case n <= 0xFFFF:
		lb := make([]byte, 2)
		binary.BigEndian.PutUint16(lb, uint16(n))
		buf = append(append(buf, 0xDA), lb...)
	default:
		lb := make([]byte, 4)
		binary.BigEndian.PutUint32(lb, uint32(n))
		buf = append(append(buf, 0xDB), lb...)
	}
	return append(buf, b...)
}

func appendArrayHeader(buf []byte, n int) []byte {
	switch {
	case n <= 15:
		return append(buf, 0x90|byte(n))
	case n <= 0xFFFF:
		lb := make([]byte, 2)
		binary.BigEndian.PutUint16(lb, uint16(n))
		return append(append(buf, 0xDC), lb...)
	default:
		lb := make([]byte, 4)
		binary.BigEndian.PutUint32(lb, uint32(n))
		return append(append(buf, 0xDD), lb...)
	}
}

func appendMapHeader(buf []byte, n int) []byte {
	switch {
	case n <= 15:
		return append(buf, 0x80|byte(n))
	case n <= 0xFFFF:
		lb := make([]byte, 2)
		binary.BigEndian.PutUint16(lb, uint16(n))
		return append(append(buf, 0xDE), lb...)
	default:
		lb := make([]byte, 4)
		binary.BigEndian.PutUint32(lb, uint32(n))
		return append(append(buf, 0xDF), lb...)
	}
}
