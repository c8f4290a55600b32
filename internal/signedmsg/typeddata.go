// Package signedmsg implements the two message-signing conventions the
// spec calls out as the fourth hard-core piece: EIP-712 typed-data
// hashing (spec.md §4.E) and BIP-137 signed messages, both built on
// top of keccak and secp256k1.
//
// The EIP-712 side is grounded on the teacher's own (now-removed)
// Polymarket order-hashing code, generalized from one fixed Order
// struct to an arbitrary caller-supplied type registry, the way the
// pack's more general typed-data walkers (e.g. the Polymarket Go SDKs
// under other_examples/) do it.
package signedmsg

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/gipsh/cryptocore/internal/cryptoerrs"
	"github.com/gipsh/cryptocore/internal/keccak"
)

// FieldType names one field of a struct type: its name and its
// Solidity type string (e.g. "uint256", "address", "Order[]").
type FieldType struct {
	Name string
	Type string
}

// Types is the caller-supplied type registry: struct name to its
// ordered field list.
type Types map[string][]FieldType

// TypedMessage is the EIP-712 payload: a type registry, the struct
// name being signed, the domain fields, and the message data.
type TypedMessage struct {
	Types       Types
	PrimaryType string
	Domain      map[string]interface{}
	Message     map[string]interface{}
}

var primitiveTypes = func() map[string]bool {
	m := map[string]bool{
		"string": true, "bytes": true, "bool": true, "address": true,
	}
	for n := 8; n <= 256; n += 8 {
		m[fmt.Sprintf("uint%d", n)] = true
		m[fmt.Sprintf("int%d", n)] = true
	}
	for n := 1; n <= 32; n++ {
		m[fmt.Sprintf("bytes%d", n)] = true
	}
	return m
}()

func isArrayType(t string) bool {
	return strings.HasSuffix(t, "]")
}

// stripArraySuffix removes one or more trailing "[]" / "[K]" suffixes,
// yielding the element type used for dependency analysis (spec.md §4.E).
func stripArraySuffix(t string) string {
	for {
		i := strings.LastIndexByte(t, '[')
		if i < 0 || !strings.HasSuffix(t, "]") {
			return t
		}
		t = t[:i]
	}
}

func isPrimitiveType(t string) bool {
	return primitiveTypes[stripArraySuffix(t)] && !isArrayType(t)
}

// deps returns the struct names reachable from s (including s itself),
// found via DFS over s's fields with array suffixes stripped. A type
// that references itself through a cycle is excluded from its own
// further expansion but still appears once, at the head (spec.md §9
// open question 2).
func deps(s string, types Types, visited map[string]bool) []string {
	if visited[s] {
		return nil
	}
	visited[s] = true
	result := []string{s}
	for _, f := range types[s] {
		base := stripArraySuffix(f.Type)
		if isPrimitiveType(base) {
			continue
		}
		if _, known := types[base]; !known {
			continue
		}
		result = append(result, deps(base, types, visited)...)
	}
	return result
}

func fieldListString(name string, fields []FieldType) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Type + " " + f.Name
	}
	return name + "(" + strings.Join(parts, ",") + ")"
}

// encodeType builds the canonical type string for struct s: s's own
// field list first, then every dependency's field list, sorted
// alphabetically (spec.md §4.E, §9).
func encodeType(s string, types Types) (string, error) {
	fields, ok := types[s]
	if !ok {
		return "", fmt.Errorf("%w: struct %q not found in type registry", cryptoerrs.ErrUnsupported, s)
	}

	all := deps(s, types, map[string]bool{})
	rest := all[1:]
	sort.Strings(rest)

	var sb strings.Builder
	sb.WriteString(fieldListString(s, fields))
	for _, d := range rest {
		sb.WriteString(fieldListString(d, types[d]))
	}
	return sb.String(), nil
}

// typeHash is keccak256(encodeType(s)).
func typeHash(s string, types Types) ([32]byte, error) {
	enc, err := encodeType(s, types)
	if err != nil {
		return [32]byte{}, err
	}
	return keccak.Sum256([]byte(enc)), nil
}

// hashStruct implements spec.md §4.E's hashStruct: typeHash(S) ‖ each
// field encoded to 32 bytes, then Keccak-256 of the whole thing.
func hashStruct(s string, data map[string]interface{}, types Types) ([32]byte, error) {
	fields, ok := types[s]
	if !ok {
		return [32]byte{}, fmt.Errorf("%w: struct %q not found in type registry", cryptoerrs.ErrUnsupported, s)
	}

	th, err := typeHash(s, types)
	if err != nil {
		return [32]byte{}, err
	}

	buf := make([]byte, 0, 32*(len(fields)+1))
	buf = append(buf, th[:]...)
	for _, f := range fields {
		enc, err := encodeField(f.Type, data[f.Name], types)
		if err != nil {
			return [32]byte{}, fmt.Errorf("field %q: %w", f.Name, err)
		}
		buf = append(buf, enc[:]...)
	}
	return keccak.Sum256(buf), nil
}

// encodeField encodes a single struct-field value to its 32-byte
// EIP-712 representation (spec.md §4.E's field-encoding table). Array
// types are recognized for dependency analysis only and are not
// encoded here, matching the source's own limitation (spec.md §9
// open question 3).
func encodeField(fieldType string, value interface{}, types Types) ([32]byte, error) {
	var zero [32]byte

	if isArrayType(fieldType) {
		return zero, fmt.Errorf("%w: array field types are not encoded by this encoder", cryptoerrs.ErrUnsupported)
	}

	switch fieldType {
	case "string":
		if value == nil {
			return zero, nil
		}
		s, ok := value.(string)
		if !ok {
			return zero, fmt.Errorf("%w: string field requires a string value", cryptoerrs.ErrInputShape)
		}
		return keccak.Sum256([]byte(s)), nil

	case "bytes":
		if value == nil {
			return zero, nil
		}
		b, ok := value.([]byte)
		if !ok {
			return zero, fmt.Errorf("%w: bytes field requires a []byte value", cryptoerrs.ErrInputShape)
		}
		return keccak.Sum256(b), nil

	case "bool":
		b, ok := value.(bool)
		if !ok {
			return zero, fmt.Errorf("%w: bool field requires a bool value", cryptoerrs.ErrInputShape)
		}
		if b {
			zero[31] = 1
		}
		return zero, nil

	case "address":
		return encodeAddress(value)
	}

	switch {
	case strings.HasPrefix(fieldType, "bytes") && isPrimitiveType(fieldType):
		return encodeFixedBytes(value)
	case strings.HasPrefix(fieldType, "uint") && isPrimitiveType(fieldType):
		return encodeUint(value)
	case strings.HasPrefix(fieldType, "int") && isPrimitiveType(fieldType):
		return encodeInt(value)
	}

	if _, isStruct := types[fieldType]; isStruct {
		if value == nil {
			return zero, nil
		}
		m, ok := value.(map[string]interface{})
		if !ok {
			return zero, fmt.Errorf("%w: struct field %q requires a map value", cryptoerrs.ErrInputShape, fieldType)
		}
		return hashStruct(fieldType, m, types)
	}

	return zero, fmt.Errorf("%w: unknown EIP-712 type %q", cryptoerrs.ErrUnsupported, fieldType)
}

func encodeAddress(value interface{}) ([32]byte, error) {
	var out [32]byte
	switch v := value.(type) {
	case [20]byte:
		copy(out[12:], v[:])
		return out, nil
	case string:
		b, err := hexAddressBytes(v)
		if err != nil {
			return out, err
		}
		copy(out[12:], b[:])
		return out, nil
	default:
		return out, fmt.Errorf("%w: address field requires a [20]byte or hex string", cryptoerrs.ErrInputShape)
	}
}

func encodeFixedBytes(value interface{}) ([32]byte, error) {
	var out [32]byte
	b, ok := value.([]byte)
	if !ok {
		return out, fmt.Errorf("%w: bytesN field requires a []byte value", cryptoerrs.ErrInputShape)
	}
	if len(b) > 32 {
		return out, fmt.Errorf("%w: bytesN value longer than 32 bytes", cryptoerrs.ErrInputRange)
	}
	copy(out[:], b)
	return out, nil
}

func encodeUint(value interface{}) ([32]byte, error) {
	var out [32]byte
	n, ok := toBigInt(value)
	if !ok || n.Sign() < 0 {
		return out, fmt.Errorf("%w: uintN field requires a non-negative integer", cryptoerrs.ErrInputShape)
	}
	b := n.Bytes()
	if len(b) > 32 {
		return out, fmt.Errorf("%w: uintN value does not fit in 256 bits", cryptoerrs.ErrInputRange)
	}
	copy(out[32-len(b):], b)
	return out, nil
}

func encodeInt(value interface{}) ([32]byte, error) {
	var out [32]byte
	n, ok := toBigInt(value)
	if !ok {
		return out, fmt.Errorf("%w: intN field requires an integer", cryptoerrs.ErrInputShape)
	}
	mod := new(big.Int).Lsh(big.NewInt(1), 256)
	v := new(big.Int).Mod(n, mod)
	b := v.Bytes()
	copy(out[32-len(b):], b)
	return out, nil
}

func toBigInt(value interface{}) (*big.Int, bool) {
	switch v := value.(type) {
	case *big.Int:
		return v, v != nil
	case int64:
		return big.NewInt(v), true
	case int:
		return big.NewInt(int64(v)), true
	case uint64:
		return new(big.Int).SetUint64(v), true
	default:
		return nil, false
	}
}

func hexAddressBytes(s string) ([20]byte, error) {
	var out [20]byte
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	if len(s) != 40 {
		return out, fmt.Errorf("%w: address must be 20 bytes", cryptoerrs.ErrInputShape)
	}
	for i := 0; i < 20; i++ {
		hi, err := hexNibble(s[i*2])
		if err != nil {
			return out, err
		}
		lo, err := hexNibble(s[i*2+1])
		if err != nil {
			return out, err
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, fmt.Errorf("%w: invalid hex digit %q", cryptoerrs.ErrInputShape, c)
	}
}

var domainFieldOrder = []string{"name", "version", "chainId", "verifyingContract", "salt"}

var domainFieldTypes = map[string]string{
	"name":              "string",
	"version":           "string",
	"chainId":           "uint256",
	"verifyingContract": "address",
	"salt":              "bytes32",
}

// hashDomain synthesizes the EIP712Domain struct from whichever of the
// five standard keys are present in domain, in the fixed canonical
// order, rejecting any unknown key (spec.md §4.E).
func hashDomain(domain map[string]interface{}) ([32]byte, error) {
	var zero [32]byte
	for k := range domain {
		if _, ok := domainFieldTypes[k]; !ok {
			return zero, fmt.Errorf("%w: unknown EIP-712 domain key %q", cryptoerrs.ErrUnsupported, k)
		}
	}

	var fields []FieldType
	for _, k := range domainFieldOrder {
		if _, present := domain[k]; present {
			fields = append(fields, FieldType{Name: k, Type: domainFieldTypes[k]})
		}
	}

	th := keccak.Sum256([]byte(fieldListString("EIP712Domain", fields)))
	buf := make([]byte, 0, 32*(len(fields)+1))
	buf = append(buf, th[:]...)
	for _, f := range fields {
		enc, err := encodeField(f.Type, domain[f.Name], nil)
		if err != nil {
			return zero, fmt.Errorf("domain field %q: %w", f.Name, err)
		}
		buf = append(buf, enc[:]...)
	}
	return keccak.Sum256(buf), nil
}

// HashFullMessage computes the final EIP-712 digest:
// keccak256(0x19 ‖ 0x01 ‖ domainSeparator ‖ hashStruct(primaryType, message, types)).
func HashFullMessage(tm TypedMessage) ([32]byte, error) {
	domainSep, err := hashDomain(tm.Domain)
	if err != nil {
		return [32]byte{}, err
	}
	structHash, err := hashStruct(tm.PrimaryType, tm.Message, tm.Types)
	if err != nil {
		return [32]byte{}, err
	}

	preimage := make([]byte, 0, 2+32+32)
	preimage = append(preimage, 0x19, 0x01)
	preimage = append(preimage, domainSep[:]...)
	preimage = append(preimage, structHash[:]...)
	return keccak.Sum256(preimage), nil
}

// eip712DomainTypeHash and agentTypeHash are the fixed type hashes
// used by the legacy Agent domain variant (spec.md §4.E).
var (
	eip712DomainTypeHash = keccak.Sum256([]byte("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"))
	agentTypeHash        = keccak.Sum256([]byte("Agent(string source,bytes32 connectionId)"))
)

// AgentDomain is the legacy fixed-shape EIP-712 domain used by
// HashAgentMessage: all four fields are always present.
type AgentDomain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract [20]byte
}

// HashAgentMessage implements the legacy "Agent" domain variant
// (spec.md §4.E): a fixed EIP712Domain hashed inline, followed by a
// fixed Agent(string source, bytes32 connectionId) struct hash, then
// the usual 0x1901 wrapping.
func HashAgentMessage(domain AgentDomain, source string, connectionID [32]byte) [32]byte {
	nameHash := keccak.Sum256([]byte(domain.Name))
	versionHash := keccak.Sum256([]byte(domain.Version))

	chainID := domain.ChainID
	if chainID == nil {
		chainID = big.NewInt(0)
	}
	var chainIDBytes [32]byte
	cb := chainID.Bytes()
	copy(chainIDBytes[32-len(cb):], cb)

	var contract32 [32]byte
	copy(contract32[12:], domain.VerifyingContract[:])

	domainBuf := make([]byte, 0, 32*5)
	domainBuf = append(domainBuf, eip712DomainTypeHash[:]...)
	domainBuf = append(domainBuf, nameHash[:]...)
	domainBuf = append(domainBuf, versionHash[:]...)
	domainBuf = append(domainBuf, chainIDBytes[:]...)
	domainBuf = append(domainBuf, contract32[:]...)
	domainSep := keccak.Sum256(domainBuf)

	sourceHash := keccak.Sum256([]byte(source))
	agentBuf := make([]byte, 0, 32*3)
	agentBuf = append(agentBuf, agentTypeHash[:]...)
	agentBuf = append(agentBuf, sourceHash[:]...)
	agentBuf = append(agentBuf, connectionID[:]...)
	structHash := keccak.Sum256(agentBuf)

	preimage := make([]byte, 0, 2+32+32)
	preimage = append(preimage, 0x19, 0x01)
	preimage = append(preimage, domainSep[:]...)
	preimage = append(preimage, structHash[:]...)
	return keccak.Sum256(preimage)
}
