package signedmsg

import (
	"math/big"
	"testing"

	"github.com/gipsh/cryptocore/internal/keccak"
	"github.com/stretchr/testify/require"
)

// TestMailExampleStepwise is spec.md §8 concrete scenario 6: recompute
// every intermediate (type hash, domain separator, struct hash, final
// hash) against hand-derived bytes.
func TestMailExampleStepwise(t *testing.T) {
	types := Types{
		"Mail": []FieldType{{Name: "contents", Type: "string"}},
	}

	tm := TypedMessage{
		Types:       types,
		PrimaryType: "Mail",
		Domain:      map[string]interface{}{"name": "x"},
		Message:     map[string]interface{}{"contents": "hi"},
	}

	th, err := typeHash("Mail", types)
	require.NoError(t, err)
	require.Equal(t, keccak.Sum256([]byte("Mail(string contents)")), th)

	wantDomainTypeHash := keccak.Sum256([]byte("EIP712Domain(string name)"))
	wantNameHash := keccak.Sum256([]byte("x"))
	wantDomainSep := keccak.Sum256(append(append([]byte{}, wantDomainTypeHash[:]...), wantNameHash[:]...))

	domainSep, err := hashDomain(tm.Domain)
	require.NoError(t, err)
	require.Equal(t, wantDomainSep, domainSep)

	wantContentsHash := keccak.Sum256([]byte("hi"))
	wantStructHash := keccak.Sum256(append(append([]byte{}, th[:]...), wantContentsHash[:]...))

	structHash, err := hashStruct("Mail", tm.Message, types)
	require.NoError(t, err)
	require.Equal(t, wantStructHash, structHash)

	preimage := append([]byte{0x19, 0x01}, domainSep[:]...)
	preimage = append(preimage, structHash[:]...)
	want := keccak.Sum256(preimage)

	got, err := HashFullMessage(tm)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// TestTypeHashIndependentOfKeyOrder is invariant P7.
func TestTypeHashIndependentOfKeyOrder(t *testing.T) {
	types1 := Types{
		"Person": []FieldType{{Name: "name", Type: "string"}, {Name: "wallet", Type: "address"}},
		"Mail":   []FieldType{{Name: "from", Type: "Person"}, {Name: "to", Type: "Person"}, {Name: "contents", Type: "string"}},
	}
	th1, err := typeHash("Mail", types1)
	require.NoError(t, err)

	// Same registry, fields declared in a different map-literal order —
	// typeHash must only depend on types["Mail"]'s own field order, not
	// Go map iteration order over the registry.
	types2 := Types{
		"Mail":   []FieldType{{Name: "from", Type: "Person"}, {Name: "to", Type: "Person"}, {Name: "contents", Type: "string"}},
		"Person": []FieldType{{Name: "name", Type: "string"}, {Name: "wallet", Type: "address"}},
	}
	th2, err := typeHash("Mail", types2)
	require.NoError(t, err)

	require.Equal(t, th1, th2)
}

func TestSelfReferentialCycleExcludesSelf(t *testing.T) {
	types := Types{
		"Node": []FieldType{{Name: "value", Type: "uint256"}, {Name: "next", Type: "Node"}},
	}
	enc, err := encodeType("Node", types)
	require.NoError(t, err)
	require.Equal(t, "Node(uint256 value,Node next)", enc)
}

func TestUnknownDomainKeyRejected(t *testing.T) {
	_, err := hashDomain(map[string]interface{}{"bogus": "1"})
	require.Error(t, err)
}

func TestUnknownPrimaryTypeRejected(t *testing.T) {
	_, err := HashFullMessage(TypedMessage{
		Types:       Types{},
		PrimaryType: "Nope",
		Domain:      map[string]interface{}{},
		Message:     map[string]interface{}{},
	})
	require.Error(t, err)
}

func TestArrayFieldTypeNotEncoded(t *testing.T) {
	types := Types{
		"Group": []FieldType{{Name: "members", Type: "string[]"}},
	}
	_, err := hashStruct("Group", map[string]interface{}{"members": []string{"a", "b"}}, types)
	require.Error(t, err)
}

func TestNestedStructEncoding(t *testing.T) {
	types := Types{
		"Person": []FieldType{{Name: "name", Type: "string"}, {Name: "wallet", Type: "address"}},
		"Mail":   []FieldType{{Name: "from", Type: "Person"}, {Name: "to", Type: "Person"}, {Name: "contents", Type: "string"}},
	}

	addr, err := hexAddressBytes("0xCCCCccccCCCCcCCCCCCcCcCccCcCCCcCcccccccC")
	require.NoError(t, err)

	from := map[string]interface{}{"name": "Cow", "wallet": addr}
	to := map[string]interface{}{"name": "Bob", "wallet": addr}
	message := map[string]interface{}{"from": from, "to": to, "contents": "Hello, Bob!"}

	h, err := hashStruct("Mail", message, types)
	require.NoError(t, err)
	require.NotZero(t, h)
}

func TestHashAgentMessageStepwise(t *testing.T) {
	domain := AgentDomain{
		Name:              "Hyperliquid",
		Version:           "1",
		ChainID:           big.NewInt(1337),
		VerifyingContract: [20]byte{},
	}
	var connID [32]byte
	connID[31] = 0x01

	got := HashAgentMessage(domain, "a.ui.hyperliquid.xyz", connID)

	nameHash := keccak.Sum256([]byte(domain.Name))
	versionHash := keccak.Sum256([]byte(domain.Version))
	var chainIDBytes [32]byte
	chainIDBytes[31] = 0x39 // 1337 = 0x539
	chainIDBytes[30] = 0x05

	domainBuf := append([]byte{}, eip712DomainTypeHash[:]...)
	domainBuf = append(domainBuf, nameHash[:]...)
	domainBuf = append(domainBuf, versionHash[:]...)
	domainBuf = append(domainBuf, chainIDBytes[:]...)
	domainBuf = append(domainBuf, make([]byte, 32)...)
	wantDomainSep := keccak.Sum256(domainBuf)

	sourceHash := keccak.Sum256([]byte("a.ui.hyperliquid.xyz"))
	agentBuf := append([]byte{}, agentTypeHash[:]...)
	agentBuf = append(agentBuf, sourceHash[:]...)
	agentBuf = append(agentBuf, connID[:]...)
	wantStructHash := keccak.Sum256(agentBuf)

	preimage := append([]byte{0x19, 0x01}, wantDomainSep[:]...)
	preimage = append(preimage, wantStructHash[:]...)
	want := keccak.Sum256(preimage)

	require.Equal(t, want, got)
}
