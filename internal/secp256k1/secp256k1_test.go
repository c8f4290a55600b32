package secp256k1

import (
	"math/big"
	"testing"

	"github.com/gipsh/cryptocore/internal/keccak"
	"github.com/stretchr/testify/require"
)

func repeatByte(b byte) [32]byte {
	var out [32]byte
	for i := range out {
		out[i] = b
	}
	return out
}

// TestSignAndRecoverRoundTrip is spec.md §8 concrete scenario 4 and
// invariant P2: recover_pubkey(h, r, s, v-27) must reproduce the
// signer's public key, and v must land in {27,28,29,30}.
func TestSignAndRecoverRoundTrip(t *testing.T) {
	priv := repeatByte(0x01)
	hash := keccak.Sum256([]byte("hello"))

	sig, err := SignRecoverable(priv, hash)
	require.NoError(t, err)
	require.GreaterOrEqual(t, sig.V, byte(27))
	require.LessOrEqual(t, sig.V, byte(30))

	wantPub, err := PrivateKeyToPublicKey(priv)
	require.NoError(t, err)

	gotPub, err := RecoverPublicKey(hash, sig.R, sig.S, sig.V-27)
	require.NoError(t, err)
	require.Equal(t, wantPub, gotPub)
}

// TestLowS is invariant P4.
func TestLowS(t *testing.T) {
	for i := byte(1); i < 20; i++ {
		priv := repeatByte(i)
		hash := keccak.Sum256([]byte{i})
		sig, err := SignRecoverable(priv, hash)
		require.NoError(t, err)
		require.LessOrEqual(t, sig.S.Cmp(halfN), 0)
	}
}

// TestAddressDerivation is invariant P6.
func TestAddressDerivation(t *testing.T) {
	priv := repeatByte(0x02)
	pub, err := PrivateKeyToPublicKey(priv)
	require.NoError(t, err)

	addr, err := PrivateKeyToAddress(priv)
	require.NoError(t, err)

	h := keccak.Sum256(pub[1:])
	require.Equal(t, "0x"+hexLower(h[12:32]), addr)
}

func TestPrivateKeyRangeRejected(t *testing.T) {
	_, err := PrivateKeyToPublicKey([32]byte{})
	require.Error(t, err)

	var tooBig [32]byte
	nb := new(big.Int).Add(N, big.NewInt(1)).Bytes()
	copy(tooBig[32-len(nb):], nb)
	_, err = PrivateKeyToPublicKey(tooBig)
	require.Error(t, err)
}

func TestRecoverRejectsBadRecid(t *testing.T) {
	hash := keccak.Sum256([]byte("x"))
	_, err := RecoverPublicKey(hash, big.NewInt(1), big.NewInt(1), 4)
	require.Error(t, err)
}

func TestScalarMulGeneratorIdentity(t *testing.T) {
	g := generator()
	doubled := scalarMul(big.NewInt(2), g)
	added := add(g, g)
	require.Equal(t, added.x, doubled.x)
	require.Equal(t, added.y, doubled.y)
}

func TestPointAtInfinityFromVerticalAdd(t *testing.T) {
	g := generator()
	neg := point{x: g.x, y: new(big.Int).Sub(P, g.y)}
	result := add(g, neg)
	require.True(t, isInfinity(result))
}

func TestManyKeysRoundTrip(t *testing.T) {
	for i := byte(1); i < 10; i++ {
		priv := repeatByte(i)
		hash := keccak.Sum256([]byte{i, i, i})
		sig, err := SignRecoverable(priv, hash)
		require.NoError(t, err)

		wantPub, err := PrivateKeyToPublicKey(priv)
		require.NoError(t, err)
		gotPub, err := RecoverPublicKey(hash, sig.R, sig.S, sig.V-27)
		require.NoError(t, err)
		require.Equal(t, wantPub, gotPub)
	}
}
