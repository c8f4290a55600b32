package signedmsg

import (
	"testing"

	"github.com/gipsh/cryptocore/internal/secp256k1"
	"github.com/stretchr/testify/require"
)

func repeatByte(b byte) [32]byte {
	var out [32]byte
	for i := range out {
		out[i] = b
	}
	return out
}

func TestSignAndVerifyMessageRoundTrip(t *testing.T) {
	priv := repeatByte(0x03)
	msg := []byte("hello bip-137")

	sigB64, err := SignMessage(priv, msg)
	require.NoError(t, err)

	pub, err := secp256k1.PrivateKeyToPublicKey(priv)
	require.NoError(t, err)

	ok := VerifyMessage(msg, sigB64, pub)
	require.True(t, ok)
}

func TestVerifyMessageRejectsTamperedMessage(t *testing.T) {
	priv := repeatByte(0x04)
	sigB64, err := SignMessage(priv, []byte("original message"))
	require.NoError(t, err)

	pub, err := secp256k1.PrivateKeyToPublicKey(priv)
	require.NoError(t, err)

	require.False(t, VerifyMessage([]byte("tampered message"), sigB64, pub))
}

func TestVerifyMessageRejectsShortBase64(t *testing.T) {
	priv := repeatByte(0x05)
	pub, err := secp256k1.PrivateKeyToPublicKey(priv)
	require.NoError(t, err)

	require.False(t, VerifyMessage([]byte("x"), "YQ==", pub))
}

func TestVerifyMessageRejectsWrongPubkey(t *testing.T) {
	privA := repeatByte(0x06)
	privB := repeatByte(0x07)
	msg := []byte("whose signature is this")

	sigB64, err := SignMessage(privA, msg)
	require.NoError(t, err)

	pubB, err := secp256k1.PrivateKeyToPublicKey(privB)
	require.NoError(t, err)

	require.False(t, VerifyMessage(msg, sigB64, pubB))
}

func TestSignedMessageHashIsSingleSHA256(t *testing.T) {
	h := SignedMessageHash([]byte(""))
	// sha256("") per FIPS 180-4 test vector.
	require.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", hexString(h[:]))
}

func hexString(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = digits[c>>4]
		out[i*2+1] = digits[c&0xF]
	}
	return string(out)
}
