package cryptox

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, keyLength)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := randomKey(t)

	type payload struct {
		Password string `json:"password"`
		Biometry bool   `json:"biometry"`
	}
	in := payload{Password: "s3cret", Biometry: true}

	ciphertext, nonce, err := Seal(in, key)
	require.NoError(t, err)
	require.NotEmpty(t, ciphertext)
	require.Len(t, nonce, nonceLength)

	var out payload
	require.NoError(t, Open(ciphertext, nonce, key, &out))
	require.Equal(t, in, out)
}

func TestOpen_WrongKeyFails(t *testing.T) {
	ciphertext, nonce, err := Seal("value", randomKey(t))
	require.NoError(t, err)

	var out string
	require.Error(t, Open(ciphertext, nonce, randomKey(t), &out))
}

func TestOpen_TamperedCiphertextFails(t *testing.T) {
	key := randomKey(t)
	ciphertext, nonce, err := Seal("value", key)
	require.NoError(t, err)

	ciphertext[0] ^= 0xff

	var out string
	require.Error(t, Open(ciphertext, nonce, key, &out))
}

func TestDeriveDeviceKey_Deterministic(t *testing.T) {
	secret := []byte("device-secret")
	salt := []byte("0123456789abcdef")

	k1 := DeriveDeviceKey(secret, salt)
	k2 := DeriveDeviceKey(secret, salt)
	require.Equal(t, k1, k2)
	require.Len(t, k1, keyLength)

	k3 := DeriveDeviceKey(secret, []byte("fedcba9876543210"))
	require.NotEqual(t, k1, k3)
}

func TestWipe_ZerosBuffer(t *testing.T) {
	buf := []byte("sensitive")
	Wipe(buf)
	for i, b := range buf {
		require.Zero(t, b, "byte %d not wiped", i)
	}
}

func TestEnsureDeviceKey_StableAcrossCalls(t *testing.T) {
	dir := t.TempDir()

	k1, err := EnsureDeviceKey(dir)
	require.NoError(t, err)
	require.Len(t, k1, keyLength)

	k2, err := EnsureDeviceKey(dir)
	require.NoError(t, err)
	require.Equal(t, k1, k2, "key material must be reused, not regenerated")
}
