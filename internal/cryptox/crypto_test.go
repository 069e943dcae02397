package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveKey([]byte("passphrase"), []byte("salt-01"))
	plaintext := []byte("compressed payload bytes")

	ciphertext, nonce, err := Seal(plaintext, key)
	require.NoError(t, err)
	assert.Len(t, nonce, NonceSize)
	assert.NotEqual(t, plaintext, ciphertext)

	restored, err := Open(ciphertext, nonce, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, restored)
}

func TestOpen_WrongKeyFails(t *testing.T) {
	key := DeriveKey([]byte("passphrase"), []byte("salt-01"))
	other := DeriveKey([]byte("different"), []byte("salt-01"))

	ciphertext, nonce, err := Seal([]byte("secret"), key)
	require.NoError(t, err)

	_, err = Open(ciphertext, nonce, other)
	assert.Error(t, err)
}

func TestOpen_TamperedCiphertextFails(t *testing.T) {
	key := DeriveKey([]byte("passphrase"), []byte("salt-01"))

	ciphertext, nonce, err := Seal([]byte("secret"), key)
	require.NoError(t, err)

	ciphertext[0] ^= 0xFF
	_, err = Open(ciphertext, nonce, key)
	assert.Error(t, err)
}

func TestDeriveKey_DeterministicPerSalt(t *testing.T) {
	a := DeriveKey([]byte("pw"), []byte("salt-a"))
	b := DeriveKey([]byte("pw"), []byte("salt-a"))
	c := DeriveKey([]byte("pw"), []byte("salt-b"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 32)
}

func TestKeyFingerprint_Stable(t *testing.T) {
	key := DeriveKey([]byte("pw"), []byte("salt"))
	assert.Equal(t, KeyFingerprint(key), KeyFingerprint(key))
	assert.Len(t, KeyFingerprint(key), 32)
}
