// Package cryptox provides the at-rest payload sealing used when the store
// is configured with a passphrase: AES-256-GCM with an argon2id-derived key.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"

	"golang.org/x/crypto/argon2"

	"offstash/internal/common"
)

// NonceSize is the AES-GCM nonce length stored alongside sealed payloads.
const NonceSize = 12

// DeriveKey derives a 32-byte AES key from a passphrase and salt using
// argon2id. Parameters are fixed so the same passphrase always yields the
// same key for a given salt.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)
}

// KeyFingerprint returns a stable digest of the key, used to detect a
// changed passphrase before any payload is touched.
func KeyFingerprint(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// Seal encrypts plaintext with AES-GCM under key. A fresh random nonce is
// generated per call and returned separately so it can be stored on the
// record.
func Seal(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	nonce = common.GenerateRandByteArray(NonceSize)
	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)
	return ciphertext, nonce, nil
}

// Open decrypts ciphertext sealed by Seal. A wrong key or tampered
// ciphertext fails authentication and returns an error.
func Open(ciphertext, nonce, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return aesgcm.Open(nil, nonce, ciphertext, nil)
}
