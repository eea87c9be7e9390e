// Package cryptox seals and opens the JSON payloads kept in the secure item
// store. The platform keychain encrypts transparently; this package is the
// equivalent protection for the portable SQLite-backed store.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"
)

const (
	keyLength   = 32
	saltLength  = 16
	nonceLength = 12

	secretFileName = "device.secret"
	saltFileName   = "device.salt"
)

// DeriveDeviceKey stretches the device secret into an AES-256 key with
// argon2id. Parameters follow the argon2 package recommendation for
// interactive use.
func DeriveDeviceKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, keyLength)
}

// EnsureDeviceKey loads the per-device store key material from dir, creating
// it on first run. The returned key never leaves the process.
func EnsureDeviceKey(dir string) ([]byte, error) {
	secret, err := ensureRandomFile(filepath.Join(dir, secretFileName), keyLength)
	if err != nil {
		return nil, err
	}
	salt, err := ensureRandomFile(filepath.Join(dir, saltFileName), saltLength)
	if err != nil {
		return nil, err
	}
	return DeriveDeviceKey(secret, salt), nil
}

func ensureRandomFile(path string, n int) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err == nil {
		if len(b) != n {
			return nil, fmt.Errorf("cryptox: %s has unexpected length %d", filepath.Base(path), len(b))
		}
		return b, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("cryptox: read %s: %w", path, err)
	}

	b = make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("cryptox: generate key material: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return nil, fmt.Errorf("cryptox: write %s: %w", path, err)
	}
	return b, nil
}

// Seal serializes v to JSON and encrypts it with AES-256-GCM under key.
// A fresh random nonce is generated per call and returned alongside the
// ciphertext.
func Seal(v any, key []byte) (ciphertext, nonce []byte, err error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, nonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	return aesgcm.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// Open decrypts ciphertext produced by Seal and unmarshals the plaintext
// JSON into v. Tampered or foreign-key ciphertext fails authentication.
func Open(ciphertext, nonce, key []byte, v any) error {
	aesgcm, err := newGCM(key)
	if err != nil {
		return err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return err
	}

	return json.Unmarshal(plaintext, v)
}

// Wipe zeroes b in place. Call it on password buffers as soon as they have
// been consumed.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
