// Package cryptox implements the cryptographic core shared by both the local
// vault and the server: PBKDF2 key derivation and an authenticated
// (AES-256-GCM) codec for individual secrets.
//
// Ciphertext blobs are versioned: a single format byte precedes the nonce so
// the codec can evolve without breaking previously stored vaults. Every
// decryption failure, whether a wrong key, a truncated blob, or an unknown
// version, is reported as common.ErrDecryptionFailed so callers cannot build
// an oracle distinguishing the reasons.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"passkeeper/internal/common"
)

const (
	// BlobVersion is the current ciphertext format version.
	BlobVersion = 1

	// KeySize is the AES-256 key length in bytes.
	KeySize = 32

	// SaltSize is the length of a per-vault derivation salt.
	SaltSize = 16

	// Iterations is the PBKDF2 round count.
	Iterations = 100_000

	nonceSize = 12
)

// DeriveKey derives a KeySize-byte symmetric key from a master password and a
// salt using PBKDF2-HMAC-SHA256. It is deterministic: the same inputs always
// produce the same key, across process restarts.
func DeriveKey(password []byte, salt []byte) []byte {
	return pbkdf2.Key(password, salt, Iterations, KeySize, sha256.New)
}

// NewSalt returns a fresh random salt. Each vault gets its own salt; salts are
// never shared across vaults or hardcoded.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// NewKey returns a fresh random symmetric key, used as the per-user data key
// on the server.
func NewKey() []byte {
	return common.GenerateRandByteArray(KeySize)
}

// Encrypt seals plaintext under key with AES-256-GCM and returns a
// base64-encoded blob: version byte || nonce || ciphertext+tag.
func Encrypt(plaintext string, key []byte) (string, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("nonce generation: %w", err)
	}

	blob := make([]byte, 0, 1+nonceSize+len(plaintext)+aead.Overhead())
	blob = append(blob, BlobVersion)
	blob = append(blob, nonce...)
	blob = aead.Seal(blob, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt opens a blob produced by Encrypt. Any failure mode (bad encoding,
// truncation, unknown version, wrong key, tampering) yields
// common.ErrDecryptionFailed.
func Decrypt(blob string, key []byte) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", common.ErrDecryptionFailed
	}

	if len(raw) < 1+nonceSize {
		return "", common.ErrDecryptionFailed
	}
	if raw[0] != BlobVersion {
		return "", common.ErrDecryptionFailed
	}

	aead, err := newAEAD(key)
	if err != nil {
		return "", err
	}

	nonce, ciphertext := raw[1:1+nonceSize], raw[1+nonceSize:]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", common.ErrDecryptionFailed
	}

	return string(plaintext), nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("invalid key length: %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher init: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("gcm init: %w", err)
	}
	return aead, nil
}
