package cryptox

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// kekInfo domain-separates the key-encryption key from any other use of the
// server secret.
const kekInfo = "passkeeper/key-encryption-key/v1"

// KEKFromSecret derives the server's key-encryption key from a configured
// high-entropy secret using HKDF-SHA256. Per-user data keys are wrapped under
// this key before they are persisted, so database access alone is not enough
// to decrypt stored secrets.
func KEKFromSecret(secret []byte) ([]byte, error) {
	kek := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(kekInfo)), kek); err != nil {
		return nil, fmt.Errorf("deriving key-encryption key: %w", err)
	}
	return kek, nil
}

// WrapKey seals a data key under the key-encryption key.
func WrapKey(dataKey, kek []byte) (string, error) {
	return Encrypt(string(dataKey), kek)
}

// UnwrapKey opens a wrapped data key. Failures surface as
// common.ErrDecryptionFailed, same as any other decryption.
func UnwrapKey(blob string, kek []byte) ([]byte, error) {
	plaintext, err := Decrypt(blob, kek)
	if err != nil {
		return nil, err
	}
	return []byte(plaintext), nil
}
