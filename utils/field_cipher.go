package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

const encryptedPrefix = "enc:"

// FieldCipher encrypts individual document fields with AES-256 GCM.
// The key is derived from a passphrase with SHA-256; the nonce is prepended to the ciphertext.
type FieldCipher struct {
	gcm cipher.AEAD
}

// NewFieldCipher returns nil when passphrase is empty, which disables encryption.
func NewFieldCipher(passphrase string) (*FieldCipher, error) {
	if passphrase == "" {
		return nil, nil
	}
	key := sha256.Sum256([]byte(passphrase))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &FieldCipher{gcm: gcm}, nil
}

// Encrypt seals plaintext. Empty and already encrypted values are returned unchanged.
func (c *FieldCipher) Encrypt(plaintext string) (string, error) {
	if c == nil || plaintext == "" || strings.HasPrefix(plaintext, encryptedPrefix) {
		return plaintext, nil
	}
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := c.gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return encryptedPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a value produced by Encrypt. Values without the prefix are
// returned as they are, so documents written before encryption was enabled still load.
func (c *FieldCipher) Decrypt(value string) (string, error) {
	if c == nil || !strings.HasPrefix(value, encryptedPrefix) {
		return value, nil
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, encryptedPrefix))
	if err != nil {
		return "", fmt.Errorf("failed to decode encrypted field: %w", err)
	}
	size := c.gcm.NonceSize()
	if len(data) < size {
		return "", fmt.Errorf("encrypted field too short")
	}
	plain, err := c.gcm.Open(nil, data[:size], data[size:], nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt field: %w", err)
	}
	return string(plain), nil
}
