package encrypter

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrInvalidKeyLength   = errors.New("encryption key must be 16, 24, or 32 bytes long")
	ErrCiphertextTooShort = errors.New("ciphertext is too short")
	ErrDecryptionFailed   = errors.New("decryption failed: invalid ciphertext or key")
)

func validateKey(key []byte) error {
	switch len(key) {
	case 16, 24, 32:
		return nil
	}
	return fmt.Errorf("%w: got %d bytes", ErrInvalidKeyLength, len(key))
}

func (e *implEncrypter) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

func (e *implEncrypter) Encrypt(plaintext string) (string, error) {
	aead, err := e.gcm()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (e *implEncrypter) Decrypt(ciphertext string) (string, error) {
	aead, err := e.gcm()
	if err != nil {
		return "", err
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}
	if len(raw) < aead.NonceSize() {
		return "", ErrCiphertextTooShort
	}
	nonce, body := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, body, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return string(plain), nil
}

func (e *implEncrypter) Seal(plaintext string) (string, error) {
	ct, err := e.Encrypt(plaintext)
	if err != nil {
		return "", err
	}
	return SealedPrefix + ct, nil
}

func (e *implEncrypter) Reveal(value string) (string, error) {
	if !strings.HasPrefix(value, SealedPrefix) {
		return value, nil
	}
	return e.Decrypt(strings.TrimPrefix(value, SealedPrefix))
}
