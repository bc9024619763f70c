package encrypter

// Encrypter seals and opens short secrets (channel credentials) with AES-GCM.
type Encrypter interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
	// Reveal returns value unchanged unless it carries SealedPrefix, in which
	// case the remainder is decrypted.
	Reveal(value string) (string, error)
	// Seal encrypts plaintext and adds SealedPrefix.
	Seal(plaintext string) (string, error)
}

// SealedPrefix marks a configuration value as encrypted.
const SealedPrefix = "enc:"

type implEncrypter struct {
	key []byte
}

// New creates an Encrypter. The key must be 16, 24, or 32 bytes long.
func New(key string) (Encrypter, error) {
	if err := validateKey([]byte(key)); err != nil {
		return nil, err
	}
	return &implEncrypter{key: []byte(key)}, nil
}
