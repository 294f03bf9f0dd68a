// Package crypto provides the symmetric cipher used to protect OAuth tokens
// at rest.
//
// The stored format is "base64(iv):base64(ciphertext)" with a fresh 16-byte
// IV per encryption and AES-256-CBC under a fixed process-wide 32-byte key.
// The format is load-bearing: rows written by earlier deployments must stay
// decryptable, so neither the algorithm nor the encoding can change without
// a data migration.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// KeyLength is the required key size in bytes (AES-256).
const KeyLength = 32

var errBadPadding = errors.New("crypto: invalid padding")

// Cipher encrypts and decrypts token strings with a fixed key. Safe for
// concurrent use; the key is never mutated after construction.
type Cipher struct {
	key []byte
}

// New creates a Cipher. The key must be exactly KeyLength bytes.
func New(key []byte) (*Cipher, error) {
	if len(key) != KeyLength {
		return nil, fmt.Errorf("crypto: key must be %d bytes, got %d", KeyLength, len(key))
	}
	c := &Cipher{key: make([]byte, KeyLength)}
	copy(c.key, key)
	return c, nil
}

// Encrypt returns plaintext encrypted as "base64(iv):base64(ciphertext)".
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("crypto: creating cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("crypto: generating IV: %w", err)
	}

	padded := pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return base64.StdEncoding.EncodeToString(iv) + ":" +
		base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. It errors on a malformed envelope, bad base64,
// a truncated ciphertext, or corrupt padding.
func (c *Cipher) Decrypt(encrypted string) (string, error) {
	ivPart, ctPart, ok := strings.Cut(encrypted, ":")
	if !ok {
		return "", errors.New("crypto: malformed ciphertext, expected iv:ciphertext")
	}

	iv, err := base64.StdEncoding.DecodeString(ivPart)
	if err != nil {
		return "", fmt.Errorf("crypto: decoding IV: %w", err)
	}
	if len(iv) != aes.BlockSize {
		return "", fmt.Errorf("crypto: IV must be %d bytes, got %d", aes.BlockSize, len(iv))
	}

	ciphertext, err := base64.StdEncoding.DecodeString(ctPart)
	if err != nil {
		return "", fmt.Errorf("crypto: decoding ciphertext: %w", err)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", errors.New("crypto: ciphertext is not a whole number of blocks")
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("crypto: creating cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

// pad applies PKCS#7 padding: n bytes of value n, always at least one byte.
func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, errBadPadding
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, errBadPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errBadPadding
		}
	}
	return data[:len(data)-n], nil
}
