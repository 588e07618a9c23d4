// ABOUTME: Message encryption and integrity hashing for doctor/patient messaging
// ABOUTME: PBKDF2-derived AES-GCM with a shared passphrase, SHA-256 content hashes

package securemsg

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLen    = 16
	keyLen     = 32
	iterations = 100_000
)

var errCiphertextTooShort = errors.New("ciphertext too short")

// Codec encrypts and decrypts message content with a key derived from a
// shared passphrase. Each message gets a fresh salt and nonce, so equal
// plaintexts never produce equal ciphertexts.
type Codec struct {
	passphrase []byte
}

func New(passphrase string) *Codec {
	return &Codec{passphrase: []byte(passphrase)}
}

// Encrypt returns base64(salt | nonce | AES-GCM ciphertext). Empty input
// encrypts to empty, matching the web client's behavior.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	gcm, err := c.aead(salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)

	out := make([]byte, 0, len(salt)+len(nonce)+len(sealed))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, sealed...)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. It fails on truncated input, tampered
// ciphertext, or a mismatched passphrase.
func (c *Codec) Decrypt(encrypted string) (string, error) {
	if encrypted == "" {
		return "", nil
	}

	raw, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("invalid message encoding: %w", err)
	}
	if len(raw) < saltLen {
		return "", errCiphertextTooShort
	}

	salt, rest := raw[:saltLen], raw[saltLen:]
	gcm, err := c.aead(salt)
	if err != nil {
		return "", err
	}
	if len(rest) < gcm.NonceSize() {
		return "", errCiphertextTooShort
	}

	nonce, sealed := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt message: %w", err)
	}
	return string(plain), nil
}

func (c *Codec) aead(salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(c.passphrase, salt, iterations, keyLen, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Hash returns the hex SHA-256 of a message, used as an integrity hash
// computed over the plaintext before encryption.
func Hash(message string) string {
	sum := sha256.Sum256([]byte(message))
	return hex.EncodeToString(sum[:])
}

// VerifyHash reports whether the message matches the integrity hash,
// using a constant-time comparison.
func VerifyHash(message, hash string) bool {
	expected := Hash(message)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(hash)) == 1
}
