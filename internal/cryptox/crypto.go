// Package cryptox implements the symmetric codec that protects note content
// at rest, plus the one-way hash primitives used for share-link tokens and
// passwords.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/gauravjot/my-it-tools/internal/common"
	"golang.org/x/crypto/argon2"
)

// ErrDecryptionFailure is returned when a ciphertext blob cannot be opened:
// truncated, tampered with, or encrypted under a different key. The message
// carries no key material.
var ErrDecryptionFailure = errors.New("decryption failure")

// KeySize is the required codec key length (AES-256).
const KeySize = 32

const nonceSize = 12

// Codec encrypts and decrypts opaque payloads with a process-wide AES-256-GCM
// key. A misconfigured key is caught once in NewCodec, not per call.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec builds a Codec from a 32-byte key. Construction fails for any
// other key length so that a misconfiguration is fatal at startup.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Codec{aead: aead}, nil
}

// Encrypt seals plaintext with a fresh random nonce. The nonce is prepended
// to the ciphertext so the blob is self-contained.
func (c *Codec) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := common.GenerateRandByteArray(nonceSize)
	sealed := c.aead.Seal(nil, nonce, plaintext, nil)
	return append(nonce, sealed...), nil
}

// Decrypt opens a blob produced by Encrypt. Any failure, including a blob
// too short to contain a nonce, is reported as ErrDecryptionFailure.
func (c *Codec) Decrypt(blob []byte) ([]byte, error) {
	if len(blob) < nonceSize {
		return nil, ErrDecryptionFailure
	}
	plaintext, err := c.aead.Open(nil, blob[:nonceSize], blob[nonceSize:], nil)
	if err != nil {
		return nil, ErrDecryptionFailure
	}
	return plaintext, nil
}

// HashToken returns the hex SHA-256 digest of a share-link token. Only this
// digest is ever persisted; lookups re-hash the presented token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// HashPassword derives an Argon2id hash of password with a random per-record
// salt. The result is a storable string of the form
// "argon2id$<saltHex>$<hashHex>".
func HashPassword(password string) string {
	salt := common.GenerateRandByteArray(saltLen)
	sum := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return "argon2id$" + hex.EncodeToString(salt) + "$" + hex.EncodeToString(sum)
}

// VerifyPassword re-derives the hash for candidate using the salt embedded in
// stored and compares in constant time. Malformed stored values never verify.
func VerifyPassword(stored, candidate string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 3 || parts[0] != "argon2id" {
		return false
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(candidate), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return subtle.ConstantTimeCompare(want, got) == 1
}
