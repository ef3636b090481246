// Package cryptox implements the cryptographic primitives shared by the
// authentication core and the host application's storage layer: password
// key derivation, secure random generation, and symmetric encryption.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/visitdesk/authcore/internal/common"
)

const (
	// DefaultIterations is the PBKDF2 iteration count used when the caller
	// does not inject one.
	DefaultIterations = 100000

	// KeyLength is the derived key / password hash length in bytes.
	KeyLength = 32

	// SaltLength is the per-account salt length in bytes.
	SaltLength = 16

	// TokenLength is the session token length in bytes before encoding.
	TokenLength = 32
)

// DeriveKey stretches a password with PBKDF2-HMAC-SHA256. The same inputs
// always produce the same output.
func DeriveKey(password, salt []byte, iterations, keyLen int) []byte {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	if keyLen <= 0 {
		keyLen = KeyLength
	}
	return pbkdf2.Key(password, salt, iterations, keyLen, sha256.New)
}

// GenerateSalt returns a fresh random per-account salt.
func GenerateSalt() ([]byte, error) {
	return randBytes(SaltLength)
}

// GenerateToken returns a fresh 256-bit session token encoded as URL-safe
// base64 text.
func GenerateToken() (string, error) {
	b, err := randBytes(TokenLength)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GenerateKey returns a fresh 256-bit symmetric key for at-rest encryption.
func GenerateKey() ([]byte, error) {
	return randBytes(KeyLength)
}

func randBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// Never degrade to a non-secure generator.
		return nil, fmt.Errorf("%w: rng: %v", common.ErrCrypto, err)
	}
	return b, nil
}

// Encrypt seals plaintext with AES-256-GCM under key. A fresh random nonce is
// generated per call and prepended to the returned ciphertext.
func Encrypt(plaintext, key []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	nonce, err := randBytes(aead.NonceSize())
	if err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens ciphertext produced by Encrypt. It fails when the input is
// shorter than one nonce or when the authentication tag does not verify.
func Decrypt(ciphertext, key []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < aead.NonceSize() {
		return nil, fmt.Errorf("%w: ciphertext too short", common.ErrCrypto)
	}
	nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCrypto, err)
	}
	return plaintext, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: cipher init: %v", common.ErrCrypto, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: aead init: %v", common.ErrCrypto, err)
	}
	return aead, nil
}

// HashEquals compares two hash or token byte strings in constant time.
func HashEquals(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// EncodeText and DecodeText convert hashes, salts, and ciphertexts to the
// base64 form used by text storage columns.
func EncodeText(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func DecodeText(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
