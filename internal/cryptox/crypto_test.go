package cryptox

import (
	"bytes"
	"errors"
	"testing"

	"github.com/visitdesk/authcore/internal/common"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt-16byt")

	key1 := DeriveKey(password, salt, 1000, 32)
	key2 := DeriveKey(password, salt, 1000, 32)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	if len(key1) != 32 {
		t.Errorf("expected 32-byte key, got %d", len(key1))
	}
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"), 1000, 32)
	key2 := DeriveKey(password, []byte("salt-2"), 1000, 32)

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestDeriveKey_DefaultsApplied(t *testing.T) {
	key := DeriveKey([]byte("p"), []byte("s"), 0, 0)
	if len(key) != KeyLength {
		t.Fatalf("expected default key length %d, got %d", KeyLength, len(key))
	}
}

func TestGenerateSalt(t *testing.T) {
	s1, err := GenerateSalt()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s2, err := GenerateSalt()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s1) != SaltLength {
		t.Fatalf("expected %d-byte salt, got %d", SaltLength, len(s1))
	}
	if bytes.Equal(s1, s2) {
		t.Errorf("two salts are identical; extremely unlikely")
	}
}

func TestGenerateToken(t *testing.T) {
	t1, err := GenerateToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t2, err := GenerateToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if t1 == t2 {
		t.Errorf("two tokens are identical; extremely unlikely")
	}
	if t1 == "" {
		t.Errorf("empty token")
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plaintext := []byte("visitor records are confidential")

	ciphertext, err := Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if bytes.Contains(ciphertext, plaintext) {
		t.Fatalf("ciphertext contains plaintext")
	}

	got, err := Decrypt(ciphertext, key)
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip mismatch: %q != %q", got, plaintext)
	}
}

func TestEncrypt_FreshNonce(t *testing.T) {
	key, _ := GenerateKey()
	plaintext := []byte("same input")

	c1, err := Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	c2, err := Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if bytes.Equal(c1, c2) {
		t.Errorf("two encryptions of the same plaintext are identical")
	}
}

func TestDecrypt_Tampered(t *testing.T) {
	key, _ := GenerateKey()
	ciphertext, err := Encrypt([]byte("payload"), key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	// flip one bit in the sealed portion
	tampered := append([]byte(nil), ciphertext...)
	tampered[len(tampered)-1] ^= 0x01

	if _, err := Decrypt(tampered, key); !errors.Is(err, common.ErrCrypto) {
		t.Fatalf("want ErrCrypto for tampered ciphertext, got %v", err)
	}
}

func TestDecrypt_TooShort(t *testing.T) {
	key, _ := GenerateKey()
	if _, err := Decrypt([]byte{1, 2, 3}, key); !errors.Is(err, common.ErrCrypto) {
		t.Fatalf("want ErrCrypto for short ciphertext, got %v", err)
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	key1, _ := GenerateKey()
	key2, _ := GenerateKey()

	ciphertext, err := Encrypt([]byte("payload"), key1)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if _, err := Decrypt(ciphertext, key2); !errors.Is(err, common.ErrCrypto) {
		t.Fatalf("want ErrCrypto for wrong key, got %v", err)
	}
}

func TestHashEquals(t *testing.T) {
	a := []byte{1, 2, 3}
	b := []byte{1, 2, 3}
	c := []byte{1, 2, 4}

	if !HashEquals(a, b) {
		t.Errorf("equal slices reported unequal")
	}
	if HashEquals(a, c) {
		t.Errorf("unequal slices reported equal")
	}
	if HashEquals(a, a[:2]) {
		t.Errorf("different lengths reported equal")
	}
}

func TestEncodeDecodeText(t *testing.T) {
	in := []byte{0, 1, 2, 0xff}
	out, err := DecodeText(EncodeText(in))
	if err != nil {
		t.Fatalf("DecodeText error: %v", err)
	}
	if !bytes.Equal(in, out) {
		t.Fatalf("text round trip mismatch")
	}
}
