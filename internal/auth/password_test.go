package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

const knownPBKDF2 = "pbkdf2_sha256$1000$NaCl1234$CWSNiMVTuHI9yCPRXhcWPTEQpddbBAOBo1V3g+mOgu8="

func TestVerifyDjangoPassword_PBKDF2(t *testing.T) {
	ok, err := VerifyDjangoPassword("correct horse", knownPBKDF2)
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}
	ok, err = VerifyDjangoPassword("wrong horse", knownPBKDF2)
	if err != nil || ok {
		t.Fatalf("expected mismatch, got ok=%v err=%v", ok, err)
	}
}

func TestHashDjangoPasswordMatchesKnownEncoding(t *testing.T) {
	got, err := HashDjangoPassword("correct horse", "NaCl1234", 1000)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if got != knownPBKDF2 {
		t.Fatalf("got %q", got)
	}
	if _, err := HashDjangoPassword("x", "a$b", 1); err == nil {
		t.Fatalf("expected salt error")
	}
}

func TestVerifyDjangoPassword_Bcrypt(t *testing.T) {
	h, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	encoded := "bcrypt$" + string(h)
	if ok, _ := VerifyDjangoPassword("s3cret", encoded); !ok {
		t.Fatalf("expected bcrypt match")
	}
	if ok, _ := VerifyDjangoPassword("nope", encoded); ok {
		t.Fatalf("expected bcrypt mismatch")
	}
}

func TestVerifyDjangoPassword_BcryptSHA256(t *testing.T) {
	sum := sha256.Sum256([]byte("s3cret"))
	h, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(sum[:])), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	if ok, _ := VerifyDjangoPassword("s3cret", "bcrypt_sha256$"+string(h)); !ok {
		t.Fatalf("expected bcrypt_sha256 match")
	}
}

func TestVerifyDjangoPassword_Malformed(t *testing.T) {
	cases := []string{
		"pbkdf2_sha256$abc$salt$hash",
		"pbkdf2_sha256$1000$salt",
		"bcrypt$notahash",
	}
	for _, c := range cases {
		if ok, _ := VerifyDjangoPassword("x", c); ok {
			t.Fatalf("%q: expected no match", c)
		}
	}
	if _, err := VerifyDjangoPassword("x", "md5$a$b"); !errors.Is(err, ErrUnsupportedHasher) {
		t.Fatalf("expected unsupported hasher, got %v", err)
	}
	if _, err := VerifyDjangoPassword("x", "plaintext"); !errors.Is(err, ErrUnsupportedHasher) {
		t.Fatalf("expected unsupported hasher, got %v", err)
	}
}
