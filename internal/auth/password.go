package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// Staff accounts live in the Django auth_user table, so stored hashes use
// Django's "<algorithm>$<params>" encoding.

const (
	algPBKDF2SHA256 = "pbkdf2_sha256"
	algBcryptSHA256 = "bcrypt_sha256"
	algBcrypt       = "bcrypt"

	DefaultPBKDF2Iterations = 260000
)

var ErrUnsupportedHasher = errors.New("unsupported password hasher")

// VerifyDjangoPassword reports whether password matches the encoded hash.
// A malformed hash never matches.
func VerifyDjangoPassword(password, encoded string) (bool, error) {
	alg, rest, ok := strings.Cut(encoded, "$")
	if !ok {
		return false, ErrUnsupportedHasher
	}

	switch alg {
	case algPBKDF2SHA256:
		parts := strings.SplitN(rest, "$", 3)
		if len(parts) != 3 {
			return false, nil
		}
		iterations, err := strconv.Atoi(parts[0])
		if err != nil || iterations <= 0 {
			return false, nil
		}
		want := pbkdf2SHA256(password, parts[1], iterations)
		return hmac.Equal([]byte(want), []byte(parts[2])), nil

	case algBcrypt:
		return bcryptMatches([]byte(password), rest), nil

	case algBcryptSHA256:
		sum := sha256.Sum256([]byte(password))
		return bcryptMatches([]byte(hex.EncodeToString(sum[:])), rest), nil

	default:
		return false, fmt.Errorf("%w: %s", ErrUnsupportedHasher, alg)
	}
}

// HashDjangoPassword encodes password with pbkdf2_sha256, the Django default.
func HashDjangoPassword(password, salt string, iterations int) (string, error) {
	if salt == "" || strings.Contains(salt, "$") {
		return "", errors.New("salt must be non-empty and must not contain '$'")
	}
	if iterations <= 0 {
		iterations = DefaultPBKDF2Iterations
	}
	return fmt.Sprintf("%s$%d$%s$%s", algPBKDF2SHA256, iterations, salt, pbkdf2SHA256(password, salt, iterations)), nil
}

func pbkdf2SHA256(password, salt string, iterations int) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, sha256.Size, sha256.New)
	return base64.StdEncoding.EncodeToString(key)
}

// Django stores bcrypt as "bcrypt$$2b$12$..."; what follows the algorithm
// name is the bcrypt hash itself.
func bcryptMatches(password []byte, hash string) bool {
	if !strings.HasPrefix(hash, "$2") {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), password) == nil
}
