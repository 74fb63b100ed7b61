// Package cryptox holds the password digest primitives of the client.
//
// Passwords are never stored. A record keeps an encoded string of the form
//
//	argon2id$<salt, base64>$<verifier, base64>
//
// where verifier = SHA-256(argon2id(password, salt)).
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/dmitrijs2005/marketfeed/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	digestScheme = "argon2id"
	saltSize     = 32
)

var ErrMalformedDigest = errors.New("malformed password digest")

func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// HashPassword derives a salted digest of password and returns its encoded
// form, ready to be stored in a user record.
func HashPassword(password []byte) string {
	salt := common.GenerateRandByteArray(saltSize)
	return encodeDigest(salt, MakeVerifier(DeriveMasterKey(password, salt)))
}

// VerifyPassword reports whether password matches the encoded digest.
// The comparison is constant-time.
func VerifyPassword(encoded string, password []byte) (bool, error) {
	salt, verifier, err := decodeDigest(encoded)
	if err != nil {
		return false, err
	}
	candidate := MakeVerifier(DeriveMasterKey(password, salt))
	return subtle.ConstantTimeCompare(verifier, candidate) == 1, nil
}

func encodeDigest(salt, verifier []byte) string {
	return strings.Join([]string{
		digestScheme,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(verifier),
	}, "$")
}

func decodeDigest(encoded string) (salt, verifier []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != digestScheme {
		return nil, nil, ErrMalformedDigest
	}
	if salt, err = base64.RawStdEncoding.DecodeString(parts[1]); err != nil {
		return nil, nil, ErrMalformedDigest
	}
	if verifier, err = base64.RawStdEncoding.DecodeString(parts[2]); err != nil {
		return nil, nil, ErrMalformedDigest
	}
	return salt, verifier, nil
}
