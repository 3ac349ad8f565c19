package auth

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

var (
	bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}
	saltedPrefixes = []string{"pbkdf2:", "scrypt:"}
)

// IsHashed reports whether stored is in a recognised hash format. Anything
// else is a legacy plaintext credential.
func IsHashed(stored string) bool {
	return hasPrefix(stored, bcryptPrefixes) || hasPrefix(stored, saltedPrefixes)
}

func hasPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// VerifyPassword checks supplied against stored. It accepts bcrypt hashes,
// "method$salt$hex" pbkdf2/scrypt hashes written by earlier deployments, and
// plaintext.
func VerifyPassword(stored, supplied string) bool {
	switch {
	case hasPrefix(stored, bcryptPrefixes):
		return CheckPassword(stored, supplied) == nil
	case hasPrefix(stored, saltedPrefixes):
		return verifySalted(stored, supplied)
	default:
		return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
	}
}

func verifySalted(stored, supplied string) bool {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 {
		return false
	}
	method, salt, want := parts[0], parts[1], parts[2]
	args := strings.Split(method, ":")

	var derived []byte
	switch args[0] {
	case "pbkdf2":
		digest := "sha256"
		iterations := 600000
		if len(args) > 1 {
			digest = args[1]
		}
		if len(args) > 2 {
			n, err := strconv.Atoi(args[2])
			if err != nil || n <= 0 {
				return false
			}
			iterations = n
		}
		newHash, size := digestFunc(digest)
		if newHash == nil {
			return false
		}
		derived = pbkdf2.Key([]byte(supplied), []byte(salt), iterations, size, newHash)
	case "scrypt":
		n, r, p := 1<<15, 8, 1
		if len(args) == 4 {
			var err error
			if n, err = strconv.Atoi(args[1]); err != nil {
				return false
			}
			if r, err = strconv.Atoi(args[2]); err != nil {
				return false
			}
			if p, err = strconv.Atoi(args[3]); err != nil {
				return false
			}
		} else if len(args) != 1 {
			return false
		}
		key, err := scrypt.Key([]byte(supplied), []byte(salt), n, r, p, 64)
		if err != nil {
			return false
		}
		derived = key
	default:
		return false
	}
	got := hex.EncodeToString(derived)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func digestFunc(name string) (func() hash.Hash, int) {
	switch name {
	case "sha1":
		return sha1.New, sha1.Size
	case "sha256":
		return sha256.New, sha256.Size
	case "sha512":
		return sha512.New, sha512.Size
	}
	return nil, 0
}

// Cost returns the bcrypt cost of a stored hash, or zero for other formats.
func Cost(stored string) int {
	cost, err := bcrypt.Cost([]byte(stored))
	if err != nil {
		return 0
	}
	return cost
}
