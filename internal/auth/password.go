package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the out-of-band provisioning scripts; hashes must
// verify interchangeably between them and the server.
const bcryptCost = 12

// HashPassword returns a salted bcrypt hash of plain. Hashing the same
// plaintext twice yields different strings.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches hash. It fails closed:
// a malformed or empty hash is simply a non-match, never an error.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
