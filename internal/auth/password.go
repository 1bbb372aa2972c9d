package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost is fixed at compile time. bcrypt embeds the cost and a random
// salt in the hash itself, so verification needs no extra configuration.
const bcryptCost = 10

// HashPassword returns the bcrypt hash of the given plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
