package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a password using bcrypt. Each call embeds a fresh
// random salt, so the same password never hashes to the same string twice.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash compares a plaintext password against a bcrypt hash.
// A malformed or foreign hash yields false, never an error.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
