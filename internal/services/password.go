package services

import "golang.org/x/crypto/bcrypt"

// HashPassword applies bcrypt with its default cost; the salt is generated
// fresh on every call.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash. A
// malformed hash and a wrong password are indistinguishable to the caller:
// both return false.
func VerifyPassword(password string, passwordHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil
}
