package passwordreset

import "golang.org/x/crypto/bcrypt"

// BcryptHasher implements PasswordHasher with bcrypt at the default cost.
type BcryptHasher struct{}

func (BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
