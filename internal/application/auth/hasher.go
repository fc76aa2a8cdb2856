package auth

import (
	"github.com/tu-usuario/taller-pro/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher abstrae el hash de contraseñas del Credential Store.
// Dos implementaciones: la legacy (djb2, compatible con los hashes ya
// almacenados por el sistema original) y bcrypt para despliegues nuevos.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// NewHasher elige la implementación según configuración.
func NewHasher(legacy bool) PasswordHasher {
	if legacy {
		return legacyHasher{}
	}
	return bcryptHasher{}
}

// legacyHasher reproduce el esquema original: hash determinista djb2.
// Dos contraseñas distintas pueden colisionar y ambas autenticar; es un
// defecto heredado que el modo legacy conserva a propósito.
type legacyHasher struct{}

func (legacyHasher) Hash(password string) (string, error) {
	return token.LegacyHash(password), nil
}

func (legacyHasher) Verify(password, hash string) bool {
	return token.LegacyHash(password) == hash
}

// bcryptHasher usa bcrypt con costo por defecto.
type bcryptHasher struct{}

func (bcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (bcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
