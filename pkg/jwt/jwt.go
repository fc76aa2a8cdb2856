// Package jwt emite y valida los tokens de recuperación de contraseña.
// Son JWT HS256 de vida corta, independientes del token de sesión en cookie.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Propósito fijo del claim: evita que un token de recuperación se acepte en
// otro flujo que valide con el mismo secreto.
const purposeRecovery = "password-recovery"

// Claims incluye los claims estándar más el propósito del token.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Purpose  string `json:"purpose"`
}

// GenerateRecovery genera un token firmado para restablecer la contraseña de username.
func GenerateRecovery(secret, username, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Username: username,
		Purpose:  purposeRecovery,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseRecovery valida el token y devuelve el username al que pertenece.
// Retorna error si el token es inválido, expirado, de otro propósito o con firma incorrecta.
func ParseRecovery(secret, tokenString string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("claims inválidos")
	}
	if claims.Purpose != purposeRecovery {
		return "", fmt.Errorf("propósito inesperado: %s", claims.Purpose)
	}
	return claims.Username, nil
}
