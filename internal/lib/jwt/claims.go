package jwt

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/daily-bulletin/internal/lib/apperr"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	Email                string `json:"email"` // Email владельца токена
	jwt.RegisteredClaims        // ExpiresAt, IssuedAt и пр.
}

// GenerateToken создает JWT токен для email, подписывая его секретным ключом.
//
// Пустой email - ErrInvalidInput.
func (j *MakerImpl) GenerateToken(email string) (string, error) {
	const op = "jwt.GenerateToken"
	if strings.TrimSpace(email) == "" {
		return "", fmt.Errorf("%s: %w: email is required", op, apperr.ErrInvalidInput)
	}
	now := time.Now()
	claims := CustomClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken парсит JWT токен, проверяет его подпись и валидность,
// возвращает CustomClaims с данными, если токен корректен.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}

// Verify возвращает email из токена.
//
// Отсутствующий токен - ErrUnauthorized; испорченный, просроченный или
// подписанный чужим ключом - ErrForbidden.
func (j *MakerImpl) Verify(tokenStr string) (string, error) {
	const op = "jwt.Verify"
	if strings.TrimSpace(tokenStr) == "" {
		return "", fmt.Errorf("%s: %w", op, apperr.ErrUnauthorized)
	}
	claims, err := j.ParseToken(tokenStr)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, apperr.ErrForbidden, err)
	}
	if claims.Email == "" {
		return "", fmt.Errorf("%s: %w: token carries no email", op, apperr.ErrForbidden)
	}
	return claims.Email, nil
}
