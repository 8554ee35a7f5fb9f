// Package jwt реализует выпуск и проверку JWT токенов, удостоверяющих email пользователя.
//
// Maker определяет интерфейс для создания и проверки токенов.
// MakerImpl - конкретная реализация с единым секретным ключом процесса и сроком жизни токена.
package jwt

import (
	"time"
)

// DefaultTTL - срок жизни токена по умолчанию (7 дней).
const DefaultTTL = 7 * 24 * time.Hour

// Maker описывает интерфейс для генерации и проверки JWT токенов.
type Maker interface {
	// GenerateToken выпускает токен для email.
	GenerateToken(email string) (string, error)
	// ParseToken возвращает *CustomClaims с email.
	ParseToken(tokenStr string) (*CustomClaims, error)
	// Verify проверяет токен и возвращает email владельца.
	Verify(tokenStr string) (string, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
// Нулевой TTL заменяется на DefaultTTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
