// Package jwt реализует выпуск и разбор JWT-токенов сессии.
//
// Maker определяет интерфейс для создания и проверки токенов,
// MakerImpl: реализация с секретным ключом и временем жизни токена.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT-токенов.
type Maker interface {
	GenerateToken(session Session) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// Session: данные пользователя, которые попадают в токен.
type Session struct {
	UserID             string
	Username           string
	Role               string
	MustChangePassword bool
}

// MakerImpl реализует интерфейс Maker.
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
	now       func() time.Time
}

// NewJWTMaker создаёт новый MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
		now:       time.Now,
	}
}
