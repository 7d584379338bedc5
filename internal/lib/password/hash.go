// Package password реализует хеширование и проверку паролей.
//
// GetHash создаёт bcrypt-хеш пароля для хранения.
// CompareHash сравнивает хеш с введённым паролем; сравнение bcrypt
// выполняется за постоянное время.
package password

import (
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/magabrotheeeer/djmanager/internal/errs"
)

// MinLength: минимальная длина пароля в символах.
const MinLength = 4

// Validate проверяет требования к новому паролю.
func Validate(password string) error {
	if utf8.RuneCountInString(password) < MinLength {
		return errs.ErrWeakPassword
	}
	return nil
}

// GetHash принимает пароль пользователя и возвращает его bcrypt-хеш.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt-хеш с введённым паролем.
//
// Несовпадение пароля возвращается как errs.ErrInvalidCredentials,
// повреждённый хеш: как обычная ошибка.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return fmt.Errorf("%s: %w", op, errs.ErrInvalidCredentials)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// dummyHash: хеш для сравнения, когда учётной записи нет.
var dummyHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("djmanager-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
})

// CompareDummy тратит на проверку пароля столько же времени, сколько
// CompareHash, не имея настоящего хеша. Результат всегда отрицательный.
func CompareDummy(externalPassword string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(externalPassword))
}
