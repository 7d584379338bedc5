// Package errs содержит общие sentinel-ошибки, которыми обмениваются слои приложения.
//
// Сервисы и хранилища оборачивают их через fmt.Errorf("%s: %w", op, err),
// а HTTP-слой сопоставляет их со статусами через errors.Is.
package errs

import "errors"

// Ошибки аутентификации.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountDisabled     = errors.New("account disabled")
	ErrSubscriptionExpired = errors.New("subscription expired")
	// ErrPasswordChangeRequired возвращается, пока пользователь не сменил выданный пароль.
	ErrPasswordChangeRequired = errors.New("password change required")
	ErrWeakPassword           = errors.New("password too short")
	ErrAlreadyInitialized     = errors.New("admin account already exists")
)

// Нарушения доменных инвариантов.
var (
	ErrClientRequired  = errors.New("client is required")
	ErrClientInUse     = errors.New("client is referenced by events")
	ErrMalformedImport = errors.New("malformed import document")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrInvalid         = errors.New("invalid")
)

// Ошибки хранилища.
var (
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)
