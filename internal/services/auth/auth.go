// Package auth отвечает за вход по логину и паролю, проверку состояния учётной
// записи, выпуск JWT, смену пароля и создание первого администратора.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/djmanager/internal/errs"
	"github.com/magabrotheeeer/djmanager/internal/lib/jwt"
	"github.com/magabrotheeeer/djmanager/internal/lib/password"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// AdminTTL: срок действия учётной записи администратора, создаваемой при инициализации.
const AdminTTL = 10 * 365 * 24 * time.Hour

// UserStore описывает контракт хранилища пользователей.
type UserStore interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user models.User) error
	UpdateUser(ctx context.Context, user models.User) error
}

// Service реализует аутентификацию и авторизацию.
type Service struct {
	users    UserStore
	jwtMaker jwt.Maker
	log      *slog.Logger
	now      func() time.Time
}

// NewService создаёт новый экземпляр Service.
func NewService(users UserStore, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
		now:      time.Now,
	}
}

// Authenticate проверяет логин и пароль и состояние учётной записи.
//
// Порядок проверок: неизвестный логин или неверный пароль, затем отключённая
// учётная запись, затем истёкшая подписка (только для роли user).
func (s *Service) Authenticate(ctx context.Context, username, rawPassword string) (*models.User, error) {
	const op = "auth.Authenticate"

	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, errs.ErrNotFound) {
		password.CompareDummy(rawPassword)
		return nil, fmt.Errorf("%s: %w", op, errs.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, errs.ErrStoreUnavailable, err)
	}
	if err = password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = CheckAccount(*user, s.now()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Login аутентифицирует пользователя и выпускает токен сессии.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (string, *models.User, error) {
	const op = "auth.Login"

	user, err := s.Authenticate(ctx, username, rawPassword)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	token, err := s.jwtMaker.GenerateToken(jwt.Session{
		UserID:             user.ID,
		Username:           user.Username,
		Role:               user.Role,
		MustChangePassword: user.MustChangePassword,
	})
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// ValidateToken проверяет подпись и срок действия токена.
func (s *Service) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	const op = "auth.ValidateToken"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, errs.ErrInvalidCredentials, err)
	}
	return claims, nil
}

// CheckAccess заново проверяет учётную запись уже выданной сессии,
// чтобы отключение администратором действовало сразу.
func (s *Service) CheckAccess(ctx context.Context, userID string) (*models.User, error) {
	const op = "auth.CheckAccess"

	user, err := s.users.GetUser(ctx, userID)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, errs.ErrStoreUnavailable, err)
	}
	if err = CheckAccount(*user, s.now()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// ChangePassword устанавливает пользователю новый пароль и снимает
// требование его смены.
func (s *Service) ChangePassword(ctx context.Context, userID, newPassword string) error {
	const op = "auth.ChangePassword"

	if err := password.Validate(newPassword); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, storeErr(err))
	}
	hash, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	user.PasswordHash = hash
	user.MustChangePassword = false
	if err = s.users.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return nil
}

// ResetPassword задаёт пароль пользователю username от имени оператора.
// Пользователь должен будет сменить его при следующем входе.
func (s *Service) ResetPassword(ctx context.Context, username, newPassword string) error {
	const op = "auth.ResetPassword"

	if err := password.Validate(newPassword); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, storeErr(err))
	}
	hash, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	user.PasswordHash = hash
	user.MustChangePassword = true
	if err = s.users.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return nil
}

// Bootstrap создаёт первого администратора. Возвращает errs.ErrAlreadyInitialized,
// если администратор уже существует. Созданный администратор обязан сменить
// пароль после первого входа.
func (s *Service) Bootstrap(ctx context.Context, username, rawPassword string) (*models.User, error) {
	const op = "auth.Bootstrap"

	if err := password.Validate(rawPassword); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, errs.ErrStoreUnavailable, err)
	}
	for _, u := range users {
		if u.IsAdmin() {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrAlreadyInitialized)
		}
	}

	hash, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	now := s.now()
	admin := models.User{
		ID:                 uuid.NewString(),
		Username:           username,
		PasswordHash:       hash,
		Role:               models.RoleAdmin,
		ActiveUntil:        now.Add(AdminTTL),
		IsActive:           true,
		MustChangePassword: true,
		CreatedAt:          now,
	}
	if err = s.users.CreateUser(ctx, admin); err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	s.log.Warn("administrator account created, password change required",
		slog.String("username", username))
	return &admin, nil
}

// Subscription возвращает состояние подписки пользователя на текущий момент.
func (s *Service) Subscription(ctx context.Context, userID string) (models.SubscriptionWarning, error) {
	const op = "auth.Subscription"

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return models.SubscriptionWarning{}, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return WarningFor(*user, s.now()), nil
}

// CheckAccount проверяет, что учётная запись включена и подписка не истекла.
// Срок подписки администратора не проверяется.
func CheckAccount(user models.User, now time.Time) error {
	if !user.IsActive {
		return errs.ErrAccountDisabled
	}
	if !user.IsAdmin() && now.After(user.ActiveUntil) {
		return errs.ErrSubscriptionExpired
	}
	return nil
}

// storeErr оставляет ErrNotFound и ErrUsernameTaken как есть, остальные
// ошибки хранилища помечает ErrStoreUnavailable.
func storeErr(err error) error {
	if errors.Is(err, errs.ErrNotFound) || errors.Is(err, errs.ErrUsernameTaken) {
		return err
	}
	return fmt.Errorf("%w: %w", errs.ErrStoreUnavailable, err)
}
