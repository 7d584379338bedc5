package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/djmanager/internal/errs"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

const userColumns = `id, username, password_hash, role, active_until, is_active,
	subscription_tier, last_payment_amount, must_change_password, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u      models.User
		tier   sql.NullString
		amount sql.NullInt64
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.ActiveUntil, &u.IsActive,
		&tier, &amount, &u.MustChangePassword, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.SubscriptionTier = tier.String
	if amount.Valid {
		u.LastPaymentAmount = &amount.Int64
	}
	return &u, nil
}

func nullTier(tier string) sql.NullString {
	return sql.NullString{String: tier, Valid: tier != ""}
}

func nullAmount(amount *int64) sql.NullInt64 {
	if amount == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *amount, Valid: true}
}

// ListUsers возвращает всех пользователей в порядке создания.
func (s *Storage) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "storage.postgres.ListUsers"

	rows, err := s.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, username`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		users = append(users, *u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// GetUser возвращает пользователя по ID.
func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.postgres.GetUser"

	u, err := scanUser(s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return u, nil
}

// GetUserByUsername возвращает пользователя по точному совпадению имени.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.postgres.GetUserByUsername"

	u, err := scanUser(s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return u, nil
}

// CreateUser сохраняет нового пользователя.
func (s *Storage) CreateUser(ctx context.Context, u models.User) error {
	const op = "storage.postgres.CreateUser"

	_, err := s.DB.ExecContext(ctx, `INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.Username, u.PasswordHash, u.Role, u.ActiveUntil, u.IsActive,
		nullTier(u.SubscriptionTier), nullAmount(u.LastPaymentAmount), u.MustChangePassword, u.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, errs.ErrUsernameTaken)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateUser заменяет данные существующего пользователя.
func (s *Storage) UpdateUser(ctx context.Context, u models.User) error {
	const op = "storage.postgres.UpdateUser"

	res, err := s.DB.ExecContext(ctx, `UPDATE users
		SET username = $2, password_hash = $3, role = $4, active_until = $5, is_active = $6,
		    subscription_tier = $7, last_payment_amount = $8, must_change_password = $9
		WHERE id = $1`,
		u.ID, u.Username, u.PasswordHash, u.Role, u.ActiveUntil, u.IsActive,
		nullTier(u.SubscriptionTier), nullAmount(u.LastPaymentAmount), u.MustChangePassword)
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, errs.ErrUsernameTaken)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = expectOne(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
