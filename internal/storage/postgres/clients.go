package postgres

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/djmanager/internal/models"
)

// ListClients возвращает клиентов пользователя в порядке добавления.
func (s *Storage) ListClients(ctx context.Context, userID string) ([]models.Client, error) {
	const op = "storage.postgres.ListClients"

	rows, err := s.DB.QueryContext(ctx, `SELECT id, user_id, name, phone, email
		FROM clients WHERE user_id = $1 ORDER BY seq`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	clients := []models.Client{}
	for rows.Next() {
		var c models.Client
		if err = rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Email); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		clients = append(clients, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return clients, nil
}

// GetClient возвращает клиента из раздела пользователя.
func (s *Storage) GetClient(ctx context.Context, userID, id string) (*models.Client, error) {
	const op = "storage.postgres.GetClient"

	var c models.Client
	err := s.DB.QueryRowContext(ctx, `SELECT id, user_id, name, phone, email
		FROM clients WHERE user_id = $1 AND id = $2`, userID, id).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return &c, nil
}

// CreateClient добавляет клиента.
func (s *Storage) CreateClient(ctx context.Context, c models.Client) error {
	const op = "storage.postgres.CreateClient"

	_, err := s.DB.ExecContext(ctx, `INSERT INTO clients (user_id, id, name, phone, email)
		VALUES ($1, $2, $3, $4, $5)`, c.UserID, c.ID, c.Name, c.Phone, c.Email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateClient заменяет данные клиента.
func (s *Storage) UpdateClient(ctx context.Context, c models.Client) error {
	const op = "storage.postgres.UpdateClient"

	res, err := s.DB.ExecContext(ctx, `UPDATE clients SET name = $3, phone = $4, email = $5
		WHERE user_id = $1 AND id = $2`, c.UserID, c.ID, c.Name, c.Phone, c.Email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = expectOne(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteClient удаляет клиента.
func (s *Storage) DeleteClient(ctx context.Context, userID, id string) error {
	const op = "storage.postgres.DeleteClient"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM clients WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = expectOne(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
