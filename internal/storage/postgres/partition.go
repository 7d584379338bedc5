package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/djmanager/internal/models"
)

// ReplacePartition в одной транзакции удаляет все мероприятия и клиентов
// пользователя и записывает переданные. Мероприятия вставляются с конца,
// поэтому при равной дате сохраняется порядок events.
func (s *Storage) ReplacePartition(ctx context.Context, userID string, events []models.Event, clients []models.Client) error {
	const op = "storage.postgres.ReplacePartition"

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE user_id = $1`, userID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM clients WHERE user_id = $1`, userID); err != nil {
			return err
		}
		for _, c := range clients {
			if _, err := tx.ExecContext(ctx, `INSERT INTO clients (user_id, id, name, phone, email)
				VALUES ($1, $2, $3, $4, $5)`, userID, c.ID, c.Name, c.Phone, c.Email); err != nil {
				return err
			}
		}
		for i := len(events) - 1; i >= 0; i-- {
			e := events[i]
			e.UserID = userID
			if err := insertEvent(ctx, tx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
