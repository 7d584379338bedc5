package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/djmanager/internal/models"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ListEvents возвращает мероприятия пользователя по убыванию даты,
// при равной дате более поздние вставки идут первыми.
func (s *Storage) ListEvents(ctx context.Context, userID string) ([]models.Event, error) {
	const op = "storage.postgres.ListEvents"

	rows, err := s.DB.QueryContext(ctx, `SELECT id, user_id, name, date, location, client_id,
			income_category, amount_charged, notes
		FROM events WHERE user_id = $1
		ORDER BY date DESC, seq DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	events := []models.Event{}
	index := make(map[string]int)
	for rows.Next() {
		var e models.Event
		if err = rows.Scan(&e.ID, &e.UserID, &e.Name, &e.Date, &e.Location, &e.ClientID,
			&e.IncomeCategory, &e.AmountCharged, &e.Notes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		e.Date = models.DateOf(e.Date)
		index[e.ID] = len(events)
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := s.DB.QueryContext(ctx, `SELECT event_id, id, category, amount
		FROM expense_items WHERE user_id = $1
		ORDER BY event_id, position`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = items.Close()
	}()
	for items.Next() {
		var (
			eventID string
			item    models.ExpenseItem
		)
		if err = items.Scan(&eventID, &item.ID, &item.Category, &item.Amount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if i, ok := index[eventID]; ok {
			events[i].Expenses = append(events[i].Expenses, item)
		}
	}
	if err = items.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return events, nil
}

// GetEvent возвращает мероприятие из раздела пользователя вместе с расходами.
func (s *Storage) GetEvent(ctx context.Context, userID, id string) (*models.Event, error) {
	const op = "storage.postgres.GetEvent"

	var e models.Event
	err := s.DB.QueryRowContext(ctx, `SELECT id, user_id, name, date, location, client_id,
			income_category, amount_charged, notes
		FROM events WHERE user_id = $1 AND id = $2`, userID, id).
		Scan(&e.ID, &e.UserID, &e.Name, &e.Date, &e.Location, &e.ClientID,
			&e.IncomeCategory, &e.AmountCharged, &e.Notes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	e.Date = models.DateOf(e.Date)

	rows, err := s.DB.QueryContext(ctx, `SELECT id, category, amount FROM expense_items
		WHERE user_id = $1 AND event_id = $2 ORDER BY position`, userID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	for rows.Next() {
		var item models.ExpenseItem
		if err = rows.Scan(&item.ID, &item.Category, &item.Amount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		e.Expenses = append(e.Expenses, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &e, nil
}

// CreateEvent сохраняет мероприятие и его расходы в одной транзакции.
func (s *Storage) CreateEvent(ctx context.Context, e models.Event) error {
	const op = "storage.postgres.CreateEvent"

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return insertEvent(ctx, tx, e)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateEvent заменяет мероприятие и его расходы. Порядковый номер
// мероприятия сохраняется.
func (s *Storage) UpdateEvent(ctx context.Context, e models.Event) error {
	const op = "storage.postgres.UpdateEvent"

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE events
			SET name = $3, date = $4, location = $5, client_id = $6,
			    income_category = $7, amount_charged = $8, notes = $9
			WHERE user_id = $1 AND id = $2`,
			e.UserID, e.ID, e.Name, e.Date, e.Location, e.ClientID,
			e.IncomeCategory, e.AmountCharged, e.Notes)
		if err != nil {
			return err
		}
		if err = expectOne(res); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, `DELETE FROM expense_items WHERE user_id = $1 AND event_id = $2`,
			e.UserID, e.ID); err != nil {
			return err
		}
		return insertExpenses(ctx, tx, e)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteEvent удаляет мероприятие. Расходы удаляются каскадно.
func (s *Storage) DeleteEvent(ctx context.Context, userID, id string) error {
	const op = "storage.postgres.DeleteEvent"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM events WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = expectOne(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func insertEvent(ctx context.Context, db execer, e models.Event) error {
	if _, err := db.ExecContext(ctx, `INSERT INTO events (user_id, id, name, date, location, client_id,
			income_category, amount_charged, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.UserID, e.ID, e.Name, e.Date, e.Location, e.ClientID,
		e.IncomeCategory, e.AmountCharged, e.Notes); err != nil {
		return err
	}
	return insertExpenses(ctx, db, e)
}

func insertExpenses(ctx context.Context, db execer, e models.Event) error {
	for i, item := range e.Expenses {
		if _, err := db.ExecContext(ctx, `INSERT INTO expense_items (user_id, event_id, position, id, category, amount)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			e.UserID, e.ID, i, item.ID, item.Category, item.Amount); err != nil {
			return err
		}
	}
	return nil
}
