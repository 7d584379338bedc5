// Package backup выгружает и восстанавливает раздел пользователя целиком.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/djmanager/internal/errs"
	"github.com/magabrotheeeer/djmanager/internal/lib/sl"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// Store описывает операции хранилища, нужные резервному копированию.
type Store interface {
	ListEvents(ctx context.Context, userID string) ([]models.Event, error)
	ListClients(ctx context.Context, userID string) ([]models.Client, error)
	ReplacePartition(ctx context.Context, userID string, events []models.Event, clients []models.Client) error
}

// Invalidator сбрасывает кэшированные сводки пользователя.
type Invalidator interface {
	InvalidateUser(ctx context.Context, userID string) error
}

// Service реализует экспорт и импорт.
type Service struct {
	store Store
	cache Invalidator
	log   *slog.Logger
}

// NewService создаёт новый экземпляр Service.
func NewService(store Store, cache Invalidator, log *slog.Logger) *Service {
	return &Service{store: store, cache: cache, log: log}
}

// Export возвращает все мероприятия и клиентов пользователя.
func (s *Service) Export(ctx context.Context, userID string) (models.Backup, error) {
	const op = "backup.Export"

	events, err := s.store.ListEvents(ctx, userID)
	if err != nil {
		return models.Backup{}, fmt.Errorf("%s: %w: %w", op, errs.ErrStoreUnavailable, err)
	}
	clients, err := s.store.ListClients(ctx, userID)
	if err != nil {
		return models.Backup{}, fmt.Errorf("%s: %w: %w", op, errs.ErrStoreUnavailable, err)
	}
	if events == nil {
		events = []models.Event{}
	}
	if clients == nil {
		clients = []models.Client{}
	}
	return models.Backup{Events: events, Clients: clients}, nil
}

// Import заменяет раздел пользователя содержимым документа raw.
// Документ без ключа events или clients отклоняется целиком.
func (s *Service) Import(ctx context.Context, userID string, raw []byte) (models.Backup, error) {
	const op = "backup.Import"

	doc, err := Decode(raw)
	if err != nil {
		return models.Backup{}, fmt.Errorf("%s: %w", op, err)
	}

	for i := range doc.Clients {
		doc.Clients[i].UserID = userID
		if doc.Clients[i].ID == "" {
			doc.Clients[i].ID = uuid.NewString()
		}
	}
	for i := range doc.Events {
		e := &doc.Events[i]
		e.UserID = userID
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		e.Date = models.DateOf(e.Date)
		for j := range e.Expenses {
			if e.Expenses[j].ID == "" {
				e.Expenses[j].ID = uuid.NewString()
			}
		}
	}
	models.SortEventsByDateDesc(doc.Events)

	if err = s.store.ReplacePartition(ctx, userID, doc.Events, doc.Clients); err != nil {
		return models.Backup{}, fmt.Errorf("%s: %w: %w", op, errs.ErrStoreUnavailable, err)
	}
	if err = s.cache.InvalidateUser(ctx, userID); err != nil {
		s.log.Warn("failed to invalidate dashboard cache", sl.Op(op), sl.Err(err))
	}
	return doc, nil
}

// Decode разбирает и проверяет документ резервной копии. Отсутствующий ключ,
// неразборчивый JSON или нарушение правил данных дают errs.ErrMalformedImport.
func Decode(raw []byte) (models.Backup, error) {
	var dummy models.DummyBackup
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&dummy); err != nil {
		return models.Backup{}, fmt.Errorf("%w: %w", errs.ErrMalformedImport, err)
	}
	if dummy.Events == nil {
		return models.Backup{}, fmt.Errorf("%w: missing events", errs.ErrMalformedImport)
	}
	if dummy.Clients == nil {
		return models.Backup{}, fmt.Errorf("%w: missing clients", errs.ErrMalformedImport)
	}
	if dec.More() {
		return models.Backup{}, fmt.Errorf("%w: trailing data", errs.ErrMalformedImport)
	}
	doc := models.Backup{Events: *dummy.Events, Clients: *dummy.Clients}
	if err := validate(doc); err != nil {
		return models.Backup{}, fmt.Errorf("%w: %w", errs.ErrMalformedImport, err)
	}
	return doc, nil
}

// validate проверяет документ так же, как проверяются отдельные мутации:
// уникальные идентификаторы, неотрицательные суммы, категории из справочников
// и ссылку каждого мероприятия на клиента из того же документа.
// Пустые идентификаторы допустимы, их заполняет Import.
func validate(doc models.Backup) error {
	clientIDs := make(map[string]struct{}, len(doc.Clients))
	for i, c := range doc.Clients {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("clients[%d]: name is required", i)
		}
		if c.ID == "" {
			continue
		}
		if _, dup := clientIDs[c.ID]; dup {
			return fmt.Errorf("clients[%d]: duplicate id %q", i, c.ID)
		}
		clientIDs[c.ID] = struct{}{}
	}

	eventIDs := make(map[string]struct{}, len(doc.Events))
	expenseIDs := make(map[string]struct{})
	for i, e := range doc.Events {
		if e.ID != "" {
			if _, dup := eventIDs[e.ID]; dup {
				return fmt.Errorf("events[%d]: duplicate id %q", i, e.ID)
			}
			eventIDs[e.ID] = struct{}{}
		}
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("events[%d]: name is required", i)
		}
		if e.ClientID == "" {
			return fmt.Errorf("events[%d]: client_id is required", i)
		}
		if _, ok := clientIDs[e.ClientID]; !ok {
			return fmt.Errorf("events[%d]: unknown client %q", i, e.ClientID)
		}
		if !models.IsIncomeCategory(e.IncomeCategory) {
			return fmt.Errorf("events[%d]: unknown income category %q", i, e.IncomeCategory)
		}
		if e.AmountCharged < 0 {
			return fmt.Errorf("events[%d]: negative amount_charged", i)
		}
		for j, x := range e.Expenses {
			if x.ID != "" {
				if _, dup := expenseIDs[x.ID]; dup {
					return fmt.Errorf("events[%d].expenses[%d]: duplicate id %q", i, j, x.ID)
				}
				expenseIDs[x.ID] = struct{}{}
			}
			if !models.IsExpenseCategory(x.Category) {
				return fmt.Errorf("events[%d].expenses[%d]: unknown category %q", i, j, x.Category)
			}
			if x.Amount < 0 {
				return fmt.Errorf("events[%d].expenses[%d]: negative amount", i, j)
			}
		}
	}
	return nil
}

// IsMalformed сообщает, что ошибка вызвана некорректным документом.
func IsMalformed(err error) bool {
	return errors.Is(err, errs.ErrMalformedImport)
}
