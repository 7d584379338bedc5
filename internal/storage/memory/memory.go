// Package memory реализует хранилище в памяти процесса. Используется в тестах
// и как драйвер хранилища для локального запуска без PostgreSQL.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/magabrotheeeer/djmanager/internal/errs"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

type eventRecord struct {
	seq   int64
	event models.Event
}

// Storage хранит пользователей и разделы данных (мероприятия и клиенты)
// каждого пользователя. Защищено RWMutex.
type Storage struct {
	mu      sync.RWMutex
	seq     int64
	users   map[string]models.User
	events  map[string][]eventRecord
	clients map[string][]models.Client
}

// New создаёт пустое хранилище.
func New() *Storage {
	return &Storage{
		users:   make(map[string]models.User),
		events:  make(map[string][]eventRecord),
		clients: make(map[string][]models.Client),
	}
}

// Ping всегда успешен: хранилище живёт в памяти процесса.
func (s *Storage) Ping(_ context.Context) error {
	return nil
}

// Close ничего не освобождает.
func (s *Storage) Close() error {
	return nil
}

// ListUsers возвращает всех пользователей в порядке создания.
func (s *Storage) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].Username < users[j].Username
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// GetUser возвращает пользователя по ID.
func (s *Storage) GetUser(_ context.Context, id string) (*models.User, error) {
	const op = "storage.memory.GetUser"
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	}
	return &u, nil
}

// GetUserByUsername ищет пользователя по точному совпадению имени.
func (s *Storage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	const op = "storage.memory.GetUserByUsername"
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
}

// CreateUser сохраняет нового пользователя.
func (s *Storage) CreateUser(_ context.Context, user models.User) error {
	const op = "storage.memory.CreateUser"
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.usernameTakenLocked(user.Username, "") {
		return fmt.Errorf("%s: %w", op, errs.ErrUsernameTaken)
	}
	s.users[user.ID] = user
	return nil
}

// UpdateUser заменяет данные существующего пользователя.
func (s *Storage) UpdateUser(_ context.Context, user models.User) error {
	const op = "storage.memory.UpdateUser"
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	}
	if s.usernameTakenLocked(user.Username, user.ID) {
		return fmt.Errorf("%s: %w", op, errs.ErrUsernameTaken)
	}
	s.users[user.ID] = user
	return nil
}

func (s *Storage) usernameTakenLocked(username, exceptID string) bool {
	for id, u := range s.users {
		if id != exceptID && u.Username == username {
			return true
		}
	}
	return false
}

// ListEvents возвращает мероприятия пользователя по убыванию даты.
func (s *Storage) ListEvents(_ context.Context, userID string) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.events[userID]
	events := make([]models.Event, 0, len(records))
	for _, r := range records {
		events = append(events, cloneEvent(r.event))
	}
	return events, nil
}

// GetEvent возвращает мероприятие из раздела пользователя.
func (s *Storage) GetEvent(_ context.Context, userID, id string) (*models.Event, error) {
	const op = "storage.memory.GetEvent"
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.events[userID] {
		if r.event.ID == id {
			e := cloneEvent(r.event)
			return &e, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
}

// CreateEvent добавляет мероприятие в раздел event.UserID.
func (s *Storage) CreateEvent(_ context.Context, event models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	records := append(s.events[event.UserID], eventRecord{seq: s.seq, event: cloneEvent(event)})
	sortRecords(records)
	s.events[event.UserID] = records
	return nil
}

// UpdateEvent заменяет мероприятие, сохраняя его порядковый номер.
func (s *Storage) UpdateEvent(_ context.Context, event models.Event) error {
	const op = "storage.memory.UpdateEvent"
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.events[event.UserID]
	for i := range records {
		if records[i].event.ID == event.ID {
			records[i].event = cloneEvent(event)
			sortRecords(records)
			return nil
		}
	}
	return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
}

// DeleteEvent удаляет мероприятие из раздела пользователя.
func (s *Storage) DeleteEvent(_ context.Context, userID, id string) error {
	const op = "storage.memory.DeleteEvent"
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.events[userID]
	for i := range records {
		if records[i].event.ID == id {
			s.events[userID] = append(records[:i:i], records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
}

// ListClients возвращает клиентов пользователя в порядке добавления.
func (s *Storage) ListClients(_ context.Context, userID string) ([]models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clients := make([]models.Client, len(s.clients[userID]))
	copy(clients, s.clients[userID])
	return clients, nil
}

// GetClient возвращает клиента из раздела пользователя.
func (s *Storage) GetClient(_ context.Context, userID, id string) (*models.Client, error) {
	const op = "storage.memory.GetClient"
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.clients[userID] {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
}

// CreateClient добавляет клиента в раздел client.UserID.
func (s *Storage) CreateClient(_ context.Context, client models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients[client.UserID] = append(s.clients[client.UserID], client)
	return nil
}

// UpdateClient заменяет данные клиента.
func (s *Storage) UpdateClient(_ context.Context, client models.Client) error {
	const op = "storage.memory.UpdateClient"
	s.mu.Lock()
	defer s.mu.Unlock()

	clients := s.clients[client.UserID]
	for i := range clients {
		if clients[i].ID == client.ID {
			clients[i] = client
			return nil
		}
	}
	return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
}

// DeleteClient удаляет клиента. Проверка ссылок из мероприятий выполняется сервисом.
func (s *Storage) DeleteClient(_ context.Context, userID, id string) error {
	const op = "storage.memory.DeleteClient"
	s.mu.Lock()
	defer s.mu.Unlock()

	clients := s.clients[userID]
	for i := range clients {
		if clients[i].ID == id {
			s.clients[userID] = append(clients[:i:i], clients[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
}

// ReplacePartition целиком заменяет мероприятия и клиентов пользователя
// под одной блокировкой. Порядок events сохраняется как порядок по умолчанию
// для мероприятий с одинаковой датой.
func (s *Storage) ReplacePartition(_ context.Context, userID string, events []models.Event, clients []models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]eventRecord, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		s.seq++
		e := cloneEvent(events[i])
		e.UserID = userID
		records = append(records, eventRecord{seq: s.seq, event: e})
	}
	sortRecords(records)
	s.events[userID] = records

	stored := make([]models.Client, 0, len(clients))
	for _, c := range clients {
		c.UserID = userID
		stored = append(stored, c)
	}
	s.clients[userID] = stored
	return nil
}

// sortRecords упорядочивает по убыванию даты, более поздние вставки раньше.
func sortRecords(records []eventRecord) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].event.Date.Equal(records[j].event.Date) {
			return records[i].event.Date.After(records[j].event.Date)
		}
		return records[i].seq > records[j].seq
	})
}

func cloneEvent(e models.Event) models.Event {
	if e.Expenses != nil {
		e.Expenses = append([]models.ExpenseItem(nil), e.Expenses...)
	}
	return e
}
