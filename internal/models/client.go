package models

// Client: заказчик мероприятий. Принадлежит ровно одному пользователю.
type Client struct {
	ID     string `json:"id"`
	UserID string `json:"user_id,omitempty"`
	Name   string `json:"name"`
	Phone  string `json:"phone,omitempty"`
	Email  string `json:"email,omitempty"`
}

// ClientDraft: данные клиента без идентификатора.
type ClientDraft struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"omitempty"`
	Email string `json:"email" validate:"omitempty,email"`
}

// ClientCommand: создание или обновление клиента.
type ClientCommand interface {
	isClientCommand()
}

// CreateClient добавляет нового клиента.
type CreateClient struct {
	Client ClientDraft
}

// UpdateClient заменяет данные существующего клиента.
type UpdateClient struct {
	ID     string
	Client ClientDraft
}

func (CreateClient) isClientCommand() {}
func (UpdateClient) isClientCommand() {}
