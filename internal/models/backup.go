package models

// Backup: документ резервной копии данных пользователя.
type Backup struct {
	Events  []Event  `json:"events"`
	Clients []Client `json:"clients"`
}

// DummyBackup используется при импорте: nil-поле означает, что ключ
// отсутствовал в документе.
type DummyBackup struct {
	Events  *[]Event  `json:"events"`
	Clients *[]Client `json:"clients"`
}
