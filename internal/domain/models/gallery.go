package models

import (
	"time"

	"github.com/google/uuid"
)

// Gallery представляет собой модель галереи
type Gallery struct {
	ID        uuid.UUID `json:"id" db:"id"`                 // Уникальный идентификатор галереи
	Title     string    `json:"title" db:"title"`           // Заголовок галереи
	IsPublic  bool      `json:"is_public" db:"is_public"`   // Открыт ли публичный доступ по ссылке
	UserID    uuid.UUID `json:"user_id" db:"user_id"`       // ID владельца галереи
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Дата создания
}

// IsOwnedBy проверяет, принадлежит ли галерея указанному пользователю.
// Анонимный пользователь (nil) владельцем не является.
func (g Gallery) IsOwnedBy(user *User) bool {
	return user != nil && g.UserID == user.ID
}
