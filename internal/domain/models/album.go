package models

import (
	"time"

	"github.com/google/uuid"
)

// Album представляет собой альбом внутри галереи
type Album struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	CoverURL     string     `json:"cover_url" db:"cover_url"`                   // Публичный URL обложки
	ExternalLink *string    `json:"external_link,omitempty" db:"external_link"` // Ссылка на полный альбом (опционально)
	AlbumDate    *time.Time `json:"album_date,omitempty" db:"album_date"`       // Ручная дата альбома, приоритетнее created_at
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UserID       uuid.UUID  `json:"user_id" db:"user_id"`
	GalleryID    uuid.UUID  `json:"gallery_id" db:"gallery_id"`
}

// EffectiveDate возвращает дату альбома для сортировки и группировки:
// album_date, если она задана, иначе created_at.
func (a Album) EffectiveDate() time.Time {
	if a.AlbumDate != nil {
		return *a.AlbumDate
	}
	return a.CreatedAt
}
