package dto

import (
	"time"

	"galeria/internal/services/albumview"

	"github.com/google/uuid"
)

// GalleryResponse представляет собой DTO с данными галереи
type GalleryResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	IsPublic  bool      `json:"is_public"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// GalleryViewResponse страница галереи: сгруппированные альбомы и
// признак владельца, от которого зависят элементы управления
type GalleryViewResponse struct {
	Gallery GalleryResponse        `json:"gallery"`
	IsOwner bool                   `json:"is_owner"`
	Query   string                 `json:"query"`
	SortBy  string                 `json:"sort_by"`
	Groups  []albumview.AlbumGroup `json:"groups"`
}

type CreateGalleryRequest struct {
	Title string `json:"title" validate:"required"`
}

type RenameGalleryRequest struct {
	Title string `json:"title" validate:"required"`
}

// ShareStateResponse состояние публичного доступа после переключения
type ShareStateResponse struct {
	IsPublic bool   `json:"is_public"`
	ShareURL string `json:"share_url,omitempty"`
}
