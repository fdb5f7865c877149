package dto

import (
	"mime/multipart"
	"time"

	"github.com/google/uuid"
)

// CreateAlbumInput данные формы создания альбома с обложкой
type CreateAlbumInput struct {
	GalleryID    uuid.UUID             `json:"gallery_id" validate:"required"`
	OwnerID      uuid.UUID             `json:"-"`
	Title        string                `json:"title" validate:"required"`
	ExternalLink string                `json:"external_link,omitempty" validate:"omitempty,url"`
	AlbumDate    *time.Time            `json:"album_date,omitempty"`
	File         *multipart.FileHeader `json:"-" form:"file" validate:"required"`
}

type UpdateAlbumRequest struct {
	Title        string `json:"title" validate:"required"`
	ExternalLink string `json:"external_link,omitempty" validate:"omitempty,url"`
	AlbumDate    string `json:"album_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// AlbumResponse публичное представление альбома
type AlbumResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	CoverURL     string     `json:"cover_url"`
	ExternalLink *string    `json:"external_link,omitempty"`
	AlbumDate    *time.Time `json:"album_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	GalleryID    uuid.UUID  `json:"gallery_id"`
}
