package repository

import (
	"context"
	"time"

	"galeria/internal/domain/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (uuid.UUID, error)
	UserByIdentifier(ctx context.Context, identifier string) (models.User, error)
	GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error)
}

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error
	GetRefreshToken(ctx context.Context, userID, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID, token string) error
	DeleteAllUserTokens(ctx context.Context, userID string) error
}

type GalleryRepository interface {
	CreateGallery(ctx context.Context, gallery models.Gallery) (uuid.UUID, error)
	GetGalleryByID(ctx context.Context, id uuid.UUID) (models.Gallery, error)
	GetGalleriesByOwner(ctx context.Context, userID uuid.UUID) ([]models.Gallery, error)
	UpdateGalleryTitle(ctx context.Context, id uuid.UUID, title string) error
	SetGalleryPublic(ctx context.Context, id uuid.UUID, isPublic bool) error
	DeleteGallery(ctx context.Context, id uuid.UUID) error
}

type AlbumRepository interface {
	CreateAlbum(ctx context.Context, album models.Album) (uuid.UUID, error)
	GetAlbumByID(ctx context.Context, id uuid.UUID) (models.Album, error)
	GetAlbumsByGallery(ctx context.Context, galleryID uuid.UUID) ([]models.Album, error)
	GetAlbumsByOwner(ctx context.Context, userID uuid.UUID) ([]models.Album, error)
	UpdateAlbum(ctx context.Context, id uuid.UUID, title string, externalLink *string, albumDate *time.Time) error
	DeleteAlbum(ctx context.Context, id uuid.UUID) error
	CountAlbums(ctx context.Context) (int64, error)
}
