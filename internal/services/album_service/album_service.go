package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"galeria/internal/domain/models"
	"galeria/internal/lib/images"
	"galeria/internal/lib/logger/sl"
	"galeria/internal/repository"
	"galeria/internal/services/albumview"
	"galeria/internal/storage"
	filestorage "galeria/internal/storage/filestorage"
	"galeria/internal/transport/http/dto"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle    = errors.New("title is required")
	ErrCoverRequired = errors.New("cover image is required")
	ErrAlbumNotFound = errors.New("album not found")
	ErrAccessDenied  = errors.New("access denied")
	ErrNotConfirmed  = errors.New("delete was not confirmed")
)

const albumDateLayout = "2006-01-02"

// AlbumService отвечает за альбомы: создание с обложкой, правку и
// удаление с подтверждением
type AlbumService struct {
	log         *slog.Logger
	repo        repository.AlbumRepository
	galleries   repository.GalleryRepository
	fileStorage filestorage.FileStorage
}

func NewAlbumService(log *slog.Logger, repo repository.AlbumRepository, galleries repository.GalleryRepository, fileStorage filestorage.FileStorage) *AlbumService {
	return &AlbumService{
		log:         log,
		repo:        repo,
		galleries:   galleries,
		fileStorage: fileStorage,
	}
}

// CreateAlbum создает альбом с обложкой. Поля проверяются до любых
// обращений к хранилищу, при ошибке вставки сохраненный файл удаляется.
func (s *AlbumService) CreateAlbum(ctx context.Context, input dto.CreateAlbumInput) (*dto.AlbumResponse, error) {
	const op = "album_service.CreateAlbum"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", input.GalleryID.String()),
	)

	log.Info("creating album")

	// 1. Валидация до первого похода в хранилище
	if input.Title == "" {
		log.Error("title is required")
		return nil, ErrEmptyTitle
	}
	if input.File == nil {
		log.Error("cover image is required")
		return nil, ErrCoverRequired
	}

	if err := s.requireGalleryOwner(ctx, input.GalleryID, input.OwnerID); err != nil {
		log.Warn("gallery ownership check failed", sl.Err(err))
		return nil, err
	}

	// 2. Обложка: декодирование, уменьшение, перекодирование в jpeg
	src, err := input.File.Open()
	if err != nil {
		log.Error("failed to open uploaded file", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer src.Close()

	cover, data, err := images.ProcessCover(src)
	if err != nil {
		log.Error("failed to process cover", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidFileType)
	}

	log.Info("cover processed",
		slog.Int("width", cover.Width),
		slog.Int("height", cover.Height),
	)

	subPath := filepath.Join("covers", input.OwnerID.String(), uuid.New().String()+".jpg")
	relPath, err := s.fileStorage.Save(ctx, subPath, data)
	if err != nil {
		log.Error("failed to save cover", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// 3. Вставка через коллекцию галереи
	album := models.Album{
		Title:     input.Title,
		CoverURL:  s.fileStorage.PublicURL(relPath),
		AlbumDate: input.AlbumDate,
		CreatedAt: time.Now().UTC(),
		UserID:    input.OwnerID,
		GalleryID: input.GalleryID,
	}
	if input.ExternalLink != "" {
		album.ExternalLink = &input.ExternalLink
	}

	collection := albumview.NewCollection(s.log, s.repo, input.GalleryID)
	if err := collection.Load(ctx); err != nil {
		_ = s.fileStorage.Delete(ctx, relPath)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := collection.CreateAlbum(ctx, album)
	if err != nil {
		// Файл без записи в БД никому не нужен
		_ = s.fileStorage.Delete(ctx, relPath)
		log.Error("failed to save album to database", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.repo.GetAlbumByID(ctx, id)
	if err != nil {
		log.Error("failed to read created album", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("album created successfully", slog.String("id", id.String()))

	resp := mapToAlbumResponse(created)
	return &resp, nil
}

// GetAlbum возвращает альбом владельца
func (s *AlbumService) GetAlbum(ctx context.Context, user *models.User, albumID uuid.UUID) (*dto.AlbumResponse, error) {
	const op = "album_service.GetAlbum"

	album, err := s.requireAlbumOwner(ctx, user, albumID)
	if err != nil {
		s.log.Warn("album lookup failed", slog.String("op", op), sl.Err(err))
		return nil, err
	}

	resp := mapToAlbumResponse(album)
	return &resp, nil
}

// ListOwnAlbums возвращает все альбомы пользователя по всем галереям
func (s *AlbumService) ListOwnAlbums(ctx context.Context, owner uuid.UUID) ([]dto.AlbumResponse, error) {
	const op = "album_service.ListOwnAlbums"

	albums, err := s.repo.GetAlbumsByOwner(ctx, owner)
	if err != nil {
		s.log.Error("failed to list albums", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := make([]dto.AlbumResponse, 0, len(albums))
	for _, album := range albums {
		resp = append(resp, mapToAlbumResponse(album))
	}

	return resp, nil
}

// UpdateAlbum правит заголовок, внешнюю ссылку и дату альбома
func (s *AlbumService) UpdateAlbum(ctx context.Context, user *models.User, albumID uuid.UUID, req dto.UpdateAlbumRequest) (*dto.AlbumResponse, error) {
	const op = "album_service.UpdateAlbum"

	log := s.log.With(
		slog.String("op", op),
		slog.String("album_id", albumID.String()),
	)

	log.Info("updating album")

	album, err := s.requireAlbumOwner(ctx, user, albumID)
	if err != nil {
		return nil, err
	}

	var externalLink *string
	if req.ExternalLink != "" {
		externalLink = &req.ExternalLink
	}

	var albumDate *time.Time
	if req.AlbumDate != "" {
		parsed, err := time.Parse(albumDateLayout, req.AlbumDate)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid album date: %w", op, err)
		}
		albumDate = &parsed
	}

	collection := albumview.NewCollection(s.log, s.repo, album.GalleryID)
	if err := collection.Load(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := collection.UpdateAlbum(ctx, albumID, req.Title, externalLink, albumDate); err != nil {
		if errors.Is(err, albumview.ErrEmptyTitle) {
			return nil, ErrEmptyTitle
		}
		log.Error("failed to update album", sl.Err(err))
		return nil, err
	}

	updated, err := s.repo.GetAlbumByID(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("album updated successfully")

	resp := mapToAlbumResponse(updated)
	return &resp, nil
}

// DeleteAlbum удаляет альбом по двухшаговой схеме: без confirmed запрос
// только откладывается и тут же отменяется, в хранилище ничего не уходит
func (s *AlbumService) DeleteAlbum(ctx context.Context, user *models.User, albumID uuid.UUID, confirmed bool) error {
	const op = "album_service.DeleteAlbum"

	log := s.log.With(
		slog.String("op", op),
		slog.String("album_id", albumID.String()),
	)

	album, err := s.requireAlbumOwner(ctx, user, albumID)
	if err != nil {
		return err
	}

	collection := albumview.NewCollection(s.log, s.repo, album.GalleryID)
	if err := collection.Load(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := collection.RequestDelete(albumID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if !confirmed {
		collection.CancelDelete()
		log.Info("delete cancelled")
		return ErrNotConfirmed
	}

	if err := collection.ConfirmDelete(ctx); err != nil {
		log.Error("failed to delete album", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	// Осиротевшую обложку не храним
	if rel, ok := s.fileStorage.RelativePath(album.CoverURL); ok {
		if err := s.fileStorage.Delete(ctx, rel); err != nil && !errors.Is(err, storage.ErrFileNotFound) {
			log.Warn("failed to delete cover file", sl.Err(err))
		}
	}

	log.Info("album deleted successfully")
	return nil
}

// CountAlbums возвращает общее число альбомов, используется проверкой
// работоспособности БД
func (s *AlbumService) CountAlbums(ctx context.Context) (int64, error) {
	const op = "album_service.CountAlbums"

	count, err := s.repo.CountAlbums(ctx)
	if err != nil {
		s.log.Error("failed to count albums", slog.String("op", op), sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}

func (s *AlbumService) requireGalleryOwner(ctx context.Context, galleryID, ownerID uuid.UUID) error {
	gallery, err := s.galleries.GetGalleryByID(ctx, galleryID)
	if err != nil {
		if errors.Is(err, storage.ErrGalleryNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("failed to get gallery: %w", err)
	}
	if gallery.UserID != ownerID {
		return ErrAccessDenied
	}
	return nil
}

// requireAlbumOwner отдает альбом только его владельцу, остальным не
// раскрывая существование записи
func (s *AlbumService) requireAlbumOwner(ctx context.Context, user *models.User, albumID uuid.UUID) (models.Album, error) {
	album, err := s.repo.GetAlbumByID(ctx, albumID)
	if err != nil {
		if errors.Is(err, storage.ErrAlbumNotFound) {
			return models.Album{}, ErrAlbumNotFound
		}
		return models.Album{}, fmt.Errorf("failed to get album: %w", err)
	}
	if user == nil || album.UserID != user.ID {
		return models.Album{}, ErrAlbumNotFound
	}
	return album, nil
}

func mapToAlbumResponse(album models.Album) dto.AlbumResponse {
	return dto.AlbumResponse{
		ID:           album.ID,
		Title:        album.Title,
		CoverURL:     album.CoverURL,
		ExternalLink: album.ExternalLink,
		AlbumDate:    album.AlbumDate,
		CreatedAt:    album.CreatedAt,
		GalleryID:    album.GalleryID,
	}
}
