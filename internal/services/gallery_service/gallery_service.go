package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"galeria/internal/domain/models"
	"galeria/internal/lib/logger/sl"
	"galeria/internal/repository"
	"galeria/internal/services/access"
	"galeria/internal/services/albumview"
	"galeria/internal/services/share"
	"galeria/internal/storage"
	"galeria/internal/transport/http/dto"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle      = errors.New("title is required")
	ErrGalleryNotFound = errors.New("gallery not found")
	ErrAuthRequired    = errors.New("authentication required")
	ErrAccessDenied    = errors.New("access denied")
)

// GalleryService отвечает за галереи: создание, просмотр с проверкой
// доступа, переименование и публичный доступ по ссылке
type GalleryService struct {
	log    *slog.Logger
	repo   repository.GalleryRepository
	albums repository.AlbumRepository

	mu          sync.Mutex
	controllers map[uuid.UUID]*share.Controller
}

func NewGalleryService(log *slog.Logger, repo repository.GalleryRepository, albums repository.AlbumRepository) *GalleryService {
	return &GalleryService{
		log:         log,
		repo:        repo,
		albums:      albums,
		controllers: make(map[uuid.UUID]*share.Controller),
	}
}

// CreateGallery создает новую галерею
func (s *GalleryService) CreateGallery(ctx context.Context, owner uuid.UUID, title string) (uuid.UUID, error) {
	const op = "service.GalleryService.CreateGallery"
	log := s.log.With(
		slog.String("op", op),
		slog.String("title", title),
	)

	log.Info("creating gallery")

	if title == "" {
		log.Error("title is required")
		return uuid.Nil, ErrEmptyTitle
	}

	gallery := models.Gallery{
		Title:  title,
		UserID: owner,
	}

	id, err := s.repo.CreateGallery(ctx, gallery)
	if err != nil {
		log.Error("failed to create gallery", sl.Err(err))
		return uuid.Nil, fmt.Errorf("failed to create gallery: %w", err)
	}

	log.Info("gallery created successfully", slog.String("id", id.String()))
	return id, nil
}

// GetGalleryView собирает страницу галереи: проверяет доступ, засеивает
// коллекцию альбомов и возвращает сгруппированное представление.
// Решение о доступе принимается на каждый запрос заново.
func (s *GalleryService) GetGalleryView(ctx context.Context, galleryID uuid.UUID, user *models.User, query string, sortBy albumview.SortOption) (*dto.GalleryViewResponse, error) {
	const op = "service.GalleryService.GetGalleryView"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
	)

	gallery, err := s.getGallery(ctx, galleryID)
	if err != nil {
		log.Warn("gallery lookup failed", sl.Err(err))
		return nil, err
	}

	decision := access.Decide(gallery, user)
	if !decision.CanView() {
		log.Info("access refused", slog.String("decision", decision.String()))
		if decision == access.DecisionAuthRequired {
			return nil, ErrAuthRequired
		}
		return nil, ErrAccessDenied
	}

	collection := albumview.NewCollection(s.log, s.albums, galleryID)
	if err := collection.Load(ctx); err != nil {
		log.Error("failed to load albums", sl.Err(err))
		return nil, fmt.Errorf("failed to load albums: %w", err)
	}
	collection.SetSearchQuery(query)
	collection.SetSortBy(sortBy)

	return &dto.GalleryViewResponse{
		Gallery: mapToGalleryResponse(gallery),
		IsOwner: decision.CanEdit(),
		Query:   collection.SearchQuery(),
		SortBy:  string(collection.SortBy()),
		Groups:  collection.Grouped(),
	}, nil
}

// ListOwnGalleries возвращает галереи пользователя
func (s *GalleryService) ListOwnGalleries(ctx context.Context, owner uuid.UUID) ([]dto.GalleryResponse, error) {
	const op = "service.GalleryService.ListOwnGalleries"
	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", owner.String()),
	)

	galleries, err := s.repo.GetGalleriesByOwner(ctx, owner)
	if err != nil {
		log.Error("failed to list galleries", sl.Err(err))
		return nil, fmt.Errorf("failed to list galleries: %w", err)
	}

	resp := make([]dto.GalleryResponse, 0, len(galleries))
	for _, gallery := range galleries {
		resp = append(resp, mapToGalleryResponse(gallery))
	}

	return resp, nil
}

// RenameGallery меняет заголовок галереи, доступно только владельцу
func (s *GalleryService) RenameGallery(ctx context.Context, galleryID uuid.UUID, user *models.User, title string) error {
	const op = "service.GalleryService.RenameGallery"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
	)

	log.Info("renaming gallery")

	if title == "" {
		log.Error("title is required")
		return ErrEmptyTitle
	}

	if _, err := s.requireOwner(ctx, galleryID, user); err != nil {
		return err
	}

	if err := s.repo.UpdateGalleryTitle(ctx, galleryID, title); err != nil {
		log.Error("failed to rename gallery", sl.Err(err))
		return fmt.Errorf("failed to rename gallery: %w", err)
	}

	log.Info("gallery renamed successfully")
	return nil
}

// ToggleShare переключает публичный доступ галереи и возвращает новое
// состояние вместе со ссылкой, если галерея стала публичной
func (s *GalleryService) ToggleShare(ctx context.Context, galleryID uuid.UUID, user *models.User, origin string) (*dto.ShareStateResponse, error) {
	const op = "service.GalleryService.ToggleShare"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
	)

	gallery, err := s.requireOwner(ctx, galleryID, user)
	if err != nil {
		return nil, err
	}

	ctrl := s.controller(galleryID, gallery.IsPublic)

	isPublic, err := ctrl.Toggle(ctx)
	if err != nil {
		log.Error("failed to toggle share", sl.Err(err))
		return nil, err
	}

	resp := &dto.ShareStateResponse{IsPublic: isPublic}
	if url, ok := ctrl.ShareURL(origin); ok {
		resp.ShareURL = url
	}

	log.Info("share toggled", slog.Bool("is_public", isPublic))
	return resp, nil
}

// ShareLink возвращает ссылку общего доступа для владельца, пока
// галерея публична
func (s *GalleryService) ShareLink(ctx context.Context, galleryID uuid.UUID, user *models.User, origin string) (*dto.ShareStateResponse, error) {
	const op = "service.GalleryService.ShareLink"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
	)

	gallery, err := s.requireOwner(ctx, galleryID, user)
	if err != nil {
		log.Warn("share link refused", sl.Err(err))
		return nil, err
	}

	ctrl := s.controller(galleryID, gallery.IsPublic)

	resp := &dto.ShareStateResponse{IsPublic: gallery.IsPublic}
	if url, ok := ctrl.ShareURL(origin); ok {
		resp.ShareURL = url
	}

	return resp, nil
}

func (s *GalleryService) getGallery(ctx context.Context, galleryID uuid.UUID) (models.Gallery, error) {
	gallery, err := s.repo.GetGalleryByID(ctx, galleryID)
	if err != nil {
		if errors.Is(err, storage.ErrGalleryNotFound) {
			return models.Gallery{}, ErrGalleryNotFound
		}
		return models.Gallery{}, fmt.Errorf("failed to get gallery: %w", err)
	}
	return gallery, nil
}

// requireOwner загружает галерею и отклоняет всех, кроме владельца.
// Чужой пользователь получает ту же ошибку, что и для несуществующей
// галереи.
func (s *GalleryService) requireOwner(ctx context.Context, galleryID uuid.UUID, user *models.User) (models.Gallery, error) {
	gallery, err := s.getGallery(ctx, galleryID)
	if err != nil {
		return models.Gallery{}, err
	}

	switch access.Decide(gallery, user) {
	case access.DecisionOwner:
		return gallery, nil
	case access.DecisionAuthRequired:
		return models.Gallery{}, ErrAuthRequired
	default:
		return models.Gallery{}, ErrAccessDenied
	}
}

// controller возвращает контроллер публичного доступа галереи, создавая
// его при первом обращении. Контроллер один на галерею, иначе защита от
// двойного переключения не работала бы между запросами.
func (s *GalleryService) controller(galleryID uuid.UUID, isPublic bool) *share.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctrl, ok := s.controllers[galleryID]
	if !ok {
		ctrl = share.NewController(s.log, s.repo, galleryID, isPublic)
		s.controllers[galleryID] = ctrl
	}
	return ctrl
}

func mapToGalleryResponse(gallery models.Gallery) dto.GalleryResponse {
	return dto.GalleryResponse{
		ID:        gallery.ID,
		Title:     gallery.Title,
		IsPublic:  gallery.IsPublic,
		UserID:    gallery.UserID,
		CreatedAt: gallery.CreatedAt,
	}
}
