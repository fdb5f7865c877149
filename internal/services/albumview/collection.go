package albumview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"galeria/internal/domain/models"
	"galeria/internal/lib/logger/sl"
	"galeria/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle      = errors.New("title is required")
	ErrUnknownAlbum    = errors.New("album is not in this gallery")
	ErrNothingToDelete = errors.New("no delete requested")
)

// ItemStatus визуальное состояние альбома на время мутации
type ItemStatus int

const (
	StatusIdle ItemStatus = iota
	StatusPending
	StatusFailed
)

// Collection хранит рабочий список альбомов одной галереи и производные
// представления. Список засеивается целиком из хранилища и так же целиком
// перечитывается после каждой успешной мутации, слияния нет. Экземпляр
// принадлежит одной сессии просмотра и не рассчитан на конкурентный доступ.
type Collection struct {
	log       *slog.Logger
	repo      repository.AlbumRepository
	galleryID uuid.UUID

	albums      []models.Album
	searchQuery string
	sortBy      SortOption

	statuses      map[uuid.UUID]ItemStatus
	pendingDelete *uuid.UUID
}

func NewCollection(log *slog.Logger, repo repository.AlbumRepository, galleryID uuid.UUID) *Collection {
	return &Collection{
		log:       log,
		repo:      repo,
		galleryID: galleryID,
		sortBy:    DefaultSort,
		statuses:  make(map[uuid.UUID]ItemStatus),
	}
}

// Load целиком заменяет рабочий список свежими данными из хранилища
func (c *Collection) Load(ctx context.Context) error {
	const op = "albumview.Collection.Load"

	albums, err := c.repo.GetAlbumsByGallery(ctx, c.galleryID)
	if err != nil {
		c.log.Error("failed to load albums", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	c.albums = albums
	c.statuses = make(map[uuid.UUID]ItemStatus)
	c.pendingDelete = nil

	return nil
}

func (c *Collection) Albums() []models.Album {
	return c.albums
}

func (c *Collection) SearchQuery() string {
	return c.searchQuery
}

func (c *Collection) SetSearchQuery(query string) {
	c.searchQuery = query
}

func (c *Collection) SortBy() SortOption {
	return c.sortBy
}

func (c *Collection) SetSortBy(mode SortOption) {
	c.sortBy = mode
}

// Processed возвращает отфильтрованный и отсортированный список.
// Фильтрация идет первой, сортировка по отобранному.
func (c *Collection) Processed() []models.Album {
	return Sort(Filter(c.albums, c.searchQuery), c.sortBy)
}

// Grouped возвращает Processed, разбитый на группы по месяцам
func (c *Collection) Grouped() []AlbumGroup {
	return Group(c.Processed())
}

func (c *Collection) Status(id uuid.UUID) ItemStatus {
	return c.statuses[id]
}

// CreateAlbum добавляет альбом через хранилище и перечитывает список
func (c *Collection) CreateAlbum(ctx context.Context, album models.Album) (uuid.UUID, error) {
	const op = "albumview.Collection.CreateAlbum"

	if album.Title == "" {
		return uuid.Nil, ErrEmptyTitle
	}

	album.GalleryID = c.galleryID

	id, err := c.repo.CreateAlbum(ctx, album)
	if err != nil {
		c.log.Error("failed to create album", slog.String("op", op), sl.Err(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := c.Load(ctx); err != nil {
		return id, err
	}

	return id, nil
}

// UpdateAlbum обновляет поля альбома. Пока идет запрос альбом помечен
// Pending, при ошибке остается Failed и прежний список не трогается.
func (c *Collection) UpdateAlbum(ctx context.Context, id uuid.UUID, title string, externalLink *string, albumDate *time.Time) error {
	const op = "albumview.Collection.UpdateAlbum"

	if title == "" {
		return ErrEmptyTitle
	}
	if !c.contains(id) {
		return ErrUnknownAlbum
	}

	c.statuses[id] = StatusPending

	if err := c.repo.UpdateAlbum(ctx, id, title, externalLink, albumDate); err != nil {
		c.statuses[id] = StatusFailed
		c.log.Error("failed to update album", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return c.Load(ctx)
}

// RequestDelete запоминает альбом для удаления, в хранилище ничего не
// уходит до явного подтверждения
func (c *Collection) RequestDelete(id uuid.UUID) error {
	if !c.contains(id) {
		return ErrUnknownAlbum
	}

	c.pendingDelete = &id
	return nil
}

// CancelDelete отменяет запрошенное удаление без обращений к хранилищу
func (c *Collection) CancelDelete() {
	if c.pendingDelete != nil {
		c.statuses[*c.pendingDelete] = StatusIdle
		c.pendingDelete = nil
	}
}

// ConfirmDelete выполняет ранее запрошенное удаление
func (c *Collection) ConfirmDelete(ctx context.Context) error {
	const op = "albumview.Collection.ConfirmDelete"

	if c.pendingDelete == nil {
		return ErrNothingToDelete
	}

	id := *c.pendingDelete
	c.pendingDelete = nil
	c.statuses[id] = StatusPending

	if err := c.repo.DeleteAlbum(ctx, id); err != nil {
		c.statuses[id] = StatusFailed
		c.log.Error("failed to delete album", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return c.Load(ctx)
}

func (c *Collection) contains(id uuid.UUID) bool {
	for _, album := range c.albums {
		if album.ID == id {
			return true
		}
	}
	return false
}
