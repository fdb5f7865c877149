package share

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"galeria/internal/lib/logger/sl"
	"galeria/internal/metrics"
	"galeria/internal/repository"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
)

// ErrTogglePending возвращается при попытке переключить доступ, пока
// предыдущее переключение еще не подтверждено хранилищем
var ErrTogglePending = errors.New("share toggle already in progress")

// Окно, в течение которого показывается отметка "ссылка скопирована"
const copiedTTL = 2 * time.Second

// Controller управляет публичным доступом одной галереи. Переключение
// не оптимистичное: локальное состояние меняется только после ответа
// хранилища, повторный вызов во время запроса отклоняется.
type Controller struct {
	log       *slog.Logger
	repo      repository.GalleryRepository
	galleryID uuid.UUID

	mu       sync.Mutex
	isPublic bool
	pending  bool

	acks *cache.Cache
}

func NewController(log *slog.Logger, repo repository.GalleryRepository, galleryID uuid.UUID, isPublic bool) *Controller {
	return &Controller{
		log:       log,
		repo:      repo,
		galleryID: galleryID,
		isPublic:  isPublic,
		acks:      cache.New(copiedTTL, time.Minute),
	}
}

func (c *Controller) IsPublic() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isPublic
}

func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Toggle переключает публичный доступ и возвращает новое состояние.
// При ошибке хранилища состояние остается прежним.
func (c *Controller) Toggle(ctx context.Context) (bool, error) {
	const op = "share.Controller.Toggle"

	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return c.isPublic, ErrTogglePending
	}
	c.pending = true
	target := !c.isPublic
	c.mu.Unlock()

	err := c.repo.SetGalleryPublic(ctx, c.galleryID, target)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = false

	if err != nil {
		metrics.ShareTogglesTotal.WithLabelValues("error").Inc()
		c.log.Error("failed to toggle share", slog.String("op", op), sl.Err(err))
		return c.isPublic, fmt.Errorf("%s: %w", op, err)
	}

	c.isPublic = target
	metrics.ShareTogglesTotal.WithLabelValues("ok").Inc()

	return c.isPublic, nil
}

// ShareURL возвращает ссылку общего доступа, пока галерея публична
func (c *Controller) ShareURL(origin string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isPublic {
		return "", false
	}
	return fmt.Sprintf("%s/gallery/%s", origin, c.galleryID), true
}

// CopyLink отмечает, что ссылка скопирована. Отметка живет copiedTTL и
// никак не зависит от состояния сети.
func (c *Controller) CopyLink(origin string) (string, bool) {
	url, ok := c.ShareURL(origin)
	if !ok {
		return "", false
	}

	c.acks.Set("copied", true, cache.DefaultExpiration)
	return url, true
}

// Copied сообщает, показывать ли еще отметку о копировании
func (c *Controller) Copied() bool {
	_, ok := c.acks.Get("copied")
	return ok
}
