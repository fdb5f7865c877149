package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "galeria/internal/app/http"
	"galeria/internal/config"
	"galeria/internal/repository"
	filestorage "galeria/internal/storage/filestorage"
	redisapp "galeria/internal/storage/redis"
	httprouters "galeria/internal/transport/http"

	albumsvc "galeria/internal/services/album_service"
	gallerysvc "galeria/internal/services/gallery_service"
	tokensvc "galeria/internal/services/token_service"
	usersvc "galeria/internal/services/user_service"
)

type App struct {
	HTTPServer *httpapp.Server

	repo  *repository.Repository
	redis *redisapp.Client
}

// New собирает приложение целиком: БД, redis, файловое хранилище,
// сервисы и HTTP-сервер
func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	repo, err := repository.NewRepository(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	redisClient := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
	if err := redisClient.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("%s: redis unreachable: %w", op, err)
	}

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	userService := usersvc.NewUserService(log, repo.User)
	tokenService := tokensvc.NewTokenService(repository.NewRedisTokenRepo(redisClient), cfg.AppSecret)
	galleryService := gallerysvc.NewGalleryService(log, repo.Gallery, repo.Album)
	albumService := albumsvc.NewAlbumService(log, repo.Album, repo.Gallery, fileStorage)

	routers := httprouters.NewRouter(log, userService, tokenService, galleryService, albumService, cfg.AppSecret, cfg.CronSecret)

	server := httpapp.New(log, cfg.AppSecret, cfg.HTTP.Host, cfg.HTTP.Port, cfg.FileStorage.BaseDir, routers)
	server.BuildRouters()

	return &App{
		HTTPServer: server,
		repo:       repo,
		redis:      redisClient,
	}, nil
}

// Stop останавливает сервер и закрывает соединения
func (a *App) Stop() error {
	if err := a.HTTPServer.Stop(); err != nil {
		return err
	}

	a.repo.Close()

	return a.redis.Close()
}
