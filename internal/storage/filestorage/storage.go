package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	apperrors "galeria/internal/storage"
)

// FileStorage интерфейс объектного хранилища обложек
type FileStorage interface {
	Save(ctx context.Context, subPath string, data []byte) (string, error)
	Delete(ctx context.Context, filePath string) error
	PublicURL(relativePath string) string
	RelativePath(publicURL string) (string, bool)
	GetFullPath(relativePath string) string
	GetBaseDir() string
}

// LocalFileStorage реализация для локальной файловой системы
type LocalFileStorage struct {
	baseDir string // Базовый каталог для хранения (например: "./uploads")
	baseURL string // Базовый URL для доступа к файлам (например: "http://localhost:8080/uploads")
}

func NewLocalFileStorage(baseDir, baseURL string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: baseURL,
	}, nil
}

// Save записывает байты по относительному пути и возвращает этот путь
func (s *LocalFileStorage) Save(ctx context.Context, subPath string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fullPath := filepath.Join(s.baseDir, subPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return subPath, nil
}

// Delete удаляет файл из хранилища
func (s *LocalFileStorage) Delete(ctx context.Context, filePath string) error {
	fullPath := filepath.Join(s.baseDir, filePath)
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return apperrors.ErrFileNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// PublicURL возвращает публичный URL сохраненного файла
func (s *LocalFileStorage) PublicURL(relativePath string) string {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return s.baseURL + "/" + relativePath
	}
	u.Path = path.Join(u.Path, relativePath)
	return u.String()
}

// RelativePath восстанавливает относительный путь файла из его
// публичного URL. Чужие URL не распознаются.
func (s *LocalFileStorage) RelativePath(publicURL string) (string, bool) {
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return "", false
	}
	u, err := url.Parse(publicURL)
	if err != nil {
		return "", false
	}
	if u.Host != base.Host || !strings.HasPrefix(u.Path, base.Path+"/") {
		return "", false
	}
	return strings.TrimPrefix(u.Path, base.Path+"/"), true
}

// GetFullPath возвращает полный путь к файлу на диске
func (s *LocalFileStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.baseDir, relativePath)
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}
