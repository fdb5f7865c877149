package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"galeria/internal/domain/models"
	"galeria/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type AlbumRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewAlbumRepo(db *pgxpool.Pool) *AlbumRepo {
	return &AlbumRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var albumColumns = []string{
	"id",
	"title",
	"cover_url",
	"external_link",
	"album_date",
	"created_at",
	"user_id",
	"gallery_id",
}

func scanAlbum(row pgx.Row) (models.Album, error) {
	var album models.Album
	err := row.Scan(
		&album.ID,
		&album.Title,
		&album.CoverURL,
		&album.ExternalLink,
		&album.AlbumDate,
		&album.CreatedAt,
		&album.UserID,
		&album.GalleryID,
	)
	return album, err
}

// CreateAlbum создает альбом и возвращает его ID
func (r *AlbumRepo) CreateAlbum(ctx context.Context, album models.Album) (uuid.UUID, error) {
	const op = "repository.album_repository.CreateAlbum"

	query, args, err := r.sb.Insert("albums").
		Columns(
			"title",
			"cover_url",
			"external_link",
			"album_date",
			"user_id",
			"gallery_id",
		).
		Values(
			album.Title,
			album.CoverURL,
			album.ExternalLink,
			album.AlbumDate,
			album.UserID,
			album.GalleryID,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetAlbumByID возвращает альбом по ID
func (r *AlbumRepo) GetAlbumByID(ctx context.Context, id uuid.UUID) (models.Album, error) {
	const op = "repository.album_repository.GetAlbumByID"

	query, args, err := r.sb.Select(albumColumns...).
		From("albums").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Album{}, fmt.Errorf("%s: %w", op, err)
	}

	album, err := scanAlbum(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Album{}, fmt.Errorf("%s: %w", op, storage.ErrAlbumNotFound)
		}
		return models.Album{}, fmt.Errorf("%s: %w", op, err)
	}

	return album, nil
}

// GetAlbumsByGallery возвращает альбомы галереи, новые первыми
func (r *AlbumRepo) GetAlbumsByGallery(ctx context.Context, galleryID uuid.UUID) ([]models.Album, error) {
	const op = "repository.album_repository.GetAlbumsByGallery"

	return r.listAlbums(ctx, op, sq.Eq{"gallery_id": galleryID})
}

// GetAlbumsByOwner возвращает все альбомы пользователя, новые первыми
func (r *AlbumRepo) GetAlbumsByOwner(ctx context.Context, userID uuid.UUID) ([]models.Album, error) {
	const op = "repository.album_repository.GetAlbumsByOwner"

	return r.listAlbums(ctx, op, sq.Eq{"user_id": userID})
}

func (r *AlbumRepo) listAlbums(ctx context.Context, op string, where sq.Eq) ([]models.Album, error) {
	query, args, err := r.sb.Select(albumColumns...).
		From("albums").
		Where(where).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var albums []models.Album
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		albums = append(albums, album)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return albums, nil
}

// UpdateAlbum обновляет редактируемые поля альбома.
// Пустой external_link и album_date записываются как NULL.
func (r *AlbumRepo) UpdateAlbum(ctx context.Context, id uuid.UUID, title string, externalLink *string, albumDate *time.Time) error {
	const op = "repository.album_repository.UpdateAlbum"

	query, args, err := r.sb.Update("albums").
		Set("title", title).
		Set("external_link", externalLink).
		Set("album_date", albumDate).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrAlbumNotFound)
	}

	return nil
}

// DeleteAlbum удаляет альбом по ID
func (r *AlbumRepo) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	const op = "repository.album_repository.DeleteAlbum"

	query, args, err := r.sb.Delete("albums").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrAlbumNotFound)
	}

	return nil
}

// CountAlbums возвращает общее число альбомов, используется keep-alive пингом
func (r *AlbumRepo) CountAlbums(ctx context.Context) (int64, error) {
	const op = "repository.album_repository.CountAlbums"

	query, args, err := sq.Select("COUNT(*)").
		From("albums").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var count int64
	err = r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}
