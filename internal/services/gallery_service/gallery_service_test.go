package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"galeria/internal/domain/models"
	"galeria/internal/services/albumview"
	"galeria/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGalleryRepository struct {
	mock.Mock
}

func (m *MockGalleryRepository) CreateGallery(ctx context.Context, gallery models.Gallery) (uuid.UUID, error) {
	args := m.Called(ctx, gallery)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockGalleryRepository) GetGalleryByID(ctx context.Context, id uuid.UUID) (models.Gallery, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Gallery), args.Error(1)
}

func (m *MockGalleryRepository) GetGalleriesByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Gallery, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]models.Gallery), args.Error(1)
}

func (m *MockGalleryRepository) UpdateGalleryTitle(ctx context.Context, id uuid.UUID, title string) error {
	args := m.Called(ctx, id, title)
	return args.Error(0)
}

func (m *MockGalleryRepository) SetGalleryPublic(ctx context.Context, id uuid.UUID, isPublic bool) error {
	args := m.Called(ctx, id, isPublic)
	return args.Error(0)
}

func (m *MockGalleryRepository) DeleteGallery(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAlbumRepository struct {
	mock.Mock
}

func (m *MockAlbumRepository) CreateAlbum(ctx context.Context, album models.Album) (uuid.UUID, error) {
	args := m.Called(ctx, album)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockAlbumRepository) GetAlbumByID(ctx context.Context, id uuid.UUID) (models.Album, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Album), args.Error(1)
}

func (m *MockAlbumRepository) GetAlbumsByGallery(ctx context.Context, galleryID uuid.UUID) ([]models.Album, error) {
	args := m.Called(ctx, galleryID)
	return args.Get(0).([]models.Album), args.Error(1)
}

func (m *MockAlbumRepository) GetAlbumsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Album, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]models.Album), args.Error(1)
}

func (m *MockAlbumRepository) UpdateAlbum(ctx context.Context, id uuid.UUID, title string, externalLink *string, albumDate *time.Time) error {
	args := m.Called(ctx, id, title, externalLink, albumDate)
	return args.Error(0)
}

func (m *MockAlbumRepository) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAlbumRepository) CountAlbums(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService() (*GalleryService, *MockGalleryRepository, *MockAlbumRepository) {
	galleries := new(MockGalleryRepository)
	albums := new(MockAlbumRepository)
	return NewGalleryService(slog.Default(), galleries, albums), galleries, albums
}

func TestGalleryService_CreateGallery(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	galleryID := uuid.New()

	tests := []struct {
		name        string
		title       string
		mockSetup   func(repo *MockGalleryRepository)
		expectedErr error
	}{
		{
			name:  "successful creation",
			title: "Verano 2024",
			mockSetup: func(repo *MockGalleryRepository) {
				repo.On("CreateGallery", ctx, mock.MatchedBy(func(g models.Gallery) bool {
					return g.Title == "Verano 2024" && g.UserID == ownerID
				})).Return(galleryID, nil).Once()
			},
		},
		{
			name:  "empty title fails before store call",
			title: "",
			mockSetup: func(repo *MockGalleryRepository) {
				// Валидация отсекает запрос до репозитория
			},
			expectedErr: ErrEmptyTitle,
		},
		{
			name:  "repository error",
			title: "Verano 2024",
			mockSetup: func(repo *MockGalleryRepository) {
				repo.On("CreateGallery", ctx, mock.Anything).
					Return(uuid.Nil, errors.New("db down")).Once()
			},
			expectedErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, galleries, _ := newTestService()
			tt.mockSetup(galleries)

			id, err := service.CreateGallery(ctx, ownerID, tt.title)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr.Error())
			} else {
				require.NoError(t, err)
				assert.Equal(t, galleryID, id)
			}
			galleries.AssertExpectations(t)
		})
	}
}

func TestGalleryService_GetGalleryView(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	galleryID := uuid.New()

	owner := &models.User{ID: ownerID}
	stranger := &models.User{ID: uuid.New()}

	private := models.Gallery{ID: galleryID, Title: "Privada", UserID: ownerID, IsPublic: false}
	public := models.Gallery{ID: galleryID, Title: "Публичная", UserID: ownerID, IsPublic: true}

	juneDate := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	albums := []models.Album{
		{ID: uuid.New(), Title: "Boda", AlbumDate: &juneDate, GalleryID: galleryID},
	}

	t.Run("owner sees private gallery with edit rights", func(t *testing.T) {
		service, galleries, albumRepo := newTestService()
		galleries.On("GetGalleryByID", ctx, galleryID).Return(private, nil).Once()
		albumRepo.On("GetAlbumsByGallery", mock.Anything, galleryID).Return(albums, nil).Once()

		view, err := service.GetGalleryView(ctx, galleryID, owner, "", albumview.DefaultSort)

		require.NoError(t, err)
		assert.True(t, view.IsOwner)
		require.Len(t, view.Groups, 1)
		assert.Equal(t, "Junio 2024", view.Groups[0].Key)
	})

	t.Run("visitor sees public gallery read only", func(t *testing.T) {
		service, galleries, albumRepo := newTestService()
		galleries.On("GetGalleryByID", ctx, galleryID).Return(public, nil).Once()
		albumRepo.On("GetAlbumsByGallery", mock.Anything, galleryID).Return(albums, nil).Once()

		view, err := service.GetGalleryView(ctx, galleryID, stranger, "", albumview.DefaultSort)

		require.NoError(t, err)
		assert.False(t, view.IsOwner)
	})

	t.Run("anonymous on private gallery must sign in", func(t *testing.T) {
		service, galleries, _ := newTestService()
		galleries.On("GetGalleryByID", ctx, galleryID).Return(private, nil).Once()

		_, err := service.GetGalleryView(ctx, galleryID, nil, "", albumview.DefaultSort)

		assert.ErrorIs(t, err, ErrAuthRequired)
	})

	t.Run("stranger on private gallery is denied", func(t *testing.T) {
		service, galleries, _ := newTestService()
		galleries.On("GetGalleryByID", ctx, galleryID).Return(private, nil).Once()

		_, err := service.GetGalleryView(ctx, galleryID, stranger, "", albumview.DefaultSort)

		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing gallery", func(t *testing.T) {
		service, galleries, _ := newTestService()
		galleries.On("GetGalleryByID", ctx, galleryID).
			Return(models.Gallery{}, storage.ErrGalleryNotFound).Once()

		_, err := service.GetGalleryView(ctx, galleryID, owner, "", albumview.DefaultSort)

		assert.ErrorIs(t, err, ErrGalleryNotFound)
	})

	t.Run("query and sort are applied", func(t *testing.T) {
		mayDate := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
		many := []models.Album{
			{ID: uuid.New(), Title: "Boda en junio", AlbumDate: &juneDate, GalleryID: galleryID},
			{ID: uuid.New(), Title: "Viaje", AlbumDate: &mayDate, GalleryID: galleryID},
			{ID: uuid.New(), Title: "Boda civil", AlbumDate: &mayDate, GalleryID: galleryID},
		}

		service, galleries, albumRepo := newTestService()
		galleries.On("GetGalleryByID", ctx, galleryID).Return(public, nil).Once()
		albumRepo.On("GetAlbumsByGallery", mock.Anything, galleryID).Return(many, nil).Once()

		view, err := service.GetGalleryView(ctx, galleryID, nil, "boda", albumview.SortDateAsc)

		require.NoError(t, err)
		assert.Equal(t, "boda", view.Query)
		assert.Equal(t, string(albumview.SortDateAsc), view.SortBy)
		require.Len(t, view.Groups, 2)
		assert.Equal(t, "Mayo 2024", view.Groups[0].Key)
		assert.Equal(t, "Junio 2024", view.Groups[1].Key)
	})
}

func TestGalleryService_RenameGallery(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	galleryID := uuid.New()

	gallery := models.Gallery{ID: galleryID, Title: "Vieja", UserID: ownerID}
	owner := &models.User{ID: ownerID}

	t.Run("owner renames", func(t *testing.T) {
		service, galleries, _ := newTestService()
		galleries.On("GetGalleryByID", ctx, galleryID).Return(gallery, nil).Once()
		galleries.On("UpdateGalleryTitle", ctx, galleryID, "Nueva").Return(nil).Once()

		require.NoError(t, service.RenameGallery(ctx, galleryID, owner, "Nueva"))
		galleries.AssertExpectations(t)
	})

	t.Run("empty title rejected before any store call", func(t *testing.T) {
		service, galleries, _ := newTestService()

		err := service.RenameGallery(ctx, galleryID, owner, "")

		assert.ErrorIs(t, err, ErrEmptyTitle)
		galleries.AssertNotCalled(t, "GetGalleryByID", mock.Anything, mock.Anything)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		service, galleries, _ := newTestService()
		galleries.On("GetGalleryByID", ctx, galleryID).Return(gallery, nil).Once()

		err := service.RenameGallery(ctx, galleryID, &models.User{ID: uuid.New()}, "Nueva")

		assert.ErrorIs(t, err, ErrAccessDenied)
		galleries.AssertNotCalled(t, "UpdateGalleryTitle", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("anonymous must sign in", func(t *testing.T) {
		service, galleries, _ := newTestService()
		galleries.On("GetGalleryByID", ctx, galleryID).Return(gallery, nil).Once()

		err := service.RenameGallery(ctx, galleryID, nil, "Nueva")

		assert.ErrorIs(t, err, ErrAuthRequired)
	})
}

func TestGalleryService_ToggleShare(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	galleryID := uuid.New()

	gallery := models.Gallery{ID: galleryID, UserID: ownerID, IsPublic: false}
	owner := &models.User{ID: ownerID}
	origin := "https://galeria.app"

	t.Run("owner makes gallery public and gets link", func(t *testing.T) {
		service, galleries, _ := newTestService()
		galleries.On("GetGalleryByID", ctx, galleryID).Return(gallery, nil).Once()
		galleries.On("SetGalleryPublic", mock.Anything, galleryID, true).Return(nil).Once()

		state, err := service.ToggleShare(ctx, galleryID, owner, origin)

		require.NoError(t, err)
		assert.True(t, state.IsPublic)
		assert.Equal(t, origin+"/gallery/"+galleryID.String(), state.ShareURL)
	})

	t.Run("controller survives between requests", func(t *testing.T) {
		service, galleries, _ := newTestService()
		// Репозиторий оба раза отдает исходное состояние, актуальное
		// держит контроллер
		galleries.On("GetGalleryByID", ctx, galleryID).Return(gallery, nil).Twice()
		galleries.On("SetGalleryPublic", mock.Anything, galleryID, true).Return(nil).Once()
		galleries.On("SetGalleryPublic", mock.Anything, galleryID, false).Return(nil).Once()

		first, err := service.ToggleShare(ctx, galleryID, owner, origin)
		require.NoError(t, err)
		assert.True(t, first.IsPublic)

		second, err := service.ToggleShare(ctx, galleryID, owner, origin)
		require.NoError(t, err)
		assert.False(t, second.IsPublic)
		assert.Empty(t, second.ShareURL)
		galleries.AssertExpectations(t)
	})

	t.Run("stranger gets not found semantics", func(t *testing.T) {
		service, galleries, _ := newTestService()
		galleries.On("GetGalleryByID", ctx, galleryID).Return(gallery, nil).Once()

		_, err := service.ToggleShare(ctx, galleryID, &models.User{ID: uuid.New()}, origin)

		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("store failure keeps gallery private", func(t *testing.T) {
		service, galleries, _ := newTestService()
		galleries.On("GetGalleryByID", ctx, galleryID).Return(gallery, nil).Twice()
		galleries.On("SetGalleryPublic", mock.Anything, galleryID, true).
			Return(errors.New("db down")).Once()

		_, err := service.ToggleShare(ctx, galleryID, owner, origin)
		require.Error(t, err)

		state, err := service.ShareLink(ctx, galleryID, owner, origin)
		require.NoError(t, err)
		assert.False(t, state.IsPublic)
		assert.Empty(t, state.ShareURL)
	})
}

func TestGalleryService_ListOwnGalleries(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	service, galleries, _ := newTestService()
	galleries.On("GetGalleriesByOwner", ctx, ownerID).Return([]models.Gallery{
		{ID: uuid.New(), Title: "Una", UserID: ownerID},
		{ID: uuid.New(), Title: "Otra", UserID: ownerID},
	}, nil).Once()

	got, err := service.ListOwnGalleries(ctx, ownerID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Una", got[0].Title)
}
