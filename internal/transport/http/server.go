package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"galeria/internal/domain/models"
	"galeria/internal/lib/logger/sl"
	"galeria/internal/services/albumview"
	"galeria/internal/services/share"
	"galeria/internal/storage"
	"galeria/internal/transport/http/dto"
	"galeria/internal/transport/http/dto/request"
	"galeria/internal/transport/http/dto/response"

	albumsvc "galeria/internal/services/album_service"
	gallerysvc "galeria/internal/services/gallery_service"
	tokensvc "galeria/internal/services/token_service"
	usersvc "galeria/internal/services/user_service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	_ "galeria/docs"
)

type UserService interface {
	Login(ctx context.Context, identifier, password string) (models.User, error)
	RegisterNewUser(ctx context.Context, input dto.UserRegisterInput) (uuid.UUID, error)
	GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error)
}

type TokenService interface {
	GenerateTokens(ctx context.Context, user models.User) (*models.TokenPair, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

type GalleryService interface {
	CreateGallery(ctx context.Context, owner uuid.UUID, title string) (uuid.UUID, error)
	GetGalleryView(ctx context.Context, galleryID uuid.UUID, user *models.User, query string, sortBy albumview.SortOption) (*dto.GalleryViewResponse, error)
	ListOwnGalleries(ctx context.Context, owner uuid.UUID) ([]dto.GalleryResponse, error)
	RenameGallery(ctx context.Context, galleryID uuid.UUID, user *models.User, title string) error
	ToggleShare(ctx context.Context, galleryID uuid.UUID, user *models.User, origin string) (*dto.ShareStateResponse, error)
	ShareLink(ctx context.Context, galleryID uuid.UUID, user *models.User, origin string) (*dto.ShareStateResponse, error)
}

type AlbumService interface {
	CreateAlbum(ctx context.Context, input dto.CreateAlbumInput) (*dto.AlbumResponse, error)
	GetAlbum(ctx context.Context, user *models.User, albumID uuid.UUID) (*dto.AlbumResponse, error)
	ListOwnAlbums(ctx context.Context, owner uuid.UUID) ([]dto.AlbumResponse, error)
	UpdateAlbum(ctx context.Context, user *models.User, albumID uuid.UUID, req dto.UpdateAlbumRequest) (*dto.AlbumResponse, error)
	DeleteAlbum(ctx context.Context, user *models.User, albumID uuid.UUID, confirmed bool) error
	CountAlbums(ctx context.Context) (int64, error)
}

type Routers struct {
	log            *slog.Logger
	UserService    UserService
	TokenService   TokenService
	GalleryService GalleryService
	AlbumService   AlbumService

	appSecret  string
	cronSecret string
}

func NewRouter(log *slog.Logger, userService UserService, tokenService TokenService, galleryService GalleryService, albumService AlbumService, appSecret, cronSecret string) *Routers {
	return &Routers{
		log:            log,
		UserService:    userService,
		TokenService:   tokenService,
		GalleryService: galleryService,
		AlbumService:   albumService,
		appSecret:      appSecret,
		cronSecret:     cronSecret,
	}
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Вход по имени или email и паролю. Возвращает пару JWT-токенов.
// @Tags users
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Данные для входа"
// @Success 200 {object} response.Response{data=models.TokenPair} "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Failure 401 {object} response.ErrorResponse "Ошибка аутентификации"
// @Router /api/v1/login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid format request", slog.String("identifier", req.Identifier))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	user, err := r.UserService.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	tokens, err := r.TokenService.GenerateTokens(c.Request().Context(), user)
	if err != nil {
		log.Error("failed to generate tokens", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(tokens))
}

// Register godoc
// @Summary Регистрация нового пользователя
// @Description Создание аккаунта. Возвращает ID пользователя.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UserRegisterInput true "Данные для регистрации"
// @Success 201 {object} response.Response{data=object{user_id=string}} "Успешная регистрация"
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Failure 409 {object} response.ErrorResponse "Пользователь уже существует"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/register [post]
func (r *Routers) Register(c echo.Context) error {
	const op = "http.routers.Register"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.UserRegisterInput

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRegisterRequest)
	}

	if err := c.Validate(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_register_request", err.Error()))
	}

	userID, err := r.UserService.RegisterNewUser(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, usersvc.ErrUserExist) {
			log.Warn("user already exists", slog.String("email", req.Email))
			return c.JSON(http.StatusConflict, response.ErrUserAlreadyExists)
		}

		log.Error("registration failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	log.Info("user registered successfully", slog.String("user_id", userID.String()))

	return c.JSON(http.StatusCreated, response.Response{
		Status: "success",
		Data: map[string]uuid.UUID{
			"user_id": userID,
		},
	})
}

// Refresh godoc
// @Summary Обновление пары токенов
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{refresh_token=string} true "Refresh-токен"
// @Success 200 {object} models.TokenPair
// @Failure 401 {object} response.ErrorResponse "Недействительный refresh-токен"
// @Router /api/v1/refresh [post]
func (r *Routers) Refresh(c echo.Context) error {
	const op = "http.routers.Refresh"

	log := r.log.With(
		slog.String("op", op),
	)

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("validation bind", sl.Err(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	newTokens, err := r.TokenService.RefreshTokens(c.Request().Context(), req.RefreshToken)
	if err != nil {
		log.Error("error refresh tokens", sl.Err(err))
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	return c.JSON(http.StatusOK, newTokens)
}

// CreateGallery godoc
// @Summary Создание галереи
// @Tags galleries
// @Accept json
// @Produce json
// @Param request body dto.CreateGalleryRequest true "Данные галереи"
// @Success 201 {object} response.Response{data=object{gallery_id=string}}
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Security ApiKeyAuth
// @Router /api/v1/galleries [post]
func (r *Routers) CreateGallery(c echo.Context) error {
	const op = "http.routers.CreateGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	user, err := r.requireUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthRequired)
	}

	var req dto.CreateGalleryRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	galleryID, err := r.GalleryService.CreateGallery(c.Request().Context(), user.ID, req.Title)
	if err != nil {
		log.Error("failed to create gallery", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusCreated, response.Response{
		Status: "success",
		Data: map[string]uuid.UUID{
			"gallery_id": galleryID,
		},
	})
}

// ListGalleries godoc
// @Summary Список галерей пользователя
// @Tags galleries
// @Produce json
// @Success 200 {object} response.Response{data=[]dto.GalleryResponse}
// @Security ApiKeyAuth
// @Router /api/v1/galleries [get]
func (r *Routers) ListGalleries(c echo.Context) error {
	const op = "http.routers.ListGalleries"

	user, err := r.requireUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthRequired)
	}

	galleries, err := r.GalleryService.ListOwnGalleries(c.Request().Context(), user.ID)
	if err != nil {
		r.log.Error("failed to list galleries", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(galleries))
}

// GetGalleryView godoc
// @Summary Страница галереи
// @Description Возвращает альбомы галереи, отфильтрованные и сгруппированные по месяцам.
// @Description Публичные галереи доступны без авторизации.
// @Tags galleries
// @Produce json
// @Param gallery_id path string true "UUID галереи" format(uuid)
// @Param q query string false "Поиск по названию альбома"
// @Param sort query string false "Сортировка" Enums(date_desc, date_asc, name_asc, name_desc)
// @Success 200 {object} response.Response{data=dto.GalleryViewResponse}
// @Failure 401 {object} response.ErrorResponse "Требуется вход"
// @Failure 404 {object} response.ErrorResponse "Галерея не найдена"
// @Router /api/v1/galleries/{gallery_id} [get]
func (r *Routers) GetGalleryView(c echo.Context) error {
	const op = "http.routers.GetGalleryView"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, err := uuid.Parse(c.Param("gallery_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid gallery ID format"))
	}

	// Зритель может быть и анонимом, битый токен приравнивается к его
	// отсутствию
	user := r.optionalUser(c)

	sortBy, _ := albumview.ParseSortOption(c.QueryParam("sort"))

	view, err := r.GalleryService.GetGalleryView(c.Request().Context(), galleryID, user, c.QueryParam("q"), sortBy)
	if err != nil {
		switch {
		case errors.Is(err, gallerysvc.ErrAuthRequired):
			return c.JSON(http.StatusUnauthorized, response.ErrAuthRequired)
		case errors.Is(err, gallerysvc.ErrAccessDenied), errors.Is(err, gallerysvc.ErrGalleryNotFound):
			return c.JSON(http.StatusNotFound, response.ErrGalleryNotFound)
		}

		log.Error("failed to build gallery view", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(view))
}

// RenameGallery godoc
// @Summary Переименование галереи
// @Tags galleries
// @Accept json
// @Produce json
// @Param gallery_id path string true "UUID галереи" format(uuid)
// @Param request body dto.RenameGalleryRequest true "Новый заголовок"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Галерея не найдена"
// @Security ApiKeyAuth
// @Router /api/v1/galleries/{gallery_id} [patch]
func (r *Routers) RenameGallery(c echo.Context) error {
	const op = "http.routers.RenameGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	user, err := r.requireUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthRequired)
	}

	galleryID, err := uuid.Parse(c.Param("gallery_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid gallery ID format"))
	}

	var req dto.RenameGalleryRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	if err := r.GalleryService.RenameGallery(c.Request().Context(), galleryID, user, req.Title); err != nil {
		switch {
		case errors.Is(err, gallerysvc.ErrEmptyTitle):
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "title is required"))
		case errors.Is(err, gallerysvc.ErrAuthRequired):
			return c.JSON(http.StatusUnauthorized, response.ErrAuthRequired)
		case errors.Is(err, gallerysvc.ErrAccessDenied), errors.Is(err, gallerysvc.ErrGalleryNotFound):
			return c.JSON(http.StatusNotFound, response.ErrGalleryNotFound)
		}

		log.Error("failed to rename gallery", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusOK, response.Response{Status: "success"})
}

// ToggleShare godoc
// @Summary Переключение публичного доступа
// @Description Делает галерею публичной или закрывает доступ. Пока идет
// @Description предыдущее переключение, повторный запрос отклоняется.
// @Tags galleries
// @Produce json
// @Param gallery_id path string true "UUID галереи" format(uuid)
// @Success 200 {object} response.Response{data=dto.ShareStateResponse}
// @Failure 404 {object} response.ErrorResponse "Галерея не найдена"
// @Failure 409 {object} response.ErrorResponse "Переключение уже выполняется"
// @Security ApiKeyAuth
// @Router /api/v1/galleries/{gallery_id}/share [post]
func (r *Routers) ToggleShare(c echo.Context) error {
	const op = "http.routers.ToggleShare"

	log := r.log.With(
		slog.String("op", op),
	)

	user, err := r.requireUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthRequired)
	}

	galleryID, err := uuid.Parse(c.Param("gallery_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid gallery ID format"))
	}

	state, err := r.GalleryService.ToggleShare(c.Request().Context(), galleryID, user, r.origin(c))
	if err != nil {
		switch {
		case errors.Is(err, share.ErrTogglePending):
			return c.JSON(http.StatusConflict, response.ErrorResponseWithDetails("toggle_pending", "Share toggle already in progress"))
		case errors.Is(err, gallerysvc.ErrAuthRequired):
			return c.JSON(http.StatusUnauthorized, response.ErrAuthRequired)
		case errors.Is(err, gallerysvc.ErrAccessDenied), errors.Is(err, gallerysvc.ErrGalleryNotFound):
			return c.JSON(http.StatusNotFound, response.ErrGalleryNotFound)
		}

		log.Error("failed to toggle share", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(state))
}

// ShareLink godoc
// @Summary Текущее состояние публичного доступа
// @Tags galleries
// @Produce json
// @Param gallery_id path string true "UUID галереи" format(uuid)
// @Success 200 {object} response.Response{data=dto.ShareStateResponse}
// @Failure 404 {object} response.ErrorResponse "Галерея не найдена"
// @Security ApiKeyAuth
// @Router /api/v1/galleries/{gallery_id}/share [get]
func (r *Routers) ShareLink(c echo.Context) error {
	const op = "http.routers.ShareLink"

	user, err := r.requireUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthRequired)
	}

	galleryID, err := uuid.Parse(c.Param("gallery_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid gallery ID format"))
	}

	state, err := r.GalleryService.ShareLink(c.Request().Context(), galleryID, user, r.origin(c))
	if err != nil {
		switch {
		case errors.Is(err, gallerysvc.ErrAuthRequired):
			return c.JSON(http.StatusUnauthorized, response.ErrAuthRequired)
		case errors.Is(err, gallerysvc.ErrAccessDenied), errors.Is(err, gallerysvc.ErrGalleryNotFound):
			return c.JSON(http.StatusNotFound, response.ErrGalleryNotFound)
		}

		r.log.Error("failed to get share state", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(state))
}

// CreateAlbum godoc
// @Summary Создание альбома с обложкой
// @Tags albums
// @Accept multipart/form-data
// @Produce json
// @Param gallery_id formData string true "UUID галереи" format(uuid)
// @Param title formData string true "Название альбома"
// @Param external_link formData string false "Внешняя ссылка"
// @Param album_date formData string false "Дата альбома (2006-01-02)"
// @Param file formData file true "Файл обложки"
// @Success 201 {object} response.Response{data=dto.AlbumResponse}
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Security ApiKeyAuth
// @Router /api/v1/albums [post]
func (r *Routers) CreateAlbum(c echo.Context) error {
	const op = "http.routers.CreateAlbum"

	log := r.log.With(
		slog.String("op", op),
	)

	user, err := r.requireUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthRequired)
	}

	galleryID, err := uuid.Parse(c.FormValue("gallery_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid gallery ID format"))
	}

	input := dto.CreateAlbumInput{
		GalleryID:    galleryID,
		OwnerID:      user.ID,
		Title:        c.FormValue("title"),
		ExternalLink: c.FormValue("external_link"),
	}

	if raw := c.FormValue("album_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid album date format"))
		}
		input.AlbumDate = &parsed
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "cover file is required"))
	}
	input.File = file

	album, err := r.AlbumService.CreateAlbum(c.Request().Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, albumsvc.ErrEmptyTitle), errors.Is(err, albumsvc.ErrCoverRequired):
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
		case errors.Is(err, albumsvc.ErrAccessDenied):
			return c.JSON(http.StatusNotFound, response.ErrGalleryNotFound)
		case errors.Is(err, storage.ErrInvalidFileType):
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_file", "Unsupported cover image"))
		}

		log.Error("failed to create album", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(album))
}

// ListAlbums godoc
// @Summary Все альбомы пользователя
// @Tags albums
// @Produce json
// @Success 200 {object} response.Response{data=[]dto.AlbumResponse}
// @Security ApiKeyAuth
// @Router /api/v1/albums [get]
func (r *Routers) ListAlbums(c echo.Context) error {
	const op = "http.routers.ListAlbums"

	user, err := r.requireUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthRequired)
	}

	albums, err := r.AlbumService.ListOwnAlbums(c.Request().Context(), user.ID)
	if err != nil {
		r.log.Error("failed to list albums", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(albums))
}

// GetAlbum godoc
// @Summary Альбом по идентификатору
// @Tags albums
// @Produce json
// @Param album_id path string true "UUID альбома" format(uuid)
// @Success 200 {object} response.Response{data=dto.AlbumResponse}
// @Failure 404 {object} response.ErrorResponse "Альбом не найден"
// @Security ApiKeyAuth
// @Router /api/v1/albums/{album_id} [get]
func (r *Routers) GetAlbum(c echo.Context) error {
	const op = "http.routers.GetAlbum"

	user, err := r.requireUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthRequired)
	}

	albumID, err := uuid.Parse(c.Param("album_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid album ID format"))
	}

	album, err := r.AlbumService.GetAlbum(c.Request().Context(), user, albumID)
	if err != nil {
		if errors.Is(err, albumsvc.ErrAlbumNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrAlbumNotFound)
		}

		r.log.Error("failed to get album", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(album))
}

// UpdateAlbum godoc
// @Summary Правка альбома
// @Tags albums
// @Accept json
// @Produce json
// @Param album_id path string true "UUID альбома" format(uuid)
// @Param request body dto.UpdateAlbumRequest true "Новые данные"
// @Success 200 {object} response.Response{data=dto.AlbumResponse}
// @Failure 404 {object} response.ErrorResponse "Альбом не найден"
// @Security ApiKeyAuth
// @Router /api/v1/albums/{album_id} [patch]
func (r *Routers) UpdateAlbum(c echo.Context) error {
	const op = "http.routers.UpdateAlbum"

	log := r.log.With(
		slog.String("op", op),
	)

	user, err := r.requireUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthRequired)
	}

	albumID, err := uuid.Parse(c.Param("album_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid album ID format"))
	}

	var req dto.UpdateAlbumRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	album, err := r.AlbumService.UpdateAlbum(c.Request().Context(), user, albumID, req)
	if err != nil {
		switch {
		case errors.Is(err, albumsvc.ErrEmptyTitle):
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "title is required"))
		case errors.Is(err, albumsvc.ErrAlbumNotFound):
			return c.JSON(http.StatusNotFound, response.ErrAlbumNotFound)
		}

		log.Error("failed to update album", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(album))
}

// DeleteAlbum godoc
// @Summary Удаление альбома
// @Description Удаляет альбом только при confirm=true, иначе запрос
// @Description трактуется как отмена и хранилище не трогается.
// @Tags albums
// @Produce json
// @Param album_id path string true "UUID альбома" format(uuid)
// @Param confirm query bool false "Подтверждение удаления"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Альбом не найден"
// @Security ApiKeyAuth
// @Router /api/v1/albums/{album_id} [delete]
func (r *Routers) DeleteAlbum(c echo.Context) error {
	const op = "http.routers.DeleteAlbum"

	log := r.log.With(
		slog.String("op", op),
	)

	user, err := r.requireUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthRequired)
	}

	albumID, err := uuid.Parse(c.Param("album_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid album ID format"))
	}

	confirmed := c.QueryParam("confirm") == "true"

	if err := r.AlbumService.DeleteAlbum(c.Request().Context(), user, albumID, confirmed); err != nil {
		switch {
		case errors.Is(err, albumsvc.ErrNotConfirmed):
			return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "delete cancelled"})
		case errors.Is(err, albumsvc.ErrAlbumNotFound):
			return c.JSON(http.StatusNotFound, response.ErrAlbumNotFound)
		}

		log.Error("failed to delete album", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "album deleted"})
}

// KeepAlive godoc
// @Summary Проверка работоспособности для планировщика
// @Description Дергает БД счетчиком альбомов. Требует Bearer-токен планировщика.
// @Tags service
// @Produce json
// @Success 200 {object} response.Response{data=object{albums=int}}
// @Failure 401 {object} response.ErrorResponse "Неверный токен"
// @Router /api/v1/keep-alive [get]
func (r *Routers) KeepAlive(c echo.Context) error {
	const op = "http.routers.KeepAlive"

	log := r.log.With(
		slog.String("op", op),
	)

	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if r.cronSecret == "" || auth != "Bearer "+r.cronSecret {
		log.Warn("keep-alive with bad token")
		return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("unauthorized", "Invalid cron token"))
	}

	count, err := r.AlbumService.CountAlbums(c.Request().Context())
	if err != nil {
		log.Error("keep-alive query failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Database unreachable"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]int64{"albums": count}))
}

// requireUser достает пользователя из JWT, проставленного middleware
func (r *Routers) requireUser(c echo.Context) (*models.User, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, tokensvc.ErrInvalidToken
	}

	user, err := r.userFromToken(c, token)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// optionalUser разбирает Authorization самостоятельно: маршрут открыт
// и для анонимов, поэтому JWT-middleware на нем не висит
func (r *Routers) optionalUser(c echo.Context) *models.User {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	raw, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || raw == "" {
		return nil
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, tokensvc.ErrInvalidToken
		}
		return []byte(r.appSecret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	user, err := r.userFromToken(c, token)
	if err != nil {
		return nil
	}

	return user
}

func (r *Routers) userFromToken(c echo.Context, token *jwt.Token) (*models.User, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, tokensvc.ErrInvalidTokenClaims
	}

	rawID, ok := claims["uid"].(string)
	if !ok {
		return nil, tokensvc.ErrInvalidTokenClaims
	}

	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, tokensvc.ErrInvalidTokenClaims
	}

	user, err := r.UserService.GetUserById(c.Request().Context(), userID)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *Routers) origin(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host
}
