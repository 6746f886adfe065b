package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"cinegraph/config"
	"cinegraph/internal/delivery/api/response"
	"cinegraph/internal/domain/entity"
	"cinegraph/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// FilmHandlerParams holds dependencies for FilmHandler, injected by Fx.
type FilmHandlerParams struct {
	fx.In

	FilmUC usecase.FilmUsecase
	Config *config.Config
	Logger *slog.Logger
}

// FilmHandler serves the film catalog, likes and the popularity ranking.
type FilmHandler struct {
	filmUC              usecase.FilmUsecase
	defaultPopularCount int
	logger              *slog.Logger
}

// NewFilmHandler is the constructor for FilmHandler
func NewFilmHandler(params FilmHandlerParams) *FilmHandler {
	return &FilmHandler{
		filmUC:              params.FilmUC,
		defaultPopularCount: params.Config.Catalog.DefaultPopularCount,
		logger:              params.Logger,
	}
}

// Ref points at a catalog record by id; the name is ignored on input.
type Ref struct {
	ID   int64  `json:"id" validate:"gt=0"`
	Name string `json:"name,omitempty"`
}

// FilmRequest is the body of POST and PUT /films. ID is ignored on create.
type FilmRequest struct {
	ID          int64  `json:"id" validate:"gte=0"`
	Name        string `json:"name" validate:"notblank"`
	Description string `json:"description" validate:"max=200"`
	ReleaseDate string `json:"releaseDate" validate:"required,cinemaepoch"`
	Duration    int    `json:"duration" validate:"gte=1"`
	Mpa         *Ref   `json:"mpa" validate:"required"`
	Genres      []Ref  `json:"genres" validate:"omitempty,dive"`
}

// FilmResponse is the wire form of FilmDetails.
type FilmResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ReleaseDate string `json:"releaseDate"`
	Duration    int    `json:"duration"`
	Mpa         Ref    `json:"mpa"`
	Genres      []Ref  `json:"genres"`
	Likes       int    `json:"likes"`
}

func (req *FilmRequest) toEntity() (*entity.Film, error) {
	releaseDate, err := parseDate(req.ReleaseDate)
	if err != nil {
		return nil, err
	}

	genreIDs := make([]int64, 0, len(req.Genres))
	for _, g := range req.Genres {
		genreIDs = append(genreIDs, g.ID)
	}

	return &entity.Film{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		ReleaseDate: releaseDate,
		Duration:    req.Duration,
		MpaID:       req.Mpa.ID,
		GenreIDs:    genreIDs,
	}, nil
}

func newFilmResponse(d *entity.FilmDetails) FilmResponse {
	genres := make([]Ref, 0, len(d.Genres))
	for _, g := range d.Genres {
		genres = append(genres, Ref{ID: g.ID, Name: g.Name})
	}

	return FilmResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		ReleaseDate: formatDate(d.ReleaseDate),
		Duration:    d.Duration,
		Mpa:         Ref{ID: d.Mpa.ID, Name: d.Mpa.Name},
		Genres:      genres,
		Likes:       d.LikeCount,
	}
}

func newFilmResponses(films []*entity.FilmDetails) []FilmResponse {
	out := make([]FilmResponse, 0, len(films))
	for _, f := range films {
		out = append(out, newFilmResponse(f))
	}

	return out
}

// CreateFilm handles POST /films
func (h *FilmHandler) CreateFilm(c echo.Context) error {
	var req FilmRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	film, err := req.toEntity()
	if err != nil {
		return response.BadRequest(c, "INVALID_DATE", "releaseDate must use YYYY-MM-DD")
	}

	created, err := h.filmUC.CreateFilm(c.Request().Context(), film)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newFilmResponse(created))
}

// UpdateFilm handles PUT /films
func (h *FilmHandler) UpdateFilm(c echo.Context) error {
	var req FilmRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	if req.ID == 0 {
		return response.BadRequest(c, "INVALID_ID", "id is required for update")
	}

	film, err := req.toEntity()
	if err != nil {
		return response.BadRequest(c, "INVALID_DATE", "releaseDate must use YYYY-MM-DD")
	}

	updated, err := h.filmUC.UpdateFilm(c.Request().Context(), film)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newFilmResponse(updated))
}

// ListFilms handles GET /films
func (h *FilmHandler) ListFilms(c echo.Context) error {
	films, err := h.filmUC.ListFilms(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newFilmResponses(films))
}

// GetFilm handles GET /films/:id
func (h *FilmHandler) GetFilm(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", err.Error())
	}

	film, err := h.filmUC.GetFilm(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newFilmResponse(film))
}

// DeleteFilm handles DELETE /films/:id
func (h *FilmHandler) DeleteFilm(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", err.Error())
	}

	if err := h.filmUC.DeleteFilm(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return messageOK(c, "Film deleted successfully")
}

// AddLike handles PUT /films/:id/like/:userId
func (h *FilmHandler) AddLike(c echo.Context) error {
	filmID, userID, err := likePair(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", err.Error())
	}

	if err := h.filmUC.AddLike(c.Request().Context(), filmID, userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return messageOK(c, "Like added successfully")
}

// RemoveLike handles DELETE /films/:id/like/:userId
func (h *FilmHandler) RemoveLike(c echo.Context) error {
	filmID, userID, err := likePair(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", err.Error())
	}

	if err := h.filmUC.RemoveLike(c.Request().Context(), filmID, userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return messageOK(c, "Like removed successfully")
}

// PopularFilms handles GET /films/popular?count=N
func (h *FilmHandler) PopularFilms(c echo.Context) error {
	count := h.defaultPopularCount
	if raw := c.QueryParam("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_COUNT", "count must be an integer")
		}
		count = n
	}

	films, err := h.filmUC.PopularFilms(c.Request().Context(), count)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newFilmResponses(films))
}

func likePair(c echo.Context) (int64, int64, error) {
	filmID, err := pathID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return 0, 0, err
	}

	return filmID, userID, nil
}
