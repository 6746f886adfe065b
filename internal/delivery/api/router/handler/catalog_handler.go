package handler

import (
	"net/http"

	"cinegraph/internal/delivery/api/response"
	"cinegraph/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CatalogHandler serves the read-only genre and MPA reference data.
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
}

func NewCatalogHandler(catalogUC usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUC: catalogUC}
}

// ListGenres handles GET /genres
func (h *CatalogHandler) ListGenres(c echo.Context) error {
	genres, err := h.catalogUC.ListGenres(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out := make([]Ref, 0, len(genres))
	for _, g := range genres {
		out = append(out, Ref{ID: g.ID, Name: g.Name})
	}

	return response.Success(c, http.StatusOK, out)
}

// GetGenre handles GET /genres/:id
func (h *CatalogHandler) GetGenre(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", err.Error())
	}

	genre, err := h.catalogUC.GetGenre(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, Ref{ID: genre.ID, Name: genre.Name})
}

// ListMpaRatings handles GET /mpa
func (h *CatalogHandler) ListMpaRatings(c echo.Context) error {
	ratings, err := h.catalogUC.ListMpaRatings(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out := make([]Ref, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, Ref{ID: r.ID, Name: r.Name})
	}

	return response.Success(c, http.StatusOK, out)
}

// GetMpaRating handles GET /mpa/:id
func (h *CatalogHandler) GetMpaRating(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", err.Error())
	}

	rating, err := h.catalogUC.GetMpaRating(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, Ref{ID: rating.ID, Name: rating.Name})
}
