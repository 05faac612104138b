package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/artyatra/artyatra/internal/store"
	"github.com/artyatra/artyatra/models"
)

// ArtStylesHandler serves the static art-style catalog and the stored
// classification history per style.
type ArtStylesHandler struct {
	Store store.Storage
}

func NewArtStylesHandler(st store.Storage) *ArtStylesHandler {
	return &ArtStylesHandler{Store: st}
}

func (h *ArtStylesHandler) Register(g *echo.Group) {
	g.GET("/artstyles", h.list)
	g.GET("/artstyles/:id", h.get)
	g.GET("/classifications/:artStyleId", h.classifications)
}

func (h *ArtStylesHandler) list(c echo.Context) error {
	styles, err := h.Store.GetAllArtStyles(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load art styles")
	}
	return c.JSON(http.StatusOK, styles)
}

func (h *ArtStylesHandler) get(c echo.Context) error {
	style, err := h.Store.GetArtStyleByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrArtStyleNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Art style not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load art style")
	}
	return c.JSON(http.StatusOK, style)
}

// classifications lists the stored history for a style. An id with no history
// yields an empty array, not a 404; the catalog lookup endpoints own
// existence checks.
func (h *ArtStylesHandler) classifications(c echo.Context) error {
	records, err := h.Store.GetClassificationsByArtStyle(c.Request().Context(), c.Param("artStyleId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load classifications")
	}
	return c.JSON(http.StatusOK, records)
}
