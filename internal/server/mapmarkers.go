package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/artyatra/artyatra/internal/store"
	"github.com/artyatra/artyatra/models"
)

const (
	indiaCenterLat = 20.5937
	indiaCenterLng = 78.9629
	defaultZoom    = 5
	highlightZoom  = 8
)

// MapHandler produces the marker set for the catalog map. At most one marker
// is highlighted, matched by id; an unknown highlight id simply highlights
// nothing rather than failing the whole map.
type MapHandler struct {
	Store store.Storage
}

func NewMapHandler(st store.Storage) *MapHandler {
	return &MapHandler{Store: st}
}

func (h *MapHandler) Register(g *echo.Group) {
	g.GET("/map/markers", h.markers)
}

type mapMarker struct {
	ArtStyleID  string        `json:"artStyleId"`
	Name        string        `json:"name"`
	Position    models.LatLng `json:"position"`
	State       string        `json:"state"`
	Highlighted bool          `json:"highlighted"`
}

type markersResponse struct {
	Markers []mapMarker   `json:"markers"`
	Center  models.LatLng `json:"center"`
	Zoom    int           `json:"zoom"`
}

func (h *MapHandler) markers(c echo.Context) error {
	styles, err := h.Store.GetAllArtStyles(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load art styles")
	}
	highlight := c.QueryParam("highlight")

	resp := markersResponse{
		Markers: make([]mapMarker, 0, len(styles)),
		Center:  models.LatLng{Lat: indiaCenterLat, Lng: indiaCenterLng},
		Zoom:    defaultZoom,
	}
	for _, s := range styles {
		highlighted := highlight != "" && s.ID == highlight
		if highlighted {
			resp.Center = s.OriginLocation
			resp.Zoom = highlightZoom
		}
		resp.Markers = append(resp.Markers, mapMarker{
			ArtStyleID:  s.ID,
			Name:        s.Name,
			Position:    s.OriginLocation,
			State:       s.State,
			Highlighted: highlighted,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
