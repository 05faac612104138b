package server

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/artyatra/artyatra/internal/catalogindex"
	"github.com/artyatra/artyatra/internal/geo"
	"github.com/artyatra/artyatra/models"
)

// ImageResolver turns a category name into a display image URL. The default
// implementation points at a placeholder service; a real CDN lookup can be
// swapped in without touching the handler.
type ImageResolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

type PlaceholderResolver struct {
	BaseURL string
}

func (r PlaceholderResolver) Resolve(_ context.Context, name string) (string, error) {
	return r.BaseURL + "?text=" + url.QueryEscape(name), nil
}

// SearchHandler serves the static category list, free-text catalog search and
// the radius-based nearby lookup.
type SearchHandler struct {
	Categories  []models.Category
	Index       *catalogindex.Index
	Resolver    ImageResolver
	MinRadiusKm float64
	MaxRadiusKm float64
}

func NewSearchHandler(categories []models.Category, idx *catalogindex.Index, resolver ImageResolver, minRadiusKm, maxRadiusKm float64) *SearchHandler {
	return &SearchHandler{
		Categories:  categories,
		Index:       idx,
		Resolver:    resolver,
		MinRadiusKm: minRadiusKm,
		MaxRadiusKm: maxRadiusKm,
	}
}

func (h *SearchHandler) Register(g *echo.Group) {
	g.GET("/categories", h.list)
	g.GET("/categories/search", h.search)
	g.POST("/categories/nearby", h.nearby)
}

func (h *SearchHandler) list(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Categories)
}

func (h *SearchHandler) search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q required")
	}
	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 50 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be between 1 and 50")
		}
		limit = n
	}
	hits, err := h.Index.Search(q, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"query": q, "hits": hits})
}

type nearbyRequest struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	RadiusKm float64 `json:"radius_km"`
}

type nearbyMatch struct {
	models.Category
	DistanceKm float64 `json:"distanceKm"`
	ImageURL   string  `json:"imageUrl,omitempty"`
}

func (h *SearchHandler) nearby(c echo.Context) error {
	var req nearbyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	center := geo.Point{Lat: req.Lat, Lng: req.Lng}
	if !geo.Region.Contains(center) {
		return echo.NewHTTPError(http.StatusBadRequest, "location outside the supported region")
	}
	radius := req.RadiusKm
	if radius < h.MinRadiusKm {
		radius = h.MinRadiusKm
	}
	if radius > h.MaxRadiusKm {
		radius = h.MaxRadiusKm
	}

	matches := make([]nearbyMatch, 0)
	for _, cat := range h.Categories {
		d := geo.HaversineKm(center, geo.Point{Lat: cat.Lat, Lng: cat.Lng})
		if d <= radius {
			matches = append(matches, nearbyMatch{Category: cat, DistanceKm: d})
		}
	}

	// Image URLs resolve in parallel; the fan-out is bounded by the static
	// category count, so no pool is needed.
	ctx := c.Request().Context()
	var wg sync.WaitGroup
	for i := range matches {
		wg.Add(1)
		go func(m *nearbyMatch) {
			defer wg.Done()
			if imageURL, err := h.Resolver.Resolve(ctx, m.Name); err == nil {
				m.ImageURL = imageURL
			}
		}(&matches[i])
	}
	wg.Wait()

	sort.Slice(matches, func(i, j int) bool { return matches[i].DistanceKm < matches[j].DistanceKm })
	return c.JSON(http.StatusOK, echo.Map{
		"center":   models.LatLng{Lat: req.Lat, Lng: req.Lng},
		"radiusKm": radius,
		"count":    len(matches),
		"results":  matches,
	})
}
