package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/artyatra/artyatra/internal/store"
	"github.com/artyatra/artyatra/models"
)

func TestListArtStyles(t *testing.T) {
	e := echo.New()
	h := NewArtStylesHandler(store.NewMemoryStorage())

	req := httptest.NewRequest(http.MethodGet, "/api/artstyles", nil)
	rec := httptest.NewRecorder()
	if err := h.list(e.NewContext(req, rec)); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var styles []models.ArtStyle
	if err := json.Unmarshal(rec.Body.Bytes(), &styles); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(styles) != 8 {
		t.Fatalf("expected 8 art styles, got %d", len(styles))
	}
}

func TestGetArtStyleMatchesListEntry(t *testing.T) {
	e := echo.New()
	st := store.NewMemoryStorage()
	h := NewArtStylesHandler(st)
	styles, _ := st.GetAllArtStyles(context.Background())

	req := httptest.NewRequest(http.MethodGet, "/api/artstyles/"+styles[2].ID, nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues(styles[2].ID)

	if err := h.get(ctx); err != nil {
		t.Fatalf("get: %v", err)
	}
	var got models.ArtStyle
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != styles[2].ID || got.Name != styles[2].Name {
		t.Fatalf("by-id entry differs from list entry: %+v vs %+v", got, styles[2])
	}
}

func TestGetArtStyleUnknownIDIs404(t *testing.T) {
	e := echo.New()
	h := NewArtStylesHandler(store.NewMemoryStorage())

	req := httptest.NewRequest(http.MethodGet, "/api/artstyles/nope", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("nope")

	err := h.get(ctx)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %#v", err)
	}
}

func TestClassificationsUnknownStyleIsEmptyList(t *testing.T) {
	e := echo.New()
	h := NewArtStylesHandler(store.NewMemoryStorage())

	req := httptest.NewRequest(http.MethodGet, "/api/classifications/nope", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("artStyleId")
	ctx.SetParamValues("nope")

	if err := h.classifications(ctx); err != nil {
		t.Fatalf("classifications: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for unknown id, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestClassificationsEmptyHistoryIsEmptyArray(t *testing.T) {
	e := echo.New()
	st := store.NewMemoryStorage()
	h := NewArtStylesHandler(st)
	styles, _ := st.GetAllArtStyles(context.Background())

	req := httptest.NewRequest(http.MethodGet, "/api/classifications/"+styles[0].ID, nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("artStyleId")
	ctx.SetParamValues(styles[0].ID)

	if err := h.classifications(ctx); err != nil {
		t.Fatalf("classifications: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}
