package server

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/artyatra/artyatra/internal/classifier"
	"github.com/artyatra/artyatra/internal/store"
	"github.com/artyatra/artyatra/models"
)

// ClassifyHandler runs an uploaded image through the AI classifier and, when
// the predicted style exists in the catalog, records the classification.
type ClassifyHandler struct {
	Store      store.Storage
	Classifier classifier.Classifier
	MaxBytes   int64
	Metrics    *Metrics
	logger     *log.Logger
}

func NewClassifyHandler(st store.Storage, cls classifier.Classifier, maxBytes int64, metrics *Metrics) *ClassifyHandler {
	return &ClassifyHandler{
		Store:      st,
		Classifier: cls,
		MaxBytes:   maxBytes,
		Metrics:    metrics,
		logger:     log.New(log.Writer(), "[CLASSIFY] ", log.LstdFlags),
	}
}

func (h *ClassifyHandler) Register(g *echo.Group) {
	g.POST("/classify", h.classify)
}

// classificationPayload merges the stored record with the model's reasoning,
// which is returned to the caller but not persisted.
type classificationPayload struct {
	ID         string    `json:"id"`
	ArtStyleID string    `json:"artStyleId"`
	Confidence float64   `json:"confidence"`
	Reasoning  string    `json:"reasoning"`
	CreatedAt  time.Time `json:"createdAt"`
}

type classifyResponse struct {
	Classification classificationPayload `json:"classification"`
	ArtStyle       models.ArtStyle       `json:"artStyle"`
}

func (h *ClassifyHandler) classify(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No image file provided")
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		h.Metrics.ClassifyTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "Only image files are allowed")
	}
	if fileHeader.Size > h.MaxBytes {
		h.Metrics.ClassifyTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Image must be smaller than %d bytes", h.MaxBytes))
	}
	f, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read image")
	}
	defer f.Close()
	// The declared size is client-supplied, so re-check while reading.
	data, err := io.ReadAll(io.LimitReader(f, h.MaxBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read image")
	}
	if int64(len(data)) > h.MaxBytes {
		h.Metrics.ClassifyTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Image must be smaller than %d bytes", h.MaxBytes))
	}

	ctx := c.Request().Context()
	start := time.Now()
	result, err := h.Classifier.Classify(ctx, data, contentType)
	h.Metrics.ClassifyDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		h.Metrics.ClassifyTotal.WithLabelValues("error").Inc()
		h.logger.Printf("classification failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to classify image")
	}
	result.Confidence = models.ClampConfidence(result.Confidence)

	style, err := h.Store.GetArtStyleByName(ctx, result.ArtStyleName)
	if err != nil {
		if errors.Is(err, models.ErrArtStyleNotFound) {
			h.Metrics.ClassifyTotal.WithLabelValues("no_match").Inc()
			// The caller still gets the raw AI result, but nothing is stored.
			return c.JSON(http.StatusNotFound, echo.Map{
				"error":                "Art style not found in database",
				"classificationResult": result,
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load art style")
	}

	record, err := h.Store.CreateClassification(ctx, style.ID, base64.StdEncoding.EncodeToString(data), result.Confidence)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to store classification")
	}
	h.Metrics.ClassifyTotal.WithLabelValues("ok").Inc()
	h.logger.Printf("classified image as %q (%.1f%%)", style.Name, result.Confidence)
	return c.JSON(http.StatusOK, classifyResponse{
		Classification: classificationPayload{
			ID:         record.ID,
			ArtStyleID: record.ArtStyleID,
			Confidence: record.Confidence,
			Reasoning:  result.Reasoning,
			CreatedAt:  record.CreatedAt,
		},
		ArtStyle: style,
	})
}
