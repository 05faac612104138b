package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/artyatra/artyatra/internal/swecha"
)

// The header that flags an upload whose chunk landed upstream but whose
// finalize call was rejected. The body is still the verbatim upstream answer.
const partialUploadHeader = "X-Artyatra-Partial-Upload"

// SwechaHandler relays record uploads to the external archive. It performs no
// local authentication; the caller's Authorization header travels upstream
// untouched, so an archive token works here without a local account.
type SwechaHandler struct {
	Client            *swecha.Client
	MaxBytes          int64
	DefaultCategoryID string
	Metrics           *Metrics
	logger            *log.Logger
}

func NewSwechaHandler(client *swecha.Client, maxBytes int64, defaultCategoryID string, metrics *Metrics) *SwechaHandler {
	return &SwechaHandler{
		Client:            client,
		MaxBytes:          maxBytes,
		DefaultCategoryID: defaultCategoryID,
		Metrics:           metrics,
		logger:            log.New(log.Writer(), "[RELAY] ", log.LstdFlags),
	}
}

func (h *SwechaHandler) Register(g *echo.Group) {
	g.POST("/upload", h.finalizeOnly)
	g.POST("/upload/simple", h.simpleUpload)
}

func forwardUpstream(c echo.Context, resp *swecha.UpstreamResponse) error {
	return c.Blob(resp.StatusCode, resp.ContentType, resp.Body)
}

// finalizeOnly is the legacy passthrough for clients that ran the chunk phase
// themselves: it forwards the finalize form as-is, filling protocol defaults.
func (h *SwechaHandler) finalizeOnly(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form body")
	}
	title := form.Get("title")
	latitude := form.Get("latitude")
	longitude := form.Get("longitude")
	if title == "" || latitude == "" || longitude == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title, latitude and longitude are required")
	}

	fin := swecha.FinalizeRequest{
		TotalChunks:    1,
		Filename:       form.Get("filename"),
		Latitude:       latitude,
		Longitude:      longitude,
		UseUIDFilename: valueOr(form.Get("use_uid_filename"), "false"),
		ReleaseRights:  valueOr(form.Get("release_rights"), "creator"),
		UserID:         form.Get("user_id"),
		MediaType:      valueOr(form.Get("media_type"), "image"),
		Title:          title,
		UploadUUID:     form.Get("upload_uuid"),
		Description:    form.Get("description"),
		CategoryID:     form.Get("category_id"),
	}

	authorization := c.Request().Header.Get(echo.HeaderAuthorization)
	resp, err := h.Client.FinalizeUpload(c.Request().Context(), authorization, fin)
	if err != nil {
		h.Metrics.RelayTotal.WithLabelValues(string(swecha.PhaseFinalize), "error").Inc()
		h.logger.Printf("finalize passthrough failed: %v", err)
		return echo.NewHTTPError(http.StatusBadGateway, "upstream upload failed")
	}
	h.Metrics.RelayTotal.WithLabelValues(string(swecha.PhaseFinalize), outcomeLabel(resp.OK())).Inc()
	return forwardUpstream(c, resp)
}

// simpleUpload runs both protocol phases on the caller's behalf: the file
// goes up as a single chunk, then the metadata finalizes the record.
func (h *SwechaHandler) simpleUpload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file provided")
	}
	if fileHeader.Size > h.MaxBytes {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("File must be smaller than %d bytes", h.MaxBytes))
	}

	title := c.FormValue("title")
	latitude := c.FormValue("latitude")
	longitude := c.FormValue("longitude")
	userID := c.FormValue("user_id")
	// The job id correlating both phases is client-generated; inventing one
	// here would hide a broken client behind an upload the archive cannot
	// finalize.
	uploadUUID := c.FormValue("upload_uuid")
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if latitude == "" || longitude == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "latitude and longitude are required")
	}
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}
	if uploadUUID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "upload_uuid is required")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read file")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, h.MaxBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read file")
	}
	if int64(len(data)) > h.MaxBytes {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("File must be smaller than %d bytes", h.MaxBytes))
	}

	filename := valueOr(c.FormValue("filename"), fileHeader.Filename)
	contentType := valueOr(fileHeader.Header.Get("Content-Type"), "application/octet-stream")

	chunk := swecha.ChunkUpload{
		UploadUUID:  uploadUUID,
		ChunkIndex:  0,
		TotalChunks: 1,
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
	}
	fin := swecha.FinalizeRequest{
		TotalChunks:    1,
		Filename:       filename,
		Latitude:       latitude,
		Longitude:      longitude,
		UseUIDFilename: valueOr(c.FormValue("use_uid_filename"), "false"),
		ReleaseRights:  valueOr(c.FormValue("release_rights"), "creator"),
		UserID:         userID,
		MediaType:      valueOr(c.FormValue("media_type"), "image"),
		Title:          title,
		UploadUUID:     uploadUUID,
		Description:    c.FormValue("description"),
		CategoryID:     valueOr(c.FormValue("category_id"), h.DefaultCategoryID),
	}

	authorization := c.Request().Header.Get(echo.HeaderAuthorization)
	result, err := h.Client.RelayUpload(c.Request().Context(), authorization, chunk, fin)
	if err != nil {
		if errors.Is(err, swecha.ErrPartialUpload) {
			h.Metrics.RelayTotal.WithLabelValues(string(swecha.PhaseFinalize), "partial").Inc()
			h.logger.Printf("upload %s partially submitted: %v", uploadUUID, err)
			c.Response().Header().Set(partialUploadHeader, uploadUUID)
			return echo.NewHTTPError(http.StatusBadGateway, "upload partially submitted: finalize failed after chunk was accepted")
		}
		h.Metrics.RelayTotal.WithLabelValues(string(swecha.PhaseChunk), "error").Inc()
		h.logger.Printf("upload %s failed: %v", uploadUUID, err)
		return echo.NewHTTPError(http.StatusBadGateway, "upstream upload failed")
	}

	if result.PartiallySubmitted {
		h.Metrics.RelayTotal.WithLabelValues(string(result.Phase), "partial").Inc()
		c.Response().Header().Set(partialUploadHeader, uploadUUID)
	} else {
		h.Metrics.RelayTotal.WithLabelValues(string(result.Phase), outcomeLabel(result.Response.OK())).Inc()
	}
	return forwardUpstream(c, result.Response)
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func outcomeLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "rejected"
}
