// Package swecha talks to the external Swecha Corpus archive: auth proxying
// and the chunk-then-finalize record upload protocol. The client never
// interprets upstream payloads; callers forward status and body verbatim.
package swecha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.New(log.Writer(), "[SWECHA] ", log.LstdFlags),
	}
}

// UpstreamResponse captures exactly what the archive answered so handlers can
// relay it to the caller untouched.
type UpstreamResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

func (r *UpstreamResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ChunkUpload is phase 1 of an upload: one binary chunk tagged with the job
// id. The single-chunk flow always sends index 0 of 1.
type ChunkUpload struct {
	UploadUUID  string
	ChunkIndex  int
	TotalChunks int
	Filename    string
	ContentType string
	Data        []byte
}

// FinalizeRequest is phase 2: metadata for the record, carrying the same
// upload_uuid as the chunk or the archive rejects it.
type FinalizeRequest struct {
	TotalChunks    int
	Filename       string
	Latitude       string
	Longitude      string
	UseUIDFilename string
	ReleaseRights  string
	UserID         string
	MediaType      string
	Title          string
	UploadUUID     string
	Description    string
	CategoryID     string
}

var bearerRe = regexp.MustCompile(`(?i)^Bearer\s+`)

// ToBearer normalizes a raw token or header value into an Authorization value.
func ToBearer(value string) string {
	v := strings.Trim(strings.TrimSpace(value), `"`)
	if v == "" {
		return ""
	}
	if bearerRe.MatchString(v) {
		return v
	}
	return "Bearer " + v
}

func (c *Client) do(req *http.Request, authorization string) (*UpstreamResponse, error) {
	req.Header.Set("Accept", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", ToBearer(authorization))
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	return &UpstreamResponse{StatusCode: resp.StatusCode, ContentType: contentType, Body: body}, nil
}

// UploadChunk performs the phase-1 multipart call. The binary travels under
// the field name "chunk"; the archive rejects anything else.
func (c *Client) UploadChunk(ctx context.Context, authorization string, chunk ChunkUpload) (*UpstreamResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("upload_uuid", chunk.UploadUUID)
	_ = w.WriteField("chunk_index", strconv.Itoa(chunk.ChunkIndex))
	_ = w.WriteField("filename", chunk.Filename)
	_ = w.WriteField("total_chunks", strconv.Itoa(chunk.TotalChunks))
	part, err := w.CreateFormFile("chunk", chunk.Filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(chunk.Data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/records/upload/chunk", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, authorization)
}

// FinalizeUpload performs the phase-2 URL-encoded call.
func (c *Client) FinalizeUpload(ctx context.Context, authorization string, fin FinalizeRequest) (*UpstreamResponse, error) {
	form := url.Values{}
	form.Set("total_chunks", strconv.Itoa(fin.TotalChunks))
	if fin.Filename != "" {
		form.Set("filename", fin.Filename)
	}
	form.Set("latitude", fin.Latitude)
	form.Set("longitude", fin.Longitude)
	form.Set("use_uid_filename", fin.UseUIDFilename)
	form.Set("release_rights", fin.ReleaseRights)
	if fin.UserID != "" {
		form.Set("user_id", fin.UserID)
	}
	form.Set("media_type", fin.MediaType)
	form.Set("title", fin.Title)
	if fin.UploadUUID != "" {
		form.Set("upload_uuid", fin.UploadUUID)
	}
	form.Set("description", fin.Description)
	if fin.CategoryID != "" {
		form.Set("category_id", fin.CategoryID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/records/upload", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, authorization)
}

// Login proxies credentials to the archive's auth endpoint.
func (c *Client) Login(ctx context.Context, phone, password string) (*UpstreamResponse, error) {
	body, err := json.Marshal(map[string]string{"phone": phone, "password": password})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, "")
}

// Me fetches the archive-side account for the caller's bearer token.
func (c *Client) Me(ctx context.Context, authorization string) (*UpstreamResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/me", nil)
	if err != nil {
		return nil, err
	}
	return c.do(req, authorization)
}
