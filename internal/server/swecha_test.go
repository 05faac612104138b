package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/artyatra/artyatra/internal/swecha"
)

func newSwechaTest(t *testing.T, upstream *httptest.Server) *SwechaHandler {
	t.Helper()
	client := swecha.NewClient(upstream.URL, 5*time.Second)
	return NewSwechaHandler(client, 20<<20, "default-cat", NewMetrics(prometheus.NewRegistry()))
}

func simpleUploadBody(t *testing.T, fields map[string]string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	if fileData != nil {
		part, err := w.CreateFormFile("file", "art.jpg")
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := part.Write(fileData); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestSimpleUploadRunsBothPhases(t *testing.T) {
	var chunkUUID, finalizeUUID string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/records/upload/chunk":
			_ = r.ParseMultipartForm(1 << 20)
			chunkUUID = r.FormValue("upload_uuid")
			if auth := r.Header.Get("Authorization"); auth != "Bearer corpus-token" {
				t.Errorf("caller token not forwarded: %q", auth)
			}
			w.Write([]byte(`{"ok":true}`))
		case "/records/upload":
			_ = r.ParseForm()
			finalizeUUID = r.PostFormValue("upload_uuid")
			if got := r.PostFormValue("category_id"); got != "default-cat" {
				t.Errorf("default category not applied: %q", got)
			}
			if got := r.PostFormValue("user_id"); got != "corpus-user-1" {
				t.Errorf("user_id not forwarded: %q", got)
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"rec-1"}`))
		}
	}))
	defer upstream.Close()

	h := newSwechaTest(t, upstream)
	body, ct := simpleUploadBody(t, map[string]string{
		"title":       "Warli field photo",
		"latitude":    "17.38",
		"longitude":   "78.48",
		"user_id":     "corpus-user-1",
		"upload_uuid": "client-uuid-1",
	}, []byte("imagebytes"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/swecha/upload/simple", body)
	req.Header.Set(echo.HeaderContentType, ct)
	req.Header.Set(echo.HeaderAuthorization, "Bearer corpus-token")
	rec := httptest.NewRecorder()

	if err := h.simpleUpload(e.NewContext(req, rec)); err != nil {
		t.Fatalf("simpleUpload: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected upstream 201 forwarded, got %d: %s", rec.Code, rec.Body.String())
	}
	// The client-supplied job id must travel to both phases untouched.
	if chunkUUID != "client-uuid-1" || finalizeUUID != "client-uuid-1" {
		t.Fatalf("both phases must carry the client's upload_uuid: chunk=%q finalize=%q", chunkUUID, finalizeUUID)
	}
	if rec.Header().Get(partialUploadHeader) != "" {
		t.Fatal("successful upload must not carry the partial header")
	}
}

func TestSimpleUploadChunkRejectionForwardedVerbatim(t *testing.T) {
	var finalizeCalls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/records/upload/chunk":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"detail":"quota exceeded"}`))
		case "/records/upload":
			atomic.AddInt32(&finalizeCalls, 1)
		}
	}))
	defer upstream.Close()

	h := newSwechaTest(t, upstream)
	body, ct := simpleUploadBody(t, map[string]string{
		"title": "x", "latitude": "17.38", "longitude": "78.48",
		"user_id": "u-1", "upload_uuid": "uuid-1",
	}, []byte("data"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/swecha/upload/simple", body)
	req.Header.Set(echo.HeaderContentType, ct)
	rec := httptest.NewRecorder()

	if err := h.simpleUpload(e.NewContext(req, rec)); err != nil {
		t.Fatalf("simpleUpload: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("upstream status not forwarded: %d", rec.Code)
	}
	if rec.Body.String() != `{"detail":"quota exceeded"}` {
		t.Fatalf("upstream body not forwarded verbatim: %s", rec.Body.String())
	}
	if finalizeCalls != 0 {
		t.Fatal("finalize must never run after a rejected chunk")
	}
	if rec.Header().Get(partialUploadHeader) != "" {
		t.Fatal("a rejected chunk is not a partial upload")
	}
}

func TestSimpleUploadFinalizeRejectionFlagsPartial(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/records/upload/chunk":
			w.Write([]byte(`{"ok":true}`))
		case "/records/upload":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"detail":"bad metadata"}`))
		}
	}))
	defer upstream.Close()

	h := newSwechaTest(t, upstream)
	body, ct := simpleUploadBody(t, map[string]string{
		"title": "x", "latitude": "17.38", "longitude": "78.48",
		"user_id": "u-1", "upload_uuid": "fixed-uuid",
	}, []byte("data"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/swecha/upload/simple", body)
	req.Header.Set(echo.HeaderContentType, ct)
	rec := httptest.NewRecorder()

	if err := h.simpleUpload(e.NewContext(req, rec)); err != nil {
		t.Fatalf("simpleUpload: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("upstream status not forwarded: %d", rec.Code)
	}
	if rec.Body.String() != `{"detail":"bad metadata"}` {
		t.Fatalf("upstream body not forwarded verbatim: %s", rec.Body.String())
	}
	if got := rec.Header().Get(partialUploadHeader); got != "fixed-uuid" {
		t.Fatalf("expected partial header with upload uuid, got %q", got)
	}
}

func TestSimpleUploadChunkNetworkErrorIsBadGateway(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	// Close immediately so the chunk call never reaches anything.
	upstream.Close()

	h := newSwechaTest(t, upstream)
	body, ct := simpleUploadBody(t, map[string]string{
		"title": "x", "latitude": "17.38", "longitude": "78.48",
		"user_id": "u-1", "upload_uuid": "uuid-1",
	}, []byte("data"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/swecha/upload/simple", body)
	req.Header.Set(echo.HeaderContentType, ct)
	rec := httptest.NewRecorder()

	err := h.simpleUpload(e.NewContext(req, rec))
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for a network-level chunk failure, got %#v", err)
	}
}

func TestSimpleUploadValidation(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called for invalid requests")
	}))
	defer upstream.Close()
	h := newSwechaTest(t, upstream)
	e := echo.New()

	cases := []struct {
		name   string
		fields map[string]string
		file   []byte
	}{
		{"missing file", map[string]string{"title": "x", "latitude": "1", "longitude": "2", "user_id": "u", "upload_uuid": "id"}, nil},
		{"missing title", map[string]string{"latitude": "17", "longitude": "78", "user_id": "u", "upload_uuid": "id"}, []byte("d")},
		{"missing coords", map[string]string{"title": "x", "user_id": "u", "upload_uuid": "id"}, []byte("d")},
		{"missing user_id", map[string]string{"title": "x", "latitude": "17", "longitude": "78", "upload_uuid": "id"}, []byte("d")},
		{"missing upload_uuid", map[string]string{"title": "x", "latitude": "17", "longitude": "78", "user_id": "u"}, []byte("d")},
	}
	for _, tc := range cases {
		body, ct := simpleUploadBody(t, tc.fields, tc.file)
		req := httptest.NewRequest(http.MethodPost, "/api/swecha/upload/simple", body)
		req.Header.Set(echo.HeaderContentType, ct)
		rec := httptest.NewRecorder()

		err := h.simpleUpload(e.NewContext(req, rec))
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %#v", tc.name, err)
		}
	}
}

func TestFinalizeOnlyAppliesProtocolDefaults(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/records/upload" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_ = r.ParseForm()
		if got := r.PostFormValue("total_chunks"); got != "1" {
			t.Errorf("total_chunks = %q", got)
		}
		if got := r.PostFormValue("release_rights"); got != "creator" {
			t.Errorf("release_rights = %q", got)
		}
		if got := r.PostFormValue("media_type"); got != "image" {
			t.Errorf("media_type = %q", got)
		}
		if got := r.PostFormValue("use_uid_filename"); got != "false" {
			t.Errorf("use_uid_filename = %q", got)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"rec-9"}`))
	}))
	defer upstream.Close()

	h := newSwechaTest(t, upstream)
	form := url.Values{}
	form.Set("title", "Legacy upload")
	form.Set("latitude", "17.38")
	form.Set("longitude", "78.48")

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/swecha/upload", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	if err := h.finalizeOnly(e.NewContext(req, rec)); err != nil {
		t.Fatalf("finalizeOnly: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected forwarded 201, got %d", rec.Code)
	}
}

func TestFinalizeOnlyValidatesRequiredFields(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called for invalid requests")
	}))
	defer upstream.Close()
	h := newSwechaTest(t, upstream)

	form := url.Values{}
	form.Set("title", "no coordinates")

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/swecha/upload", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	err := h.finalizeOnly(e.NewContext(req, rec))
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %#v", err)
	}
}
