package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoanguyen96/url-signer/pkg/urlsigner"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	signer, err := urlsigner.New("test-secret-key")
	require.NoError(t, err)
	return &Server{
		signer:     signer,
		storageDir: t.TempDir(),
		urlTTL:     15 * time.Minute,
	}
}

func TestUploadAndDownload(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Routes()

	// Upload a file.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/files?filename=hello.txt", strings.NewReader("hello world"))
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp fileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasSuffix(resp.Key, ".txt"))
	assert.Contains(t, resp.URL, "signature=")
	assert.Contains(t, resp.URL, "expires=")

	// The signed URL fetches the file back.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, resp.URL, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello world", rec.Body.String())

	// The bare URL without the signature does not.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download/"+resp.Key, nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListFiles(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Routes()

	for _, body := range []string{"one", "two"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/files", strings.NewReader(body)))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var files []fileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &files))
	require.Len(t, files, 2)
	for _, f := range files {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, f.URL, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestTamperedDownloadURL(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/files", strings.NewReader("secret payload")))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp fileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	tampered := strings.Replace(resp.URL, resp.Key, "other-key", 1)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tampered, nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
