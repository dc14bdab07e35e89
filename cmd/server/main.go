// Command server is a small file-drop service built on the urlsigner
// library: uploads go in over POST, and the only way to get a file back out
// is through a signed, time-limited download URL.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/khoanguyen96/url-signer/pkg/urlsigner"
)

type Config struct {
	Port       string        `env:"PORT" env-default:"8080"`
	SecretKey  string        `env:"SIGNER_SECRET_KEY" env-required:"true"`
	StorageDir string        `env:"STORAGE_DIR" env-default:"./data/files"`
	URLTTL     time.Duration `env:"URL_TTL" env-default:"15m"`
}

// Server issues signed download URLs for files stored on the local
// filesystem and serves them back once the signature checks out.
type Server struct {
	signer     *urlsigner.Signer
	storageDir string
	urlTTL     time.Duration
}

func main() {
	var config Config
	if err := cleanenv.ReadEnv(&config); err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}

	signer, err := urlsigner.New(config.SecretKey)
	if err != nil {
		slog.Error("Failed to create signer", "err", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(config.StorageDir, 0755); err != nil {
		slog.Error("Failed to create storage directory", "dir", config.StorageDir, "err", err)
		os.Exit(1)
	}

	srv := &Server{
		signer:     signer,
		storageDir: config.StorageDir,
		urlTTL:     config.URLTTL,
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Port),
		Handler: srv.Routes(),
	}

	go func() {
		slog.Info("Server starting", "port", config.Port, "storage_dir", config.StorageDir, "url_ttl", config.URLTTL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "err", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown error", "err", err)
	}
}

// Routes sets up HTTP routes
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Post("/files", s.handleUpload)
	r.Get("/files", s.handleList)

	r.Route("/download", func(r chi.Router) {
		r.Use(urlsigner.ValidateMiddleware(s.signer))
		r.Get("/{key}", s.handleDownload)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

type fileResponse struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	ExpiresAt int64  `json:"expires_at"`
}

// handleUpload stores the request body under a fresh object key and responds
// with a signed download URL for it. An optional ?filename= parameter keeps
// the original extension on the stored file.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	key := uuid.New().String()
	if ext := filepath.Ext(r.URL.Query().Get("filename")); ext != "" && !strings.ContainsAny(ext, "/\\") {
		key += ext
	}

	f, err := os.Create(filepath.Join(s.storageDir, key))
	if err != nil {
		slog.Error("Failed to create file", "key", key, "err", err)
		writeError(w, r, http.StatusInternalServerError, "storage_failed", "could not store file")
		return
	}
	defer f.Close()

	if _, err := io.Copy(f, r.Body); err != nil {
		slog.Error("Failed to write file", "key", key, "err", err)
		writeError(w, r, http.StatusInternalServerError, "storage_failed", "could not store file")
		return
	}

	resp, err := s.signedResponse(key)
	if err != nil {
		slog.Error("Failed to sign download URL", "key", key, "err", err)
		writeError(w, r, http.StatusInternalServerError, "signing_failed", "could not sign download URL")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp)
}

// handleList returns every stored object with a freshly signed download URL.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.storageDir)
	if err != nil {
		slog.Error("Failed to read storage directory", "err", err)
		writeError(w, r, http.StatusInternalServerError, "storage_failed", "could not list files")
		return
	}

	files := make([]fileResponse, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		resp, err := s.signedResponse(entry.Name())
		if err != nil {
			slog.Error("Failed to sign download URL", "key", entry.Name(), "err", err)
			continue
		}
		files = append(files, resp)
	}

	render.JSON(w, r, files)
}

// handleDownload serves a stored file. ValidateMiddleware has already
// checked the signature and expiration by the time this runs.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" || key != filepath.Base(key) {
		writeError(w, r, http.StatusBadRequest, "invalid_key", "invalid object key")
		return
	}

	http.ServeFile(w, r, filepath.Join(s.storageDir, key))
}

func (s *Server) signedResponse(key string) (fileResponse, error) {
	expiresAt := time.Now().Add(s.urlTTL)
	signed, err := s.signer.Sign("/download/"+key, expiresAt)
	if err != nil {
		return fileResponse{}, err
	}
	return fileResponse{
		Key:       key,
		URL:       signed,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	})
}
