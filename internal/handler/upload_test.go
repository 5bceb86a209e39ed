package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventz-dev/eventz/internal/api"
)

type MockMediaStorage struct {
	MockSave func(fileData io.Reader, originalFilename string) (string, error)
}

func (m *MockMediaStorage) Save(fileData io.Reader, originalFilename string) (string, error) {
	if m.MockSave != nil {
		return m.MockSave(fileData, originalFilename)
	}
	return "", nil
}

type MockPinger struct {
	MockPing func(ctx context.Context) error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	if m.MockPing != nil {
		return m.MockPing(ctx)
	}
	return nil
}

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mpw := multipart.NewWriter(&buf)
	part, err := mpw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mpw.Close())
	return &buf, mpw.FormDataContentType()
}

func TestUploadHeroHandler(t *testing.T) {
	h := &Handler{cfg: testConfig()}
	router := chi.NewRouter()
	router.Post("/v1/uploads/hero", h.UploadHero)

	t.Run("successful upload", func(t *testing.T) {
		var gotFilename string
		h.media = &MockMediaStorage{
			MockSave: func(fileData io.Reader, originalFilename string) (string, error) {
				gotFilename = originalFilename
				return "/media/abc.png", nil
			},
		}
		body, contentType := multipartBody(t, "hero.png", []byte("png bytes"))
		req := httptest.NewRequest(http.MethodPost, "/v1/uploads/hero", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "hero.png", gotFilename)
		var response api.UploadResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, "/media/abc.png", response.Url)
	})

	t.Run("unsupported type", func(t *testing.T) {
		h.media = &MockMediaStorage{}
		body, contentType := multipartBody(t, "notes.txt", []byte("text"))
		req := httptest.NewRequest(http.MethodPost, "/v1/uploads/hero", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing form field", func(t *testing.T) {
		var buf bytes.Buffer
		mpw := multipart.NewWriter(&buf)
		require.NoError(t, mpw.Close())
		req := httptest.NewRequest(http.MethodPost, "/v1/uploads/hero", &buf)
		req.Header.Set("Content-Type", mpw.FormDataContentType())
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		h.media = &MockMediaStorage{
			MockSave: func(fileData io.Reader, originalFilename string) (string, error) {
				return "", errors.New("disk full")
			},
		}
		body, contentType := multipartBody(t, "hero.jpg", []byte("jpg bytes"))
		req := httptest.NewRequest(http.MethodPost, "/v1/uploads/hero", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestHealthHandlers(t *testing.T) {
	h := &Handler{}
	router := chi.NewRouter()
	router.Get("/health", h.Health)
	router.Get("/ready", h.Ready)

	t.Run("health always ok", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("ready when store pings", func(t *testing.T) {
		h.health = &MockPinger{}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unavailable when store is down", func(t *testing.T) {
		h.health = &MockPinger{
			MockPing: func(ctx context.Context) error { return errors.New("connection refused") },
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}
