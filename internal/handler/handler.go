package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/eventz-dev/eventz/internal/config"
	"github.com/eventz-dev/eventz/internal/jwt"
	"github.com/eventz-dev/eventz/internal/logger"
	"github.com/eventz-dev/eventz/internal/render"
	"github.com/eventz-dev/eventz/internal/service"
)

// MediaStorage stores an uploaded blob and returns its public URL.
type MediaStorage interface {
	Save(fileData io.Reader, originalFilename string) (string, error)
}

// Pinger reports store connectivity for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	events   service.EventService
	identity service.IdentityService
	media    MediaStorage
	renderer *render.HeroRenderer
	health   Pinger
	cfg      *config.Config
	jwt      jwt.JwtService
}

func New(events service.EventService, identity service.IdentityService, media MediaStorage, renderer *render.HeroRenderer, health Pinger, cfg *config.Config, jwtService jwt.JwtService) *Handler {
	return &Handler{events, identity, media, renderer, health, cfg, jwtService}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
