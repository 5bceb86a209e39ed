package setup

import (
	"context"
	"net/http"

	"github.com/eventz-dev/eventz/internal/config"
	"github.com/eventz-dev/eventz/internal/handler"
	"github.com/eventz-dev/eventz/internal/jwt"
	"github.com/eventz-dev/eventz/internal/middleware"
	"github.com/eventz-dev/eventz/internal/render"
	"github.com/eventz-dev/eventz/internal/service"
	"github.com/eventz-dev/eventz/internal/storage/fs"
	"github.com/eventz-dev/eventz/internal/storage/pg"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage         *pg.Storage
	Handler         *handler.Handler
	Auth            *middleware.Auth
	SecurityHeaders func(http.Handler) http.Handler
	Cfg             *config.Config
	MediaRoot       string
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	media, err := fs.New(cfg.Public.MediaRoot, cfg.Public.MediaBaseUrl)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	events := service.NewEvents(storage)
	identity := service.NewIdentity(storage, jwtService, cfg.AdminWallet())

	username, password := cfg.AdminCredentials()
	if err := identity.EnsureAdmin(ctx, username, password); err != nil {
		return nil, err
	}

	h := handler.New(events, identity, media, render.New(), storage, cfg, jwtService)

	return &Dependencies{
		Storage:         storage,
		Handler:         h,
		Auth:            middleware.NewAuth(jwtService),
		SecurityHeaders: middleware.SecurityHeaders(cfg.Public.SecureCookies),
		Cfg:             cfg,
		MediaRoot:       media.Root(),
	}, nil
}
