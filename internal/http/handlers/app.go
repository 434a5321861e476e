package handlers

import (
	"encoding/json"
	"net/http"

	"server/internal/idphoto"
	"server/internal/infra"
	"server/internal/middleware"
)

// App bundles the dependencies shared by every HTTP handler.
type App struct {
	Config  *infra.Config
	Logger  infra.Logger
	Photos  *idphoto.Service
	Country middleware.CountryLookup
}

func NewApp(cfg *infra.Config, logger infra.Logger, photos *idphoto.Service, country middleware.CountryLookup) *App {
	return &App{Config: cfg, Logger: logger, Photos: photos, Country: country}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
