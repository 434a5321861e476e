package httpapi

import (
	"net/http"
	"time"

	"server/internal/http/handlers"
	"server/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the public HTTP surface.
func NewRouter(app *handlers.App) http.Handler {
	r := chi.NewRouter()

	r.Use(
		chimw.RealIP,
		middleware.RequestID,
		middleware.Logger(app.Logger),
		chimw.Recoverer,
	)
	r.Use(middleware.CORS(app.Config.AllowedOrigins))
	r.Use(middleware.I18N(app.Config.DefaultLocale, app.Country))

	r.Get("/v1/healthz", app.Health)
	r.Get("/openapi.json", app.OpenAPIJSON)
	r.Get("/docs", app.OpenAPIDocs)

	r.Route("/v1/id-photos", func(r chi.Router) {
		if app.Config.RateLimitPerMin > 0 {
			r.With(middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute)).Post("/", app.IDPhotoCreate)
		} else {
			r.Post("/", app.IDPhotoCreate)
		}
		r.Get("/status-messages", app.IDPhotoStatusMessages)
	})

	return r
}
