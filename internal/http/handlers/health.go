package handlers

import (
	"net/http"
)

// Health reports liveness. The service boots without Gemini credentials,
// so readiness is reported separately instead of failing the check.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"status": "ok",
		"ready":  a.Photos != nil && a.Photos.Ready(),
	})
}
