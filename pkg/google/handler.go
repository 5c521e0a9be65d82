package google

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/unimind/unimind/internal/rest"
	"github.com/unimind/unimind/internal/utils"
)

type Handler struct {
	importer *Importer
	clock    utils.Clock
}

func NewHandler(importer *Importer, clock utils.Clock) *Handler {
	return &Handler{importer: importer, clock: clock}
}

type importResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportEvents imports the next 30 days of the user's primary calendar.
func (h *Handler) ImportEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	now := h.clock.Now()
	result, err := h.importer.Import(r.Context(), now, now.AddDate(0, 0, 30))
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: "Google Calendar is not connected",
			})
			return
		}
		log.Errorf("failed to import Google Calendar events: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(importResponse{
		Imported: result.Imported,
		Skipped:  result.Skipped,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
