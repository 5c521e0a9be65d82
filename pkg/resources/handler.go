package resources

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/unimind/unimind/internal/rest"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetResources(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	overview, err := h.service.FindForSchool(r.Context(), r.URL.Query().Get("school"))
	if err != nil {
		if errors.Is(err, ErrMissingSchool) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Missing school parameter"})
			return
		}
		log.Errorf("failed to find resources: %v", err)
		// Lookup failures still return something the student can use.
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(Overview{
			Global:         GlobalResources,
			SchoolSpecific: []Resource{{Name: "Lookup unavailable", Description: "Try again later."}},
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(overview); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
