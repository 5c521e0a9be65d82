package journal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/unimind/unimind/internal/rest"
)

type Handler struct {
	service *Service
}

type EntryDTO struct {
	UID       string    `json:"uid"`
	Mood      string    `json:"mood"`
	MoodText  string    `json:"mood_text"`
	CreatedAt time.Time `json:"timestamp"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service}
}

func (h *Handler) AddEntry(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.service.AddEntry(r.Context(), Entry{Mood: dto.Mood, MoodText: dto.MoodText})
	if err != nil {
		if errors.Is(err, ErrMoodRequired) || errors.Is(err, ErrUnknownMood) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
			return
		}
		log.Errorf("failed to add journal entry: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(entryToDTO(*entry)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetEntries(w http.ResponseWriter, r *http.Request) {
	days := 30
	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		parsed, err := strconv.Atoi(daysParam)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid days parameter",
				Details: "'days' must be an integer",
			})
			return
		}
		days = parsed
	}

	entries, err := h.service.GetRecentEntries(r.Context(), days)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, entryToDTO(entry))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(struct {
		Entries []EntryDTO `json:"entries"`
		Count   int        `json:"count"`
	}{dtos, len(dtos)}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func entryToDTO(e Entry) EntryDTO {
	return EntryDTO{
		UID:       e.UID,
		Mood:      e.Mood,
		MoodText:  e.MoodText,
		CreatedAt: e.CreatedAt,
	}
}
