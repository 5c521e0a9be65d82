package event

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/unimind/unimind/internal/rest"
)

type Handler struct {
	service *Service
}

type EventDTO struct {
	UID       string    `json:"uid"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes"`
	AllDay    bool      `json:"allDay"`
	StartTime time.Time `json:"start"`
	EndTime   time.Time `json:"end"`
	Revision  int       `json:"revision"`
}

func NewHandler(s *Service) *Handler {
	return &Handler{s}
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var dtos = make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var eventDTO EventDTO
	if err := json.NewDecoder(r.Body).Decode(&eventDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), dtoToEvent(eventDTO))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(eventToDTO(*created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var eventDTO EventDTO
	if err := json.NewDecoder(r.Body).Decode(&eventDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	eventDTO.UID = mux.Vars(r)["eventUid"]

	updated, err := h.service.Update(r.Context(), dtoToEvent(eventDTO))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(eventToDTO(*updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventUid := mux.Vars(r)["eventUid"]
	if err := h.service.Delete(r.Context(), eventUid); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case errors.Is(err, ErrEmptyTitle), errors.Is(err, ErrInvalidTimeRange):
		w.WriteHeader(http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		w.WriteHeader(http.StatusConflict)
	default:
		log.Errorf("event request failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
	if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()}); encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}

func eventToDTO(e Event) EventDTO {
	return EventDTO{
		UID:       e.UID,
		Title:     e.Title,
		Notes:     e.Notes,
		AllDay:    e.AllDay,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Revision:  e.Revision,
	}
}

func dtoToEvent(dto EventDTO) Event {
	return Event{
		UID:       dto.UID,
		Title:     dto.Title,
		Notes:     dto.Notes,
		AllDay:    dto.AllDay,
		StartTime: dto.StartTime,
		EndTime:   dto.EndTime,
		Revision:  dto.Revision,
	}
}
