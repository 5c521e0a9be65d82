package calendarview

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/unimind/unimind/internal/rest"
	"github.com/unimind/unimind/internal/utils"
	"github.com/unimind/unimind/pkg/event"
	"github.com/unimind/unimind/pkg/user"
)

// Handler keeps one ephemeral ViewState per user. The state is deliberately
// in-memory only: it mirrors what a client keeps on screen, not durable data.
type Handler struct {
	mu     sync.Mutex
	views  map[string]*ViewState
	events *event.Service
	clock  utils.Clock
}

type ViewDTO struct {
	Visible     time.Time        `json:"visible"`
	Granularity Granularity      `json:"granularity"`
	RenderKey   string           `json:"renderKey"`
	Events      []event.EventDTO `json:"events"`
}

func NewHandler(events *event.Service, clock utils.Clock) *Handler {
	return &Handler{
		views:  make(map[string]*ViewState),
		events: events,
		clock:  clock,
	}
}

func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	view, err := h.viewForRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeView(w, r, view)
}

func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	direction, err := ParseDirection(body.Direction)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid direction",
			Details: "direction must be one of: today, previous, next",
		})
		return
	}

	view, err := h.viewForRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.mu.Lock()
	view.Navigate(direction, h.clock)
	h.mu.Unlock()

	h.writeView(w, r, view)
}

func (h *Handler) ChangeGranularity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Granularity string `json:"granularity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	granularity, err := ParseGranularity(body.Granularity)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid granularity",
			Details: "granularity must be one of: month, week, day",
		})
		return
	}

	view, err := h.viewForRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.mu.Lock()
	view.ChangeView(granularity)
	h.mu.Unlock()

	h.writeView(w, r, view)
}

func (h *Handler) viewForRequest(r *http.Request) (*ViewState, error) {
	userUid, err := user.CurrentUid(r.Context())
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	view, ok := h.views[userUid]
	if !ok {
		view = NewViewState(h.clock)
		h.views[userUid] = view
	}
	return view, nil
}

// writeView refreshes the event list before rendering so the render key
// always reflects the latest date+granularity+event-list triple.
func (h *Handler) writeView(w http.ResponseWriter, r *http.Request, view *ViewState) {
	events, err := h.events.List(r.Context())
	if err != nil {
		log.Errorf("failed to load events for view: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.mu.Lock()
	view.SetEvents(events)
	dto := ViewDTO{
		Visible:     view.Visible,
		Granularity: view.Granularity,
		RenderKey:   view.RenderKey(),
		Events:      make([]event.EventDTO, 0, len(events)),
	}
	h.mu.Unlock()

	for _, e := range events {
		dto.Events = append(dto.Events, event.EventDTO{
			UID:       e.UID,
			Title:     e.Title,
			Notes:     e.Notes,
			AllDay:    e.AllDay,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			Revision:  e.Revision,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if err == user.ErrNoUser {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
