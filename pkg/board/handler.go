package board

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/unimind/unimind/internal/rest"
)

type Handler struct {
	service *Service
}

// SnapshotDTO mirrors the shape the UniBoard page consumes.
type SnapshotDTO struct {
	MoveMessage string         `json:"move_message"`
	Progress    map[string]int `json:"progress"`
	Xp          XpDTO          `json:"xp"`
	Badges      int            `json:"badges"`
	BoardPos    int            `json:"board_pos"`
}

type XpDTO struct {
	Total int `json:"total"`
	Goal  int `json:"goal"`
}

type ChallengeDTO struct {
	Id          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type CompletionDTO struct {
	Awarded bool `json:"awarded"`
	Amount  int  `json:"amount"`
	XpTotal int  `json:"xpTotal"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.GetSnapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := SnapshotDTO{
		MoveMessage: snapshot.MoveMessage,
		Progress:    snapshot.Progress,
		Xp:          XpDTO{Total: snapshot.Xp.Total, Goal: snapshot.Xp.Goal},
		Badges:      snapshot.Badges,
		BoardPos:    snapshot.BoardPos,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetChallenges(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.service.WeeklyChallenges(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ChallengeDTO, 0, len(statuses))
	for _, s := range statuses {
		dtos = append(dtos, ChallengeDTO{
			Id:          s.Slot,
			Title:       s.Title,
			Description: s.Description,
			Completed:   s.Completed,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) CompleteChallenge(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	slot, err := strconv.Atoi(mux.Vars(r)["challengeId"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid challenge id"})
		return
	}

	result, err := h.service.CompleteChallenge(r.Context(), slot)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownChallenge):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, ErrAwardFailed):
			// The completion was rolled back; the client may retry later.
			w.WriteHeader(http.StatusBadGateway)
		default:
			log.Errorf("challenge completion failed: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
		}
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(CompletionDTO{
		Awarded: result.Awarded,
		Amount:  result.Amount,
		XpTotal: result.XpTotal,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) AwardXp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var body struct {
		UserId string `json:"user_id"`
		Amount int    `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	total, err := h.service.AwardXp(r.Context(), body.UserId, body.Amount)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]int{"total": total}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
