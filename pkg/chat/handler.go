package chat

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

func NewHandler(service *Service) *Handler {
	return &Handler{service}
}

type sendRequest struct {
	Message string `json:"message"`
}

type sendResponse struct {
	Response  string    `json:"response"`
	Emotion   Emotion   `json:"emotion"`
	Timestamp time.Time `json:"timestamp"`
}

type MessageDTO struct {
	UID         string    `json:"uid"`
	UserMessage string    `json:"user_message"`
	AiResponse  string    `json:"ai_response"`
	Emotion     Emotion   `json:"emotion"`
	Timestamp   time.Time `json:"timestamp"`
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request sendRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	message, err := h.service.Send(r.Context(), request.Message)
	if err != nil {
		if errors.Is(err, ErrEmptyMessage) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Message is required"})
			return
		}
		log.Errorf("failed to process chat message: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(sendResponse{
		Response:  message.AiResponse,
		Emotion:   message.Emotion,
		Timestamp: message.CreatedAt,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil {
			http.Error(w, "'limit' must be an integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	messages, err := h.service.History(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]MessageDTO, 0, len(messages))
	for _, message := range messages {
		dtos = append(dtos, MessageDTO{
			UID:         message.UID,
			UserMessage: message.UserMessage,
			AiResponse:  message.AiResponse,
			Emotion:     message.Emotion,
			Timestamp:   message.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
