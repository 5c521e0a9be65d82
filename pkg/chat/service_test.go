package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unimind/unimind/internal/config"
	"github.com/unimind/unimind/internal/utils"
	"github.com/unimind/unimind/pkg/event"
	"github.com/unimind/unimind/pkg/user"
)

func chatTestContext() context.Context {
	return user.WithUser(context.Background(), user.User{Uid: "student-1"})
}

func newOfflineService(t *testing.T) *Service {
	t.Helper()
	cfg := config.Chat{} // no API keys: both clients fall back to canned behavior
	clock := &utils.MockClock{FixedNow: time.Date(2025, 11, 9, 12, 0, 0, 0, time.UTC)}
	events := event.NewService(event.NewRepositoryStub(), nil)
	return NewService(NewRepositoryStub(), NewEmotionClient(cfg), NewOpenRouterClient(cfg), events, clock)
}

func TestService_Send_rejectsEmptyMessage(t *testing.T) {
	service := newOfflineService(t)

	_, err := service.Send(chatTestContext(), "   ")

	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestService_Send_withoutApiKeysUsesFallbacks(t *testing.T) {
	service := newOfflineService(t)

	message, err := service.Send(chatTestContext(), "I'm worried about my exams")

	require.NoError(t, err)
	assert.Equal(t, "neutral", message.Emotion.Emotion)
	assert.NotEmpty(t, message.AiResponse)
	assert.NotEmpty(t, message.UID)
}

func TestService_Send_storesHistory(t *testing.T) {
	service := newOfflineService(t)
	ctx := chatTestContext()

	for i := 0; i < 3; i++ {
		_, err := service.Send(ctx, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	history, err := service.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "message 2", history[0].UserMessage)
	assert.Equal(t, "message 1", history[1].UserMessage)
}

func TestService_Send_withUpstreams(t *testing.T) {
	emotionServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer emotion-key", r.Header.Get("Authorization"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "I failed my midterm", body["text"])
		_ = json.NewEncoder(w).Encode(Emotion{Emotion: "sad", Intensity: 0.8, Confidence: 0.9})
	}))
	defer emotionServer.Close()

	completionServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer router-key", r.Header.Get("Authorization"))
		var request chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		require.Len(t, request.Messages, 2)
		assert.Contains(t, request.Messages[0].Content, "sad")
		_ = json.NewEncoder(w).Encode(chatCompletionResponse{
			Choices: []struct {
				Message chatCompletionMessage `json:"message"`
			}{
				{Message: chatCompletionMessage{Role: "assistant", Content: "That sounds really hard. One exam does not define you."}},
			},
		})
	}))
	defer completionServer.Close()

	cfg := config.Chat{
		EmotionApiKey:    "emotion-key",
		EmotionUrl:       emotionServer.URL,
		OpenRouterApiKey: "router-key",
		OpenRouterUrl:    completionServer.URL,
		Model:            "test-model",
	}
	clock := &utils.MockClock{FixedNow: time.Date(2025, 11, 9, 12, 0, 0, 0, time.UTC)}
	events := event.NewService(event.NewRepositoryStub(), nil)
	service := NewService(NewRepositoryStub(), NewEmotionClient(cfg), NewOpenRouterClient(cfg), events, clock)

	message, err := service.Send(chatTestContext(), "I failed my midterm")

	require.NoError(t, err)
	assert.Equal(t, "sad", message.Emotion.Emotion)
	assert.Equal(t, "That sounds really hard. One exam does not define you.", message.AiResponse)
}

func TestService_Send_degradesWhenUpstreamFails(t *testing.T) {
	emotionServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer emotionServer.Close()

	cfg := config.Chat{
		EmotionApiKey: "emotion-key",
		EmotionUrl:    emotionServer.URL,
	}
	clock := &utils.MockClock{FixedNow: time.Date(2025, 11, 9, 12, 0, 0, 0, time.UTC)}
	events := event.NewService(event.NewRepositoryStub(), nil)
	service := NewService(NewRepositoryStub(), NewEmotionClient(cfg), NewOpenRouterClient(cfg), events, clock)

	message, err := service.Send(chatTestContext(), "rough week")

	require.NoError(t, err)
	assert.Equal(t, "neutral", message.Emotion.Emotion)
	assert.NotEmpty(t, message.AiResponse)
}

func TestSystemPrompt_includesUpcomingEvents(t *testing.T) {
	start := time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)
	prompt := systemPrompt(Emotion{Emotion: "anxious", Intensity: 0.7}, []event.Event{
		{Title: "Physics Exam", StartTime: start, EndTime: start.Add(time.Hour)},
	})

	assert.Contains(t, prompt, "anxious")
	assert.Contains(t, prompt, "Physics Exam")
	assert.Contains(t, prompt, "2025-11-10")
}
