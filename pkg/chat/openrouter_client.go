package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/unimind/unimind/internal/config"
	"github.com/unimind/unimind/pkg/event"
)

// Responder generates the companion's reply to a student message.
type Responder interface {
	Respond(ctx context.Context, message string, emotion Emotion, upcoming []event.Event) string
}

type OpenRouterClientImpl struct {
	apiKey     string
	baseUrl    string
	model      string
	httpClient *http.Client
}

func NewOpenRouterClient(cfg config.Chat) *OpenRouterClientImpl {
	return &OpenRouterClientImpl{
		apiKey:  cfg.OpenRouterApiKey,
		baseUrl: cfg.OpenRouterUrl,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model     string                  `json:"model"`
	Messages  []chatCompletionMessage `json:"messages"`
	MaxTokens int                     `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatCompletionMessage `json:"message"`
	} `json:"choices"`
}

// Respond never fails the caller: without an API key or on any upstream
// problem it returns a short supportive fallback keyed to the detected
// emotion.
func (c *OpenRouterClientImpl) Respond(ctx context.Context, message string, emotion Emotion, upcoming []event.Event) string {
	if c.apiKey == "" {
		return fmt.Sprintf("I hear you. It sounds like you're feeling %s right now. I'm here to support you.", emotionOrDefault(emotion, "thoughtful"))
	}

	body, err := json.Marshal(chatCompletionRequest{
		Model: c.model,
		Messages: []chatCompletionMessage{
			{Role: "system", Content: systemPrompt(emotion, upcoming)},
			{Role: "user", Content: message},
		},
		MaxTokens: 150,
	})
	if err != nil {
		return fallbackResponse(emotion)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseUrl+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		log.Errorf("Failed to create chat completion request: %v", err)
		return fallbackResponse(emotion)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", "https://unimind.app")
	req.Header.Set("X-Title", "UniMind")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute chat completion request: %v", err)
		return fallbackResponse(emotion)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnf("Chat completion returned status %d", resp.StatusCode)
		return fmt.Sprintf("I'm here for you. It sounds like you're experiencing %s.", emotionOrDefault(emotion, "neutral"))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil || len(completion.Choices) == 0 {
		log.Errorf("Failed to decode chat completion response: %v", err)
		return fallbackResponse(emotion)
	}
	return completion.Choices[0].Message.Content
}

func systemPrompt(emotion Emotion, upcoming []event.Event) string {
	var calendarContext string
	if len(upcoming) > 0 {
		var lines []string
		for i, e := range upcoming {
			if i == 3 {
				break
			}
			lines = append(lines, fmt.Sprintf("- %s on %s", e.Title, e.StartTime.Format("2006-01-02")))
		}
		calendarContext = "\n\nUpcoming events:\n" + strings.Join(lines, "\n")
	}

	return fmt.Sprintf(`You are UniMind, a compassionate AI mental wellness companion for college students.

Current emotional state: The student seems to be feeling %s (intensity: %.1f/1.0).%s

Guidelines:
- Be warm, empathetic, and supportive
- Keep responses concise (2-3 sentences)
- Acknowledge their emotions
- Offer gentle suggestions
- Reference calendar events if relevant
- Use a calm tone
`, emotionOrDefault(emotion, "neutral"), emotion.Intensity, calendarContext)
}

func fallbackResponse(emotion Emotion) string {
	return fmt.Sprintf("I sense you might be feeling %s. I'm here to listen and support you.", emotionOrDefault(emotion, "stressed"))
}

func emotionOrDefault(emotion Emotion, def string) string {
	if emotion.Emotion == "" {
		return def
	}
	return emotion.Emotion
}
