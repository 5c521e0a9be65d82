package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/unimind/unimind/internal/config"
)

// EmotionAnalyzer classifies the emotional tone of a message.
type EmotionAnalyzer interface {
	Analyze(ctx context.Context, text string) Emotion
}

type EmotionClientImpl struct {
	apiKey     string
	baseUrl    string
	httpClient *http.Client
}

func NewEmotionClient(cfg config.Chat) *EmotionClientImpl {
	return &EmotionClientImpl{
		apiKey:  cfg.EmotionApiKey,
		baseUrl: cfg.EmotionUrl,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Analyze never fails the caller: without an API key or on any upstream
// problem it falls back to a neutral reading so the chat keeps working.
func (c *EmotionClientImpl) Analyze(ctx context.Context, text string) Emotion {
	if c.apiKey == "" {
		return neutralEmotion("emotion analysis disabled, no API key configured")
	}

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return neutralEmotion(fmt.Sprintf("error: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseUrl+"/analyze", bytes.NewReader(body))
	if err != nil {
		log.Errorf("Failed to create emotion analysis request: %v", err)
		return neutralEmotion(fmt.Sprintf("error: %v", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute emotion analysis request: %v", err)
		return neutralEmotion(fmt.Sprintf("error: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnf("Emotion analysis returned status %d", resp.StatusCode)
		return neutralEmotion("")
	}

	var emotion Emotion
	if err := json.NewDecoder(resp.Body).Decode(&emotion); err != nil {
		log.Errorf("Failed to decode emotion analysis response: %v", err)
		return neutralEmotion(fmt.Sprintf("error: %v", err))
	}
	if emotion.Emotion == "" {
		emotion.Emotion = "neutral"
	}
	return emotion
}
