package chat

import (
	"errors"
	"time"
)

var ErrEmptyMessage = errors.New("message is required")

// Emotion is the analyzer's reading of a single message.
type Emotion struct {
	Emotion    string  `json:"emotion"`
	Intensity  float64 `json:"intensity"`
	Confidence float64 `json:"confidence"`
	Note       string  `json:"note,omitempty"`
}

// Message is one exchange: what the student wrote and what the
// companion answered.
type Message struct {
	UID         string
	UserMessage string
	AiResponse  string
	Emotion     Emotion
	CreatedAt   time.Time
}

func neutralEmotion(note string) Emotion {
	return Emotion{
		Emotion:    "neutral",
		Intensity:  0.5,
		Confidence: 0.7,
		Note:       note,
	}
}
