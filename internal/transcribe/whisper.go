package transcribe

import (
	"bytes"
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// WhisperClient is the alternative speech-to-text backend, selected with
// STT_BACKEND=whisper.
type WhisperClient struct {
	client *openai.Client
}

func NewWhisperClient(apiKey string) *WhisperClient {
	return &WhisperClient{client: openai.NewClient(apiKey)}
}

func (c *WhisperClient) Transcribe(ctx context.Context, audio AudioPayload) (string, error) {
	if len(audio.Data) == 0 {
		return "", ErrEmptyAudio
	}

	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   bytes.NewReader(audio.Data),
		FilePath: "voice.webm",
	})
	if err != nil {
		return "", &ServiceError{Detail: err.Error()}
	}
	if resp.Text == "" {
		return NoTranscription, nil
	}
	return resp.Text, nil
}
