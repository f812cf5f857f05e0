package transcribe

import (
	"context"
	"errors"
)

// AudioPayload is one uploaded recording. It lives for the duration of a
// single processing request and is never persisted.
type AudioPayload struct {
	Data        []byte
	ContentType string
}

// NoTranscription is returned when the upstream succeeds but hears no speech.
// Absence of speech is not an error.
const NoTranscription = "No transcription available"

// ErrEmptyAudio is raised for a zero-length payload, before any network call.
var ErrEmptyAudio = errors.New("empty audio payload")

// ServiceError means the speech-to-text service reported a failure.
type ServiceError struct {
	Detail string
}

func (e *ServiceError) Error() string {
	return "transcription service: " + e.Detail
}

type Client interface {
	Transcribe(ctx context.Context, audio AudioPayload) (string, error)
}
