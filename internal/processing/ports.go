package processing

import (
	"context"

	"github.com/voicecanvas/voicecanvas/internal/latest"
	"github.com/voicecanvas/voicecanvas/internal/transcribe"
)

type Service interface {
	// Process runs one recording through the full pipeline and returns the
	// stored result.
	Process(ctx context.Context, audio transcribe.AudioPayload) (latest.Result, error)
}
