package processing

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/voicecanvas/voicecanvas/internal/latest"
	"github.com/voicecanvas/voicecanvas/internal/settings"
	"github.com/voicecanvas/voicecanvas/internal/synthesis"
	"github.com/voicecanvas/voicecanvas/internal/transcribe"
)

type service struct {
	stt      transcribe.Client
	synth    synthesis.Client
	settings settings.Service
	cache    *latest.Store
	log      *logger.ZapLogger
}

func NewService(
	stt transcribe.Client,
	synth synthesis.Client,
	settingsSvc settings.Service,
	cache *latest.Store,
	log *logger.ZapLogger,
) Service {
	return &service{
		stt:      stt,
		synth:    synth,
		settings: settingsSvc,
		cache:    cache,
		log:      log,
	}
}

// Process is strictly sequential: transcribe, read settings, synthesize,
// overwrite the cache. Any failure aborts and leaves the cache untouched.
// Concurrent runs race on the final write; the last one to finish wins.
func (s *service) Process(ctx context.Context, audio transcribe.AudioPayload) (latest.Result, error) {
	if len(audio.Data) == 0 {
		return latest.Result{}, transcribe.ErrEmptyAudio
	}

	transcription, err := s.stt.Transcribe(ctx, audio)
	if err != nil {
		return latest.Result{}, fmt.Errorf("transcribe: %w", err)
	}

	cfg := s.settings.Get(ctx)

	prompt := transcription
	if cfg.MetaPrompt != "" {
		prompt = cfg.MetaPrompt + ", " + transcription
	}

	imageB64, err := s.synth.Synthesize(ctx, prompt)
	if err != nil {
		return latest.Result{}, fmt.Errorf("synthesize: %w", err)
	}

	result := latest.Result{
		Transcription: transcription,
		ImageURL:      "data:image/jpeg;base64," + imageB64,
	}
	s.cache.Write(result)

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "processed recording: " + transcription,
		Service: "voicecanvas",
	})

	return result, nil
}
