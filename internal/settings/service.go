package settings

import (
	"context"

	"github.com/Vovarama1992/go-utils/logger"
)

type service struct {
	repo       Repo
	defaultVal string
	log        *logger.ZapLogger
}

func NewService(repo Repo, defaultMetaPrompt string, log *logger.ZapLogger) Service {
	return &service{repo: repo, defaultVal: defaultMetaPrompt, log: log}
}

// Get never surfaces a storage error: on failure it logs and hands back the
// default value so that image generation keeps working without the stored
// meta prompt. This masking applies to reads only.
func (s *service) Get(ctx context.Context) Settings {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		s.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "settings read failed, using default",
			Service: "voicecanvas",
			Error:   err,
		})
		return Settings{MetaPrompt: s.defaultVal}
	}
	return stored
}

func (s *service) Set(ctx context.Context, metaPrompt string) error {
	return s.repo.Set(ctx, metaPrompt)
}
