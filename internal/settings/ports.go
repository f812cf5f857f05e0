package settings

import "context"

type Settings struct {
	MetaPrompt string `json:"metaPrompt"`
}

type Repo interface {
	Get(ctx context.Context) (Settings, error)
	Set(ctx context.Context, metaPrompt string) error
}

type Service interface {
	Get(ctx context.Context) Settings
	Set(ctx context.Context, metaPrompt string) error
}
