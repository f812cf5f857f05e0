package settings

import (
	"context"
	"sync"
)

// memRepo is the in-memory stand-in used when no database is configured
// (test mode). Same lazy-default semantics as the postgres repo, but the
// value does not survive a restart.
type memRepo struct {
	mu         sync.Mutex
	val        *Settings
	defaultVal string
}

func NewMemRepo(defaultMetaPrompt string) Repo {
	return &memRepo{defaultVal: defaultMetaPrompt}
}

func (r *memRepo) Get(_ context.Context) (Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.val == nil {
		r.val = &Settings{MetaPrompt: r.defaultVal}
	}
	return *r.val, nil
}

func (r *memRepo) Set(_ context.Context, metaPrompt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.val = &Settings{MetaPrompt: metaPrompt}
	return nil
}
