package latest

import "sync"

// Result is the most recently completed transcription/image pair. ImageURL is
// a self-contained data URI, so the viewer needs no separate fetch.
type Result struct {
	Transcription string `json:"transcription"`
	ImageURL      string `json:"imageUrl"`
}

// Store holds exactly one Result. Every successful processing run overwrites
// the slot; there is no history and no compare-and-swap, so under concurrent
// runs the last one to finish wins.
type Store struct {
	mu  sync.RWMutex
	res *Result
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Write(r Result) {
	s.mu.Lock()
	s.res = &r
	s.mu.Unlock()
}

// Read returns the stored result and whether any run has completed yet.
func (s *Store) Read() (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.res == nil {
		return Result{}, false
	}
	return *s.res, true
}
