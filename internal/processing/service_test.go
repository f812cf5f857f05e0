package processing

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	"go.uber.org/zap"

	"github.com/voicecanvas/voicecanvas/internal/latest"
	"github.com/voicecanvas/voicecanvas/internal/settings"
	"github.com/voicecanvas/voicecanvas/internal/transcribe"
)

func nopLogger() *logger.ZapLogger {
	return logger.NewZapLogger(zap.NewNop().Sugar())
}

type fakeTranscriber struct {
	calls int32
	err   error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audio transcribe.AudioPayload) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return "", f.err
	}
	return string(audio.Data), nil
}

type fakeSynthesizer struct {
	err error
	// gates block Synthesize per prompt until the matching channel is closed
	gates map[string]chan struct{}
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, prompt string) (string, error) {
	if f.gates != nil {
		for key, gate := range f.gates {
			if strings.Contains(prompt, key) {
				<-gate
			}
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return "b64-for-" + prompt, nil
}

type fakeSettings struct {
	metaPrompt string
}

func (f *fakeSettings) Get(context.Context) settings.Settings {
	return settings.Settings{MetaPrompt: f.metaPrompt}
}

func (f *fakeSettings) Set(_ context.Context, v string) error {
	f.metaPrompt = v
	return nil
}

func TestProcessSuccessUpdatesCache(t *testing.T) {
	cache := latest.NewStore()
	svc := NewService(&fakeTranscriber{}, &fakeSynthesizer{}, &fakeSettings{metaPrompt: "surreal"}, cache, nopLogger())

	got, err := svc.Process(context.Background(), transcribe.AudioPayload{Data: []byte("a cat"), ContentType: "audio/webm"})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if got.Transcription != "a cat" {
		t.Errorf("transcription = %q, want %q", got.Transcription, "a cat")
	}
	if want := "data:image/jpeg;base64,b64-for-surreal, a cat"; got.ImageURL != want {
		t.Errorf("imageUrl = %q, want %q", got.ImageURL, want)
	}

	cached, ok := cache.Read()
	if !ok {
		t.Fatal("cache not updated after success")
	}
	if cached != got {
		t.Errorf("cache = %+v, want %+v", cached, got)
	}
}

func TestProcessEmptyAudioSkipsTranscriber(t *testing.T) {
	stt := &fakeTranscriber{}
	cache := latest.NewStore()
	svc := NewService(stt, &fakeSynthesizer{}, &fakeSettings{}, cache, nopLogger())

	_, err := svc.Process(context.Background(), transcribe.AudioPayload{})
	if !errors.Is(err, transcribe.ErrEmptyAudio) {
		t.Fatalf("err = %v, want ErrEmptyAudio", err)
	}
	if n := atomic.LoadInt32(&stt.calls); n != 0 {
		t.Errorf("transcriber called %d times, want 0", n)
	}
	if _, ok := cache.Read(); ok {
		t.Error("cache was written on failure")
	}
}

func TestProcessFailureLeavesCacheUnchanged(t *testing.T) {
	cache := latest.NewStore()
	prior := latest.Result{Transcription: "old", ImageURL: "data:image/jpeg;base64,old"}
	cache.Write(prior)

	svc := NewService(
		&fakeTranscriber{},
		&fakeSynthesizer{err: errors.New("quota exceeded")},
		&fakeSettings{},
		cache,
		nopLogger(),
	)

	_, err := svc.Process(context.Background(), transcribe.AudioPayload{Data: []byte("a dog")})
	if err == nil {
		t.Fatal("expected error from synthesizer")
	}

	cached, ok := cache.Read()
	if !ok || cached != prior {
		t.Errorf("cache = %+v, want prior %+v", cached, prior)
	}
}

func TestProcessEmptyMetaPromptUsesTranscriptionAlone(t *testing.T) {
	cache := latest.NewStore()
	svc := NewService(&fakeTranscriber{}, &fakeSynthesizer{}, &fakeSettings{}, cache, nopLogger())

	got, err := svc.Process(context.Background(), transcribe.AudioPayload{Data: []byte("a cat")})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if want := "data:image/jpeg;base64,b64-for-a cat"; got.ImageURL != want {
		t.Errorf("imageUrl = %q, want %q", got.ImageURL, want)
	}
}

// Two concurrent runs race on the cache write: the one that finishes last
// wins, regardless of which started first.
func TestProcessConcurrentLastToFinishWins(t *testing.T) {
	catGate := make(chan struct{})
	dogGate := make(chan struct{})
	synth := &fakeSynthesizer{gates: map[string]chan struct{}{
		"cat": catGate,
		"dog": dogGate,
	}}

	cache := latest.NewStore()
	svc := NewService(&fakeTranscriber{}, synth, &fakeSettings{}, cache, nopLogger())

	p1done := make(chan latest.Result, 1)
	p2done := make(chan latest.Result, 1)

	go func() {
		res, err := svc.Process(context.Background(), transcribe.AudioPayload{Data: []byte("cat")})
		if err != nil {
			t.Errorf("P1: %v", err)
		}
		p1done <- res
	}()
	go func() {
		res, err := svc.Process(context.Background(), transcribe.AudioPayload{Data: []byte("dog")})
		if err != nil {
			t.Errorf("P2: %v", err)
		}
		p2done <- res
	}()

	// fast request finishes first, slow one after
	close(dogGate)
	<-p2done
	close(catGate)
	p1res := <-p1done

	cached, ok := cache.Read()
	if !ok {
		t.Fatal("cache empty after both runs")
	}
	if cached != p1res {
		t.Errorf("cache = %+v, want last-to-finish result %+v", cached, p1res)
	}
}
