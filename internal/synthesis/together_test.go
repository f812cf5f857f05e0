package synthesis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(srv *httptest.Server) *TogetherClient {
	return &TogetherClient{
		apiKey:  "test-key",
		model:   "black-forest-labs/FLUX.1-schnell-Free",
		baseURL: srv.URL,
		client:  srv.Client(),
	}
}

func TestSynthesizeSuccess(t *testing.T) {
	var gotReq map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"b64_json": "aGVsbG8="}},
		})
	}))
	defer srv.Close()

	got, err := newTestClient(srv).Synthesize(context.Background(), "surreal, a cat")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if got != "aGVsbG8=" {
		t.Errorf("payload = %q", got)
	}

	if gotReq["prompt"] != "surreal, a cat" {
		t.Errorf("prompt = %v", gotReq["prompt"])
	}
	if gotReq["width"] != float64(1024) || gotReq["height"] != float64(768) {
		t.Errorf("dimensions = %vx%v, want 1024x768", gotReq["width"], gotReq["height"])
	}
	if gotReq["n"] != float64(1) || gotReq["response_format"] != "b64_json" {
		t.Errorf("n = %v, response_format = %v", gotReq["n"], gotReq["response_format"])
	}
}

func TestSynthesizeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Synthesize(context.Background(), "a cat")

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("err = %v, want *ServiceError", err)
	}
	if svcErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", svcErr.StatusCode)
	}
	if !strings.Contains(svcErr.Detail, "rate limited") {
		t.Errorf("detail = %q, want parsed upstream message", svcErr.Detail)
	}
}

func TestSynthesizeUnparsableErrorBodyKeptRaw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Synthesize(context.Background(), "a cat")

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("err = %v, want *ServiceError", err)
	}
	if svcErr.Detail != "upstream exploded" {
		t.Errorf("detail = %q, want raw body", svcErr.Detail)
	}
}

func TestSynthesizeMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Synthesize(context.Background(), "a cat")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}
