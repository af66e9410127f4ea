package collab

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTextGeneratorReturnsDraft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/review-draft" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"a promising quarter"}`))
	}))
	defer srv.Close()

	g := NewHTTPTextGenerator(srv.URL)
	text, err := g.GenerateReviewDraft(context.Background(), "uuid-002", "cycle-2025-q1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if text != "a promising quarter" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestTextGeneratorUnavailable(t *testing.T) {
	g := NewHTTPTextGenerator("")
	if _, err := g.GenerateReviewDraft(context.Background(), "u", "c"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("unconfigured: expected ErrUnavailable, got %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	g = NewHTTPTextGenerator(srv.URL)
	if _, err := g.GenerateReviewDraft(context.Background(), "u", "c"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("5xx: expected ErrUnavailable, got %v", err)
	}
}

func TestRecognizerReturnsTags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tags":["AS-2025-001","AS-2025-002"]}`))
	}))
	defer srv.Close()

	rec := NewHTTPRecognizer(srv.URL)
	tags, err := rec.RecognizeTags(context.Background(), []byte{0xff, 0xd8})
	if err != nil {
		t.Fatalf("recognize: %v", err)
	}
	if len(tags) != 2 || tags[0] != "AS-2025-001" {
		t.Fatalf("unexpected tags %v", tags)
	}
}

func TestRecognizerUnavailable(t *testing.T) {
	rec := NewHTTPRecognizer("")
	if _, err := rec.RecognizeTags(context.Background(), nil); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
