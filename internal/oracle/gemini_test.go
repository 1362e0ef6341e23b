package oracle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nutrilog/internal/macro"
)

func TestComplete(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Fatalf("api key missing from query")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatal(err)
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"kcal\": 100}"}]}}]}`))
	}))
	defer srv.Close()

	g := NewGeminiClient("test-key", srv.URL)
	out, err := g.Complete(context.Background(), "estimate this", macro.ShapeJSON)
	if err != nil {
		t.Fatal(err)
	}
	if out != `{"kcal": 100}` {
		t.Fatalf("out = %q", out)
	}
	if _, ok := gotBody["generationConfig"]; !ok {
		t.Fatalf("JSON shape must request a JSON mime type: %v", gotBody)
	}
}

func TestCompleteBareNumberOmitsMimeType(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"412"}]}}]}`))
	}))
	defer srv.Close()

	g := NewGeminiClient("k", srv.URL)
	out, err := g.Complete(context.Background(), "how many", macro.ShapeBareNumber)
	if err != nil || out != "412" {
		t.Fatalf("out = %q, err = %v", out, err)
	}
	if _, ok := gotBody["generationConfig"]; ok {
		t.Fatalf("bare-number shape must not force a JSON mime type")
	}
}

func TestCompleteNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	g := NewGeminiClient("k", srv.URL)
	if _, err := g.Complete(context.Background(), "p", macro.ShapeJSON); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}

func TestCompleteUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGeminiClient("k", srv.URL)
	if _, err := g.Complete(context.Background(), "p", macro.ShapeJSON); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
