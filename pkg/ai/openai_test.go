package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIChatCompletion(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"{\"title\":\"会议\"}"}}]}`)
	}))
	defer srv.Close()

	o := newOpenAI(context.Background(), srv.URL+"/v1/", "sk-test")
	r, err := o.generate(context.Background(), request{model: "deepseek-chat", system: parseSystem, prompt: "p", json: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if r.text != `{"title":"会议"}` {
		t.Fatalf("unexpected text %q", r.text)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotPath != "/v1/chat/completions" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotBody.Model != "deepseek-chat" || len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Fatalf("unexpected body %+v", gotBody)
	}
	if gotBody.ResponseFormat == nil || gotBody.ResponseFormat.Type != "json_object" {
		t.Fatalf("expected json response format, got %+v", gotBody.ResponseFormat)
	}
}

func TestOpenAIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	o := newOpenAI(context.Background(), srv.URL, "bad")
	if _, err := o.generate(context.Background(), request{prompt: "p"}); err == nil {
		t.Fatalf("expected error on 401")
	}
	if _, err := o.generate(context.Background(), request{image: true}); err == nil {
		t.Fatalf("expected error for image requests")
	}
}

func TestSuggestThroughOpenAI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"慢慢来"}}]}`)
	}))
	defer srv.Close()

	a, err := New(context.Background(), Config{Provider: OpenAI, BaseURL: srv.URL, APIKey: "sk", ModelID: "gpt-4o"}, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := a.Suggest(context.Background(), nil); got != "慢慢来" {
		t.Fatalf("unexpected suggestion %q", got)
	}
}
