package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// openAI speaks the /chat/completions dialect shared by OpenAI, DeepSeek and
// most self-hosted gateways.
type openAI struct {
	endpoint   string
	httpClient *http.Client
}

func newOpenAI(ctx context.Context, baseURL, key string) *openAI {
	h := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: key, TokenType: "Bearer"}))
	h.Timeout = 60 * time.Second
	return &openAI{
		endpoint:   strings.TrimRight(baseURL, "/") + "/chat/completions",
		httpClient: h,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (o *openAI) generate(ctx context.Context, req request) (reply, error) {
	if req.image {
		return reply{}, fmt.Errorf("openai: image generation not supported")
	}
	body := chatRequest{Model: req.model}
	if req.system != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "system", Content: req.system})
	}
	body.Messages = append(body.Messages, chatMessage{Role: "user", Content: req.prompt})
	if req.json {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return reply{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(raw))
	if err != nil {
		return reply{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return reply{}, fmt.Errorf("openai: %w", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return reply{}, fmt.Errorf("openai: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return reply{}, fmt.Errorf("openai: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var out chatResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return reply{}, fmt.Errorf("openai: decode: %w", err)
	}
	if len(out.Choices) == 0 {
		return reply{}, fmt.Errorf("openai: no choices")
	}
	return reply{text: out.Choices[0].Message.Content}, nil
}
