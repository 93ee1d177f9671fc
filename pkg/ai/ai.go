// Package ai wraps the language model collaborators: the natural-language
// task parser, the one-line suggestion and the journal illustration.
//
// None of the calls fail from the caller's point of view; each has a
// fallback value.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"tableflip.dev/dayplan/pkg/task"
)

// ErrNoKey is returned by New when there is nothing to authenticate with.
var ErrNoKey = errors.New("ai: no api key configured")

type request struct {
	model  string
	system string
	prompt string
	// json asks for a JSON object response.
	json bool
	// image asks for inline image parts.
	image bool
}

type image struct {
	mimeType string
	data     string
}

type reply struct {
	text   string
	images []image
}

// generator is one model API.
type generator interface {
	generate(ctx context.Context, req request) (reply, error)
}

// Assistant answers planner questions with a configured model.
type Assistant struct {
	cfg    Config
	text   generator
	images generator
}

// New builds an assistant for cfg. envKey is the key found in the
// environment, used for Gemini and for journal images.
func New(ctx context.Context, cfg Config, envKey string) (*Assistant, error) {
	if !HasKey(cfg, envKey) {
		return nil, ErrNoKey
	}
	if cfg.ModelID == "" {
		_, cfg.ModelID = Defaults(cfg.Provider)
	}
	a := &Assistant{cfg: cfg}
	switch cfg.Provider {
	case Gemini:
		key := cfg.APIKey
		if key == "" {
			key = envKey
		}
		g, err := newGemini(ctx, key, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		a.text, a.images = g, g
	case OpenAI, DeepSeek, Custom:
		key := cfg.APIKey
		if key == "" {
			key = envKey
		}
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("ai: provider %s needs a base url", cfg.Provider)
		}
		a.text = newOpenAI(ctx, cfg.BaseURL, key)
		if envKey != "" && envKey != "undefined" {
			g, err := newGemini(ctx, envKey, "")
			if err != nil {
				log.Printf("ai: journal images disabled: %v", err)
			} else {
				a.images = g
			}
		}
	default:
		return nil, fmt.Errorf("ai: unknown provider %q", cfg.Provider)
	}
	return a, nil
}

// Config returns the configuration the assistant was built with.
func (a *Assistant) Config() Config {
	return a.cfg
}

// Parsed holds the fields the model extracted. Only Title is always set.
type Parsed struct {
	Title     string
	Date      string
	StartTime string
	EndTime   string
	Category  *task.Category
	Priority  *task.Priority
}

type parsedWire struct {
	Title     string          `json:"title"`
	Date      string          `json:"date"`
	StartTime string          `json:"startTime"`
	EndTime   string          `json:"endTime"`
	Category  string          `json:"category"`
	Priority  json.RawMessage `json:"priority"`
}

// ParseTask extracts task fields from free text relative to refDate. Any
// failure degrades to the raw input as the title.
func (a *Assistant) ParseTask(ctx context.Context, input, refDate string) Parsed {
	fallback := Parsed{Title: input}
	if a == nil || a.text == nil {
		return fallback
	}
	r, err := a.text.generate(ctx, request{
		model:  a.cfg.ModelID,
		system: parseSystem,
		prompt: parsePrompt(input, refDate),
		json:   true,
	})
	if err != nil {
		log.Printf("ai: parse: %v", err)
		return fallback
	}
	p, err := decodeParsed(r.text)
	if err != nil {
		log.Printf("ai: parse: %v", err)
		return fallback
	}
	if p.Title == "" {
		p.Title = input
	}
	return p
}

func decodeParsed(text string) (Parsed, error) {
	text = stripFence(text)
	var w parsedWire
	if err := json.Unmarshal([]byte(text), &w); err != nil {
		return Parsed{}, fmt.Errorf("decode %q: %w", text, err)
	}
	p := Parsed{Title: strings.TrimSpace(w.Title)}
	if _, err := task.ParseDate(w.Date); err == nil {
		p.Date = w.Date
	}
	if c, err := task.ParseClock(w.StartTime); err == nil {
		p.StartTime = c.String()
	}
	if c, err := task.ParseClock(w.EndTime); err == nil {
		p.EndTime = c.String()
	}
	if w.Category != "" {
		if c, err := task.ParseCategory(w.Category); err == nil {
			p.Category = &c
		}
	}
	if len(w.Priority) > 0 {
		var n float64
		if err := json.Unmarshal(w.Priority, &n); err == nil && n != 0 {
			pr := task.Priority(int(n)).Clamp()
			p.Priority = &pr
		}
	}
	return p, nil
}

// stripFence removes a ```json fence some models wrap around their output.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Suggest returns a short piece of advice about the given tasks.
func (a *Assistant) Suggest(ctx context.Context, tasks []task.Task) string {
	if a == nil || a.text == nil {
		return SuggestFallback
	}
	r, err := a.text.generate(ctx, request{
		model:  a.cfg.ModelID,
		system: suggestSystem,
		prompt: suggestPrompt(tasks),
	})
	if err != nil {
		log.Printf("ai: suggest: %v", err)
		return SuggestFallback
	}
	if text := strings.TrimSpace(r.text); text != "" {
		return text
	}
	return SuggestEmpty
}

// JournalImage renders an illustration of the day's completed tasks as a
// data URI, or "" when no image could be produced.
func (a *Assistant) JournalImage(ctx context.Context, tasks []task.Task, mood string) string {
	if a == nil || a.images == nil {
		return ""
	}
	r, err := a.images.generate(ctx, request{
		model:  DefaultImageModel,
		prompt: journalPrompt(tasks, mood),
		image:  true,
	})
	if err != nil {
		log.Printf("ai: journal image: %v", err)
		return ""
	}
	for _, img := range r.images {
		if img.data != "" {
			return "data:image/png;base64," + img.data
		}
	}
	return ""
}
