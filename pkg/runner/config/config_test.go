package config

import (
	"context"
	"testing"

	"tableflip.dev/dayplan/pkg/ai"
)

type memorySettings struct {
	cfg   ai.Config
	dark  bool
	saves int
}

func (m *memorySettings) AIConfig() ai.Config { return m.cfg }

func (m *memorySettings) SaveAIConfig(cfg ai.Config) error {
	m.cfg = cfg
	m.saves++
	return nil
}

func (m *memorySettings) DarkMode() bool { return m.dark }

func (m *memorySettings) SetDarkMode(dark bool) error {
	m.dark = dark
	return nil
}

func TestProviderSwitchResetsDefaults(t *testing.T) {
	s := &memorySettings{cfg: ai.Config{Provider: ai.Gemini, BaseURL: "https://custom.example", ModelID: "x", APIKey: "k"}}
	c := Config{Settings: s, Provider: "deepseek"}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("config: %v", err)
	}
	base, model := ai.Defaults(ai.DeepSeek)
	want := ai.Config{Provider: ai.DeepSeek, BaseURL: base, ModelID: model, APIKey: "k"}
	if s.cfg != want {
		t.Fatalf("got %+v, want %+v", s.cfg, want)
	}
}

func TestOverridesApplyAfterSwitch(t *testing.T) {
	s := &memorySettings{cfg: ai.DefaultConfig()}
	dark := true
	c := Config{Settings: s, Provider: "custom", BaseURL: "http://localhost:11434/v1", Model: "llama3", Key: "sk", Dark: &dark}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("config: %v", err)
	}
	if s.cfg.Provider != ai.Custom || s.cfg.BaseURL != "http://localhost:11434/v1" || s.cfg.ModelID != "llama3" || s.cfg.APIKey != "sk" {
		t.Fatalf("unexpected config %+v", s.cfg)
	}
	if !s.dark {
		t.Fatalf("expected dark mode")
	}
}

func TestShowDoesNotSave(t *testing.T) {
	s := &memorySettings{cfg: ai.DefaultConfig()}
	c := Config{Settings: s, Provider: "gemini"}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("config: %v", err)
	}
	if s.saves != 0 {
		t.Fatalf("expected no save when nothing changed")
	}
	bad := Config{Settings: s, Provider: "claude"}
	if err := bad.Do(context.Background()); err == nil {
		t.Fatalf("expected unknown provider error")
	}
}
