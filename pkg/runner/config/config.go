// Package config shows and changes the saved assistant settings.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/dayplan/pkg/ai"
	"tableflip.dev/dayplan/pkg/store"
)

// Title heads the settings table.
const Title = "AI 实验室"

// Settings is the part of the state directory this runner edits.
type Settings interface {
	AIConfig() ai.Config
	SaveAIConfig(cfg ai.Config) error
	DarkMode() bool
	SetDarkMode(dark bool) error
}

var _ Settings = (*store.State)(nil)

// Config applies any set field, then prints the result. A provider change
// resets the base URL and model to that provider's defaults before the other
// fields apply.
type Config struct {
	Settings Settings
	Provider string
	BaseURL  string
	Model    string
	Key      string
	Dark     *bool
	JSON     bool
}

func (n *Config) Do(ctx context.Context) error {
	if n.Settings == nil {
		return errors.New("config: no state directory")
	}
	cfg := n.Settings.AIConfig()
	changed := false

	if n.Provider != "" {
		p, err := ai.ParseProvider(n.Provider)
		if err != nil {
			return err
		}
		if p != cfg.Provider {
			key := cfg.APIKey
			cfg = ai.ForProvider(p)
			cfg.APIKey = key
			changed = true
		}
	}
	for _, f := range []struct {
		val string
		dst *string
	}{{n.BaseURL, &cfg.BaseURL}, {n.Model, &cfg.ModelID}, {n.Key, &cfg.APIKey}} {
		if f.val != "" && f.val != *f.dst {
			*f.dst = f.val
			changed = true
		}
	}
	if changed {
		if err := n.Settings.SaveAIConfig(cfg); err != nil {
			return err
		}
	}
	if n.Dark != nil {
		if err := n.Settings.SetDarkMode(*n.Dark); err != nil {
			return err
		}
	}
	return n.print(cfg.Redacted(), n.Settings.DarkMode())
}

func (n *Config) print(cfg ai.Config, dark bool) error {
	if n.JSON {
		b, err := json.Marshal(struct {
			ai.Config
			DarkMode bool `json:"darkMode"`
		}{cfg, dark})
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}

	bold := color.New(color.Bold)
	_, _ = bold.Fprintln(color.Output, Title)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("provider", string(cfg.Provider))
	tbl.AddRow("base url", cfg.BaseURL)
	tbl.AddRow("model", cfg.ModelID)
	key := cfg.APIKey
	if key == "" {
		key = color.New(color.Faint).Sprint("(environment)")
	}
	tbl.AddRow("api key", key)
	tbl.AddRow("dark mode", dark)
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(color.Output, tbl)
	return nil
}
