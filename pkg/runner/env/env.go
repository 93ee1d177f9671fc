// Package env assembles the planner from configuration: the state directory,
// the task gateway and the model assistant.
package env

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/dayplan/pkg/ai"
	"tableflip.dev/dayplan/pkg/app"
	"tableflip.dev/dayplan/pkg/cache"
	"tableflip.dev/dayplan/pkg/gateway"
	"tableflip.dev/dayplan/pkg/store"
)

// Env is everything a runner needs.
type Env struct {
	Config  store.Config
	State   *store.State
	Planner *app.Planner
}

// Load reads the configuration and builds an Env from it.
func Load(ctx context.Context) (*Env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	return Build(ctx, cfg)
}

// Build opens the state directory and wires the planner for cfg.
func Build(ctx context.Context, cfg store.Config) (*Env, error) {
	state, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	e := &Env{Config: cfg, State: state}

	p := &app.Planner{
		Cache:  cache.New(),
		Days:   state,
		Notify: notifyStderr,
	}
	switch cfg.Backend() {
	case store.LocalBackend:
		p.Gateway = gateway.NewLocal(state)
	default:
		client := gateway.NewClient(cfg.BaseURL(), gateway.WithTimeout(cfg.Timeout()))
		p.Gateway = gateway.WithBackup(client, state)
		p.Backup = state
	}
	e.Planner = p
	e.Planner.Assistant = e.Assistant(ctx, state.AIConfig())
	return e, nil
}

// Assistant builds an assistant for cfg. It returns nil, not a typed nil,
// when no key is configured so the planner falls back to defaults.
func (e *Env) Assistant(ctx context.Context, cfg ai.Config) app.Assistant {
	a, err := ai.New(ctx, cfg, e.Config.APIKey())
	if err != nil {
		if !errors.Is(err, ai.ErrNoKey) {
			log.Printf("env: assistant disabled: %v", err)
		}
		return nil
	}
	return a
}

// Reload rebuilds the assistant from the saved configuration.
func (e *Env) Reload(ctx context.Context) app.Assistant {
	a := e.Assistant(ctx, e.State.AIConfig())
	e.Planner.SetAssistant(a)
	return a
}

func notifyStderr(n app.Notice) {
	_, _ = color.New(color.FgRed).Fprintln(os.Stderr, string(n))
}
