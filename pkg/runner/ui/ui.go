package ui

import (
	"context"
	"errors"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/dayplan/pkg/runner/env"
	"tableflip.dev/dayplan/pkg/store"
	tuiapp "tableflip.dev/dayplan/pkg/tui/app"
)

// DebugEnv names a file that receives log output while the UI runs.
const DebugEnv = "DAYPLAN_DEBUG"

type UI struct {
	Env *env.Env
}

func (d *UI) Do(ctx context.Context) error {
	if d.Env == nil {
		return errors.New("ui: no environment")
	}
	// Anything logged while the alternate screen is up would corrupt it.
	if path := os.Getenv(DebugEnv); path != "" {
		f, err := tea.LogToFile(path, "dayplan")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
		defer log.SetOutput(os.Stderr)
	}

	e := d.Env
	// Failures surface in the footer rather than on stderr.
	e.Planner.Notify = nil
	return tuiapp.Run(ctx, tuiapp.Options{
		Planner:    e.Planner,
		Settings:   e.State,
		Axis:       e.Config.Axis(),
		Rebuild:    e.Assistant,
		LocalTasks: e.Config.Backend() == store.LocalBackend,
	})
}
