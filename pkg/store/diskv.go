package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/dayplan/pkg/ai"
	"tableflip.dev/dayplan/pkg/task"
)

const (
	keyAIConfig = "ai_config"
	keyDarkMode = "darkmode"
	keyBackup   = "tasks_backup"
	keyTasks    = "tasks"
	dayPrefix   = "day-"
)

// Day is the per-date journal record.
type Day struct {
	Reflection string    `json:"reflection,omitempty"`
	Mood       task.Mood `json:"mood,omitempty"`
	Image      string    `json:"image,omitempty"`
}

// State is the local key/value store under the state directory. Values are
// JSON. Keys split on "-" into directories, so day-2024-05-21 lives at
// day/2024/05/21.
type State struct {
	d        *diskv.Diskv
	basePath string
}

// Open creates a State backed by diskv using the provided config.
func Open(cfg Config) (*State, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	// No value cache; other processes write the same directory.
	return &State{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
	}), basePath: basePath}, nil
}

// BasePath is the state directory.
func (s *State) BasePath() string {
	return s.basePath
}

// read decodes key into v. Missing and malformed values both report false.
func (s *State) read(key string, v interface{}) bool {
	if !s.d.Has(key) {
		return false
	}
	val, err := s.d.Read(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
		return false
	}
	if err := json.Unmarshal(val, v); err != nil {
		fmt.Fprintf(os.Stderr, "store: %s: ignoring malformed value: %s\n", key, err)
		return false
	}
	return true
}

func (s *State) write(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// AIConfig returns the saved assistant configuration, or the default.
func (s *State) AIConfig() ai.Config {
	cfg := ai.DefaultConfig()
	var saved ai.Config
	if s.read(keyAIConfig, &saved) {
		if _, err := ai.ParseProvider(string(saved.Provider)); err == nil {
			cfg = saved
		}
	}
	return cfg
}

// SaveAIConfig persists cfg.
func (s *State) SaveAIConfig(cfg ai.Config) error {
	return s.write(keyAIConfig, cfg)
}

// DarkMode reports the saved palette preference.
func (s *State) DarkMode() bool {
	var dark bool
	s.read(keyDarkMode, &dark)
	return dark
}

// SetDarkMode persists the palette preference.
func (s *State) SetDarkMode(dark bool) error {
	return s.write(keyDarkMode, dark)
}

func dayKey(date string) string {
	return dayPrefix + date
}

// Day returns the journal record for date.
func (s *State) Day(date string) (Day, bool) {
	var d Day
	ok := s.read(dayKey(date), &d)
	return d, ok
}

// SaveDay persists the journal record for date.
func (s *State) SaveDay(date string, d Day) error {
	if _, err := task.ParseDate(date); err != nil {
		return fmt.Errorf("store: invalid date %q", date)
	}
	return s.write(dayKey(date), d)
}

// Days lists the dates that have a journal record, oldest first.
func (s *State) Days(ctx context.Context) []string {
	var dates []string
	for key := range s.d.KeysPrefix(dayPrefix, ctx.Done()) {
		date := strings.TrimPrefix(key, dayPrefix)
		if _, err := task.ParseDate(date); err == nil {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return dates
}

// SaveBackup stores the last fetched task list.
func (s *State) SaveBackup(tasks []task.Task) error {
	return s.write(keyBackup, tasks)
}

// LoadBackup returns the last fetched task list.
func (s *State) LoadBackup() ([]task.Task, bool) {
	var tasks []task.Task
	if !s.read(keyBackup, &tasks) {
		return nil, false
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, true
}

// LoadTasks returns the list owned by the local backend.
func (s *State) LoadTasks() ([]task.Task, error) {
	if !s.d.Has(keyTasks) {
		return []task.Task{}, nil
	}
	val, err := s.d.Read(keyTasks)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", keyTasks, err)
	}
	var tasks []task.Task
	if err := json.Unmarshal(val, &tasks); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", keyTasks, err)
	}
	return tasks, nil
}

// SaveTasks rewrites the list owned by the local backend.
func (s *State) SaveTasks(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	return s.write(keyTasks, tasks)
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
