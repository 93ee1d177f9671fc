package store

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/dayplan/pkg/timeline"
)

// Backend names where tasks live.
type Backend string

const (
	// Remote is the /api/tasks REST backend.
	Remote Backend = "remote"
	// LocalBackend keeps tasks in the state directory.
	LocalBackend Backend = "local"
)

// Config is the resolved runtime configuration.
type Config interface {
	BasePath() string
	Backend() Backend
	BaseURL() string
	Timeout() time.Duration
	Axis() timeline.Axis
	// APIKey is the model key found in the environment.
	APIKey() string
}

// LoadConfig reads .dayplan.yaml from $DAYPLAN_CONFIG_PATH or the working
// directory, then DAYPLAN_* environment overrides. A .env file in the working
// directory is loaded first.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("store: load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("state.path", "~/.dayplan")
	v.SetDefault("backend", string(Remote))
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("timeline.start_hour", timeline.DefaultStartHour)
	v.SetDefault("timeline.end_hour", timeline.DefaultEndHour)
	v.SetDefault("timeline.hour_height", timeline.DefaultHourHeight)
	v.SetDefault("timeline.min_height", timeline.DefaultMinHeight)
	v.SetConfigName(".dayplan") // .yaml is implicit
	v.SetEnvPrefix("DAYPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("api_key", "API_KEY"); err != nil {
		return nil, err
	}

	if override := os.Getenv("DAYPLAN_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: error reading config file: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	path, err := homedir.Expand(v.GetString("state.path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand state.path: %w", err)
	}
	backend := Backend(strings.ToLower(v.GetString("backend")))
	switch backend {
	case Remote, LocalBackend:
	default:
		return nil, fmt.Errorf("store: unknown backend %q", backend)
	}
	axis := timeline.Axis{
		StartHour:  v.GetInt("timeline.start_hour"),
		EndHour:    v.GetInt("timeline.end_hour"),
		HourHeight: v.GetFloat64("timeline.hour_height"),
		MinHeight:  v.GetFloat64("timeline.min_height"),
	}
	if axis.StartHour < 0 || axis.EndHour > 24 || axis.StartHour >= axis.EndHour || axis.HourHeight <= 0 {
		return nil, fmt.Errorf("store: invalid timeline %d-%d at %v", axis.StartHour, axis.EndHour, axis.HourHeight)
	}
	return &fileConfig{
		Path:     path,
		Kind:     backend,
		URL:      v.GetString("api.base_url"),
		Deadline: v.GetDuration("api.timeout"),
		Timeline: axis,
		Key:      v.GetString("api_key"),
	}, nil
}

type fileConfig struct {
	Path     string        `json:"path"`
	Kind     Backend       `json:"backend"`
	URL      string        `json:"baseURL"`
	Deadline time.Duration `json:"timeout"`
	Timeline timeline.Axis `json:"timeline"`
	Key      string        `json:"-"`
}

func (f *fileConfig) BasePath() string { return f.Path }
func (f *fileConfig) Backend() Backend { return f.Kind }
func (f *fileConfig) BaseURL() string { return f.URL }
func (f *fileConfig) Timeout() time.Duration { return f.Deadline }
func (f *fileConfig) Axis() timeline.Axis { return f.Timeline }
func (f *fileConfig) APIKey() string { return f.Key }

// Defaults returns a local-backend configuration rooted at path, with the
// default axis and no environment lookups.
func Defaults(path string) Config {
	return &fileConfig{
		Path:     path,
		Kind:     LocalBackend,
		Deadline: 10 * time.Second,
		Timeline: timeline.DefaultAxis(),
	}
}
