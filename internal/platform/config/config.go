package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const FileName = "studybuddy.yaml"

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

type Config struct {
	DataDir       string        `yaml:"-"`
	Storage       Storage       `yaml:"storage"`
	Log           Log           `yaml:"log"`
	Voice         Voice         `yaml:"voice"`
	Notifications Notifications `yaml:"notifications"`
	Reports       Reports       `yaml:"reports"`
	Timing        Timing        `yaml:"timing"`
}

type Storage struct {
	Driver     string `yaml:"driver"`
	Prefix     string `yaml:"prefix"`
	SQLitePath string `yaml:"sqlite_path"`
	Redis      Redis  `yaml:"redis"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	File        string `yaml:"file"`
}

type Voice struct {
	// Plugin is the path to a voice plugin binary. Empty selects the console
	// speaker.
	Plugin   string `yaml:"plugin"`
	Command  string `yaml:"command"`
	Language string `yaml:"language"`
}

type Notifications struct {
	Enabled bool `yaml:"enabled"`
}

type Reports struct {
	Enabled bool `yaml:"enabled"`
}

type Timing struct {
	BuddyFadeDelay    time.Duration `yaml:"buddy_fade_delay"`
	CheckInDisplay    time.Duration `yaml:"check_in_display"`
	PromptTimeout     time.Duration `yaml:"prompt_timeout"`
	MinSpeechInterval time.Duration `yaml:"min_speech_interval"`
	ReminderCount     int           `yaml:"reminder_count"`
	MinReminderOffset time.Duration `yaml:"min_reminder_offset"`
	GateLockout       time.Duration `yaml:"gate_lockout"`
	GateMaxAttempts   int           `yaml:"gate_max_attempts"`
	BreathingCycle    time.Duration `yaml:"breathing_cycle"`
	CalmReadyAfter    time.Duration `yaml:"calm_ready_after"`
}

func DefaultTiming() Timing {
	return Timing{
		BuddyFadeDelay:    60 * time.Second,
		CheckInDisplay:    5 * time.Second,
		PromptTimeout:     30 * time.Second,
		MinSpeechInterval: time.Second,
		ReminderCount:     3,
		MinReminderOffset: 5 * time.Second,
		GateLockout:       30 * time.Second,
		GateMaxAttempts:   3,
		BreathingCycle:    8 * time.Second,
		CalmReadyAfter:    5 * time.Minute,
	}
}

func Default(dataDir string) Config {
	return Config{
		DataDir: dataDir,
		Storage: Storage{
			Driver:     DriverSQLite,
			Prefix:     "@StudyBuddy:",
			SQLitePath: filepath.Join(dataDir, "studybuddy.db"),
			Redis:      Redis{Addr: "localhost:6379"},
		},
		Log:           Log{Level: "info"},
		Voice:         Voice{Language: "en-US"},
		Notifications: Notifications{Enabled: true},
		Reports:       Reports{Enabled: true},
		Timing:        DefaultTiming(),
	}
}

// Load reads <dataDir>/studybuddy.yaml over the defaults. A missing file is
// not an error.
func Load(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Default(dataDir)
	raw, err := os.ReadFile(filepath.Join(dataDir, FileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.DataDir = dataDir
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.SQLitePath != "" && !filepath.IsAbs(c.Storage.SQLitePath) {
		c.Storage.SQLitePath = filepath.Join(c.DataDir, c.Storage.SQLitePath)
	}
	d := DefaultTiming()
	t := &c.Timing
	if t.BuddyFadeDelay <= 0 {
		t.BuddyFadeDelay = d.BuddyFadeDelay
	}
	if t.CheckInDisplay <= 0 {
		t.CheckInDisplay = d.CheckInDisplay
	}
	if t.PromptTimeout <= 0 {
		t.PromptTimeout = d.PromptTimeout
	}
	if t.MinSpeechInterval < 0 {
		t.MinSpeechInterval = d.MinSpeechInterval
	}
	if t.ReminderCount <= 0 {
		t.ReminderCount = d.ReminderCount
	}
	if t.MinReminderOffset < 0 {
		t.MinReminderOffset = d.MinReminderOffset
	}
	if t.GateLockout <= 0 {
		t.GateLockout = d.GateLockout
	}
	if t.GateMaxAttempts <= 0 {
		t.GateMaxAttempts = d.GateMaxAttempts
	}
	if t.BreathingCycle <= 0 {
		t.BreathingCycle = d.BreathingCycle
	}
	if t.CalmReadyAfter <= 0 {
		t.CalmReadyAfter = d.CalmReadyAfter
	}
	return nil
}

func (c Config) SessionsDir() string {
	return filepath.Join(c.DataDir, "sessions")
}
