package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	stateDir   = ".studyplan"
	configFile = "config.yaml"
)

// Config is the resolved runtime configuration of one workspace.
type Config struct {
	Dir          string
	StateDir     string
	ConfigPath   string
	DBPath       string
	ProgressPath string

	Title         string
	RestDay       time.Weekday
	DurationLabel string
	Columns       Columns
	WeekdayNames  map[time.Weekday]string
	StudyNote     string
	ReviewNote    string
}

type Columns struct {
	Discipline string `yaml:"discipline"`
	Topic      string `yaml:"topic"`
	Hours      string `yaml:"hours"`
}

// File mirrors .studyplan/config.yaml. Every field is optional.
type File struct {
	Title         string            `yaml:"title"`
	RestDay       string            `yaml:"rest_day"`
	DurationLabel string            `yaml:"duration_label"`
	Columns       Columns           `yaml:"columns"`
	WeekdayNames  map[string]string `yaml:"weekday_names"`
	Notes         struct {
		Study  string `yaml:"study"`
		Review string `yaml:"review"`
	} `yaml:"notes"`
}

func defaults(dir string) Config {
	state := filepath.Join(dir, stateDir)
	return Config{
		Dir:           dir,
		StateDir:      state,
		ConfigPath:    filepath.Join(state, configFile),
		DBPath:        filepath.Join(state, "studyplan.db"),
		ProgressPath:  filepath.Join(state, "progress.json"),
		Title:         "Study Plan",
		RestDay:       time.Sunday,
		DurationLabel: "1h Study",
		Columns:       Columns{Discipline: "Discipline", Topic: "Topic", Hours: "Hours"},
		WeekdayNames:  map[time.Weekday]string{},
	}
}

// New resolves paths under dir and overlays .studyplan/config.yaml when it exists.
func New(dir string) (Config, error) {
	if dir == "" {
		return Config{}, fmt.Errorf("workspace dir is required")
	}
	cfg := defaults(dir)
	raw, err := os.ReadFile(cfg.ConfigPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", cfg.ConfigPath, err)
	}
	if err := cfg.apply(file); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", cfg.ConfigPath, err)
	}
	return cfg, nil
}

func (c *Config) apply(file File) error {
	if s := strings.TrimSpace(file.Title); s != "" {
		c.Title = s
	}
	if file.RestDay != "" {
		day, err := ParseWeekday(file.RestDay)
		if err != nil {
			return err
		}
		c.RestDay = day
	}
	if s := strings.TrimSpace(file.DurationLabel); s != "" {
		c.DurationLabel = s
	}
	if s := strings.TrimSpace(file.Columns.Discipline); s != "" {
		c.Columns.Discipline = s
	}
	if s := strings.TrimSpace(file.Columns.Topic); s != "" {
		c.Columns.Topic = s
	}
	if s := strings.TrimSpace(file.Columns.Hours); s != "" {
		c.Columns.Hours = s
	}
	for k, v := range file.WeekdayNames {
		day, err := ParseWeekday(k)
		if err != nil {
			return fmt.Errorf("weekday_names: %w", err)
		}
		c.WeekdayNames[day] = v
	}
	c.StudyNote = strings.TrimSpace(file.Notes.Study)
	c.ReviewNote = strings.TrimSpace(file.Notes.Review)
	return nil
}

// Write stores file as the workspace's config.yaml.
func Write(dir string, file File) error {
	path := filepath.Join(dir, stateDir, configFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	raw, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ParseWeekday accepts English names and their three letter prefixes.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || (len(name) == 3 && strings.HasPrefix(full, name)) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}
