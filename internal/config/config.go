package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Raw mirrors the YAML schema. Optional fields are pointers so a file can
// override only what it sets.
type Raw struct {
	Server  ServerCfg  `yaml:"server"`
	Catalog CatalogCfg `yaml:"catalog"`
	Sim     SimCfg     `yaml:"sim"`
	Store   StoreCfg   `yaml:"store"`
}

type ServerCfg struct {
	Addr *string `yaml:"addr"`
}

type CatalogCfg struct {
	BaseURL        *string `yaml:"base_url"`
	TimeoutSeconds *int    `yaml:"timeout_seconds"`
}

type SimCfg struct {
	XMin    *int `yaml:"x_min"`
	XMax    *int `yaml:"x_max"`
	Trials  *int `yaml:"trials"`
	Workers *int `yaml:"workers"`
}

type StoreCfg struct {
	Dir *string `yaml:"dir"`
}

// Config is the resolved configuration with every default applied.
type Config struct {
	Addr           string
	CatalogBaseURL string
	CatalogTimeout time.Duration
	XMin           int
	XMax           int
	Trials         int
	Workers        int
	StoreDir       string
}

// Defaults returns the reference configuration: X in 4..10, 10k trials.
func Defaults() Config {
	return Config{
		Addr:           ":8080",
		CatalogBaseURL: "", // empty means the catalog client's default
		CatalogTimeout: 10 * time.Second,
		XMin:           4,
		XMax:           10,
		Trials:         10000,
		Workers:        0, // 0 means one worker per CPU
	}
}

// Load reads path and merges it over Defaults. A missing file ("" path or
// ErrNotExist) yields pure defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var raw Raw
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg = merge(cfg, raw)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// merge applies the non-nil fields of raw over cfg.
func merge(cfg Config, raw Raw) Config {
	if raw.Server.Addr != nil {
		cfg.Addr = *raw.Server.Addr
	}
	if raw.Catalog.BaseURL != nil {
		cfg.CatalogBaseURL = *raw.Catalog.BaseURL
	}
	if raw.Catalog.TimeoutSeconds != nil {
		cfg.CatalogTimeout = time.Duration(*raw.Catalog.TimeoutSeconds) * time.Second
	}
	if raw.Sim.XMin != nil {
		cfg.XMin = *raw.Sim.XMin
	}
	if raw.Sim.XMax != nil {
		cfg.XMax = *raw.Sim.XMax
	}
	if raw.Sim.Trials != nil {
		cfg.Trials = *raw.Sim.Trials
	}
	if raw.Sim.Workers != nil {
		cfg.Workers = *raw.Sim.Workers
	}
	if raw.Store.Dir != nil {
		cfg.StoreDir = *raw.Store.Dir
	}
	return cfg
}

// Validate checks semantic constraints, collecting every violation.
func (c Config) Validate() error {
	var errs []string
	if c.XMin <= 0 {
		errs = append(errs, "sim.x_min must be >= 1")
	}
	if c.XMax < c.XMin {
		errs = append(errs, "sim.x_max must be >= sim.x_min")
	}
	if c.Trials <= 0 {
		errs = append(errs, "sim.trials must be >= 1")
	}
	if c.Workers < 0 {
		errs = append(errs, "sim.workers must be >= 0 (0 means one per CPU)")
	}
	if c.CatalogTimeout <= 0 {
		errs = append(errs, "catalog.timeout_seconds must be >= 1")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Holder keeps the current Config and swaps it atomically on reload, so the
// server can pick up file edits between runs.
type Holder struct {
	path string

	mu  sync.RWMutex
	cfg Config
}

// NewHolder loads path and wraps the result.
func NewHolder(path string) (*Holder, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Holder{path: path, cfg: cfg}, nil
}

// Current returns the active config.
func (h *Holder) Current() Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cfg
}

// Reload re-reads the file. On error the previous config stays active.
func (h *Holder) Reload() error {
	cfg, err := Load(h.path)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.cfg = cfg
	h.mu.Unlock()
	return nil
}
