package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "remindo.db"
	DefaultLogName        = "remindo.log"
	DefaultAlertInterval  = 30 * time.Second

	appDirName = "remindo"
	envConfig  = "REMINDO_CONFIG"
)

type Keymap struct {
	Quit        string `toml:"quit"`
	Add         string `toml:"add"`
	Up          string `toml:"up"`
	Down        string `toml:"down"`
	Toggle      string `toml:"toggle"`
	Delete      string `toml:"delete"`
	Edit        string `toml:"edit"`
	Confirm     string `toml:"confirm"`
	Cancel      string `toml:"cancel"`
	NextField   string `toml:"next_field"`
	Theme       string `toml:"theme"`
	FilterAll   string `toml:"filter_all"`
	FilterPend  string `toml:"filter_pending"`
	FilterDone  string `toml:"filter_completed"`
	CycleFilter string `toml:"cycle_filter"`
}

type Config struct {
	DBPath        string   `toml:"db_path"`
	Backend       string   `toml:"backend"`
	DataDir       string   `toml:"data_dir"`
	DefaultFilter string   `toml:"default_filter"`
	DefaultTheme  string   `toml:"default_theme"`
	AlertInterval Duration `toml:"alert_interval"`
	LogFile       string   `toml:"log_file"`
	LogLevel      string   `toml:"log_level"`
	LogFormat     string   `toml:"log_format"`
	MetricsFile   string   `toml:"metrics_file"`
	Keys          Keymap   `toml:"keys"`
}

// Duration is a time.Duration written as a string such as "30s".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// ResolveConfigPath picks the config file: $REMINDO_CONFIG, then the user
// config dir, then the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(envConfig); p != "" {
		if expanded, err := homedir.Expand(p); err == nil {
			return expanded
		}
		return p
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName, DefaultConfigFileName)
	}
	return DefaultConfigFileName
}

func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg.resolve(filepath.Dir(path))
}

// resolve fills blanks with defaults and anchors relative paths at base.
func (c Config) resolve(base string) (Config, error) {
	def := Default()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	}
	if c.Backend == "" {
		c.Backend = def.Backend
	}
	if c.DefaultFilter == "" {
		c.DefaultFilter = def.DefaultFilter
	}
	if c.DefaultTheme == "" {
		c.DefaultTheme = def.DefaultTheme
	}
	if c.AlertInterval.Duration <= 0 {
		c.AlertInterval = def.AlertInterval
	}
	c.Keys = c.Keys.withDefaults(def.Keys)

	var err error
	if c.DBPath, err = anchor(base, c.DBPath); err != nil {
		return c, err
	}
	if c.DataDir, err = anchor(base, c.DataDir); err != nil {
		return c, err
	}
	if c.LogFile, err = anchor(base, c.LogFile); err != nil {
		return c, err
	}
	if c.MetricsFile != "" {
		if c.MetricsFile, err = anchor(base, c.MetricsFile); err != nil {
			return c, err
		}
	}
	return c, nil
}

func anchor(base, p string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(expanded) {
		return expanded, nil
	}
	return filepath.Join(base, expanded), nil
}

func (k Keymap) withDefaults(def Keymap) Keymap {
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&k.Quit, def.Quit)
	fill(&k.Add, def.Add)
	fill(&k.Up, def.Up)
	fill(&k.Down, def.Down)
	fill(&k.Toggle, def.Toggle)
	fill(&k.Delete, def.Delete)
	fill(&k.Edit, def.Edit)
	fill(&k.Confirm, def.Confirm)
	fill(&k.Cancel, def.Cancel)
	fill(&k.NextField, def.NextField)
	fill(&k.Theme, def.Theme)
	fill(&k.FilterAll, def.FilterAll)
	fill(&k.FilterPend, def.FilterPend)
	fill(&k.FilterDone, def.FilterDone)
	fill(&k.CycleFilter, def.CycleFilter)
	return k
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the configuration written on first launch.
func Default() Config {
	return Config{
		DBPath:        DefaultDBName,
		Backend:       "sqlite",
		DataDir:       "slots",
		DefaultFilter: "all",
		DefaultTheme:  "auto",
		AlertInterval: Duration{DefaultAlertInterval},
		LogFile:       DefaultLogName,
		LogLevel:      "info",
		LogFormat:     "text",
		Keys: Keymap{
			Quit:        "q",
			Add:         "a",
			Up:          "k",
			Down:        "j",
			Toggle:      " ",
			Delete:      "d",
			Edit:        "e",
			Confirm:     "enter",
			Cancel:      "esc",
			NextField:   "tab",
			Theme:       "t",
			FilterAll:   "1",
			FilterPend:  "2",
			FilterDone:  "3",
			CycleFilter: "f",
		},
	}
}
