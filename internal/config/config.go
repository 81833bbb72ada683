package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Pagination identifies how the search controller advances through pages
type Pagination string

const (
	PaginationPage   Pagination = "page"
	PaginationOffset Pagination = "offset"
)

// Config holds all application configuration
type Config struct {
	Giphy   GiphyConfig   `mapstructure:"giphy"`
	Search  SearchConfig  `mapstructure:"search"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
	UI      UIConfig      `mapstructure:"ui"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// GiphyConfig holds search provider configuration
type GiphyConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Rating  string        `mapstructure:"rating"` // g, pg, pg-13, r
	Lang    string        `mapstructure:"lang"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SearchConfig holds search behavior configuration
type SearchConfig struct {
	PageSize    int           `mapstructure:"page_size"`
	Debounce    time.Duration `mapstructure:"debounce"`
	Pagination  Pagination    `mapstructure:"pagination"`
	URLSync     bool          `mapstructure:"url_sync"`
	HistorySize int           `mapstructure:"history_size"`
}

// ViewerConfig holds the external GIF viewer configuration
type ViewerConfig struct {
	Command string   `mapstructure:"command"` // empty = auto-detect
	Args    []string `mapstructure:"args"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	GridColumns int `mapstructure:"grid_columns"` // 0 = fit to width
	TileWidth   int `mapstructure:"tile_width"`
}

// StorageConfig holds session store configuration
type StorageConfig struct {
	Path string `mapstructure:"path"` // empty = memory only
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Giphy: GiphyConfig{
			BaseURL: "https://api.giphy.com",
			Rating:  "g",
			Lang:    "en",
			Timeout: 15 * time.Second,
		},
		Search: SearchConfig{
			PageSize:    12,
			Debounce:    500 * time.Millisecond,
			Pagination:  PaginationPage,
			URLSync:     true,
			HistorySize: 50,
		},
		Viewer: ViewerConfig{
			Args: []string{},
		},
		UI: UIConfig{
			GridColumns: 0,
			TileWidth:   26,
		},
		Storage: StorageConfig{
			Path: defaultDataPath(),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "gifgrid.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "gifgrid")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "gifgrid")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "gifgrid")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "gifgrid")
	}
}

// DefaultConfigFile returns the path Save writes to when no file is given
func DefaultConfigFile() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// newViper creates a viper instance seeded with defaults so that every key
// is known to AutomaticEnv
func newViper(defaults *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("giphy.api_key", defaults.Giphy.APIKey)
	v.SetDefault("giphy.base_url", defaults.Giphy.BaseURL)
	v.SetDefault("giphy.rating", defaults.Giphy.Rating)
	v.SetDefault("giphy.lang", defaults.Giphy.Lang)
	v.SetDefault("giphy.timeout", defaults.Giphy.Timeout)

	v.SetDefault("search.page_size", defaults.Search.PageSize)
	v.SetDefault("search.debounce", defaults.Search.Debounce)
	v.SetDefault("search.pagination", string(defaults.Search.Pagination))
	v.SetDefault("search.url_sync", defaults.Search.URLSync)
	v.SetDefault("search.history_size", defaults.Search.HistorySize)

	v.SetDefault("viewer.command", defaults.Viewer.Command)
	v.SetDefault("viewer.args", defaults.Viewer.Args)

	v.SetDefault("ui.grid_columns", defaults.UI.GridColumns)
	v.SetDefault("ui.tile_width", defaults.UI.TileWidth)

	v.SetDefault("storage.path", defaults.Storage.Path)

	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.level", defaults.Logging.Level)

	// Environment variable overrides (GIFGRID_GIPHY_API_KEY, GIFGRID_SEARCH_PAGE_SIZE, ...)
	v.SetEnvPrefix("GIFGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("giphy.api_key", "GIFGRID_GIPHY_API_KEY", "GIPHY_API_KEY")

	return v
}

// LoadConfig loads configuration from file and environment.
// An empty path searches the default config directory and the working directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(path != "" && errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would break the search controller
func (c *Config) Validate() error {
	if c.Search.PageSize < 1 {
		return fmt.Errorf("search.page_size must be at least 1, got %d", c.Search.PageSize)
	}
	if c.Search.Debounce < 0 {
		return fmt.Errorf("search.debounce must not be negative, got %s", c.Search.Debounce)
	}
	switch c.Search.Pagination {
	case PaginationPage, PaginationOffset:
	default:
		return fmt.Errorf("search.pagination must be %q or %q, got %q",
			PaginationPage, PaginationOffset, c.Search.Pagination)
	}
	if c.Giphy.Timeout < 0 {
		return fmt.Errorf("giphy.timeout must not be negative, got %s", c.Giphy.Timeout)
	}
	return nil
}

// SaveConfig saves the configuration to path (DefaultConfigFile when empty)
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigFile()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("giphy.api_key", cfg.Giphy.APIKey)
	v.Set("giphy.base_url", cfg.Giphy.BaseURL)
	v.Set("giphy.rating", cfg.Giphy.Rating)
	v.Set("giphy.lang", cfg.Giphy.Lang)
	v.Set("giphy.timeout", cfg.Giphy.Timeout.String())

	v.Set("search.page_size", cfg.Search.PageSize)
	v.Set("search.debounce", cfg.Search.Debounce.String())
	v.Set("search.pagination", string(cfg.Search.Pagination))
	v.Set("search.url_sync", cfg.Search.URLSync)
	v.Set("search.history_size", cfg.Search.HistorySize)

	v.Set("viewer.command", cfg.Viewer.Command)
	v.Set("viewer.args", cfg.Viewer.Args)

	v.Set("ui.grid_columns", cfg.UI.GridColumns)
	v.Set("ui.tile_width", cfg.UI.TileWidth)

	v.Set("storage.path", cfg.Storage.Path)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if an API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.Giphy.APIKey) != ""
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
