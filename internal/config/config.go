package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults.
const (
	DefaultBaseURL      = "https://api.github.com"
	DefaultCacheTTL     = 5 * time.Minute
	DefaultMaxRepos     = 20
	DefaultPreviewLines = 4
	DefaultServeAddr    = "127.0.0.1:8080"

	// MaxRepos is the size of the one repository page that is fetched.
	MaxRepos = 30
)

// APIConfig holds GitHub API settings.
type APIConfig struct {
	BaseURL string
	Token   string
	GHAuth  bool          // fall back to `gh auth token`
	Timeout time.Duration // 0 = no client timeout
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	TTL time.Duration
}

// DisplayConfig controls what a search renders.
type DisplayConfig struct {
	MaxRepos          int
	PreviewLines      int
	ReadmeConcurrency int // 0 = unbounded
}

// ServeConfig holds web server settings.
type ServeConfig struct {
	Addr string
}

// ThemeConfig holds UI theme/color configuration
type ThemeConfig struct {
	Name     string `toml:"name"`     // preset name: "default", "dracula", "nord", "gruvbox", "catppuccin", "none"
	Mode     string `toml:"mode"`     // "auto", "light", "dark"
	Primary  string `toml:"primary"`  // main accent color (borders, titles)
	Accent   string `toml:"accent"`   // highlight color (selected items)
	Success  string `toml:"success"`  // success indicators
	Error    string `toml:"error"`    // error messages
	Muted    string `toml:"muted"`    // disabled/inactive text
	Normal   string `toml:"normal"`   // standard text
	Info     string `toml:"info"`     // informational text
	Warning  string `toml:"warning"`  // rate limit warnings
	Nerdfont bool   `toml:"nerdfont"` // use nerd font symbols
}

// Config holds the ghv configuration
type Config struct {
	API     APIConfig
	Cache   CacheConfig
	Display DisplayConfig
	Serve   ServeConfig
	Theme   ThemeConfig
}

// Default returns the default configuration
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
		},
		Cache: CacheConfig{
			TTL: DefaultCacheTTL,
		},
		Display: DisplayConfig{
			MaxRepos:     DefaultMaxRepos,
			PreviewLines: DefaultPreviewLines,
		},
		Serve: ServeConfig{
			Addr: DefaultServeAddr,
		},
	}
}

// Path returns the config file location.
func Path() (string, error) {
	if p := os.Getenv("GHV_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ghv", "config.toml"), nil
}

// rawConfig mirrors the file layout; durations are strings like "5m".
type rawConfig struct {
	API struct {
		BaseURL string `toml:"base_url"`
		Token   string `toml:"token"`
		GHAuth  bool   `toml:"gh_auth"`
		Timeout string `toml:"timeout"`
	} `toml:"api"`
	Cache struct {
		TTL string `toml:"ttl"`
	} `toml:"cache"`
	Display struct {
		MaxRepos          *int `toml:"max_repos"`
		PreviewLines      *int `toml:"preview_lines"`
		ReadmeConcurrency *int `toml:"readme_concurrency"`
	} `toml:"display"`
	Serve struct {
		Addr string `toml:"addr"`
	} `toml:"serve"`
	Theme ThemeConfig `toml:"theme"`
}

// Load reads the config file and applies environment overrides.
// A missing file is not an error.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return Default(), err
	}
	if err := ApplyEnv(&cfg, os.Getenv); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// LoadFile reads and validates one config file without environment
// overrides. Returns Default() if the file doesn't exist.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML config data on top of the defaults and validates it.
func Parse(data []byte) (Config, error) {
	var raw rawConfig
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := Default()
	if raw.API.BaseURL != "" {
		cfg.API.BaseURL = raw.API.BaseURL
	}
	cfg.API.Token = raw.API.Token
	cfg.API.GHAuth = raw.API.GHAuth

	if raw.API.Timeout != "" {
		d, err := time.ParseDuration(raw.API.Timeout)
		if err != nil {
			return Default(), fmt.Errorf("invalid api.timeout %q: %w", raw.API.Timeout, err)
		}
		cfg.API.Timeout = d
	}
	if raw.Cache.TTL != "" {
		d, err := time.ParseDuration(raw.Cache.TTL)
		if err != nil {
			return Default(), fmt.Errorf("invalid cache.ttl %q: %w", raw.Cache.TTL, err)
		}
		cfg.Cache.TTL = d
	}

	if raw.Display.MaxRepos != nil {
		cfg.Display.MaxRepos = *raw.Display.MaxRepos
	}
	if raw.Display.PreviewLines != nil {
		cfg.Display.PreviewLines = *raw.Display.PreviewLines
	}
	if raw.Display.ReadmeConcurrency != nil {
		cfg.Display.ReadmeConcurrency = *raw.Display.ReadmeConcurrency
	}
	if raw.Serve.Addr != "" {
		cfg.Serve.Addr = raw.Serve.Addr
	}
	cfg.Theme = raw.Theme

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from environment variables read through getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	switch {
	case getenv("GHV_TOKEN") != "":
		cfg.API.Token = getenv("GHV_TOKEN")
	case getenv("GITHUB_TOKEN") != "":
		cfg.API.Token = getenv("GITHUB_TOKEN")
	}

	if v := getenv("GHV_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}

	if v := getenv("GHV_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid GHV_CACHE_TTL %q: %w", v, err)
		}
		cfg.Cache.TTL = d
	}

	return cfg.Validate()
}

// Validate checks value ranges and enums.
func (c *Config) Validate() error {
	if err := ValidateBaseURL(c.API.BaseURL); err != nil {
		return err
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("invalid api.timeout %s: must not be negative", c.API.Timeout)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("invalid cache.ttl %s: must be positive", c.Cache.TTL)
	}
	if c.Display.MaxRepos < 1 || c.Display.MaxRepos > MaxRepos {
		return fmt.Errorf("invalid display.max_repos %d: must be between 1 and %d", c.Display.MaxRepos, MaxRepos)
	}
	if c.Display.PreviewLines < 1 {
		return fmt.Errorf("invalid display.preview_lines %d: must be at least 1", c.Display.PreviewLines)
	}
	if c.Display.ReadmeConcurrency < 0 {
		return fmt.Errorf("invalid display.readme_concurrency %d: must not be negative", c.Display.ReadmeConcurrency)
	}
	if err := validateEnum(c.Theme.Name, "theme.name", ValidThemeNames); err != nil {
		return err
	}
	return validateEnum(c.Theme.Mode, "theme.mode", ValidThemeModes)
}

// ValidateBaseURL checks that u is an absolute http(s) URL.
func ValidateBaseURL(u string) error {
	parsed, err := url.Parse(u)
	if err != nil {
		return fmt.Errorf("invalid api.base_url %q: %w", u, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("invalid api.base_url %q: must be an http or https URL", u)
	}
	return nil
}

// Encode renders cfg as TOML. The token is masked.
func (c Config) Encode() ([]byte, error) {
	var raw rawConfig
	raw.API.BaseURL = c.API.BaseURL
	if c.API.Token != "" {
		raw.API.Token = "********"
	}
	raw.API.GHAuth = c.API.GHAuth
	if c.API.Timeout > 0 {
		raw.API.Timeout = c.API.Timeout.String()
	}
	raw.Cache.TTL = c.Cache.TTL.String()
	raw.Display.MaxRepos = &c.Display.MaxRepos
	raw.Display.PreviewLines = &c.Display.PreviewLines
	raw.Display.ReadmeConcurrency = &c.Display.ReadmeConcurrency
	raw.Serve.Addr = c.Serve.Addr
	raw.Theme = c.Theme

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const defaultConfig = `# ghv configuration

[api]
# GitHub REST API root. Change for GitHub Enterprise, e.g.
# "https://github.example.com/api/v3"
base_url = "https://api.github.com"

# Optional token, sent as "Authorization: Bearer <token>".
# Prefer GHV_TOKEN or GITHUB_TOKEN (or a .env file) over storing it here.
# token = ""

# Use the token of the logged-in gh CLI account when no token is set
# gh_auth = false

# Per-request timeout (Go duration). Unset means no timeout.
# timeout = "10s"

[cache]
# How long fetched profiles and repository lists are reused
ttl = "5m"

[display]
# Repository cards shown after forks are dropped (1-30)
max_repos = 20

# README preview height in lines
preview_lines = 4

# Parallel README fetches, 0 = unbounded
readme_concurrency = 0

[serve]
# Listen address for "ghv serve"
addr = "127.0.0.1:8080"

# [theme]
# name = "default"   # default, dracula, nord, gruvbox, catppuccin, none
# mode = "auto"      # auto, light, dark
# primary = "#89b4fa"
# accent = "#f5c2e7"
# nerdfont = false
`

// DefaultConfig returns the commented template written by Init.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at Path().
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}

	return path, nil
}
