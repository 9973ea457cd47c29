package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/pevans/olharfeed/scraper"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrInvalidTargetURL  = errors.New("target_url must be an absolute http(s) URL")
	ErrInvalidBaseURL    = errors.New("base_url must be an absolute http(s) URL")
	ErrMissingOutputPath = errors.New("output_path is required")
	ErrMissingSelector   = errors.New("all scraper selectors are required")
	ErrInvalidTimeZone   = errors.New("time_zone must name a known IANA zone")
	ErrInvalidWait       = errors.New("wait.timeout must be positive and settle delays non-negative")
	ErrInvalidLogLevel   = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config holds everything a run needs. It is passed by value; nothing in
// the program mutates it after loading.
type Config struct {
	TargetURL  string                `yaml:"target_url"`
	BaseURL    string                `yaml:"base_url"`
	OutputPath string                `yaml:"output_path"`
	TimeZone   string                `yaml:"time_zone"`
	Feed       FeedConfig            `yaml:"feed"`
	Scraper    scraper.ScraperConfig `yaml:"scraper"`
	Wait       WaitConfig            `yaml:"wait"`
	Browser    BrowserConfig         `yaml:"browser"`
	Debug      DebugConfig           `yaml:"debug"`
	Logging    LoggingConfig         `yaml:"logging"`
}

// FeedConfig holds the channel-level metadata of the generated feed.
type FeedConfig struct {
	Title       string `yaml:"title"`
	Link        string `yaml:"link"`
	Description string `yaml:"description"`
	Language    string `yaml:"language"`
}

// WaitConfig bounds how long a page may take to render.
type WaitConfig struct {
	// Ceiling for the visibility wait on both listing and article pages
	Timeout time.Duration `yaml:"timeout"`
	// Extra pause after the listing container shows up
	ListingSettle time.Duration `yaml:"listing_settle"`
	// Extra pause after an article's date label shows up
	ArticleSettle time.Duration `yaml:"article_settle"`
}

// BrowserConfig configures the rendering session.
type BrowserConfig struct {
	Headless      bool   `yaml:"headless"`
	NoSandbox     bool   `yaml:"no_sandbox"`
	DisableDevShm bool   `yaml:"disable_dev_shm"`
	UserAgent     string `yaml:"user_agent"`
	WindowWidth   int    `yaml:"window_width"`
	WindowHeight  int    `yaml:"window_height"`
}

// DebugConfig names the diagnostic files written when the listing page
// looks wrong.
type DebugConfig struct {
	PageErrorPath  string `yaml:"page_error_path"`
	PagePath       string `yaml:"page_path"`
	ScreenshotPath string `yaml:"screenshot_path"`
}

// LoggingConfig selects the log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration for the Olhar Digital news feed.
func Default() Config {
	return Config{
		TargetURL:  "https://olhardigital.com.br/editorias/noticias/",
		BaseURL:    "https://olhardigital.com.br",
		OutputPath: "feed_olhardigital.xml",
		TimeZone:   "America/Sao_Paulo",
		Feed: FeedConfig{
			Title:       "Olhar Digital - Feed RSS (Deluxe)",
			Link:        "https://olhardigital.com.br",
			Description: "Últimas notícias do Olhar Digital, com imagens e resumos.",
			Language:    "pt-BR",
		},
		Scraper: scraper.DefaultScraperConfig(),
		Wait: WaitConfig{
			Timeout:       30 * time.Second,
			ListingSettle: 3 * time.Second,
			ArticleSettle: 1 * time.Second,
		},
		Browser: BrowserConfig{
			Headless:      true,
			NoSandbox:     true,
			DisableDevShm: true,
			UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36",
			WindowWidth:   1920,
			WindowHeight:  1080,
		},
		Debug: DebugConfig{
			PageErrorPath:  "debug_page_error.html",
			PagePath:       "debug_page.html",
			ScreenshotPath: "debug_screenshot.png",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfigFile loads configuration from a YAML file. Keys present in the
// file override the defaults; everything else keeps its default value. An
// empty path or a missing file yields the defaults (not an error). Returns
// an error if the file exists but cannot be parsed or fails validation.
func LoadConfigFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration can drive a run.
func (c Config) Validate() error {
	if !isAbsoluteHTTP(c.TargetURL) {
		return ErrInvalidTargetURL
	}
	if !isAbsoluteHTTP(c.BaseURL) {
		return ErrInvalidBaseURL
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return ErrMissingOutputPath
	}

	list := c.Scraper.ListConfig
	for _, sel := range []string{
		list.ContainerSelector,
		list.ArticleSelector,
		list.TitleSelector,
		list.SummarySelector,
		list.ImageSelector,
		c.Scraper.ArticleConfig.DateSelector,
	} {
		if strings.TrimSpace(sel) == "" {
			return ErrMissingSelector
		}
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if c.Wait.Timeout <= 0 || c.Wait.ListingSettle < 0 || c.Wait.ArticleSettle < 0 {
		return ErrInvalidWait
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}

	return nil
}

// Location loads the publisher's civil time zone. All timestamps are
// interpreted and generated in this zone.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return nil, ErrInvalidTimeZone
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeZone, err)
	}
	return loc, nil
}

func isAbsoluteHTTP(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
