package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Source describes one configured index page or upstream feed.
type Source struct {
	// Name is an optional display name used in logs; defaults to Index.
	Name string `yaml:"name"`
	// Index is the URL of the listing page or feed to pull links from.
	Index string `yaml:"index"`
	// Base is the site base URL; candidate links must share its host.
	Base string `yaml:"base"`
	// Prefix, when set, is the preferred href prefix for candidate links.
	Prefix string `yaml:"prefix"`
	// Limit caps links taken from this source; 0 means DefaultLinkLimit.
	Limit int `yaml:"limit"`
	// Mode forces ingestion as "html" or "feed"; empty means auto-detect.
	Mode string `yaml:"mode"`
}

// DisplayName returns the log-friendly name of the source.
func (s Source) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Index
}

// LinkLimit returns the effective per-source candidate link cap.
func (s Source) LinkLimit() int {
	if s.Limit > 0 {
		return s.Limit
	}
	return DefaultLinkLimit
}

// Config is the parsed feeds.yaml.
type Config struct {
	// SiteBase is the public base URL where feed files are hosted.
	SiteBase string `yaml:"site_base"`
	// HomeURL is the human-facing homepage linked from every feed.
	HomeURL string `yaml:"home_url"`
	// MaxItemsPerArea caps each emitted feed.
	MaxItemsPerArea int `yaml:"max_items_per_area"`
	// TechLeaders overrides the topic slugs in the spotlight feed.
	TechLeaders []string `yaml:"tech_leaders"`
	// Areas maps topic-area slug to its ordered source list.
	Areas map[string][]Source `yaml:"areas"`
}

// Load reads and validates a feeds.yaml file. Environment variables
// SITE_BASE and HOME_URL override the corresponding file values.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if v := os.Getenv("SITE_BASE"); v != "" {
		cfg.SiteBase = v
	}
	if v := os.Getenv("HOME_URL"); v != "" {
		cfg.HomeURL = v
	}

	if cfg.SiteBase == "" {
		return nil, fmt.Errorf("config %s: site_base is required", path)
	}
	if cfg.HomeURL == "" {
		cfg.HomeURL = cfg.SiteBase
	}
	if cfg.MaxItemsPerArea <= 0 {
		cfg.MaxItemsPerArea = DefaultMaxItems
	}
	if len(cfg.TechLeaders) == 0 {
		cfg.TechLeaders = DefaultTechLeaders
	}
	if len(cfg.Areas) == 0 {
		return nil, fmt.Errorf("config %s: no areas configured", path)
	}
	for slug, sources := range cfg.Areas {
		for i, src := range sources {
			if src.Index == "" {
				return nil, fmt.Errorf("config %s: area %q source %d: index is required", path, slug, i)
			}
			if src.Base == "" {
				return nil, fmt.Errorf("config %s: area %q source %d: base is required", path, slug, i)
			}
			if src.Mode != "" && src.Mode != "html" && src.Mode != "feed" {
				return nil, fmt.Errorf("config %s: area %q source %d: unknown mode %q", path, slug, i, src.Mode)
			}
		}
	}

	return &cfg, nil
}

// AreaSlugs returns the configured area slugs in sorted order so runs
// process areas deterministically.
func (c *Config) AreaSlugs() []string {
	slugs := make([]string, 0, len(c.Areas))
	for slug := range c.Areas {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}
