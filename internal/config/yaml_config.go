package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Naming conventions for stored documents change between producer releases,
// so they are easier to manage in a file than in env vars.
type YAMLConfig struct {
	Resolver ResolverConfig `yaml:"resolver"`
	Routes   RoutesConfig   `yaml:"routes"`
}

// ResolverConfig overrides the document resolution settings.
type ResolverConfig struct {
	Strategy       string   `yaml:"strategy"`
	DirectPrefixes []string `yaml:"direct_prefixes,omitempty"`
	ScanPrefix     string   `yaml:"scan_prefix,omitempty"`
	PageSize       int      `yaml:"page_size,omitempty"`
}

// RoutesConfig overrides the PM namespace aliases.
type RoutesConfig struct {
	PMNamespaces []string `yaml:"pm_namespaces,omitempty"`
	AdminSegment string   `yaml:"admin_segment,omitempty"`
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	return loadYAMLFile(getEnv("CONFIG_FILE", "config.yaml"))
}

func loadYAMLFile(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Apply copies the non-empty file settings over cfg.
func (y *YAMLConfig) Apply(cfg *Config) {
	if y == nil {
		return
	}
	if y.Resolver.Strategy != "" {
		cfg.ResolverStrategy = y.Resolver.Strategy
	}
	if len(y.Resolver.DirectPrefixes) > 0 {
		cfg.ResolverDirectPrefixes = y.Resolver.DirectPrefixes
	}
	if y.Resolver.ScanPrefix != "" {
		cfg.ResolverScanPrefix = y.Resolver.ScanPrefix
	}
	if y.Resolver.PageSize > 0 {
		cfg.ResolverPageSize = y.Resolver.PageSize
	}
	if len(y.Routes.PMNamespaces) > 0 {
		cfg.PMNamespaces = y.Routes.PMNamespaces
	}
	if y.Routes.AdminSegment != "" {
		cfg.AdminSegment = y.Routes.AdminSegment
	}
}
