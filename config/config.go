// Package config loads the library-wide YAML configuration: one
// document with a section per package, each falling back to that
// package's defaults when absent.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/truenas/go-netif/diag"
	"github.com/truenas/go-netif/rtnl"
)

type Config struct {
	Rtnl rtnl.Config `yaml:"rtnl"`
	Diag diag.Config `yaml:"diag"`
}

// Default returns a configuration with every section at its package
// defaults.
func Default() Config {
	return Config{
		Rtnl: rtnl.DefaultConfig,
		Diag: diag.DefaultConfig,
	}
}

// Parse decodes a YAML document. Missing sections and missing keys
// within a section keep their defaults.
func Parse(b []byte) (Config, error) {
	conf := Default()
	if err := yaml.Unmarshal(b, &conf); err != nil {
		return Config{}, fmt.Errorf("parsing configuration: %w", err)
	}
	return conf, nil
}

// Load reads and parses a configuration file.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading configuration: %w", err)
	}
	return Parse(b)
}
