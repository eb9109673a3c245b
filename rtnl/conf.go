package rtnl

import (
	"time"

	"github.com/goccy/go-yaml"
	"github.com/jpillora/backoff"
)

// Config tunes the retry loop around interrupted dumps. The pause
// between attempts doubles from RetryBackoffMillis up to the cap.
type Config struct {
	DumpRetries           int `yaml:"dumpRetries"`
	RetryBackoffMillis    int `yaml:"retryBackoffMillis"`
	RetryBackoffMaxMillis int `yaml:"retryBackoffMaxMillis"`
}

var DefaultConfig = Config{
	DumpRetries:           5,
	RetryBackoffMillis:    200,
	RetryBackoffMaxMillis: 1000,
}

// retryBackoff builds the per-dump wait generator: exponential from
// RetryBackoffMillis, capped at RetryBackoffMaxMillis.
func (c Config) retryBackoff() *backoff.Backoff {
	return &backoff.Backoff{
		Min:    time.Duration(c.RetryBackoffMillis) * time.Millisecond,
		Max:    time.Duration(c.RetryBackoffMaxMillis) * time.Millisecond,
		Jitter: false,
	}
}

func (c *Config) UnmarshalYAML(b []byte) error {
	// Needed to break recursive calls into UnmarshalYAML
	type config Config

	def := config(DefaultConfig)

	if err := yaml.Unmarshal(b, &def); err != nil {
		return err
	}

	*c = Config(def)

	return nil
}
