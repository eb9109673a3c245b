package diag

import (
	"github.com/goccy/go-yaml"
	"golang.org/x/sys/unix"
)

// Config selects what a periodic socket dump asks for.
type Config struct {
	Protocol uint8  `yaml:"protocol"`
	States   uint32 `yaml:"states"`
}

var DefaultConfig = Config{
	Protocol: unix.IPPROTO_TCP,
	States:   StatesAll &^ (1 << StateListen),
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
