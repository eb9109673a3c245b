package rtnl

import (
	"testing"
	"time"

	"github.com/goccy/go-yaml"
)

func TestConfigDefaults(t *testing.T) {
	var c Config
	if err := yaml.Unmarshal([]byte("dumpRetries: 10\n"), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.DumpRetries != 10 {
		t.Errorf("dumpRetries = %d, want 10", c.DumpRetries)
	}
	if c.RetryBackoffMillis != DefaultConfig.RetryBackoffMillis {
		t.Errorf("retryBackoffMillis = %d, want default %d",
			c.RetryBackoffMillis, DefaultConfig.RetryBackoffMillis)
	}
	if c.RetryBackoffMaxMillis != DefaultConfig.RetryBackoffMaxMillis {
		t.Errorf("retryBackoffMaxMillis = %d, want default %d",
			c.RetryBackoffMaxMillis, DefaultConfig.RetryBackoffMaxMillis)
	}
}

func TestRetryBackoffGrowsToCap(t *testing.T) {
	b := DefaultConfig.retryBackoff()
	waits := []time.Duration{b.Duration(), b.Duration(), b.Duration(), b.Duration()}
	want := []time.Duration{
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		1000 * time.Millisecond, // capped
	}
	for i := range want {
		if waits[i] != want[i] {
			t.Errorf("wait %d = %v, want %v", i, waits[i], want[i])
		}
	}
}
