package ethtool

import "sync"

var shared struct {
	sync.Mutex
	client *Client
}

// Shared returns a process-wide client, opening it on first use and
// reopening it when its descriptor has gone bad (a fork or an errant
// Close elsewhere). The caller must not Close the returned client;
// concurrent callers are serialised only for the handoff, not for the
// queries themselves.
func Shared() (*Client, error) {
	shared.Lock()
	defer shared.Unlock()

	if shared.client != nil {
		if err := shared.client.sock.EnsureConnected(); err == nil {
			return shared.client, nil
		}
		shared.client.Close()
		shared.client = nil
	}

	client, err := NewClient()
	if err != nil {
		return nil, err
	}
	shared.client = client
	return client, nil
}

// CloseShared tears down the process-wide client.
func CloseShared() {
	shared.Lock()
	defer shared.Unlock()
	if shared.client != nil {
		shared.client.Close()
		shared.client = nil
	}
}
