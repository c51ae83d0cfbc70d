package session

import (
	"context"
	"sync"

	"otpctl/pkg/otp"
)

// ServerInfoFetcher is satisfied by *otp.API.
type ServerInfoFetcher interface {
	ServerInfo(ctx context.Context) (*otp.ServerInfo, error)
}

// ServerInfoLoader fetches the server metadata exactly once. There is no retry
// and no refresh; build a new loader to query again.
type ServerInfoLoader struct {
	fetcher ServerInfoFetcher
	once    sync.Once

	mu   sync.RWMutex
	info *otp.ServerInfo
	err  error
}

func NewServerInfoLoader(fetcher ServerInfoFetcher) *ServerInfoLoader {
	return &ServerInfoLoader{fetcher: fetcher}
}

// Load performs the request on first use and returns the cached outcome afterwards.
// Concurrent callers wait for the single request to finish.
func (l *ServerInfoLoader) Load(ctx context.Context) (*otp.ServerInfo, error) {
	l.once.Do(func() {
		info, err := l.fetcher.ServerInfo(ctx)
		l.mu.Lock()
		l.info, l.err = info, err
		l.mu.Unlock()
	})
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.info, l.err
}

// Start runs Load in the background.
func (l *ServerInfoLoader) Start(ctx context.Context) {
	go func() { _, _ = l.Load(ctx) }()
}

// Info returns nil until the response has arrived.
func (l *ServerInfoLoader) Info() *otp.ServerInfo {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.info
}

// Err returns the error of the request, if it failed.
func (l *ServerInfoLoader) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}
