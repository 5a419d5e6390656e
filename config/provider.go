package config

import "sync"

// Provider hands out the current configuration. Handlers call Get on every
// request, so a reload only needs to swap the pointer under the lock.
type Provider struct {
	mu  sync.RWMutex
	cfg *Config
}

func NewProvider(cfg *Config) *Provider {
	if cfg == nil {
		panic("config: NewProvider called with nil config")
	}
	return &Provider{cfg: cfg}
}

func (p *Provider) Get() *Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg
}

func (p *Provider) Update(cfg *Config) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg = cfg
}
