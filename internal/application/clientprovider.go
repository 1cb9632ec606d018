package application

import (
	"sync"

	"github.com/kevharding/stockpanel/internal/domain/port/driven"
)

// InventoryClientProvider enables runtime hot-swap of the inventory API
// client. A fresh bearer token after login means a fresh client; holding a
// mutex-protected reference lets the swap take effect without restarting.
type InventoryClientProvider struct {
	mu     sync.RWMutex
	client driven.InventoryClient
}

// NewInventoryClientProvider creates a provider with the given initial
// client. client may be nil when no token is stored at startup.
func NewInventoryClientProvider(client driven.InventoryClient) *InventoryClientProvider {
	return &InventoryClientProvider{client: client}
}

// Get returns the current client. Callers should check for nil if the
// provider may have been created before any login.
func (p *InventoryClientProvider) Get() driven.InventoryClient {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.client
}

// Replace swaps the current client. Called after a successful login or a
// logout (with nil). The next caller of Get receives the new client.
func (p *InventoryClientProvider) Replace(client driven.InventoryClient) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.client = client
}

// HasClient reports whether a non-nil client is currently held.
func (p *InventoryClientProvider) HasClient() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.client != nil
}
