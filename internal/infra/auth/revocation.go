package auth

import (
	"sync"

	"backoffice/internal/domain/service"
)

// revocationRegistry is an in-memory TokenRevoker: a process-wide set of
// revoked token strings. Entries live until the process restarts; revocations
// are not persisted.
type revocationRegistry struct {
	mu      sync.RWMutex
	revoked map[string]struct{}
}

// NewRevocationRegistry is the constructor for revocationRegistry.
// The registry is shared by every request handler and safe for concurrent use.
func NewRevocationRegistry() service.TokenRevoker {
	return &revocationRegistry{
		revoked: make(map[string]struct{}),
	}
}

// Revoke inserts the token into the registry. Idempotent.
func (r *revocationRegistry) Revoke(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.revoked[token] = struct{}{}
}

// IsRevoked reports whether the token has been revoked.
func (r *revocationRegistry) IsRevoked(token string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.revoked[token]

	return ok
}
