package auth

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRevocationRegistry_RevokeAndCheck(t *testing.T) {
	registry := NewRevocationRegistry()

	assert.False(t, registry.IsRevoked("token-a"))

	registry.Revoke("token-a")
	assert.True(t, registry.IsRevoked("token-a"))
	assert.False(t, registry.IsRevoked("token-b"))

	// Revoking twice is a no-op.
	registry.Revoke("token-a")
	assert.True(t, registry.IsRevoked("token-a"))
}

func TestRevocationRegistry_ConcurrentAccess(t *testing.T) {
	registry := NewRevocationRegistry()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		token := fmt.Sprintf("token-%d", i)
		go func() {
			defer wg.Done()
			registry.Revoke(token)
		}()
		go func() {
			defer wg.Done()
			registry.IsRevoked(token)
		}()
	}
	wg.Wait()

	for i := range 50 {
		assert.True(t, registry.IsRevoked(fmt.Sprintf("token-%d", i)))
	}
}
