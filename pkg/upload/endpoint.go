package upload

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/Bynder/bynder-go-sdk/pkg/transport"
)

// EndpointPath returns the closest storage endpoint as a JSON string.
const EndpointPath = "/api/upload/endpoint"

// EndpointCache memoizes the closest storage endpoint for the lifetime of the client.
// Concurrent first calls share one request; failures are not cached.
type EndpointCache struct {
	sender transport.Sender
	value  atomic.Pointer[string]
	group  singleflight.Group
}

// NewEndpointCache returns an empty cache.
func NewEndpointCache(sender transport.Sender) *EndpointCache {
	return &EndpointCache{sender: sender}
}

// Get returns the cached endpoint, fetching it on first use.
func (c *EndpointCache) Get(ctx context.Context) (string, error) {
	if v := c.value.Load(); v != nil {
		return *v, nil
	}

	v, err, _ := c.group.Do("endpoint", func() (any, error) {
		if v := c.value.Load(); v != nil {
			return *v, nil
		}

		endpoint, err := transport.SendJSON[string](ctx, c.sender, transport.Get(EndpointPath, nil))
		if err != nil {
			return "", fmt.Errorf("get upload endpoint: %w", err)
		}

		endpoint = strings.TrimSpace(endpoint)
		if endpoint == "" {
			return "", fmt.Errorf("get upload endpoint: empty answer")
		}

		c.value.Store(&endpoint)

		return endpoint, nil
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}

// Reset drops the cached endpoint.
func (c *EndpointCache) Reset() {
	c.value.Store(nil)
}
