package cache

import (
	"context"
	"time"
)

// NullStore never persists anything. It backs --no-cache and tests.
type NullStore struct{}

// NewNullStore creates a store that drops every artifact.
func NewNullStore() Store {
	return &NullStore{}
}

// Get always misses.
func (s *NullStore) Get(ctx context.Context, dotHash, format string, detailed bool) (*Artifact, bool, error) {
	return nil, false, nil
}

// Put drops the artifact.
func (s *NullStore) Put(ctx context.Context, a *Artifact, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (s *NullStore) Delete(ctx context.Context, dotHash, format string, detailed bool) error {
	return nil
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)
