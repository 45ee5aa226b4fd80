// Package cache persists rendered diagram artifacts between runs.
//
// Rendering through Graphviz is the only expensive operation in drawbridge,
// so the CLI keeps every rendered artifact on disk, addressed by the DOT
// text it was rendered from plus the options that shape the output. Two
// implementations are provided: [FileStore] (the CLI default) and
// [NullStore], which disables persistence (--no-cache, tests).
package cache

import (
	"context"
	"time"
)

// Artifact is one rendered output together with the inputs that produced it.
// DotHash, Format and Detailed fully address an artifact: the DOT text
// already reflects the page and the label options used to build it.
type Artifact struct {
	// Format is the output format the artifact was rendered to (svg, png).
	Format string `json:"format"`

	// DotHash is [Hash] of the DOT text the artifact was rendered from.
	DotHash string `json:"dot_hash"`

	// Detailed records whether node labels carried type and id.
	Detailed bool `json:"detailed"`

	// Data is the rendered bytes.
	Data []byte `json:"data"`
}

// Store persists rendered artifacts.
type Store interface {
	// Get retrieves the artifact stored for the same DOT hash, format and
	// label detail. The bool reports whether one was found.
	Get(ctx context.Context, dotHash, format string, detailed bool) (*Artifact, bool, error)

	// Put stores an artifact under its own address. A ttl of zero means no
	// expiration.
	Put(ctx context.Context, a *Artifact, ttl time.Duration) error

	// Delete removes an artifact. Deleting a missing one is not an error.
	Delete(ctx context.Context, dotHash, format string, detailed bool) error

	// Close releases any resources held by the store.
	Close() error
}
