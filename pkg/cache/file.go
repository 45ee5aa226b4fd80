package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileStore keeps artifacts as JSON files under a directory, one
// subdirectory per output format. Grouping by format keeps the layout
// inspectable and lets `cache clear` report what it removed.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed artifact store rooted at dir.
// The directory is created if it does not exist.
func NewFileStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// storedArtifact is the on-disk shape: the artifact plus its expiry.
type storedArtifact struct {
	Artifact
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves an artifact. An unreadable, mismatched or expired entry is
// treated as a miss and removed.
func (s *FileStore) Get(ctx context.Context, dotHash, format string, detailed bool) (*Artifact, bool, error) {
	path := s.path(dotHash, format, detailed)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry storedArtifact
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	// An entry whose recorded inputs disagree with its address is stale
	// debris from an older layout.
	if entry.DotHash != dotHash || entry.Format != format || entry.Detailed != detailed {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return &entry.Artifact, true, nil
}

// Put stores an artifact under its own DotHash/Format/Detailed address.
func (s *FileStore) Put(ctx context.Context, a *Artifact, ttl time.Duration) error {
	entry := storedArtifact{Artifact: *a}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := s.path(a.DotHash, a.Format, a.Detailed)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Delete removes an artifact.
func (s *FileStore) Delete(ctx context.Context, dotHash, format string, detailed bool) error {
	err := os.Remove(s.path(dotHash, format, detailed))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for a file store.
func (s *FileStore) Close() error {
	return nil
}

// path places an artifact at <dir>/<format>/<dotHash>[-detailed].json.
func (s *FileStore) path(dotHash, format string, detailed bool) string {
	name := dotHash
	if detailed {
		name += "-detailed"
	}
	return filepath.Join(s.dir, format, name+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
