// Package diskcache is the default event cache: one JSON file per content
// item under the run cache dir.
package diskcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrnkim/creator-discovery/internal/types"
)

type Cache struct {
	dir string
}

func New(dir string) *Cache { return &Cache{dir: dir} }

func (c *Cache) Get(_ context.Context, contentID string) ([]types.Event, bool, error) {
	b, err := os.ReadFile(c.path(contentID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read event cache: %w", err)
	}
	var events []types.Event
	if err := json.Unmarshal(b, &events); err != nil {
		// A corrupt cache entry is a miss, not a failure.
		return nil, false, nil
	}
	return events, true, nil
}

func (c *Cache) Put(_ context.Context, contentID string, events []types.Event) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	b, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("marshal event cache: %w", err)
	}
	return os.WriteFile(c.path(contentID), b, 0o644)
}

// path keys files by a hash so arbitrary content ids stay filesystem-safe.
func (c *Cache) path(contentID string) string {
	sum := sha256.Sum256([]byte(contentID))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])[:16]+".json")
}
