package ports

import (
	"context"

	"github.com/mrnkim/creator-discovery/internal/ingest"
	"github.com/mrnkim/creator-discovery/internal/types"
)

// MentionSource is the external language-model-backed analysis service that
// extracts brand mentions from a content item. It returns the loose wire
// shapes; the ingest package normalizes them before the core sees anything.
type MentionSource interface {
	ExtractMentions(ctx context.Context, contentID string) ([]ingest.RawMention, error)
}

// ContentLibrary is the content metadata source.
type ContentLibrary interface {
	ListContent(ctx context.Context) ([]types.ContentMeta, error)
	GetContent(ctx context.Context, contentID string) (types.ContentMeta, error)
}

// EventCache holds normalized events per content item so repeated matrix
// builds do not re-run extraction. The cache belongs to the data-fetching
// layer; the aggregation core itself never caches.
type EventCache interface {
	Get(ctx context.Context, contentID string) ([]types.Event, bool, error)
	Put(ctx context.Context, contentID string, events []types.Event) error
}
