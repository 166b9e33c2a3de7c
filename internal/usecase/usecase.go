package usecase

import (
	"context"
	"fmt"

	"github.com/mrnkim/creator-discovery/internal/domain/heatmap"
	"github.com/mrnkim/creator-discovery/internal/ingest"
	"github.com/mrnkim/creator-discovery/internal/ports"
	"github.com/mrnkim/creator-discovery/internal/types"
)

type Deps struct {
	Source  ports.MentionSource
	Library ports.ContentLibrary
	Cache   ports.EventCache
	Tracer  heatmap.Tracer
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

// MatrixInput selects what to aggregate. ContentID is required for the
// per-item view and ignored by the library view. Zero Buckets means
// heatmap.DefaultBuckets.
type MatrixInput struct {
	ContentID    string
	Buckets      int
	Filter       heatmap.Filter
	IncludeTotal bool
}

// Matrix is the renderable result: rows all Buckets columns wide, most
// exposed first, optionally prefixed with the synthetic total row.
type Matrix struct {
	View    string      `json:"view"`
	Buckets int         `json:"buckets"`
	Rows    []types.Row `json:"rows"`
}

// BrandMatrix builds the per-item view: one row per brand detected in the
// selected content item.
func (u Usecase) BrandMatrix(ctx context.Context, in MatrixInput) (Matrix, error) {
	if in.ContentID == "" {
		return Matrix{}, fmt.Errorf("content id is required for the item view")
	}
	buckets := bucketsOrDefault(in.Buckets)

	meta, err := u.d.Library.GetContent(ctx, in.ContentID)
	if err != nil {
		return Matrix{}, fmt.Errorf("content metadata for %s: %w", in.ContentID, err)
	}
	events, err := u.eventsFor(ctx, in.ContentID)
	if err != nil {
		return Matrix{}, err
	}
	events = heatmap.FilterEvents(events, in.Filter)

	rows, err := heatmap.BrandRows(events, meta.DurationSec, buckets, u.d.Tracer)
	if err != nil {
		return Matrix{}, err
	}
	return Matrix{View: "item", Buckets: buckets, Rows: withTotal(rows, buckets, in.IncludeTotal)}, nil
}

// LibraryMatrix builds the library view: one row per content item, each
// bucketed over its own duration on the shared percentage axis.
func (u Usecase) LibraryMatrix(ctx context.Context, in MatrixInput) (Matrix, error) {
	buckets := bucketsOrDefault(in.Buckets)

	metas, err := u.d.Library.ListContent(ctx)
	if err != nil {
		return Matrix{}, fmt.Errorf("list content: %w", err)
	}

	items := make([]heatmap.LibraryItem, 0, len(metas))
	for _, m := range metas {
		events, err := u.eventsFor(ctx, m.ID)
		if err != nil {
			return Matrix{}, err
		}
		items = append(items, heatmap.LibraryItem{
			ID:       m.ID,
			Label:    m.Label,
			Duration: m.DurationSec,
			Events:   heatmap.FilterEvents(events, in.Filter),
		})
	}

	rows, err := heatmap.LibraryRows(items, in.Filter.Brands, buckets, u.d.Tracer)
	if err != nil {
		return Matrix{}, err
	}
	return Matrix{View: "library", Buckets: buckets, Rows: withTotal(rows, buckets, in.IncludeTotal)}, nil
}

// SeekInput is a click on the per-item matrix: a brand row and column index.
type SeekInput struct {
	ContentID string
	Brand     string
	Column    int
	Buckets   int
	Filter    heatmap.Filter
}

// Seek resolves a clicked cell back to a playable window. ok is false for
// benign misses: clicks on the total row, on columns no event maps to, or on
// brands whose events were filtered away.
func (u Usecase) Seek(ctx context.Context, in SeekInput) (types.PlaybackWindow, bool, error) {
	if in.ContentID == "" {
		return types.PlaybackWindow{}, false, fmt.Errorf("content id is required")
	}
	if in.Brand == heatmap.TotalRowID {
		// The synthetic total row is never clickable.
		return types.PlaybackWindow{}, false, nil
	}
	buckets := bucketsOrDefault(in.Buckets)

	meta, err := u.d.Library.GetContent(ctx, in.ContentID)
	if err != nil {
		return types.PlaybackWindow{}, false, fmt.Errorf("content metadata for %s: %w", in.ContentID, err)
	}
	events, err := u.eventsFor(ctx, in.ContentID)
	if err != nil {
		return types.PlaybackWindow{}, false, err
	}
	events = heatmap.FilterEvents(events, in.Filter)
	events = heatmap.MatchBrandEvents(events, in.Brand)
	if len(events) == 0 {
		return types.PlaybackWindow{}, false, nil
	}

	return heatmap.ResolveClick(events, in.ContentID, meta.DurationSec, buckets, in.Column, u.d.Tracer)
}

// eventsFor returns the normalized events for one content item, going through
// the cache when one is wired. A failed cache write is traced and otherwise
// ignored: losing a cache entry must not fail the matrix.
func (u Usecase) eventsFor(ctx context.Context, contentID string) ([]types.Event, error) {
	if u.d.Cache != nil {
		if events, ok, err := u.d.Cache.Get(ctx, contentID); err != nil {
			return nil, fmt.Errorf("event cache for %s: %w", contentID, err)
		} else if ok {
			return events, nil
		}
	}

	raw, err := u.d.Source.ExtractMentions(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("extract mentions for %s: %w", contentID, err)
	}
	events := ingest.NormalizeMentions(contentID, raw)

	if u.d.Cache != nil {
		if err := u.d.Cache.Put(ctx, contentID, events); err != nil && u.d.Tracer != nil {
			u.d.Tracer.Trace("events.cache_put_failed", map[string]any{
				"content": contentID, "error": err.Error(),
			})
		}
	}
	return events, nil
}

func bucketsOrDefault(n int) int {
	if n == 0 {
		return heatmap.DefaultBuckets
	}
	return n
}

func withTotal(rows []types.Row, buckets int, include bool) []types.Row {
	if !include || len(rows) == 0 {
		return rows
	}
	return append([]types.Row{heatmap.TotalRow(rows, buckets)}, rows...)
}
