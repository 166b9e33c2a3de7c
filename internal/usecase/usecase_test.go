package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/mrnkim/creator-discovery/internal/domain/heatmap"
	"github.com/mrnkim/creator-discovery/internal/ingest"
	"github.com/mrnkim/creator-discovery/internal/types"
)

type fakeSource struct {
	mentions map[string][]ingest.RawMention
	calls    int
	err      error
}

func (f *fakeSource) ExtractMentions(_ context.Context, contentID string) ([]ingest.RawMention, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.mentions[contentID], nil
}

type fakeLibrary struct {
	metas map[string]types.ContentMeta
}

func (f fakeLibrary) ListContent(_ context.Context) ([]types.ContentMeta, error) {
	out := make([]types.ContentMeta, 0, len(f.metas))
	// stable order for assertions
	for _, id := range []string{"v1", "v2", "v3"} {
		if m, ok := f.metas[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f fakeLibrary) GetContent(_ context.Context, id string) (types.ContentMeta, error) {
	m, ok := f.metas[id]
	if !ok {
		return types.ContentMeta{}, errors.New("unknown content")
	}
	return m, nil
}

type memCache struct {
	entries map[string][]types.Event
	puts    int
}

func newMemCache() *memCache { return &memCache{entries: map[string][]types.Event{}} }

func (c *memCache) Get(_ context.Context, id string) ([]types.Event, bool, error) {
	e, ok := c.entries[id]
	return e, ok, nil
}

func (c *memCache) Put(_ context.Context, id string, events []types.Event) error {
	c.puts++
	c.entries[id] = events
	return nil
}

func testDeps() (Deps, *fakeSource, *memCache) {
	src := &fakeSource{mentions: map[string][]ingest.RawMention{
		"v1": {
			{Brand: "Acme", Start: 22.0, End: 28.0, Description: "logo"},
			{Brand: "Globex", Start: 40.0, End: 41.0},
		},
		"v2": {
			{Brand: "Acme", Start: 5.0, End: 15.0},
		},
	}}
	lib := fakeLibrary{metas: map[string]types.ContentMeta{
		"v1": {ID: "v1", Label: "Launch", DurationSec: 100},
		"v2": {ID: "v2", Label: "Teaser", DurationSec: 100},
		"v3": {ID: "v3", Label: "Broken", DurationSec: 0},
	}}
	cache := newMemCache()
	return Deps{Source: src, Library: lib, Cache: cache}, src, cache
}

func TestBrandMatrix_ItemView(t *testing.T) {
	t.Parallel()

	deps, _, _ := testDeps()
	uc := New(deps)

	m, err := uc.BrandMatrix(context.Background(), MatrixInput{ContentID: "v1", Buckets: 10})
	if err != nil {
		t.Fatalf("BrandMatrix: %v", err)
	}
	if m.View != "item" || m.Buckets != 10 {
		t.Fatalf("unexpected matrix header: %+v", m)
	}
	if len(m.Rows) != 2 {
		t.Fatalf("expected 2 brand rows, got %d", len(m.Rows))
	}
	// Acme has 6s exposure in bucket 2, Globex 1s in bucket 4; sort puts Acme first.
	if m.Rows[0].ID != "Acme" {
		t.Fatalf("expected Acme first, got %s", m.Rows[0].ID)
	}
	if m.Rows[0].Cells[2].Value != 6 {
		t.Fatalf("Acme bucket 2 = %v, want 6", m.Rows[0].Cells[2].Value)
	}
}

func TestBrandMatrix_TotalRowPrefix(t *testing.T) {
	t.Parallel()

	deps, _, _ := testDeps()
	uc := New(deps)

	m, err := uc.BrandMatrix(context.Background(), MatrixInput{
		ContentID: "v1", Buckets: 10, IncludeTotal: true,
	})
	if err != nil {
		t.Fatalf("BrandMatrix: %v", err)
	}
	if m.Rows[0].ID != heatmap.TotalRowID {
		t.Fatalf("expected total row first, got %s", m.Rows[0].ID)
	}
	if m.Rows[0].Cells[2].Value != 6 {
		t.Fatalf("total bucket 2 = %v, want 6", m.Rows[0].Cells[2].Value)
	}
	if len(m.Rows) != 3 {
		t.Fatalf("expected total + 2 brand rows, got %d", len(m.Rows))
	}
}

func TestBrandMatrix_RequiresContentID(t *testing.T) {
	t.Parallel()

	deps, _, _ := testDeps()
	if _, err := New(deps).BrandMatrix(context.Background(), MatrixInput{}); err == nil {
		t.Fatalf("expected error for missing content id")
	}
}

func TestBrandMatrix_ZeroDurationDegrades(t *testing.T) {
	t.Parallel()

	deps, src, _ := testDeps()
	src.mentions["v3"] = []ingest.RawMention{{Brand: "Acme", Start: 0.0, End: 5.0}}
	uc := New(deps)

	m, err := uc.BrandMatrix(context.Background(), MatrixInput{ContentID: "v3", Buckets: 10})
	if err != nil {
		t.Fatalf("BrandMatrix: %v", err)
	}
	if len(m.Rows) != 0 {
		t.Fatalf("expected no rows for zero-duration content, got %d", len(m.Rows))
	}
}

func TestLibraryMatrix(t *testing.T) {
	t.Parallel()

	deps, _, _ := testDeps()
	uc := New(deps)

	m, err := uc.LibraryMatrix(context.Background(), MatrixInput{Buckets: 10})
	if err != nil {
		t.Fatalf("LibraryMatrix: %v", err)
	}
	if m.View != "library" {
		t.Fatalf("unexpected view: %s", m.View)
	}
	if len(m.Rows) != 3 {
		t.Fatalf("expected 3 content rows, got %d", len(m.Rows))
	}
	// v2's [5,15] event sums 10s of overlap; v1 sums 7s; v3 is empty.
	if m.Rows[0].ID != "v2" || m.Rows[1].ID != "v1" || m.Rows[2].ID != "v3" {
		t.Fatalf("unexpected exposure order: %s, %s, %s", m.Rows[0].ID, m.Rows[1].ID, m.Rows[2].ID)
	}
	if got := m.Rows[0].Cells[0].Value; got != 5 {
		t.Fatalf("v2 bucket 0 = %v, want 5", got)
	}
	if len(m.Rows[2].Cells) != 10 {
		t.Fatalf("empty row should still be %d columns wide, got %d", 10, len(m.Rows[2].Cells))
	}
}

func TestEventsAreCachedAcrossCalls(t *testing.T) {
	t.Parallel()

	deps, src, cache := testDeps()
	uc := New(deps)
	ctx := context.Background()

	if _, err := uc.BrandMatrix(ctx, MatrixInput{ContentID: "v1", Buckets: 10}); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := uc.BrandMatrix(ctx, MatrixInput{ContentID: "v1", Buckets: 10}); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if src.calls != 1 {
		t.Fatalf("expected 1 extraction call, got %d", src.calls)
	}
	if cache.puts != 1 {
		t.Fatalf("expected 1 cache write, got %d", cache.puts)
	}
}

func TestSeek_ResolvesClickedCell(t *testing.T) {
	t.Parallel()

	deps, _, _ := testDeps()
	uc := New(deps)

	win, ok, err := uc.Seek(context.Background(), SeekInput{
		ContentID: "v1", Brand: "Acme", Column: 2, Buckets: 10,
	})
	if err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if !ok {
		t.Fatalf("expected a playback window")
	}
	if win.StartSec != 22 || win.EndSec != 28 || win.ContentID != "v1" {
		t.Fatalf("unexpected window: %+v", win)
	}
}

func TestSeek_NoOps(t *testing.T) {
	t.Parallel()

	deps, _, _ := testDeps()
	uc := New(deps)
	ctx := context.Background()

	cases := []struct {
		name string
		in   SeekInput
	}{
		{"total row", SeekInput{ContentID: "v1", Brand: heatmap.TotalRowID, Column: 2, Buckets: 10}},
		{"empty column", SeekInput{ContentID: "v1", Brand: "Acme", Column: 7, Buckets: 10}},
		{"unknown brand", SeekInput{ContentID: "v1", Brand: "Umbrella", Column: 2, Buckets: 10}},
		{"filtered away", SeekInput{
			ContentID: "v1", Brand: "Acme", Column: 2, Buckets: 10,
			Filter: heatmap.Filter{MinDurationSec: 60},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			win, ok, err := uc.Seek(ctx, tc.in)
			if err != nil {
				t.Fatalf("Seek: %v", err)
			}
			if ok {
				t.Fatalf("expected no-op, got %+v", win)
			}
		})
	}
}

func TestSeek_LooseBrandMatch(t *testing.T) {
	t.Parallel()

	deps, src, _ := testDeps()
	src.mentions["v1"] = []ingest.RawMention{
		{Brand: "Nike Air", Start: 22.0, End: 28.0},
	}
	uc := New(deps)

	win, ok, err := uc.Seek(context.Background(), SeekInput{
		ContentID: "v1", Brand: "nike", Column: 2, Buckets: 10,
	})
	if err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if !ok || win.Brand != "Nike Air" {
		t.Fatalf("expected loose match to Nike Air, got ok=%v %+v", ok, win)
	}
}

func TestSeek_SourceErrorPropagates(t *testing.T) {
	t.Parallel()

	deps, src, _ := testDeps()
	src.err = errors.New("analysis service down")
	uc := New(deps)

	if _, _, err := uc.Seek(context.Background(), SeekInput{
		ContentID: "v1", Brand: "Acme", Column: 2, Buckets: 10,
	}); err == nil {
		t.Fatalf("expected extraction error to propagate")
	}
}
