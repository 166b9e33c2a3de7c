package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/mrnkim/creator-discovery/internal/domain/heatmap"
	"github.com/mrnkim/creator-discovery/internal/ports"
	"github.com/mrnkim/creator-discovery/internal/ports/adapters/diskcache"
	"github.com/mrnkim/creator-discovery/internal/ports/adapters/rediscache"
	"github.com/mrnkim/creator-discovery/internal/ports/adapters/twelvelabs"
	"github.com/mrnkim/creator-discovery/internal/types"
	"github.com/mrnkim/creator-discovery/internal/usecase"
)

const (
	ViewItem    = "item"
	ViewLibrary = "library"
)

type Config struct {
	View         string
	ContentID    string
	Buckets      int
	Filter       heatmap.Filter
	IncludeTotal bool
	OutDir       string
	Verbose      bool
	Logf         func(format string, args ...any)

	// CacheDir is the base directory for cached extraction results. If empty,
	// defaults to ".cache". RedisAddr switches the cache to Redis instead.
	CacheDir  string
	RedisAddr string
	CacheTTL  time.Duration

	APIKey       string
	APIBaseURL   string
	APIIndexID   string
	APITimeout   time.Duration
	AllowedHosts []string
}

func (c Config) Validate() error {
	switch c.View {
	case ViewItem:
		if c.ContentID == "" {
			return errors.New("content id is required for the item view")
		}
	case ViewLibrary:
	default:
		return fmt.Errorf("view must be %q or %q, got %q", ViewItem, ViewLibrary, c.View)
	}
	if c.Buckets <= 0 {
		return errors.New("buckets must be > 0")
	}
	if c.APIKey == "" {
		return errors.New("TWELVELABS_API_KEY is required (set it in .env)")
	}
	if c.APIIndexID == "" {
		return errors.New("index id is required")
	}
	return twelvelabs.ValidateBaseURL(c.APIBaseURL, c.AllowedHosts)
}

// Run builds the requested heatmap matrix and writes it as JSON under OutDir.
func Run(ctx context.Context, cfg Config) error {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	uc, cleanup := buildUsecase(cfg, logf)
	defer cleanup()

	in := usecase.MatrixInput{
		ContentID:    cfg.ContentID,
		Buckets:      cfg.Buckets,
		Filter:       cfg.Filter,
		IncludeTotal: cfg.IncludeTotal,
	}

	var (
		m   usecase.Matrix
		err error
	)
	if cfg.View == ViewItem {
		logf("building item matrix for %s", cfg.ContentID)
		m, err = uc.BrandMatrix(ctx, in)
	} else {
		logf("building library matrix")
		m, err = uc.LibraryMatrix(ctx, in)
	}
	if err != nil {
		return err
	}

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	outPath := filepath.Join(outDir, matrixFileName(cfg, time.Now().UTC()))

	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal matrix: %w", err)
	}
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		return err
	}
	logf("matrix written (%d rows x %d buckets): %s", len(m.Rows), m.Buckets, outPath)
	return nil
}

// Seek resolves a clicked cell to a playback window. ok is false for benign
// misses (empty column, filtered brand, the total row).
func Seek(ctx context.Context, cfg Config, brand string, column int) (types.PlaybackWindow, bool, error) {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	uc, cleanup := buildUsecase(cfg, logf)
	defer cleanup()

	return uc.Seek(ctx, usecase.SeekInput{
		ContentID: cfg.ContentID,
		Brand:     brand,
		Column:    column,
		Buckets:   cfg.Buckets,
		Filter:    cfg.Filter,
	})
}

func buildUsecase(cfg Config, logf func(string, ...any)) (usecase.Usecase, func()) {
	api := twelvelabs.New(cfg.APIKey, cfg.APIBaseURL, cfg.APIIndexID, cfg.APITimeout)

	var cache ports.EventCache
	cleanup := func() {}
	if cfg.RedisAddr != "" {
		rc := rediscache.New(cfg.RedisAddr, cfg.CacheTTL)
		cache = rc
		cleanup = func() { _ = rc.Close() }
		logf("event cache: redis %s", cfg.RedisAddr)
	} else {
		baseCache := cfg.CacheDir
		if baseCache == "" {
			baseCache = ".cache"
		}
		dir := filepath.Join(baseCache, "events", hash(cfg.APIIndexID))
		cache = diskcache.New(dir)
		logf("event cache: %s", dir)
	}

	var tracer heatmap.Tracer
	if cfg.Verbose {
		tracer = heatmap.TracerFunc(func(event string, detail map[string]any) {
			logf("trace %s: %v", event, detail)
		})
	}

	return usecase.New(usecase.Deps{
		Source:  api,
		Library: api,
		Cache:   cache,
		Tracer:  tracer,
	}), cleanup
}

func matrixFileName(cfg Config, now time.Time) string {
	scope := "library"
	if cfg.View == ViewItem {
		scope = normalizePathSegment(cfg.ContentID)
		if scope == "" {
			scope = hash(cfg.ContentID)[:6]
		}
	}
	ts := now.UTC().Format("20060102-150405Z")
	return fmt.Sprintf("heatmap-%s-%s.json", scope, ts)
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.MentionSource = (*twelvelabs.Adapter)(nil)
var _ ports.ContentLibrary = (*twelvelabs.Adapter)(nil)
var _ ports.EventCache = (*diskcache.Cache)(nil)
var _ ports.EventCache = (*rediscache.Cache)(nil)
