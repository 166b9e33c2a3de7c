package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrnkim/creator-discovery/internal/config"
	"github.com/mrnkim/creator-discovery/internal/domain/heatmap"
	"github.com/mrnkim/creator-discovery/internal/pipeline"
)

const runTimeout = 30 * time.Minute

func runMatrix(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	view, _ := cmd.Flags().GetString("view")
	cfg.View = view
	cfg.IncludeTotal, _ = cmd.Flags().GetBool("total")
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		cfg.OutDir = out
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
	defer cancel()
	return pipeline.Run(ctx, cfg)
}

func runSeek(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	cfg.View = pipeline.ViewItem

	brand, _ := cmd.Flags().GetString("brand")
	column, _ := cmd.Flags().GetInt("column")

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
	defer cancel()

	win, ok, err := pipeline.Seek(ctx, cfg, brand, column)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "no event maps to column %d for %q\n", column, brand)
		return nil
	}

	b, err := json.MarshalIndent(win, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal playback window: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

// buildConfig merges the config file, environment, and flags into a pipeline
// config. Flags win over the file; the API key is environment-only.
func buildConfig(cmd *cobra.Command) (pipeline.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	fileCfg, err := config.Load(path)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("config: %w", err)
	}

	content, _ := cmd.Flags().GetString("content")
	buckets, _ := cmd.Flags().GetInt("buckets")
	if buckets == 0 {
		buckets = fileCfg.Heatmap.Buckets
	}
	brands, _ := cmd.Flags().GetStringSlice("brands")
	minDur, _ := cmd.Flags().GetFloat64("min-duration")
	from, _ := cmd.Flags().GetFloat64("from")
	to, _ := cmd.Flags().GetFloat64("to")
	verbose, _ := cmd.Flags().GetBool("verbose")

	indexID := fileCfg.API.IndexID
	if v := os.Getenv("TWELVELABS_INDEX_ID"); v != "" {
		indexID = v
	}

	cfg := pipeline.Config{
		ContentID: content,
		Buckets:   buckets,
		Filter: heatmap.Filter{
			Brands:         brands,
			MinDurationSec: minDur,
			FromSec:        from,
			ToSec:          to,
		},
		OutDir:  fileCfg.Output.Dir,
		Verbose: verbose,

		CacheDir:  fileCfg.Cache.Dir,
		RedisAddr: fileCfg.Cache.RedisAddr,
		CacheTTL:  fileCfg.Cache.TTL,

		APIKey:       os.Getenv("TWELVELABS_API_KEY"),
		APIBaseURL:   getenvDefault("TWELVELABS_BASE_URL", fileCfg.API.BaseURL),
		APIIndexID:   indexID,
		APITimeout:   fileCfg.API.Timeout,
		AllowedHosts: append(fileCfg.API.AllowedHosts, envAllowedHosts()...),
	}
	if verbose {
		cfg.Logf = func(format string, args ...any) {
			fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
		}
	}
	return cfg, nil
}

func envAllowedHosts() []string {
	raw := os.Getenv("TWELVELABS_ALLOWED_HOSTS")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
