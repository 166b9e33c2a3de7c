package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "creator-discovery",
		Short:        "Brand-mention heatmaps over a video library",
		SilenceUsage: true,
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.AddCommand(newMatrixCmd(), newSeekCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newMatrixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "matrix",
		Short:        "Build a bucketed brand-exposure matrix and write it as JSON",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runMatrix,
	}

	addSharedFlags(cmd)
	cmd.Flags().String("view", "item", "Aggregation view: item or library")
	cmd.Flags().Bool("total", false, "Prefix the matrix with a synthetic total row")
	cmd.Flags().String("out", "", "Output directory (default from config)")

	return cmd
}

func newSeekCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "seek",
		Short:        "Resolve a clicked matrix cell to a playback window",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runSeek,
	}

	addSharedFlags(cmd)
	cmd.Flags().String("brand", "", "Brand row the click landed on")
	cmd.Flags().Int("column", -1, "Clicked column index")
	_ = cmd.MarkFlagRequired("brand")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}

func addSharedFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to a YAML config file")
	cmd.Flags().String("content", "", "Content id to aggregate")
	cmd.Flags().Int("buckets", 0, "Columns per row (default from config)")
	cmd.Flags().StringSlice("brands", nil, "Brand allow-list")
	cmd.Flags().Float64("min-duration", 0, "Drop events shorter than this many seconds")
	cmd.Flags().Float64("from", 0, "Keep only events overlapping [from, to) seconds")
	cmd.Flags().Float64("to", 0, "Upper window bound in seconds (0 = open-ended)")
	cmd.Flags().BoolP("verbose", "v", false, "Log aggregation trace events")
}
