package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"ckg/internal/pipeline"
	"ckg/internal/scipsrc"
	"ckg/internal/storage"
	"ckg/internal/synth"
	"ckg/internal/temporal"
)

var (
	buildFormat      string
	buildSkipHistory bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Synthesize the knowledge graph",
	Long: `Run the ingestion pipeline: structural SCIP ingestion (when configured),
then full knowledge edge synthesis from all stored signals plus git history.`,
	Run: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildFormat, "format", "json", "Output format (json, human)")
	buildCmd.Flags().BoolVar(&buildSkipHistory, "skip-history", false, "Skip git co-change mining")
	rootCmd.AddCommand(buildCmd)
}

// BuildResponseCLI reports what each pipeline stage did.
type BuildResponseCLI struct {
	Reports   []pipeline.RunReport  `json:"reports"`
	LastBuild *storage.BuildSummary `json:"lastBuild,omitempty"`
}

func runBuild(cmd *cobra.Command, args []string) {
	logger := newLogger(buildFormat)
	db, cfg := mustOpenStore(logger)
	ctx := newContext()

	registry := pipeline.NewRegistry(logger)

	if cfg.Scip.Enabled {
		indexPath := cfg.Scip.IndexPath
		if !filepath.IsAbs(indexPath) {
			indexPath = filepath.Join(cfg.RepoRoot, indexPath)
		}
		registry.Register(scipsrc.NewIndexer(db, indexPath, logger))
	}

	var miner synth.TemporalMiner
	if !buildSkipHistory {
		miner = temporal.NewMiner(cfg.RepoRoot, logger)
	}
	builder := synth.New(db, miner, cfg.Synthesizer, logger)
	registry.Register(pipeline.NewKGIndexer(builder, db))

	reports := registry.Run(ctx)

	lastBuild, err := db.GetLastBuildSummary()
	if err != nil {
		fail("reading build summary", err)
	}

	emit(&BuildResponseCLI{Reports: reports, LastBuild: lastBuild}, buildFormat)
}
