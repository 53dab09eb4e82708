package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ckg/internal/export"
)

var (
	exportFormat   string
	exportCompress bool
	exportOutput   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the knowledge graph",
	Long:  "Write a snapshot of the full knowledge edge set as JSON or YAML, optionally zstd-compressed",
	Run:   runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Snapshot format (json, yaml)")
	exportCmd.Flags().BoolVar(&exportCompress, "compress", false, "Compress the snapshot with zstd")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	logger := newLogger("human")
	db, _ := mustOpenStore(logger)

	var w io.Writer = os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			fail("creating output file", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	exporter := export.NewExporter(db, logger)
	err := exporter.Export(w, export.Options{
		Format:   export.Format(exportFormat),
		Compress: exportCompress,
	})
	if err != nil {
		fail("exporting snapshot", err)
	}

	if exportOutput != "" {
		fmt.Fprintf(os.Stderr, "Snapshot written to %s\n", exportOutput)
	}
}
