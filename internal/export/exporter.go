// Package export serializes the current knowledge edge set as a
// portable snapshot.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"ckg/internal/errors"
	"ckg/internal/kg"
	"ckg/internal/logging"
	"ckg/internal/storage"
	"ckg/internal/version"
)

// Format selects the snapshot serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Options controls a snapshot export.
type Options struct {
	Format   Format
	Compress bool // zstd-compress the output stream
}

// Snapshot is the exported view of the knowledge graph.
type Snapshot struct {
	Version     string               `json:"version" yaml:"version"`
	GeneratedAt time.Time            `json:"generatedAt" yaml:"generatedAt"`
	TotalEdges  int                  `json:"totalEdges" yaml:"totalEdges"`
	EdgeCounts  map[kg.EdgeType]int  `json:"edgeCounts" yaml:"edgeCounts"`
	Edges       []kg.Edge            `json:"edges" yaml:"edges"`
	LastBuild   *storage.BuildSummary `json:"lastBuild,omitempty" yaml:"lastBuild,omitempty"`
}

// Exporter writes knowledge graph snapshots.
type Exporter struct {
	db     *storage.DB
	logger *logging.Logger
}

// NewExporter creates an exporter over the given store.
func NewExporter(db *storage.DB, logger *logging.Logger) *Exporter {
	return &Exporter{db: db, logger: logger}
}

// Export writes a snapshot of the full edge set to w.
func (e *Exporter) Export(w io.Writer, opts Options) error {
	if opts.Format == "" {
		opts.Format = FormatJSON
	}

	edges, err := e.db.GetKnowledgeEdges(storage.KnowledgeEdgeFilter{})
	if err != nil {
		return errors.Wrap(err, errors.ExportFailed)
	}
	counts, err := e.db.CountKnowledgeEdgesByType()
	if err != nil {
		return errors.Wrap(err, errors.ExportFailed)
	}
	lastBuild, err := e.db.GetLastBuildSummary()
	if err != nil {
		return errors.Wrap(err, errors.ExportFailed)
	}

	snapshot := Snapshot{
		Version:     version.Version,
		GeneratedAt: time.Now().UTC(),
		TotalEdges:  len(edges),
		EdgeCounts:  counts,
		Edges:       edges,
		LastBuild:   lastBuild,
	}

	out := w
	var zw *zstd.Encoder
	if opts.Compress {
		zw, err = zstd.NewWriter(w)
		if err != nil {
			return errors.Wrap(err, errors.ExportFailed)
		}
		out = zw
	}

	if err := writeSnapshot(out, snapshot, opts.Format); err != nil {
		if zw != nil {
			zw.Close()
		}
		return err
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return errors.Wrap(err, errors.ExportFailed)
		}
	}

	e.logger.Debug("Snapshot exported", map[string]interface{}{
		"format":     string(opts.Format),
		"compressed": opts.Compress,
		"edges":      len(edges),
	})
	return nil
}

func writeSnapshot(w io.Writer, snapshot Snapshot, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snapshot); err != nil {
			return errors.Wrap(err, errors.ExportFailed)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(snapshot); err != nil {
			return errors.Wrap(err, errors.ExportFailed)
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(err, errors.ExportFailed)
		}
	default:
		return errors.New(errors.ExportFailed, fmt.Sprintf("unknown export format %q", format), nil)
	}
	return nil
}

// ReadSnapshot parses an exported snapshot, transparently handling
// zstd compression.
func ReadSnapshot(r io.Reader, format Format, compressed bool) (*Snapshot, error) {
	in := r
	if compressed {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, errors.ExportFailed)
		}
		defer zr.Close()
		in = zr
	}

	var snapshot Snapshot
	switch format {
	case FormatJSON, "":
		if err := json.NewDecoder(in).Decode(&snapshot); err != nil {
			return nil, errors.Wrap(err, errors.ExportFailed)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(in).Decode(&snapshot); err != nil {
			return nil, errors.Wrap(err, errors.ExportFailed)
		}
	default:
		return nil, errors.New(errors.ExportFailed, fmt.Sprintf("unknown export format %q", format), nil)
	}
	return &snapshot, nil
}
