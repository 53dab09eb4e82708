package main

import (
	"time"

	"ckg/internal/config"
	"ckg/internal/crossgraph"
	"ckg/internal/kg"
	"ckg/internal/logging"
	"ckg/internal/storage"
)

// loadCrossGraph loads the profiles document, classifies the stored knowledge
// edges into cross-graph edges against it, and assembles propagation options
// from configuration. Shared by the propagate, risks, and trace commands.
func loadCrossGraph(profilesPath string, logger *logging.Logger) (*crossgraph.ProfileDoc, []kg.CrossGraphEdge, crossgraph.Options, *config.Config) {
	db, cfg := mustOpenStore(logger)

	doc, err := crossgraph.LoadProfileDoc(profilesPath)
	if err != nil {
		fail("loading profiles", err)
	}

	edges, err := db.GetKnowledgeEdges(storage.KnowledgeEdgeFilter{})
	if err != nil {
		fail("reading knowledge edges", err)
	}

	crossEdges := crossgraph.Classify(edges, doc.GraphOf(), time.Now().UTC())

	opts := crossgraph.Options{
		MinImportanceThreshold: cfg.Propagation.MinImportanceThreshold,
		ForwardWeight:          cfg.Propagation.ForwardWeight,
		Alpha:                  cfg.Propagation.Alpha,
		NormalizeOutput:        cfg.Propagation.NormalizeOutput,
	}

	overrides, err := config.LoadDampingOverrides(cfg.Propagation.DampingOverridesPath)
	if err != nil {
		fail("loading damping overrides", err)
	}
	if len(overrides.Damping) > 0 {
		opts.DampingOverrides = make(map[kg.CrossGraphEdgeType]float64, len(overrides.Damping))
		for name, d := range overrides.Damping {
			opts.DampingOverrides[kg.CrossGraphEdgeType(name)] = d
		}
	}

	return doc, crossEdges, opts, cfg
}
