package crossgraph

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"ckg/internal/kg"
)

// TestPropagationProperties verifies invariants that must hold for any
// profile and edge configuration.
func TestPropagationProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	makeInputs := func(sourceUnified, targetUnified, weight, confidence float64) (map[string]kg.ImportanceProfile, []kg.CrossGraphEdge) {
		profiles := map[string]kg.ImportanceProfile{
			"source": {Unified: sourceUnified},
			"target": {Unified: targetUnified},
		}
		edges := []kg.CrossGraphEdge{{
			SourceEntityID: "source",
			TargetEntityID: "target",
			Type:           kg.CrossDocumentedByDecision,
			Weight:         weight,
			Confidence:     confidence,
		}}
		return profiles, edges
	}

	properties.Property("propagated importance stays in [0,1]", prop.ForAll(
		func(sourceUnified, targetUnified, weight, confidence float64) bool {
			profiles, edges := makeInputs(sourceUnified, targetUnified, weight, confidence)
			outcome := Propagate(profiles, nil, edges, DefaultOptions())
			for _, r := range outcome.Results {
				if r.PropagatedImportance < 0 || r.PropagatedImportance > 1 {
					return false
				}
			}
			return true
		},
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
	))

	properties.Property("propagation is pure", prop.ForAll(
		func(sourceUnified, targetUnified, weight, confidence float64) bool {
			profiles, edges := makeInputs(sourceUnified, targetUnified, weight, confidence)
			first := Propagate(profiles, nil, edges, DefaultOptions())
			second := Propagate(profiles, nil, edges, DefaultOptions())
			if len(first.Results) != len(second.Results) {
				return false
			}
			for i := range first.Results {
				if first.Results[i].PropagatedImportance != second.Results[i].PropagatedImportance {
					return false
				}
			}
			return true
		},
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
	))

	properties.Property("profiles are never mutated", prop.ForAll(
		func(sourceUnified, targetUnified float64) bool {
			profiles, edges := makeInputs(sourceUnified, targetUnified, 1, 1)
			Propagate(profiles, nil, edges, DefaultOptions())
			return profiles["source"].Unified == sourceUnified &&
				profiles["target"].Unified == targetUnified
		},
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
	))

	properties.TestingRun(t)
}

// TestRiskScoreProperties verifies risk scoring monotonicity.
func TestRiskScoreProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	score := func(load, confidence, defeater float64) float64 {
		profiles := map[string]kg.ImportanceProfile{
			"claim": {
				EntityType: kg.EntityClaim,
				Epistemic: kg.EpistemicImportance{
					EpistemicLoad:         load,
					DefeaterVulnerability: defeater,
				},
			},
		}
		risks := DetectRisks(profiles, map[string]float64{"claim": confidence}, 0, testNow)
		if len(risks) == 0 {
			return 0
		}
		return risks[0].RiskScore
	}

	properties.Property("risk never decreases with load", prop.ForAll(
		func(load, bump, confidence, defeater float64) bool {
			higher := load + (1-load)*bump
			return score(higher, confidence, defeater) >= score(load, confidence, defeater)
		},
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
	))

	properties.Property("risk never decreases with falling confidence", prop.ForAll(
		func(load, confidence, drop, defeater float64) bool {
			lower := confidence * (1 - drop)
			return score(load, lower, defeater) >= score(load, confidence, defeater)
		},
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
	))

	properties.TestingRun(t)
}
