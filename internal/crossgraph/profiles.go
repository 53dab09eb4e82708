package crossgraph

import (
	"encoding/json"
	"os"

	"ckg/internal/errors"
	"ckg/internal/kg"
)

// ProfileEntry is one entity's externally computed importance as it appears
// in a profiles document.
type ProfileEntry struct {
	Graph               kg.GraphType           `json:"graph"`
	EntityType          kg.EntityType          `json:"entityType"`
	Unified             float64                `json:"unified"`
	Epistemic           kg.EpistemicImportance `json:"epistemicImportance"`
	CrossGraphInfluence float64                `json:"crossGraphInfluence"`
	Confidence          float64                `json:"confidence"`
}

// ProfileDoc is the JSON document supplying per-entity importance profiles,
// graph membership, and claim confidences for cross-graph analysis.
type ProfileDoc struct {
	Entities map[string]ProfileEntry `json:"entities"`
}

// LoadProfileDoc reads a profiles document from disk.
func LoadProfileDoc(path string) (*ProfileDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.InvalidScope,
			"Cannot read profiles document: "+path, err)
	}

	var doc ProfileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.New(errors.InvalidScope,
			"Profiles document is not valid JSON: "+path, err)
	}
	if len(doc.Entities) == 0 {
		return nil, errors.New(errors.InvalidScope,
			"Profiles document lists no entities", nil)
	}
	return &doc, nil
}

// Profiles returns the per-entity importance profiles.
func (d *ProfileDoc) Profiles() map[string]kg.ImportanceProfile {
	profiles := make(map[string]kg.ImportanceProfile, len(d.Entities))
	for id, e := range d.Entities {
		profiles[id] = kg.ImportanceProfile{
			EntityType:          e.EntityType,
			Unified:             e.Unified,
			Epistemic:           e.Epistemic,
			CrossGraphInfluence: e.CrossGraphInfluence,
		}
	}
	return profiles
}

// GraphOf returns the entity-to-graph membership mapping.
func (d *ProfileDoc) GraphOf() map[string]kg.GraphType {
	graphOf := make(map[string]kg.GraphType, len(d.Entities))
	for id, e := range d.Entities {
		graphOf[id] = e.Graph
	}
	return graphOf
}

// Confidences returns the per-entity confidence scores used by risk detection.
func (d *ProfileDoc) Confidences() map[string]float64 {
	confidences := make(map[string]float64, len(d.Entities))
	for id, e := range d.Entities {
		confidences[id] = e.Confidence
	}
	return confidences
}
