package query

import (
	"sort"
	"time"

	"ckg/internal/kg"
	"ckg/internal/storage"
)

// TimelineEvent is one entry in an entity's evolution history.
type TimelineEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"` // "modified", "refactored", "clone_detected", "debt_introduced"
	Detail    string    `json:"detail,omitempty"`
}

// Timeline is the merged evolution history of one entity.
type Timeline struct {
	EntityID  string          `json:"entityId"`
	Events    []TimelineEvent `json:"events"`
	ChurnRate float64         `json:"churnRate"`
	Stability float64         `json:"stability"`
}

// churnWindowDays is the lookback window for churn rate.
const churnWindowDays = 30

// Timeline assembles diff history, clone detections, and debt
// introduction into one chronological view.
func (e *Engine) Timeline(entityID string) (*Timeline, error) {
	diffs, err := e.db.GetDiffRecords(entityID, 0)
	if err != nil {
		return nil, err
	}
	cloneEdges, err := e.db.GetKnowledgeEdges(storage.KnowledgeEdgeFilter{EdgeType: kg.EdgeCloneOf})
	if err != nil {
		return nil, err
	}
	debt, err := e.db.GetDebtMetrics(entityID, 1)
	if err != nil {
		return nil, err
	}
	return AssembleTimeline(entityID, diffs, cloneEdges, debt, time.Now().UTC()), nil
}

// AssembleTimeline merges the signal streams for one entity into a
// chronologically sorted timeline. Churn rate is the number of diff
// records inside the trailing window divided by the window length.
func AssembleTimeline(entityID string, diffs []kg.DiffRecord, cloneEdges []kg.Edge, debt []kg.DebtMetrics, now time.Time) *Timeline {
	events := make([]TimelineEvent, 0, len(diffs)+2)

	recentDiffs := 0
	windowStart := now.AddDate(0, 0, -churnWindowDays)
	for _, d := range diffs {
		kind := "modified"
		if d.ChangeCategory == "refactored" {
			kind = "refactored"
		}
		events = append(events, TimelineEvent{
			Timestamp: d.Timestamp,
			Kind:      kind,
			Detail:    d.CommitHash,
		})
		if d.Timestamp.After(windowStart) {
			recentDiffs++
		}
	}

	for _, edge := range cloneEdges {
		if edge.SourceID != entityID && edge.TargetID != entityID {
			continue
		}
		other := edge.TargetID
		if other == entityID {
			other = edge.SourceID
		}
		events = append(events, TimelineEvent{
			Timestamp: edge.ComputedAt,
			Kind:      "clone_detected",
			Detail:    other,
		})
	}

	for _, m := range debt {
		if m.EntityID == entityID && m.Total() > 50 {
			events = append(events, TimelineEvent{
				Timestamp: now,
				Kind:      "debt_introduced",
			})
			break
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	churnRate := float64(recentDiffs) / churnWindowDays
	instability := churnRate * 10
	if instability > 1 {
		instability = 1
	}
	stability := 1 - instability
	if stability < 0 {
		stability = 0
	}

	return &Timeline{
		EntityID:  entityID,
		Events:    events,
		ChurnRate: churnRate,
		Stability: stability,
	}
}
