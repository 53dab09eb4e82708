package crossgraph

import (
	"sort"
	"time"

	"ckg/internal/kg"
)

// maxAffectedEntities caps the coarse affected-entities listing.
const maxAffectedEntities = 10

// Suggested-action thresholds, checked in fixed priority order.
const (
	urgentConfidence    = 0.2
	highDefeater        = 0.7
	highLoad            = 0.8
	moderateConfidence  = 0.5
	criticalRiskScore   = 0.8
	highRiskScore       = 0.6
	mediumRiskScore     = 0.4
	defaultMinRiskScore = 0.3
)

// DetectRisks scores claim-type entities by how much depends on them
// versus how well supported they are. confidence is taken per entity
// from confidenceOf; entities below minRiskThreshold are dropped.
// Results are sorted by risk score descending.
func DetectRisks(profiles map[string]kg.ImportanceProfile, confidenceOf map[string]float64, minRiskThreshold float64, now time.Time) []kg.EpistemicRisk {
	// The affected-entities proxy: any other entity with nonzero
	// cross-graph influence, capped. Intentionally coarse; this is not
	// a dependency trace.
	influencers := make([]string, 0)
	for id, p := range profiles {
		if p.CrossGraphInfluence > 0 {
			influencers = append(influencers, id)
		}
	}
	sort.Strings(influencers)

	entityIDs := make([]string, 0, len(profiles))
	for id := range profiles {
		entityIDs = append(entityIDs, id)
	}
	sort.Strings(entityIDs)

	risks := make([]kg.EpistemicRisk, 0)
	for _, id := range entityIDs {
		profile := profiles[id]
		if profile.EntityType != kg.EntityClaim {
			continue
		}

		confidence := confidenceOf[id]
		load := profile.Epistemic.EpistemicLoad
		defeater := profile.Epistemic.DefeaterVulnerability

		score := load * (1 - confidence) * (1 + defeater)
		if score < minRiskThreshold {
			continue
		}

		affected := make([]string, 0, maxAffectedEntities)
		for _, other := range influencers {
			if other == id {
				continue
			}
			affected = append(affected, other)
			if len(affected) == maxAffectedEntities {
				break
			}
		}

		risks = append(risks, kg.EpistemicRisk{
			EntityID:         id,
			EpistemicLoad:    load,
			Confidence:       confidence,
			RiskScore:        score,
			RiskLevel:        riskLevel(score),
			AffectedEntities: affected,
			SuggestedAction:  suggestedAction(confidence, defeater, load),
			IdentifiedAt:     now,
		})
	}

	sort.SliceStable(risks, func(i, j int) bool {
		return risks[i].RiskScore > risks[j].RiskScore
	})
	return risks
}

func riskLevel(score float64) kg.RiskLevel {
	switch {
	case score >= criticalRiskScore:
		return kg.RiskCritical
	case score >= highRiskScore:
		return kg.RiskHigh
	case score >= mediumRiskScore:
		return kg.RiskMedium
	default:
		return kg.RiskLow
	}
}

func suggestedAction(confidence, defeater, load float64) string {
	switch {
	case confidence < urgentConfidence:
		return "Urgently revalidate this claim: confidence is close to zero"
	case defeater > highDefeater:
		return "Resolve contradicting evidence before relying on this claim"
	case load > highLoad:
		return "Add independent evidence sources: many conclusions rest on this claim"
	case confidence < moderateConfidence:
		return "Strengthen the evidence base for this claim"
	default:
		return "Monitor this claim periodically"
	}
}
