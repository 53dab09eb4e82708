package kg

import "math"

// DebtMetrics is the fixed 6-dimensional technical debt profile of an entity.
type DebtMetrics struct {
	EntityID     string  `json:"entityId"`
	Complexity   float64 `json:"complexity"`
	Duplication  float64 `json:"duplication"`
	Coupling     float64 `json:"coupling"`
	Coverage     float64 `json:"coverage"`
	Architecture float64 `json:"architecture"`
	Churn        float64 `json:"churn"`
}

// DebtCategories names the vector dimensions in their fixed order.
var DebtCategories = []string{
	"complexity", "duplication", "coupling", "coverage", "architecture", "churn",
}

// Vector returns the debt profile as a fixed-order vector.
func (d DebtMetrics) Vector() [6]float64 {
	return [6]float64{
		d.Complexity, d.Duplication, d.Coupling,
		d.Coverage, d.Architecture, d.Churn,
	}
}

// Total returns the summed debt across all categories.
func (d DebtMetrics) Total() float64 {
	v := d.Vector()
	total := 0.0
	for _, x := range v {
		total += x
	}
	return total
}

// SharedCategories returns the categories where both profiles exceed the
// given threshold.
func (d DebtMetrics) SharedCategories(other DebtMetrics, threshold float64) []string {
	a, b := d.Vector(), other.Vector()
	var shared []string
	for i, name := range DebtCategories {
		if a[i] > threshold && b[i] > threshold {
			shared = append(shared, name)
		}
	}
	return shared
}

// CosineSimilarity computes the cosine of the angle between two debt
// vectors. Returns 0 when either vector is all zeros.
func CosineSimilarity(a, b [6]float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
