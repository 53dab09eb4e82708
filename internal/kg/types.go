// Package kg defines the typed knowledge graph data model: knowledge edges,
// cross-graph edges, importance profiles, and the raw signal records the
// synthesizer consumes.
package kg

import (
	"time"
)

// EntityType identifies what kind of entity a node represents.
type EntityType string

const (
	EntityFunction  EntityType = "function"
	EntityClass     EntityType = "class"
	EntityFile      EntityType = "file"
	EntityDirectory EntityType = "directory"
	EntityAuthor    EntityType = "author"
	EntityDecision  EntityType = "decision"
	EntityClaim     EntityType = "claim"
)

// EdgeType is the closed set of knowledge edge relations.
type EdgeType string

const (
	EdgeImports     EdgeType = "imports"
	EdgeCalls       EdgeType = "calls"
	EdgeExtends     EdgeType = "extends"
	EdgeImplements  EdgeType = "implements"
	EdgeCloneOf     EdgeType = "clone_of"
	EdgeDebtRelated EdgeType = "debt_related"
	EdgeAuthoredBy  EdgeType = "authored_by"
	EdgeReviewedBy  EdgeType = "reviewed_by"
	EdgeEvolvedFrom EdgeType = "evolved_from"
	EdgeCoChanged   EdgeType = "co_changed"
	EdgeTests       EdgeType = "tests"
	EdgeDocuments   EdgeType = "documents"
	EdgeDependsOn   EdgeType = "depends_on"
	EdgeSimilarTo   EdgeType = "similar_to"
	EdgePartOf      EdgeType = "part_of"
)

// EdgeTypes lists all knowledge edge types in a stable order.
var EdgeTypes = []EdgeType{
	EdgeImports, EdgeCalls, EdgeExtends, EdgeImplements, EdgeCloneOf,
	EdgeDebtRelated, EdgeAuthoredBy, EdgeReviewedBy, EdgeEvolvedFrom,
	EdgeCoChanged, EdgeTests, EdgeDocuments, EdgeDependsOn, EdgeSimilarTo,
	EdgePartOf,
}

// ImpactWeight returns the intrinsic change-impact weight of an edge type.
// Structural relations propagate change more strongly than statistical ones.
func (t EdgeType) ImpactWeight() float64 {
	switch t {
	case EdgeExtends:
		return 0.95
	case EdgeImplements, EdgeImports:
		return 0.9
	case EdgeCalls:
		return 0.85
	case EdgeDependsOn:
		return 0.8
	case EdgeTests:
		return 0.75
	case EdgePartOf:
		return 0.7
	case EdgeEvolvedFrom:
		return 0.65
	case EdgeCoChanged:
		return 0.6
	case EdgeCloneOf:
		return 0.55
	case EdgeDocuments, EdgeSimilarTo:
		return 0.5
	case EdgeDebtRelated:
		return 0.45
	case EdgeAuthoredBy, EdgeReviewedBy:
		return 0.3
	default:
		return 0.5
	}
}

// Edge is a typed, weighted, confidence-scored relationship between two
// entities. Edges are immutable once computed; a rebuild regenerates and
// re-upserts the full set.
type Edge struct {
	ID         string                 `json:"id"`
	SourceID   string                 `json:"sourceId"`
	TargetID   string                 `json:"targetId"`
	SourceType EntityType             `json:"sourceType"`
	TargetType EntityType             `json:"targetType"`
	Type       EdgeType               `json:"edgeType"`
	Weight     float64                `json:"weight"`
	Confidence float64                `json:"confidence"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	ComputedAt time.Time              `json:"computedAt"`
}

// GraphType identifies which conceptual graph an entity belongs to.
type GraphType string

const (
	GraphCode      GraphType = "code"
	GraphRationale GraphType = "rationale"
	GraphEpistemic GraphType = "epistemic"
	GraphOrg       GraphType = "org"
)

// CrossGraphEdgeType is the closed set of cross-graph relations.
type CrossGraphEdgeType string

const (
	CrossDocumentedByDecision  CrossGraphEdgeType = "documented_by_decision"
	CrossConstrainedByDecision CrossGraphEdgeType = "constrained_by_decision"
	CrossJustifiedByClaim      CrossGraphEdgeType = "justified_by_claim"
	CrossAssumesClaim          CrossGraphEdgeType = "assumes_claim"
	CrossVerifiedByTest        CrossGraphEdgeType = "verified_by_test"
	CrossEvidencedByCode       CrossGraphEdgeType = "evidenced_by_code"
	CrossOwnedByExpert         CrossGraphEdgeType = "owned_by_expert"
	CrossDecidedBy             CrossGraphEdgeType = "decided_by"
)

// DefaultDamping returns the per-relation importance transfer factor.
func (t CrossGraphEdgeType) DefaultDamping() float64 {
	switch t {
	case CrossDocumentedByDecision:
		return 0.8
	case CrossConstrainedByDecision:
		return 0.9
	case CrossJustifiedByClaim:
		return 0.85
	case CrossAssumesClaim:
		return 0.75
	case CrossVerifiedByTest:
		return 0.7
	case CrossEvidencedByCode:
		return 0.8
	case CrossOwnedByExpert:
		return 0.6
	case CrossDecidedBy:
		return 0.85
	default:
		return 0.5
	}
}

// CrossGraphEdge is a knowledge edge whose endpoints live in different
// conceptual graphs. SourceGraph != TargetGraph always holds.
type CrossGraphEdge struct {
	ID             string                 `json:"id"`
	SourceGraph    GraphType              `json:"sourceGraph"`
	TargetGraph    GraphType              `json:"targetGraph"`
	SourceEntityID string                 `json:"sourceEntityId"`
	TargetEntityID string                 `json:"targetEntityId"`
	Type           CrossGraphEdgeType     `json:"edgeType"`
	Weight         float64                `json:"weight"`
	Confidence     float64                `json:"confidence"`
	ComputedAt     time.Time              `json:"computedAt"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EpistemicImportance carries the claim-centric dimensions of a profile.
type EpistemicImportance struct {
	EpistemicLoad         float64 `json:"epistemicLoad"`
	DefeaterVulnerability float64 `json:"defeaterVulnerability"`
}

// ImportanceProfile is the externally supplied per-entity base importance.
// It is read-only input to propagation and never mutated here.
type ImportanceProfile struct {
	EntityType          EntityType          `json:"entityType"`
	Unified             float64             `json:"unified"`
	Epistemic           EpistemicImportance `json:"epistemicImportance"`
	CrossGraphInfluence float64             `json:"crossGraphInfluence"`
}

// InfluenceDirection marks which side of an edge contributed influence.
type InfluenceDirection string

const (
	InfluenceIncoming InfluenceDirection = "incoming"
	InfluenceOutgoing InfluenceDirection = "outgoing"
)

// InfluenceSource records a single edge's contribution to a propagated score.
type InfluenceSource struct {
	EntityID     string             `json:"entityId"`
	Direction    InfluenceDirection `json:"direction"`
	EdgeType     CrossGraphEdgeType `json:"edgeType"`
	Contribution float64            `json:"contribution"`
}

// PropagationResult is the per-entity outcome of one propagation pass.
type PropagationResult struct {
	EntityID             string            `json:"entityId"`
	Graph                GraphType         `json:"graph"`
	OriginalImportance   float64           `json:"originalImportance"`
	PropagatedImportance float64           `json:"propagatedImportance"`
	InfluenceSources     []InfluenceSource `json:"influenceSources"`
	ImportanceDelta      float64           `json:"importanceDelta"`
}

// RiskLevel classifies an epistemic risk score.
type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskMedium   RiskLevel = "medium"
	RiskLow      RiskLevel = "low"
)

// EpistemicRisk flags a claim many things depend on but which has low
// confidence.
type EpistemicRisk struct {
	EntityID         string    `json:"entityId"`
	EpistemicLoad    float64   `json:"epistemicLoad"`
	Confidence       float64   `json:"confidence"`
	RiskScore        float64   `json:"riskScore"`
	RiskLevel        RiskLevel `json:"riskLevel"`
	AffectedEntities []string  `json:"affectedEntities"`
	SuggestedAction  string    `json:"suggestedAction"`
	IdentifiedAt     time.Time `json:"identifiedAt"`
}

// CloneType categorizes clone-pair similarity.
type CloneType string

const (
	CloneExact    CloneType = "exact"
	CloneType1    CloneType = "type1"
	CloneType2    CloneType = "type2"
	CloneType3    CloneType = "type3"
	CloneSemantic CloneType = "semantic"
)

// RefactorWeight ranks clone types by deduplication value.
func (t CloneType) RefactorWeight() float64 {
	switch t {
	case CloneExact:
		return 1.0
	case CloneType1:
		return 0.95
	case CloneType2:
		return 0.8
	case CloneType3:
		return 0.6
	case CloneSemantic:
		return 0.4
	default:
		return 0.4
	}
}

// Entity is a node in the knowledge graph with its containment parent.
type Entity struct {
	ID     string     `json:"id"`
	Type   EntityType `json:"type"`
	Parent string     `json:"parent,omitempty"`
}

// GraphEdge is a raw structural edge from the upstream AST/import source.
type GraphEdge struct {
	SourceID   string     `json:"sourceId"`
	TargetID   string     `json:"targetId"`
	SourceType EntityType `json:"sourceType"`
	TargetType EntityType `json:"targetType"`
	Kind       string     `json:"kind"` // "import", "call", "extends", "implements"
	Confidence float64    `json:"confidence"`
}

// CloneEntry is one detected clone pair.
type CloneEntry struct {
	EntityA    string    `json:"entityA"`
	EntityB    string    `json:"entityB"`
	Similarity float64   `json:"similarity"`
	Type       CloneType `json:"cloneType"`
}

// BlameEntry is one contiguous blame line range attributed to an author.
type BlameEntry struct {
	FilePath  string `json:"filePath"`
	Author    string `json:"author"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
}

// Lines returns the number of lines covered by the entry.
func (b BlameEntry) Lines() int {
	n := b.EndLine - b.StartLine + 1
	if n < 0 {
		return 0
	}
	return n
}

// DiffRecord is one historical change to a file.
type DiffRecord struct {
	FilePath       string    `json:"filePath"`
	ChangeCategory string    `json:"changeCategory"` // "modified", "refactored"
	CommitHash     string    `json:"commitHash"`
	Author         string    `json:"author"`
	Timestamp      time.Time `json:"timestamp"`
}

// TemporalEdge is a mined co-change pair between two files.
type TemporalEdge struct {
	FileA        string  `json:"fileA"`
	FileB        string  `json:"fileB"`
	Strength     float64 `json:"strength"`
	ChangeCount  int     `json:"changeCount"`
	TotalChanges int     `json:"totalChanges"`
}

// TemporalGraph is the output of the co-change miner.
type TemporalGraph struct {
	Edges []TemporalEdge `json:"edges"`
}

// Clamp01 clamps v into [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
