package kg

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// EdgeID returns the deterministic identifier for a (source, target, type)
// triple. Identical triples always produce the same id, which makes
// upsertKnowledgeEdges idempotent across rebuilds.
func EdgeID(sourceID, targetID string, edgeType EdgeType) string {
	h, _ := blake2b.New256(nil)
	// NUL separators prevent ("ab","c") and ("a","bc") from colliding.
	h.Write([]byte(sourceID))
	h.Write([]byte{0})
	h.Write([]byte(targetID))
	h.Write([]byte{0})
	h.Write([]byte(edgeType))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}

// CrossEdgeID returns the deterministic identifier for a cross-graph edge.
// It is derived from the underlying knowledge edge triple plus the cross
// relation, so reclassification is idempotent too.
func CrossEdgeID(sourceID, targetID string, crossType CrossGraphEdgeType) string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte("x"))
	h.Write([]byte{0})
	h.Write([]byte(sourceID))
	h.Write([]byte{0})
	h.Write([]byte(targetID))
	h.Write([]byte{0})
	h.Write([]byte(crossType))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}
