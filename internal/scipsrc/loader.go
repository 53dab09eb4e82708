// Package scipsrc ingests a SCIP index as structural signal input for
// the knowledge graph: entities, containment, and import/call/
// implementation edges.
package scipsrc

import (
	"fmt"
	"os"

	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"

	"ckg/internal/errors"
)

// Load reads and parses a SCIP index file.
func Load(path string) (*scippb.Index, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.New(errors.IndexMissing,
			fmt.Sprintf("SCIP index not found at %s", path), err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.InternalError,
			fmt.Sprintf("failed to read SCIP index from %s", path), err)
	}

	var index scippb.Index
	if err := proto.Unmarshal(data, &index); err != nil {
		return nil, errors.New(errors.InternalError,
			fmt.Sprintf("failed to parse SCIP index from %s", path), err)
	}
	return &index, nil
}
