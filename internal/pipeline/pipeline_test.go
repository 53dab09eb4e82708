package pipeline

import (
	"context"
	"testing"

	"ckg/internal/logging"
)

type fakeIndexer struct {
	id       string
	priority int
	probe    bool
	panics   bool
	ran      *[]string
}

func (f *fakeIndexer) ID() string      { return f.id }
func (f *fakeIndexer) Name() string    { return f.id }
func (f *fakeIndexer) Version() string { return "0.0.1" }
func (f *fakeIndexer) Priority() int   { return f.priority }

func (f *fakeIndexer) Probe(ctx context.Context) bool { return f.probe }

func (f *fakeIndexer) Ingest(ctx context.Context) IngestResult {
	*f.ran = append(*f.ran, f.id)
	if f.panics {
		panic("boom")
	}
	return IngestResult{Items: 1}
}

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{Format: logging.HumanFormat, Level: logging.ErrorLevel})
}

func TestRegistryRunsInPriorityOrder(t *testing.T) {
	var ran []string
	r := NewRegistry(testLogger())
	r.Register(&fakeIndexer{id: "kg", priority: 90, probe: true, ran: &ran})
	r.Register(&fakeIndexer{id: "scip", priority: 10, probe: true, ran: &ran})
	r.Register(&fakeIndexer{id: "git", priority: 50, probe: true, ran: &ran})

	reports := r.Run(context.Background())

	if len(reports) != 3 {
		t.Fatalf("Expected 3 reports, got %d", len(reports))
	}
	want := []string{"scip", "git", "kg"}
	for i, id := range want {
		if ran[i] != id {
			t.Errorf("Expected %s at position %d, got %s", id, i, ran[i])
		}
	}
	if reports[0].RunID == "" || reports[0].RunID != reports[2].RunID {
		t.Error("Expected one shared run id across reports")
	}
}

func TestRegistrySkipsFailedProbe(t *testing.T) {
	var ran []string
	r := NewRegistry(testLogger())
	r.Register(&fakeIndexer{id: "offline", priority: 10, probe: false, ran: &ran})

	reports := r.Run(context.Background())
	if len(reports) != 1 || !reports[0].Skipped {
		t.Errorf("Expected skipped report, got %+v", reports)
	}
	if len(ran) != 0 {
		t.Errorf("Skipped indexer must not ingest, ran: %v", ran)
	}
}

func TestRegistryCapturesPanic(t *testing.T) {
	var ran []string
	r := NewRegistry(testLogger())
	r.Register(&fakeIndexer{id: "crashy", priority: 10, probe: true, panics: true, ran: &ran})
	r.Register(&fakeIndexer{id: "steady", priority: 20, probe: true, ran: &ran})

	reports := r.Run(context.Background())
	if len(reports) != 2 {
		t.Fatalf("Expected 2 reports, got %d", len(reports))
	}
	if len(reports[0].Result.Errors) != 1 {
		t.Errorf("Expected panic captured as error, got %+v", reports[0].Result)
	}
	if len(ran) != 2 {
		t.Errorf("Expected the second indexer to still run, ran: %v", ran)
	}
	if reports[1].Result.Items != 1 {
		t.Errorf("Expected second indexer to succeed, got %+v", reports[1].Result)
	}
}
