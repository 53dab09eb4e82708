package crossgraph

import (
	"os"
	"path/filepath"
	"testing"

	"ckg/internal/errors"
	"ckg/internal/kg"
)

func writeProfiles(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write profiles: %v", err)
	}
	return path
}

func TestLoadProfileDoc(t *testing.T) {
	path := writeProfiles(t, `{
		"entities": {
			"src/auth.go": {
				"graph": "code",
				"entityType": "file",
				"unified": 0.8,
				"crossGraphInfluence": 0.2,
				"confidence": 0.9
			},
			"claim:sessions-are-sticky": {
				"graph": "epistemic",
				"entityType": "claim",
				"unified": 0.5,
				"epistemicImportance": {
					"epistemicLoad": 0.7,
					"defeaterVulnerability": 0.3
				},
				"confidence": 0.4
			}
		}
	}`)

	doc, err := LoadProfileDoc(path)
	if err != nil {
		t.Fatalf("LoadProfileDoc: %v", err)
	}

	profiles := doc.Profiles()
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	claim := profiles["claim:sessions-are-sticky"]
	if claim.EntityType != kg.EntityClaim {
		t.Errorf("claim entity type = %s", claim.EntityType)
	}
	if claim.Epistemic.EpistemicLoad != 0.7 {
		t.Errorf("epistemic load = %f", claim.Epistemic.EpistemicLoad)
	}

	graphOf := doc.GraphOf()
	if graphOf["src/auth.go"] != kg.GraphCode {
		t.Errorf("graph of src/auth.go = %s", graphOf["src/auth.go"])
	}
	if graphOf["claim:sessions-are-sticky"] != kg.GraphEpistemic {
		t.Errorf("graph of claim = %s", graphOf["claim:sessions-are-sticky"])
	}

	confidences := doc.Confidences()
	if confidences["claim:sessions-are-sticky"] != 0.4 {
		t.Errorf("claim confidence = %f", confidences["claim:sessions-are-sticky"])
	}
}

func TestLoadProfileDocMissingFile(t *testing.T) {
	_, err := LoadProfileDoc(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var ckgErr *errors.CkgError
	if !errors.As(err, &ckgErr) || ckgErr.Code != errors.InvalidScope {
		t.Fatalf("expected InvalidScope, got %v", err)
	}
}

func TestLoadProfileDocEmpty(t *testing.T) {
	path := writeProfiles(t, `{"entities": {}}`)
	if _, err := LoadProfileDoc(path); err == nil {
		t.Fatal("expected error for empty entities")
	}
}
