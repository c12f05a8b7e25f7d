package content

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestEducationSkillEntryDecodesMixedShapes(t *testing.T) {
	id := uuid.NewString()
	raw := `["Go", "` + id + `", {"name": "Rust", "proficiency": "advanced"}]`

	var entries []EducationSkillEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	if entries[0].Name != "Go" || !entries[0].IsScalar() {
		t.Errorf("name string: %+v", entries[0])
	}
	if entries[1].SkillID != id || !entries[1].IsScalar() {
		t.Errorf("id string: %+v", entries[1])
	}
	if entries[2].Name != "Rust" || entries[2].Proficiency != "advanced" || entries[2].IsScalar() {
		t.Errorf("object entry: %+v", entries[2])
	}
}

func TestEducationSkillEntryScalarSurvivesRoundTrip(t *testing.T) {
	raw := `["Go",{"name":"Rust"}]`

	var entries []EducationSkillEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(entries)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != raw {
		t.Errorf("round trip changed the document: %s", out)
	}
}
