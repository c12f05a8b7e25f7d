package content

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Project stores its skill associations as free-text technology names.
// Technologies is the ground truth; SkillIDs is the resolved mirror the
// synchronizer fills after each sync.
type Project struct {
	ID           uuid.UUID
	Title        string
	Description  string
	RepoURL      string
	LiveURL      string
	Technologies []string
	SkillIDs     []uuid.UUID
	IsActive     bool
	Order        int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Certification stores embedded skill objects; the name is the join key,
// there is no guaranteed skill id on the entry.
type Certification struct {
	ID            uuid.UUID
	Title         string
	Issuer        string
	CredentialID  string
	CredentialURL string
	IssuedAt      *time.Time
	Skills        []CertificationSkill
	IsActive      bool
	Order         int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CertificationSkill struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
	Verified    bool   `json:"verified,omitempty"`
}

// Education tolerates a mixed-shape skill list for backward compatibility:
// plain name strings, skill-id strings, or embedded objects.
type Education struct {
	ID           uuid.UUID
	Institution  string
	Degree       string
	FieldOfStudy string
	StartYear    int
	EndYear      int
	Description  string
	Skills       []EducationSkillEntry
	IsActive     bool
	Order        int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EducationSkillEntry is one element of an education record's skill list.
// Legacy rows stored plain strings, either a display name or a skill id;
// newer rows store objects. Both shapes decode here, and untouched scalar
// entries survive a round trip in their original form.
type EducationSkillEntry struct {
	Name        string `json:"name,omitempty"`
	SkillID     string `json:"skill_id,omitempty"`
	Proficiency string `json:"proficiency,omitempty"`
	Verified    bool   `json:"verified,omitempty"`

	scalar string
}

// NewEducationSkillName builds the object form the attach path writes.
func NewEducationSkillName(name, proficiency string, verified bool) EducationSkillEntry {
	return EducationSkillEntry{Name: name, Proficiency: proficiency, Verified: verified}
}

// LegacyEducationSkill builds a scalar-form entry, as found in old rows.
func LegacyEducationSkill(raw string) EducationSkillEntry {
	e := EducationSkillEntry{scalar: raw}
	if _, err := uuid.Parse(strings.TrimSpace(raw)); err == nil {
		e.SkillID = strings.TrimSpace(raw)
	} else {
		e.Name = raw
	}
	return e
}

func (e EducationSkillEntry) IsScalar() bool { return e.scalar != "" }

func (e *EducationSkillEntry) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if strings.HasPrefix(trimmed, `"`) {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		*e = LegacyEducationSkill(raw)
		return nil
	}

	type alias EducationSkillEntry
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*e = EducationSkillEntry(a)
	return nil
}

func (e EducationSkillEntry) MarshalJSON() ([]byte, error) {
	if e.scalar != "" {
		return json.Marshal(e.scalar)
	}
	type alias EducationSkillEntry
	return json.Marshal(alias(e))
}
