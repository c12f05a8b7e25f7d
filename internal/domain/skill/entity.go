package skill

import (
	"time"

	"github.com/google/uuid"
)

// SourceType names the kind of record a skill reference came from.
type SourceType string

const (
	SourceProject       SourceType = "project"
	SourceCertification SourceType = "certification"
	SourceEducation     SourceType = "education"
	SourceManual        SourceType = "manual"
	SourceGitHub        SourceType = "github"
)

func (t SourceType) Valid() bool {
	switch t {
	case SourceProject, SourceCertification, SourceEducation, SourceManual, SourceGitHub:
		return true
	}
	return false
}

// Source records one justification for a skill's existence: the entity
// (or manual/import action) that referenced it. ReferenceID is opaque;
// entity sources store the entity's uuid, a github source stores the
// profile login, a manual source stores nothing.
type Source struct {
	Type        SourceType
	ReferenceID string
}

type Skill struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Proficiency string
	Level       int
	Description string
	Order       int
	IsActive    bool
	Sources     []Source
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasSource reports whether the (type, referenceID) pair is already recorded.
func (s *Skill) HasSource(t SourceType, referenceID string) bool {
	if s == nil {
		return false
	}
	for _, src := range s.Sources {
		if src.Type == t && src.ReferenceID == referenceID {
			return true
		}
	}
	return false
}

// AddSource appends the pair unless it is already present. At most one
// entry may exist per distinct (type, referenceID).
func (s *Skill) AddSource(t SourceType, referenceID string) bool {
	if s == nil {
		return false
	}
	if s.HasSource(t, referenceID) {
		return false
	}
	s.Sources = append(s.Sources, Source{Type: t, ReferenceID: referenceID})
	return true
}

// RemoveSource drops every entry matching the pair. Removing an absent
// source is a no-op.
func (s *Skill) RemoveSource(t SourceType, referenceID string) bool {
	if s == nil {
		return false
	}
	kept := s.Sources[:0]
	removed := false
	for _, src := range s.Sources {
		if src.Type == t && src.ReferenceID == referenceID {
			removed = true
			continue
		}
		kept = append(kept, src)
	}
	s.Sources = kept
	return removed
}

func (s *Skill) HasManualSource() bool {
	if s == nil {
		return false
	}
	for _, src := range s.Sources {
		if src.Type == SourceManual {
			return true
		}
	}
	return false
}

// ShouldBeActive is the one canonical visibility rule: a skill stays
// visible while at least one active entity references it or an admin
// created it manually. Every code path that changes references derives
// the flag from this, never inline.
func (s *Skill) ShouldBeActive(hasActiveReference bool) bool {
	return hasActiveReference || s.HasManualSource()
}
