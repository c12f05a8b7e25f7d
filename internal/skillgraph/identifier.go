package skillgraph

import (
	"strings"

	"github.com/google/uuid"
)

// Identifier is a loose reference to a skill as it arrives from upstream:
// a raw string (display name or id), or an object carrying a name and/or
// an id. Zero values mean the field was absent.
type Identifier struct {
	Name string
	ID   string
	Raw  string
}

func NameIdentifier(name string) Identifier {
	return Identifier{Name: name}
}

func IDIdentifier(id string) Identifier {
	return Identifier{ID: id}
}

func RawIdentifier(raw string) Identifier {
	return Identifier{Raw: raw}
}

func (i Identifier) IsZero() bool {
	return strings.TrimSpace(i.Name) == "" &&
		strings.TrimSpace(i.ID) == "" &&
		strings.TrimSpace(i.Raw) == ""
}

// ParseIdentifier maps one decoded JSON value to an Identifier. Strings
// stay raw (name or id, decided at resolution time); objects contribute
// their name/id fields. Anything else yields a zero Identifier, which
// sync paths skip silently.
func ParseIdentifier(v any) Identifier {
	switch t := v.(type) {
	case nil:
		return Identifier{}
	case string:
		return Identifier{Raw: t}
	case Identifier:
		return t
	case map[string]any:
		ident := Identifier{}
		if name, ok := t["name"].(string); ok {
			ident.Name = name
		}
		for _, key := range []string{"id", "_id", "skill_id"} {
			if id, ok := t[key].(string); ok && strings.TrimSpace(id) != "" {
				ident.ID = id
				break
			}
		}
		return ident
	}
	return Identifier{}
}

func ParseIdentifiers(values []any) []Identifier {
	out := make([]Identifier, 0, len(values))
	for _, v := range values {
		out = append(out, ParseIdentifier(v))
	}
	return out
}

// looksLikeSkillID reports whether the string is in the store's id format.
func looksLikeSkillID(s string) bool {
	_, err := uuid.Parse(strings.TrimSpace(s))
	return err == nil
}
