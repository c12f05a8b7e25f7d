package usecase

import (
	"strings"

	"portfolio-api/internal/skillgraph"
)

// cleanNames normalizes a raw skill-name list, dropping blanks and
// duplicates while preserving the first-seen casing.
func cleanNames(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		name := skillgraph.CleanName(r)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}

// removedNames returns the entries of before that no longer appear in
// after, compared case-insensitively on cleaned names. These are the
// skills whose source link the caller has to withdraw.
func removedNames(before, after []string) []string {
	keep := make(map[string]struct{}, len(after))
	for _, name := range after {
		keep[strings.ToLower(skillgraph.CleanName(name))] = struct{}{}
	}

	var removed []string
	seen := make(map[string]struct{}, len(before))
	for _, name := range before {
		cleaned := skillgraph.CleanName(name)
		key := strings.ToLower(cleaned)
		if cleaned == "" {
			continue
		}
		if _, ok := keep[key]; ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		removed = append(removed, cleaned)
	}
	return removed
}

func nameIdentifiers(names []string) []skillgraph.Identifier {
	out := make([]skillgraph.Identifier, 0, len(names))
	for _, n := range names {
		out = append(out, skillgraph.NameIdentifier(n))
	}
	return out
}
