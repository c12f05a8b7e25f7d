package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

// Maintenance events pushed to admin dashboards. Best effort: a nil hub
// or a marshal failure silently drops the event.

type SkillSyncEvent struct {
	Type      string `json:"type"`
	Source    string `json:"source"`
	Reference string `json:"reference,omitempty"`
	Synced    int    `json:"synced"`
	Timestamp string `json:"timestamp"`
}

type SkillDeletedEvent struct {
	Type      string `json:"type"`
	SkillID   string `json:"skill_id"`
	Name      string `json:"name"`
	Forced    bool   `json:"forced"`
	Timestamp string `json:"timestamp"`
}

type CleanupEvent struct {
	Type        string         `json:"type"`
	Modified    map[string]int `json:"entities_modified"`
	Deactivated int            `json:"skills_deactivated"`
	Activated   int            `json:"skills_activated"`
	Errors      int            `json:"errors"`
	Timestamp   string         `json:"timestamp"`
}

type ImportEvent struct {
	Type      string `json:"type"`
	Login     string `json:"login"`
	Repos     int    `json:"repos"`
	Skills    int    `json:"skills"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func NotifySkillSync(source, reference string, synced int) {
	publish(SkillSyncEvent{
		Type:      "skills_synced",
		Source:    source,
		Reference: reference,
		Synced:    synced,
		Timestamp: now(),
	})
}

func NotifySkillDeleted(skillID, name string, forced bool) {
	publish(SkillDeletedEvent{
		Type:      "skill_deleted",
		SkillID:   skillID,
		Name:      name,
		Forced:    forced,
		Timestamp: now(),
	})
}

func NotifyCleanup(modified map[string]int, deactivated, activated, errs int) {
	publish(CleanupEvent{
		Type:        "skills_cleanup",
		Modified:    modified,
		Deactivated: deactivated,
		Activated:   activated,
		Errors:      errs,
		Timestamp:   now(),
	})
}

func NotifyImport(login string, repos, skills int) {
	publish(ImportEvent{
		Type:      "github_import",
		Login:     login,
		Repos:     repos,
		Skills:    skills,
		Timestamp: now(),
	})
}

func publish(event any) {
	h := defaultHub.Load()
	if h == nil {
		return
	}
	b, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.Broadcast(b)
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
