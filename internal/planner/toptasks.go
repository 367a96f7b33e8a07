package planner

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alignai/alignai/internal/model"
)

const (
	ScopeToday = "today"
	ScopeWeek  = "week"
)

// NormalizeScope maps any non-"week" scope value to "today".
func NormalizeScope(scope string) string {
	if strings.ToLower(strings.TrimSpace(scope)) == ScopeWeek {
		return ScopeWeek
	}
	return ScopeToday
}

func sortEventsByStart(events []model.CalendarEvent) []model.CalendarEvent {
	sorted := make([]model.CalendarEvent, 0, len(events))
	for _, ev := range events {
		if ev.Status == "cancelled" {
			continue
		}
		sorted = append(sorted, ev)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, iok := parseInstant(sorted[i].Start)
		tj, jok := parseInstant(sorted[j].Start)
		if iok != jok {
			return iok
		}
		return ti.Before(tj)
	})
	return sorted
}

// BuildFallbackTasks derives a deterministic ranking straight from the
// week's events: start-time order, scoped to today when requested, rank one
// marked high.
func BuildFallbackTasks(events []model.CalendarEvent, scope, todayDateKey string, loc *time.Location) []model.TopTask {
	sorted := sortEventsByStart(events)

	scoped := sorted
	if scope == ScopeToday {
		scoped = nil
		for _, ev := range sorted {
			if ev.DateKey == todayDateKey {
				scoped = append(scoped, ev)
			}
		}
	}

	tasks := []model.TopTask{}
	for i, ev := range scoped {
		if i == maxTopTasks {
			break
		}
		tasks = append(tasks, fallbackTask(ev, i, todayDateKey, loc))
	}
	return tasks
}

func fallbackTask(ev model.CalendarEvent, rank int, todayDateKey string, loc *time.Location) model.TopTask {
	title := ev.Summary
	if title == "" {
		title = "(no title)"
	}

	importance := model.ImportanceMedium
	if rank == 0 {
		importance = model.ImportanceHigh
	}

	var reason string
	if ev.DateKey == todayDateKey {
		reason = "On your calendar today"
	} else {
		reason = "Coming up on " + ev.DateKey
	}
	if ev.Location != "" {
		reason += " at " + ev.Location
	}

	return model.TopTask{
		Title:         title,
		Reason:        reason,
		Importance:    importance,
		SourceEventID: ev.ID,
		TargetDate:    ev.DateKey,
		Time:          eventTimeRange(ev, loc),
	}
}

// taskIdentity is the dedup key for merging: the source-event reference
// when present, else a composite of the textual fields plus the positional
// index so two bare fallback entries never collide spuriously.
func taskIdentity(t model.TopTask, idx int) string {
	if t.SourceEventID != "" {
		return "id:" + t.SourceEventID
	}
	return "text:" + strings.ToLower(t.Title) + "|" + t.TargetDate + "|" + t.Time + "|" + strconv.Itoa(idx)
}

// filterTasksToScope drops model tasks that fall outside the requested
// window. In today scope a task survives on a matching target date, or,
// absent one, on a source event that maps to today. Tasks failing both
// checks are dropped even if the model considered them relevant.
func filterTasksToScope(tasks []model.TopTask, scope, todayDateKey string, dateKeyByEventID map[string]string) []model.TopTask {
	if scope != ScopeToday {
		return tasks
	}
	kept := []model.TopTask{}
	for _, t := range tasks {
		if t.TargetDate == todayDateKey {
			kept = append(kept, t)
			continue
		}
		if t.TargetDate == "" && t.SourceEventID != "" && dateKeyByEventID[t.SourceEventID] == todayDateKey {
			kept = append(kept, t)
		}
	}
	return kept
}

// MergeTopTasks keeps model-approved tasks first in order, then fills the
// remaining slots from the fallback ranking, deduplicated by identity.
func MergeTopTasks(approved, fallback []model.TopTask) []model.TopTask {
	merged := []model.TopTask{}
	seen := map[string]struct{}{}

	for i, t := range approved {
		id := taskIdentity(t, i)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, t)
		if len(merged) == maxTopTasks {
			return merged
		}
	}

	for i, t := range fallback {
		id := taskIdentity(t, i)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, t)
		if len(merged) == maxTopTasks {
			break
		}
	}
	return merged
}

func buildDateKeyIndex(events []model.CalendarEvent) map[string]string {
	idx := make(map[string]string, len(events))
	for _, ev := range events {
		if ev.ID != "" {
			idx[ev.ID] = ev.DateKey
		}
	}
	return idx
}
