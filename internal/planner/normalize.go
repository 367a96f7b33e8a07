package planner

import (
	"strconv"
	"strings"

	"github.com/alignai/alignai/internal/model"
)

const (
	maxSuggestedEvents = 4
	maxProposedChanges = 3
	maxTopTasks        = 3
)

// coerceString renders a decoded-JSON value as a trimmed string. Non-scalar
// values become empty, matching the "stringify and trim" contract.
func coerceString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func field(m map[string]interface{}, key string) string {
	return coerceString(m[key])
}

// NormalizePlannerResponse coerces raw model JSON into the canonical
// planner shape. Items missing a required field are dropped; list caps
// prefer earlier entries. It never fails: malformed input yields the empty
// default shape.
func NormalizePlannerResponse(raw map[string]interface{}) model.AIPlannerResult {
	res := model.AIPlannerResult{
		SuggestedEvents: []model.SuggestedEvent{},
		ProposedChanges: []model.ProposedChange{},
	}
	if raw == nil {
		return res
	}

	if reply, ok := raw["reply"].(string); ok {
		res.Reply = strings.TrimSpace(reply)
	}

	if items, ok := raw["suggestedEvents"].([]interface{}); ok {
		for _, it := range items {
			m, ok := it.(map[string]interface{})
			if !ok {
				continue
			}
			ev := model.SuggestedEvent{
				Title:       field(m, "title"),
				Start:       field(m, "start"),
				End:         field(m, "end"),
				Description: field(m, "description"),
				Location:    field(m, "location"),
				Reason:      field(m, "reason"),
			}
			if ev.Title == "" || ev.Start == "" || ev.End == "" {
				continue
			}
			res.SuggestedEvents = append(res.SuggestedEvents, ev)
			if len(res.SuggestedEvents) == maxSuggestedEvents {
				break
			}
		}
	}

	if items, ok := raw["proposedChanges"].([]interface{}); ok {
		for _, it := range items {
			m, ok := it.(map[string]interface{})
			if !ok {
				continue
			}
			ch := model.ProposedChange{
				Action:      strings.ToLower(field(m, "action")),
				EventID:     field(m, "eventId"),
				Title:       field(m, "title"),
				Start:       field(m, "start"),
				End:         field(m, "end"),
				Description: field(m, "description"),
				Location:    field(m, "location"),
				Reason:      field(m, "reason"),
			}
			if ch.EventID == "" || (ch.Action != "update" && ch.Action != "delete") {
				continue
			}
			res.ProposedChanges = append(res.ProposedChanges, ch)
			if len(res.ProposedChanges) == maxProposedChanges {
				break
			}
		}
	}

	return res
}

// normalizeImportance maps model-reported importance through a fixed
// synonym table; anything unrecognized is medium.
func normalizeImportance(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "high", "critical", "urgent", "p1":
		return model.ImportanceHigh
	case "low", "minor", "p3":
		return model.ImportanceLow
	default:
		return model.ImportanceMedium
	}
}

// NormalizeTopTasksResponse coerces the raw top-tasks model JSON. Tasks
// without a title are dropped; at most three are kept.
func NormalizeTopTasksResponse(raw map[string]interface{}) (string, []model.TopTask) {
	tasks := []model.TopTask{}
	if raw == nil {
		return "", tasks
	}

	var summary string
	if s, ok := raw["summary"].(string); ok {
		summary = strings.TrimSpace(s)
	}

	if items, ok := raw["topTasks"].([]interface{}); ok {
		for _, it := range items {
			m, ok := it.(map[string]interface{})
			if !ok {
				continue
			}
			task := model.TopTask{
				Title:         field(m, "title"),
				Reason:        field(m, "reason"),
				Importance:    normalizeImportance(field(m, "importance")),
				SourceEventID: field(m, "sourceEventId"),
				TargetDate:    field(m, "targetDate"),
				Time:          field(m, "time"),
			}
			if task.Title == "" {
				continue
			}
			tasks = append(tasks, task)
			if len(tasks) == maxTopTasks {
				break
			}
		}
	}

	return summary, tasks
}
