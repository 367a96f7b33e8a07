package planner

import (
	"strings"

	"github.com/alignai/alignai/internal/model"
)

// Reconcile removes suggested events that are redundant against proposed
// changes. A message with modification intent clears the suggestion list
// entirely: an edit or delete request must never also spawn a duplicate
// creation suggestion. Otherwise any suggestion whose signature matches an
// update-type change is dropped.
func Reconcile(res model.AIPlannerResult, message string) model.AIPlannerResult {
	if len(res.SuggestedEvents) == 0 || len(res.ProposedChanges) == 0 {
		return res
	}

	if modificationRx.MatchString(message) {
		res.SuggestedEvents = []model.SuggestedEvent{}
		return res
	}

	updates := make(map[string]struct{}, len(res.ProposedChanges))
	for _, ch := range res.ProposedChanges {
		if ch.Action == "update" {
			updates[eventSignature(ch.Title, ch.Start, ch.End)] = struct{}{}
		}
	}
	if len(updates) == 0 {
		return res
	}

	kept := make([]model.SuggestedEvent, 0, len(res.SuggestedEvents))
	for _, ev := range res.SuggestedEvents {
		if _, dup := updates[eventSignature(ev.Title, ev.Start, ev.End)]; dup {
			continue
		}
		kept = append(kept, ev)
	}
	res.SuggestedEvents = kept
	return res
}

func eventSignature(title, start, end string) string {
	return strings.ToLower(title) + "|" + start + "|" + end
}
