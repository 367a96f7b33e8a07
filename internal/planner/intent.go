// Package planner implements the AI response normalization and
// deterministic-override pipeline: intent classification, schedule-lookup
// short-circuiting, model-output normalization, reconciliation, date-hint
// injection and top-task ranking.
package planner

import "regexp"

// IntentKind tags what a chat message is asking for.
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentLookup
	IntentModification
	IntentSmallTalk
)

func (k IntentKind) String() string {
	switch k {
	case IntentLookup:
		return "lookup"
	case IntentModification:
		return "modification"
	case IntentSmallTalk:
		return "smalltalk"
	default:
		return "none"
	}
}

var (
	dayTokenRx = regexp.MustCompile(`(?i)\b(today|tomorrow|yesterday|monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)

	lookupTokenRx = regexp.MustCompile(`(?i)\b(schedule|events?|calendar|busy|free|show|list)\b`)

	interrogativeRx = regexp.MustCompile(`(?i)\b(what'?s?|what is|do i have|anything)\b`)

	modificationRx = regexp.MustCompile(`(?i)\b(move|resched[a-z]*|change|update|edit|modify|delete|remove|cancel|shift|postpone)\b`)

	smallTalkRx = regexp.MustCompile(`(?i)^\s*(hi|hello|hey|yo|hiya|hi there|hello there|good morning|good afternoon|good evening|thanks|thank you|thx)\s*[.!?]*\s*$`)
)

// Classify tags the message with a single intent. Modification intent
// always dominates lookup: an edit request must never take the
// deterministic shortcut.
func Classify(message string) IntentKind {
	if smallTalkRx.MatchString(message) {
		return IntentSmallTalk
	}
	if modificationRx.MatchString(message) {
		return IntentModification
	}
	if dayTokenRx.MatchString(message) &&
		(lookupTokenRx.MatchString(message) || interrogativeRx.MatchString(message)) {
		return IntentLookup
	}
	return IntentNone
}
