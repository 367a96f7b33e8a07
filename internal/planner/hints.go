package planner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alignai/alignai/internal/timeutil"
)

var hintTokens = []struct {
	word  string
	delta int
	rx    *regexp.Regexp
}{
	{"today", 0, regexp.MustCompile(`(?i)\btoday\b`)},
	{"tomorrow", 1, regexp.MustCompile(`(?i)\btomorrow\b`)},
	{"yesterday", -1, regexp.MustCompile(`(?i)\byesterday\b`)},
}

// InjectDateHints appends the resolved calendar date next to relative-day
// words in the reply, once per token in fixed order. The substring check
// makes repeated runs a no-op.
func InjectDateHints(reply, todayDateKey string) string {
	for _, tk := range hintTokens {
		if !tk.rx.MatchString(reply) {
			continue
		}
		date := timeutil.ShiftDateKey(todayDateKey, tk.delta)
		if date == "" || strings.Contains(reply, date) {
			continue
		}
		reply += fmt.Sprintf(" (%s: %s)", tk.word, date)
	}
	return reply
}
