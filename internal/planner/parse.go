package planner

import (
	"encoding/json"
	"strings"
)

// ParseModelJSON decodes model output in two stages: a strict JSON parse,
// then a recovery pass on the substring between the first '{' and the last
// '}'. Returns false when neither stage yields a JSON object, leaving the
// caller to treat the text as a plain reply.
func ParseModelJSON(text string) (map[string]interface{}, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(text), &obj); err == nil {
		return obj, true
	}

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first == -1 || last <= first {
		return nil, false
	}
	if err := json.Unmarshal([]byte(text[first:last+1]), &obj); err != nil {
		return nil, false
	}
	return obj, true
}
