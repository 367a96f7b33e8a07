package planner

import "strings"

const plannerSystemPrompt = `You are an AI scheduling assistant.
Analyze existing events and suggest realistic improvements.
Respect existing commitments and avoid overlaps.
Return JSON only with this schema:
{
  "reply": "string",
  "suggestedEvents": [
    {"title":"string","start":"ISO-8601","end":"ISO-8601","description":"string","location":"string","reason":"string"}
  ],
  "proposedChanges": [
    {"action":"update|delete","eventId":"string","title":"string","start":"ISO-8601","end":"ISO-8601","description":"string","location":"string","reason":"string"}
  ]
}
For proposedChanges action=delete, include eventId and reason only.
Keep suggestedEvents max 4 and proposedChanges max 3.`

const topTasksSystemPrompt = `You are an AI scheduling assistant.
Pick the most important tasks from the user's calendar events, strictly within the requested scope window.
Return JSON only with this schema:
{
  "summary": "string",
  "topTasks": [
    {"title":"string","reason":"string","importance":"high|medium|low","sourceEventId":"string","targetDate":"YYYY-MM-DD","time":"string"}
  ]
}
Rank by urgency and impact. Keep topTasks max 3.
Set sourceEventId when the task comes from an existing event.`

const (
	missingKeyReply = "OPENAI_API_KEY is not configured. Set it in the server environment to enable AI recommendations."

	smallTalkReply = "Hello! Ask me about your schedule, or tell me what you'd like to plan this week."

	askForSpecificsReply = "I couldn't find anything concrete to act on. Try asking about a specific day, or tell me what you'd like to add, move, or cancel."

	emptyModelReply = "AI returned an empty response."
)

// genericReplyPhrases are low-information template sentences the model tends
// to produce when it has nothing actionable. Matching is substring-based on
// the lowercased reply.
var genericReplyPhrases = []string{
	"how can i help",
	"how may i help",
	"what would you like",
	"let me know how i can",
	"i'm here to help",
	"happy to help",
}

func replyLooksGeneric(reply string) bool {
	lower := strings.ToLower(reply)
	for _, phrase := range genericReplyPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
