package planner

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/alignai/alignai/internal/ai"
	"github.com/alignai/alignai/internal/model"
	"github.com/alignai/alignai/internal/timeutil"
)

const fallbackTasksSummary = "Here are your top priorities based on your calendar."

// Planner sequences the deterministic pipeline around a single optional
// model call: shortcut check, completion, normalization, reconciliation and
// hint injection. A nil completer means no model provider is configured and
// every path degrades to its deterministic reply.
type Planner struct {
	completer ai.Completer
	timezone  string
	logger    zerolog.Logger

	now func() timeutil.NowContext
}

func NewPlanner(completer ai.Completer, timezone string, logger zerolog.Logger) *Planner {
	return &Planner{
		completer: completer,
		timezone:  timezone,
		logger:    logger,
		now:       func() timeutil.NowContext { return timeutil.ResolveNow(timezone) },
	}
}

type chatPayload struct {
	Timezone    string                `json:"timezone"`
	Week        weekPayload           `json:"week"`
	UserMessage string                `json:"userMessage"`
	Events      []model.CalendarEvent `json:"events"`
}

type topTasksPayload struct {
	Timezone     string                `json:"timezone"`
	Scope        string                `json:"scope"`
	TodayDateKey string                `json:"todayDateKey"`
	Week         weekPayload           `json:"week"`
	Events       []model.CalendarEvent `json:"events"`
}

type weekPayload struct {
	Start string          `json:"start"`
	End   string          `json:"end"`
	Days  []model.WeekDay `json:"days,omitempty"`
}

func toWeekPayload(week model.WeekWindow, withDays bool) weekPayload {
	p := weekPayload{
		Start: week.Start.Format(time.RFC3339),
		End:   week.End.Format(time.RFC3339),
	}
	if withDays {
		p.Days = week.Days
	}
	return p
}

// Chat runs one chat turn against the supplied week of events.
// Deterministic short-circuits (schedule lookup, missing provider key,
// small talk, low-information replies) resolve without or despite the
// model; everything else is a single completion call followed by
// normalize, reconcile and hint-inject.
func (p *Planner) Chat(ctx context.Context, message string, events []model.CalendarEvent, week model.WeekWindow) (model.AIPlannerResult, error) {
	now := p.now()

	if reply, ok := ScheduleLookup(message, events, week, now); ok {
		p.logger.Debug().Str("intent", IntentLookup.String()).Msg("answered schedule lookup without model call")
		return model.AIPlannerResult{
			Reply:           reply,
			SuggestedEvents: []model.SuggestedEvent{},
			ProposedChanges: []model.ProposedChange{},
		}, nil
	}

	if p.completer == nil {
		return model.AIPlannerResult{
			Reply:           missingKeyReply,
			SuggestedEvents: []model.SuggestedEvent{},
			ProposedChanges: []model.ProposedChange{},
		}, nil
	}

	payload, err := json.Marshal(chatPayload{
		Timezone:    p.timezone,
		Week:        toWeekPayload(week, true),
		UserMessage: message,
		Events:      events,
	})
	if err != nil {
		return model.AIPlannerResult{}, errors.Wrap(err, "marshal planner payload")
	}

	text, err := p.completer.Complete(ctx, plannerSystemPrompt, string(payload))
	if err != nil {
		return model.AIPlannerResult{}, errors.Wrap(err, "model completion")
	}

	raw, parsed := ParseModelJSON(text)
	var result model.AIPlannerResult
	if parsed {
		result = NormalizePlannerResponse(raw)
	} else {
		reply := text
		if reply == "" {
			reply = emptyModelReply
		}
		result = model.AIPlannerResult{
			Reply:           reply,
			SuggestedEvents: []model.SuggestedEvent{},
			ProposedChanges: []model.ProposedChange{},
		}
	}

	if Classify(message) == IntentSmallTalk {
		return model.AIPlannerResult{
			Reply:           smallTalkReply,
			SuggestedEvents: []model.SuggestedEvent{},
			ProposedChanges: []model.ProposedChange{},
		}, nil
	}
	if replyLooksGeneric(result.Reply) && len(result.SuggestedEvents) == 0 && len(result.ProposedChanges) == 0 {
		return model.AIPlannerResult{
			Reply:           askForSpecificsReply,
			SuggestedEvents: []model.SuggestedEvent{},
			ProposedChanges: []model.ProposedChange{},
		}, nil
	}

	result = Reconcile(result, message)
	result.Reply = InjectDateHints(result.Reply, now.TodayDateKey)
	return result, nil
}

// TopTasks ranks the week's events into at most three priorities. The
// deterministic fallback ranking is always computed; the model path only
// ever improves on it and any model failure is absorbed here.
func (p *Planner) TopTasks(ctx context.Context, events []model.CalendarEvent, week model.WeekWindow, scope string) model.TopTasksResult {
	now := p.now()
	scope = NormalizeScope(scope)

	result := model.TopTasksResult{
		Scope:        scope,
		TodayDateKey: now.TodayDateKey,
		Timezone:     p.timezone,
		TopTasks:     []model.TopTask{},
	}

	if len(events) == 0 {
		result.Summary = "You have no events this week."
		result.EmptyWeek = true
		return result
	}

	fallback := BuildFallbackTasks(events, scope, now.TodayDateKey, now.Location)
	result.Summary = fallbackTasksSummary
	result.TopTasks = fallback

	if p.completer == nil {
		return result
	}

	payload, err := json.Marshal(topTasksPayload{
		Timezone:     p.timezone,
		Scope:        scope,
		TodayDateKey: now.TodayDateKey,
		Week:         toWeekPayload(week, false),
		Events:       events,
	})
	if err != nil {
		p.logger.Warn().Err(err).Msg("top tasks payload marshal failed, using fallback ranking")
		return result
	}

	text, err := p.completer.Complete(ctx, topTasksSystemPrompt, string(payload))
	if err != nil {
		p.logger.Warn().Err(err).Msg("top tasks model call failed, using fallback ranking")
		return result
	}

	raw, parsed := ParseModelJSON(text)
	if !parsed {
		return result
	}

	summary, tasks := NormalizeTopTasksResponse(raw)
	approved := filterTasksToScope(tasks, scope, now.TodayDateKey, buildDateKeyIndex(events))
	if len(approved) == 0 {
		return result
	}

	if summary != "" {
		result.Summary = summary
	}
	result.TopTasks = MergeTopTasks(approved, fallback)
	return result
}
