package planner

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alignai/alignai/internal/model"
	"github.com/alignai/alignai/internal/timeutil"
)

type fakeCompleter struct {
	response string
	err      error
	calls    int

	lastSystemPrompt string
	lastUserContent  string
}

func (f *fakeCompleter) Complete(_ context.Context, systemPrompt, userContent string) (string, error) {
	f.calls++
	f.lastSystemPrompt = systemPrompt
	f.lastUserContent = userContent
	return f.response, f.err
}

func testPlanner(t *testing.T, completer *fakeCompleter) *Planner {
	t.Helper()
	var p *Planner
	if completer == nil {
		p = NewPlanner(nil, "UTC", zerolog.Nop())
	} else {
		p = NewPlanner(completer, "UTC", zerolog.Nop())
	}
	p.now = func() timeutil.NowContext { return wednesdayNow(t) }
	return p
}

func TestChat_ScheduleLookupBypassesModel(t *testing.T) {
	fake := &fakeCompleter{response: `{"reply":"model should not run"}`}
	p := testPlanner(t, fake)

	events := []model.CalendarEvent{timedEvent("e1", "Standup", "2024-05-15", "09:00", "09:15")}
	res, err := p.Chat(context.Background(), "what's my schedule today?", events, wednesdayWeek(t))
	require.NoError(t, err)

	assert.Zero(t, fake.calls)
	assert.Contains(t, res.Reply, "Standup")
	assert.Empty(t, res.SuggestedEvents)
	assert.Empty(t, res.ProposedChanges)
}

func TestChat_MissingKeyShortCircuits(t *testing.T) {
	p := testPlanner(t, nil)

	res, err := p.Chat(context.Background(), "plan my week", nil, wednesdayWeek(t))
	require.NoError(t, err)
	assert.Equal(t, missingKeyReply, res.Reply)
	assert.Empty(t, res.SuggestedEvents)
}

func TestChat_NormalizesAndInjectsHints(t *testing.T) {
	fake := &fakeCompleter{response: `{
		"reply": "I blocked focus time tomorrow.",
		"suggestedEvents": [
			{"title":"Focus block","start":"2024-05-16T09:00:00Z","end":"2024-05-16T11:00:00Z"},
			{"title":"Missing end","start":"2024-05-16T09:00:00Z"}
		],
		"proposedChanges": []
	}`}
	p := testPlanner(t, fake)

	res, err := p.Chat(context.Background(), "plan deep work for me", nil, wednesdayWeek(t))
	require.NoError(t, err)
	assert.Equal(t, 1, fake.calls)
	assert.Contains(t, fake.lastUserContent, `"userMessage":"plan deep work for me"`)
	require.Len(t, res.SuggestedEvents, 1)
	assert.Equal(t, "I blocked focus time tomorrow. (tomorrow: 2024-05-16)", res.Reply)
}

func TestChat_BraceExtractionRecovery(t *testing.T) {
	fake := &fakeCompleter{response: "Here is the plan:\n{\"reply\":\"All set.\"}"}
	p := testPlanner(t, fake)

	res, err := p.Chat(context.Background(), "plan my week", nil, wednesdayWeek(t))
	require.NoError(t, err)
	assert.Equal(t, "All set.", res.Reply)
}

func TestChat_UnparseableBecomesPlainReply(t *testing.T) {
	fake := &fakeCompleter{response: "I can't produce JSON right now."}
	p := testPlanner(t, fake)

	res, err := p.Chat(context.Background(), "plan my week", nil, wednesdayWeek(t))
	require.NoError(t, err)
	assert.Equal(t, "I can't produce JSON right now.", res.Reply)
	assert.Empty(t, res.SuggestedEvents)
}

func TestChat_EmptyModelOutput(t *testing.T) {
	fake := &fakeCompleter{response: ""}
	p := testPlanner(t, fake)

	res, err := p.Chat(context.Background(), "plan my week", nil, wednesdayWeek(t))
	require.NoError(t, err)
	assert.Equal(t, emptyModelReply, res.Reply)
}

func TestChat_SmallTalkDiscardsSuggestions(t *testing.T) {
	fake := &fakeCompleter{response: `{
		"reply": "Hi! Want me to plan?",
		"suggestedEvents": [{"title":"Unwanted","start":"s","end":"e"}],
		"proposedChanges": []
	}`}
	p := testPlanner(t, fake)

	res, err := p.Chat(context.Background(), "hello!", nil, wednesdayWeek(t))
	require.NoError(t, err)
	assert.Equal(t, smallTalkReply, res.Reply)
	assert.Empty(t, res.SuggestedEvents)
}

func TestChat_GenericReplyWithNoContent(t *testing.T) {
	fake := &fakeCompleter{response: `{"reply":"How can I help you today?","suggestedEvents":[],"proposedChanges":[]}`}
	p := testPlanner(t, fake)

	res, err := p.Chat(context.Background(), "hmm", nil, wednesdayWeek(t))
	require.NoError(t, err)
	assert.Equal(t, askForSpecificsReply, res.Reply)
}

func TestChat_GenericReplyWithContentSurvives(t *testing.T) {
	fake := &fakeCompleter{response: `{
		"reply": "How can I help you today?",
		"suggestedEvents": [{"title":"Gym","start":"2024-05-15T10:00:00Z","end":"2024-05-15T11:00:00Z"}],
		"proposedChanges": []
	}`}
	p := testPlanner(t, fake)

	res, err := p.Chat(context.Background(), "hmm", nil, wednesdayWeek(t))
	require.NoError(t, err)
	assert.NotEqual(t, askForSpecificsReply, res.Reply)
	assert.Len(t, res.SuggestedEvents, 1)
}

func TestChat_ModelErrorSurfaces(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("upstream boom")}
	p := testPlanner(t, fake)

	_, err := p.Chat(context.Background(), "plan my week", nil, wednesdayWeek(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model completion")
}

func TestTopTasks_EmptyWeekSkipsModel(t *testing.T) {
	fake := &fakeCompleter{response: `{"summary":"never called"}`}
	p := testPlanner(t, fake)

	res := p.TopTasks(context.Background(), nil, wednesdayWeek(t), ScopeWeek)
	assert.True(t, res.EmptyWeek)
	assert.Empty(t, res.TopTasks)
	assert.Zero(t, fake.calls)
	assert.Equal(t, "2024-05-15", res.TodayDateKey)
}

func TestTopTasks_ModelFailureFallsBack(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("timeout")}
	p := testPlanner(t, fake)

	res := p.TopTasks(context.Background(), weekEvents(), wednesdayWeek(t), ScopeWeek)
	assert.False(t, res.EmptyWeek)
	require.Len(t, res.TopTasks, maxTopTasks)
	assert.Equal(t, "Standup", res.TopTasks[0].Title)
	assert.Equal(t, fallbackTasksSummary, res.Summary)
}

func TestTopTasks_NoCompleterUsesFallback(t *testing.T) {
	p := testPlanner(t, nil)

	res := p.TopTasks(context.Background(), weekEvents(), wednesdayWeek(t), ScopeToday)
	require.Len(t, res.TopTasks, 2)
	assert.Equal(t, ScopeToday, res.Scope)
}

func TestTopTasks_MergesApprovedWithFallback(t *testing.T) {
	fake := &fakeCompleter{response: `{
		"summary": "Demo prep matters most.",
		"topTasks": [{"title":"Prep demo","sourceEventId":"e3","importance":"high","targetDate":"2024-05-16"}]
	}`}
	p := testPlanner(t, fake)

	res := p.TopTasks(context.Background(), weekEvents(), wednesdayWeek(t), ScopeWeek)
	assert.Equal(t, "Demo prep matters most.", res.Summary)
	require.Len(t, res.TopTasks, maxTopTasks)
	assert.Equal(t, "Prep demo", res.TopTasks[0].Title)
	assert.Equal(t, "Standup", res.TopTasks[1].Title)
}

func TestTopTasks_ScopeFilterDropsOutOfWindow(t *testing.T) {
	fake := &fakeCompleter{response: `{
		"summary": "Tomorrow first.",
		"topTasks": [{"title":"Sprint demo","sourceEventId":"e3","targetDate":"2024-05-16"}]
	}`}
	p := testPlanner(t, fake)

	res := p.TopTasks(context.Background(), weekEvents(), wednesdayWeek(t), ScopeToday)
	// The only approved task is outside today, so the fallback wins whole.
	require.Len(t, res.TopTasks, 2)
	assert.Equal(t, "Standup", res.TopTasks[0].Title)
	assert.Equal(t, fallbackTasksSummary, res.Summary)
}
