package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alignai/alignai/internal/model"
)

func weekEvents() []model.CalendarEvent {
	return []model.CalendarEvent{
		timedEvent("e2", "Design review", "2024-05-15", "14:00", "15:00"),
		timedEvent("e1", "Standup", "2024-05-15", "09:00", "09:15"),
		timedEvent("e3", "Sprint demo", "2024-05-16", "11:00", "12:00"),
		timedEvent("e4", "Retro", "2024-05-17", "16:00", "17:00"),
		{ID: "e5", Summary: "Ghost", DateKey: "2024-05-15", Status: "cancelled",
			Start: "2024-05-15T08:00:00Z", End: "2024-05-15T08:30:00Z"},
	}
}

func TestNormalizeScope(t *testing.T) {
	assert.Equal(t, ScopeWeek, NormalizeScope("week"))
	assert.Equal(t, ScopeWeek, NormalizeScope(" WEEK "))
	assert.Equal(t, ScopeToday, NormalizeScope("today"))
	assert.Equal(t, ScopeToday, NormalizeScope("month"))
	assert.Equal(t, ScopeToday, NormalizeScope(""))
}

func TestBuildFallbackTasks_TodayScope(t *testing.T) {
	tasks := BuildFallbackTasks(weekEvents(), ScopeToday, "2024-05-15", time.UTC)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Standup", tasks[0].Title)
	assert.Equal(t, model.ImportanceHigh, tasks[0].Importance)
	assert.Equal(t, "Design review", tasks[1].Title)
	assert.Equal(t, model.ImportanceMedium, tasks[1].Importance)
	assert.Equal(t, "e1", tasks[0].SourceEventID)
	assert.Equal(t, "09:00 - 09:15", tasks[0].Time)
	assert.Contains(t, tasks[0].Reason, "today")
}

func TestBuildFallbackTasks_WeekScopeCapsAtThree(t *testing.T) {
	tasks := BuildFallbackTasks(weekEvents(), ScopeWeek, "2024-05-15", time.UTC)
	require.Len(t, tasks, maxTopTasks)
	assert.Equal(t, "Standup", tasks[0].Title)
	assert.Equal(t, "Design review", tasks[1].Title)
	assert.Equal(t, "Sprint demo", tasks[2].Title)
	assert.Contains(t, tasks[2].Reason, "2024-05-16")
}

func TestBuildFallbackTasks_SkipsCancelled(t *testing.T) {
	tasks := BuildFallbackTasks(weekEvents(), ScopeWeek, "2024-05-15", time.UTC)
	for _, task := range tasks {
		assert.NotEqual(t, "Ghost", task.Title)
	}
}

func TestBuildFallbackTasks_LocationInReason(t *testing.T) {
	ev := timedEvent("e1", "Standup", "2024-05-15", "09:00", "09:15")
	ev.Location = "Room 4"
	tasks := BuildFallbackTasks([]model.CalendarEvent{ev}, ScopeToday, "2024-05-15", time.UTC)
	require.Len(t, tasks, 1)
	assert.Equal(t, "On your calendar today at Room 4", tasks[0].Reason)
}

func TestTaskIdentity(t *testing.T) {
	withID := model.TopTask{Title: "Prep", SourceEventID: "e1"}
	assert.Equal(t, "id:e1", taskIdentity(withID, 0))
	assert.Equal(t, "id:e1", taskIdentity(withID, 5))

	bare := model.TopTask{Title: "Prep Deck", TargetDate: "2024-05-15", Time: "09:00"}
	assert.Equal(t, "text:prep deck|2024-05-15|09:00|0", taskIdentity(bare, 0))
	assert.NotEqual(t, taskIdentity(bare, 0), taskIdentity(bare, 1))
}

func TestFilterTasksToScope(t *testing.T) {
	index := buildDateKeyIndex(weekEvents())
	tasks := []model.TopTask{
		{Title: "Matches by date", TargetDate: "2024-05-15"},
		{Title: "Matches by source event", SourceEventID: "e1"},
		{Title: "Wrong day", TargetDate: "2024-05-16"},
		{Title: "Unresolvable", SourceEventID: "missing"},
		{Title: "No anchors at all"},
	}

	kept := filterTasksToScope(tasks, ScopeToday, "2024-05-15", index)
	require.Len(t, kept, 2)
	assert.Equal(t, "Matches by date", kept[0].Title)
	assert.Equal(t, "Matches by source event", kept[1].Title)

	assert.Len(t, filterTasksToScope(tasks, ScopeWeek, "2024-05-15", index), len(tasks))
}

func TestMergeTopTasks(t *testing.T) {
	fallback := BuildFallbackTasks(weekEvents(), ScopeWeek, "2024-05-15", time.UTC)
	approved := []model.TopTask{{Title: "Prep demo", SourceEventID: "e3", Importance: model.ImportanceHigh}}

	merged := MergeTopTasks(approved, fallback)
	require.Len(t, merged, maxTopTasks)
	assert.Equal(t, "Prep demo", merged[0].Title)
	// e3 is already merged via the approved task, so the fill skips it.
	assert.Equal(t, "Standup", merged[1].Title)
	assert.Equal(t, "Design review", merged[2].Title)
}

func TestMergeTopTasks_ApprovedAloneFillsAllSlots(t *testing.T) {
	approved := []model.TopTask{
		{Title: "A", SourceEventID: "a"},
		{Title: "B", SourceEventID: "b"},
		{Title: "C", SourceEventID: "c"},
		{Title: "D", SourceEventID: "d"},
	}
	merged := MergeTopTasks(approved, nil)
	require.Len(t, merged, maxTopTasks)
	assert.Equal(t, "A", merged[0].Title)
	assert.Equal(t, "C", merged[2].Title)
}
