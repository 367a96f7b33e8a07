package timeutil

import (
	"testing"
	"time"
)

func TestShiftDateKey_RoundTrip(t *testing.T) {
	keys := []string{"2024-01-01", "2024-02-28", "2024-02-29", "2024-12-31", "2023-03-12"}
	deltas := []int{-400, -30, -1, 0, 1, 7, 365}
	for _, k := range keys {
		for _, n := range deltas {
			shifted := ShiftDateKey(k, n)
			if shifted == "" {
				t.Fatalf("shift %s by %d returned empty", k, n)
			}
			if back := ShiftDateKey(shifted, -n); back != k {
				t.Fatalf("round trip %s by %d: got %s", k, n, back)
			}
		}
	}
}

func TestShiftDateKey_Malformed(t *testing.T) {
	for _, bad := range []string{"", "not-a-date", "2024-13-01", "2024/01/01"} {
		if got := ShiftDateKey(bad, 1); got != "" {
			t.Fatalf("expected empty for %q, got %q", bad, got)
		}
	}
}

func TestResolveNowAt_Timezone(t *testing.T) {
	// 2024-03-10 23:30 UTC is already 2024-03-11 in Seoul.
	instant := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
	ctx := ResolveNowAt(instant, "Asia/Seoul")
	if ctx.TodayDateKey != "2024-03-11" {
		t.Fatalf("expected Seoul date 2024-03-11, got %s", ctx.TodayDateKey)
	}
	if ctx.WeekdayName != "Monday" {
		t.Fatalf("expected Monday in Seoul, got %s", ctx.WeekdayName)
	}

	utc := ResolveNowAt(instant, "UTC")
	if utc.TodayDateKey != "2024-03-10" {
		t.Fatalf("expected UTC date 2024-03-10, got %s", utc.TodayDateKey)
	}
}

func TestResolveNowAt_UnknownZoneFallsBackToUTC(t *testing.T) {
	instant := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
	ctx := ResolveNowAt(instant, "Not/AZone")
	if ctx.TodayDateKey != "2024-03-10" {
		t.Fatalf("expected UTC fallback, got %s", ctx.TodayDateKey)
	}
}

func TestComputeWeekWindow_MondayAnchor(t *testing.T) {
	// Wednesday 2024-05-15.
	now := time.Date(2024, 5, 15, 14, 0, 0, 0, time.UTC)
	w := ComputeWeekWindow(now, 0, 5)
	if got := DateKeyOf(w.Start); got != "2024-05-13" {
		t.Fatalf("expected Monday 2024-05-13, got %s", got)
	}
	if got := DateKeyOf(w.End); got != "2024-05-17" {
		t.Fatalf("expected Friday 2024-05-17, got %s", got)
	}
	if w.End.Hour() != 23 || w.End.Minute() != 59 || w.End.Second() != 59 {
		t.Fatalf("window end not at end of day: %v", w.End)
	}
	if len(w.Days) != 5 || w.Days[0].Name != "Monday" || w.Days[4].Name != "Friday" {
		t.Fatalf("unexpected days: %+v", w.Days)
	}
	for i := 1; i < len(w.Days); i++ {
		if w.Days[i].DateKey <= w.Days[i-1].DateKey {
			t.Fatalf("dateKeys not strictly increasing: %+v", w.Days)
		}
	}
}

func TestComputeWeekWindow_SundayBelongsToPreviousMonday(t *testing.T) {
	// Sunday 2024-05-19 is still the week starting Monday 2024-05-13.
	now := time.Date(2024, 5, 19, 9, 0, 0, 0, time.UTC)
	w := ComputeWeekWindow(now, 0, 7)
	if got := DateKeyOf(w.Start); got != "2024-05-13" {
		t.Fatalf("expected Monday 2024-05-13, got %s", got)
	}
	if got := DateKeyOf(w.End); got != "2024-05-19" {
		t.Fatalf("expected Sunday 2024-05-19, got %s", got)
	}
	if len(w.Days) != 7 || w.Days[6].Name != "Sunday" {
		t.Fatalf("unexpected days: %+v", w.Days)
	}
}

func TestComputeWeekWindow_Offset(t *testing.T) {
	now := time.Date(2024, 5, 15, 14, 0, 0, 0, time.UTC)
	next := ComputeWeekWindow(now, 1, 5)
	if got := DateKeyOf(next.Start); got != "2024-05-20" {
		t.Fatalf("expected next Monday 2024-05-20, got %s", got)
	}
	prev := ComputeWeekWindow(now, -1, 5)
	if got := DateKeyOf(prev.Start); got != "2024-05-06" {
		t.Fatalf("expected previous Monday 2024-05-06, got %s", got)
	}
}

func TestWeekdayIndex(t *testing.T) {
	if d, ok := WeekdayIndex("FRIDAY"); !ok || d != time.Friday {
		t.Fatalf("expected Friday, got %v %v", d, ok)
	}
	if _, ok := WeekdayIndex("someday"); ok {
		t.Fatalf("expected miss for unknown weekday")
	}
}
