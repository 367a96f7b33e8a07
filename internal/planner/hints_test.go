package planner

import "testing"

func TestInjectDateHints(t *testing.T) {
	got := InjectDateHints("See you tomorrow", "2024-03-10")
	want := "See you tomorrow (tomorrow: 2024-03-11)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestInjectDateHints_Idempotent(t *testing.T) {
	once := InjectDateHints("See you tomorrow", "2024-03-10")
	twice := InjectDateHints(once, "2024-03-10")
	if once != twice {
		t.Fatalf("second run changed the reply: %q -> %q", once, twice)
	}
}

func TestInjectDateHints_FixedTokenOrder(t *testing.T) {
	got := InjectDateHints("Yesterday was packed, today is lighter", "2024-03-10")
	want := "Yesterday was packed, today is lighter (today: 2024-03-10) (yesterday: 2024-03-09)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestInjectDateHints_SkipsWhenDateAlreadyPresent(t *testing.T) {
	in := "Tomorrow (2024-03-11) works for me"
	if got := InjectDateHints(in, "2024-03-10"); got != in {
		t.Fatalf("expected no-op, got %q", got)
	}
}

func TestInjectDateHints_WordBoundary(t *testing.T) {
	in := "The todays-special menu"
	if got := InjectDateHints(in, "2024-03-10"); got != in {
		t.Fatalf("substring match must not trigger, got %q", got)
	}
}

func TestInjectDateHints_MalformedTodayKey(t *testing.T) {
	in := "See you tomorrow"
	if got := InjectDateHints(in, "not-a-date"); got != in {
		t.Fatalf("malformed date key must be a no-op, got %q", got)
	}
}
