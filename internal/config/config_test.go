package config

import (
	"os"
	"testing"
)

func TestConfigLoad_Defaults(t *testing.T) {
	_ = os.Unsetenv("ALIGNAI_OPENAI_MODEL")
	_ = os.Unsetenv("ALIGNAI_CALENDAR_TIMEZONE")
	_ = os.Unsetenv("ALIGNAI_WEEK_LENGTH_DAYS")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.OpenAIModel != "gpt-4.1-mini" || cfg.CalendarTimezone != "Asia/Seoul" || cfg.WeekLengthDays != 5 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	_ = os.Setenv("ALIGNAI_OPENAI_MODEL", "test-model")
	defer func() { _ = os.Unsetenv("ALIGNAI_OPENAI_MODEL") }()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.OpenAIModel != "test-model" {
		t.Fatalf("model env override failed, got %s", cfg.OpenAIModel)
	}
}

func TestConfigLoad_RejectsBadWeekLength(t *testing.T) {
	_ = os.Setenv("ALIGNAI_WEEK_LENGTH_DAYS", "6")
	defer func() { _ = os.Unsetenv("ALIGNAI_WEEK_LENGTH_DAYS") }()

	if _, err := New(); err == nil {
		t.Fatalf("expected error for week length 6")
	}
}

func TestConfigLoad_SqliteDerivesPath(t *testing.T) {
	_ = os.Setenv("ALIGNAI_SESSION_STORE", "sqlite")
	defer func() { _ = os.Unsetenv("ALIGNAI_SESSION_STORE") }()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.SessionDBPath == "" {
		t.Fatalf("expected derived session db path")
	}
}

func TestConfigLoad_RejectsBadSessionStore(t *testing.T) {
	_ = os.Setenv("ALIGNAI_SESSION_STORE", "redis")
	defer func() { _ = os.Unsetenv("ALIGNAI_SESSION_STORE") }()

	if _, err := New(); err == nil {
		t.Fatalf("expected error for unsupported session store")
	}
}
