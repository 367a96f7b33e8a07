package model

import "time"

// Attachment is a file linked to a calendar event. Only the link is kept;
// content is never downloaded.
type Attachment struct {
	Title    string `json:"title"`
	FileURL  string `json:"fileUrl"`
	MimeType string `json:"mimeType"`
	IconLink string `json:"iconLink"`
}

// CalendarEvent is the canonical event record, immutable once normalized.
// Start and End are ISO-8601 instants, or empty when the provider omitted
// them. DateKey is always derived from Start in the reference timezone.
type CalendarEvent struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Location    string `json:"location"`
	HTMLLink    string `json:"htmlLink"`
	Status      string `json:"status"`
	Start       string `json:"start"`
	End         string `json:"end"`
	AllDay      bool   `json:"allDay"`
	DateKey     string `json:"dateKey"`

	// Exactly one of the two is set for a valid range; both are nil when
	// the range is inverted or unparseable (unknown duration, not zero).
	DurationMinutes *int `json:"durationMinutes,omitempty"`
	DurationDays    *int `json:"durationDays,omitempty"`

	Timezone       string       `json:"timezone"`
	Attachments    []Attachment `json:"attachments"`
	ConferenceLink string       `json:"conferenceLink"`
}

// WeekDay is one day of a week window, Monday first.
type WeekDay struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	DateKey string `json:"dateKey"`
	ISO     string `json:"iso"`
}

// WeekWindow bounds a Monday-to-Friday or Monday-to-Sunday span in local
// wall-clock terms. Days is ordered by strictly increasing DateKey.
type WeekWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  []WeekDay `json:"days"`
}

// SuggestedEvent is a model-proposed new calendar event. Title, Start and
// End are required non-empty after normalization.
type SuggestedEvent struct {
	Title       string `json:"title"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Reason      string `json:"reason"`
}

// ProposedChange is a model-proposed edit to an existing event.
// Action is "update" or "delete"; EventID is required.
type ProposedChange struct {
	Action      string `json:"action"`
	EventID     string `json:"eventId"`
	Title       string `json:"title"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Reason      string `json:"reason"`
}

// AIPlannerResult is the chat pipeline output.
type AIPlannerResult struct {
	Reply           string           `json:"reply"`
	SuggestedEvents []SuggestedEvent `json:"suggestedEvents"`
	ProposedChanges []ProposedChange `json:"proposedChanges"`
}

// TopTask is one ranked priority. SourceEventID is a non-owning reference
// to a CalendarEvent; TargetDate is a YYYY-MM-DD key or empty.
type TopTask struct {
	Title         string `json:"title"`
	Reason        string `json:"reason"`
	Importance    string `json:"importance"`
	SourceEventID string `json:"sourceEventId"`
	TargetDate    string `json:"targetDate"`
	Time          string `json:"time"`
}

// Task importance levels. Unrecognized input normalizes to medium.
const (
	ImportanceHigh   = "high"
	ImportanceMedium = "medium"
	ImportanceLow    = "low"
)

// TopTasksResult is the top-tasks pipeline output.
type TopTasksResult struct {
	Summary      string    `json:"summary"`
	TopTasks     []TopTask `json:"topTasks"`
	EmptyWeek    bool      `json:"emptyWeek"`
	Scope        string    `json:"scope"`
	TodayDateKey string    `json:"todayDateKey"`
	Timezone     string    `json:"timezone"`
}

// Profile is the authenticated user's Google profile.
type Profile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}
