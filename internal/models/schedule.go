package models

import "time"

// SessionType distinguishes how a mentoring session is held.
type SessionType string

const (
	SessionVideoCall SessionType = "VIDEO_CALL"
	SessionChat      SessionType = "CHAT"
)

// Placeholder text shown when a session carries a malformed date or hour.
const (
	InvalidDatePlaceholder = "Data inválida"
	InvalidHourPlaceholder = "Hora inválida"
)

// MentoringSession is the backend-owned scheduled engagement. The web tier
// never creates sessions; it only edits the link or deletes them.
type MentoringSession struct {
	ID       string      `json:"id"`
	Mentor   Participant `json:"mentor"`
	Student  Participant `json:"student"`
	Title    string      `json:"title"`
	Date     string      `json:"date"`     // ISO date string, may be malformed
	DateHour string      `json:"dateHour"` // display hour, free-form
	Type     SessionType `json:"type"`
	Link     string      `json:"link,omitempty"`

	// Display fields filled by the web tier; placeholders when the
	// backend data is malformed.
	DisplayDate string `json:"displayDate,omitempty"`
	DisplayHour string `json:"displayHour,omitempty"`
}

// Day is a calendar day at day granularity, the bucket key for the
// session heat-map.
type Day struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// DayOf truncates a time to its calendar day.
func DayOf(t time.Time) Day {
	return Day{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// CalendarEvent is one aggregated heat-map bucket.
type CalendarEvent struct {
	Date         Day `json:"date"`
	SessionCount int `json:"sessionCount"`
}

// UpdateSessionRequest is the full-replace update payload, keyed by id on
// the route. The UI only ever changes Link, but the backend contract is a
// whole-entity replace.
type UpdateSessionRequest struct {
	Title    string      `json:"title"`
	Date     string      `json:"date"`
	DateHour string      `json:"dateHour"`
	Type     SessionType `json:"type"`
	Link     string      `json:"link"`
}

// UpdateLinkRequest is the edit-link payload accepted from the client.
type UpdateLinkRequest struct {
	Link string `json:"link" binding:"required"`
}

// ScheduleResponse is the mentor scheduling page payload: the visible
// (possibly day-filtered) list plus the calendar aggregation.
type ScheduleResponse struct {
	Sessions    []MentoringSession `json:"sessions"`
	Calendar    []CalendarEvent    `json:"calendar"`
	SelectedDay *Day               `json:"selectedDay,omitempty"`
	ActiveID    string             `json:"activeSessionId,omitempty"`
}
