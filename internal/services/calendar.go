package services

import (
	"sort"
	"time"

	"github.com/mentorhub/mentorhub-web/internal/models"
	"github.com/mentorhub/mentorhub-web/pkg/logger"
	"go.uber.org/zap"
)

// sessionDateLayouts are tried in order when parsing a session's date.
var sessionDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseSessionDay extracts the calendar day of a session. Sessions with a
// missing or unparseable date are excluded from the calendar but stay in
// the plain list; the failure is a warning, not an error.
func ParseSessionDay(s models.MentoringSession) (models.Day, bool) {
	if s.Date == "" {
		return models.Day{}, false
	}
	for _, layout := range sessionDateLayouts {
		if t, err := time.Parse(layout, s.Date); err == nil {
			return models.DayOf(t), true
		}
	}
	logger.Warn("Session has unparseable date, excluded from calendar",
		zap.String("session_id", s.ID),
		zap.String("date", s.Date),
	)
	return models.Day{}, false
}

// BuildCalendar aggregates sessions into day-granularity buckets, sorted
// chronologically.
func BuildCalendar(sessions []models.MentoringSession) []models.CalendarEvent {
	counts := make(map[models.Day]int)
	for _, s := range sessions {
		day, ok := ParseSessionDay(s)
		if !ok {
			continue
		}
		counts[day]++
	}

	events := make([]models.CalendarEvent, 0, len(counts))
	for day, count := range counts {
		events = append(events, models.CalendarEvent{Date: day, SessionCount: count})
	}
	sort.Slice(events, func(i, j int) bool {
		a, b := events[i].Date, events[j].Date
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.Day < b.Day
	})
	return events
}

// IsDayWithSession reports whether any session falls on the given day.
func IsDayWithSession(events []models.CalendarEvent, day models.Day) bool {
	return SessionCount(events, day) > 0
}

// SessionCount returns how many sessions fall on the given day.
func SessionCount(events []models.CalendarEvent, day models.Day) int {
	for _, e := range events {
		if e.Date == day {
			return e.SessionCount
		}
	}
	return 0
}

// FilterByDay narrows sessions to those on the selected day, comparing
// year, month and day only. A nil day selects everything.
func FilterByDay(sessions []models.MentoringSession, day *models.Day) []models.MentoringSession {
	if day == nil {
		return sessions
	}
	filtered := make([]models.MentoringSession, 0, len(sessions))
	for _, s := range sessions {
		d, ok := ParseSessionDay(s)
		if !ok {
			continue
		}
		if d == *day {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// annotateDisplayDates fills the human-readable date fields, falling back
// to the invalid-value placeholders for malformed data.
func annotateDisplayDates(sessions []models.MentoringSession) []models.MentoringSession {
	annotated := make([]models.MentoringSession, len(sessions))
	for i, s := range sessions {
		if day, ok := ParseSessionDay(s); ok {
			s.DisplayDate = time.Date(day.Year, day.Month, day.Day, 0, 0, 0, 0, time.UTC).Format("02/01/2006")
		} else {
			s.DisplayDate = models.InvalidDatePlaceholder
		}
		if s.DateHour == "" {
			s.DisplayHour = models.InvalidHourPlaceholder
		} else {
			s.DisplayHour = s.DateHour
		}
		annotated[i] = s
	}
	return annotated
}
