package calendar

import (
	"sort"

	"github.com/mentorstack/mentorstack-api/internal/models"
)

// Display constants for availability events
const (
	EventDisplay = "block"
	EventColor   = "#10b981"
	EventTitle   = "Available"
)

// CalendarEvent is a weekly recurring calendar entry derived from one
// availability slot. DaysOfWeek is a recurrence rule, not a date.
type CalendarEvent struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	DaysOfWeek []int  `json:"daysOfWeek"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Display    string `json:"display"`
	Color      string `json:"color"`
}

// Project converts a slot list into calendar events sorted by day of week
// then start time. Pure: the input is not modified and identical input
// yields identical output.
func Project(slots []*models.AvailabilitySlot) []CalendarEvent {
	events := make([]CalendarEvent, 0, len(slots))

	for _, slot := range slots {
		events = append(events, CalendarEvent{
			ID:         slot.ID,
			Title:      EventTitle,
			DaysOfWeek: []int{slot.DayOfWeek},
			StartTime:  slot.StartTime,
			EndTime:    slot.EndTime,
			Display:    EventDisplay,
			Color:      EventColor,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].DaysOfWeek[0] != events[j].DaysOfWeek[0] {
			return events[i].DaysOfWeek[0] < events[j].DaysOfWeek[0]
		}
		return events[i].StartTime < events[j].StartTime
	})

	return events
}
