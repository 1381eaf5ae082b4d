package models

import (
	"fmt"
	"time"
)

// AvailabilitySlot is a weekly recurring availability window. Times are
// wall-clock strings in "HH:MM:SS" form, DayOfWeek follows time.Weekday
// numbering (0 = Sunday).
type AvailabilitySlot struct {
	ID        string    `json:"id"`
	MentorID  string    `json:"mentor_id"`
	DayOfWeek int       `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSlotRequest is the payload for adding an availability slot.
type CreateSlotRequest struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// Validate checks the request beyond what binding tags cover: the day must
// be a valid weekday and the window must have positive length.
func (r *CreateSlotRequest) Validate() error {
	if r.DayOfWeek == nil || *r.DayOfWeek < 0 || *r.DayOfWeek > 6 {
		return fmt.Errorf("day_of_week must be between 0 and 6")
	}
	start, err := ParseClock(r.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start_time: %w", err)
	}
	end, err := ParseClock(r.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end_time: %w", err)
	}
	if !start.Before(end) {
		return fmt.Errorf("start_time must be before end_time")
	}
	return nil
}

// Clock is a wall-clock time of day, independent of date and zone.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// Before reports whether c is strictly earlier in the day than other.
func (c Clock) Before(other Clock) bool {
	if c.Hour != other.Hour {
		return c.Hour < other.Hour
	}
	if c.Minute != other.Minute {
		return c.Minute < other.Minute
	}
	return c.Second < other.Second
}

// String renders the clock in "HH:MM:SS" form.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// ParseClock parses "HH:MM" or "HH:MM:SS" wall-clock strings.
func ParseClock(s string) (Clock, error) {
	var c Clock
	switch len(s) {
	case 5:
		if _, err := fmt.Sscanf(s, "%02d:%02d", &c.Hour, &c.Minute); err != nil {
			return Clock{}, fmt.Errorf("malformed time %q", s)
		}
	case 8:
		if _, err := fmt.Sscanf(s, "%02d:%02d:%02d", &c.Hour, &c.Minute, &c.Second); err != nil {
			return Clock{}, fmt.Errorf("malformed time %q", s)
		}
	default:
		return Clock{}, fmt.Errorf("malformed time %q", s)
	}
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 || c.Second < 0 || c.Second > 59 {
		return Clock{}, fmt.Errorf("time %q out of range", s)
	}
	return c, nil
}
