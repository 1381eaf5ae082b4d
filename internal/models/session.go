package models

import "time"

// SessionStatus is the lifecycle state of a mentoring session.
type SessionStatus string

const (
	SessionUpcoming  SessionStatus = "upcoming"
	SessionCompleted SessionStatus = "completed"
	SessionPending   SessionStatus = "pending"
)

// Session is a single scheduled mentoring session.
type Session struct {
	ID          string        `json:"id"`
	MentorID    string        `json:"mentor_id"`
	MenteeName  string        `json:"mentee_name"`
	MenteeEmail string        `json:"mentee_email,omitempty"`
	Topic       string        `json:"topic,omitempty"`
	ScheduledAt time.Time     `json:"scheduled_at"`
	Status      SessionStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// SessionStats are the per-mentor session counters shown on the dashboard.
// Sessions in states other than the three known ones are not counted.
type SessionStats struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Upcoming  int `json:"upcoming"`
}
