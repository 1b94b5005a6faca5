package models

import "strings"

// Status is the lifecycle label of a report. The set below is the
// current vocabulary; historical free-text values are accepted at the
// boundary and stored verbatim, they simply report IsKnown() == false.
// No transition graph is enforced: any status may be written over any
// other.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
)

// ParseStatus normalizes a free-form status value. Known values are
// canonicalized to lower case; anything else is kept verbatim as a
// legacy value.
func ParseStatus(raw string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusPending:
		return StatusPending
	case StatusInProgress:
		return StatusInProgress
	case StatusResolved:
		return StatusResolved
	case StatusRejected:
		return StatusRejected
	}
	return Status(raw)
}

// IsKnown reports whether the status is part of the current vocabulary.
func (s Status) IsKnown() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Priority is the urgency label of a report. Same acceptance rules as
// Status.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ParsePriority normalizes a free-form priority value, keeping
// unrecognized historical values verbatim.
func ParsePriority(raw string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(raw))) {
	case PriorityLow:
		return PriorityLow
	case PriorityNormal:
		return PriorityNormal
	case PriorityHigh:
		return PriorityHigh
	case PriorityUrgent:
		return PriorityUrgent
	}
	return Priority(raw)
}

// IsKnown reports whether the priority is part of the current vocabulary.
func (p Priority) IsKnown() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// IsElevated reports whether the priority warrants escalated complaint
// wording.
func (p Priority) IsElevated() bool {
	return p == PriorityHigh || p == PriorityUrgent
}
