package model

import (
	"time"

	"campuscart/internal/domain/entity"
)

// ActivityRecord mirrors one entry of the recent-activity slot.
type ActivityRecord struct {
	Action string    `json:"action"`
	User   string    `json:"user"`
	Time   time.Time `json:"time"`
}

// FromActivity serializes an activity entry.
func FromActivity(a entity.Activity) ActivityRecord {
	return ActivityRecord(a)
}

// ToDomain converts the record into an activity entry.
func (r ActivityRecord) ToDomain() entity.Activity {
	return entity.Activity(r)
}
