package models

import "time"

type APIStatus struct {
	EOD   bool `json:"eod"`
	Brave bool `json:"brave"`
	FRED  bool `json:"fred"`
	BEA   bool `json:"bea"`
}

// TrackedError is an entry of the recent-errors ring.
type TrackedError struct {
	Time    time.Time `json:"time"`
	Source  string    `json:"source"`
	Message string    `json:"message"`
}

type Health struct {
	Status        string         `json:"status"`
	APIs          APIStatus      `json:"apis"`
	RecentErrors  int            `json:"recentErrors"`
	TrackedErrors int            `json:"trackedErrors"`
	LastErrors    []TrackedError `json:"lastErrors"`
	Uptime        string         `json:"uptime"`
	Timestamp     int64          `json:"timestamp"`
}
