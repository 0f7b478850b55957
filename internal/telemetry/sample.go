// Package telemetry defines the raw activity sample schema produced by the
// desktop capture agent, and the defensive decoding that turns loosely
// shaped agent payloads into typed records.
package telemetry

import "time"

// Status is the sync state of a raw sample. Only synced and analyzed
// samples are eligible for aggregation.
type Status string

const (
	StatusPending  Status = "pending"
	StatusSynced   Status = "synced"
	StatusAnalyzed Status = "analyzed"
)

// Eligible reports whether a sample in this status may be aggregated.
func (s Status) Eligible() bool {
	return s == StatusSynced || s == StatusAnalyzed
}

// AppUsage is time spent in a single application during the sample window.
type AppUsage struct {
	AppName  string `json:"appName"`
	Duration int64  `json:"duration"` // seconds
	Category string `json:"category,omitempty"`
}

// WebsiteVisit is time spent on a single website during the sample window.
type WebsiteVisit struct {
	Domain   string `json:"domain"`
	URL      string `json:"url,omitempty"`
	Duration int64  `json:"duration"` // seconds
	Category string `json:"category,omitempty"`
}

// Keystrokes holds keyboard activity counters.
type Keystrokes struct {
	TotalCount int64 `json:"totalCount"`
}

// MouseActivity holds pointer activity counters.
type MouseActivity struct {
	Clicks           int64 `json:"clicks"`
	ScrollDistance   int64 `json:"scrollDistance"`
	MovementDistance int64 `json:"movementDistance"`
}

// Screenshot is a reference to a capture taken during the sample window.
// Either URL or Data is set depending on how the agent uploaded it.
type Screenshot struct {
	URL         string    `json:"url,omitempty"`
	Data        string    `json:"data,omitempty"`
	CapturedAt  time.Time `json:"capturedAt"`
	CaptureType string    `json:"captureType,omitempty"`
}

// RawSample is one short-interval telemetry report from the capture agent.
// Samples are immutable once produced; the aggregation engine only reads them.
type RawSample struct {
	ID         string    `json:"id,omitempty"`
	UserID     string    `json:"userId"`
	EmployeeID string    `json:"employeeId,omitempty"`
	ObservedAt time.Time `json:"observedAt"`

	// AppUsage is the detailed per-application breakdown. TopApps is a
	// lower-fidelity list some agent versions send instead; the aggregator
	// uses one or the other, never both.
	AppUsage []AppUsage `json:"appUsage,omitempty"`
	TopApps  []AppUsage `json:"topApps,omitempty"`

	WebsiteVisits []WebsiteVisit `json:"websiteVisits,omitempty"`

	Keystrokes Keystrokes    `json:"keystrokes"`
	Mouse      MouseActivity `json:"mouseActivity"`

	// Scalar time sums in seconds, as reported by the agent.
	TotalActiveTime  int64 `json:"totalActiveTime"`
	ProductiveTime   int64 `json:"productiveTime"`
	NeutralTime      int64 `json:"neutralTime"`
	UnproductiveTime int64 `json:"unproductiveTime"`

	Screenshot *Screenshot `json:"screenshot,omitempty"`
	Status     Status      `json:"status"`
}
