// Package engine converts ordered raw activity samples into fixed-length
// productivity sessions: time bucketing, metric aggregation, and scoring.
package engine

import (
	"time"

	"github.com/workpulse/workpulse/internal/classify"
)

// SessionStatus marks the lifecycle state of an aggregated session.
type SessionStatus string

const (
	// StatusCompleted is the status of every session produced by a batch
	// run; sessions are never reopened once their bucket closes.
	StatusCompleted SessionStatus = "completed"
)

// AppSummary is the aggregated usage of one application within a session.
type AppSummary struct {
	AppName       string            `json:"appName"`
	TotalDuration int64             `json:"totalDuration"` // seconds
	Category      classify.Category `json:"category"`
	Percentage    int               `json:"percentage"`
}

// WebsiteSummary is the aggregated usage of one website within a session.
type WebsiteSummary struct {
	Domain        string            `json:"domain"`
	URL           string            `json:"url,omitempty"`
	TotalDuration int64             `json:"totalDuration"` // seconds
	VisitCount    int               `json:"visitCount"`
	Category      classify.Category `json:"category"`
	Percentage    int               `json:"percentage"`
}

// KeystrokeSummary holds aggregated keyboard counters for a session.
type KeystrokeSummary struct {
	TotalCount       int64 `json:"totalCount"`
	AveragePerMinute int64 `json:"averagePerMinute"`
}

// MouseSummary holds aggregated pointer counters for a session.
type MouseSummary struct {
	TotalClicks           int64 `json:"totalClicks"`
	TotalScrollDistance   int64 `json:"totalScrollDistance"`
	TotalMovementDistance int64 `json:"totalMovementDistance"`
}

// ScreenshotRef is a reference to one capture kept with a session. At most
// one per session minute is retained.
type ScreenshotRef struct {
	URL         string    `json:"url,omitempty"`
	Data        string    `json:"data,omitempty"`
	CapturedAt  time.Time `json:"capturedAt"`
	CaptureType string    `json:"captureType,omitempty"`
}

// Analysis holds the derived behavioral metrics and narrative for a session.
type Analysis struct {
	Summary            string   `json:"summary"`
	ProductivityScore  int      `json:"productivityScore"`
	FocusScore         int      `json:"focusScore"`
	EfficiencyScore    int      `json:"efficiencyScore"`
	Insights           []string `json:"insights"`
	Recommendations    []string `json:"recommendations"`
	TopAchievements    []string `json:"topAchievements"`
	// AreasOfImprovement is an extension point; no heuristic populates it yet.
	AreasOfImprovement []string `json:"areasOfImprovement"`
}

// Session is one fixed-length bucket of aggregated, scored activity for a
// user. Exactly one session exists per (UserID, SessionStart); re-running
// aggregation over the same window refines the existing record in place.
type Session struct {
	UserID          string        `json:"userId"`
	EmployeeID      string        `json:"employeeId,omitempty"`
	SessionStart    time.Time     `json:"sessionStart"`
	SessionEnd      time.Time     `json:"sessionEnd"`
	DurationMinutes int           `json:"sessionDurationMinutes"`
	Status          SessionStatus `json:"status"`

	Screenshots []ScreenshotRef `json:"screenshots,omitempty"`

	AppUsageSummary     []AppSummary     `json:"appUsageSummary"`
	WebsiteVisitSummary []WebsiteSummary `json:"websiteVisitSummary"`
	KeystrokeSummary    KeystrokeSummary `json:"keystrokeSummary"`
	MouseSummary        MouseSummary     `json:"mouseActivitySummary"`

	// Scalar time sums in seconds across all source samples.
	TotalActiveTime  int64 `json:"totalActiveTime"`
	ProductiveTime   int64 `json:"productiveTime"`
	NeutralTime      int64 `json:"neutralTime"`
	UnproductiveTime int64 `json:"unproductiveTime"`

	TopApps     []AppSummary     `json:"topApps"`
	TopWebsites []WebsiteSummary `json:"topWebsites"`

	Analysis Analysis `json:"aiAnalysis"`

	CaptureCount    int      `json:"captureCount"`
	SourceSampleIDs []string `json:"sourceSampleIds,omitempty"`
}

// EffectiveTotalSeconds is the denominator used for scoring: the reported
// active time when nonzero, otherwise the summed per-app duration. Returns
// 0 only when the session truly has no time data.
func (s *Session) EffectiveTotalSeconds() int64 {
	if s.TotalActiveTime > 0 {
		return s.TotalActiveTime
	}
	var sum int64
	for _, a := range s.AppUsageSummary {
		sum += a.TotalDuration
	}
	return sum
}
