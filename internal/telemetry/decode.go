package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoUser is returned when a payload carries no user identifier.
var ErrNoUser = errors.New("sample has no user id")

// ErrNoTimestamp is returned when a payload carries no usable timestamp.
var ErrNoTimestamp = errors.New("sample has no observation timestamp")

// wireSample mirrors RawSample but keeps timestamp fields loose, because
// agent versions disagree on whether timestamps are epoch millis or RFC 3339.
type wireSample struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	EmployeeID string          `json:"employeeId"`
	ObservedAt json.RawMessage `json:"observedAt"`

	AppUsage      []AppUsage      `json:"appUsage"`
	TopApps       []AppUsage      `json:"topApps"`
	WebsiteVisits []WebsiteVisit  `json:"websiteVisits"`
	Keystrokes    *Keystrokes     `json:"keystrokes"`
	Mouse         *MouseActivity  `json:"mouseActivity"`
	Screenshot    *wireScreenshot `json:"screenshot"`

	TotalActiveTime  int64 `json:"totalActiveTime"`
	ProductiveTime   int64 `json:"productiveTime"`
	NeutralTime      int64 `json:"neutralTime"`
	UnproductiveTime int64 `json:"unproductiveTime"`

	Status string `json:"status"`
}

type wireScreenshot struct {
	URL         string          `json:"url"`
	Data        string          `json:"data"`
	CapturedAt  json.RawMessage `json:"capturedAt"`
	CaptureType string          `json:"captureType"`
}

// Decode parses one capture-agent payload into a RawSample, filling safe
// defaults for absent optional fields. It fails only on structurally alien
// documents or when the user id / timestamp are missing.
func Decode(data []byte) (*RawSample, error) {
	var w wireSample
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decoding sample: %w", err)
	}

	if strings.TrimSpace(w.UserID) == "" {
		return nil, ErrNoUser
	}

	observedAt, err := parseTimestamp(w.ObservedAt)
	if err != nil {
		return nil, err
	}

	s := &RawSample{
		ID:               w.ID,
		UserID:           w.UserID,
		EmployeeID:       w.EmployeeID,
		ObservedAt:       observedAt,
		AppUsage:         w.AppUsage,
		TopApps:          w.TopApps,
		WebsiteVisits:    w.WebsiteVisits,
		TotalActiveTime:  w.TotalActiveTime,
		ProductiveTime:   w.ProductiveTime,
		NeutralTime:      w.NeutralTime,
		UnproductiveTime: w.UnproductiveTime,
		Status:           Status(w.Status),
	}

	if w.Keystrokes != nil {
		s.Keystrokes = *w.Keystrokes
	}
	if w.Mouse != nil {
		s.Mouse = *w.Mouse
	}
	if w.Screenshot != nil {
		capturedAt, err := parseTimestamp(w.Screenshot.CapturedAt)
		if err != nil {
			// A screenshot without a timestamp inherits the sample's.
			capturedAt = observedAt
		}
		s.Screenshot = &Screenshot{
			URL:         w.Screenshot.URL,
			Data:        w.Screenshot.Data,
			CapturedAt:  capturedAt,
			CaptureType: w.Screenshot.CaptureType,
		}
	}

	if s.Status == "" {
		s.Status = StatusPending
	}

	return s, nil
}

// DecodeBatch parses a payload holding either a single sample object or a
// JSON array of samples. Malformed entries inside an array are skipped and
// counted rather than failing the batch.
func DecodeBatch(data []byte) (samples []*RawSample, skipped int, err error) {
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	if strings.HasPrefix(trimmed, "[") {
		var raws []json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, 0, fmt.Errorf("decoding sample array: %w", err)
		}
		for _, raw := range raws {
			s, err := Decode(raw)
			if err != nil {
				skipped++
				continue
			}
			samples = append(samples, s)
		}
		return samples, skipped, nil
	}

	s, err := Decode(data)
	if err != nil {
		return nil, 0, err
	}
	return []*RawSample{s}, 0, nil
}

// parseTimestamp accepts epoch milliseconds (JSON number) or an RFC 3339
// string, returning a UTC time.
func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, ErrNoTimestamp
	}

	var millis int64
	if err := json.Unmarshal(raw, &millis); err == nil {
		if millis <= 0 {
			return time.Time{}, ErrNoTimestamp
		}
		return time.UnixMilli(millis).UTC(), nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		t, err := time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", str, err)
		}
		return t.UTC(), nil
	}

	return time.Time{}, ErrNoTimestamp
}
