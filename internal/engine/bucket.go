package engine

import "time"

// Bucket computes the aligned session window containing t for the given
// interval. Boundaries are anchored to absolute epoch time by floor division
// on epoch milliseconds, so the same wall-clock interval always maps to the
// same bucket regardless of which samples exist. Windows are start-inclusive
// and end-exclusive: a timestamp exactly on a boundary belongs to the bucket
// it starts.
func Bucket(t time.Time, intervalMinutes int) (start, end time.Time) {
	size := int64(intervalMinutes) * 60_000
	startMs := (t.UnixMilli() / size) * size
	return time.UnixMilli(startMs).UTC(), time.UnixMilli(startMs + size).UTC()
}
