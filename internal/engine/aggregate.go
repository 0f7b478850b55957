package engine

import (
	"math"
	"sort"
	"time"

	"github.com/workpulse/workpulse/internal/classify"
	"github.com/workpulse/workpulse/internal/telemetry"
)

// maxSummaryEntries caps the full app/website summary lists to bound
// session payload size. Top lists are always the first five entries.
const maxSummaryEntries = 20

// topEntries is the length of the topApps/topWebsites lists.
const topEntries = 5

type appAccum struct {
	name     string
	duration int64
	count    int
	category classify.Category
	explicit bool // category came from the sample, not the classifier
}

type siteAccum struct {
	domain   string
	url      string
	duration int64
	visits   int
	category classify.Category
	explicit bool
}

// BuildSessions partitions an ascending sample stream into aligned buckets
// and aggregates each bucket into a scored session. Ineligible samples are
// skipped. Bucket processing is strictly sequential: a change in computed
// bucket start closes the previous working set and opens a new one.
func BuildSessions(samples []*telemetry.RawSample, intervalMinutes int, c *classify.Classifier) []*Session {
	if intervalMinutes <= 0 || len(samples) == 0 {
		return nil
	}

	var sessions []*Session
	var run []*telemetry.RawSample
	var runStart, runEnd time.Time

	flush := func() {
		if len(run) == 0 {
			return
		}
		sess := AggregateBucket(run, runStart, runEnd, intervalMinutes, c)
		sess.Analysis = Score(sess, intervalMinutes)
		sessions = append(sessions, sess)
		run = nil
	}

	for _, s := range samples {
		if !s.Status.Eligible() {
			continue
		}
		start, end := Bucket(s.ObservedAt, intervalMinutes)
		if len(run) > 0 && !start.Equal(runStart) {
			flush()
		}
		if len(run) == 0 {
			runStart, runEnd = start, end
		}
		run = append(run, s)
	}
	flush()

	return sessions
}

// AggregateBucket folds one bucket's ordered samples into a session with
// per-app and per-website summaries, scalar sums, and bounded screenshots.
// Scoring is left to the caller.
func AggregateBucket(samples []*telemetry.RawSample, start, end time.Time, intervalMinutes int, c *classify.Classifier) *Session {
	sess := &Session{
		SessionStart:    start,
		SessionEnd:      end,
		DurationMinutes: intervalMinutes,
		Status:          StatusCompleted,
	}

	apps := make(map[string]*appAccum)
	var appOrder []string
	sites := make(map[string]*siteAccum)
	var siteOrder []string

	for _, s := range samples {
		if sess.UserID == "" {
			sess.UserID = s.UserID
		}
		if sess.EmployeeID == "" {
			sess.EmployeeID = s.EmployeeID
		}
		if s.ID != "" {
			sess.SourceSampleIDs = append(sess.SourceSampleIDs, s.ID)
		}

		// Detailed breakdown when present, low-fidelity top-apps list
		// otherwise. Never both, to avoid double counting.
		usage := s.AppUsage
		if len(usage) == 0 {
			usage = s.TopApps
		}
		for _, u := range usage {
			if u.AppName == "" {
				continue
			}
			acc, ok := apps[u.AppName]
			if !ok {
				acc = &appAccum{name: u.AppName}
				acc.category, acc.explicit = resolveCategory(u.Category, c.App(u.AppName))
				apps[u.AppName] = acc
				appOrder = append(appOrder, u.AppName)
			} else if !acc.explicit {
				if cat, explicit := resolveCategory(u.Category, acc.category); explicit {
					acc.category, acc.explicit = cat, true
				}
			}
			acc.duration += u.Duration
			acc.count++
		}

		for _, v := range s.WebsiteVisits {
			if v.Domain == "" {
				continue
			}
			acc, ok := sites[v.Domain]
			if !ok {
				acc = &siteAccum{domain: v.Domain, url: v.URL}
				acc.category, acc.explicit = resolveCategory(v.Category, c.Website(v.Domain))
				sites[v.Domain] = acc
				siteOrder = append(siteOrder, v.Domain)
			} else if !acc.explicit {
				if cat, explicit := resolveCategory(v.Category, acc.category); explicit {
					acc.category, acc.explicit = cat, true
				}
			}
			acc.duration += v.Duration
			acc.visits++
		}

		sess.KeystrokeSummary.TotalCount += s.Keystrokes.TotalCount
		sess.MouseSummary.TotalClicks += s.Mouse.Clicks
		sess.MouseSummary.TotalScrollDistance += s.Mouse.ScrollDistance
		sess.MouseSummary.TotalMovementDistance += s.Mouse.MovementDistance

		sess.TotalActiveTime += s.TotalActiveTime
		sess.ProductiveTime += s.ProductiveTime
		sess.NeutralTime += s.NeutralTime
		sess.UnproductiveTime += s.UnproductiveTime

		// At most one screenshot per session minute.
		if s.Screenshot != nil && len(sess.Screenshots) < intervalMinutes {
			sess.Screenshots = append(sess.Screenshots, ScreenshotRef{
				URL:         s.Screenshot.URL,
				Data:        s.Screenshot.Data,
				CapturedAt:  s.Screenshot.CapturedAt,
				CaptureType: s.Screenshot.CaptureType,
			})
		}
	}

	sess.CaptureCount = len(samples)
	sess.KeystrokeSummary.AveragePerMinute = int64(math.Round(
		float64(sess.KeystrokeSummary.TotalCount) / float64(intervalMinutes)))

	sess.AppUsageSummary = buildAppSummaries(apps, appOrder)
	sess.WebsiteVisitSummary = buildSiteSummaries(sites, siteOrder)

	sess.TopApps = topN(sess.AppUsageSummary, topEntries)
	sess.TopWebsites = topN(sess.WebsiteVisitSummary, topEntries)

	if len(sess.AppUsageSummary) > maxSummaryEntries {
		sess.AppUsageSummary = sess.AppUsageSummary[:maxSummaryEntries]
	}
	if len(sess.WebsiteVisitSummary) > maxSummaryEntries {
		sess.WebsiteVisitSummary = sess.WebsiteVisitSummary[:maxSummaryEntries]
	}

	return sess
}

// resolveCategory prefers an explicit sample category when present and not
// "unknown"; otherwise falls back to the given classifier result.
func resolveCategory(explicit string, fallback classify.Category) (classify.Category, bool) {
	switch explicit {
	case string(classify.Productive), string(classify.Neutral), string(classify.Distracting):
		return classify.Category(explicit), true
	}
	return fallback, false
}

func buildAppSummaries(apps map[string]*appAccum, order []string) []AppSummary {
	var total int64
	for _, acc := range apps {
		total += acc.duration
	}

	summaries := make([]AppSummary, 0, len(order))
	for _, name := range order {
		acc := apps[name]
		summaries = append(summaries, AppSummary{
			AppName:       acc.name,
			TotalDuration: acc.duration,
			Category:      acc.category,
			Percentage:    percentage(acc.duration, total),
		})
	}

	// Iteration order of the accumulator map is irrelevant: ordering is
	// computed here, duration descending with name as tiebreaker.
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalDuration > summaries[j].TotalDuration
	})
	return summaries
}

func buildSiteSummaries(sites map[string]*siteAccum, order []string) []WebsiteSummary {
	var total int64
	for _, acc := range sites {
		total += acc.duration
	}

	summaries := make([]WebsiteSummary, 0, len(order))
	for _, domain := range order {
		acc := sites[domain]
		summaries = append(summaries, WebsiteSummary{
			Domain:        acc.domain,
			URL:           acc.url,
			TotalDuration: acc.duration,
			VisitCount:    acc.visits,
			Category:      acc.category,
			Percentage:    percentage(acc.duration, total),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalDuration > summaries[j].TotalDuration
	})
	return summaries
}

// percentage returns duration as a share of total, rounded to the nearest
// integer, or 0 when the total is 0.
func percentage(duration, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(duration) / float64(total) * 100))
}

func topN[T any](list []T, n int) []T {
	if len(list) < n {
		n = len(list)
	}
	top := make([]T, n)
	copy(top, list[:n])
	return top
}
