package engine

import (
	"fmt"
	"math"
)

// Score derives the productivity, focus, and efficiency scores plus the
// narrative summary for an aggregated session.
func Score(s *Session, intervalMinutes int) Analysis {
	a := Analysis{
		Insights:           []string{},
		Recommendations:    []string{},
		TopAchievements:    []string{},
		AreasOfImprovement: []string{},
	}

	effective := s.EffectiveTotalSeconds()
	if effective > 0 {
		a.ProductivityScore = int(math.Round(float64(s.ProductiveTime) / float64(effective) * 100))
	}
	a.FocusScore = focusScore(s)
	a.EfficiencyScore = efficiencyScore(s, intervalMinutes)

	a.Summary = buildSummary(s, a.ProductivityScore, intervalMinutes)
	a.Insights = buildInsights(s, a.ProductivityScore)
	a.Recommendations = buildRecommendations(s, a.ProductivityScore)

	if a.ProductivityScore >= 70 {
		a.TopAchievements = append(a.TopAchievements, "Maintained a highly productive session")
	}

	return a
}

// focusScore bands on distinct app count and the top app's time share.
// Fewer context switches with one dominant application indicates sustained
// focus; many apps each holding a small share indicates fragmentation.
func focusScore(s *Session) int {
	appCount := len(s.AppUsageSummary)
	topShare := 0
	if len(s.TopApps) > 0 {
		topShare = s.TopApps[0].Percentage
	}

	switch {
	case appCount <= 3 && topShare >= 50:
		return 90
	case appCount <= 5 && topShare >= 30:
		return 70
	case appCount <= 8:
		return 50
	default:
		return 30
	}
}

// efficiencyScore bands on input actions per minute. The 100-150 range is
// elevated but plausible; above 150 suggests automation or noise and is
// discounted slightly.
func efficiencyScore(s *Session, intervalMinutes int) int {
	if intervalMinutes <= 0 {
		return 30
	}
	actions := float64(s.KeystrokeSummary.TotalCount + s.MouseSummary.TotalClicks)
	perMinute := actions / float64(intervalMinutes)

	switch {
	case perMinute >= 20 && perMinute <= 100:
		return 85
	case perMinute > 100 && perMinute <= 150:
		return 75
	case perMinute > 150:
		return 60
	case perMinute >= 10:
		return 70
	case perMinute >= 5:
		return 50
	default:
		return 30
	}
}

func buildSummary(s *Session, productivity, intervalMinutes int) string {
	summary := fmt.Sprintf("%d-minute session with %d%% productivity.", intervalMinutes, productivity)

	if len(s.TopApps) > 0 {
		top := s.TopApps[0]
		summary += fmt.Sprintf(" Primary focus on %s (%d%% of time).", top.AppName, top.Percentage)
	}
	if len(s.TopApps) > 1 {
		summary += fmt.Sprintf(" Also used %s.", s.TopApps[1].AppName)
	}
	if visits := totalVisits(s); visits > 0 {
		summary += fmt.Sprintf(" Visited %d websites.", len(s.WebsiteVisitSummary))
	}
	if len(s.Screenshots) > 0 {
		summary += fmt.Sprintf(" %d screenshots captured.", len(s.Screenshots))
	}

	return summary
}

func buildInsights(s *Session, productivity int) []string {
	insights := []string{}

	if len(s.TopApps) > 0 {
		top := s.TopApps[0]
		insights = append(insights, fmt.Sprintf("Top application: %s (%d%% of session time)", top.AppName, top.Percentage))
	}

	if site, visits := mostVisitedSite(s); visits > 0 {
		insights = append(insights, fmt.Sprintf("Most visited website: %s (%d visits)", site, visits))
	}

	switch {
	case productivity >= 70:
		insights = append(insights, "Excellent focus maintained throughout this session")
	case productivity >= 50:
		insights = append(insights, "Good balance of productive work this session")
	}

	return insights
}

func buildRecommendations(s *Session, productivity int) []string {
	recs := []string{}

	if productivity < 50 {
		recs = append(recs, "Consider limiting time in distracting applications to improve productivity")
	}
	if len(s.AppUsageSummary) > 5 {
		recs = append(recs, "Try consolidating work into fewer applications to reduce context switching")
	}
	recs = append(recs, "Remember to take regular short breaks")

	return recs
}

// mostVisitedSite returns the domain with the highest visit count, which is
// not necessarily the one with the most time.
func mostVisitedSite(s *Session) (string, int) {
	domain, visits := "", 0
	for _, w := range s.WebsiteVisitSummary {
		if w.VisitCount > visits {
			domain, visits = w.Domain, w.VisitCount
		}
	}
	return domain, visits
}

func totalVisits(s *Session) int {
	total := 0
	for _, w := range s.WebsiteVisitSummary {
		total += w.VisitCount
	}
	return total
}
