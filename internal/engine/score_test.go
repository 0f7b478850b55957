package engine

import (
	"strings"
	"testing"

	"github.com/workpulse/workpulse/internal/classify"
)

func productiveSession() *Session {
	return &Session{
		TotalActiveTime: 1800,
		ProductiveTime:  1440,
		AppUsageSummary: []AppSummary{
			{AppName: "VS Code", TotalDuration: 1200, Category: classify.Productive, Percentage: 67},
			{AppName: "Terminal", TotalDuration: 600, Category: classify.Productive, Percentage: 33},
		},
		TopApps: []AppSummary{
			{AppName: "VS Code", TotalDuration: 1200, Category: classify.Productive, Percentage: 67},
			{AppName: "Terminal", TotalDuration: 600, Category: classify.Productive, Percentage: 33},
		},
		KeystrokeSummary: KeystrokeSummary{TotalCount: 1200},
		MouseSummary:     MouseSummary{TotalClicks: 300},
	}
}

func TestScore_ProductivityBounded(t *testing.T) {
	s := productiveSession()
	a := Score(s, 30)
	if a.ProductivityScore < 0 || a.ProductivityScore > 100 {
		t.Errorf("productivityScore = %d, out of [0,100]", a.ProductivityScore)
	}
	if a.ProductivityScore != 80 {
		t.Errorf("productivityScore = %d, want 80", a.ProductivityScore)
	}
}

func TestScore_ZeroEffectiveTotal(t *testing.T) {
	a := Score(&Session{}, 30)
	if a.ProductivityScore != 0 {
		t.Errorf("productivityScore = %d, want 0 with no time data", a.ProductivityScore)
	}
}

func TestFocusScore_Bands(t *testing.T) {
	cases := []struct {
		name     string
		apps     int
		topShare int
		want     int
	}{
		{"dominant single app", 2, 80, 90},
		{"three apps half share", 3, 50, 90},
		{"five apps moderate share", 5, 35, 70},
		{"eight apps fragmented", 8, 20, 50},
		{"many apps", 12, 10, 30},
	}
	for _, tc := range cases {
		s := &Session{}
		for i := 0; i < tc.apps; i++ {
			s.AppUsageSummary = append(s.AppUsageSummary, AppSummary{AppName: "a"})
		}
		s.TopApps = []AppSummary{{AppName: "a", Percentage: tc.topShare}}
		if got := focusScore(s); got != tc.want {
			t.Errorf("%s: focusScore = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestFocusScore_OnlyDocumentedBands(t *testing.T) {
	valid := map[int]bool{90: true, 70: true, 50: true, 30: true}
	for apps := 0; apps <= 15; apps++ {
		for share := 0; share <= 100; share += 10 {
			s := &Session{TopApps: []AppSummary{{Percentage: share}}}
			for i := 0; i < apps; i++ {
				s.AppUsageSummary = append(s.AppUsageSummary, AppSummary{})
			}
			if got := focusScore(s); !valid[got] {
				t.Fatalf("focusScore(%d apps, %d%%) = %d, not a documented band", apps, share, got)
			}
		}
	}
}

func TestEfficiencyScore_Bands(t *testing.T) {
	cases := []struct {
		name       string
		keystrokes int64
		clicks     int64
		want       int
	}{
		{"healthy activity", 1200, 300, 85},      // 50/min
		{"light activity", 400, 50, 70},          // 15/min
		{"elevated", 3300, 300, 75},              // 120/min
		{"sparse", 200, 40, 50},                  // 8/min
		{"possible automation", 5000, 500, 60},   // ~183/min
		{"idle-like", 60, 30, 30},                // 3/min
		{"boundary twenty", 600, 0, 85},          // exactly 20/min
		{"boundary one hundred", 3000, 0, 85},    // exactly 100/min
		{"boundary one fifty", 4500, 0, 75},      // exactly 150/min
	}
	for _, tc := range cases {
		s := &Session{
			KeystrokeSummary: KeystrokeSummary{TotalCount: tc.keystrokes},
			MouseSummary:     MouseSummary{TotalClicks: tc.clicks},
		}
		if got := efficiencyScore(s, 30); got != tc.want {
			t.Errorf("%s: efficiencyScore = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestScore_SummaryMentionsTopApp(t *testing.T) {
	a := Score(productiveSession(), 30)
	if !strings.Contains(a.Summary, "30-minute session") {
		t.Errorf("summary missing interval: %q", a.Summary)
	}
	if !strings.Contains(a.Summary, "VS Code") {
		t.Errorf("summary missing top app: %q", a.Summary)
	}
	if !strings.Contains(a.Summary, "Terminal") {
		t.Errorf("summary missing secondary app: %q", a.Summary)
	}
}

func TestScore_SummaryWithoutApps(t *testing.T) {
	a := Score(&Session{TotalActiveTime: 600}, 30)
	if strings.Contains(a.Summary, "Primary focus") {
		t.Errorf("summary should omit app clause with no apps: %q", a.Summary)
	}
}

func TestScore_InsightsConditional(t *testing.T) {
	s := productiveSession()
	s.WebsiteVisitSummary = []WebsiteSummary{
		{Domain: "github.com", VisitCount: 7, TotalDuration: 300},
		{Domain: "stackoverflow.com", VisitCount: 12, TotalDuration: 200},
	}
	a := Score(s, 30)

	foundVisits := false
	for _, in := range a.Insights {
		if strings.Contains(in, "stackoverflow.com") && strings.Contains(in, "12") {
			foundVisits = true
		}
	}
	if !foundVisits {
		t.Errorf("insights missing most-visited site by count: %v", a.Insights)
	}
}

func TestScore_ExcellentFocusInsight(t *testing.T) {
	a := Score(productiveSession(), 30) // 80% productivity
	found := false
	for _, in := range a.Insights {
		if strings.Contains(in, "Excellent focus") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected excellent-focus insight at >=70%%: %v", a.Insights)
	}
	if len(a.TopAchievements) != 1 {
		t.Errorf("topAchievements = %v, want single fixed entry at >=70%%", a.TopAchievements)
	}
}

func TestScore_Recommendations(t *testing.T) {
	low := &Session{
		TotalActiveTime: 1800,
		ProductiveTime:  300,
	}
	for i := 0; i < 7; i++ {
		low.AppUsageSummary = append(low.AppUsageSummary, AppSummary{AppName: "a"})
	}
	a := Score(low, 30)

	if len(a.Recommendations) != 3 {
		t.Fatalf("got %d recommendations, want 3 (distraction + narrowing + break): %v",
			len(a.Recommendations), a.Recommendations)
	}
	last := a.Recommendations[len(a.Recommendations)-1]
	if !strings.Contains(last, "breaks") {
		t.Errorf("break reminder should always be last: %v", a.Recommendations)
	}
}

func TestScore_AreasOfImprovementEmpty(t *testing.T) {
	a := Score(productiveSession(), 30)
	if len(a.AreasOfImprovement) != 0 {
		t.Errorf("areasOfImprovement = %v, want empty", a.AreasOfImprovement)
	}
	if a.AreasOfImprovement == nil {
		t.Errorf("areasOfImprovement should be an empty list, not nil")
	}
}
