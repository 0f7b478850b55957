package output

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/workpulse/workpulse/internal/batch"
	"github.com/workpulse/workpulse/internal/engine"
)

// RunResults renders the per-user outcome table for one batch run.
func RunResults(results []batch.UserResult) string {
	var sb strings.Builder
	sb.WriteString(Section("Aggregation run"))
	sb.WriteString("\n\n")

	if len(results) == 0 {
		sb.WriteString(StyleMuted.Render(" No users with unprocessed samples in the lookback window."))
		sb.WriteString("\n")
		return sb.String()
	}

	table := NewTable("USER", "SESSIONS", "STATUS", "ERROR")
	var created, failed int
	for _, r := range results {
		status, rendered := "ok", StyleGood.Render("ok")
		if !r.Success {
			status, rendered = "failed", StyleBad.Render("failed")
			failed++
		}
		created += r.SessionsCreated
		table.AddStyledRow(
			[]string{r.UserID, strconv.Itoa(r.SessionsCreated), status, r.Error},
			[]string{r.UserID, strconv.Itoa(r.SessionsCreated), rendered, StyleMuted.Render(r.Error)},
		)
	}
	sb.WriteString(table.Render())

	sb.WriteString("\n ")
	sb.WriteString(StyleBold.Render(fmt.Sprintf("%d sessions across %d users", created, len(results))))
	if failed > 0 {
		sb.WriteString(StyleBad.Render(fmt.Sprintf(", %d users failed", failed)))
	}
	sb.WriteString("\n")
	return sb.String()
}

// Sessions renders a user's stored sessions, one row per bucket.
func Sessions(sessions []*engine.Session) string {
	var sb strings.Builder

	if len(sessions) == 0 {
		sb.WriteString(StyleMuted.Render(" No sessions recorded."))
		sb.WriteString("\n")
		return sb.String()
	}

	table := NewTable("START", "END", "PROD", "FOCUS", "EFF", "TOP APP", "CAPTURES")
	for _, s := range sessions {
		topApp := ""
		if len(s.TopApps) > 0 {
			topApp = fmt.Sprintf("%s (%d%%)", s.TopApps[0].AppName, s.TopApps[0].Percentage)
		}
		start := s.SessionStart.UTC().Format("15:04")
		end := s.SessionEnd.UTC().Format("15:04")
		prod := strconv.Itoa(s.Analysis.ProductivityScore)
		focus := strconv.Itoa(s.Analysis.FocusScore)
		eff := strconv.Itoa(s.Analysis.EfficiencyScore)
		captures := strconv.Itoa(s.CaptureCount)

		table.AddStyledRow(
			[]string{start, end, prod, focus, eff, topApp, captures},
			[]string{start, end,
				Score(s.Analysis.ProductivityScore),
				Score(s.Analysis.FocusScore),
				Score(s.Analysis.EfficiencyScore),
				topApp, captures},
		)
	}
	sb.WriteString(table.Render())
	return sb.String()
}

// SessionDetail renders one session's narrative block.
func SessionDetail(s *engine.Session) string {
	var sb strings.Builder
	sb.WriteString(Section(fmt.Sprintf("Session %s – %s",
		s.SessionStart.UTC().Format(time.RFC3339), s.SessionEnd.UTC().Format("15:04"))))
	sb.WriteString("\n\n ")
	sb.WriteString(s.Analysis.Summary)
	sb.WriteString("\n")

	for _, in := range s.Analysis.Insights {
		sb.WriteString(fmt.Sprintf("   • %s\n", in))
	}
	if len(s.Analysis.Recommendations) > 0 {
		sb.WriteString(StyleMuted.Render(" Recommendations:"))
		sb.WriteString("\n")
		for _, r := range s.Analysis.Recommendations {
			sb.WriteString(fmt.Sprintf("   • %s\n", r))
		}
	}
	return sb.String()
}
