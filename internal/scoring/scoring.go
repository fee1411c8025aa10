// Package scoring computes the weighted lead quality score from a raw
// submission. Evaluate is a total function: it performs no I/O and never
// fails for any valid LeadSubmission.
package scoring

import (
	"fmt"
	"strings"

	"github.com/flowlogic-ai/lead-intake/internal/model"
)

// MaxScore is the ceiling of the summed sub-scores.
const MaxScore = 140

// Rating thresholds as a fraction of MaxScore.
const (
	highThreshold   = 0.70
	mediumThreshold = 0.45
)

// budgetPoints maps each budget bracket to its fixed score (max 30).
// not_sure lands mid-table so uncertainty alone is not penalized.
var budgetPoints = map[string]int{
	model.BudgetUnder10K: 5,
	model.Budget10To25K:  12,
	model.Budget25To50K:  18,
	model.Budget50To100K: 24,
	model.Budget100KPlus: 30,
	model.BudgetNotSure:  15,
}

// timelinePoints maps each timeline bracket to its urgency score (max 20).
var timelinePoints = map[string]int{
	model.TimelineImmediate: 20,
	model.Timeline1To3Mo:    15,
	model.Timeline3To6Mo:    10,
	model.Timeline6MoPlus:   5,
}

// sizePoints maps each employee bracket to its score (max 10).
var sizePoints = map[string]int{
	model.Size1To5:    2,
	model.Size6To20:   4,
	model.Size21To50:  6,
	model.Size51To200: 8,
	model.Size200Plus: 10,
}

// callIntentTimeline and callIntentBudget feed the sales-readiness proxy
// (max 25). There is no explicit "book a call" field on the form, so
// immediacy, spend tier and detail length stand in for it.
var callIntentTimeline = map[string]int{
	model.TimelineImmediate: 10,
	model.Timeline1To3Mo:    7,
	model.Timeline3To6Mo:    4,
	model.Timeline6MoPlus:   0,
}

var callIntentBudget = map[string]int{
	model.BudgetUnder10K: 1,
	model.Budget10To25K:  3,
	model.Budget25To50K:  6,
	model.Budget50To100K: 8,
	model.Budget100KPlus: 10,
	model.BudgetNotSure:  4,
}

// dataVolumePoints feeds integration complexity (1-4 points).
var dataVolumePoints = map[string]int{
	model.DataVolumeLow:      1,
	model.DataVolumeMedium:   2,
	model.DataVolumeHigh:     3,
	model.DataVolumeVeryHigh: 4,
}

// urgencyKeywords are distress/urgency terms scanned case-insensitively
// across the three free-text fields.
var urgencyKeywords = []string{
	"asap", "urgent", "immediately", "right away", "yesterday",
	"overwhelmed", "drowning", "losing", "falling behind", "can't keep up",
	"critical", "struggling", "bottleneck", "burning out",
}

// Evaluate computes the full LeadScore for a submission.
func Evaluate(sub *model.LeadSubmission) *model.LeadScore {
	breakdown := []model.ScoreEntry{
		scoreBudget(sub),
		scoreProjectDefinition(sub),
		scoreTimeframe(sub),
		scoreCallIntent(sub),
		scoreBusinessSize(sub),
		scoreUrgencyLanguage(sub),
		scoreClarity(sub),
		scoreIntegrationComplexity(sub),
	}

	total := 0
	for _, e := range breakdown {
		total += e.Score
	}

	return &model.LeadScore{
		TotalScore:    total,
		MaxScore:      MaxScore,
		Rating:        rate(total),
		Breakdown:     breakdown,
		Insights:      buildInsights(sub),
		RedFlags:      buildRedFlags(sub),
		Opportunities: buildOpportunities(sub),
	}
}

// rate maps a total score onto the three-level rating.
func rate(total int) model.Rating {
	pct := float64(total) / float64(MaxScore)
	switch {
	case pct >= highThreshold:
		return model.RatingHigh
	case pct >= mediumThreshold:
		return model.RatingMedium
	default:
		return model.RatingLow
	}
}

func scoreBudget(sub *model.LeadSubmission) model.ScoreEntry {
	pts := budgetPoints[sub.Budget]
	return model.ScoreEntry{
		Category: "budget",
		Score:    pts,
		MaxScore: 30,
		Reason:   fmt.Sprintf("budget bracket %q", sub.Budget),
	}
}

// scoreProjectDefinition rewards concreteness of the ask: explicitly listed
// projects beat broad goals, which beat prose alone.
func scoreProjectDefinition(sub *model.LeadSubmission) model.ScoreEntry {
	entry := model.ScoreEntry{Category: "project_definition", MaxScore: 25}

	ideas := len(sub.ProjectIdeas)
	broadGoals := len(sub.AutomationGoals) >= 3
	longProcess := len(sub.ProcessDescription) > 200

	switch {
	case ideas >= 2:
		entry.Score = 25
		entry.Reason = fmt.Sprintf("%d explicit project ideas", ideas)
	case ideas == 1 && (broadGoals || longProcess):
		entry.Score = 18
		entry.Reason = "one project idea with supporting goal breadth or process detail"
	case broadGoals && longProcess:
		entry.Score = 12
		entry.Reason = "broad goals and detailed process description, no named projects"
	default:
		entry.Score = 0
		entry.Reason = "no concrete project definition"
	}
	return entry
}

func scoreTimeframe(sub *model.LeadSubmission) model.ScoreEntry {
	pts := timelinePoints[sub.Timeline]
	return model.ScoreEntry{
		Category: "timeframe",
		Score:    pts,
		MaxScore: 20,
		Reason:   fmt.Sprintf("timeline bracket %q", sub.Timeline),
	}
}

// scoreCallIntent is a proxy for sales-readiness: no booking field exists on
// the form, so it composites immediacy, spend tier, and detail length.
func scoreCallIntent(sub *model.LeadSubmission) model.ScoreEntry {
	pts := callIntentTimeline[sub.Timeline] + callIntentBudget[sub.Budget]

	detail := len(sub.ProjectDescription) + len(sub.ProcessDescription) + len(sub.GoalDescription)
	switch {
	case detail > 400:
		pts += 5
	case detail > 150:
		pts += 3
	case detail > 0:
		pts += 1
	}

	return model.ScoreEntry{
		Category: "call_intent",
		Score:    pts,
		MaxScore: 25,
		Reason:   "composite of timeline immediacy, budget tier, and submission detail",
	}
}

func scoreBusinessSize(sub *model.LeadSubmission) model.ScoreEntry {
	pts := sizePoints[sub.BusinessSize]
	return model.ScoreEntry{
		Category: "business_size",
		Score:    pts,
		MaxScore: 10,
		Reason:   fmt.Sprintf("employee bracket %q", sub.BusinessSize),
	}
}

func scoreUrgencyLanguage(sub *model.LeadSubmission) model.ScoreEntry {
	// Timeline contributes up to 5.
	var pts int
	switch sub.Timeline {
	case model.TimelineImmediate:
		pts = 5
	case model.Timeline1To3Mo:
		pts = 4
	case model.Timeline3To6Mo:
		pts = 2
	default:
		pts = 1
	}

	matches := countUrgencyKeywords(sub)
	switch {
	case matches >= 3:
		pts += 5
	case matches == 2:
		pts += 3
	case matches == 1:
		pts += 2
	}

	return model.ScoreEntry{
		Category: "urgency_language",
		Score:    pts,
		MaxScore: 10,
		Reason:   fmt.Sprintf("timeline urgency plus %d urgency keyword match(es)", matches),
	}
}

// countUrgencyKeywords scans the three free-text fields for distress terms.
// Each keyword counts once regardless of how many fields repeat it.
func countUrgencyKeywords(sub *model.LeadSubmission) int {
	haystack := strings.ToLower(
		sub.ProjectDescription + " " + sub.ProcessDescription + " " + sub.GoalDescription,
	)
	count := 0
	for _, kw := range urgencyKeywords {
		if strings.Contains(haystack, kw) {
			count++
		}
	}
	return count
}

// scoreClarity credits raw string length thresholds, not word counts.
func scoreClarity(sub *model.LeadSubmission) model.ScoreEntry {
	pts := 0
	if len(sub.ProjectDescription) > 200 {
		pts += 3
	}
	if len(sub.ProcessDescription) > 200 {
		pts += 3
	}
	if len(sub.SuccessMetrics) > 100 {
		pts += 2
	}
	if len(sub.ProjectIdeas) >= 1 {
		pts += 2
	}
	return model.ScoreEntry{
		Category: "clarity",
		Score:    pts,
		MaxScore: 10,
		Reason:   "additive credit for description, process, metrics detail and named projects",
	}
}

func scoreIntegrationComplexity(sub *model.LeadSubmission) model.ScoreEntry {
	pts := 0
	switch {
	case len(sub.IntegrationNeeds) >= 4:
		pts += 4
	case len(sub.IntegrationNeeds) >= 2:
		pts += 2
	}
	if sub.HasIntegrationTag(model.IntegrationCustomSoftware) {
		pts += 2
	}
	pts += dataVolumePoints[sub.DataVolume]

	return model.ScoreEntry{
		Category: "integration_complexity",
		Score:    pts,
		MaxScore: 10,
		Reason:   fmt.Sprintf("%d integration categories, data volume %q", len(sub.IntegrationNeeds), sub.DataVolume),
	}
}
