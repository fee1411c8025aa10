package scoring

import (
	"fmt"
	"strings"

	"github.com/flowlogic-ai/lead-intake/internal/model"
)

// regulatedIndustries are sectors where automation work carries compliance
// obligations worth surfacing to the sales team.
var regulatedIndustries = map[string]bool{
	"healthcare": true,
	"finance":    true,
	"insurance":  true,
	"legal":      true,
}

// buildInsights emits advisory observations about the submission. These are
// annotations for the sales team, never scored.
func buildInsights(sub *model.LeadSubmission) []string {
	var insights []string

	if sub.Budget == model.Budget100KPlus || sub.Budget == model.Budget50To100K {
		insights = append(insights, "Budget bracket supports a multi-phase engagement.")
	}
	if sub.Timeline == model.TimelineImmediate {
		insights = append(insights, "Lead wants to start immediately; fast follow-up matters here.")
	}
	if len(sub.ProjectIdeas) >= 2 {
		insights = append(insights, fmt.Sprintf("Scope is already decomposed into %d named projects.", len(sub.ProjectIdeas)))
	}
	if regulatedIndustries[strings.ToLower(sub.Industry)] {
		insights = append(insights, fmt.Sprintf("Operates in a regulated industry (%s); compliance review belongs in the proposal.", sub.Industry))
	}
	if len(sub.IntegrationNeeds) >= 4 {
		insights = append(insights, "Broad integration surface; expect discovery work across several systems.")
	}
	if sub.BusinessSize == model.Size200Plus || sub.BusinessSize == model.Size51To200 {
		insights = append(insights, "Larger team; change management and rollout planning will be part of the engagement.")
	}

	return insights
}

// buildRedFlags emits warnings about mismatches and vagueness in the
// submission.
func buildRedFlags(sub *model.LeadSubmission) []string {
	var flags []string

	// Budget-vs-scope mismatch: several named projects but a bottom-bracket
	// budget rarely converts without rescoping.
	if sub.Budget == model.BudgetUnder10K && len(sub.ProjectIdeas) >= 2 {
		flags = append(flags, "Budget bracket is the lowest while multiple projects are requested; scope and budget are misaligned.")
	}
	if sub.Budget == model.BudgetNotSure && sub.Timeline == model.Timeline6MoPlus {
		flags = append(flags, "No budget commitment and a 6+ month horizon; likely early-stage research.")
	}
	if len(sub.ProjectDescription) > 0 && len(sub.ProjectDescription) < 50 {
		flags = append(flags, "Project description is very short; the ask is not yet articulated.")
	}
	if len(sub.GoalDescription) == 0 && len(sub.ProjectIdeas) == 0 {
		flags = append(flags, "No goal description and no project ideas; qualification call needed before scoping.")
	}

	return flags
}

// buildOpportunities emits upsell and solution angles suggested by the
// submission fields.
func buildOpportunities(sub *model.LeadSubmission) []string {
	var opps []string

	if sub.HasIntegrationTag(model.IntegrationCustomSoftware) {
		opps = append(opps, "Custom software integration requested; positions a bespoke build alongside off-the-shelf automation.")
	}
	if sub.DataVolume == model.DataVolumeHigh || sub.DataVolume == model.DataVolumeVeryHigh {
		opps = append(opps, "High data volume; pipeline and reporting automation compound the ROI story.")
	}
	if sub.MonthlyVolume == "10k+" || sub.MonthlyVolume == "1k-10k" {
		opps = append(opps, "Transaction volume is high enough that per-unit time savings are material.")
	}
	if regulatedIndustries[strings.ToLower(sub.Industry)] {
		opps = append(opps, "Compliance-aware automation is a differentiator in this industry.")
	}
	if len(sub.CurrentTools) > 0 && strings.Contains(strings.ToLower(sub.CurrentTools), "spreadsheet") {
		opps = append(opps, "Spreadsheet-centric workflow; structured data migration is a natural first project.")
	}

	return opps
}
