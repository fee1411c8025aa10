package research

import (
	"fmt"
	"strings"

	"github.com/flowlogic-ai/lead-intake/internal/model"
)

const systemPrompt = `You are a senior automation consultant preparing internal research for a sales team. Be specific to the business described; avoid generic filler.`

// buildPrompt assembles the single research request embedding the full lead
// context and both prior scores, asking for eight labeled sections in a
// fixed order.
func buildPrompt(sub *model.LeadSubmission, score *model.LeadScore, presence *model.WebPresenceScore) string {
	var b strings.Builder

	b.WriteString("Research the following prospective client and produce structured notes.\n\n")

	b.WriteString("## Lead\n")
	fmt.Fprintf(&b, "Company: %s\n", sub.Company)
	fmt.Fprintf(&b, "Industry: %s\n", sub.Industry)
	fmt.Fprintf(&b, "Employees: %s\n", sub.BusinessSize)
	if sub.Website != "" {
		fmt.Fprintf(&b, "Website: %s\n", sub.Website)
	}
	fmt.Fprintf(&b, "Timeline: %s\n", sub.Timeline)
	fmt.Fprintf(&b, "Budget: %s\n", sub.Budget)
	if sub.CurrentTools != "" {
		fmt.Fprintf(&b, "Current tooling: %s\n", sub.CurrentTools)
	}
	if sub.ProcessDescription != "" {
		fmt.Fprintf(&b, "Current process: %s\n", sub.ProcessDescription)
	}
	if len(sub.AutomationGoals) > 0 {
		fmt.Fprintf(&b, "Automation goals: %s\n", strings.Join(sub.AutomationGoals, ", "))
	}
	if sub.GoalDescription != "" {
		fmt.Fprintf(&b, "Goal description: %s\n", sub.GoalDescription)
	}
	for _, idea := range sub.ProjectIdeas {
		fmt.Fprintf(&b, "Project idea: %s — %s (priority: %s)\n", idea.Title, idea.Description, idea.Priority)
	}
	if sub.ToolsToIntegrate != "" {
		fmt.Fprintf(&b, "Tools to integrate: %s\n", sub.ToolsToIntegrate)
	}
	if sub.ProjectDescription != "" {
		fmt.Fprintf(&b, "Project description: %s\n", sub.ProjectDescription)
	}
	if sub.SuccessMetrics != "" {
		fmt.Fprintf(&b, "Success metrics: %s\n", sub.SuccessMetrics)
	}

	if score != nil {
		b.WriteString("\n## Lead score\n")
		fmt.Fprintf(&b, "Total: %d/%d (%s)\n", score.TotalScore, score.MaxScore, score.Rating)
		for _, e := range score.Breakdown {
			fmt.Fprintf(&b, "- %s: %d/%d\n", e.Category, e.Score, e.MaxScore)
		}
	}

	if presence != nil {
		b.WriteString("\n## Web presence\n")
		fmt.Fprintf(&b, "Overall: %d/100, maturity %s\n", presence.OverallScore, presence.DigitalMaturity)
		for _, f := range presence.Factors {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}

	b.WriteString(`
Respond with exactly these eight numbered sections, in this order:

1. Industry Insights — current automation trends in this industry.
2. Competitive Analysis — how automation positions them against peers.
3. Automation Opportunities — bulleted list of concrete opportunities for this business.
4. ROI Analysis — expected payback narrative grounded in their volume and team size.
5. Implementation Strategy — phased rollout narrative.
6. Challenges — bulleted list of likely obstacles.
7. Recommended Approach — how we should engage this lead.
8. Style Guide Topics — bulleted list of topics to seed a company voice guide and a sales engagement guide for them.
`)

	return b.String()
}
