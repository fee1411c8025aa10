package notify

import (
	"encoding/base64"
	"fmt"
	"html"
	"strings"

	"github.com/flowlogic-ai/lead-intake/internal/model"
	"github.com/flowlogic-ai/lead-intake/pkg/postmark"
)

// composeAck builds the instant acknowledgment from the raw submission only,
// so it can go out before any other stage has run.
func composeAck(sub *model.LeadSubmission) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("We received your automation inquiry, %s", firstName(sub.Name))

	var text strings.Builder
	fmt.Fprintf(&text, "Hi %s,\n\n", firstName(sub.Name))
	fmt.Fprintf(&text, "Thanks for telling us about %s. Your submission is in and our team is reviewing it now.\n\n", sub.Company)
	text.WriteString("What happens next:\n")
	text.WriteString("- We review your goals and current tooling\n")
	text.WriteString("- We prepare a tailored automation assessment\n")
	text.WriteString("- A specialist reaches out to schedule your discovery call\n\n")
	text.WriteString("Talk soon,\nThe FlowLogic Team\n")
	textBody = text.String()

	var h strings.Builder
	fmt.Fprintf(&h, "<p>Hi %s,</p>", html.EscapeString(firstName(sub.Name)))
	fmt.Fprintf(&h, "<p>Thanks for telling us about <strong>%s</strong>. Your submission is in and our team is reviewing it now.</p>", html.EscapeString(sub.Company))
	h.WriteString("<p>What happens next:</p><ul>")
	h.WriteString("<li>We review your goals and current tooling</li>")
	h.WriteString("<li>We prepare a tailored automation assessment</li>")
	h.WriteString("<li>A specialist reaches out to schedule your discovery call</li>")
	h.WriteString("</ul><p>Talk soon,<br>The FlowLogic Team</p>")
	htmlBody = h.String()

	return subject, htmlBody, textBody
}

// composeSales builds the internal triage notification. Score, presence, and
// research are all optional; sections for missing inputs are omitted.
func composeSales(sub *model.LeadSubmission, score *model.LeadScore, presence *model.WebPresenceScore, research *model.ResearchResult) (subject, htmlBody, textBody string) {
	rating := "Unscored"
	if score != nil {
		rating = string(score.Rating)
	}
	subject = fmt.Sprintf("[%s] New lead: %s (%s)", rating, sub.Company, sub.Name)

	var text strings.Builder
	fmt.Fprintf(&text, "New lead submission from %s at %s.\n\n", sub.Name, sub.Company)
	fmt.Fprintf(&text, "Contact: %s | %s\n", sub.Email, sub.Phone)
	fmt.Fprintf(&text, "Industry: %s | Size: %s\n", sub.Industry, sub.BusinessSize)
	fmt.Fprintf(&text, "Budget: %s | Timeline: %s\n\n", sub.Budget, sub.Timeline)

	if score != nil {
		fmt.Fprintf(&text, "LEAD SCORE: %d/%d (%s)\n", score.TotalScore, score.MaxScore, score.Rating)
		for _, e := range score.Breakdown {
			fmt.Fprintf(&text, "  %-24s %2d/%2d  %s\n", e.Category, e.Score, e.MaxScore, e.Reason)
		}
		writeList(&text, "Insights", score.Insights)
		writeList(&text, "Red flags", score.RedFlags)
		writeList(&text, "Opportunities", score.Opportunities)
		text.WriteString("\n")
	}

	if presence != nil {
		fmt.Fprintf(&text, "WEB PRESENCE: %d/100 (%s maturity)\n", presence.OverallScore, presence.DigitalMaturity)
		for _, f := range presence.Factors {
			fmt.Fprintf(&text, "  - %s\n", f)
		}
		text.WriteString("\n")
	}

	if research != nil {
		text.WriteString("RESEARCH\n")
		writeNarrative(&text, "Industry insights", research.IndustryInsights)
		writeNarrative(&text, "Competitive analysis", research.CompetitiveAnalysis)
		writeList(&text, "Automation opportunities", research.AutomationOpportunities)
		writeNarrative(&text, "ROI analysis", research.ROIAnalysis)
		writeNarrative(&text, "Implementation strategy", research.ImplementationStrategy)
		writeList(&text, "Challenges", research.Challenges)
		writeNarrative(&text, "Recommended approach", research.RecommendedApproach)
	}

	if len(sub.ProjectIdeas) > 0 {
		text.WriteString("PROJECT IDEAS\n")
		for i, idea := range sub.ProjectIdeas {
			fmt.Fprintf(&text, "  %d. %s", i+1, idea.Title)
			if idea.Priority != "" {
				fmt.Fprintf(&text, " [%s]", idea.Priority)
			}
			text.WriteString("\n")
		}
	}

	textBody = text.String()
	htmlBody = salesHTML(sub, score, presence, research)

	return subject, htmlBody, textBody
}

func salesHTML(sub *model.LeadSubmission, score *model.LeadScore, presence *model.WebPresenceScore, research *model.ResearchResult) string {
	var h strings.Builder

	fmt.Fprintf(&h, "<h2>New lead: %s</h2>", html.EscapeString(sub.Company))
	fmt.Fprintf(&h, "<p><strong>%s</strong> &mdash; %s | %s</p>",
		html.EscapeString(sub.Name), html.EscapeString(sub.Email), html.EscapeString(sub.Phone))
	fmt.Fprintf(&h, "<p>%s, %s employees. Budget %s, timeline %s.</p>",
		html.EscapeString(sub.Industry), html.EscapeString(sub.BusinessSize),
		html.EscapeString(sub.Budget), html.EscapeString(sub.Timeline))

	if score != nil {
		fmt.Fprintf(&h, "<h3>Lead score: %d/%d (%s)</h3>", score.TotalScore, score.MaxScore, score.Rating)
		h.WriteString(`<table border="1" cellpadding="4" cellspacing="0"><tr><th>Category</th><th>Score</th><th>Reason</th></tr>`)
		for _, e := range score.Breakdown {
			fmt.Fprintf(&h, "<tr><td>%s</td><td>%d/%d</td><td>%s</td></tr>",
				html.EscapeString(e.Category), e.Score, e.MaxScore, html.EscapeString(e.Reason))
		}
		h.WriteString("</table>")
		htmlList(&h, "Insights", score.Insights)
		htmlList(&h, "Red flags", score.RedFlags)
		htmlList(&h, "Opportunities", score.Opportunities)
	}

	if presence != nil {
		fmt.Fprintf(&h, "<h3>Web presence: %d/100 (%s maturity)</h3>", presence.OverallScore, presence.DigitalMaturity)
		htmlList(&h, "", presence.Factors)
	}

	if research != nil {
		h.WriteString("<h3>Research</h3>")
		htmlNarrative(&h, "Industry insights", research.IndustryInsights)
		htmlNarrative(&h, "Competitive analysis", research.CompetitiveAnalysis)
		htmlList(&h, "Automation opportunities", research.AutomationOpportunities)
		htmlNarrative(&h, "ROI analysis", research.ROIAnalysis)
		htmlNarrative(&h, "Implementation strategy", research.ImplementationStrategy)
		htmlList(&h, "Challenges", research.Challenges)
		htmlNarrative(&h, "Recommended approach", research.RecommendedApproach)
	}

	return h.String()
}

// guideAttachments converts generated PDFs into mail attachments. Guides
// without a rendered PDF are skipped.
func guideAttachments(guides *model.StyleGuideSet) []postmark.Attachment {
	if guides == nil {
		return nil
	}

	var out []postmark.Attachment
	for _, g := range []model.StyleGuide{guides.CompanyGuide, guides.ContactGuide} {
		if len(g.PDF) == 0 {
			continue
		}
		out = append(out, postmark.Attachment{
			Name:        attachmentName(g.Title),
			Content:     base64.StdEncoding.EncodeToString(g.PDF),
			ContentType: "application/pdf",
		})
	}
	return out
}

func attachmentName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, title)
	return strings.Trim(name, "-") + ".pdf"
}

func firstName(full string) string {
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i]
	}
	return full
}

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", label)
	for _, it := range items {
		fmt.Fprintf(b, "  - %s\n", it)
	}
}

func writeNarrative(b *strings.Builder, label, body string) {
	if body == "" {
		return
	}
	fmt.Fprintf(b, "%s:\n%s\n\n", label, body)
}

func htmlList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	if label != "" {
		fmt.Fprintf(b, "<h4>%s</h4>", html.EscapeString(label))
	}
	b.WriteString("<ul>")
	for _, it := range items {
		fmt.Fprintf(b, "<li>%s</li>", html.EscapeString(it))
	}
	b.WriteString("</ul>")
}

func htmlNarrative(b *strings.Builder, label, body string) {
	if body == "" {
		return
	}
	fmt.Fprintf(b, "<h4>%s</h4><p>%s</p>", html.EscapeString(label),
		strings.ReplaceAll(html.EscapeString(body), "\n", "<br>"))
}
