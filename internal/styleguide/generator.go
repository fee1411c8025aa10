// Package styleguide produces two writing-style guides per lead: one for the
// company's outward voice and one for how sales should talk to this contact.
// Like research, the stage is optional when the generative service is not
// configured.
package styleguide

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/flowlogic-ai/lead-intake/internal/config"
	"github.com/flowlogic-ai/lead-intake/internal/model"
	"github.com/flowlogic-ai/lead-intake/pkg/anthropic"
)

const guideSystemPrompt = `You are a senior brand and communications strategist. You write practical, specific style guides that a copywriter or salesperson can apply immediately. Use markdown headings (##) for each section and bullet lists for enumerations.`

// Generator produces the style-guide pair for a lead.
type Generator struct {
	ai  anthropic.Client
	cfg config.AnthropicConfig
}

// New creates a Generator. A nil client means the service is unconfigured
// and Generate returns nil without error.
func New(ai anthropic.Client, cfg config.AnthropicConfig) *Generator {
	return &Generator{ai: ai, cfg: cfg}
}

// Generate runs both guide prompts in parallel and returns the pair. The
// research result may be nil; when present, its style-guide topics seed the
// prompts. A failure in either guide fails the whole stage.
func (g *Generator) Generate(ctx context.Context, sub *model.LeadSubmission, research *model.ResearchResult) (*model.StyleGuideSet, error) {
	if g.ai == nil || !g.cfg.Configured() {
		zap.L().Debug("styleguide: service unconfigured, skipping")
		return nil, nil
	}

	set := &model.StyleGuideSet{}

	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		guide, err := g.generateOne(gctx,
			fmt.Sprintf("%s Communication Style Guide", sub.Company),
			sub.Company,
			companyPrompt(sub, research))
		if err != nil {
			return eris.Wrap(err, "styleguide: company guide")
		}
		set.CompanyGuide = *guide
		return nil
	})
	grp.Go(func() error {
		guide, err := g.generateOne(gctx,
			fmt.Sprintf("Working With %s: Outreach Style Guide", sub.Name),
			sub.Company,
			contactPrompt(sub, research))
		if err != nil {
			return eris.Wrap(err, "styleguide: contact guide")
		}
		set.ContactGuide = *guide
		return nil
	})
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	return set, nil
}

func (g *Generator) generateOne(ctx context.Context, title, company, prompt string) (*model.StyleGuide, error) {
	resp, err := g.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.cfg.Model,
		MaxTokens: int64(g.cfg.GuideMaxTokens),
		System:    guideSystemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return nil, err
	}

	text := resp.Text()
	if text == "" {
		return nil, eris.New("empty response")
	}

	resp.Usage.LogUsage(g.cfg.Model, "styleguide")

	guide := &model.StyleGuide{
		Title:    title,
		FullText: text,
		Sections: ParseSections(text),
	}

	pdf, err := RenderPDF(title, company, text)
	if err != nil {
		// A failed render still leaves a usable text guide.
		zap.L().Warn("styleguide: pdf render failed", zap.Error(err))
	} else {
		guide.PDF = pdf
	}

	return guide, nil
}

func companyPrompt(sub *model.LeadSubmission, research *model.ResearchResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a communication style guide for %s, a %s company with %s employees.\n\n", sub.Company, sub.Industry, sub.BusinessSize)
	if sub.ProjectDescription != "" {
		fmt.Fprintf(&b, "What they want to build, in their own words:\n%s\n\n", sub.ProjectDescription)
	}
	if sub.ProcessDescription != "" {
		fmt.Fprintf(&b, "How they work today:\n%s\n\n", sub.ProcessDescription)
	}
	writeTopics(&b, research)

	b.WriteString(`Produce a style guide with these sections, each under a ## heading:
## Voice & Tone
## Key Phrases
## Structure
## Themes
## Examples
## Things to Avoid

Ground every recommendation in their industry and what they told us about their business.`)

	return b.String()
}

func contactPrompt(sub *model.LeadSubmission, research *model.ResearchResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create an outreach style guide for communicating with %s, a buyer at %s (%s, %s employees).\n\n", sub.Name, sub.Company, sub.Industry, sub.BusinessSize)
	fmt.Fprintf(&b, "Their stated goals: %s\n", strings.Join(sub.AutomationGoals, "; "))
	fmt.Fprintf(&b, "Budget bracket: %s. Timeline: %s.\n\n", sub.Budget, sub.Timeline)
	if sub.GoalDescription != "" {
		fmt.Fprintf(&b, "What they said they want from working with us:\n%s\n\n", sub.GoalDescription)
	}
	writeTopics(&b, research)

	b.WriteString(`Produce a style guide with these sections, each under a ## heading:
## Voice & Tone
## Key Phrases
## Structure
## Themes
## Examples
## Things to Avoid

Focus on how our sales team should write and speak to this specific person.`)

	return b.String()
}

func writeTopics(b *strings.Builder, research *model.ResearchResult) {
	if research == nil || len(research.StyleGuideTopics) == 0 {
		return
	}
	b.WriteString("Research suggested these topics are worth addressing:\n")
	for _, t := range research.StyleGuideTopics {
		fmt.Fprintf(b, "- %s\n", t)
	}
	b.WriteString("\n")
}
