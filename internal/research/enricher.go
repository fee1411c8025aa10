// Package research asks the generative service for structured industry
// insight about one lead. The stage is optional: an unconfigured service
// yields a nil result, and errors are left to the orchestrator to record as
// non-fatal.
package research

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/flowlogic-ai/lead-intake/internal/config"
	"github.com/flowlogic-ai/lead-intake/internal/model"
	"github.com/flowlogic-ai/lead-intake/pkg/anthropic"
)

// Section numbers in the requested response format.
const (
	sectionIndustry      = 1
	sectionCompetitive   = 2
	sectionOpportunities = 3
	sectionROI           = 4
	sectionStrategy      = 5
	sectionChallenges    = 6
	sectionApproach      = 7
	sectionGuideTopics   = 8
)

// Enricher calls the generative service for one research pass per lead.
type Enricher struct {
	ai  anthropic.Client
	cfg config.AnthropicConfig
}

// New creates an Enricher. A nil client means the service is unconfigured
// and Research returns nil without error.
func New(ai anthropic.Client, cfg config.AnthropicConfig) *Enricher {
	return &Enricher{ai: ai, cfg: cfg}
}

// Research produces the enrichment result for one submission. Either prior
// score may be nil; the prompt embeds whatever is available.
func (e *Enricher) Research(ctx context.Context, sub *model.LeadSubmission, score *model.LeadScore, presence *model.WebPresenceScore) (*model.ResearchResult, error) {
	if e.ai == nil || !e.cfg.Configured() {
		zap.L().Debug("research: service unconfigured, skipping")
		return nil, nil
	}

	resp, err := e.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     e.cfg.Model,
		MaxTokens: int64(e.cfg.MaxTokens),
		System:    systemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: buildPrompt(sub, score, presence)},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "research: create message")
	}

	text := resp.Text()
	if text == "" {
		return nil, eris.New("research: empty response")
	}

	resp.Usage.LogUsage(e.cfg.Model, "research")

	return parseResearch(text), nil
}

// parseResearch maps the numbered sections onto the result. Missing sections
// become empty strings or lists; content outside any heading is appended to
// the industry narrative so nothing is lost when the model ignores the
// template.
func parseResearch(text string) *model.ResearchResult {
	sections, remainder := sectionNumbered(text)

	result := &model.ResearchResult{
		IndustryInsights:        sections[sectionIndustry],
		CompetitiveAnalysis:     sections[sectionCompetitive],
		AutomationOpportunities: splitList(sections[sectionOpportunities]),
		ROIAnalysis:             sections[sectionROI],
		ImplementationStrategy:  sections[sectionStrategy],
		Challenges:              splitList(sections[sectionChallenges]),
		RecommendedApproach:     sections[sectionApproach],
		StyleGuideTopics:        splitList(sections[sectionGuideTopics]),
	}

	if remainder != "" {
		if result.IndustryInsights == "" {
			result.IndustryInsights = remainder
		} else {
			result.IndustryInsights = remainder + "\n\n" + result.IndustryInsights
		}
	}

	return result
}
