// Package crm writes evaluation output into the Notion workspace: client,
// contact, intake, style-guide, proposal, and estimate records. Every step
// can fail on its own; callers get back whatever was created.
package crm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/flowlogic-ai/lead-intake/internal/config"
	"github.com/flowlogic-ai/lead-intake/internal/model"
	"github.com/flowlogic-ai/lead-intake/pkg/notion"
)

// Recorder creates CRM records for one evaluated lead.
type Recorder struct {
	client notion.Client
	cfg    config.NotionConfig
}

// New creates a Recorder. A nil client means the CRM is unconfigured and
// every step is skipped.
func New(client notion.Client, cfg config.NotionConfig) *Recorder {
	return &Recorder{client: client, cfg: cfg}
}

// Configured reports whether CRM writes can be attempted at all.
func (r *Recorder) Configured() bool {
	return r.client != nil && r.cfg.Configured()
}

func record(page *notionapi.Page) *model.CRMRecord {
	return &model.CRMRecord{ID: string(page.ID), URL: page.URL}
}

// FindOrCreateClient looks the company up by exact name and creates a
// Prospect record when absent. The lookup is case-sensitive so two companies
// differing only in case stay separate. The boolean reports whether an
// existing record was reused.
func (r *Recorder) FindOrCreateClient(ctx context.Context, sub *model.LeadSubmission) (*model.CRMRecord, bool, error) {
	existing, err := notion.FindPageByExactTitle(ctx, r.client, r.cfg.ClientDB, "Name", sub.Company)
	if err != nil {
		return nil, false, eris.Wrap(err, "crm: client lookup")
	}
	if existing != nil {
		zap.L().Info("crm: reusing existing client",
			zap.String("company", sub.Company),
			zap.String("page_id", string(existing.ID)))
		r.refreshClient(ctx, existing, sub)
		return record(existing), true, nil
	}

	props := notionapi.Properties{
		"Name": titleProp(sub.Company),
		"Type": selectProp("Prospect"),
	}
	if sub.Website != "" {
		props["Website"] = urlProp(sub.Website)
	}
	if sub.Industry != "" {
		props["Industry"] = selectProp(sub.Industry)
	}

	page, err := r.createPage(ctx, r.cfg.ClientDB, props)
	if err != nil {
		return nil, false, eris.Wrap(err, "crm: create client")
	}
	return record(page), false, nil
}

// refreshClient writes the submission's website and industry onto a reused
// client page, so a returning company's record reflects the latest intake.
// Best-effort: the found record is returned either way.
func (r *Recorder) refreshClient(ctx context.Context, existing *notionapi.Page, sub *model.LeadSubmission) {
	props := notionapi.Properties{}
	if sub.Website != "" {
		props["Website"] = urlProp(sub.Website)
	}
	if sub.Industry != "" {
		props["Industry"] = selectProp(sub.Industry)
	}
	if len(props) == 0 {
		return
	}

	if _, err := r.client.UpdatePage(ctx, string(existing.ID), &notionapi.PageUpdateRequest{
		Properties: props,
	}); err != nil {
		zap.L().Warn("crm: failed to refresh client record",
			zap.String("page_id", string(existing.ID)),
			zap.Error(err))
	}
}

// CreateContact creates the contact record linked to the client. Callers
// must skip this step when the client step failed.
func (r *Recorder) CreateContact(ctx context.Context, sub *model.LeadSubmission, clientID string) (*model.CRMRecord, error) {
	props := notionapi.Properties{
		"Name":   titleProp(sub.Name),
		"Email":  emailProp(sub.Email),
		"Phone":  phoneProp(sub.Phone),
		"Client": relationProp(clientID),
	}

	page, err := r.createPage(ctx, r.cfg.ContactDB, props)
	if err != nil {
		return nil, eris.Wrap(err, "crm: create contact")
	}
	return record(page), nil
}

// followUpDate computes the sales follow-up deadline from the lead's stated
// timeline. Offsets are calendar days.
func followUpDate(timeline string, now time.Time) time.Time {
	switch timeline {
	case model.TimelineImmediate:
		return now.AddDate(0, 0, 1)
	case model.Timeline1To3Mo:
		return now.AddDate(0, 0, 2)
	case model.Timeline3To6Mo:
		return now.AddDate(0, 0, 5)
	default:
		return now.AddDate(0, 0, 7)
	}
}

// CreateIntakeForm stores the full submission plus score annotations. Client
// and contact relations are attached when those steps produced IDs.
func (r *Recorder) CreateIntakeForm(ctx context.Context, sub *model.LeadSubmission, score *model.LeadScore, clientID, contactID string) (*model.CRMRecord, error) {
	props := notionapi.Properties{
		"Name":          titleProp(fmt.Sprintf("%s - %s Intake", sub.Company, sub.Name)),
		"Contact Name":  textProp(sub.Name),
		"Email":         emailProp(sub.Email),
		"Phone":         phoneProp(sub.Phone),
		"Company":       textProp(sub.Company),
		"Industry":      selectProp(sub.Industry),
		"Business Size": selectProp(sub.BusinessSize),
		"Timeline":      selectProp(sub.Timeline),
		"Budget":        selectProp(sub.Budget),
		"Follow-up Date": dateProp(notionapi.Date(followUpDate(sub.Timeline, time.Now()))),
	}

	if sub.Website != "" {
		props["Website"] = urlProp(sub.Website)
	}
	if len(sub.SocialLinks) > 0 {
		props["Social Links"] = textProp(strings.Join(sub.SocialLinks, "\n"))
	}
	if sub.CurrentTools != "" {
		props["Current Tools"] = textProp(sub.CurrentTools)
	}
	if sub.ProcessDescription != "" {
		props["Process Description"] = textProp(sub.ProcessDescription)
	}
	if sub.MonthlyVolume != "" {
		props["Monthly Volume"] = selectProp(sub.MonthlyVolume)
	}
	if sub.TeamSize != "" {
		props["Team Size"] = selectProp(sub.TeamSize)
	}
	if len(sub.AutomationGoals) > 0 {
		props["Automation Goals"] = multiSelectProp(sub.AutomationGoals)
	}
	if sub.GoalDescription != "" {
		props["Goal Description"] = textProp(sub.GoalDescription)
	}
	if len(sub.ProjectIdeas) > 0 {
		var ideas []string
		for _, idea := range sub.ProjectIdeas {
			ideas = append(ideas, idea.Title)
		}
		props["Project Ideas"] = textProp(strings.Join(ideas, "\n"))
	}
	if sub.ToolsToIntegrate != "" {
		props["Tools To Integrate"] = textProp(sub.ToolsToIntegrate)
	}
	if len(sub.IntegrationNeeds) > 0 {
		props["Integration Needs"] = multiSelectProp(sub.IntegrationNeeds)
	}
	if sub.DataVolume != "" {
		props["Data Volume"] = selectProp(sub.DataVolume)
	}
	if sub.ProjectDescription != "" {
		props["Project Description"] = textProp(sub.ProjectDescription)
	}
	if sub.SuccessMetrics != "" {
		props["Success Metrics"] = textProp(sub.SuccessMetrics)
	}

	if score != nil {
		props["Score"] = numberProp(float64(score.TotalScore))
		props["Rating"] = selectProp(string(score.Rating))
		if len(score.RedFlags) > 0 {
			props["Red Flags"] = textProp(strings.Join(score.RedFlags, "\n"))
		}
		if len(score.Insights) > 0 {
			props["Insights"] = textProp(strings.Join(score.Insights, "\n"))
		}
	}

	if clientID != "" {
		props["Client"] = relationProp(clientID)
	}
	if contactID != "" {
		props["Contact"] = relationProp(contactID)
	}

	page, err := r.createPage(ctx, r.cfg.IntakeDB, props)
	if err != nil {
		return nil, eris.Wrap(err, "crm: create intake form")
	}
	return record(page), nil
}

// CreateStyleGuide stores one generated guide: sections as properties, full
// text appended as document content. relProp names the relation column used
// to link the guide ("Client" or "Contact"); an empty relID leaves the guide
// unlinked. An append failure is reported but the created record is kept.
func (r *Recorder) CreateStyleGuide(ctx context.Context, guide *model.StyleGuide, relProp, relID string) (*model.CRMRecord, error) {
	props := notionapi.Properties{
		"Name": titleProp(guide.Title),
	}
	if guide.Sections.VoiceTone != "" {
		props["Voice & Tone"] = textProp(guide.Sections.VoiceTone)
	}
	if guide.Sections.KeyPhrases != "" {
		props["Key Phrases"] = textProp(guide.Sections.KeyPhrases)
	}
	if guide.Sections.Structure != "" {
		props["Structure"] = textProp(guide.Sections.Structure)
	}
	if guide.Sections.Themes != "" {
		props["Themes"] = textProp(guide.Sections.Themes)
	}
	if guide.Sections.Examples != "" {
		props["Examples"] = textProp(guide.Sections.Examples)
	}
	if guide.Sections.ThingsToAvoid != "" {
		props["Things To Avoid"] = textProp(guide.Sections.ThingsToAvoid)
	}
	if relID != "" {
		props[relProp] = relationProp(relID)
	}

	page, err := r.createPage(ctx, r.cfg.StyleGuideDB, props)
	if err != nil {
		return nil, eris.Wrap(err, "crm: create style guide")
	}

	if err := r.client.AppendBlockChildren(ctx, string(page.ID), textToBlocks(guide.FullText)); err != nil {
		return record(page), eris.Wrap(err, "crm: append style guide content")
	}
	return record(page), nil
}

// CreateProposal creates the proposal record and appends its rendered body.
// An empty clientID leaves the proposal unlinked rather than failing.
func (r *Recorder) CreateProposal(ctx context.Context, sub *model.LeadSubmission, score *model.LeadScore, research *model.ResearchResult, clientID string) (*model.CRMRecord, error) {
	props := notionapi.Properties{
		"Name":   titleProp(fmt.Sprintf("%s Automation Proposal", sub.Company)),
		"Status": selectProp("Draft"),
	}
	if clientID != "" {
		props["Client"] = relationProp(clientID)
	}
	if score != nil {
		props["Lead Rating"] = selectProp(string(score.Rating))
	}

	page, err := r.createPage(ctx, r.cfg.ProposalDB, props)
	if err != nil {
		return nil, eris.Wrap(err, "crm: create proposal")
	}

	if err := r.client.AppendBlockChildren(ctx, string(page.ID), proposalBlocks(sub, score, research)); err != nil {
		return record(page), eris.Wrap(err, "crm: append proposal content")
	}
	return record(page), nil
}

// CreateEstimates creates one overall estimate plus one per project idea,
// each linked to the proposal. Creation stops at the first failure and
// returns what was created so far.
func (r *Recorder) CreateEstimates(ctx context.Context, sub *model.LeadSubmission, proposalID string) ([]model.CRMRecord, error) {
	var out []model.CRMRecord

	create := func(name, project, priority string) error {
		props := notionapi.Properties{
			"Name":     titleProp(name),
			"Proposal": relationProp(proposalID),
			"Status":   selectProp("Draft"),
		}
		if project != "" {
			props["Project"] = textProp(project)
		}
		if priority != "" {
			props["Priority"] = selectProp(priority)
		}
		page, err := r.createPage(ctx, r.cfg.EstimateDB, props)
		if err != nil {
			return err
		}
		out = append(out, *record(page))
		return nil
	}

	if err := create(fmt.Sprintf("%s - Overall Estimate", sub.Company), "", ""); err != nil {
		return out, eris.Wrap(err, "crm: create overall estimate")
	}
	for _, idea := range sub.ProjectIdeas {
		if err := create(fmt.Sprintf("%s - %s", sub.Company, idea.Title), idea.Description, idea.Priority); err != nil {
			return out, eris.Wrap(err, "crm: create project estimate")
		}
	}

	return out, nil
}

func (r *Recorder) createPage(ctx context.Context, dbID string, props notionapi.Properties) (*notionapi.Page, error) {
	return r.client.CreatePage(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(dbID),
		},
		Properties: props,
	})
}
