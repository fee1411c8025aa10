// Package pipeline orchestrates one lead evaluation: scoring, web presence,
// research, style guides, CRM recording, and notifications. Every stage is
// best-effort; failures are logged and collected, never fatal.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/flowlogic-ai/lead-intake/internal/config"
	"github.com/flowlogic-ai/lead-intake/internal/model"
	"github.com/flowlogic-ai/lead-intake/internal/scoring"
	"github.com/flowlogic-ai/lead-intake/internal/store"
)

// PresenceAnalyzer assesses the lead's digital footprint.
type PresenceAnalyzer interface {
	Analyze(ctx context.Context, sub *model.LeadSubmission) *model.WebPresenceScore
}

// Researcher produces the generative enrichment result.
type Researcher interface {
	Research(ctx context.Context, sub *model.LeadSubmission, score *model.LeadScore, presence *model.WebPresenceScore) (*model.ResearchResult, error)
}

// GuideGenerator produces the style-guide pair.
type GuideGenerator interface {
	Generate(ctx context.Context, sub *model.LeadSubmission, research *model.ResearchResult) (*model.StyleGuideSet, error)
}

// Recorder writes CRM records.
type Recorder interface {
	Configured() bool
	FindOrCreateClient(ctx context.Context, sub *model.LeadSubmission) (*model.CRMRecord, bool, error)
	CreateContact(ctx context.Context, sub *model.LeadSubmission, clientID string) (*model.CRMRecord, error)
	CreateIntakeForm(ctx context.Context, sub *model.LeadSubmission, score *model.LeadScore, clientID, contactID string) (*model.CRMRecord, error)
	CreateStyleGuide(ctx context.Context, guide *model.StyleGuide, relProp, relID string) (*model.CRMRecord, error)
	CreateProposal(ctx context.Context, sub *model.LeadSubmission, score *model.LeadScore, research *model.ResearchResult, clientID string) (*model.CRMRecord, error)
	CreateEstimates(ctx context.Context, sub *model.LeadSubmission, proposalID string) ([]model.CRMRecord, error)
}

// Notifier sends the two pipeline emails.
type Notifier interface {
	SendAck(ctx context.Context, sub *model.LeadSubmission) error
	SendSalesNotification(ctx context.Context, sub *model.LeadSubmission, score *model.LeadScore, presence *model.WebPresenceScore, research *model.ResearchResult, guides *model.StyleGuideSet) error
}

// Orchestrator runs the evaluation stages for one submission.
type Orchestrator struct {
	cfg      *config.Config
	store    store.Store
	presence PresenceAnalyzer
	research Researcher
	guides   GuideGenerator
	crm      Recorder
	notify   Notifier
}

// New creates an Orchestrator with all stage dependencies.
func New(
	cfg *config.Config,
	st store.Store,
	presence PresenceAnalyzer,
	research Researcher,
	guides GuideGenerator,
	crm Recorder,
	notify Notifier,
) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		store:    st,
		presence: presence,
		research: research,
		guides:   guides,
		crm:      crm,
		notify:   notify,
	}
}

// Run executes the full evaluation for a single submission. No failure is
// returned as an error, not even an unavailable audit store; the result's
// error list carries them all and every stage still runs.
func (o *Orchestrator) Run(ctx context.Context, sub *model.LeadSubmission) (*model.EvaluationResult, error) {
	log := zap.L().With(zap.String("company", sub.Company), zap.String("email", sub.Email))
	log.Info("pipeline: starting evaluation")

	result := &model.EvaluationResult{}

	// The audit store is an observer, not a participant. If the run row
	// cannot be created the evaluation proceeds unaudited.
	var runID string
	if run, err := o.store.CreateRun(ctx, sub); err != nil {
		wrapped := eris.Wrap(err, "pipeline: create run")
		log.Error("pipeline: audit store unavailable, continuing without run record", zap.Error(wrapped))
		result.Errors = append(result.Errors, wrapped.Error())
	} else {
		runID = run.ID
		result.RunID = runID
	}

	setStatus := func(status model.RunStatus) {
		if runID == "" {
			return
		}
		if statusErr := o.store.UpdateRunStatus(ctx, runID, status); statusErr != nil {
			log.Warn("pipeline: failed to update status", zap.Error(statusErr))
		}
	}

	// Stage tracking helper. The ack stage runs on its own goroutine, so
	// error collection takes a mutex.
	var mu sync.Mutex
	addError := func(err error) {
		mu.Lock()
		result.Errors = append(result.Errors, err.Error())
		mu.Unlock()
	}
	recordStage := func(stage *model.StageResult) {
		if runID == "" {
			return
		}
		if recErr := o.store.RecordStage(ctx, runID, stage); recErr != nil {
			log.Warn("pipeline: failed to record stage", zap.String("stage", stage.Name), zap.Error(recErr))
		}
	}
	trackStage := func(name string, fn func() error) bool {
		start := time.Now()
		stageErr := fn()
		duration := time.Since(start).Milliseconds()

		stage := &model.StageResult{Name: name, Status: model.StageStatusComplete, Duration: duration}
		if stageErr != nil {
			stage.Status = model.StageStatusFailed
			stage.Error = stageErr.Error()
			addError(stageErr)
			log.Error("pipeline: stage failed",
				zap.String("stage", name),
				zap.Int64("duration_ms", duration),
				zap.Error(stageErr),
			)
		} else {
			log.Info("pipeline: stage complete",
				zap.String("stage", name),
				zap.Int64("duration_ms", duration),
			)
		}

		recordStage(stage)
		return stageErr == nil
	}
	skipStage := func(name, reason string) {
		log.Info("pipeline: stage skipped", zap.String("stage", name), zap.String("reason", reason))
		recordStage(&model.StageResult{Name: name, Status: model.StageStatusSkipped, Error: reason})
	}

	// Stage 1: instant acknowledgment, fired without waiting so the lead
	// hears back before any slow stage runs.
	var ackWG sync.WaitGroup
	ackWG.Add(1)
	go func() {
		defer ackWG.Done()
		if trackStage("ack", func() error {
			return o.notify.SendAck(ctx, sub)
		}) {
			mu.Lock()
			result.AckSent = true
			mu.Unlock()
		}
	}()

	// Stage 2: scoring.
	setStatus(model.RunStatusScoring)
	trackStage("score", func() error {
		result.Score = scoring.Evaluate(sub)
		return nil
	})

	// Stage 3: web presence.
	trackStage("web_presence", func() error {
		result.WebPresence = o.presence.Analyze(ctx, sub)
		return nil
	})

	// Stage 4: research enrichment, with whatever prior output exists.
	setStatus(model.RunStatusResearch)
	trackStage("research", func() error {
		research, rErr := o.research.Research(ctx, sub, result.Score, result.WebPresence)
		if rErr != nil {
			return rErr
		}
		result.Research = research
		return nil
	})

	// Stages 5-7: CRM recording.
	setStatus(model.RunStatusRecording)
	crmResult := &model.CRMResult{}
	if o.crm.Configured() {
		result.CRM = crmResult

		var clientID string
		if trackStage("client", func() error {
			rec, existed, cErr := o.crm.FindOrCreateClient(ctx, sub)
			if cErr != nil {
				return cErr
			}
			crmResult.Client = rec
			crmResult.ClientExisted = existed
			return nil
		}) {
			clientID = crmResult.Client.ID
		}

		var contactID string
		if clientID == "" {
			// No orphaned contact without a client record.
			skipStage("contact", "client step failed")
		} else if trackStage("contact", func() error {
			rec, cErr := o.crm.CreateContact(ctx, sub, clientID)
			if cErr != nil {
				return cErr
			}
			crmResult.Contact = rec
			return nil
		}) {
			contactID = crmResult.Contact.ID
		}

		trackStage("intake_form", func() error {
			rec, iErr := o.crm.CreateIntakeForm(ctx, sub, result.Score, clientID, contactID)
			if iErr != nil {
				return iErr
			}
			crmResult.IntakeForm = rec
			return nil
		})

		// Stage 6: style guides, then their CRM records.
		trackStage("style_guides", func() error {
			guides, gErr := o.guides.Generate(ctx, sub, result.Research)
			if gErr != nil {
				return gErr
			}
			result.StyleGuides = guides
			return nil
		})

		if result.StyleGuides == nil {
			skipStage("style_guide_records", "no guides generated")
		} else {
			trackStage("style_guide_records", func() error {
				companyRec, cgErr := o.crm.CreateStyleGuide(ctx, &result.StyleGuides.CompanyGuide, "Client", clientID)
				crmResult.CompanyStyleGuide = companyRec

				contactRec, ctErr := o.crm.CreateStyleGuide(ctx, &result.StyleGuides.ContactGuide, "Contact", contactID)
				crmResult.ContactStyleGuide = contactRec

				if cgErr != nil {
					return cgErr
				}
				return ctErr
			})
		}

		// Stage 7: proposal and estimates.
		var proposalID string
		if trackStage("proposal", func() error {
			rec, pErr := o.crm.CreateProposal(ctx, sub, result.Score, result.Research, clientID)
			if pErr != nil {
				return pErr
			}
			crmResult.Proposal = rec
			return nil
		}) {
			proposalID = crmResult.Proposal.ID
		}

		if proposalID == "" {
			skipStage("estimates", "proposal step failed")
		} else {
			trackStage("estimates", func() error {
				recs, eErr := o.crm.CreateEstimates(ctx, sub, proposalID)
				crmResult.Estimates = recs
				return eErr
			})
		}
	} else {
		log.Debug("pipeline: crm unconfigured, skipping recording stages")
		// Style guides still generate for the sales attachment even
		// without a CRM to store them in.
		trackStage("style_guides", func() error {
			guides, gErr := o.guides.Generate(ctx, sub, result.Research)
			if gErr != nil {
				return gErr
			}
			result.StyleGuides = guides
			return nil
		})
	}

	// Stage 8: sales notification, composed from whatever is present.
	setStatus(model.RunStatusNotifying)
	if trackStage("sales_notification", func() error {
		return o.notify.SendSalesNotification(ctx, sub, result.Score, result.WebPresence, result.Research, result.StyleGuides)
	}) {
		result.SalesSent = true
	}

	// The ack was fired at stage 1; settle its outcome before reporting.
	ackWG.Wait()

	result.Success = len(result.Errors) == 0
	finalStatus := model.RunStatusComplete
	if !result.Success {
		finalStatus = model.RunStatusDegraded
	}
	if runID != "" {
		if updErr := o.store.UpdateRunResult(ctx, runID, finalStatus, result); updErr != nil {
			log.Warn("pipeline: failed to store result", zap.Error(updErr))
		}
	}

	log.Info("pipeline: evaluation finished",
		zap.String("run_id", runID),
		zap.Bool("success", result.Success),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}
