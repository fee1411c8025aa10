// Package notify sends the two pipeline emails: the instant acknowledgment
// to the lead and the internal sales notification. Both sends are
// best-effort; failures are returned for logging, never escalated.
package notify

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/flowlogic-ai/lead-intake/internal/config"
	"github.com/flowlogic-ai/lead-intake/internal/model"
	"github.com/flowlogic-ai/lead-intake/pkg/postmark"
)

// Dispatcher sends transactional email for one evaluation run.
type Dispatcher struct {
	mail postmark.Client
	cfg  config.PostmarkConfig
}

// New creates a Dispatcher. A nil client means email is unconfigured and
// both sends are no-ops.
func New(mail postmark.Client, cfg config.PostmarkConfig) *Dispatcher {
	return &Dispatcher{mail: mail, cfg: cfg}
}

// Configured reports whether sends can be attempted.
func (d *Dispatcher) Configured() bool {
	return d.mail != nil && d.cfg.Configured()
}

// SendAck sends the acknowledgment to the lead. It depends on the raw
// submission only, so it can run before any other stage completes.
func (d *Dispatcher) SendAck(ctx context.Context, sub *model.LeadSubmission) error {
	if !d.Configured() {
		zap.L().Debug("notify: email unconfigured, skipping ack")
		return nil
	}

	subject, htmlBody, textBody := composeAck(sub)
	resp, err := d.mail.SendEmail(ctx, postmark.EmailRequest{
		From:     d.cfg.FromAddress,
		To:       sub.Email,
		Subject:  subject,
		HtmlBody: htmlBody,
		TextBody: textBody,
	})
	if err != nil {
		return eris.Wrap(err, "notify: send ack")
	}

	zap.L().Info("notify: ack sent",
		zap.String("to", sub.Email),
		zap.String("message_id", resp.MessageID))
	return nil
}

// SendSalesNotification sends the internal triage email with whatever
// evaluation output is available. Style-guide PDFs ride along as
// attachments when present.
func (d *Dispatcher) SendSalesNotification(ctx context.Context, sub *model.LeadSubmission, score *model.LeadScore, presence *model.WebPresenceScore, research *model.ResearchResult, guides *model.StyleGuideSet) error {
	if !d.Configured() {
		zap.L().Debug("notify: email unconfigured, skipping sales notification")
		return nil
	}
	if d.cfg.SalesTo == "" {
		zap.L().Debug("notify: no sales recipient configured")
		return nil
	}

	subject, htmlBody, textBody := composeSales(sub, score, presence, research)
	resp, err := d.mail.SendEmail(ctx, postmark.EmailRequest{
		From:        d.cfg.FromAddress,
		To:          d.cfg.SalesTo,
		Cc:          d.cfg.SalesCc,
		Subject:     subject,
		HtmlBody:    htmlBody,
		TextBody:    textBody,
		Attachments: guideAttachments(guides),
	})
	if err != nil {
		return eris.Wrap(err, "notify: send sales notification")
	}

	zap.L().Info("notify: sales notification sent",
		zap.String("company", sub.Company),
		zap.String("message_id", resp.MessageID))
	return nil
}
