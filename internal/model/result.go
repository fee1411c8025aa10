package model

import "time"

// CRMRecord identifies one page the recorder created in the CRM.
type CRMRecord struct {
	ID  string `json:"id"`
	URL string `json:"url,omitempty"`
}

// CRMResult collects the records produced by one recorder pass. Any field may
// be nil; downstream steps that need a missing ID are skipped, not retried.
type CRMResult struct {
	Client            *CRMRecord  `json:"client,omitempty"`
	ClientExisted     bool        `json:"client_existed"`
	Contact           *CRMRecord  `json:"contact,omitempty"`
	IntakeForm        *CRMRecord  `json:"intake_form,omitempty"`
	CompanyStyleGuide *CRMRecord  `json:"company_style_guide,omitempty"`
	ContactStyleGuide *CRMRecord  `json:"contact_style_guide,omitempty"`
	Proposal          *CRMRecord  `json:"proposal,omitempty"`
	Estimates         []CRMRecord `json:"estimates,omitempty"`
}

// EvaluationResult is the orchestrator's output envelope. It is returned to
// the caller and discarded; only the CRM side effects persist. Success is
// true iff Errors is empty.
type EvaluationResult struct {
	RunID       string            `json:"run_id"`
	Success     bool              `json:"success"`
	Score       *LeadScore        `json:"score,omitempty"`
	WebPresence *WebPresenceScore `json:"web_presence,omitempty"`
	Research    *ResearchResult   `json:"research,omitempty"`
	StyleGuides *StyleGuideSet    `json:"style_guides,omitempty"`
	CRM         *CRMResult        `json:"crm,omitempty"`
	AckSent     bool              `json:"ack_sent"`
	SalesSent   bool              `json:"sales_sent"`
	Errors      []string          `json:"errors,omitempty"`
}

// RunStatus tracks an evaluation run through the audit store.
type RunStatus string

const (
	RunStatusQueued    RunStatus = "queued"
	RunStatusScoring   RunStatus = "scoring"
	RunStatusResearch  RunStatus = "research"
	RunStatusRecording RunStatus = "recording"
	RunStatusNotifying RunStatus = "notifying"
	RunStatusComplete  RunStatus = "complete"
	RunStatusDegraded  RunStatus = "degraded"
)

// Run is one audited pipeline invocation.
type Run struct {
	ID         string            `json:"id"`
	Submission LeadSubmission    `json:"submission"`
	Status     RunStatus         `json:"status"`
	Result     *EvaluationResult `json:"result,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// StageResult is one recorded orchestrator stage.
type StageResult struct {
	ID       string `json:"id,omitempty"`
	RunID    string `json:"run_id,omitempty"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Duration int64  `json:"duration_ms"`
}

// Stage statuses recorded in the audit store.
const (
	StageStatusComplete = "complete"
	StageStatusFailed   = "failed"
	StageStatusSkipped  = "skipped"
)
