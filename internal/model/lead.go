// Package model defines the lead intake data model shared by all
// pipeline stages.
package model

// Budget brackets accepted on the intake form, in ascending order of spend.
const (
	BudgetUnder10K  = "under_10k"
	Budget10To25K   = "10k-25k"
	Budget25To50K   = "25k-50k"
	Budget50To100K  = "50k-100k"
	Budget100KPlus  = "100k+"
	BudgetNotSure   = "not_sure"
)

// Timeline brackets, in descending order of urgency.
const (
	TimelineImmediate = "immediate"
	Timeline1To3Mo    = "1-3_months"
	Timeline3To6Mo    = "3-6_months"
	Timeline6MoPlus   = "6+_months"
)

// Employee-count brackets, in ascending order of headcount.
const (
	Size1To5    = "1-5"
	Size6To20   = "6-20"
	Size21To50  = "21-50"
	Size51To200 = "51-200"
	Size200Plus = "200+"
)

// Data-volume brackets for the integration-needs section.
const (
	DataVolumeLow      = "low"
	DataVolumeMedium   = "medium"
	DataVolumeHigh     = "high"
	DataVolumeVeryHigh = "very_high"
)

// ProjectIdea is one concrete automation project named by the lead.
type ProjectIdea struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// LeadSubmission is the immutable input to the evaluation pipeline, one per
// form submission. It is never mutated after decode.
type LeadSubmission struct {
	// Contact identity
	Name        string   `json:"name" validate:"required,min=2"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone" validate:"required,min=7"`
	Company     string   `json:"company" validate:"required,min=2"`
	Website     string   `json:"website" validate:"omitempty,url"`
	SocialLinks []string `json:"socialLinks" validate:"omitempty,dive,min=1"`

	// Business classification. Industry stays free-form: the form's industry
	// list grows without a backend deploy, scoring matches it by keyword, and
	// the CRM stores it as a select option that admits new values.
	Industry     string `json:"industry" validate:"required"`
	BusinessSize string `json:"businessSize" validate:"required,oneof=1-5 6-20 21-50 51-200 200+"`

	// Current state
	CurrentTools       string `json:"currentTools"`
	ProcessDescription string `json:"processDescription"`
	MonthlyVolume      string `json:"monthlyVolume" validate:"omitempty,oneof=under_100 100-1k 1k-10k 10k+"`
	TeamSize           string `json:"teamSize" validate:"omitempty,oneof=1-5 6-20 21-50 50+"`

	// Automation intent
	AutomationGoals []string      `json:"automationGoals" validate:"required,min=1"`
	GoalDescription string        `json:"goalDescription"`
	ProjectIdeas    []ProjectIdea `json:"projectIdeas" validate:"omitempty,dive"`

	// Integration needs
	ToolsToIntegrate string   `json:"toolsToIntegrate"`
	IntegrationNeeds []string `json:"integrationNeeds"`
	DataVolume       string   `json:"dataVolume" validate:"omitempty,oneof=low medium high very_high"`

	// Scope
	ProjectDescription string `json:"projectDescription"`
	SuccessMetrics     string `json:"successMetrics"`
	Timeline           string `json:"timeline" validate:"required,oneof=immediate 1-3_months 3-6_months 6+_months"`
	Budget             string `json:"budget" validate:"required,oneof=under_10k 10k-25k 25k-50k 50k-100k 100k+ not_sure"`
}

// IntegrationCustomSoftware is the integration tag that signals bespoke
// system work and bumps complexity scoring.
const IntegrationCustomSoftware = "custom_software"

// HasIntegrationTag reports whether the submission carries the given
// integration-category tag.
func (s *LeadSubmission) HasIntegrationTag(tag string) bool {
	for _, t := range s.IntegrationNeeds {
		if t == tag {
			return true
		}
	}
	return false
}
