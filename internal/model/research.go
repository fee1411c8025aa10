package model

// ResearchResult holds the generative enrichment narratives. Produced at most
// once per submission; nil when the service is unconfigured or errored.
type ResearchResult struct {
	IndustryInsights       string   `json:"industry_insights"`
	CompetitiveAnalysis    string   `json:"competitive_analysis"`
	AutomationOpportunities []string `json:"automation_opportunities"`
	ROIAnalysis            string   `json:"roi_analysis"`
	ImplementationStrategy string   `json:"implementation_strategy"`
	Challenges             []string `json:"challenges"`
	RecommendedApproach    string   `json:"recommended_approach"`
	StyleGuideTopics       []string `json:"style_guide_topics"`
}

// StyleGuideSections is the structured decomposition of a generated guide,
// used for CRM storage. Unsectioned keeps content the heading matcher missed
// so nothing is silently dropped.
type StyleGuideSections struct {
	VoiceTone     string `json:"voice_tone"`
	KeyPhrases    string `json:"key_phrases"`
	Structure     string `json:"structure"`
	Themes        string `json:"themes"`
	Examples      string `json:"examples"`
	ThingsToAvoid string `json:"things_to_avoid"`
	Unsectioned   string `json:"unsectioned,omitempty"`
}

// StyleGuide is one generated long-form document: the raw text (retained
// verbatim for the CRM), its parsed sections, and the rendered PDF for the
// email attachment. The PDF is a lossy Latin-1 rendering; FullText is not.
type StyleGuide struct {
	Title    string             `json:"title"`
	FullText string             `json:"full_text"`
	Sections StyleGuideSections `json:"sections"`
	PDF      []byte             `json:"-"`
}

// StyleGuideSet is the pair of guides produced per submission.
type StyleGuideSet struct {
	CompanyGuide StyleGuide `json:"company_guide"`
	ContactGuide StyleGuide `json:"contact_guide"`
}
