package model

// WebsiteCheck is the result of the reachability probe against the lead's
// website. Errors are recorded, never raised.
type WebsiteCheck struct {
	URL          string `json:"url"`
	IsAccessible bool   `json:"is_accessible"`
	HasSSL       bool   `json:"has_ssl"`
	Error        string `json:"error,omitempty"`
}

// SocialLink is one classified social-media URL from the submission.
type SocialLink struct {
	URL      string `json:"url"`
	Platform string `json:"platform"`
	IsValid  bool   `json:"is_valid"`
}

// WebPresenceScore is the analyzer's assessment of the lead's digital
// footprint. Immutable after Analyze returns it.
type WebPresenceScore struct {
	OverallScore       int           `json:"overall_score"`
	HasWebsite         bool          `json:"has_website"`
	HasSocialMedia     bool          `json:"has_social_media"`
	Website            *WebsiteCheck `json:"website,omitempty"`
	SocialLinks        []SocialLink  `json:"social_links,omitempty"`
	EstablishmentScore int           `json:"establishment_score"`
	Factors            []string      `json:"factors,omitempty"`
	DigitalMaturity    Rating        `json:"digital_maturity"`
	Recommendations    []string      `json:"recommendations,omitempty"`
}
