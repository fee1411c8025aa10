package model

// Rating is the three-level lead quality tier.
type Rating string

const (
	RatingHigh   Rating = "High"
	RatingMedium Rating = "Medium"
	RatingLow    Rating = "Low"
)

// ScoreEntry is one weighted sub-score with its ceiling and the rule that
// produced it.
type ScoreEntry struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
	MaxScore int    `json:"max_score"`
	Reason   string `json:"reason"`
}

// LeadScore is the full scoring output for one submission. Pure function of
// the LeadSubmission; immutable after Evaluate returns it.
type LeadScore struct {
	TotalScore    int          `json:"total_score"`
	MaxScore      int          `json:"max_score"`
	Rating        Rating       `json:"rating"`
	Breakdown     []ScoreEntry `json:"breakdown"`
	Insights      []string     `json:"insights"`
	RedFlags      []string     `json:"red_flags"`
	Opportunities []string     `json:"opportunities"`
}

// Percentage returns the total score as a percentage of the maximum.
func (s *LeadScore) Percentage() float64 {
	if s.MaxScore == 0 {
		return 0
	}
	return float64(s.TotalScore) / float64(s.MaxScore) * 100
}
