package webpresence

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlogic-ai/lead-intake/internal/config"
	"github.com/flowlogic-ai/lead-intake/internal/model"
)

func newTestAnalyzer() *Analyzer {
	return New(config.PresenceConfig{ProbeTimeoutSecs: 2})
}

func TestAnalyze_ReachableWebsite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sub := &model.LeadSubmission{Website: srv.URL}
	result := newTestAnalyzer().Analyze(context.Background(), sub)

	require.NotNil(t, result.Website)
	assert.True(t, result.Website.IsAccessible)
	assert.False(t, result.Website.HasSSL) // httptest server is plain HTTP
	assert.True(t, result.HasWebsite)
	assert.GreaterOrEqual(t, result.OverallScore, 0)
	assert.LessOrEqual(t, result.OverallScore, 100)
}

func TestAnalyze_NotFoundIsNotAccessible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	sub := &model.LeadSubmission{Website: srv.URL}
	result := newTestAnalyzer().Analyze(context.Background(), sub)

	require.NotNil(t, result.Website)
	assert.False(t, result.Website.IsAccessible)
	assert.Contains(t, result.Website.Error, "404")
}

func TestAnalyze_ConnectionRefusedNeverPanics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately closed: connection refused

	sub := &model.LeadSubmission{Website: srv.URL}
	var result *model.WebPresenceScore
	assert.NotPanics(t, func() {
		result = newTestAnalyzer().Analyze(context.Background(), sub)
	})

	require.NotNil(t, result.Website)
	assert.False(t, result.Website.IsAccessible)
	assert.NotEmpty(t, result.Website.Error)
	assert.GreaterOrEqual(t, result.OverallScore, 0)
	assert.LessOrEqual(t, result.OverallScore, 100)
}

func TestAnalyze_MalformedWebsiteURL(t *testing.T) {
	sub := &model.LeadSubmission{Website: "not-a-url"}
	result := newTestAnalyzer().Analyze(context.Background(), sub)

	require.NotNil(t, result.Website)
	assert.False(t, result.Website.IsAccessible)
	assert.Equal(t, "malformed URL", result.Website.Error)
}

func TestClassifySocialLink(t *testing.T) {
	tests := []struct {
		url      string
		platform string
		valid    bool
	}{
		{"https://www.linkedin.com/company/x", "LinkedIn", true},
		{"https://facebook.com/acme", "Facebook", true},
		{"https://x.com/acme", "Twitter/X", true},
		{"https://www.tiktok.com/@acme", "TikTok", true},
		{"https://example.com/acme", PlatformUnknown, true},
		// Domains that merely contain a platform domain stay unclassified.
		{"https://netflix.com/title/1", PlatformUnknown, true},
		{"https://notfacebook.com/acme", PlatformUnknown, true},
		{"https://x.com.evil.example/acme", PlatformUnknown, true},
		{"https://mobile.twitter.com/acme", "Twitter/X", true},
		{"https://linkedin.com:443/company/x", "LinkedIn", true},
		{"not-a-url", PlatformUnknown, false},
		{"ftp://linkedin.com/company/x", PlatformUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			link := classifySocialLink(tt.url)
			assert.Equal(t, tt.platform, link.Platform)
			assert.Equal(t, tt.valid, link.IsValid)
		})
	}
}

func TestEstablishmentScore_Tiers(t *testing.T) {
	// Three valid socials, LinkedIn, secure reachable site: max composite.
	result := &model.WebPresenceScore{
		HasWebsite:     true,
		HasSocialMedia: true,
		Website:        &model.WebsiteCheck{IsAccessible: true, HasSSL: true},
		SocialLinks: []model.SocialLink{
			{Platform: "LinkedIn", IsValid: true},
			{Platform: "Facebook", IsValid: true},
			{Platform: "Instagram", IsValid: true},
		},
	}
	score, factors := establishmentScore(result)
	assert.Equal(t, 100, score)
	assert.NotEmpty(t, factors)

	// LinkedIn without a reachable website gets the smaller bonus.
	result2 := &model.WebPresenceScore{
		HasSocialMedia: true,
		SocialLinks:    []model.SocialLink{{Platform: "LinkedIn", IsValid: true}},
	}
	score2, _ := establishmentScore(result2)
	assert.Equal(t, 25, score2) // 15 for one platform + 10 LinkedIn alone
}

func TestMaturityTiers(t *testing.T) {
	assert.Equal(t, model.RatingHigh, maturity(75))
	assert.Equal(t, model.RatingMedium, maturity(74))
	assert.Equal(t, model.RatingMedium, maturity(40))
	assert.Equal(t, model.RatingLow, maturity(39))
}

func TestRecommendations_KeyedOffMissingSignals(t *testing.T) {
	result := &model.WebPresenceScore{} // nothing at all
	recs := recommendations(result)

	joined := ""
	for _, r := range recs {
		joined += r + " "
	}
	assert.Contains(t, joined, "No website")
	assert.Contains(t, joined, "LinkedIn")
	assert.Contains(t, joined, "social")
}
