// Package webpresence assesses a lead's digital footprint from its website
// and social links. Analysis is best-effort: network failures degrade the
// score, they never fail the pipeline.
package webpresence

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/flowlogic-ai/lead-intake/internal/config"
	"github.com/flowlogic-ai/lead-intake/internal/model"
)

// PlatformUnknown classifies social URLs whose domain matches no known
// platform; the link is kept either way.
const PlatformUnknown = "Unknown"

// platformDomains maps platform domains to display names. Matching is on the
// registered domain or a subdomain of it, never a raw substring, so hosts
// like netflix.com do not classify as x.com.
var platformDomains = []struct {
	domain   string
	platform string
}{
	{"facebook.com", "Facebook"},
	{"twitter.com", "Twitter/X"},
	{"x.com", "Twitter/X"},
	{"linkedin.com", "LinkedIn"},
	{"instagram.com", "Instagram"},
	{"youtube.com", "YouTube"},
	{"tiktok.com", "TikTok"},
	{"pinterest.com", "Pinterest"},
}

// Maturity thresholds on the overall score.
const (
	maturityHigh   = 75
	maturityMedium = 40
)

// Analyzer probes websites and classifies social links.
type Analyzer struct {
	http    *http.Client
	timeout time.Duration
}

// New creates an Analyzer. The probe timeout comes from config and defaults
// to 10s.
func New(cfg config.PresenceConfig) *Analyzer {
	timeout := time.Duration(cfg.ProbeTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Analyzer{
		http:    &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Analyze builds the full presence assessment for one submission.
func (a *Analyzer) Analyze(ctx context.Context, sub *model.LeadSubmission) *model.WebPresenceScore {
	result := &model.WebPresenceScore{
		HasWebsite:     sub.Website != "",
		HasSocialMedia: len(sub.SocialLinks) > 0,
	}

	if sub.Website != "" {
		result.Website = a.probeWebsite(ctx, sub.Website)
	}

	for _, link := range sub.SocialLinks {
		result.SocialLinks = append(result.SocialLinks, classifySocialLink(link))
	}

	result.EstablishmentScore, result.Factors = establishmentScore(result)
	result.OverallScore = overallScore(result)
	result.DigitalMaturity = maturity(result.OverallScore)
	result.Recommendations = recommendations(result)

	zap.L().Debug("webpresence: analysis complete",
		zap.String("company", sub.Company),
		zap.Int("overall", result.OverallScore),
		zap.String("maturity", string(result.DigitalMaturity)),
	)

	return result
}

// probeWebsite issues a bounded HEAD request. Timeout, DNS failure, and
// non-ok status all classify as not accessible; the distinction survives only
// in the Error string.
func (a *Analyzer) probeWebsite(ctx context.Context, rawURL string) *model.WebsiteCheck {
	check := &model.WebsiteCheck{URL: rawURL}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		check.Error = "malformed URL"
		return check
	}
	check.HasSSL = parsed.Scheme == "https"

	probeCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, rawURL, nil)
	if err != nil {
		check.Error = "malformed URL"
		return check
	}

	resp, err := a.http.Do(req)
	if err != nil {
		check.Error = err.Error()
		return check
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		check.Error = fmt.Sprintf("status %d", resp.StatusCode)
		return check
	}

	check.IsAccessible = true
	return check
}

// classifySocialLink classifies a platform by domain and checks only
// syntactic validity.
func classifySocialLink(rawURL string) model.SocialLink {
	link := model.SocialLink{URL: rawURL, Platform: PlatformUnknown}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return link
	}
	link.IsValid = true

	host := strings.ToLower(parsed.Hostname())
	for _, pd := range platformDomains {
		if hostMatchesDomain(host, pd.domain) {
			link.Platform = pd.platform
			break
		}
	}
	return link
}

// hostMatchesDomain reports whether host is the domain itself or a subdomain
// of it.
func hostMatchesDomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// establishmentScore composites website and social signals into a 0-100
// sub-score with the contributing factors spelled out.
func establishmentScore(result *model.WebPresenceScore) (int, []string) {
	score := 0
	var factors []string

	accessible := result.Website != nil && result.Website.IsAccessible
	secure := result.Website != nil && result.Website.HasSSL

	if accessible {
		score += 30
		factors = append(factors, "website is reachable")
		if secure {
			score += 10
			factors = append(factors, "website serves over HTTPS")
		}
	} else if result.HasWebsite {
		factors = append(factors, "website listed but not reachable")
	}

	validCount := 0
	hasLinkedIn := false
	for _, l := range result.SocialLinks {
		if l.IsValid {
			validCount++
			if l.Platform == "LinkedIn" {
				hasLinkedIn = true
			}
		}
	}
	switch {
	case validCount >= 3:
		score += 40
		factors = append(factors, "active on three or more social platforms")
	case validCount == 2:
		score += 28
		factors = append(factors, "active on two social platforms")
	case validCount == 1:
		score += 15
		factors = append(factors, "active on one social platform")
	}

	if hasLinkedIn {
		if accessible && secure {
			score += 20
			factors = append(factors, "LinkedIn presence alongside a secure, reachable website")
		} else {
			score += 10
			factors = append(factors, "LinkedIn presence")
		}
	}

	return clamp(score), factors
}

// overallScore blends establishment with a small consistency bonus for leads
// that maintain both a website and social channels.
func overallScore(result *model.WebPresenceScore) int {
	score := result.EstablishmentScore
	if result.HasWebsite && result.HasSocialMedia {
		score += 10
	}
	return clamp(score)
}

func maturity(score int) model.Rating {
	switch {
	case score >= maturityHigh:
		return model.RatingHigh
	case score >= maturityMedium:
		return model.RatingMedium
	default:
		return model.RatingLow
	}
}

// recommendations emits rule-based suggestions keyed off each missing signal.
func recommendations(result *model.WebPresenceScore) []string {
	var recs []string

	switch {
	case !result.HasWebsite:
		recs = append(recs, "No website listed; establishing one is the first credibility step.")
	case result.Website != nil && !result.Website.IsAccessible:
		recs = append(recs, "Website could not be reached; verify hosting and DNS before launch outreach.")
	case result.Website != nil && !result.Website.HasSSL:
		recs = append(recs, "Website is not served over HTTPS; an SSL certificate is a quick win.")
	}

	hasLinkedIn := false
	validCount := 0
	for _, l := range result.SocialLinks {
		if l.IsValid {
			validCount++
		}
		if l.Platform == "LinkedIn" && l.IsValid {
			hasLinkedIn = true
		}
	}
	if !hasLinkedIn {
		recs = append(recs, "No LinkedIn profile found; B2B buyers check it first.")
	}
	if result.HasSocialMedia && validCount < len(result.SocialLinks) {
		recs = append(recs, "Some social links are malformed; fix them to avoid dead ends.")
	}
	if !result.HasSocialMedia {
		recs = append(recs, "No social channels listed; even a single active channel improves discoverability.")
	}

	return recs
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
