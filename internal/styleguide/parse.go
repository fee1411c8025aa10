package styleguide

import (
	"strings"

	"github.com/flowlogic-ai/lead-intake/internal/model"
)

// sectionKey identifies which guide section a heading belongs to.
type sectionKey int

const (
	keyNone sectionKey = iota
	keyVoiceTone
	keyKeyPhrases
	keyStructure
	keyThemes
	keyExamples
	keyAvoid
)

// classifyHeading maps a heading line onto a section, by keyword.
func classifyHeading(heading string) sectionKey {
	h := strings.ToLower(heading)
	switch {
	case strings.Contains(h, "voice") || strings.Contains(h, "tone"):
		return keyVoiceTone
	case strings.Contains(h, "phrase"):
		return keyKeyPhrases
	case strings.Contains(h, "structure"):
		return keyStructure
	case strings.Contains(h, "theme"):
		return keyThemes
	case strings.Contains(h, "example"):
		return keyExamples
	case strings.Contains(h, "avoid"):
		return keyAvoid
	default:
		return keyNone
	}
}

// isHeading reports whether a line looks like a section heading: a markdown
// heading marker or an ALL-CAPS line.
func isHeading(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}
	if strings.HasPrefix(trimmed, "#") {
		return strings.TrimSpace(strings.TrimLeft(trimmed, "# ")), true
	}
	if isAllCaps(trimmed) {
		return trimmed, true
	}
	return "", false
}

// isAllCaps reports whether a line consists of uppercase letters and
// punctuation only, with at least one letter. Short shouty fragments inside
// prose are excluded by requiring the line to have no lowercase at all.
func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// ParseSections splits a generated guide into named sections by heading
// pattern. Content under an unrecognized heading, or before any heading,
// accumulates in Unsectioned so nothing is silently dropped.
func ParseSections(text string) model.StyleGuideSections {
	var sections model.StyleGuideSections

	buckets := make(map[sectionKey][]string)
	current := keyNone

	for _, line := range strings.Split(text, "\n") {
		if heading, ok := isHeading(line); ok {
			current = classifyHeading(heading)
			if current == keyNone {
				// Unrecognized heading: keep it with its content.
				buckets[keyNone] = append(buckets[keyNone], strings.TrimSpace(line))
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		buckets[current] = append(buckets[current], strings.TrimRight(line, " \t"))
	}

	join := func(k sectionKey) string {
		return strings.Join(buckets[k], "\n")
	}

	sections.VoiceTone = join(keyVoiceTone)
	sections.KeyPhrases = join(keyKeyPhrases)
	sections.Structure = join(keyStructure)
	sections.Themes = join(keyThemes)
	sections.Examples = join(keyExamples)
	sections.ThingsToAvoid = join(keyAvoid)
	sections.Unsectioned = join(keyNone)

	return sections
}
