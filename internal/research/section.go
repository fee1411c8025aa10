package research

import (
	"regexp"
	"strings"
)

// headingPattern matches the numbered section headings requested in the
// prompt. Handles variants like:
//   - "1. Industry Insights"
//   - "2) Competitive Analysis"
//   - "## 3. Automation Opportunities"
//   - "**4. ROI Analysis**"
var headingPattern = regexp.MustCompile(
	`(?im)^[\s#*]*(\d{1,2})\s*[.):\-]\s*([^\n*]*)`,
)

// bulletPrefixes are stripped from list-section lines.
var bulletPrefixes = []string{"- ", "* ", "• ", "– "}

// sectionNumbered splits generative output into numbered sections. Returns a
// map from section number to body text, plus any text before the first
// heading (the unsectioned remainder). A response that follows no numbering
// at all lands entirely in the remainder, never dropped.
func sectionNumbered(text string) (map[int]string, string) {
	sections := make(map[int]string)
	if text == "" {
		return sections, ""
	}

	matches := headingPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return sections, strings.TrimSpace(text)
	}

	remainder := strings.TrimSpace(text[:matches[0][0]])

	for i, m := range matches {
		num := parseInt(text[m[2]:m[3]])
		if num < 1 || num > 12 {
			continue
		}

		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(text[m[1]:end])
		if body != "" && sections[num] == "" {
			sections[num] = body
		}
	}

	return sections, remainder
}

// splitList breaks a list-type section into items, one per non-empty line,
// with leading bullet markers and numbering stripped.
func splitList(body string) []string {
	var items []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		for _, prefix := range bulletPrefixes {
			line = strings.TrimPrefix(line, prefix)
		}
		line = stripLeadingNumber(line)
		line = strings.TrimSpace(line)
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}

// stripLeadingNumber removes "1." / "2)" style item numbering.
func stripLeadingNumber(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) {
		return line
	}
	if line[i] == '.' || line[i] == ')' {
		return line[i+1:]
	}
	return line
}

func parseInt(s string) int {
	n := 0
	for _, c := range strings.TrimSpace(s) {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
