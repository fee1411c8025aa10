package styleguide

import (
	"bytes"
	"strings"
	"time"
	"unicode"

	"github.com/jung-kurt/gofpdf"
	"github.com/rotisserie/eris"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RenderPDF formats a guide as a letter-sized PDF. The body is walked line by
// line: markdown headings become bold section headers, bullets are indented,
// everything else wraps as body text. Characters outside the core font
// encoding are folded to their base form or dropped; the plain-text guide in
// the evaluation result keeps the original content.
func RenderPDF(title, company, body string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, sanitizeLatin1(title), "", "L", false)

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(90, 90, 90)
	pdf.MultiCell(0, 6, sanitizeLatin1(company), "", "L", false)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, time.Now().Format("January 2, 2006"), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	for _, line := range strings.Split(body, "\n") {
		writeLine(pdf, line)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, eris.Wrap(err, "styleguide: rendering pdf")
	}
	return buf.Bytes(), nil
}

func writeLine(pdf *gofpdf.Fpdf, line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		pdf.Ln(3)
		return
	}

	switch {
	case strings.HasPrefix(trimmed, "#"):
		text := strings.TrimSpace(strings.TrimLeft(trimmed, "# "))
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, sanitizeLatin1(text), "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
	case isAllCaps(trimmed):
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 7, sanitizeLatin1(trimmed), "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetX(26)
		pdf.MultiCell(0, 5, "\x95 "+sanitizeLatin1(trimmed[2:]), "", "L", false)
		pdf.SetX(20)
	default:
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, sanitizeLatin1(trimmed), "", "L", false)
	}
}

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// sanitizeLatin1 folds accented characters to their base letters and drops
// anything the core PDF fonts cannot encode.
func sanitizeLatin1(s string) string {
	folded, _, err := transform.String(accentFolder, s)
	if err != nil {
		folded = s
	}

	// The core fonts read raw single-byte cp1252, so emit bytes, not UTF-8.
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r < 0x80:
			b.WriteByte(byte(r))
		case r == '‘' || r == '’':
			b.WriteByte('\'')
		case r == '“' || r == '”':
			b.WriteByte('"')
		case r == '–' || r == '—':
			b.WriteByte('-')
		case r == '•':
			b.WriteByte(0x95)
		}
	}
	return b.String()
}
