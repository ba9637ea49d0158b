// Package pattern finds field values in raw text with regular
// expressions. It is the last-resort extraction backend and the
// backfill for fields the models missed: a miss returns nil, never an
// error.
package pattern

import (
	"regexp"
	"strings"

	"github.com/dealscan/dealscan/internal/fields"
)

var (
	reDate = regexp.MustCompile(
		`\b\d{4}-\d{2}-\d{2}\b|\b\d{1,2}[/.]\d{1,2}[/.]\d{2,4}\b|` +
			`\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.? \d{1,2},? \d{4}\b`)
	reAmount = regexp.MustCompile(
		`(?:USD|EUR|GBP|[$€£])\s?\d{1,3}(?:,\d{3})*(?:\.\d{2})?\b|\b\d{1,3}(?:,\d{3})+(?:\.\d{2})?\b`)
	reEmail   = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)
	rePhone   = regexp.MustCompile(`\+?\d[\d\s().\-]{7,14}\d`)
	reInvoice = regexp.MustCompile(`(?i)\binvoice\s*(?:no\.?|number|#)?\s*[:#]?\s*([A-Z0-9][A-Z0-9\-]{3,})`)

	reLabelClean = regexp.MustCompile(`[^a-z0-9]+`)
)

// keyword-routed categories; the first matching category's pattern is
// applied to the whole search text and the first match wins.
type patternRule struct {
	keywords []string
	re       *regexp.Regexp
	group    int
}

var rules = []patternRule{
	{keywords: []string{"date"}, re: reDate},
	{keywords: []string{"amount", "total", "floor"}, re: reAmount},
	{keywords: []string{"email", "contact"}, re: reEmail},
	{keywords: []string{"phone", "tel"}, re: rePhone},
	{keywords: []string{"invoice"}, re: reInvoice, group: 1},
}

// Extract returns the first pattern match for spec in searchText, or
// nil when nothing matches.
func Extract(spec fields.Spec, searchText string) *string {
	hint := strings.ToLower(spec.Name + " " + spec.Description)

	for _, rule := range rules {
		if !containsAny(hint, rule.keywords) {
			continue
		}
		m := rule.re.FindStringSubmatch(searchText)
		if m == nil {
			return nil
		}
		val := strings.TrimSpace(m[rule.group])
		if val == "" {
			return nil
		}
		return &val
	}

	return extractByLabel(spec.Name, searchText)
}

// extractByLabel falls back to a "label: value" proximity match built
// from the field name itself.
func extractByLabel(fieldName, searchText string) *string {
	words := labelWords(fieldName)
	if len(words) == 0 {
		return nil
	}
	// "floor_amount" -> (?i)floor[\s_-]*amount\s*[:=–-]\s*(line remainder)
	label := strings.Join(words, `[\s_\-]*`)
	re, err := regexp.Compile(`(?i)\b` + label + `\s*[:=\-–]\s*([^\n\r]+)`)
	if err != nil {
		return nil
	}
	m := re.FindStringSubmatch(searchText)
	if m == nil {
		return nil
	}
	val := strings.TrimSpace(m[1])
	val = strings.Trim(val, ":-–= \t")
	if val == "" || len(val) > 200 {
		return nil
	}
	return &val
}

func labelWords(fieldName string) []string {
	normalized := reLabelClean.ReplaceAllString(strings.ToLower(fieldName), " ")
	var words []string
	for _, w := range strings.Fields(normalized) {
		words = append(words, regexp.QuoteMeta(w))
	}
	return words
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
