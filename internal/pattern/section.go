package pattern

// Section focusing narrows the search text to the document subsection
// most likely to hold the requested fields, so boilerplate elsewhere
// (payment terms, legal annexes) stops producing false matches.

import "regexp"

// minSectionLength guards against a heading match that captured almost
// nothing; a too-short section falls back to the full text.
const minSectionLength = 80

type headingPair struct {
	start *regexp.Regexp
	end   *regexp.Regexp
}

// Ordered most-specific first; the first start-heading found wins.
var headingPairs = []headingPair{
	{
		start: regexp.MustCompile(`(?im)^\s*(?:commercial|deal|contract)\s+details\b.*$`),
		end:   regexp.MustCompile(`(?im)^\s*(?:payment\s+terms|terms\s+and\s+conditions|signatures|appendix|annex)\b.*$`),
	},
	{
		start: regexp.MustCompile(`(?im)^\s*details\b.*$`),
		end:   regexp.MustCompile(`(?im)^\s*(?:payment\s+terms|terms\s+and\s+conditions|signatures|appendix|annex)\b.*$`),
	},
	{
		start: regexp.MustCompile(`(?im)^\s*summary\b.*$`),
		end:   regexp.MustCompile(`(?im)^\s*(?:payment\s+terms|notes|signatures)\b.*$`),
	},
}

// FocusSection isolates the details subsection of text. The second
// return reports whether focusing succeeded; on false the caller
// should search the full text.
func FocusSection(text string) (string, bool) {
	for _, pair := range headingPairs {
		loc := pair.start.FindStringIndex(text)
		if loc == nil {
			continue
		}
		rest := text[loc[1]:]
		section := rest
		if end := pair.end.FindStringIndex(rest); end != nil {
			section = rest[:end[0]]
		}
		if len(section) >= minSectionLength {
			return section, true
		}
	}
	return text, false
}
