package ocr

import (
	"regexp"
	"strings"
)

var (
	reDateish = regexp.MustCompile(`\b20\d{2}[-/.]\d{1,2}[-/.]\d{1,2}\b|\b\d{1,2}[/.]\d{1,2}[/.]20\d{2}\b`)
	reCurrish = regexp.MustCompile(`\b(usd|eur|gbp|cad|aud|inr|jpy)\b|[$£€¥]`)
	reAmtish  = regexp.MustCompile(`\b\d{1,3}(,\d{3})+(\.\d{2})?\b|\b\d+\.\d{2}\b`)
	reRegion  = regexp.MustCompile(`\b(na|emea|apac|latam)\b`)
)

// naive heuristic confidence based on recognized-text characteristics
func heuristicConfidence(txt string) float32 {
	// boost if we see common deal-document artifacts (date-ish,
	// currency-ish, amount-ish, region codes); each adds a bit.
	txtL := strings.ToLower(txt)
	score := float32(0.2) // base
	if reDateish.MatchString(txtL) {
		score += 0.2
	}
	if reCurrish.MatchString(txtL) {
		score += 0.15
	}
	if reAmtish.MatchString(txtL) {
		score += 0.15
	}
	if reRegion.MatchString(txtL) {
		score += 0.1
	}
	if len(txt) > 120 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
