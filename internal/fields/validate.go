package fields

import (
	"regexp"
	"strings"

	"github.com/dealscan/dealscan/constants"
)

// Category is the validation rule family applied to a field. Fields are
// routed to a category by name fragments; anything unrecognized gets
// the free-text rule.
type Category int

const (
	CategoryFreeText Category = iota
	CategoryRegion
	CategoryAmount
	CategoryCompany
	CategoryPeriod
	CategoryCurrency
	CategoryEmail
)

var (
	reEmail     = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	reNonDigit  = regexp.MustCompile(`[^0-9]`)
	reLeadDigit = regexp.MustCompile(`^\s*(\d+)`)
)

// Textual "not found" sentinels. Values matching these are treated as
// explicit null at this boundary; nothing downstream ever sees them.
var noValueSentinels = map[string]struct{}{
	"":          {},
	"n/a":       {},
	"null":      {},
	"none":      {},
	"not found": {},
	"unknown":   {},
	"-":         {},
}

var corporateSuffixes = []string{
	"Ltd", "Inc", "LLC", "Corp", "Corporation", "Solutions",
	"Enterprises", "Labs", "Systems", "Co", "Limited", "S.A.",
}

// Categorize routes a field name to its validation rule family.
func Categorize(fieldName string) Category {
	name := strings.ToLower(fieldName)
	switch {
	case strings.Contains(name, "region"):
		return CategoryRegion
	case strings.Contains(name, "floor"), strings.Contains(name, "amount"), strings.Contains(name, "total"):
		return CategoryAmount
	case strings.Contains(name, "company"), strings.Contains(name, "counterparty"), strings.Contains(name, "client"):
		return CategoryCompany
	case strings.Contains(name, "period"), strings.Contains(name, "duration"), strings.Contains(name, "term"):
		return CategoryPeriod
	case strings.Contains(name, "currency"):
		return CategoryCurrency
	case strings.Contains(name, "email"), strings.Contains(name, "contact"):
		return CategoryEmail
	default:
		return CategoryFreeText
	}
}

// Validate checks and normalizes a single raw value against the rule
// for fieldName. Pure and deterministic; no I/O.
func Validate(fieldName, raw string) Outcome {
	cat := Categorize(fieldName)
	val := strings.TrimSpace(raw)

	lower := strings.ToLower(val)
	if _, ok := noValueSentinels[lower]; ok {
		return invalid("no value")
	}
	// "na" is a real region code; everywhere else it means not-found.
	if lower == "na" && cat != CategoryRegion {
		return invalid("no value")
	}

	switch cat {
	case CategoryRegion:
		return validateRegion(val)
	case CategoryAmount:
		return validateAmount(val)
	case CategoryCompany:
		return validateCompany(val)
	case CategoryPeriod:
		return validatePeriod(val)
	case CategoryCurrency:
		return validateCurrency(val)
	case CategoryEmail:
		return validateEmail(val)
	default:
		return validateFreeText(val)
	}
}

func validateRegion(val string) Outcome {
	code := strings.ToUpper(val)
	if _, ok := constants.Regions[code]; !ok {
		return invalid("unknown region code")
	}
	return Outcome{Valid: true, Confidence: ConfidenceHigh, Normalized: code}
}

// validateAmount strips formatting and rejects values below 50: amounts
// that small are noise from dates or line numbers, not a monetary floor.
func validateAmount(val string) Outcome {
	digits := reNonDigit.ReplaceAllString(val, "")
	if digits == "" {
		return invalid("no digits")
	}
	if len(digits) > 15 {
		return invalid("amount too large")
	}
	n := 0
	for _, r := range digits {
		n = n*10 + int(r-'0')
	}
	if n < 50 {
		return invalid("amount below floor threshold")
	}
	conf := ConfidenceMedium
	if n >= 1000 {
		conf = ConfidenceHigh
	}
	return Outcome{Valid: true, Confidence: conf, Normalized: digits}
}

func validateCompany(val string) Outcome {
	if len(val) < 3 || len(val) > 100 {
		return invalid("company name length out of range")
	}
	conf := ConfidenceMedium
	for _, suffix := range corporateSuffixes {
		if containsToken(val, suffix) {
			conf = ConfidenceHigh
			break
		}
	}
	return Outcome{Valid: true, Confidence: conf, Normalized: val}
}

func validatePeriod(val string) Outcome {
	m := reLeadDigit.FindStringSubmatch(val)
	if m == nil {
		return invalid("no leading digits")
	}
	digits := m[1]
	if len(digits) > 3 {
		return invalid("period out of range")
	}
	n := 0
	for _, r := range digits {
		n = n*10 + int(r-'0')
	}
	if n < 1 || n > 120 {
		return invalid("period out of range")
	}
	return Outcome{Valid: true, Confidence: ConfidenceHigh, Normalized: digits}
}

func validateCurrency(val string) Outcome {
	if code, ok := constants.CurrencySymbols[val]; ok {
		return Outcome{Valid: true, Confidence: ConfidenceHigh, Normalized: code}
	}
	code := strings.ToUpper(val)
	if _, ok := constants.Currencies[code]; ok {
		return Outcome{Valid: true, Confidence: ConfidenceHigh, Normalized: code}
	}
	return invalid("unknown currency")
}

func validateEmail(val string) Outcome {
	if !reEmail.MatchString(val) {
		return invalid("not an email address")
	}
	return Outcome{Valid: true, Confidence: ConfidenceHigh, Normalized: strings.ToLower(val)}
}

func validateFreeText(val string) Outcome {
	if len(val) == 0 || len(val) >= 500 {
		return invalid("text length out of range")
	}
	return Outcome{Valid: true, Confidence: ConfidenceMedium, Normalized: val}
}

// containsToken reports whether token appears in s as a whole word,
// case-insensitively.
func containsToken(s, token string) bool {
	ls, lt := strings.ToLower(s), strings.ToLower(token)
	idx := 0
	for {
		i := strings.Index(ls[idx:], lt)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(lt)
		beforeOK := start == 0 || !isWordChar(ls[start-1])
		afterOK := end == len(ls) || !isWordChar(ls[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}
