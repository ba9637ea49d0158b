package constants

import "strings"

// DocType tags the kind of document being processed. It selects the
// critical-field set and the extra extraction hints sent to the models.
type DocType string

const (
	ContractOfFinance DocType = "COF"
	Invoice           DocType = "INVOICE"
	Generic           DocType = "GENERIC"
)

var allDocTypes = []DocType{ContractOfFinance, Invoice, Generic}

// CanonicalDocType resolves free-form user input ("cof", "contract",
// "invoice") to a canonical DocType. Unknown input maps to Generic.
func CanonicalDocType(input string) (DocType, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	if normalized == "" {
		return Generic, false
	}

	synonyms := map[string]DocType{
		"CONTRACT":            ContractOfFinance,
		"CONTRACT_OF_FINANCE": ContractOfFinance,
		"FUNDING":             ContractOfFinance,
		"BILL":                Invoice,
		"RECEIPT":             Invoice,
	}
	if dt, ok := synonyms[normalized]; ok {
		return dt, true
	}

	for _, dt := range allDocTypes {
		if normalized == string(dt) {
			return dt, true
		}
	}
	return Generic, false
}
