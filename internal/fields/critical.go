package fields

import "github.com/dealscan/dealscan/constants"

// criticalByDocType designates, per document type, the fields whose
// successful extraction makes a candidate complete enough to stop
// trying further backends. This is configuration data; callers treat
// the returned set as read-only.
var criticalByDocType = map[constants.DocType][]string{
	constants.ContractOfFinance: {"region", "floor_amount", "currency"},
	constants.Invoice:           {"company_name", "total_amount", "currency"},
	constants.Generic:           {"company_name", "currency"},
}

// CriticalSet returns the critical field names for a document type,
// falling back to the Generic set for unknown types.
func CriticalSet(docType constants.DocType) []string {
	if set, ok := criticalByDocType[docType]; ok {
		return set
	}
	return criticalByDocType[constants.Generic]
}

// CountCritical counts how many critical fields for docType have a
// non-nil value in data, considering only fields that were requested.
func CountCritical(docType constants.DocType, requested []Spec, data map[string]*string) int {
	critical := map[string]struct{}{}
	for _, name := range CriticalSet(docType) {
		critical[name] = struct{}{}
	}
	count := 0
	for _, spec := range requested {
		if _, ok := critical[spec.Name]; !ok {
			continue
		}
		if v, ok := data[spec.Name]; ok && v != nil {
			count++
		}
	}
	return count
}

// CriticalRequested counts how many of docType's critical fields appear
// in the requested set at all. Early stop compares against this, not
// the full table, so a request that omits a critical field can still
// complete.
func CriticalRequested(docType constants.DocType, requested []Spec) int {
	critical := map[string]struct{}{}
	for _, name := range CriticalSet(docType) {
		critical[name] = struct{}{}
	}
	count := 0
	for _, spec := range requested {
		if _, ok := critical[spec.Name]; ok {
			count++
		}
	}
	return count
}
