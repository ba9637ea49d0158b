package extract

import (
	"github.com/dealscan/dealscan/constants"
	"github.com/dealscan/dealscan/internal/fields"
)

// Request describes one document to extract fields from. It is created
// once per document and never mutated.
type Request struct {
	DocumentText string
	Fields       []fields.Spec
	FileName     string
	DocType      constants.DocType
	DocumentPath string // enables OCR fallback when DocumentText is empty
}

// Result is the final outcome returned to the caller. Data always has
// exactly one entry per requested field; a field that was not found is
// an explicit nil, never an absent key.
type Result struct {
	Success             bool               `json:"success"`
	Data                map[string]*string `json:"data"`
	Method              string             `json:"method"`
	ExtractedFieldCount int                `json:"extracted_field_count"`
	TotalFields         int                `json:"total_fields"`
	CriticalFieldsFound int                `json:"critical_fields_found"`
	Error               string             `json:"error,omitempty"`
}

// candidate is one backend's validated attempt. Candidates are compared
// by criticalFound and discarded except the best one.
type candidate struct {
	data          map[string]*string
	method        string
	criticalFound int
}

func nullData(specs []fields.Spec) map[string]*string {
	data := make(map[string]*string, len(specs))
	for _, spec := range specs {
		data[spec.Name] = nil
	}
	return data
}

func countNonNull(data map[string]*string) int {
	n := 0
	for _, v := range data {
		if v != nil {
			n++
		}
	}
	return n
}

func emptyResult(req Request, method, reason string) Result {
	return Result{
		Success:     false,
		Data:        nullData(req.Fields),
		Method:      method,
		TotalFields: len(req.Fields),
		Error:       reason,
	}
}
