package llm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dealscan/dealscan/internal/common"
	"github.com/dealscan/dealscan/internal/fields"
)

// ExtractJSONSpan locates the first balanced {...} span in raw model
// output. Models wrap JSON in prose or code fences often enough that
// strict unmarshalling of the whole response is a losing game.
func ExtractJSONSpan(raw string) ([]byte, error) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return nil, common.NewAppError("PARSE_NO_JSON", "no JSON object in response", common.ErrParseFailure)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return []byte(raw[start : i+1]), nil
			}
		}
	}
	return nil, common.NewAppError("PARSE_UNBALANCED", "unbalanced JSON object in response", common.ErrParseFailure)
}

// ParseFields turns raw model output into a field map with exactly one
// entry per requested spec; fields the model omitted or nulled are nil.
// Unknown keys and non-string values are normalized away before the
// schema check so a sloppy but salvageable response still parses.
func ParseFields(raw string, specs []fields.Spec) (map[string]*string, error) {
	span, err := ExtractJSONSpan(raw)
	if err != nil {
		return nil, err
	}

	var m map[string]any
	if err := json.Unmarshal(span, &m); err != nil {
		return nil, common.NewAppError("PARSE_BAD_JSON", "response span is not valid JSON", common.ErrParseFailure)
	}

	sanitized := sanitize(m, specs)

	doc, err := json.Marshal(sanitized)
	if err != nil {
		return nil, fmt.Errorf("re-encode sanitized response: %w", err)
	}
	if err := ValidateAgainstFieldSchema(specs, doc); err != nil {
		return nil, common.NewAppError("PARSE_SCHEMA", "response does not match field schema", common.ErrParseFailure)
	}

	out := make(map[string]*string, len(specs))
	for _, spec := range specs {
		if v, ok := sanitized[spec.Name]; ok {
			val := v
			out[spec.Name] = &val
		} else {
			out[spec.Name] = nil
		}
	}
	return out, nil
}

// sanitize keeps only requested keys, coerces numbers to strings, and
// drops nulls and empty strings.
func sanitize(m map[string]any, specs []fields.Spec) map[string]string {
	known := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		known[spec.Name] = struct{}{}
	}

	out := make(map[string]string, len(m))
	for k, v := range m {
		if _, ok := known[k]; !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			s := strings.TrimSpace(t)
			if s != "" && !strings.EqualFold(s, "null") {
				out[k] = s
			}
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(t)
		default:
			// null or a nested structure: treat as not found
		}
	}
	return out
}
