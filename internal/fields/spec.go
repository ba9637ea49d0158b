package fields

// Spec describes a single field a caller wants extracted. The name is
// the unique key in every result map; the description is a free-text
// hint forwarded to model prompts.
type Spec struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

// Confidence is a coarse trust tier attached to a validated value. It
// is diagnostic only and never alters validity.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Outcome is the result of validating one raw value for one field.
type Outcome struct {
	Valid      bool
	Confidence Confidence
	Normalized string
	Reason     string
}

func invalid(reason string) Outcome {
	return Outcome{Valid: false, Reason: reason}
}
