package llm

import (
	"context"

	"github.com/dealscan/dealscan/constants"
	"github.com/dealscan/dealscan/internal/fields"
)

// ModelAdapter is the single contract every remote extraction backend
// satisfies. Adapters are interchangeable; the orchestrator iterates
// them in priority order and treats a failed Call as a reason to try
// the next one.
type ModelAdapter interface {
	// Name identifies the backend in logs and result provenance.
	Name() string
	// Call sends a prompt and returns the raw response text. Errors
	// cover network, auth and rate-limit problems uniformly.
	Call(ctx context.Context, prompt string) (string, error)
}

// PromptInput carries everything the shared prompt builder needs.
type PromptInput struct {
	DocumentText string
	Fields       []fields.Spec
	FileName     string
	DocType      constants.DocType
}
