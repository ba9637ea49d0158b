package llm

import (
	"fmt"
	"strings"

	"github.com/dealscan/dealscan/constants"
)

// maxPromptText bounds how much document text is sent to a model.
const maxPromptText = 6000

// docTypeHints carries extra extraction guidance per document type,
// appended to the prompt when present.
var docTypeHints = map[constants.DocType]string{
	constants.ContractOfFinance: "The region is one of NA, EMEA, APAC, LATAM. " +
		"The floor amount is the minimum funding commitment, usually the largest monetary value in the details section. " +
		"The period is expressed in months.",
	constants.Invoice: "The total amount is the final payable value, after tax. " +
		"Prefer the amount labelled Total or Amount Due over line items.",
}

// BuildPrompt produces the shared instruction set sent to every model
// backend: JSON-only output, explicit null for unfound fields,
// normalized dates, and a focus directive that steers the model away
// from known false-positive zones.
func BuildPrompt(in PromptInput) string {
	var b strings.Builder

	b.WriteString("You are a document field extractor. Return ONLY a JSON object, no prose, no code fences.\n")
	b.WriteString("Rules:\n")
	b.WriteString("- Include every requested field as a key. Use null for fields you cannot find.\n")
	b.WriteString("- Use ISO-8601 dates (YYYY-MM-DD).\n")
	b.WriteString("- Report monetary values as plain numbers without currency symbols.\n")
	b.WriteString("- Prefer values from the commercial details section; ignore the payment terms section, it repeats amounts that are not the ones requested.\n")

	if hint, ok := docTypeHints[in.DocType]; ok {
		b.WriteString("Document-type guidance: ")
		b.WriteString(hint)
		b.WriteString("\n")
	}

	b.WriteString("\nRequested fields:\n")
	for _, f := range in.Fields {
		name := f.DisplayName
		if name == "" {
			name = f.Name
		}
		fmt.Fprintf(&b, "- %q (%s)", f.Name, name)
		if f.Description != "" {
			b.WriteString(": ")
			b.WriteString(f.Description)
		}
		b.WriteString("\n")
	}

	if in.FileName != "" {
		b.WriteString("\nFilename: ")
		b.WriteString(in.FileName)
		b.WriteString("\n")
	}

	text := in.DocumentText
	b.WriteString("\nDocument text")
	if len(text) > maxPromptText {
		text = text[:maxPromptText]
		b.WriteString(" (truncated)")
	}
	b.WriteString(":\n")
	b.WriteString(text)

	return b.String()
}
