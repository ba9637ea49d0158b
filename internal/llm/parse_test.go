package llm_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealscan/dealscan/constants"
	"github.com/dealscan/dealscan/internal/common"
	"github.com/dealscan/dealscan/internal/fields"
	"github.com/dealscan/dealscan/internal/llm"
)

var testSpecs = []fields.Spec{
	{Name: "region"},
	{Name: "floor_amount"},
	{Name: "currency"},
}

func TestExtractJSONSpan(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"prose around object", "Sure! Here you go:\n{\"a\":1}\nLet me know.", `{"a":1}`},
		{"code fence", "```json\n{\"a\":{\"b\":2}}\n```", `{"a":{"b":2}}`},
		{"braces inside strings", `{"a":"{not a brace}"}`, `{"a":"{not a brace}"}`},
		{"escaped quote in string", `{"a":"say \"{\" loudly"}`, `{"a":"say \"{\" loudly"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := llm.ExtractJSONSpan(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestExtractJSONSpanErrors(t *testing.T) {
	_, err := llm.ExtractJSONSpan("no json at all")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrParseFailure))

	_, err = llm.ExtractJSONSpan(`{"a": "unterminated`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrParseFailure))
}

func TestParseFieldsCompleteMap(t *testing.T) {
	raw := `{"region": "EMEA", "currency": "USD"}`
	got, err := llm.ParseFields(raw, testSpecs)
	require.NoError(t, err)

	// exactly one entry per requested field, missing ones explicit nil
	require.Len(t, got, len(testSpecs))
	require.NotNil(t, got["region"])
	assert.Equal(t, "EMEA", *got["region"])
	assert.Nil(t, got["floor_amount"])
	require.NotNil(t, got["currency"])
	assert.Equal(t, "USD", *got["currency"])
}

func TestParseFieldsSanitizes(t *testing.T) {
	raw := `{"region": "  EMEA ", "floor_amount": 1250000, "currency": null, "made_up_key": "x"}`
	got, err := llm.ParseFields(raw, testSpecs)
	require.NoError(t, err)

	assert.Equal(t, "EMEA", *got["region"])
	assert.Equal(t, "1250000", *got["floor_amount"])
	assert.Nil(t, got["currency"])
	_, hasUnknown := got["made_up_key"]
	assert.False(t, hasUnknown)
}

func TestParseFieldsRejectsNonObject(t *testing.T) {
	_, err := llm.ParseFields("[1,2,3]", testSpecs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrParseFailure))
}

func TestBuildPromptContents(t *testing.T) {
	prompt := llm.BuildPrompt(llm.PromptInput{
		DocumentText: "Region: EMEA",
		Fields: []fields.Spec{
			{Name: "region", DisplayName: "Region", Description: "operating region"},
		},
		FileName: "contract.pdf",
		DocType:  constants.ContractOfFinance,
	})

	assert.Contains(t, prompt, "ONLY a JSON object")
	assert.Contains(t, prompt, "Use null for fields you cannot find")
	assert.Contains(t, prompt, "YYYY-MM-DD")
	assert.Contains(t, prompt, `"region"`)
	assert.Contains(t, prompt, "operating region")
	assert.Contains(t, prompt, "contract.pdf")
	assert.Contains(t, prompt, "ignore the payment terms section")
	// doc-type guidance is included for known types
	assert.Contains(t, prompt, "NA, EMEA, APAC, LATAM")
}

func TestValidateAgainstFieldSchema(t *testing.T) {
	err := llm.ValidateAgainstFieldSchema(testSpecs, []byte(`{"region":"EMEA"}`))
	assert.NoError(t, err)

	err = llm.ValidateAgainstFieldSchema(testSpecs, []byte(`{"bogus":"x"}`))
	assert.Error(t, err)

	err = llm.ValidateAgainstFieldSchema(testSpecs, []byte(`{"region":123}`))
	assert.Error(t, err)
}
