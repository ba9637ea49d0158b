package fields_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealscan/dealscan/constants"
	"github.com/dealscan/dealscan/internal/fields"
)

func TestValidateRegion(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		valid      bool
		normalized string
	}{
		{"lowercase na normalizes", "na", true, "NA"},
		{"mixed case emea", "Emea", true, "EMEA"},
		{"apac with whitespace", "  APAC ", true, "APAC"},
		{"latam", "latam", true, "LATAM"},
		{"EU is not a region", "EU", false, ""},
		{"empty", "", false, ""},
		{"sentinel n/a", "N/A", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := fields.Validate("region", tt.raw)
			assert.Equal(t, tt.valid, out.Valid)
			if tt.valid {
				assert.Equal(t, tt.normalized, out.Normalized)
				assert.Equal(t, fields.ConfidenceHigh, out.Confidence)
			}
		})
	}
}

func TestValidateFloorAmount(t *testing.T) {
	out := fields.Validate("floor_amount", "$1,250,000")
	require.True(t, out.Valid)
	assert.Equal(t, "1250000", out.Normalized)
	assert.Equal(t, fields.ConfidenceHigh, out.Confidence)

	out = fields.Validate("floor_amount", "$12")
	assert.False(t, out.Valid)

	out = fields.Validate("floor_amount", "750")
	require.True(t, out.Valid)
	assert.Equal(t, fields.ConfidenceMedium, out.Confidence)

	out = fields.Validate("floor_amount", "no digits here")
	assert.False(t, out.Valid)
}

func TestValidateCompanyName(t *testing.T) {
	out := fields.Validate("company_name", "Acme Solutions Ltd")
	require.True(t, out.Valid)
	assert.Equal(t, fields.ConfidenceHigh, out.Confidence)

	out = fields.Validate("company_name", "Quiet Harbor")
	require.True(t, out.Valid)
	assert.Equal(t, fields.ConfidenceMedium, out.Confidence)

	// suffix must be a whole token, not a substring
	out = fields.Validate("company_name", "Boltdrive")
	require.True(t, out.Valid)
	assert.Equal(t, fields.ConfidenceMedium, out.Confidence)

	assert.False(t, fields.Validate("company_name", "ab").Valid)
	assert.False(t, fields.Validate("company_name", string(make([]byte, 101))).Valid)
}

func TestValidatePeriod(t *testing.T) {
	out := fields.Validate("period_months", "24 months")
	require.True(t, out.Valid)
	assert.Equal(t, "24", out.Normalized)
	assert.Equal(t, fields.ConfidenceHigh, out.Confidence)

	assert.False(t, fields.Validate("period_months", "0").Valid)
	assert.False(t, fields.Validate("period_months", "121").Valid)
	assert.False(t, fields.Validate("period_months", "soon").Valid)
}

func TestValidateCurrency(t *testing.T) {
	// idempotence: validating a normalized value returns it unchanged
	out := fields.Validate("currency", "USD")
	require.True(t, out.Valid)
	assert.Equal(t, "USD", out.Normalized)

	out = fields.Validate("currency", "eur")
	require.True(t, out.Valid)
	assert.Equal(t, "EUR", out.Normalized)

	out = fields.Validate("currency", "$")
	require.True(t, out.Valid)
	assert.Equal(t, "USD", out.Normalized)

	out = fields.Validate("currency", "€")
	require.True(t, out.Valid)
	assert.Equal(t, "EUR", out.Normalized)

	assert.False(t, fields.Validate("currency", "XYZ").Valid)
}

func TestValidateEmail(t *testing.T) {
	out := fields.Validate("contact_email", "Jane.Doe@Example.COM")
	require.True(t, out.Valid)
	assert.Equal(t, "jane.doe@example.com", out.Normalized)

	assert.False(t, fields.Validate("contact_email", "not-an-email").Valid)
	assert.False(t, fields.Validate("contact_email", "a@b").Valid)
}

func TestValidateFreeText(t *testing.T) {
	out := fields.Validate("notes", "  some value  ")
	require.True(t, out.Valid)
	assert.Equal(t, "some value", out.Normalized)
	assert.Equal(t, fields.ConfidenceMedium, out.Confidence)

	assert.False(t, fields.Validate("notes", "").Valid)
	assert.False(t, fields.Validate("notes", string(make([]byte, 500))).Valid)
}

func TestValidateNoValueSentinels(t *testing.T) {
	for _, sentinel := range []string{"", "n/a", "N/A", "null", "NONE", "not found", "unknown", "-"} {
		out := fields.Validate("notes", sentinel)
		assert.False(t, out.Valid, "sentinel %q should be invalid", sentinel)
		assert.Equal(t, "no value", out.Reason)
	}
	// "na" means not-found everywhere except region fields
	assert.False(t, fields.Validate("company_name", "na").Valid)
	assert.True(t, fields.Validate("region", "na").Valid)
}

func TestCriticalSet(t *testing.T) {
	assert.ElementsMatch(t, []string{"region", "floor_amount", "currency"},
		fields.CriticalSet(constants.ContractOfFinance))
	// unknown types fall back to the generic set
	assert.Equal(t, fields.CriticalSet(constants.Generic), fields.CriticalSet(constants.DocType("MYSTERY")))
}

func TestCountCritical(t *testing.T) {
	specs := []fields.Spec{{Name: "region"}, {Name: "floor_amount"}, {Name: "currency"}, {Name: "notes"}}
	na, usd := "NA", "USD"
	data := map[string]*string{"region": &na, "floor_amount": nil, "currency": &usd, "notes": &na}

	assert.Equal(t, 2, fields.CountCritical(constants.ContractOfFinance, specs, data))
	assert.Equal(t, 3, fields.CriticalRequested(constants.ContractOfFinance, specs))

	// only requested fields count
	assert.Equal(t, 1, fields.CriticalRequested(constants.ContractOfFinance, []fields.Spec{{Name: "currency"}}))
}
