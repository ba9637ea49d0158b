package constants

// Regions holds the fixed set of valid region codes.
var Regions = map[string]struct{}{
	"NA":    {},
	"EMEA":  {},
	"APAC":  {},
	"LATAM": {},
}

// Currencies holds the accepted ISO 4217 currency codes.
var Currencies = map[string]struct{}{
	"USD": {},
	"EUR": {},
	"GBP": {},
	"JPY": {},
	"CAD": {},
	"AUD": {},
	"CHF": {},
	"CNY": {},
	"INR": {},
	"SGD": {},
}

// CurrencySymbols maps well-known currency symbols to their ISO code.
var CurrencySymbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
	"¥": "JPY",
}
