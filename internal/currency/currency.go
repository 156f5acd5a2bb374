// Package currency maps currency codes to display symbols.
package currency

// symbols is a fixed lookup table. Unknown codes fall back to the raw code
// string so rendering never fails on an unrecognized currency.
var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"CAD": "C$",
	"AUD": "A$",
	"JPY": "¥",
	"CHF": "Fr",
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
}

// Symbol returns the display glyph for a currency code, or the code itself
// when the code is not in the table.
func Symbol(code string) string {
	if s, ok := symbols[code]; ok {
		return s
	}
	return code
}
