package creditcard

import (
	"cardkeeper/internal/services/card"
)

// testCards maps Stripe's published test numbers to their test tokens. Test-mode
// accounts cannot create payment methods from raw numbers, so these go by token.
var testCards = map[string]string{
	"4242424242424242": "tok_visa",
	"4000056655665556": "tok_visa_debit",
	"5555555555554444": "tok_mastercard",
	"2223003122003222": "tok_mastercard",
	"378282246310005":  "tok_amex",
	"6011111111111117": "tok_discover",
	"3056930009020004": "tok_diners",
	"36227206271667":   "tok_diners",
}

// testToken returns the Stripe test token for number, if it is a known test card.
func testToken(number string) (string, bool) {
	tok, ok := testCards[card.CleanCardNumber(number)]
	return tok, ok
}
