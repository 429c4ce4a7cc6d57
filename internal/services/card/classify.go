package card

import (
	"strings"
	"unicode"

	"cardkeeper/internal/models"
)

// CleanCardNumber strips all whitespace from a card number.
func CleanCardNumber(number string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, number)
}

// DetectCardType classifies a cleaned number by its leading digit only.
// This is not BIN-range validation: every 3 is reported as American Express.
func DetectCardType(cleaned string) models.CardType {
	if cleaned == "" {
		return models.CardTypeGeneric
	}
	switch cleaned[0] {
	case '4':
		return models.CardTypeVisa
	case '5':
		return models.CardTypeMastercard
	case '3':
		return models.CardTypeAmex
	default:
		return models.CardTypeGeneric
	}
}

// LastFour returns the trailing four characters of a cleaned number.
func LastFour(cleaned string) string {
	if len(cleaned) <= 4 {
		return cleaned
	}
	return cleaned[len(cleaned)-4:]
}
