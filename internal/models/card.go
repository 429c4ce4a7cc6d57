package models

import "time"

// CardType is the network a card number is classified into.
type CardType string

const (
	CardTypeVisa       CardType = "Visa"
	CardTypeMastercard CardType = "Mastercard"
	CardTypeAmex       CardType = "American Express"
	CardTypeGeneric    CardType = "Card"
)

// Card represents a stored payment card.
// Only IsDefault changes after creation.
type Card struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	UserID         uint      `json:"-" gorm:"not null;index"`
	CardNumber     string    `json:"cardNumber" gorm:"not null"`
	CardHolderName string    `json:"cardHolderName" gorm:"not null"`
	ExpiryDate     string    `json:"expiryDate" gorm:"not null"`
	CardType       CardType  `json:"cardType" gorm:"not null"`
	Last4Digits    string    `json:"last4Digits" gorm:"size:4;not null"`
	IsDefault      bool      `json:"isDefault" gorm:"not null"`
	ProcessorToken string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CardFormData is the raw input a card is built from. It is never stored as-is.
type CardFormData struct {
	CardNumber     string `json:"cardNumber" validate:"required"`
	CardHolderName string `json:"cardHolderName" validate:"required,max=64"`
	ExpiryDate     string `json:"expiryDate" validate:"required,max=7"`
	CVV            string `json:"cvv" validate:"omitempty,numeric,min=3,max=4"`
	CardName       string `json:"cardName" validate:"max=64"`
	SaveCard       bool   `json:"saveCard"`
}
