package creditcard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"cardkeeper/internal/logger"
	"cardkeeper/internal/models"
	"cardkeeper/internal/services/card"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/customer"
	"github.com/stripe/stripe-go/v72/paymentmethod"
)

var ErrNoCustomer = errors.New("user has no Stripe customer")

// StripeBackend stores cards as payment methods attached to a Stripe customer.
type StripeBackend struct {
	customerID string
	methods    PaymentMethods
	customers  Customers

	mu sync.Mutex
	// card id -> payment method id
	tokens map[string]string
}

// NewStripeBackend builds a backend talking to the Stripe API with secretKey.
func NewStripeBackend(secretKey, customerID string) (*StripeBackend, error) {
	if secretKey == "" {
		return nil, errors.New("stripe secret key not configured")
	}
	b := stripe.GetBackend(stripe.APIBackend)
	return NewStripeBackendWith(customerID,
		&paymentmethod.Client{B: b, Key: secretKey},
		&customer.Client{B: b, Key: secretKey},
	)
}

// NewStripeBackendWith builds a backend on explicit API clients.
func NewStripeBackendWith(customerID string, methods PaymentMethods, customers Customers) (*StripeBackend, error) {
	if customerID == "" {
		return nil, ErrNoCustomer
	}
	return &StripeBackend{
		customerID: customerID,
		methods:    methods,
		customers:  customers,
		tokens:     make(map[string]string),
	}, nil
}

func (s *StripeBackend) SubmitCard(ctx context.Context, c models.Card, form models.CardFormData) (models.Card, error) {
	params := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: cardParams(form),
		BillingDetails: &stripe.BillingDetailsParams{
			Name: stripe.String(form.CardHolderName),
		},
	}
	params.Context = ctx

	pm, err := s.methods.New(params)
	if err != nil {
		return models.Card{}, fmt.Errorf("stripe payment method creation failed: %w", err)
	}

	attach := &stripe.PaymentMethodAttachParams{Customer: stripe.String(s.customerID)}
	attach.Context = ctx
	if _, err := s.methods.Attach(pm.ID, attach); err != nil {
		return models.Card{}, fmt.Errorf("stripe payment method attach failed: %w", err)
	}

	s.mu.Lock()
	s.tokens[c.ID] = pm.ID
	s.mu.Unlock()

	c.ProcessorToken = pm.ID
	logger.Info("card attached to stripe customer",
		logger.LoggerOptions{Key: "card_id", Data: c.ID},
		logger.LoggerOptions{Key: "payment_method", Data: pm.ID},
	)
	return c, nil
}

// DeleteCard detaches the card's payment method. Unknown cards are ignored.
func (s *StripeBackend) DeleteCard(ctx context.Context, cardID string) error {
	s.mu.Lock()
	pmID, ok := s.tokens[cardID]
	s.mu.Unlock()
	if !ok {
		return nil
	}

	params := &stripe.PaymentMethodDetachParams{}
	params.Context = ctx
	if _, err := s.methods.Detach(pmID, params); err != nil {
		return fmt.Errorf("stripe payment method detach failed: %w", err)
	}

	s.mu.Lock()
	delete(s.tokens, cardID)
	s.mu.Unlock()
	return nil
}

// MarkDefault points the customer's invoice default at the card. An unknown card clears
// the customer's default.
func (s *StripeBackend) MarkDefault(ctx context.Context, cardID string) error {
	s.mu.Lock()
	pmID := s.tokens[cardID]
	s.mu.Unlock()

	params := &stripe.CustomerParams{
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(pmID),
		},
	}
	params.Context = ctx
	if _, err := s.customers.Update(s.customerID, params); err != nil {
		return fmt.Errorf("stripe default payment method update failed: %w", err)
	}
	return nil
}

func cardParams(form models.CardFormData) *stripe.PaymentMethodCardParams {
	if tok, ok := testToken(form.CardNumber); ok {
		return &stripe.PaymentMethodCardParams{Token: stripe.String(tok)}
	}

	month, year := splitExpiry(form.ExpiryDate)
	p := &stripe.PaymentMethodCardParams{
		Number:   stripe.String(card.CleanCardNumber(form.CardNumber)),
		ExpMonth: stripe.String(month),
		ExpYear:  stripe.String(year),
	}
	if form.CVV != "" {
		p.CVC = stripe.String(form.CVV)
	}
	return p
}

// splitExpiry turns "MM/YY" or "MM/YYYY" into its parts. Anything else is passed
// through as the month and left for Stripe to reject.
func splitExpiry(expiry string) (month, year string) {
	parts := strings.SplitN(strings.TrimSpace(expiry), "/", 2)
	if len(parts) != 2 {
		return expiry, ""
	}
	month = strings.TrimSpace(parts[0])
	year = strings.TrimSpace(parts[1])
	if len(year) == 2 {
		year = "20" + year
	}
	return month, year
}
