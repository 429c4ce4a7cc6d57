package creditcard

import (
	"github.com/stripe/stripe-go/v72"
)

// PaymentMethods is the subset of the Stripe payment method API the backend uses.
type PaymentMethods interface {
	New(params *stripe.PaymentMethodParams) (*stripe.PaymentMethod, error)
	Attach(id string, params *stripe.PaymentMethodAttachParams) (*stripe.PaymentMethod, error)
	Detach(id string, params *stripe.PaymentMethodDetachParams) (*stripe.PaymentMethod, error)
}

// Customers is the subset of the Stripe customer API the backend uses.
type Customers interface {
	Update(id string, params *stripe.CustomerParams) (*stripe.Customer, error)
}
