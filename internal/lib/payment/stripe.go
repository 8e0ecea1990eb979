package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// StripeProcessor implements Processor against the Stripe API.
type StripeProcessor struct {
	api      *client.API
	currency string
}

// NewStripeProcessor builds a Stripe-backed processor.
func NewStripeProcessor(secretKey, currency string) *StripeProcessor {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProcessor{api: api, currency: currency}
}

// CreateIntent creates a Stripe payment intent. Stripe wants the amount in
// the minor unit, so dollars become cents here.
func (p *StripeProcessor) CreateIntent(ctx context.Context, amount float64) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(int64(math.Round(amount * 100))),
		Currency: stripe.String(p.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
	}

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	return &Intent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}
