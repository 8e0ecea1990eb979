// Package payment wraps the external card processor. The rest of the
// application talks to the Processor interface; Stripe specifics stay here.
package payment

import "context"

// Intent is the processor-side handle for a payment about to happen. The
// client secret is handed to the frontend verbatim so it can complete the
// charge directly against the processor.
type Intent struct {
	ID           string
	ClientSecret string
}

// Processor creates payment intents with an external provider.
type Processor interface {
	// CreateIntent registers an intended charge of amount (in the major
	// currency unit) and returns the processor's handle for it.
	CreateIntent(ctx context.Context, amount float64) (*Intent, error)
}
