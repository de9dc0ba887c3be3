package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
)

// Intent is the provider reference handed back to the client-side payment
// widget. Only the client secret ever leaves the service.
type Intent struct {
	ID           string
	ClientSecret string
}

// Gateway creates payment intents for bookings.
type Gateway interface {
	CreateBookingIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error)
}

// StripeGateway implements Gateway against the Stripe API.
type StripeGateway struct {
	client *stripe.Client
}

// NewStripeGateway creates a StripeGateway with the given secret key.
func NewStripeGateway(apiKey string) *StripeGateway {
	return &StripeGateway{client: stripe.NewClient(apiKey)}
}

// CreateBookingIntent creates a PaymentIntent for the booking amount. The
// returned client secret is consumed by the payment widget; confirmation
// arrives asynchronously via the payment events topic.
func (g *StripeGateway) CreateBookingIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error) {
	params := &stripe.PaymentIntentCreateParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentCreateAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: metadata,
	}

	pi, err := g.client.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
