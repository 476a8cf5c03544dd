package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"classhub/internal/qerrors"
)

type StripeGateway struct {
	api      *client.API
	currency string
}

func NewStripeGateway(secretKey, currency string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api, currency: currency}
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, intent *Intent) (*IntentResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(intent.Amount),
		Currency:           stripe.String(g.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	if intent.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(intent.ReceiptEmail)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: stripe: %v", qerrors.PaymentGatewayError, err)
	}
	return &IntentResult{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
