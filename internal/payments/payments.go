// Package payments creates payment intents with an external payment gateway. The client confirms the intent
// with the returned secret; the server only records the payment afterwards.
package payments

import (
	"context"
	"fmt"
	"math"

	"classhub/internal/config"
)

// Gateway creates server-side payment intents.
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, intent *Intent) (*IntentResult, error)
}

// Intent describes a charge to authorize. Amount is in the currency's minor unit (cents for USD).
type Intent struct {
	Amount       int64
	ReceiptEmail string
}

type IntentResult struct {
	ID           string
	ClientSecret string
}

// MinorUnits converts a price to an integer amount of minor currency units, rounding to the nearest unit.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// New returns the gateway selected by the configuration.
func New(cfg config.PaymentConfig) (Gateway, error) {
	switch cfg.Provider {
	case "stripe":
		return NewStripeGateway(cfg.SecretKey, cfg.Currency), nil
	case "midtrans":
		return NewMidtransGateway(cfg.SecretKey, cfg.Production), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.Provider)
	}
}
