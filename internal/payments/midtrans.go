package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"classhub/internal/qerrors"
)

// MidtransGateway creates Snap transactions. The Snap token plays the role of the client secret.
type MidtransGateway struct {
	client snap.Client
}

func NewMidtransGateway(serverKey string, production bool) *MidtransGateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	g := &MidtransGateway{}
	g.client.New(serverKey, env)
	return g
}

// CreatePaymentIntent ignores ctx: the Midtrans client does not accept one.
func (g *MidtransGateway) CreatePaymentIntent(ctx context.Context, intent *Intent) (*IntentResult, error) {
	amount := snapAmount(intent.Amount)
	if amount < 1 {
		return nil, fmt.Errorf("%w: price is below the smallest chargeable amount", qerrors.ValidationError)
	}

	orderID := "order-" + uuid.NewString()
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID: orderID,
			GrossAmt: amount,
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
	}
	if intent.ReceiptEmail != "" {
		req.CustomerDetail = &midtrans.CustomerDetails{Email: intent.ReceiptEmail}
	}

	resp, mErr := g.client.CreateTransaction(req)
	if mErr != nil {
		return nil, fmt.Errorf("%w: midtrans: %v", qerrors.PaymentGatewayError, mErr)
	}
	return &IntentResult{ID: orderID, ClientSecret: resp.Token}, nil
}

// snapAmount converts minor units to the whole currency units Snap charges in, rounding half up.
func snapAmount(minor int64) int64 {
	return (minor + 50) / 100
}
