package payment

import (
	"context"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

// MidtransGateway implements Gateway on top of the Midtrans Core API.
type MidtransGateway struct {
	client coreapi.Client
}

func NewMidtransGateway(serverKey string, isProduction bool) *MidtransGateway {
	env := midtrans.Sandbox
	if isProduction {
		env = midtrans.Production
	}

	var c coreapi.Client
	c.New(serverKey, env)

	return &MidtransGateway{client: c}
}

func (g *MidtransGateway) Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error) {
	chargeReq := &coreapi.ChargeReq{
		PaymentType: coreapi.PaymentTypeCreditCard,
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.Amount,
		},
		CreditCard: &coreapi.CreditCardDetails{
			TokenID: req.PaymentMethodID,
		},
	}

	if req.CustomerID != "" {
		chargeReq.CustomerDetails = &midtrans.CustomerDetails{
			FName: req.CustomerID,
		}
	}

	resp, midErr := g.client.ChargeTransaction(chargeReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans charge error: %v", midErr.GetMessage())
	}

	return &ChargeResult{
		TransactionID: resp.TransactionID,
		OrderID:       resp.OrderID,
		Status:        resp.TransactionStatus,
	}, nil
}

func (g *MidtransGateway) Refund(ctx context.Context, orderRef string, req *RefundRequest) (*RefundResult, error) {
	refundReq := &coreapi.RefundReq{
		RefundKey: req.RefundKey,
		Amount:    req.Amount,
		Reason:    req.Reason,
	}

	resp, midErr := g.client.RefundTransaction(orderRef, refundReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans refund error: %v", midErr.GetMessage())
	}

	return &RefundResult{
		RefundKey: req.RefundKey,
		Amount:    req.Amount,
		Status:    resp.TransactionStatus,
	}, nil
}
