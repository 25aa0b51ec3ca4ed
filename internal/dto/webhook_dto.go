package dto

// PaymentWebhookRequest mirrors the provider's HTTP notification payload.
// Signature fields are verified before anything else is looked at.
type PaymentWebhookRequest struct {
	TransactionStatus string `json:"transaction_status"`
	TransactionId     string `json:"transaction_id"`
	OrderId           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
	SignatureKey      string `json:"signature_key"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`

	// Full refund history as recorded by the provider. Present on
	// refund/partial_refund notifications; authoritative when present.
	Refunds []WebhookRefund `json:"refunds"`
}

type WebhookRefund struct {
	RefundKey    string `json:"refund_key"`
	RefundAmount string `json:"refund_amount"`
	Reason       string `json:"reason"`
	CreatedAt    string `json:"created_at"`
}

type WebhookAckResponse struct {
	Received bool `json:"received"`
}
