package payment

import (
	"crypto/sha512"
	"crypto/subtle"
	"fmt"
)

// ComputeSignature builds the Midtrans notification signature:
// SHA512(order_id + status_code + gross_amount + server_key).
func ComputeSignature(orderID, statusCode, grossAmount, serverKey string) string {
	input := orderID + statusCode + grossAmount + serverKey
	return fmt.Sprintf("%x", sha512.Sum512([]byte(input)))
}

// VerifySignature checks the signature of an incoming notification.
// Callers must verify before acting on any field of the payload.
func VerifySignature(orderID, statusCode, grossAmount, serverKey, signatureKey string) bool {
	expected := ComputeSignature(orderID, statusCode, grossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signatureKey)) == 1
}
