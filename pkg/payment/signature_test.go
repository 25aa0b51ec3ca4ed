package payment

import (
	"crypto/sha512"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeSignature(t *testing.T) {
	orderID := "b68a6b4d-8a90-4a31-8d39-015d51e4f0a1"
	statusCode := "200"
	grossAmount := "50000.00"
	serverKey := "SB-Mid-server-test"

	want := fmt.Sprintf("%x", sha512.Sum512([]byte(orderID+statusCode+grossAmount+serverKey)))
	assert.Equal(t, want, ComputeSignature(orderID, statusCode, grossAmount, serverKey))
}

func TestVerifySignature(t *testing.T) {
	orderID := "order-1"
	statusCode := "200"
	grossAmount := "20000.00"
	serverKey := "secret"

	valid := ComputeSignature(orderID, statusCode, grossAmount, serverKey)

	assert.True(t, VerifySignature(orderID, statusCode, grossAmount, serverKey, valid))
	assert.False(t, VerifySignature(orderID, statusCode, grossAmount, serverKey, "tampered"))
	assert.False(t, VerifySignature(orderID, statusCode, grossAmount, "wrong-key", valid))
	assert.False(t, VerifySignature("order-2", statusCode, grossAmount, serverKey, valid))
	assert.False(t, VerifySignature(orderID, statusCode, grossAmount, serverKey, ""))
}
