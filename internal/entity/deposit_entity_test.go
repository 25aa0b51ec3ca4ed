package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDeriveDepositStatus(t *testing.T) {
	tests := []struct {
		name      string
		amount    int64
		remaining int64
		want      DepositStatus
	}{
		{name: "untouched hold", amount: 50000, remaining: 50000, want: DepositStatusCaptured},
		{name: "partially refunded", amount: 50000, remaining: 30000, want: DepositStatusPartiallyRefunded},
		{name: "one unit left", amount: 50000, remaining: 1, want: DepositStatusPartiallyRefunded},
		{name: "fully refunded", amount: 50000, remaining: 0, want: DepositStatusRefunded},
		{name: "negative clamps to refunded", amount: 50000, remaining: -1, want: DepositStatusRefunded},
		{name: "zero amount deposit", amount: 0, remaining: 0, want: DepositStatusRefunded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveDepositStatus(tt.amount, tt.remaining)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRefundedTotal(t *testing.T) {
	d := &Deposit{
		Amount: 50000,
		Refunds: []DepositRefund{
			{Id: uuid.New(), Amount: 10000},
			{Id: uuid.New(), Amount: 15000},
		},
	}
	assert.Equal(t, int64(25000), d.RefundedTotal())

	empty := &Deposit{Amount: 50000}
	assert.Equal(t, int64(0), empty.RefundedTotal())
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus("captured"))
	assert.True(t, IsValidStatus("partially_refunded"))
	assert.True(t, IsValidStatus("refunded"))
	assert.False(t, IsValidStatus("pending"))
	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("CAPTURED"))
}
