package mapper

import (
	"checkinly-be/internal/entity"
	"checkinly-be/internal/model"

	"github.com/google/uuid"
)

type DepositMapper struct{}

func NewDepositMapper() *DepositMapper {
	return &DepositMapper{}
}

func (m *DepositMapper) ToEntity(d *model.Deposit) *entity.Deposit {
	if d == nil {
		return nil
	}

	refunds := make([]entity.DepositRefund, len(d.Refunds))
	for i := range d.Refunds {
		refunds[i] = *m.RefundToEntity(&d.Refunds[i])
	}

	e := &entity.Deposit{
		Id:                  d.ID,
		Amount:              d.Amount,
		Currency:            d.Currency,
		Status:              entity.DepositStatus(d.Status),
		RefundableRemaining: d.RefundableRemaining,
		ExternalChargeRef:   d.ExternalChargeRef,
		ExternalPaymentRef:  d.ExternalPaymentRef,
		GuestId:             d.GuestID,
		PropertyId:          d.PropertyID,
		Description:         d.Description,
		Refunds:             refunds,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}

	if d.Guest.ID != uuid.Nil {
		e.Guest = NewGuestMapper().ToEntity(&d.Guest)
	}
	if d.Property.ID != uuid.Nil {
		e.Property = NewPropertyMapper().ToEntity(&d.Property)
	}
	return e
}

func (m *DepositMapper) ToModel(d *entity.Deposit) *model.Deposit {
	if d == nil {
		return nil
	}

	refunds := make([]model.DepositRefund, len(d.Refunds))
	for i := range d.Refunds {
		refunds[i] = *m.RefundToModel(&d.Refunds[i])
	}

	return &model.Deposit{
		ID:                  d.Id,
		Amount:              d.Amount,
		Currency:            d.Currency,
		Status:              string(d.Status),
		RefundableRemaining: d.RefundableRemaining,
		ExternalChargeRef:   d.ExternalChargeRef,
		ExternalPaymentRef:  d.ExternalPaymentRef,
		GuestID:             d.GuestId,
		PropertyID:          d.PropertyId,
		Description:         d.Description,
		Refunds:             refunds,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func (m *DepositMapper) ToEntities(deposits []*model.Deposit) []*entity.Deposit {
	entities := make([]*entity.Deposit, len(deposits))
	for i, d := range deposits {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

func (m *DepositMapper) RefundToEntity(r *model.DepositRefund) *entity.DepositRefund {
	if r == nil {
		return nil
	}
	return &entity.DepositRefund{
		Id:                r.ID,
		DepositId:         r.DepositID,
		ExternalRefundRef: r.ExternalRefundRef,
		Amount:            r.Amount,
		Reason:            r.Reason,
		CreatedAt:         r.CreatedAt,
	}
}

func (m *DepositMapper) RefundToModel(r *entity.DepositRefund) *model.DepositRefund {
	if r == nil {
		return nil
	}
	return &model.DepositRefund{
		ID:                r.Id,
		DepositID:         r.DepositId,
		ExternalRefundRef: r.ExternalRefundRef,
		Amount:            r.Amount,
		Reason:            r.Reason,
		CreatedAt:         r.CreatedAt,
	}
}
