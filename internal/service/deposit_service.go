package service

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"checkinly-be/internal/dto"
	"checkinly-be/internal/entity"
	"checkinly-be/internal/pkg/apperr"
	"checkinly-be/internal/pkg/logger"
	"checkinly-be/internal/repository/specification"
	"checkinly-be/internal/repository/unitofwork"
	"checkinly-be/pkg/events"
	"checkinly-be/pkg/lock"
	pktNats "checkinly-be/pkg/nats"
	"checkinly-be/pkg/payment"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// RefundLocker serializes refund attempts per deposit. *lock.Locker
// satisfies it.
type RefundLocker interface {
	Acquire(ctx context.Context, key string) (lock.Mutex, error)
}

type IDepositService interface {
	Capture(ctx context.Context, req *dto.CaptureDepositRequest) (*dto.DepositResponse, error)
	Refund(ctx context.Context, depositId uuid.UUID, req *dto.RefundDepositRequest) (*dto.RefundDepositResponse, error)
	Show(ctx context.Context, id uuid.UUID, expandGuest, expandProperty bool) (*dto.DepositResponse, error)
	GetAll(ctx context.Context, q *dto.ListDepositsQuery) (*dto.DepositListResponse, error)
	Delete(ctx context.Context, id uuid.UUID) (*dto.DeleteDepositResponse, error)
	HandlePaymentNotification(ctx context.Context, raw []byte, req *dto.PaymentWebhookRequest) error
}

type depositService struct {
	uowFactory       unitofwork.RepositoryFactory
	gateway          payment.Gateway
	locker           RefundLocker
	eventPublisher   *pktNats.Publisher
	publisherService IPublisherService
	logger           logger.ILogger
	defaultCurrency  string
}

func NewDepositService(
	uowFactory unitofwork.RepositoryFactory,
	gateway payment.Gateway,
	locker RefundLocker,
	eventPublisher *pktNats.Publisher,
	publisherService IPublisherService,
	log logger.ILogger,
	defaultCurrency string,
) IDepositService {
	return &depositService{
		uowFactory:       uowFactory,
		gateway:          gateway,
		locker:           locker,
		eventPublisher:   eventPublisher,
		publisherService: publisherService,
		logger:           log,
		defaultCurrency:  defaultCurrency,
	}
}

func (s *depositService) Capture(ctx context.Context, req *dto.CaptureDepositRequest) (*dto.DepositResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	guest, err := uow.GuestRepository().FindOne(ctx, specification.ByID{ID: req.GuestId})
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, apperr.NotFound("guest")
	}

	property, err := uow.PropertyRepository().FindOne(ctx, specification.ByID{ID: req.PropertyId})
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, apperr.NotFound("property")
	}

	currency := req.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}

	// The deposit id doubles as the provider order id and is minted before
	// the charge, so a crash between charge and persist can be traced back.
	depositId := uuid.New()

	charge, err := s.gateway.Charge(ctx, &payment.ChargeRequest{
		OrderID:         depositId.String(),
		Amount:          req.Amount,
		Currency:        currency,
		PaymentMethodID: req.PaymentMethodId,
		CustomerID:      req.CustomerId,
		Description:     req.Description,
	})
	if err != nil {
		return nil, apperr.Payment("", fmt.Sprintf("charge failed: %v", err))
	}

	now := time.Now()
	deposit := entity.Deposit{
		Id:                  depositId,
		Amount:              req.Amount,
		Currency:            currency,
		Status:              entity.DepositStatusCaptured,
		RefundableRemaining: req.Amount,
		ExternalChargeRef:   charge.TransactionID,
		ExternalPaymentRef:  charge.OrderID,
		GuestId:             guest.Id,
		PropertyId:          property.Id,
		Description:         req.Description,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := uow.DepositRepository().Create(ctx, &deposit); err != nil {
		// The hold went through but we cannot record it. Release the money
		// rather than leaving an orphaned charge.
		s.compensateCharge(ctx, charge.OrderID, req.Amount)
		return nil, err
	}

	s.publishEvent(ctx, events.NewDepositCaptured(
		deposit.Id, property.HostId, guest.Id, property.Id, deposit.Amount, deposit.Currency,
	))
	s.enqueueEmail(ctx, dto.EmailJobMessage{
		Kind:      dto.EmailJobDepositReceipt,
		DepositId: deposit.Id,
	})

	return s.toDepositResponse(&deposit), nil
}

// compensateCharge issues a best-effort full refund for a charge whose
// deposit row could not be written.
func (s *depositService) compensateCharge(ctx context.Context, orderRef string, amount int64) {
	_, err := s.gateway.Refund(ctx, orderRef, &payment.RefundRequest{
		RefundKey: uuid.NewString(),
		Amount:    amount,
		Reason:    "capture persistence failed",
	})
	if err != nil {
		s.logger.Error("DepositService", "Compensating refund failed, charge is orphaned", map[string]interface{}{
			"order_ref": orderRef,
			"amount":    amount,
			"error":     err.Error(),
		})
	}
}

func (s *depositService) Refund(ctx context.Context, depositId uuid.UUID, req *dto.RefundDepositRequest) (*dto.RefundDepositResponse, error) {
	// Serialize concurrent refunds on the same deposit. The conditional
	// decrement below still guards against lost updates if the lock
	// expires mid-flight.
	lockCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	mutex, err := s.locker.Acquire(lockCtx, "deposit:refund:"+depositId.String())
	if err != nil {
		return nil, apperr.Conflict("deposit is being modified, retry shortly")
	}
	defer mutex.Release(context.Background())

	uow := s.uowFactory.NewUnitOfWork(ctx)

	deposit, err := uow.DepositRepository().FindOne(ctx, specification.ByID{ID: depositId})
	if err != nil {
		return nil, err
	}
	if deposit == nil {
		return nil, apperr.NotFound("deposit")
	}

	if deposit.RefundableRemaining == 0 {
		return nil, apperr.AlreadyRefunded(depositId.String())
	}

	amount := deposit.RefundableRemaining
	if req.Amount != nil {
		amount = *req.Amount
	}
	if amount <= 0 || amount > deposit.RefundableRemaining {
		return nil, apperr.Validation("refund amount must be between 1 and %d", deposit.RefundableRemaining)
	}

	// The refund key makes the provider call idempotent: a network retry
	// with the same key never refunds twice.
	refundKey := uuid.NewString()

	result, err := s.gateway.Refund(ctx, deposit.ExternalPaymentRef, &payment.RefundRequest{
		RefundKey: refundKey,
		Amount:    amount,
		Reason:    req.Reason,
	})
	if err != nil {
		return nil, apperr.Payment("", fmt.Sprintf("refund failed: %v", err))
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// The balance comes from the decremented row itself, never from the
	// snapshot read above: a reconciliation may have rewritten the balance
	// between the read and this statement.
	remaining, ok, err := uow.DepositRepository().DecrementRefundable(ctx, deposit.Id, amount)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Someone changed the balance underneath us. The provider refund
		// already happened; webhook reconciliation will restore the
		// invariant, so report the conflict instead of retrying blindly.
		s.logger.Warn("DepositService", "Refund decrement lost a race", map[string]interface{}{
			"deposit_id": deposit.Id,
			"refund_key": result.RefundKey,
			"amount":     amount,
		})
		return nil, apperr.Conflict("deposit balance changed concurrently")
	}

	status := entity.DeriveDepositStatus(deposit.Amount, remaining)

	refund := entity.DepositRefund{
		Id:                uuid.New(),
		DepositId:         deposit.Id,
		ExternalRefundRef: refundKey,
		Amount:            amount,
		Reason:            req.Reason,
		CreatedAt:         time.Now(),
	}
	if err := uow.DepositRepository().AppendRefund(ctx, &refund); err != nil {
		return nil, err
	}

	if err := uow.DepositRepository().UpdateBalance(ctx, deposit.Id, remaining, status); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	hostId := s.resolveHostId(ctx, deposit.PropertyId)
	s.publishEvent(ctx, events.NewDepositRefunded(deposit.Id, hostId, amount, remaining, string(status)))
	s.enqueueEmail(ctx, dto.EmailJobMessage{
		Kind:         dto.EmailJobRefundNotice,
		DepositId:    deposit.Id,
		RefundAmount: amount,
		Remaining:    remaining,
	})

	return &dto.RefundDepositResponse{
		Ok:                  true,
		RefundId:            refund.Id,
		RefundableRemaining: remaining,
		Status:              string(status),
	}, nil
}

func (s *depositService) Show(ctx context.Context, id uuid.UUID, expandGuest, expandProperty bool) (*dto.DepositResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.ByID{ID: id}}
	if expandGuest {
		specs = append(specs, specification.Preload{Association: "Guest"})
	}
	if expandProperty {
		specs = append(specs, specification.Preload{Association: "Property"})
	}

	deposit, err := uow.DepositRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if deposit == nil {
		return nil, apperr.NotFound("deposit")
	}

	return s.toDepositResponse(deposit), nil
}

func (s *depositService) GetAll(ctx context.Context, q *dto.ListDepositsQuery) (*dto.DepositListResponse, error) {
	if q.Status != "" && !entity.IsValidStatus(q.Status) {
		return nil, apperr.Validation("unknown status %q", q.Status)
	}

	filters := s.buildFilterSpecs(q)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.DepositRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	specs := append([]specification.Specification{}, filters...)
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)
	if q.ExpandGuest {
		specs = append(specs, specification.Preload{Association: "Guest"})
	}
	if q.ExpandProperty {
		specs = append(specs, specification.Preload{Association: "Property"})
	}

	deposits, err := uow.DepositRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.DepositResponse, len(deposits))
	for i, d := range deposits {
		items[i] = s.toDepositResponse(d)
	}

	totalPages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPages++
	}

	return &dto.DepositListResponse{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (s *depositService) buildFilterSpecs(q *dto.ListDepositsQuery) []specification.Specification {
	var specs []specification.Specification

	if q.Search != "" {
		specs = append(specs, specification.DescriptionSearch{Term: q.Search})
	}
	if q.PropertyId != nil {
		specs = append(specs, specification.ByPropertyID{PropertyID: *q.PropertyId})
	}
	if q.GuestId != nil {
		specs = append(specs, specification.ByGuestID{GuestID: *q.GuestId})
	}
	if q.Status != "" {
		specs = append(specs, specification.DepositStatusIs{Status: q.Status})
	}
	if q.MinAmount != nil || q.MaxAmount != nil {
		specs = append(specs, specification.AmountBetween{Min: q.MinAmount, Max: q.MaxAmount})
	}
	if q.DateFrom != nil || q.DateTo != nil {
		specs = append(specs, specification.CreatedBetween{From: q.DateFrom, To: q.DateTo})
	}

	return specs
}

func (s *depositService) Delete(ctx context.Context, id uuid.UUID) (*dto.DeleteDepositResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	deposit, err := uow.DepositRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if deposit == nil {
		return nil, apperr.NotFound("deposit")
	}

	// Administrative hard delete, bypasses the refund state machine.
	if err := uow.DepositRepository().Delete(ctx, id); err != nil {
		return nil, err
	}

	return &dto.DeleteDepositResponse{Ok: true}, nil
}

// HandlePaymentNotification reconciles local state with the provider's
// authoritative view. Callers must have verified the payload signature
// before this is invoked.
func (s *depositService) HandlePaymentNotification(ctx context.Context, raw []byte, req *dto.PaymentWebhookRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Fast-path dedup applies only to payloads whose effects committed. A
	// stored-but-unprocessed row means an earlier delivery failed midway,
	// and the provider's redelivery must run the reconciliation again.
	eventKey := fmt.Sprintf("%x", sha256.Sum256(raw))
	seen, err := uow.WebhookEventRepository().FindOne(ctx, specification.ByEventKey{EventKey: eventKey})
	if err != nil {
		return err
	}
	if seen != nil && seen.Processed {
		return nil
	}

	if seen == nil {
		event := entity.WebhookEvent{
			Id:         uuid.New(),
			EventKey:   eventKey,
			EventType:  req.TransactionStatus,
			ChargeRef:  req.OrderId,
			RawPayload: raw,
			ReceivedAt: time.Now(),
		}
		if err := uow.WebhookEventRepository().Create(ctx, &event); err != nil {
			return err
		}
		seen = &event
	}

	switch req.TransactionStatus {
	case "refund", "partial_refund":
		return s.reconcileRefunds(ctx, uow, req, seen.Id)
	case "capture", "settlement":
		// Deposits are only created by the explicit capture operation; a
		// settlement notification confirms what we already recorded.
		return uow.WebhookEventRepository().MarkProcessed(ctx, seen.Id)
	default:
		s.logger.Info("DepositService", "Ignoring webhook transaction status", map[string]interface{}{
			"status":   req.TransactionStatus,
			"order_id": req.OrderId,
		})
		return uow.WebhookEventRepository().MarkProcessed(ctx, seen.Id)
	}
}

func (s *depositService) reconcileRefunds(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.PaymentWebhookRequest, eventId uuid.UUID) error {
	deposit, err := uow.DepositRepository().FindOne(ctx, specification.ByPaymentRef{PaymentRef: req.OrderId})
	if err != nil {
		return err
	}
	if deposit == nil {
		// The charge may belong to another environment. Acknowledge and move on.
		s.logger.Info("DepositService", "Webhook for unknown charge reference", map[string]interface{}{
			"order_id": req.OrderId,
		})
		return uow.WebhookEventRepository().MarkProcessed(ctx, eventId)
	}

	refunds, refundedTotal, err := s.parseProviderRefunds(deposit.Id, req.Refunds)
	if err != nil {
		return err
	}

	remaining := deposit.Amount - refundedTotal
	if remaining < 0 {
		remaining = 0
	}
	status := entity.DeriveDepositStatus(deposit.Amount, remaining)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	// The provider's list is the source of truth: overwrite, never append.
	if err := uow.DepositRepository().ReplaceRefunds(ctx, deposit.Id, refunds); err != nil {
		return err
	}
	if err := uow.DepositRepository().UpdateBalance(ctx, deposit.Id, remaining, status); err != nil {
		return err
	}
	// Processed flips inside the same transaction: either the effects and
	// the dedup marker land together, or the redelivery reprocesses.
	if err := uow.WebhookEventRepository().MarkProcessed(ctx, eventId); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	hostId := s.resolveHostId(ctx, deposit.PropertyId)
	s.publishEvent(ctx, events.NewDepositReconciled(deposit.Id, hostId, remaining, string(status), len(refunds)))

	return nil
}

func (s *depositService) parseProviderRefunds(depositId uuid.UUID, in []dto.WebhookRefund) ([]entity.DepositRefund, int64, error) {
	refunds := make([]entity.DepositRefund, 0, len(in))
	var total int64

	for _, r := range in {
		amount, err := strconv.ParseInt(r.RefundAmount, 10, 64)
		if err != nil {
			// Midtrans reports amounts like "20000.00".
			f, ferr := strconv.ParseFloat(r.RefundAmount, 64)
			if ferr != nil {
				return nil, 0, fmt.Errorf("unparseable refund amount %q: %w", r.RefundAmount, err)
			}
			amount = int64(f)
		}

		createdAt := time.Now()
		if r.CreatedAt != "" {
			if t, err := time.Parse("2006-01-02 15:04:05", r.CreatedAt); err == nil {
				createdAt = t
			}
		}

		refunds = append(refunds, entity.DepositRefund{
			Id:                uuid.New(),
			DepositId:         depositId,
			ExternalRefundRef: r.RefundKey,
			Amount:            amount,
			Reason:            r.Reason,
			CreatedAt:         createdAt,
		})
		total += amount
	}

	return refunds, total, nil
}

func (s *depositService) resolveHostId(ctx context.Context, propertyId uuid.UUID) uuid.UUID {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	property, err := uow.PropertyRepository().FindOne(ctx, specification.ByID{ID: propertyId})
	if err != nil || property == nil {
		return uuid.Nil
	}
	return property.HostId
}

func (s *depositService) publishEvent(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("DepositService", "Failed to publish event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
	}
}

func (s *depositService) enqueueEmail(ctx context.Context, job dto.EmailJobMessage) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("DepositService", "Failed to enqueue email job", map[string]interface{}{
			"kind":  job.Kind,
			"error": err.Error(),
		})
	}
}

func (s *depositService) toDepositResponse(d *entity.Deposit) *dto.DepositResponse {
	refunds := make([]dto.DepositRefundDTO, len(d.Refunds))
	for i, r := range d.Refunds {
		refunds[i] = dto.DepositRefundDTO{
			Id:                r.Id,
			ExternalRefundRef: r.ExternalRefundRef,
			Amount:            r.Amount,
			Reason:            r.Reason,
			CreatedAt:         r.CreatedAt,
		}
	}

	resp := &dto.DepositResponse{
		Id:                  d.Id,
		Amount:              d.Amount,
		Currency:            d.Currency,
		Status:              string(d.Status),
		RefundableRemaining: d.RefundableRemaining,
		ExternalChargeRef:   d.ExternalChargeRef,
		ExternalPaymentRef:  d.ExternalPaymentRef,
		GuestId:             d.GuestId,
		PropertyId:          d.PropertyId,
		Description:         d.Description,
		Refunds:             refunds,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}

	if d.Guest != nil {
		resp.Guest = &dto.GuestResponse{
			Id:         d.Guest.Id,
			FullName:   d.Guest.FullName,
			Email:      d.Guest.Email,
			Phone:      d.Guest.Phone,
			DocumentId: d.Guest.DocumentId,
			Notes:      d.Guest.Notes,
			CreatedAt:  d.Guest.CreatedAt,
			UpdatedAt:  d.Guest.UpdatedAt,
		}
	}
	if d.Property != nil {
		resp.Property = &dto.PropertyResponse{
			Id:        d.Property.Id,
			Name:      d.Property.Name,
			Address:   d.Property.Address,
			City:      d.Property.City,
			Country:   d.Property.Country,
			MaxGuests: d.Property.MaxGuests,
			Notes:     d.Property.Notes,
			CreatedAt: d.Property.CreatedAt,
			UpdatedAt: d.Property.UpdatedAt,
		}
	}

	return resp
}
