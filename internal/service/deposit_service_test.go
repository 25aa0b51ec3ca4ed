package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"
	"time"

	"checkinly-be/internal/dto"
	"checkinly-be/internal/entity"
	"checkinly-be/internal/pkg/apperr"
	"checkinly-be/internal/repository/contract"
	"checkinly-be/internal/repository/specification"
	"checkinly-be/internal/repository/unitofwork"
	"checkinly-be/pkg/lock"
	"checkinly-be/pkg/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeMutex struct{}

func (fakeMutex) Release(ctx context.Context) error { return nil }

type fakeLocker struct {
	failAcquire bool
	acquired    []string
}

func (l *fakeLocker) Acquire(ctx context.Context, key string) (lock.Mutex, error) {
	if l.failAcquire {
		return nil, lock.ErrNotAcquired
	}
	l.acquired = append(l.acquired, key)
	return fakeMutex{}, nil
}

type refundCall struct {
	orderRef string
	req      payment.RefundRequest
}

type fakeGateway struct {
	chargeErr error
	refundErr error
	charges   []payment.ChargeRequest
	refunds   []refundCall
}

func (g *fakeGateway) Charge(ctx context.Context, req *payment.ChargeRequest) (*payment.ChargeResult, error) {
	if g.chargeErr != nil {
		return nil, g.chargeErr
	}
	g.charges = append(g.charges, *req)
	return &payment.ChargeResult{
		TransactionID: "txn-" + req.OrderID,
		OrderID:       req.OrderID,
		Status:        "capture",
	}, nil
}

func (g *fakeGateway) Refund(ctx context.Context, orderRef string, req *payment.RefundRequest) (*payment.RefundResult, error) {
	if g.refundErr != nil {
		return nil, g.refundErr
	}
	g.refunds = append(g.refunds, refundCall{orderRef: orderRef, req: *req})
	return &payment.RefundResult{
		RefundKey: req.RefundKey,
		Amount:    req.Amount,
		Status:    "refund",
	}, nil
}

type fakeDepositRepo struct {
	store         map[uuid.UUID]*entity.Deposit
	createErr     error
	failDecrement bool
	replaceErr    error
	replaceCalls  int

	// beforeDecrement runs just before the guarded decrement, simulating
	// a concurrent writer landing between the caller's read and the update.
	beforeDecrement func()
}

func newFakeDepositRepo() *fakeDepositRepo {
	return &fakeDepositRepo{store: make(map[uuid.UUID]*entity.Deposit)}
}

func (r *fakeDepositRepo) Create(ctx context.Context, deposit *entity.Deposit) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *deposit
	r.store[deposit.Id] = &cp
	return nil
}

func (r *fakeDepositRepo) Update(ctx context.Context, deposit *entity.Deposit) error {
	cp := *deposit
	r.store[deposit.Id] = &cp
	return nil
}

func (r *fakeDepositRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store, id)
	return nil
}

func (r *fakeDepositRepo) match(d *entity.Deposit, specs []specification.Specification) bool {
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByID:
			if d.Id != spec.ID {
				return false
			}
		case specification.ByPaymentRef:
			if d.ExternalPaymentRef != spec.PaymentRef {
				return false
			}
		case specification.DepositStatusIs:
			if string(d.Status) != spec.Status {
				return false
			}
		}
	}
	return true
}

func (r *fakeDepositRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Deposit, error) {
	for _, d := range r.store {
		if r.match(d, specs) {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDepositRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Deposit, error) {
	var out []*entity.Deposit
	for _, d := range r.store {
		if r.match(d, specs) {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	for _, s := range specs {
		if p, ok := s.(specification.Pagination); ok {
			if p.Offset >= len(out) {
				return nil, nil
			}
			end := p.Offset + p.Limit
			if end > len(out) {
				end = len(out)
			}
			out = out[p.Offset:end]
		}
	}
	return out, nil
}

func (r *fakeDepositRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var n int64
	for _, d := range r.store {
		if r.match(d, specs) {
			n++
		}
	}
	return n, nil
}

func (r *fakeDepositRepo) DecrementRefundable(ctx context.Context, id uuid.UUID, amount int64) (int64, bool, error) {
	if r.beforeDecrement != nil {
		r.beforeDecrement()
	}
	if r.failDecrement {
		return 0, false, nil
	}
	d, ok := r.store[id]
	if !ok || d.RefundableRemaining < amount {
		return 0, false, nil
	}
	d.RefundableRemaining -= amount
	return d.RefundableRemaining, true, nil
}

func (r *fakeDepositRepo) UpdateBalance(ctx context.Context, id uuid.UUID, remaining int64, status entity.DepositStatus) error {
	d, ok := r.store[id]
	if !ok {
		return errors.New("missing deposit")
	}
	d.RefundableRemaining = remaining
	d.Status = status
	return nil
}

func (r *fakeDepositRepo) AppendRefund(ctx context.Context, refund *entity.DepositRefund) error {
	d, ok := r.store[refund.DepositId]
	if !ok {
		return errors.New("missing deposit")
	}
	d.Refunds = append(d.Refunds, *refund)
	return nil
}

func (r *fakeDepositRepo) ReplaceRefunds(ctx context.Context, depositId uuid.UUID, refunds []entity.DepositRefund) error {
	r.replaceCalls++
	if r.replaceErr != nil {
		return r.replaceErr
	}
	d, ok := r.store[depositId]
	if !ok {
		return errors.New("missing deposit")
	}
	d.Refunds = refunds
	return nil
}

func (r *fakeDepositRepo) SumAmounts(ctx context.Context, specs ...specification.Specification) (int64, int64, error) {
	var amount, remaining int64
	for _, d := range r.store {
		if r.match(d, specs) {
			amount += d.Amount
			remaining += d.RefundableRemaining
		}
	}
	return amount, remaining, nil
}

type fakeGuestRepo struct {
	store map[uuid.UUID]*entity.Guest
}

func (r *fakeGuestRepo) Create(ctx context.Context, g *entity.Guest) error { return nil }
func (r *fakeGuestRepo) Update(ctx context.Context, g *entity.Guest) error { return nil }
func (r *fakeGuestRepo) Delete(ctx context.Context, id uuid.UUID) error    { return nil }
func (r *fakeGuestRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Guest, error) {
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok {
			if g, found := r.store[byID.ID]; found {
				return g, nil
			}
		}
	}
	return nil, nil
}
func (r *fakeGuestRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Guest, error) {
	return nil, nil
}
func (r *fakeGuestRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakePropertyRepo struct {
	store map[uuid.UUID]*entity.Property
}

func (r *fakePropertyRepo) Create(ctx context.Context, p *entity.Property) error { return nil }
func (r *fakePropertyRepo) Update(ctx context.Context, p *entity.Property) error { return nil }
func (r *fakePropertyRepo) Delete(ctx context.Context, id uuid.UUID) error       { return nil }
func (r *fakePropertyRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Property, error) {
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok {
			if p, found := r.store[byID.ID]; found {
				return p, nil
			}
		}
	}
	return nil, nil
}
func (r *fakePropertyRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Property, error) {
	return nil, nil
}
func (r *fakePropertyRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeWebhookRepo struct {
	events map[string]*entity.WebhookEvent
}

func (r *fakeWebhookRepo) Create(ctx context.Context, event *entity.WebhookEvent) error {
	r.events[event.EventKey] = event
	return nil
}

func (r *fakeWebhookRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WebhookEvent, error) {
	for _, s := range specs {
		if byKey, ok := s.(specification.ByEventKey); ok {
			if e, found := r.events[byKey.EventKey]; found {
				return e, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeWebhookRepo) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	for _, e := range r.events {
		if e.Id == id {
			e.Processed = true
			return nil
		}
	}
	return errors.New("missing webhook event")
}

func (r *fakeWebhookRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type fakeUow struct {
	deposits   *fakeDepositRepo
	guests     *fakeGuestRepo
	properties *fakePropertyRepo
	webhooks   contract.WebhookEventRepository
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository                 { return nil }
func (u *fakeUow) PropertyRepository() contract.PropertyRepository        { return u.properties }
func (u *fakeUow) GuestRepository() contract.GuestRepository              { return u.guests }
func (u *fakeUow) DepositRepository() contract.DepositRepository          { return u.deposits }
func (u *fakeUow) WebhookEventRepository() contract.WebhookEventRepository {
	return u.webhooks
}
func (u *fakeUow) GuideRepository() contract.GuideRepository               { return nil }
func (u *fakeUow) NotificationRepository() contract.NotificationRepository { return nil }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type fixture struct {
	service  IDepositService
	deposits *fakeDepositRepo
	gateway  *fakeGateway
	locker   *fakeLocker
	guest    *entity.Guest
	property *entity.Property
}

func newFixture() *fixture {
	hostId := uuid.New()
	guest := &entity.Guest{Id: uuid.New(), HostId: hostId, FullName: "Alice Walker", Email: "alice@example.com"}
	property := &entity.Property{Id: uuid.New(), HostId: hostId, Name: "Canal View Loft"}

	deposits := newFakeDepositRepo()
	uow := &fakeUow{
		deposits:   deposits,
		guests:     &fakeGuestRepo{store: map[uuid.UUID]*entity.Guest{guest.Id: guest}},
		properties: &fakePropertyRepo{store: map[uuid.UUID]*entity.Property{property.Id: property}},
		webhooks:   &fakeWebhookRepo{events: map[string]*entity.WebhookEvent{}},
	}

	gateway := &fakeGateway{}
	locker := &fakeLocker{}

	svc := NewDepositService(&fakeFactory{uow: uow}, gateway, locker, nil, nil, nopLogger{}, "eur")

	return &fixture{
		service:  svc,
		deposits: deposits,
		gateway:  gateway,
		locker:   locker,
		guest:    guest,
		property: property,
	}
}

func (f *fixture) capture(t *testing.T, amount int64) *dto.DepositResponse {
	t.Helper()
	res, err := f.service.Capture(context.Background(), &dto.CaptureDepositRequest{
		Amount:          amount,
		GuestId:         f.guest.Id,
		PropertyId:      f.property.Id,
		PaymentMethodId: "tok_visa",
	})
	require.NoError(t, err)
	return res
}

// ---- capture ----

func TestCaptureDeposit(t *testing.T) {
	f := newFixture()

	res := f.capture(t, 50000)

	assert.Equal(t, int64(50000), res.Amount)
	assert.Equal(t, "eur", res.Currency)
	assert.Equal(t, "captured", res.Status)
	assert.Equal(t, int64(50000), res.RefundableRemaining)
	assert.Equal(t, res.Id.String(), res.ExternalPaymentRef)
	assert.NotEmpty(t, res.ExternalChargeRef)

	stored, err := f.deposits.FindOne(context.Background(), specification.ByID{ID: res.Id})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.DepositStatusCaptured, stored.Status)
	assert.Len(t, f.gateway.charges, 1)
}

func TestCaptureUnknownGuest(t *testing.T) {
	f := newFixture()

	_, err := f.service.Capture(context.Background(), &dto.CaptureDepositRequest{
		Amount:          10000,
		GuestId:         uuid.New(),
		PropertyId:      f.property.Id,
		PaymentMethodId: "tok_visa",
	})

	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, f.gateway.charges, "must not charge for an unresolvable guest")
}

func TestCaptureUnknownProperty(t *testing.T) {
	f := newFixture()

	_, err := f.service.Capture(context.Background(), &dto.CaptureDepositRequest{
		Amount:          10000,
		GuestId:         f.guest.Id,
		PropertyId:      uuid.New(),
		PaymentMethodId: "tok_visa",
	})

	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, f.gateway.charges)
}

func TestCaptureChargeDeclined(t *testing.T) {
	f := newFixture()
	f.gateway.chargeErr = errors.New("card declined")

	_, err := f.service.Capture(context.Background(), &dto.CaptureDepositRequest{
		Amount:          10000,
		GuestId:         f.guest.Id,
		PropertyId:      f.property.Id,
		PaymentMethodId: "tok_visa",
	})

	assert.True(t, apperr.IsPayment(err))
	assert.Empty(t, f.deposits.store)
}

func TestCapturePersistFailureCompensates(t *testing.T) {
	f := newFixture()
	f.deposits.createErr = errors.New("db down")

	_, err := f.service.Capture(context.Background(), &dto.CaptureDepositRequest{
		Amount:          10000,
		GuestId:         f.guest.Id,
		PropertyId:      f.property.Id,
		PaymentMethodId: "tok_visa",
	})

	require.Error(t, err)
	require.Len(t, f.gateway.refunds, 1, "charge must be released when it cannot be recorded")
	assert.Equal(t, int64(10000), f.gateway.refunds[0].req.Amount)
	assert.Equal(t, f.gateway.charges[0].OrderID, f.gateway.refunds[0].orderRef)
}

// ---- refund ----

func TestPartialThenFullRefund(t *testing.T) {
	f := newFixture()
	dep := f.capture(t, 50000)

	amount := int64(20000)
	res, err := f.service.Refund(context.Background(), dep.Id, &dto.RefundDepositRequest{Amount: &amount, Reason: "broken lamp"})
	require.NoError(t, err)

	assert.True(t, res.Ok)
	assert.Equal(t, int64(30000), res.RefundableRemaining)
	assert.Equal(t, "partially_refunded", res.Status)

	stored, _ := f.deposits.FindOne(context.Background(), specification.ByID{ID: dep.Id})
	assert.Equal(t, int64(30000), stored.RefundableRemaining)
	require.Len(t, stored.Refunds, 1)
	assert.Equal(t, int64(20000), stored.Refunds[0].Amount)
	assert.Equal(t, "broken lamp", stored.Refunds[0].Reason)

	// Omitted amount releases everything still refundable.
	res, err = f.service.Refund(context.Background(), dep.Id, &dto.RefundDepositRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.RefundableRemaining)
	assert.Equal(t, "refunded", res.Status)

	stored, _ = f.deposits.FindOne(context.Background(), specification.ByID{ID: dep.Id})
	assert.Equal(t, entity.DepositStatusRefunded, stored.Status)
	assert.Len(t, stored.Refunds, 2)
	assert.Len(t, f.gateway.refunds, 2)
}

func TestRefundExactRemaining(t *testing.T) {
	f := newFixture()
	dep := f.capture(t, 50000)

	amount := int64(50000)
	res, err := f.service.Refund(context.Background(), dep.Id, &dto.RefundDepositRequest{Amount: &amount})
	require.NoError(t, err)

	assert.Equal(t, int64(0), res.RefundableRemaining)
	assert.Equal(t, "refunded", res.Status)
}

func TestRefundExceedsRemaining(t *testing.T) {
	f := newFixture()
	dep := f.capture(t, 50000)

	amount := int64(60000)
	_, err := f.service.Refund(context.Background(), dep.Id, &dto.RefundDepositRequest{Amount: &amount})

	assert.True(t, apperr.IsValidation(err))
	assert.Empty(t, f.gateway.refunds, "over-refund must never reach the provider")

	stored, _ := f.deposits.FindOne(context.Background(), specification.ByID{ID: dep.Id})
	assert.Equal(t, int64(50000), stored.RefundableRemaining)
	assert.Equal(t, entity.DepositStatusCaptured, stored.Status)
}

func TestRefundAlreadyRefunded(t *testing.T) {
	f := newFixture()
	dep := f.capture(t, 50000)

	_, err := f.service.Refund(context.Background(), dep.Id, &dto.RefundDepositRequest{})
	require.NoError(t, err)

	_, err = f.service.Refund(context.Background(), dep.Id, &dto.RefundDepositRequest{})
	assert.True(t, apperr.IsAlreadyRefunded(err))
	assert.Len(t, f.gateway.refunds, 1, "a drained deposit must not hit the provider again")
}

func TestRefundUnknownDeposit(t *testing.T) {
	f := newFixture()

	_, err := f.service.Refund(context.Background(), uuid.New(), &dto.RefundDepositRequest{})

	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, f.gateway.refunds)
}

func TestRefundLockContention(t *testing.T) {
	f := newFixture()
	dep := f.capture(t, 50000)
	f.locker.failAcquire = true

	_, err := f.service.Refund(context.Background(), dep.Id, &dto.RefundDepositRequest{})

	assert.True(t, apperr.IsConflict(err))
	assert.Empty(t, f.gateway.refunds)
}

func TestRefundDecrementRaceLost(t *testing.T) {
	f := newFixture()
	dep := f.capture(t, 50000)
	f.deposits.failDecrement = true

	amount := int64(20000)
	_, err := f.service.Refund(context.Background(), dep.Id, &dto.RefundDepositRequest{Amount: &amount})

	// The provider refund happened, but the local decrement lost the race.
	// No blind retry: the caller sees a conflict and reconciliation will
	// absorb the refund via webhook.
	assert.True(t, apperr.IsConflict(err))
	assert.Len(t, f.gateway.refunds, 1)

	stored, _ := f.deposits.FindOne(context.Background(), specification.ByID{ID: dep.Id})
	assert.Empty(t, stored.Refunds, "no history entry on a lost race")
}

// ---- webhook reconciliation ----

func webhookPayload(t *testing.T, req *dto.PaymentWebhookRequest) []byte {
	t.Helper()
	raw, err := json.Marshal(req)
	require.NoError(t, err)
	return raw
}

func TestWebhookReconcilesRefundHistory(t *testing.T) {
	f := newFixture()
	dep := f.capture(t, 50000)

	req := &dto.PaymentWebhookRequest{
		TransactionStatus: "partial_refund",
		OrderId:           dep.ExternalPaymentRef,
		Refunds: []dto.WebhookRefund{
			{RefundKey: "rf-1", RefundAmount: "10000", Reason: "cleaning"},
			{RefundKey: "rf-2", RefundAmount: "15000.00"},
		},
	}
	err := f.service.HandlePaymentNotification(context.Background(), webhookPayload(t, req), req)
	require.NoError(t, err)

	stored, _ := f.deposits.FindOne(context.Background(), specification.ByID{ID: dep.Id})
	assert.Equal(t, int64(25000), stored.RefundableRemaining)
	assert.Equal(t, entity.DepositStatusPartiallyRefunded, stored.Status)
	require.Len(t, stored.Refunds, 2, "provider history overwrites local history")
	assert.Equal(t, "rf-1", stored.Refunds[0].ExternalRefundRef)
}

func TestWebhookFullRefund(t *testing.T) {
	f := newFixture()
	dep := f.capture(t, 50000)

	req := &dto.PaymentWebhookRequest{
		TransactionStatus: "refund",
		OrderId:           dep.ExternalPaymentRef,
		Refunds: []dto.WebhookRefund{
			{RefundKey: "rf-1", RefundAmount: "50000"},
		},
	}
	err := f.service.HandlePaymentNotification(context.Background(), webhookPayload(t, req), req)
	require.NoError(t, err)

	stored, _ := f.deposits.FindOne(context.Background(), specification.ByID{ID: dep.Id})
	assert.Equal(t, int64(0), stored.RefundableRemaining)
	assert.Equal(t, entity.DepositStatusRefunded, stored.Status)
}

func TestWebhookOverRefundClampsToZero(t *testing.T) {
	f := newFixture()
	dep := f.capture(t, 50000)

	req := &dto.PaymentWebhookRequest{
		TransactionStatus: "refund",
		OrderId:           dep.ExternalPaymentRef,
		Refunds: []dto.WebhookRefund{
			{RefundKey: "rf-1", RefundAmount: "60000"},
		},
	}
	err := f.service.HandlePaymentNotification(context.Background(), webhookPayload(t, req), req)
	require.NoError(t, err)

	stored, _ := f.deposits.FindOne(context.Background(), specification.ByID{ID: dep.Id})
	assert.Equal(t, int64(0), stored.RefundableRemaining)
	assert.Equal(t, entity.DepositStatusRefunded, stored.Status)
}

func TestWebhookUnknownChargeIsNoop(t *testing.T) {
	f := newFixture()

	req := &dto.PaymentWebhookRequest{
		TransactionStatus: "refund",
		OrderId:           uuid.NewString(),
		Refunds:           []dto.WebhookRefund{{RefundKey: "rf-1", RefundAmount: "100"}},
	}
	err := f.service.HandlePaymentNotification(context.Background(), webhookPayload(t, req), req)

	assert.NoError(t, err, "unknown charge refs are acknowledged, not failed")
	assert.Zero(t, f.deposits.replaceCalls)
}

func TestWebhookCaptureStatusIsNoop(t *testing.T) {
	f := newFixture()
	dep := f.capture(t, 50000)

	req := &dto.PaymentWebhookRequest{
		TransactionStatus: "settlement",
		OrderId:           dep.ExternalPaymentRef,
	}
	err := f.service.HandlePaymentNotification(context.Background(), webhookPayload(t, req), req)
	require.NoError(t, err)

	stored, _ := f.deposits.FindOne(context.Background(), specification.ByID{ID: dep.Id})
	assert.Equal(t, int64(50000), stored.RefundableRemaining)
	assert.Equal(t, entity.DepositStatusCaptured, stored.Status)
}

func TestWebhookReplayIsDeduplicated(t *testing.T) {
	f := newFixture()
	dep := f.capture(t, 50000)

	req := &dto.PaymentWebhookRequest{
		TransactionStatus: "partial_refund",
		OrderId:           dep.ExternalPaymentRef,
		Refunds:           []dto.WebhookRefund{{RefundKey: "rf-1", RefundAmount: "10000"}},
	}
	raw := webhookPayload(t, req)

	require.NoError(t, f.service.HandlePaymentNotification(context.Background(), raw, req))
	require.NoError(t, f.service.HandlePaymentNotification(context.Background(), raw, req))

	assert.Equal(t, 1, f.deposits.replaceCalls, "identical payload must be processed once")
}

func TestWebhookRedeliveryAfterFailureReconciles(t *testing.T) {
	f := newFixture()
	dep := f.capture(t, 50000)

	req := &dto.PaymentWebhookRequest{
		TransactionStatus: "partial_refund",
		OrderId:           dep.ExternalPaymentRef,
		Refunds:           []dto.WebhookRefund{{RefundKey: "rf-1", RefundAmount: "20000"}},
	}
	raw := webhookPayload(t, req)

	// First delivery dies mid-reconciliation. The stored event must not
	// turn the provider's redelivery of the same bytes into a no-op.
	f.deposits.replaceErr = errors.New("db down")
	require.Error(t, f.service.HandlePaymentNotification(context.Background(), raw, req))

	f.deposits.replaceErr = nil
	require.NoError(t, f.service.HandlePaymentNotification(context.Background(), raw, req))

	stored, _ := f.deposits.FindOne(context.Background(), specification.ByID{ID: dep.Id})
	assert.Equal(t, int64(30000), stored.RefundableRemaining)
	assert.Equal(t, entity.DepositStatusPartiallyRefunded, stored.Status)
	require.Len(t, stored.Refunds, 1)
	assert.Equal(t, 2, f.deposits.replaceCalls, "redelivery must reprocess, not short-circuit")
}

func TestRefundUsesDecrementedBalance(t *testing.T) {
	f := newFixture()
	dep := f.capture(t, 50000)

	// A reconciliation lands between the refund's snapshot read and its
	// guarded decrement: balance 30000 with one 20000 refund on record.
	f.deposits.beforeDecrement = func() {
		d := f.deposits.store[dep.Id]
		d.RefundableRemaining = 30000
		d.Status = entity.DepositStatusPartiallyRefunded
		d.Refunds = []entity.DepositRefund{{
			Id:                uuid.New(),
			DepositId:         dep.Id,
			ExternalRefundRef: "rf-prior",
			Amount:            20000,
			CreatedAt:         time.Now(),
		}}
		f.deposits.beforeDecrement = nil
	}

	amount := int64(20000)
	res, err := f.service.Refund(context.Background(), dep.Id, &dto.RefundDepositRequest{Amount: &amount})
	require.NoError(t, err)

	// 30000 - 20000, not the stale 50000 - 20000 the snapshot would give.
	assert.Equal(t, int64(10000), res.RefundableRemaining)
	assert.Equal(t, "partially_refunded", res.Status)

	stored, _ := f.deposits.FindOne(context.Background(), specification.ByID{ID: dep.Id})
	assert.Equal(t, int64(10000), stored.RefundableRemaining)
	assert.Equal(t, stored.Amount-stored.RefundedTotal(), stored.RefundableRemaining,
		"remaining must equal amount minus recorded refunds")
}

// ---- show / list / delete ----

func TestShowUnknownDeposit(t *testing.T) {
	f := newFixture()

	_, err := f.service.Show(context.Background(), uuid.New(), false, false)
	assert.True(t, apperr.IsNotFound(err))
}

func TestGetAllRejectsUnknownStatus(t *testing.T) {
	f := newFixture()

	_, err := f.service.GetAll(context.Background(), &dto.ListDepositsQuery{Status: "pending"})
	assert.True(t, apperr.IsValidation(err))
}

func TestGetAllPagination(t *testing.T) {
	f := newFixture()
	for i := 0; i < 5; i++ {
		f.capture(t, int64(1000*(i+1)))
	}

	res, err := f.service.GetAll(context.Background(), &dto.ListDepositsQuery{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, int64(5), res.Total)
	assert.Equal(t, int64(3), res.TotalPages)

	// Page and page size are clamped, not rejected.
	res, err = f.service.GetAll(context.Background(), &dto.ListDepositsQuery{Page: 0, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 100, res.PageSize)
	assert.Equal(t, int64(1), res.TotalPages)
	assert.Len(t, res.Items, 5)
}

func TestGetAllStatusFilter(t *testing.T) {
	f := newFixture()
	dep := f.capture(t, 50000)
	f.capture(t, 30000)

	_, err := f.service.Refund(context.Background(), dep.Id, &dto.RefundDepositRequest{})
	require.NoError(t, err)

	res, err := f.service.GetAll(context.Background(), &dto.ListDepositsQuery{Status: "refunded"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, dep.Id, res.Items[0].Id)
}

func TestDeleteDeposit(t *testing.T) {
	f := newFixture()
	dep := f.capture(t, 50000)

	res, err := f.service.Delete(context.Background(), dep.Id)
	require.NoError(t, err)
	assert.True(t, res.Ok)

	stored, _ := f.deposits.FindOne(context.Background(), specification.ByID{ID: dep.Id})
	assert.Nil(t, stored)

	_, err = f.service.Delete(context.Background(), dep.Id)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeletePartiallyRefundedDeposit(t *testing.T) {
	f := newFixture()
	dep := f.capture(t, 50000)

	amount := int64(10000)
	_, err := f.service.Refund(context.Background(), dep.Id, &dto.RefundDepositRequest{Amount: &amount})
	require.NoError(t, err)

	// Hard delete is administrative and ignores the refund state machine.
	res, err := f.service.Delete(context.Background(), dep.Id)
	require.NoError(t, err)
	assert.True(t, res.Ok)
}
