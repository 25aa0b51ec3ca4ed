package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"checkinly-be/internal/dto"
	"checkinly-be/internal/pkg/serverutils"
	"checkinly-be/pkg/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testServerKey = "SB-Mid-server-test"

type stubDepositService struct {
	captureFn func(ctx context.Context, req *dto.CaptureDepositRequest) (*dto.DepositResponse, error)
	refundFn  func(ctx context.Context, id uuid.UUID, req *dto.RefundDepositRequest) (*dto.RefundDepositResponse, error)
	showFn    func(ctx context.Context, id uuid.UUID, expandGuest, expandProperty bool) (*dto.DepositResponse, error)
	getAllFn  func(ctx context.Context, q *dto.ListDepositsQuery) (*dto.DepositListResponse, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) (*dto.DeleteDepositResponse, error)
	webhookFn func(ctx context.Context, raw []byte, req *dto.PaymentWebhookRequest) error
}

func (s *stubDepositService) Capture(ctx context.Context, req *dto.CaptureDepositRequest) (*dto.DepositResponse, error) {
	return s.captureFn(ctx, req)
}

func (s *stubDepositService) Refund(ctx context.Context, id uuid.UUID, req *dto.RefundDepositRequest) (*dto.RefundDepositResponse, error) {
	return s.refundFn(ctx, id, req)
}

func (s *stubDepositService) Show(ctx context.Context, id uuid.UUID, expandGuest, expandProperty bool) (*dto.DepositResponse, error) {
	return s.showFn(ctx, id, expandGuest, expandProperty)
}

func (s *stubDepositService) GetAll(ctx context.Context, q *dto.ListDepositsQuery) (*dto.DepositListResponse, error) {
	return s.getAllFn(ctx, q)
}

func (s *stubDepositService) Delete(ctx context.Context, id uuid.UUID) (*dto.DeleteDepositResponse, error) {
	return s.deleteFn(ctx, id)
}

func (s *stubDepositService) HandlePaymentNotification(ctx context.Context, raw []byte, req *dto.PaymentWebhookRequest) error {
	return s.webhookFn(ctx, raw, req)
}

type testLogger struct{}

func (testLogger) Debug(module, message string, details map[string]interface{}) {}
func (testLogger) Info(module, message string, details map[string]interface{})  {}
func (testLogger) Warn(module, message string, details map[string]interface{})  {}
func (testLogger) Error(module, message string, details map[string]interface{}) {}
func (testLogger) Sync() error                                                  { return nil }

func newWebhookApp(svc *stubDepositService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	api := app.Group("/api")
	NewWebhookController(svc, testServerKey, testLogger{}).RegisterRoutes(api)
	return app
}

func signedNotification(t *testing.T, status string) []byte {
	t.Helper()
	req := dto.PaymentWebhookRequest{
		TransactionStatus: status,
		OrderId:           uuid.NewString(),
		StatusCode:        "200",
		GrossAmount:       "50000.00",
	}
	req.SignatureKey = payment.ComputeSignature(req.OrderId, req.StatusCode, req.GrossAmount, testServerKey)

	raw, err := json.Marshal(req)
	require.NoError(t, err)
	return raw
}

func postNotification(t *testing.T, app *fiber.App, body []byte) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/webhook/v1/payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestWebhookAcceptsValidSignature(t *testing.T) {
	var handled bool
	app := newWebhookApp(&stubDepositService{
		webhookFn: func(ctx context.Context, raw []byte, req *dto.PaymentWebhookRequest) error {
			handled = true
			return nil
		},
	})

	resp := postNotification(t, app, signedNotification(t, "refund"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, handled)

	var ack dto.WebhookAckResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	assert.True(t, ack.Received)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	app := newWebhookApp(&stubDepositService{
		webhookFn: func(ctx context.Context, raw []byte, req *dto.PaymentWebhookRequest) error {
			t.Fatal("payload must not be processed when the signature fails")
			return nil
		},
	})

	req := dto.PaymentWebhookRequest{
		TransactionStatus: "refund",
		OrderId:           uuid.NewString(),
		StatusCode:        "200",
		GrossAmount:       "50000.00",
		SignatureKey:      "forged",
	}
	raw, _ := json.Marshal(req)

	resp := postNotification(t, app, raw)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookRejectsMalformedBody(t *testing.T) {
	app := newWebhookApp(&stubDepositService{
		webhookFn: func(ctx context.Context, raw []byte, req *dto.PaymentWebhookRequest) error {
			t.Fatal("malformed payload must not be processed")
			return nil
		},
	})

	resp := postNotification(t, app, []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebhookProcessingFailureReturns500(t *testing.T) {
	app := newWebhookApp(&stubDepositService{
		webhookFn: func(ctx context.Context, raw []byte, req *dto.PaymentWebhookRequest) error {
			return errors.New("db unavailable")
		},
	})

	// 500 makes the provider redeliver instead of dropping the event.
	resp := postNotification(t, app, signedNotification(t, "refund"))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
