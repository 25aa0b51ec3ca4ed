package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"checkinly-be/internal/dto"
	"checkinly-be/internal/pkg/apperr"
	"checkinly-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDepositApp(t *testing.T, svc *stubDepositService) (*fiber.App, string) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := serverutils.GenerateToken(uuid.New(), "test-secret", time.Hour)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	api := app.Group("/api")
	NewDepositController(svc).RegisterRoutes(api)
	return app, token
}

func doJSON(t *testing.T, app *fiber.App, method, target, token string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestDepositRoutesRequireAuth(t *testing.T) {
	app, _ := newDepositApp(t, &stubDepositService{})

	resp := doJSON(t, app, http.MethodGet, "/api/deposit/v1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCaptureValidatesBody(t *testing.T) {
	app, token := newDepositApp(t, &stubDepositService{
		captureFn: func(ctx context.Context, req *dto.CaptureDepositRequest) (*dto.DepositResponse, error) {
			t.Fatal("service must not be called for an invalid body")
			return nil, nil
		},
	})

	// Missing paymentMethodId and non-positive amount.
	resp := doJSON(t, app, http.MethodPost, "/api/deposit/v1", token, fiber.Map{
		"amount":     0,
		"guestId":    uuid.New(),
		"propertyId": uuid.New(),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCaptureReturns201(t *testing.T) {
	depositId := uuid.New()
	app, token := newDepositApp(t, &stubDepositService{
		captureFn: func(ctx context.Context, req *dto.CaptureDepositRequest) (*dto.DepositResponse, error) {
			return &dto.DepositResponse{
				Id:                  depositId,
				Amount:              req.Amount,
				Currency:            "eur",
				Status:              "captured",
				RefundableRemaining: req.Amount,
			}, nil
		},
	})

	resp := doJSON(t, app, http.MethodPost, "/api/deposit/v1", token, fiber.Map{
		"amount":          50000,
		"guestId":         uuid.New(),
		"propertyId":      uuid.New(),
		"paymentMethodId": "tok_visa",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRefundActionDispatch(t *testing.T) {
	depositId := uuid.New()
	var gotAmount *int64

	app, token := newDepositApp(t, &stubDepositService{
		refundFn: func(ctx context.Context, id uuid.UUID, req *dto.RefundDepositRequest) (*dto.RefundDepositResponse, error) {
			assert.Equal(t, depositId, id)
			gotAmount = req.Amount
			return &dto.RefundDepositResponse{
				Ok:                  true,
				RefundId:            uuid.New(),
				RefundableRemaining: 30000,
				Status:              "partially_refunded",
			}, nil
		},
	})

	resp := doJSON(t, app, http.MethodPost, "/api/deposit/v1/"+depositId.String()+"?action=refund", token, fiber.Map{
		"amount": 20000,
		"reason": "broken lamp",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, gotAmount)
	assert.Equal(t, int64(20000), *gotAmount)

	var body dto.RefundDepositResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Ok)
	assert.Equal(t, int64(30000), body.RefundableRemaining)
	assert.Equal(t, "partially_refunded", body.Status)
}

func TestRefundActionEmptyBodyMeansFullRefund(t *testing.T) {
	depositId := uuid.New()
	called := false

	app, token := newDepositApp(t, &stubDepositService{
		refundFn: func(ctx context.Context, id uuid.UUID, req *dto.RefundDepositRequest) (*dto.RefundDepositResponse, error) {
			called = true
			assert.Nil(t, req.Amount)
			return &dto.RefundDepositResponse{Ok: true, RefundId: uuid.New(), Status: "refunded"}, nil
		},
	})

	resp := doJSON(t, app, http.MethodPost, "/api/deposit/v1/"+depositId.String()+"?action=refund", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, called)
}

func TestUnknownActionRejected(t *testing.T) {
	app, token := newDepositApp(t, &stubDepositService{
		refundFn: func(ctx context.Context, id uuid.UUID, req *dto.RefundDepositRequest) (*dto.RefundDepositResponse, error) {
			t.Fatal("service must not be called for an unknown action")
			return nil, nil
		},
	})

	resp := doJSON(t, app, http.MethodPost, "/api/deposit/v1/"+uuid.NewString()+"?action=extend", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRefundConflictMapsTo409(t *testing.T) {
	app, token := newDepositApp(t, &stubDepositService{
		refundFn: func(ctx context.Context, id uuid.UUID, req *dto.RefundDepositRequest) (*dto.RefundDepositResponse, error) {
			return nil, apperr.AlreadyRefunded(id.String())
		},
	})

	resp := doJSON(t, app, http.MethodPost, "/api/deposit/v1/"+uuid.NewString()+"?action=refund", token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestListQueryParsing(t *testing.T) {
	propertyId := uuid.New()
	var got *dto.ListDepositsQuery

	app, token := newDepositApp(t, &stubDepositService{
		getAllFn: func(ctx context.Context, q *dto.ListDepositsQuery) (*dto.DepositListResponse, error) {
			got = q
			return &dto.DepositListResponse{Items: []*dto.DepositResponse{}, Page: q.Page, PageSize: 20}, nil
		},
	})

	target := "/api/deposit/v1?q=lamp&status=captured&propertyId=" + propertyId.String() +
		"&minAmount=1000&maxAmount=60000&dateFrom=2026-01-01&page=2&pageSize=10&expand=guest,property"
	resp := doJSON(t, app, http.MethodGet, target, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, got)
	assert.Equal(t, "lamp", got.Search)
	assert.Equal(t, "captured", got.Status)
	require.NotNil(t, got.PropertyId)
	assert.Equal(t, propertyId, *got.PropertyId)
	require.NotNil(t, got.MinAmount)
	assert.Equal(t, int64(1000), *got.MinAmount)
	require.NotNil(t, got.DateFrom)
	assert.Equal(t, 2026, got.DateFrom.Year())
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 10, got.PageSize)
	assert.True(t, got.ExpandGuest)
	assert.True(t, got.ExpandProperty)
}

func TestListRejectsMalformedFilters(t *testing.T) {
	app, token := newDepositApp(t, &stubDepositService{
		getAllFn: func(ctx context.Context, q *dto.ListDepositsQuery) (*dto.DepositListResponse, error) {
			t.Fatal("malformed filters must be rejected before querying")
			return nil, nil
		},
	})

	for _, target := range []string{
		"/api/deposit/v1?propertyId=not-a-uuid",
		"/api/deposit/v1?guestId=42",
		"/api/deposit/v1?minAmount=ten",
		"/api/deposit/v1?dateFrom=yesterday",
	} {
		resp := doJSON(t, app, http.MethodGet, target, token, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
	}
}

func TestDeleteDepositResponds(t *testing.T) {
	depositId := uuid.New()
	app, token := newDepositApp(t, &stubDepositService{
		deleteFn: func(ctx context.Context, id uuid.UUID) (*dto.DeleteDepositResponse, error) {
			assert.Equal(t, depositId, id)
			return &dto.DeleteDepositResponse{Ok: true}, nil
		},
	})

	resp := doJSON(t, app, http.MethodDelete, "/api/deposit/v1/"+depositId.String(), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.DeleteDepositResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Ok)
}

func TestShowNotFoundMapsTo404(t *testing.T) {
	app, token := newDepositApp(t, &stubDepositService{
		showFn: func(ctx context.Context, id uuid.UUID, expandGuest, expandProperty bool) (*dto.DepositResponse, error) {
			return nil, apperr.NotFound("deposit")
		},
	})

	resp := doJSON(t, app, http.MethodGet, "/api/deposit/v1/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
