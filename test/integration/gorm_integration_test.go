package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"checkinly-be/internal/entity"
	"checkinly-be/internal/repository/specification"
	"checkinly-be/internal/repository/unitofwork"
	"checkinly-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.DepositRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Deposit Repository", func(t *testing.T) {
		count, err := uow.DepositRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Deposit count: %d", count)
	})

	t.Run("Atomic Decrement Guard", func(t *testing.T) {
		ctx := context.Background()

		hostId := uuid.New()
		guest := &entity.Guest{Id: uuid.New(), HostId: hostId, FullName: "Integration Guest"}
		property := &entity.Property{Id: uuid.New(), HostId: hostId, Name: "Integration Flat"}
		require.NoError(t, uow.GuestRepository().Create(ctx, guest))
		require.NoError(t, uow.PropertyRepository().Create(ctx, property))

		deposit := &entity.Deposit{
			Id:                  uuid.New(),
			Amount:              10000,
			Currency:            "eur",
			Status:              entity.DepositStatusCaptured,
			RefundableRemaining: 10000,
			ExternalChargeRef:   "itest-" + uuid.NewString(),
			ExternalPaymentRef:  "itest-" + uuid.NewString(),
			GuestId:             guest.Id,
			PropertyId:          property.Id,
		}
		require.NoError(t, uow.DepositRepository().Create(ctx, deposit))
		defer func() {
			_ = uow.DepositRepository().Delete(ctx, deposit.Id)
			_ = uow.GuestRepository().Delete(ctx, guest.Id)
			_ = uow.PropertyRepository().Delete(ctx, property.Id)
		}()

		remaining, ok, err := uow.DepositRepository().DecrementRefundable(ctx, deposit.Id, 4000)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(6000), remaining, "decrement reports the balance it produced")

		// Remaining is 6000 now, an 8000 decrement must refuse.
		_, ok, err = uow.DepositRepository().DecrementRefundable(ctx, deposit.Id, 8000)
		require.NoError(t, err)
		assert.False(t, ok)

		stored, err := uow.DepositRepository().FindOne(ctx, specification.ByID{ID: deposit.Id})
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, int64(6000), stored.RefundableRemaining)
	})
}
