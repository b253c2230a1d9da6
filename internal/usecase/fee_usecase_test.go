package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"commerce-api/internal/domain/entity"
	"commerce-api/internal/domain/repository"
	infrarepo "commerce-api/internal/infrastructure/repository"
)

func TestFeeUsecasePersistsAcrossCalls(t *testing.T) {
	ctx := context.Background()
	u := NewFeeUsecase(infrarepo.NewMemoryFeeSessionRepository(time.Hour), zap.NewNop())

	all, err := u.AddFee(ctx, "cart", &entity.AddFeeRequest{
		Amount: decimal.NewFromInt(10),
		Label:  "Shipping Fee",
		ID:     "shipping_fee",
	})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = u.AddFee(ctx, "cart", &entity.AddFeeRequest{Amount: decimal.NewFromInt(20), Label: "Tax", ID: "Tax"})
	require.NoError(t, err)

	fee, err := u.GetFee(ctx, "cart", "shipping_fee")
	require.NoError(t, err)
	require.NotNil(t, fee)
	assert.Equal(t, "Shipping Fee", fee.Label)

	total, err := u.Total(ctx, "cart")
	require.NoError(t, err)
	assert.True(t, total.HasFees)
	assert.True(t, total.Total.Equal(decimal.NewFromInt(30)))

	missing, err := u.GetFee(ctx, "cart", "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, u.Reset(ctx, "cart"))
	total, err = u.Total(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, total.HasFees)
	assert.True(t, total.Total.IsZero())
}

func TestFeeUsecaseSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	u := NewFeeUsecase(infrarepo.NewMemoryFeeSessionRepository(time.Hour), zap.NewNop())

	_, err := u.AddFee(ctx, "a", &entity.AddFeeRequest{Amount: decimal.NewFromInt(3), Label: "Handling"})
	require.NoError(t, err)

	fees, err := u.GetFees(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, fees)
}

func TestFeeUsecaseValidation(t *testing.T) {
	ctx := context.Background()
	u := NewFeeUsecase(infrarepo.NewMemoryFeeSessionRepository(time.Hour), zap.NewNop())

	_, err := u.AddFee(ctx, "", &entity.AddFeeRequest{Amount: decimal.NewFromInt(1), Label: "X"})
	assert.Error(t, err)

	_, err = u.AddFee(ctx, "cart", &entity.AddFeeRequest{Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrFeeIDRequired)

	_, err = u.AddFee(ctx, "cart", &entity.AddFeeRequest{Amount: decimal.NewFromInt(1), Label: "!!!"})
	assert.ErrorIs(t, err, ErrFeeIDRequired)

	assert.Error(t, u.Reset(ctx, ""))
}

// slowFeeSessionRepository widens the window between reading and writing a
// session, the way a network round trip would
type slowFeeSessionRepository struct {
	repository.FeeSessionRepository
}

func (r slowFeeSessionRepository) Load(ctx context.Context, sessionID string) (map[string]entity.Fee, error) {
	time.Sleep(time.Millisecond)
	return r.FeeSessionRepository.Load(ctx, sessionID)
}

func (r slowFeeSessionRepository) Put(ctx context.Context, sessionID, feeID string, fee entity.Fee) (map[string]entity.Fee, error) {
	time.Sleep(time.Millisecond)
	return r.FeeSessionRepository.Put(ctx, sessionID, feeID, fee)
}

func TestFeeUsecaseConcurrentAddsKeepEveryFee(t *testing.T) {
	ctx := context.Background()
	u := NewFeeUsecase(slowFeeSessionRepository{infrarepo.NewMemoryFeeSessionRepository(time.Hour)}, zap.NewNop())

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := u.AddFee(ctx, "cart", &entity.AddFeeRequest{
				Amount: decimal.NewFromInt(1),
				Label:  "F",
				ID:     fmt.Sprintf("f%d", i),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	all, err := u.GetFees(ctx, "cart")
	require.NoError(t, err)
	assert.Len(t, all, n)

	total, err := u.Total(ctx, "cart")
	require.NoError(t, err)
	assert.True(t, total.Total.Equal(decimal.NewFromInt(n)))
}
