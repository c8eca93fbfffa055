package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zigzax/internal/repository"
	"zigzax/pkg/apperr"
)

func newRateService(t *testing.T) RateService {
	t.Helper()
	return NewRateService(repository.NewRateRepository(newTestDB(t)), nil)
}

func TestLatestFallsBackWhenLedgerIsEmpty(t *testing.T) {
	svc := newRateService(t)

	latest, err := svc.Latest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Now().Format("2006-01-02"), latest.Date)
	assert.True(t, latest.UsdTry.Equal(decimal.NewFromFloat(34.0)))
	assert.True(t, latest.UsdEur.Equal(decimal.NewFromFloat(0.92)))
}

func TestUpsertInsertsThenOverwritesInPlace(t *testing.T) {
	svc := newRateService(t)
	ctx := context.Background()

	_, created, err := svc.Upsert(ctx, UpsertRateRequest{
		Date:   "2025-01-10",
		UsdTry: decimal.NewFromFloat(34.5),
		UsdEur: decimal.NewFromFloat(0.95),
	})
	require.NoError(t, err)
	assert.True(t, created)

	rate, created, err := svc.Upsert(ctx, UpsertRateRequest{
		Date:   "2025-01-10",
		UsdTry: decimal.NewFromFloat(35.1),
		UsdEur: decimal.NewFromFloat(0.96),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, rate.UsdTry.Equal(decimal.NewFromFloat(35.1)))

	// Same date never yields a second row.
	history, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "2025-01-10", history[0].Date)
	assert.True(t, history[0].UsdEur.Equal(decimal.NewFromFloat(0.96)))
}

func TestLatestPicksNewestDate(t *testing.T) {
	svc := newRateService(t)
	ctx := context.Background()

	for _, req := range []UpsertRateRequest{
		{Date: "2025-01-12", UsdTry: decimal.NewFromFloat(35.0), UsdEur: decimal.NewFromFloat(0.94)},
		{Date: "2025-01-10", UsdTry: decimal.NewFromFloat(34.5), UsdEur: decimal.NewFromFloat(0.95)},
	} {
		_, _, err := svc.Upsert(ctx, req)
		require.NoError(t, err)
	}

	latest, err := svc.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-12", latest.Date)
	assert.True(t, latest.UsdTry.Equal(decimal.NewFromFloat(35.0)))
}

func TestUpsertRejectsBadInput(t *testing.T) {
	svc := newRateService(t)
	ctx := context.Background()

	_, _, err := svc.Upsert(ctx, UpsertRateRequest{
		Date:   "10.01.2025",
		UsdTry: decimal.NewFromFloat(34.5),
		UsdEur: decimal.NewFromFloat(0.95),
	})
	assert.True(t, apperr.IsValidation(err))

	_, _, err = svc.Upsert(ctx, UpsertRateRequest{
		Date:   "2025-01-10",
		UsdTry: decimal.Zero,
		UsdEur: decimal.NewFromFloat(0.95),
	})
	assert.True(t, apperr.IsValidation(err))

	_, _, err = svc.Upsert(ctx, UpsertRateRequest{
		Date:   "2025-01-10",
		UsdTry: decimal.NewFromFloat(34.5),
		UsdEur: decimal.NewFromFloat(-0.95),
	})
	assert.True(t, apperr.IsValidation(err))

	history, err := svc.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}
