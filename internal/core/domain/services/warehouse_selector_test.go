package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"syscall"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/warehouse"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestWarehouseSelector_Select(t *testing.T) {
	registry := newRegistry("HCM", "HN", "DN")

	t.Run("should return natural node when healthy without contacting others", func(t *testing.T) {
		prober := new(MockHealthProber)
		prober.On("ProbeHealth", mock.Anything, "HCM").Return(nil).Once()

		selector := services.NewWarehouseSelector(prober, nil, time.Second, discardLogger)
		result, err := selector.Select(t.Context(), newOrder("o1", "HCM"), registry)

		require.NoError(t, err)
		assert.Equal(t, "HCM", result.Node.ID())
		assert.False(t, result.WasFallback)
		assert.Equal(t, "HCM", result.Natural.ID())
		assert.NoError(t, result.ProbeError)
		prober.AssertExpectations(t)
		prober.AssertNumberOfCalls(t, "ProbeHealth", 1)
	})

	failures := map[string]error{
		"503":     errors.New("health check returned status 503"),
		"refused": syscall.ECONNREFUSED,
	}
	for name, probeErr := range failures {
		t.Run("should fall back when natural node fails with "+name, func(t *testing.T) {
			prober := new(MockHealthProber)
			prober.On("ProbeHealth", mock.Anything, "HCM").Return(probeErr).Once()

			random := services.RandomizerFunc(func(n int) int {
				assert.Equal(t, 2, n)
				return 1
			})
			selector := services.NewWarehouseSelector(prober, random, time.Second, discardLogger)
			result, err := selector.Select(t.Context(), newOrder("o1", "HCM"), registry)

			require.NoError(t, err)
			// Alternates are ordered by id: DN, HN.
			assert.Equal(t, "HN", result.Node.ID())
			assert.True(t, result.WasFallback)
			assert.Equal(t, "HCM", result.Natural.ID())
			assert.ErrorIs(t, result.ProbeError, probeErr)
			prober.AssertExpectations(t)
		})
	}

	t.Run("should fall back when health probe times out", func(t *testing.T) {
		selector := services.NewWarehouseSelector(
			blockingProber{},
			services.RandomizerFunc(func(int) int { return 0 }),
			20*time.Millisecond,
			discardLogger,
		)

		start := time.Now()
		result, err := selector.Select(t.Context(), newOrder("o1", "HCM"), registry)

		require.NoError(t, err)
		assert.Less(t, time.Since(start), time.Second)
		assert.Equal(t, "DN", result.Node.ID())
		assert.True(t, result.WasFallback)
	})

	t.Run("should never return the unhealthy natural node", func(t *testing.T) {
		prober := new(MockHealthProber)
		prober.On("ProbeHealth", mock.Anything, "HN").Return(errors.New("down"))

		selector := services.NewWarehouseSelector(prober, nil, time.Second, discardLogger)
		for range 200 {
			result, err := selector.Select(t.Context(), newOrder("o1", "HN"), registry)
			require.NoError(t, err)
			assert.NotEqual(t, "HN", result.Node.ID())
		}
	})

	t.Run("should spread fallbacks uniformly across alternates", func(t *testing.T) {
		prober := new(MockHealthProber)
		prober.On("ProbeHealth", mock.Anything, "HCM").Return(errors.New("down"))

		selector := services.NewWarehouseSelector(prober, services.NewRandomizer(), time.Second, discardLogger)

		const trials = 4000
		counts := map[string]int{}
		for range trials {
			result, err := selector.Select(t.Context(), newOrder("o1", "HCM"), registry)
			require.NoError(t, err)
			counts[result.Node.ID()]++
		}

		require.Len(t, counts, 2)
		for id, c := range counts {
			share := float64(c) / trials
			assert.InDelta(t, 0.5, share, 0.05, "share of %s", id)
		}
	})

	t.Run("should fail fast on unknown region without probing", func(t *testing.T) {
		prober := new(MockHealthProber)

		selector := services.NewWarehouseSelector(prober, nil, time.Second, discardLogger)
		_, err := selector.Select(t.Context(), newOrder("o1", "XYZ"), registry)

		var unknown *warehouse.UnknownRegionError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "XYZ", unknown.Region)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		prober.AssertNotCalled(t, "ProbeHealth", mock.Anything, mock.Anything)
	})

	t.Run("should fail when the only node is unhealthy", func(t *testing.T) {
		single := newRegistry("HCM")
		prober := new(MockHealthProber)
		prober.On("ProbeHealth", mock.Anything, "HCM").Return(errors.New("down")).Once()

		selector := services.NewWarehouseSelector(prober, nil, time.Second, discardLogger)
		_, err := selector.Select(t.Context(), newOrder("o1", "HCM"), single)

		require.ErrorIs(t, err, warehouse.ErrNoAlternateWarehouse)
		var noAlt *warehouse.NoAlternateWarehouseError
		require.ErrorAs(t, err, &noAlt)
		assert.Equal(t, "HCM", noAlt.NodeID)
	})

	t.Run("should return the only node when it is healthy", func(t *testing.T) {
		single := newRegistry("HCM")
		prober := new(MockHealthProber)
		prober.On("ProbeHealth", mock.Anything, "HCM").Return(nil).Once()

		selector := services.NewWarehouseSelector(prober, nil, time.Second, discardLogger)
		result, err := selector.Select(t.Context(), newOrder("o1", "HCM"), single)

		require.NoError(t, err)
		assert.Equal(t, "HCM", result.Node.ID())
	})

	t.Run("should not fall back when the caller context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		random := services.RandomizerFunc(func(int) int {
			t.Fatal("no alternate must be drawn")
			return 0
		})
		selector := services.NewWarehouseSelector(blockingProber{}, random, time.Second, discardLogger)

		result, err := selector.Select(ctx, newOrder("o1", "HCM"), registry)

		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, result.WasFallback)
		assert.NotErrorIs(t, err, warehouse.ErrNoAlternateWarehouse)
	})

	t.Run("should not fall back when the caller deadline expires during the health check", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
		defer cancel()

		selector := services.NewWarehouseSelector(blockingProber{}, nil, time.Second, discardLogger)

		_, err := selector.Select(ctx, newOrder("o1", "HCM"), registry)

		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("should reject unconstructed inputs", func(t *testing.T) {
		selector := services.NewWarehouseSelector(new(MockHealthProber), nil, time.Second, discardLogger)

		_, err := selector.Select(t.Context(), &order.Order{}, registry)
		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)

		_, err = selector.Select(t.Context(), newOrder("o1", "HCM"), warehouse.Registry{})
		require.ErrorIs(t, err, warehouse.ErrRegistryIsNotConstructed)
	})
}
