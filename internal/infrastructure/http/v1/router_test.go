package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medtrack/internal/infrastructure/storage/postgres"
	"medtrack/pkg/logger"
)

// testRouterConfig wires a router against no real database: repositories
// and services are constructed but never queried during registration.
func testRouterConfig(t *testing.T) RouterConfig {
	t.Helper()

	log, err := logger.New(logger.Config{Level: "error", Development: true})
	require.NoError(t, err)

	return RouterConfig{
		TxManager: postgres.NewTxManagerFromRawPool(nil),
		Logger:    log,
	}
}

func registeredPaths(t *testing.T, cfg RouterConfig) map[string]bool {
	t.Helper()

	paths := make(map[string]bool)
	for _, route := range NewRouter(cfg).Routes() {
		paths[route.Method+" "+route.Path] = true
	}
	return paths
}

func TestNewRouter(t *testing.T) {
	t.Run("serves liveness", func(t *testing.T) {
		router := NewRouter(testRouterConfig(t))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("registers the domain surface", func(t *testing.T) {
		paths := registeredPaths(t, testRouterConfig(t))

		for _, want := range []string{
			"GET /api/v1/catalog/products",
			"POST /api/v1/catalog/products/:id/deletion-mark",
			"POST /api/v1/document/purchase-orders/:id/post",
			"POST /api/v1/document/purchases/:id/unpost",
			"GET /api/v1/document/transactions/:id/delivery-note",
			"POST /api/v1/document/patient-coupons/bulk",
			"POST /api/v1/document/patient-coupons/:id/verify",
			"GET /api/v1/stock/summary",
			"GET /api/v1/stock/availability/:productId/check",
		} {
			assert.True(t, paths[want], "missing route %s", want)
		}
	})

	t.Run("activity routes follow the store", func(t *testing.T) {
		cfg := testRouterConfig(t)
		paths := registeredPaths(t, cfg)
		assert.False(t, paths["GET /api/v1/activity/recent"])

		store, err := postgres.NewActivityLogStore(cfg.TxManager)
		require.NoError(t, err)
		cfg.Activity = store

		paths = registeredPaths(t, cfg)
		assert.True(t, paths["GET /api/v1/activity/recent"])
		assert.True(t, paths["GET /api/v1/activity/:table/:recordId"])
	})
}
