package orchestrator_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// fakeWarehouse is an in-memory warehouse node speaking the node HTTP contract.
type fakeWarehouse struct {
	server *httptest.Server

	healthy        atomic.Bool
	failNextOrders atomic.Int32
	healthCalls    atomic.Int32
	orderCalls     atomic.Int32

	mu     sync.Mutex
	orders map[string]map[string]string
}

func newFakeWarehouse(t *testing.T) *fakeWarehouse {
	t.Helper()

	w := &fakeWarehouse{orders: map[string]map[string]string{}}
	w.healthy.Store(true)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", w.handleHealth)
	mux.HandleFunc("POST /order", w.handleOrder)
	w.server = httptest.NewServer(mux)
	t.Cleanup(w.server.Close)

	return w
}

func (w *fakeWarehouse) URL() string {
	return w.server.URL
}

func (w *fakeWarehouse) handleHealth(rw http.ResponseWriter, _ *http.Request) {
	w.healthCalls.Add(1)
	if !w.healthy.Load() {
		rw.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	rw.WriteHeader(http.StatusOK)
}

func (w *fakeWarehouse) handleOrder(rw http.ResponseWriter, r *http.Request) {
	w.orderCalls.Add(1)
	rw.Header().Set("Content-Type", "application/json")

	if w.failNextOrders.Load() > 0 {
		w.failNextOrders.Add(-1)
		rw.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(rw).Encode(map[string]string{"error": "database is locked"})
		return
	}

	var body map[string]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rw.WriteHeader(http.StatusBadRequest)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	id := body["order_id"]
	if _, exists := w.orders[id]; exists {
		rw.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(rw).Encode(map[string]string{
			"error":   "order already exists",
			"code":    "DUPLICATE_ORDER_ID",
			"details": "UNIQUE constraint failed: orders.order_id",
		})
		return
	}

	w.orders[id] = body
	rw.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(rw).Encode(body)
}

func (w *fakeWarehouse) Order(id string) (map[string]string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	o, ok := w.orders[id]
	return o, ok
}

func (w *fakeWarehouse) OrderCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.orders)
}
