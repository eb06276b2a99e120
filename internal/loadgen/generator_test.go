package loadgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDispatchService struct {
	mu       sync.Mutex
	confs    []map[string]any
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	reject   bool
	healthy  bool
}

func (f *fakeDispatchService) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		if !f.healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/v1/dispatches", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		n := f.inFlight.Add(1)
		defer f.inFlight.Add(-1)
		for {
			seen := f.maxSeen.Load()
			if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)

		var body struct {
			Conf map[string]any `json:"conf"`
		}
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		f.confs = append(f.confs, body.Conf)
		f.mu.Unlock()

		if f.reject {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"dispatch_id":"x","status":"received"}`))
	})
	return mux
}

func newGenerator(t *testing.T, endpoint string, orders, concurrency int) *Generator {
	t.Helper()
	g, err := NewGenerator(Config{
		Endpoint:    endpoint,
		Username:    "admin",
		Password:    "secret",
		Orders:      orders,
		Concurrency: concurrency,
		Timeout:     5 * time.Second,
	}, nil, nil)
	require.NoError(t, err)
	return g
}

func TestRun_SendsRandomOrdersWithBoundedConcurrency(t *testing.T) {
	fake := &fakeDispatchService{healthy: true}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	summary, err := newGenerator(t, srv.URL+"/", 20, 4).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 20, summary.Total)
	assert.Equal(t, 20, summary.Accepted)
	assert.Equal(t, 0, summary.Failed)
	assert.InDelta(t, 100.0, summary.SuccessRate(), 0.001)
	assert.LessOrEqual(t, fake.maxSeen.Load(), int32(4))

	require.Len(t, fake.confs, 20)
	ids := make(map[any]struct{})
	for _, conf := range fake.confs {
		ids[conf["order_id"]] = struct{}{}
		assert.True(t, slices.Contains(DefaultRegions, conf["region"].(string)))
		assert.True(t, slices.Contains(DefaultCustomerNames, conf["customer_name"].(string)))
		_, err = time.Parse(time.RFC3339, conf["timestamp"].(string))
		assert.NoError(t, err)
	}
	assert.Len(t, ids, 20)
}

func TestRun_CountsRejectedTriggers(t *testing.T) {
	fake := &fakeDispatchService{healthy: true, reject: true}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	summary, err := newGenerator(t, srv.URL, 5, 2).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, summary.Accepted)
	assert.Equal(t, 5, summary.Failed)
	assert.Zero(t, summary.SuccessRate())
}

func TestRun_AbortsWhenServiceIsUnhealthy(t *testing.T) {
	fake := &fakeDispatchService{healthy: false}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	_, err := newGenerator(t, srv.URL, 5, 2).Run(context.Background())

	require.Error(t, err)
	assert.Empty(t, fake.confs)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"missing endpoint", Config{Orders: 1, Concurrency: 1}},
		{"no orders", Config{Endpoint: "http://x", Concurrency: 1}},
		{"no concurrency", Config{Endpoint: "http://x", Orders: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(tt.config, nil, nil)
			assert.Error(t, err)
		})
	}
}

func TestSummary_Throughput(t *testing.T) {
	s := Summary{Total: 10, Duration: 2 * time.Second}
	assert.InDelta(t, 5.0, s.Throughput(), 0.001)
	assert.Zero(t, Summary{Total: 10}.Throughput())
}
