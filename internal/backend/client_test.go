package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionenergy/ionctl/internal/backend"
)

// recorder is a tiny fake backend that serves fixed responses per path and
// records the order of requests.
type recorder struct {
	mu     sync.Mutex
	calls  []string
	bodies map[string]string
	types  map[string]string
	routes map[string]func(w http.ResponseWriter)
}

func newRecorder() *recorder {
	return &recorder{
		bodies: map[string]string{},
		types:  map[string]string{},
		routes: map[string]func(w http.ResponseWriter){},
	}
}

func (r *recorder) json(route string, status int, body string) {
	r.routes[route] = func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	key := req.Method + " " + req.URL.RequestURI()
	payload, _ := io.ReadAll(req.Body)

	r.mu.Lock()
	r.calls = append(r.calls, key)
	r.bodies[key] = string(payload)
	r.types[key] = req.Header.Get("Content-Type")
	handler, ok := r.routes[key]
	r.mu.Unlock()

	if !ok {
		http.NotFound(w, req)
		return
	}
	handler(w)
}

func newTestClient(t *testing.T, rec *recorder, opts ...backend.Option) *backend.Client {
	t.Helper()
	server := httptest.NewServer(rec)
	t.Cleanup(server.Close)
	client := backend.NewClient(server.URL+"/api", opts...)
	client.HTTPClient = server.Client()
	return client
}

func TestEndpoint_String(t *testing.T) {
	assert.Equal(t, "GET /chargers?chargerId=C+1", backend.Get("/chargers", "chargerId", "C 1").String())
	assert.Equal(t, "POST /chargers/save", backend.Post("/chargers/save").String())
	assert.Equal(t, "PUT /chargers/7", backend.Put("/chargers/7").String())
}

func TestClient_Do(t *testing.T) {
	rec := newRecorder()
	rec.json("GET /api/ok", http.StatusOK, `{"data":[{"id":1}]}`)
	rec.json("GET /api/html", http.StatusOK, `<html></html>`)
	rec.json("GET /api/missing-json", http.StatusBadRequest, `{"error":"bad"}`)
	rec.json("POST /api/echo", http.StatusCreated, `{"success":true}`)
	client := newTestClient(t, rec)
	ctx := context.Background()

	t.Run("json body", func(t *testing.T) {
		resp, err := client.Do(ctx, backend.Get("/ok"), nil)
		require.NoError(t, err)
		assert.True(t, resp.OK())
		rows, ok := backend.Rows(resp.Body)
		require.True(t, ok)
		assert.Len(t, rows, 1)
	})

	t.Run("not json", func(t *testing.T) {
		resp, err := client.Do(ctx, backend.Get("/html"), nil)
		require.ErrorIs(t, err, backend.ErrNotJSON)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("error status still decoded", func(t *testing.T) {
		resp, err := client.Do(ctx, backend.Get("/missing-json"), nil)
		require.NoError(t, err)
		assert.False(t, resp.OK())
		assert.Equal(t, "bad", resp.Body.(map[string]any)["error"])
	})

	t.Run("posts json", func(t *testing.T) {
		resp, err := client.Do(ctx, backend.Post("/echo"), map[string]any{"name": "Bay 3"})
		require.NoError(t, err)
		assert.True(t, resp.OK())

		var sent map[string]any
		require.NoError(t, json.Unmarshal([]byte(rec.bodies["POST /api/echo"]), &sent))
		assert.Equal(t, "Bay 3", sent["name"])
	})

	t.Run("transport error", func(t *testing.T) {
		dead := backend.NewClient("http://127.0.0.1:1/api")
		_, err := dead.Do(ctx, backend.Get("/ok"), nil)
		require.ErrorIs(t, err, backend.ErrTransport)
	})
}

func TestProbe_FirstUsableWins(t *testing.T) {
	rec := newRecorder()
	rec.json("GET /api/a", http.StatusInternalServerError, `{"error":"boom"}`)
	rec.json("GET /api/b", http.StatusOK, `{"unrelated":true}`)
	rec.json("GET /api/c", http.StatusOK, `[{"id":"x"}]`)
	rec.json("GET /api/d", http.StatusOK, `[{"id":"never"}]`)
	client := newTestClient(t, rec)

	candidates := []backend.Endpoint{
		backend.Get("/a"), backend.Get("/b"), backend.Get("/c"), backend.Get("/d"),
	}
	rows, used, err := backend.Probe(context.Background(), client, "test", candidates, nil,
		backend.RequireOK(backend.RowsAccept))
	require.NoError(t, err)
	assert.Equal(t, "GET /c", used.String())
	assert.Len(t, rows, 1)
	assert.Equal(t, []string{"GET /api/a", "GET /api/b", "GET /api/c"}, rec.calls)
}

func TestClient_GetFallbackSendsNoBody(t *testing.T) {
	rec := newRecorder()
	rec.json("POST /api/reports", http.StatusMethodNotAllowed, `{"error":"use GET"}`)
	rec.json("GET /api/reports?period=1", http.StatusOK, `{"data":[{"amount":3}]}`)
	client := newTestClient(t, rec)

	filter := map[string]any{"period": "1"}
	candidates := []backend.Endpoint{backend.Post("/reports"), backend.Get("/reports", "period", "1")}
	rows, used, err := backend.Probe(context.Background(), client, "report", candidates, filter,
		backend.RequireOK(backend.RowsAccept))
	require.NoError(t, err)
	assert.Equal(t, "GET /reports?period=1", used.String())
	assert.Len(t, rows, 1)

	assert.NotEmpty(t, rec.bodies["POST /api/reports"])
	assert.Equal(t, "application/json", rec.types["POST /api/reports"])
	assert.Empty(t, rec.bodies["GET /api/reports?period=1"])
	assert.Empty(t, rec.types["GET /api/reports?period=1"])
}

func TestProbe_AllFail(t *testing.T) {
	rec := newRecorder()
	client := newTestClient(t, rec)

	_, _, err := backend.Probe(context.Background(), client, "test",
		[]backend.Endpoint{backend.Get("/x"), backend.Get("/y")}, nil,
		backend.RequireOK(backend.RowsAccept))
	require.ErrorIs(t, err, backend.ErrNoUsableResponse)
	assert.Len(t, rec.calls, 2)
}

func TestProbe_CancelledContext(t *testing.T) {
	rec := newRecorder()
	client := newTestClient(t, rec)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := backend.Probe(ctx, client, "test", []backend.Endpoint{backend.Get("/x")}, nil,
		backend.RowsAccept)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.calls)
}

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *mapCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *mapCache) Set(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
}

func (m *mapCache) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string][]byte{}
}

func TestClient_CacheServesRepeatGets(t *testing.T) {
	rec := newRecorder()
	rec.json("GET /api/organizations", http.StatusOK, `[{"id":"ORG-1","name":"Acme"}]`)
	cache := &mapCache{data: map[string][]byte{}}
	client := newTestClient(t, rec, backend.WithCache(cache))
	ctx := context.Background()

	first, err := client.Do(ctx, backend.Get("/organizations"), nil)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := client.Do(ctx, backend.Get("/organizations"), nil)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Len(t, rec.calls, 1)

	client.InvalidateCache()
	_, err = client.Do(ctx, backend.Get("/organizations"), nil)
	require.NoError(t, err)
	assert.Len(t, rec.calls, 2)
}
