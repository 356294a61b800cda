// Package backendtest provides a scripted fake of the charging backend for
// tests: routes keyed by "METHOD /path?query", a request log, and captured
// request bodies.
package backendtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ionenergy/ionctl/internal/backend"
)

// Request is one call received by the fake.
type Request struct {
	Method string
	Target string
	Body   string
}

// Key renders the request as "METHOD /target".
func (r Request) Key() string {
	return r.Method + " " + r.Target
}

// JSON decodes the captured body.
func (r Request) JSON(t testing.TB) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(r.Body), &out); err != nil {
		t.Fatalf("request body %q is not a JSON object: %v", r.Body, err)
	}
	return out
}

// Server is a fake backend rooted at /api.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []Request
}

// New starts a fake backend that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{routes: map[string]http.HandlerFunc{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Client returns a backend client pointed at the fake.
func (s *Server) Client(opts ...backend.Option) *backend.Client {
	c := backend.NewClient(s.URL+"/api", opts...)
	c.HTTPClient = s.Server.Client()
	return c
}

// Handle registers h for a route such as "GET /chargers?locationId=L1".
// The /api prefix is implied.
func (s *Server) Handle(route string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[route] = h
}

// JSON registers a fixed JSON reply.
func (s *Server) JSON(route string, status int, body string) {
	s.Handle(route, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

// Requests returns a copy of the request log.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Keys returns the "METHOD /target" of every request, in order.
func (s *Server) Keys() []string {
	reqs := s.Requests()
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.Key()
	}
	return out
}

// Reset clears the request log.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	target := r.URL.RequestURI()
	if len(target) >= len("/api") && target[:len("/api")] == "/api" {
		target = target[len("/api"):]
	}
	req := Request{Method: r.Method, Target: target, Body: string(body)}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	h, ok := s.routes[req.Key()]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}
