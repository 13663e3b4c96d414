package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	var seen string
	handler := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if seen == "" {
		t.Error("expected a generated request id in context")
	}
	if rr.Header().Get("X-Request-Id") != seen {
		t.Errorf("header %q does not match context id %q", rr.Header().Get("X-Request-Id"), seen)
	}
}

func TestRequestIDMiddleware_KeepsClientID(t *testing.T) {
	handler := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("X-Request-Id", "client-supplied")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-Id"); got != "client-supplied" {
		t.Errorf("expected client id to be kept, got %q", got)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name string
		xff  string
		xri  string
		addr string
		want string
	}{
		{"forwarded list", "10.0.0.1, 10.0.0.2", "", "127.0.0.1:1234", "10.0.0.1"},
		{"real ip", "", "10.0.0.3", "127.0.0.1:1234", "10.0.0.3"},
		{"remote addr", "", "", "192.168.1.5:9999", "192.168.1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.addr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
