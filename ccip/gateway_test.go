package ccip

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
)

func TestHTTPGateway(t *testing.T) {
	ctx := context.Background()

	t.Run("get with substitution", func(t *testing.T) {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("Expected GET, got %s", r.Method)
			}
			gotPath = r.URL.Path
			_ = json.NewEncoder(w).Encode(map[string]string{"data": "0xabcd"})
		}))
		defer srv.Close()

		lookup := testLookup()
		lookup.URLs = []string{srv.URL + "/{sender}/{data}.json"}

		out, err := NewHTTPGateway(srv.Client(), nil).Fetch(ctx, lookup)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if !bytes.Equal(out, []byte{0xab, 0xcd}) {
			t.Errorf("Expected abcd, got %x", out)
		}
		want := "/0x1111111111111111111111111111111111111111/0xcafe.json"
		if gotPath != want {
			t.Errorf("Expected path %q, got %q", want, gotPath)
		}
	})

	t.Run("post without data placeholder", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("Expected POST, got %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected application/json, got %q", ct)
			}
			var req gatewayRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("Decode request: %v", err)
			}
			if req.Data != "0xcafe" || req.Sender != "0x1111111111111111111111111111111111111111" {
				t.Errorf("Unexpected request %+v", req)
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"data": "0x01"})
		}))
		defer srv.Close()

		lookup := testLookup()
		lookup.URLs = []string{srv.URL + "/{sender}"}

		out, err := NewHTTPGateway(srv.Client(), zap.NewNop()).Fetch(ctx, lookup)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if !bytes.Equal(out, []byte{0x01}) {
			t.Errorf("Expected 01, got %x", out)
		}
	})

	t.Run("server error falls through", func(t *testing.T) {
		var hits int32
		bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer bad.Close()
		good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":"0x02"}`))
		}))
		defer good.Close()

		lookup := testLookup()
		lookup.URLs = []string{bad.URL + "/{data}", good.URL + "/{data}"}

		out, err := NewHTTPGateway(nil, nil).Fetch(ctx, lookup)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if !bytes.Equal(out, []byte{0x02}) {
			t.Errorf("Expected 02, got %x", out)
		}
		if atomic.LoadInt32(&hits) != 1 {
			t.Errorf("Expected failing gateway to be tried once, got %d", hits)
		}
	})

	t.Run("client error stops", func(t *testing.T) {
		var secondHit int32
		bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"unknown name"}`))
		}))
		defer bad.Close()
		good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&secondHit, 1)
			_, _ = w.Write([]byte(`{"data":"0x02"}`))
		}))
		defer good.Close()

		lookup := testLookup()
		lookup.URLs = []string{bad.URL + "/{data}", good.URL + "/{data}"}

		_, err := NewHTTPGateway(nil, nil).Fetch(ctx, lookup)
		var gwErr *GatewayError
		if !errors.As(err, &gwErr) {
			t.Fatalf("Expected *GatewayError, got %v", err)
		}
		if gwErr.Status != http.StatusNotFound || gwErr.Message != "unknown name" {
			t.Errorf("Unexpected error details: %+v", gwErr)
		}
		if !gwErr.Permanent() {
			t.Error("4xx must be permanent")
		}
		if atomic.LoadInt32(&secondHit) != 0 {
			t.Error("Second gateway must not be tried after a 4xx")
		}
	})

	t.Run("all gateways fail", func(t *testing.T) {
		bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer bad.Close()

		lookup := testLookup()
		lookup.URLs = []string{bad.URL + "/{data}"}

		_, err := NewHTTPGateway(nil, nil).Fetch(ctx, lookup)
		var gwErr *GatewayError
		if !errors.As(err, &gwErr) || gwErr.Permanent() {
			t.Errorf("Expected a non-permanent *GatewayError, got %v", err)
		}
	})

	t.Run("invalid data", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":"nothex"}`))
		}))
		defer srv.Close()

		lookup := testLookup()
		lookup.URLs = []string{srv.URL + "/{data}"}

		_, err := NewHTTPGateway(nil, nil).Fetch(ctx, lookup)
		if err == nil || !strings.Contains(err.Error(), "invalid data") {
			t.Errorf("Expected invalid data error, got %v", err)
		}
	})

	t.Run("no urls", func(t *testing.T) {
		lookup := testLookup()
		lookup.URLs = nil
		if _, err := NewHTTPGateway(nil, nil).Fetch(ctx, lookup); !errors.Is(err, ErrNoGateway) {
			t.Errorf("Expected ErrNoGateway, got %v", err)
		}
	})
}
