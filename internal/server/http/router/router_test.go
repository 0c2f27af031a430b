package router

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/smartkart/smartkart/internal/domain/model"
	"github.com/smartkart/smartkart/internal/notify"
	testhelpers "github.com/smartkart/smartkart/internal/test"
)

func newTestRouter(principal model.Principal) http.Handler {
	facade := &testhelpers.MarketFacadeStub{Principal: principal}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return Setup(facade, notify.NewRegistry(), testhelpers.HealthCheckerStub{}, logger)
}

func authedRequest(method, path string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Accept-Encoding", "identity")
	return req
}

func TestRouterHealth(t *testing.T) {
	router := newTestRouter(model.Principal{})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestRouterPublicAuthRoutes(t *testing.T) {
	router := newTestRouter(model.Principal{})

	body, _ := json.Marshal(map[string]string{"email": "a@b.c", "password": "pw"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "identity")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("login without token expected 200, got %d", resp.Code)
	}
}

func TestRouterRequiresAuth(t *testing.T) {
	router := newTestRouter(model.Principal{})

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/orders"},
		{http.MethodGet, "/api/groups"},
		{http.MethodGet, "/api/suppliers/nearby"},
		{http.MethodGet, "/api/payments/history"},
	}
	for _, route := range protected {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(route.method, route.path, nil))
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s without token: expected 401, got %d", route.method, route.path, resp.Code)
		}
	}
}

func TestRouterRoleGates(t *testing.T) {
	vendorRouter := newTestRouter(model.Principal{ID: uuid.New(), Role: model.RoleVendor})
	supplierRouter := newTestRouter(model.Principal{ID: uuid.New(), Role: model.RoleSupplier})

	// Vendors cannot decide orders or view the dashboard.
	resp := httptest.NewRecorder()
	vendorRouter.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/orders/"+uuid.NewString()+"/decision", []byte(`{"status":"accepted"}`)))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("vendor decision: expected 403, got %d", resp.Code)
	}
	resp = httptest.NewRecorder()
	vendorRouter.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/suppliers/dashboard", nil))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("vendor dashboard: expected 403, got %d", resp.Code)
	}

	// Suppliers cannot open groups, schedule deliveries or rate.
	resp = httptest.NewRecorder()
	supplierRouter.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/groups", []byte(`{"name":"g","totalAmount":10}`)))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("supplier group create: expected 403, got %d", resp.Code)
	}
	resp = httptest.NewRecorder()
	supplierRouter.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/suppliers/"+uuid.NewString()+"/rating", []byte(`{"rating":4}`)))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("supplier rating: expected 403, got %d", resp.Code)
	}

	// The matching role passes through to the handler.
	resp = httptest.NewRecorder()
	supplierRouter.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/orders/"+uuid.NewString()+"/decision", []byte(`{"status":"accepted"}`)))
	if resp.Code != http.StatusOK {
		t.Fatalf("supplier decision: expected 200, got %d", resp.Code)
	}
}

func TestRouterOrderFlow(t *testing.T) {
	router := newTestRouter(model.Principal{ID: uuid.New(), Role: model.RoleVendor})

	body, _ := json.Marshal(map[string]any{
		"supplierId": uuid.NewString(),
		"items":      []map[string]any{{"name": "Onions", "quantity": 25, "unit": "kg", "pricePerUnit": 30}},
	})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/orders", body))
	if resp.Code != http.StatusCreated {
		t.Fatalf("create order: expected 201, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/orders/"+uuid.NewString(), nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("get order: expected 200, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPatch, "/api/orders/"+uuid.NewString(), []byte(`{"notes":"pack separately"}`)))
	if resp.Code != http.StatusOK {
		t.Fatalf("patch order: expected 200, got %d", resp.Code)
	}
}

func TestRouterCompressesResponses(t *testing.T) {
	router := newTestRouter(model.Principal{ID: uuid.New(), Role: model.RoleVendor})

	req := authedRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip response, got %q", resp.Header().Get("Content-Encoding"))
	}

	reader, err := gzip.NewReader(resp.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if !json.Valid(decoded) {
		t.Fatalf("decompressed body is not JSON: %q", decoded)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(model.Principal{})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
