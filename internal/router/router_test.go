package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"warungpos/internal/auth"
	"warungpos/internal/checkout"
	"warungpos/internal/ledger"
	"warungpos/internal/menu"
	"warungpos/internal/order"
	"warungpos/internal/receipt"
	"warungpos/internal/sequence"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

const (
	managerEmail = "boss@warung.id"
	testPassword = "Password@123"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	tokens, err := auth.NewTokenIssuer("router-test-secret")
	require.NoError(t, err)

	menuSvc := menu.NewService(menu.NewCatalog(sequence.New()), menu.NewInMemoryRepository(), logger, 10)
	require.NoError(t, menuSvc.Bootstrap(context.Background(), menu.DefaultMenu()))

	sales := ledger.New()
	till := checkout.NewService(checkout.Dependencies{
		Menu:           menuSvc,
		Orders:         order.NewInMemoryRepository(),
		Ledger:         sales,
		Factory:        order.NewFactory(sequence.New(), order.SystemClock{}),
		Header:         receipt.Header{StoreName: "WARUNG PADANG SEDERHANA", Address: "Jl. Merdeka No. 123"},
		PaymentMethods: []string{"Cash"},
		Logger:         logger,
		Tracer:         noop.NewTracerProvider().Tracer("test"),
	})

	users := auth.NewService(auth.NewInMemoryUserRepository(), tokens)
	_, err = users.EnsureManager(context.Background(), "Boss", managerEmail, testPassword)
	require.NoError(t, err)

	return NewRouter(Deps{
		Auth:        auth.NewHandler(users),
		Menu:        menu.NewHandler(menuSvc),
		Checkout:    checkout.NewHandler(till),
		Reports:     ledger.NewHandler(sales),
		Tokens:      tokens,
		Logger:      logger,
		CORSOrigins: []string{"http://localhost:3000"},
	})
}

func call(r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// login signs in as the bootstrap manager, or registers a cashier first.
func login(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	if email != managerEmail {
		w := call(r, http.MethodPost, "/auth/register", "", map[string]string{
			"name": email, "email": email, "password": testPassword,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	return signIn(t, r, email)
}

func signIn(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := call(r, http.MethodPost, "/auth/login", "", map[string]string{
		"email": email, "password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t)

	w := call(r, http.MethodGet, "/health", "", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/menu", "/cart", "/inventory/low-stock", "/reports/sales"} {
		w := call(r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestManagerOnlyRoutes(t *testing.T) {
	r := newTestRouter(t)
	cashier := login(t, r, "kasir@warung.id")
	manager := login(t, r, managerEmail)

	restock := map[string]int{"quantity": 5}
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodPost, "/inventory/1/restock", cashier, restock).Code)
	assert.Equal(t, http.StatusOK, call(r, http.MethodPost, "/inventory/1/restock", manager, restock).Code)

	assert.Equal(t, http.StatusForbidden, call(r, http.MethodGet, "/reports/sales", cashier, nil).Code)
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/reports/sales", manager, nil).Code)
}

func TestAnonymousCannotBecomeManager(t *testing.T) {
	r := newTestRouter(t)

	w := call(r, http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Mallory", "email": "mallory@warung.id", "password": testPassword, "role": auth.RoleManager,
	})
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	w = call(r, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "mallory@warung.id", "password": testPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// a cashier token cannot create staff either
	cashier := login(t, r, "kasir@warung.id")
	staff := map[string]string{
		"name": "Mallory", "email": "mallory@warung.id", "password": testPassword, "role": auth.RoleManager,
	}
	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodPost, "/auth/staff", "", staff).Code)
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodPost, "/auth/staff", cashier, staff).Code)
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodPut, "/inventory/1/stock", cashier, map[string]int{"stock": 0}).Code)
}

func TestManagerCreatesManager(t *testing.T) {
	r := newTestRouter(t)
	manager := login(t, r, managerEmail)

	w := call(r, http.MethodPost, "/auth/staff", manager, map[string]string{
		"name": "Dewi", "email": "dewi@warung.id", "password": testPassword, "role": auth.RoleManager,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	dewi := signIn(t, r, "dewi@warung.id")
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/reports/sales", dewi, nil).Code)
}

func TestSaleShowsUpInReport(t *testing.T) {
	r := newTestRouter(t)
	cashier := login(t, r, "kasir@warung.id")
	manager := login(t, r, managerEmail)

	w := call(r, http.MethodPost, "/cart/items", cashier, map[string]int{"item_id": 1, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(r, http.MethodPost, "/cart/checkout", cashier, map[string]string{"amount": "60000", "method": "Cash"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(r, http.MethodGet, "/menu/1", cashier, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stock":48`)

	w = call(r, http.MethodGet, "/reports/sales", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"order_count":1`)
	assert.Contains(t, w.Body.String(), `"name":"Nasi Goreng","quantity":2`)

	w = call(r, http.MethodGet, "/orders/1/receipt", cashier, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Order #0001")
}
