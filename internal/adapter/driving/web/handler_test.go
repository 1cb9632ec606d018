package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevharding/stockpanel/internal/application"
	"github.com/kevharding/stockpanel/internal/domain/model"
	"github.com/kevharding/stockpanel/internal/domain/port/driven"
)

type memCredStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemCredStore() *memCredStore {
	return &memCredStore{values: make(map[string]string)}
}

func (m *memCredStore) Set(_ context.Context, key, plaintext string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = plaintext
	return nil
}

func (m *memCredStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *memCredStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

type fakeInventoryClient struct {
	loginResult  driven.LoginResult
	loginErr     error
	transactions []model.Transaction
	products     []model.Product
	suppliers    []model.Supplier
	fetchErr     error
}

func (f *fakeInventoryClient) Login(context.Context, string, string) (driven.LoginResult, error) {
	return f.loginResult, f.loginErr
}

func (f *fakeInventoryClient) FetchTransactions(context.Context) ([]model.Transaction, error) {
	return f.transactions, f.fetchErr
}

func (f *fakeInventoryClient) FetchProducts(context.Context) ([]model.Product, error) {
	return f.products, f.fetchErr
}

func (f *fakeInventoryClient) FetchCategories(context.Context) ([]model.Category, error) {
	return nil, f.fetchErr
}

func (f *fakeInventoryClient) FetchSuppliers(context.Context) ([]model.Supplier, error) {
	return f.suppliers, f.fetchErr
}

type testEnv struct {
	mux      *http.ServeMux
	session  *application.Session
	provider *application.InventoryClientProvider
	client   *fakeInventoryClient
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	client := &fakeInventoryClient{}
	session := application.NewSession(newMemCredStore())
	provider := application.NewInventoryClientProvider(nil)

	handler := NewHandler(session, provider, func(string) driven.InventoryClient {
		return client
	}, slog.New(slog.DiscardHandler))

	mux := http.NewServeMux()
	RegisterRoutes(mux, handler)

	return &testEnv{mux: mux, session: session, provider: provider, client: client}
}

// withCSRF attaches a matching CSRF cookie and form field to a POST request.
func withCSRF(form url.Values) *http.Request {
	form.Set("csrf_token", "test-csrf")
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "test-csrf"})
	return req
}

func TestLoginPage_RendersForm(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/login?return_to=%2Fapp%2Fproducts", nil)
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="email"`)
	assert.Contains(t, body, `name="return_to" value="/app/products"`)
	assert.NotEmpty(t, rec.Result().Cookies(), "csrf cookie should be set")
}

func TestLoginPage_AuthenticatedRedirectsAway(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.session.Login(context.Background(), "tok", model.RoleUser))

	req := httptest.NewRequest(http.MethodGet, "/login?return_to=%2Fapp%2Fproducts", nil)
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/app/products", rec.Header().Get("Location"))
}

func TestLoginSubmit_Success(t *testing.T) {
	env := newTestEnv(t)
	env.client.loginResult = driven.LoginResult{Token: "tok_abc", Role: model.RoleAdmin}

	req := withCSRF(url.Values{
		"email":     {"admin@example.com"},
		"password":  {"hunter2"},
		"return_to": {"/app/suppliers"},
	})
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/app/suppliers", rec.Header().Get("Location"))

	ctx := context.Background()
	assert.True(t, env.session.IsAuthenticated(ctx))
	assert.True(t, env.session.IsAdmin(ctx))
	assert.True(t, env.provider.HasClient())
}

func TestLoginSubmit_BadCredentialsRerendersForm(t *testing.T) {
	env := newTestEnv(t)
	env.client.loginErr = errors.New("api status 401: wrong password")

	req := withCSRF(url.Values{
		"email":    {"admin@example.com"},
		"password": {"wrong"},
	})
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password.")
	assert.False(t, env.session.IsAuthenticated(context.Background()))
	assert.False(t, env.provider.HasClient())
}

func TestLoginSubmit_MissingCSRFRejected(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{"email": {"a@b.c"}, "password": {"pw"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLogout_ClearsSessionAndClient(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.session.Login(context.Background(), "tok", model.RoleAdmin))
	env.provider.Replace(env.client)

	form := url.Values{"csrf_token": {"test-csrf"}}
	req := httptest.NewRequest(http.MethodPost, "/logout", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "test-csrf"})
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, application.LoginPath, rec.Header().Get("Location"))
	assert.False(t, env.session.IsAuthenticated(context.Background()))
	assert.False(t, env.provider.HasClient())
}

func TestDashboard_RendersAggregates(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.session.Login(context.Background(), "tok", model.RoleUser))
	env.client.transactions = []model.Transaction{
		{Type: model.TransactionSell, TotalPrice: 10, CreatedAt: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.Local)},
		{Type: model.TransactionSell, TotalPrice: 20, CreatedAt: time.Date(2026, time.March, 1, 17, 0, 0, 0, time.Local)},
		{Type: model.TransactionPurchase, TotalPrice: 5, CreatedAt: time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)},
	}
	env.provider.Replace(env.client)

	req := httptest.NewRequest(http.MethodGet, "/?year=2026&month=3", nil)
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "March 2026")
	assert.Contains(t, body, "30.00", "day 1 total")
	assert.Contains(t, body, "5.00", "day 15 total")
}

func TestDashboard_NoClientRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.session.Login(context.Background(), "tok", model.RoleUser))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, application.LoginPath, rec.Header().Get("Location"))
}

func TestTransactions_SecondPage(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.session.Login(context.Background(), "tok", model.RoleUser))
	for i := 1; i <= 12; i++ {
		env.client.transactions = append(env.client.transactions, model.Transaction{
			ID:          int64(i),
			Type:        model.TransactionSell,
			ProductName: fmt.Sprintf("Item %02d", i),
			TotalPrice:  float64(i),
			CreatedAt:   time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local),
		})
	}
	env.provider.Replace(env.client)

	req := httptest.NewRequest(http.MethodGet, "/app/transactions?page=2", nil)
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Item 11")
	assert.Contains(t, body, "Item 12")
	assert.NotContains(t, body, "Item 05")
}

func TestTransactions_StalePageFallsBackToFirst(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.session.Login(context.Background(), "tok", model.RoleUser))
	env.client.transactions = []model.Transaction{
		{ID: 1, Type: model.TransactionSell, ProductName: "Only item", CreatedAt: time.Now()},
	}
	env.provider.Replace(env.client)

	req := httptest.NewRequest(http.MethodGet, "/app/transactions?page=99", nil)
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Only item")
}

func TestTransactions_UpstreamFailure(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.session.Login(context.Background(), "tok", model.RoleUser))
	env.client.fetchErr = errors.New("connection refused")
	env.provider.Replace(env.client)

	req := httptest.NewRequest(http.MethodGet, "/app/transactions", nil)
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestProducts_MarkdownRenderedAndSanitized(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.session.Login(context.Background(), "tok", model.RoleUser))
	env.client.products = []model.Product{
		{
			SKU:         "WDG-001",
			Name:        "Widget",
			Description: "A **fine** widget.<script>alert(1)</script>",
			Price:       9.99,
			Stock:       3,
		},
	}
	env.provider.Replace(env.client)

	req := httptest.NewRequest(http.MethodGet, "/app/products", nil)
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<strong>fine</strong>")
	assert.NotContains(t, body, "<script>")
}

func TestSuppliers_RendersForAdmin(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.session.Login(context.Background(), "tok", model.RoleAdmin))
	env.client.suppliers = []model.Supplier{
		{ID: 1, Name: "Acme Supply Co", Contact: "sales@acme.example", Address: "1 Acme Way"},
	}
	env.provider.Replace(env.client)

	req := httptest.NewRequest(http.MethodGet, "/app/suppliers", nil)
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acme Supply Co")
}
