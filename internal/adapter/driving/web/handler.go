// Package web implements the HTML GUI driving adapter: login flow, dashboard
// aggregates, and paged inventory lists rendered with html/template.
package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/kevharding/stockpanel/internal/application"
	"github.com/kevharding/stockpanel/internal/domain/port/driven"
)

const listPageSize = 10

// ClientFactory builds an inventory API client for a bearer token. The login
// handler uses it with an empty token to authenticate, then with the fresh
// token to replace the provider's client.
type ClientFactory func(token string) driven.InventoryClient

// Handler is the web GUI driving adapter.
type Handler struct {
	session   *application.Session
	provider  *application.InventoryClientProvider
	newClient ClientFactory
	logger    *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	session *application.Session,
	provider *application.InventoryClientProvider,
	newClient ClientFactory,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		session:   session,
		provider:  provider,
		newClient: newClient,
		logger:    logger,
	}
}

// LoginPage renders the login form. An already-authenticated session is sent
// straight to its destination.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	returnTo := safeReturnPath(r.URL.Query().Get("return_to"))

	if h.session.IsAuthenticated(r.Context()) {
		http.Redirect(w, r, returnTo, http.StatusSeeOther)
		return
	}

	h.render(w, "login.html", LoginView{
		Title:     "Sign in",
		ReturnTo:  returnTo,
		CSRFToken: ensureCSRFToken(w, r),
	})
}

// LoginSubmit authenticates against the inventory API, persists the returned
// credentials, swaps in an authenticated API client, and resumes at the
// originally requested destination.
func (h *Handler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	returnTo := safeReturnPath(r.FormValue("return_to"))

	ctx := r.Context()
	result, err := h.newClient("").Login(ctx, email, password)
	if err != nil {
		h.logger.Warn("login failed", "email", email, "error", err)
		h.render(w, "login.html", LoginView{
			Title:     "Sign in",
			Error:     "Invalid email or password.",
			ReturnTo:  returnTo,
			CSRFToken: ensureCSRFToken(w, r),
		})
		return
	}

	if err := h.session.Login(ctx, result.Token, result.Role); err != nil {
		h.logger.Error("failed to persist credentials", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.provider.Replace(h.newClient(result.Token))
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

// Logout clears the stored credentials and drops the authenticated client.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	if err := h.session.Logout(r.Context()); err != nil {
		h.logger.Error("logout failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.provider.Replace(nil)
	http.Redirect(w, r, application.LoginPath, http.StatusSeeOther)
}

// Dashboard renders the aggregate projections: counts and sums by
// transaction type over everything, plus daily sums for the selected
// month/year (defaulting to the current local month).
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	client := h.provider.Get()
	if client == nil {
		http.Redirect(w, r, application.LoginPath, http.StatusSeeOther)
		return
	}

	transactions, err := client.FetchTransactions(ctx)
	if err != nil {
		h.logger.Error("failed to fetch transactions", "error", err)
		http.Error(w, "inventory api unavailable", http.StatusBadGateway)
		return
	}

	now := time.Now()
	year := queryInt(r, "year", now.Year())
	month := queryInt(r, "month", int(now.Month()))
	if month < 1 || month > 12 {
		month = int(now.Month())
	}

	monthly := application.FilterMonth(transactions, year, time.Month(month))

	view := toDashboardView(
		year, time.Month(month),
		application.CountByType(transactions),
		application.SumByType(transactions),
		application.SumByDayOfMonth(monthly),
	)
	view.IsAdmin = h.session.IsAdmin(ctx)
	view.CSRFToken = ensureCSRFToken(w, r)

	h.render(w, "dashboard.html", view)
}

// Transactions renders one client-side page of the transaction list.
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	client := h.provider.Get()
	if client == nil {
		http.Redirect(w, r, application.LoginPath, http.StatusSeeOther)
		return
	}

	transactions, err := client.FetchTransactions(ctx)
	if err != nil {
		h.logger.Error("failed to fetch transactions", "error", err)
		http.Error(w, "inventory api unavailable", http.StatusBadGateway)
		return
	}

	// A stale page request (e.g. right after the collection shrank) falls
	// back to page 1 rather than erroring.
	totalPages := application.Paginate(transactions, listPageSize, 1).TotalPages
	pageNumber := 1
	if requested, ok := application.SelectPage(queryInt(r, "page", 1), totalPages); ok {
		pageNumber = requested
	}

	page := application.Paginate(transactions, listPageSize, pageNumber)

	view := toTransactionsView(page, pageNumber)
	view.IsAdmin = h.session.IsAdmin(ctx)
	view.CSRFToken = ensureCSRFToken(w, r)

	h.render(w, "transactions.html", view)
}

// Products renders one client-side page of the product catalog, with
// markdown descriptions rendered to sanitized HTML.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	client := h.provider.Get()
	if client == nil {
		http.Redirect(w, r, application.LoginPath, http.StatusSeeOther)
		return
	}

	products, err := client.FetchProducts(ctx)
	if err != nil {
		h.logger.Error("failed to fetch products", "error", err)
		http.Error(w, "inventory api unavailable", http.StatusBadGateway)
		return
	}

	totalPages := application.Paginate(products, listPageSize, 1).TotalPages
	pageNumber := 1
	if requested, ok := application.SelectPage(queryInt(r, "page", 1), totalPages); ok {
		pageNumber = requested
	}

	page := application.Paginate(products, listPageSize, pageNumber)

	view := toProductsView(page, pageNumber)
	view.IsAdmin = h.session.IsAdmin(ctx)
	view.CSRFToken = ensureCSRFToken(w, r)

	h.render(w, "products.html", view)
}

// Suppliers renders the supplier list. The route is registered with the
// requiresAdmin policy flag, so non-admin sessions never reach this handler.
func (h *Handler) Suppliers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	client := h.provider.Get()
	if client == nil {
		http.Redirect(w, r, application.LoginPath, http.StatusSeeOther)
		return
	}

	suppliers, err := client.FetchSuppliers(ctx)
	if err != nil {
		h.logger.Error("failed to fetch suppliers", "error", err)
		http.Error(w, "inventory api unavailable", http.StatusBadGateway)
		return
	}

	view := toSuppliersView(suppliers)
	view.IsAdmin = true
	view.CSRFToken = ensureCSRFToken(w, r)

	h.render(w, "suppliers.html", view)
}

// queryInt reads an integer query parameter, falling back to def when absent
// or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
