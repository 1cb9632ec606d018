// Package httphandler implements the JSON API driving adapter. It mirrors the
// data the GUI shows, for container probes and scripting.
package httphandler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/kevharding/stockpanel/internal/application"
)

const defaultPageSize = 20

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	session  *application.Session
	provider *application.InventoryClientProvider
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(session *application.Session, provider *application.InventoryClientProvider, logger *slog.Logger) *Handler {
	return &Handler{
		session:  session,
		provider: provider,
		logger:   logger,
	}
}

// RegisterAPIRoutes registers the JSON API routes on the provided mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/session", h.SessionStatus)
	mux.HandleFunc("GET /api/v1/transactions", h.ListTransactions)
	mux.HandleFunc("GET /api/v1/summary", h.Summary)
}

// ApplyMiddleware wraps the handler with request-id, logging, and recovery
// middleware. Recovery is innermost so panics are caught before logging.
func ApplyMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	wrapped := recoveryMiddleware(logger, next)
	wrapped = loggingMiddleware(logger, wrapped)
	wrapped = requestIDMiddleware(wrapped)
	return wrapped
}

// Health reports process liveness. It does not call the inventory API.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// SessionStatus reports the derived authentication/authorization state.
func (h *Handler) SessionStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	writeJSON(w, http.StatusOK, SessionResponse{
		Authenticated: h.session.IsAuthenticated(ctx),
		Admin:         h.session.IsAdmin(ctx),
	})
}

// ListTransactions fetches all transactions from the inventory API and
// returns one page, shaped client-side. Query params: page (1-based),
// page_size.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.session.IsAuthenticated(ctx) {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	client := h.provider.Get()
	if client == nil {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	transactions, err := client.FetchTransactions(ctx)
	if err != nil {
		h.logger.Error("failed to fetch transactions", "error", err)
		writeError(w, http.StatusBadGateway, "inventory api unavailable")
		return
	}

	pageSize := queryInt(r, "page_size", defaultPageSize)
	if pageSize < 1 {
		writeError(w, http.StatusBadRequest, "page_size must be positive")
		return
	}

	pageNumber := queryInt(r, "page", 1)
	page := application.Paginate(transactions, pageSize, pageNumber)

	resp := TransactionPageResponse{
		Transactions: make([]TransactionResponse, 0, len(page.Items)),
		Page:         pageNumber,
		TotalPages:   page.TotalPages,
	}
	for _, txn := range page.Items {
		resp.Transactions = append(resp.Transactions, toTransactionResponse(txn))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Summary returns the aggregated projections over all transactions: counts
// and sums by type, and daily sums for the selected month (defaults to the
// current local month). Query params: year, month (1-12).
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.session.IsAuthenticated(ctx) {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	client := h.provider.Get()
	if client == nil {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	transactions, err := client.FetchTransactions(ctx)
	if err != nil {
		h.logger.Error("failed to fetch transactions", "error", err)
		writeError(w, http.StatusBadGateway, "inventory api unavailable")
		return
	}

	now := time.Now()
	year := queryInt(r, "year", now.Year())
	month := queryInt(r, "month", int(now.Month()))
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be 1-12")
		return
	}

	monthly := application.FilterMonth(transactions, year, time.Month(month))

	writeJSON(w, http.StatusOK, toSummaryResponse(
		year, time.Month(month),
		application.CountByType(transactions),
		application.SumByType(transactions),
		application.SumByDayOfMonth(monthly),
	))
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or malformed.
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
