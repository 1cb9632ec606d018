package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kevharding/stockpanel/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// SessionResponse is the JSON representation of the derived session state.
type SessionResponse struct {
	Authenticated bool `json:"authenticated"`
	Admin         bool `json:"admin"`
}

// TransactionResponse is the JSON representation of a single transaction.
type TransactionResponse struct {
	ID          int64   `json:"id"`
	Type        string  `json:"type"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	TotalPrice  float64 `json:"total_price"`
	Note        string  `json:"note,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// TransactionPageResponse is one client-side page of transactions.
type TransactionPageResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Page         int                   `json:"page"`
	TotalPages   int                   `json:"total_pages"`
}

// SummaryResponse carries the three aggregated projections. CountsByType and
// SumsByType cover all transactions; DailySums covers the selected month only.
type SummaryResponse struct {
	Year         int                `json:"year"`
	Month        int                `json:"month"`
	CountsByType map[string]int     `json:"counts_by_type"`
	SumsByType   map[string]float64 `json:"sums_by_type"`
	DailySums    map[int]float64    `json:"daily_sums"`
}

// toTransactionResponse converts a domain Transaction to its JSON representation.
func toTransactionResponse(t model.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Type:        string(t.Type),
		ProductName: t.ProductName,
		Quantity:    t.Quantity,
		TotalPrice:  t.TotalPrice,
		Note:        t.Note,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// toSummaryResponse converts aggregation results to their JSON representation.
func toSummaryResponse(
	year int,
	month time.Month,
	counts map[model.TransactionType]int,
	sums map[model.TransactionType]float64,
	daily map[int]float64,
) SummaryResponse {
	resp := SummaryResponse{
		Year:         year,
		Month:        int(month),
		CountsByType: make(map[string]int, len(counts)),
		SumsByType:   make(map[string]float64, len(sums)),
		DailySums:    daily,
	}
	for typ, n := range counts {
		resp.CountsByType[string(typ)] = n
	}
	for typ, total := range sums {
		resp.SumsByType[string(typ)] = total
	}
	return resp
}
