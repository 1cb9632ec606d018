package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web GUI routes on the provided mux. The
// requiresAdmin policy flag per protected route is fixed here; only the
// suppliers page demands the admin role.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	// Authentication flow.
	mux.HandleFunc("GET /login", h.LoginPage)
	mux.HandleFunc("POST /login", h.LoginSubmit)
	mux.HandleFunc("POST /logout", h.Logout)

	// Protected pages.
	mux.HandleFunc("GET /{$}", h.guard(false, h.Dashboard))
	mux.HandleFunc("GET /app/transactions", h.guard(false, h.Transactions))
	mux.HandleFunc("GET /app/products", h.guard(false, h.Products))
	mux.HandleFunc("GET /app/suppliers", h.guard(true, h.Suppliers))
}
