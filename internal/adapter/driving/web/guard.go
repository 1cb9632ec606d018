package web

import (
	"net/http"
	"net/url"

	"github.com/kevharding/stockpanel/internal/application"
)

// guard wraps a page handler with the route authorization check. The
// requiresAdmin policy flag is fixed at route registration time. On denial
// the browser is redirected to the login page carrying the originally
// requested path in the return_to parameter, so a successful login can
// resume where the user was headed. Denial is a normal navigation outcome,
// not an error.
func (h *Handler) guard(requiresAdmin bool, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decision := application.Authorize(r.Context(), requiresAdmin, r.URL.Path, h.session)
		if !decision.Allow {
			dest := decision.RedirectTo + "?return_to=" + url.QueryEscape(decision.ReturnPath)
			http.Redirect(w, r, dest, http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// safeReturnPath accepts only site-local return paths. Anything absolute,
// scheme-relative, or empty falls back to the dashboard.
func safeReturnPath(raw string) string {
	if raw == "" || raw[0] != '/' {
		return "/"
	}
	if len(raw) > 1 && raw[1] == '/' {
		return "/"
	}
	return raw
}
