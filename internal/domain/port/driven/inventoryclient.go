package driven

import (
	"context"

	"github.com/kevharding/stockpanel/internal/domain/model"
)

// LoginResult carries the credential values returned by a successful
// authentication call. Token is an opaque bearer token; this client performs
// no expiry handling; a stale token simply fails at the transport layer on
// the next API call.
type LoginResult struct {
	Token string
	Role  model.Role
}

// InventoryClient defines the driven port for the remote inventory API.
// All fetchers return already-deserialized domain collections; list shaping
// (paging, aggregation) happens client-side in the application layer.
type InventoryClient interface {
	// Login authenticates against the API and returns the credential values
	// to persist. It is the only operation that works without a bearer token.
	Login(ctx context.Context, email, password string) (LoginResult, error)

	// FetchTransactions retrieves all buy/sell transactions visible to the
	// authenticated user, in the server's display order.
	FetchTransactions(ctx context.Context) ([]model.Transaction, error)

	// FetchProducts retrieves the product catalog.
	FetchProducts(ctx context.Context) ([]model.Product, error)

	// FetchCategories retrieves the product categories.
	FetchCategories(ctx context.Context) ([]model.Category, error)

	// FetchSuppliers retrieves the supplier list. The API enforces the admin
	// requirement server-side; the GUI additionally gates the page.
	FetchSuppliers(ctx context.Context) ([]model.Supplier, error)
}
