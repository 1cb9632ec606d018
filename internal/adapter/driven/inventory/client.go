// Package inventory implements the InventoryClient port against the remote
// inventory API. Every response is a JSON envelope carrying a "status" code
// and a domain payload; the client unwraps the envelope and maps wire types
// to domain model types.
package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/kevharding/stockpanel/internal/domain/model"
	"github.com/kevharding/stockpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.InventoryClient = (*Client)(nil)

const requestTimeout = 15 * time.Second

// Client implements the driven.InventoryClient port over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
	token   string // Bearer token; empty until login.
}

// NewClient creates an inventory API client with an in-memory caching
// transport (conditional request caching via ETag/Last-Modified, which the
// API sets on list endpoints). token may be empty for a client that will
// only call Login.
func NewClient(baseURL, token string) *Client {
	return &Client{
		http: &http.Client{
			Transport: httpcache.NewMemoryCacheTransport(),
			Timeout:   requestTimeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client.
// Intended for tests, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

// envelope is the API's uniform response wrapper. Status mirrors the HTTP
// status code; Message carries the human-readable outcome. Exactly one of
// the payload fields is populated per endpoint.
type envelope struct {
	Status       int               `json:"status"`
	Message      string            `json:"message"`
	Token        string            `json:"token"`
	Role         string            `json:"role"`
	Transactions []wireTransaction `json:"transactions"`
	Products     []wireProduct     `json:"products"`
	Categories   []wireCategory    `json:"categories"`
	Suppliers    []wireSupplier    `json:"suppliers"`
}

// Login authenticates with the API and returns the credential values to
// persist. The returned role string is parsed into the closed Role enum at
// this boundary; unrecognized values demote to RoleUser.
func (c *Client) Login(ctx context.Context, email, password string) (driven.LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var env envelope
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &env); err != nil {
		return driven.LoginResult{}, fmt.Errorf("login: %w", err)
	}

	return driven.LoginResult{
		Token: env.Token,
		Role:  model.ParseRole(env.Role),
	}, nil
}

// FetchTransactions retrieves all transactions in the server's display order.
func (c *Client) FetchTransactions(ctx context.Context) ([]model.Transaction, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/api/transactions", nil, &env); err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	transactions := make([]model.Transaction, 0, len(env.Transactions))
	for _, wt := range env.Transactions {
		mapped, err := mapTransaction(wt)
		if err != nil {
			return nil, fmt.Errorf("fetch transactions: %w", err)
		}
		transactions = append(transactions, mapped)
	}
	return transactions, nil
}

// FetchProducts retrieves the product catalog.
func (c *Client) FetchProducts(ctx context.Context) ([]model.Product, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &env); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	products := make([]model.Product, 0, len(env.Products))
	for _, wp := range env.Products {
		mapped, err := mapProduct(wp)
		if err != nil {
			return nil, fmt.Errorf("fetch products: %w", err)
		}
		products = append(products, mapped)
	}
	return products, nil
}

// FetchCategories retrieves the product categories.
func (c *Client) FetchCategories(ctx context.Context) ([]model.Category, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &env); err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}

	categories := make([]model.Category, 0, len(env.Categories))
	for _, wc := range env.Categories {
		categories = append(categories, model.Category{ID: wc.ID, Name: wc.Name})
	}
	return categories, nil
}

// FetchSuppliers retrieves the supplier list. The API rejects non-admin
// tokens with a non-200 envelope status, which surfaces here as an error.
func (c *Client) FetchSuppliers(ctx context.Context) ([]model.Supplier, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/api/suppliers", nil, &env); err != nil {
		return nil, fmt.Errorf("fetch suppliers: %w", err)
	}

	suppliers := make([]model.Supplier, 0, len(env.Suppliers))
	for _, ws := range env.Suppliers {
		suppliers = append(suppliers, model.Supplier{
			ID:      ws.ID,
			Name:    ws.Name,
			Contact: ws.Contact,
			Address: ws.Address,
		})
	}
	return suppliers, nil
}

// do issues one API request and decodes the response envelope into out.
// An envelope status outside 2xx is an error even when the HTTP layer
// reported success.
func (c *Client) do(ctx context.Context, method, path string, body any, out *envelope) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	var req *http.Request
	var err error
	if reqBody != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}

	if out.Status < 200 || out.Status > 299 {
		return fmt.Errorf("%s %s: api status %d: %s", method, path, out.Status, out.Message)
	}
	return nil
}
