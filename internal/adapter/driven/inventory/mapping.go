package inventory

import (
	"fmt"
	"time"

	"github.com/kevharding/stockpanel/internal/domain/model"
)

// Wire types mirror the API's JSON field names exactly.

type wireTransaction struct {
	ID          int64   `json:"id"`
	Type        string  `json:"transactionType"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	TotalPrice  float64 `json:"totalPrice"`
	Note        string  `json:"note"`
	CreatedAt   string  `json:"createdAt"`
}

type wireProduct struct {
	ID          int64   `json:"id"`
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	CategoryID  int64   `json:"categoryId"`
	Category    string  `json:"categoryName"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	UpdatedAt   string  `json:"updatedAt"`
}

type wireCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type wireSupplier struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

func mapTransaction(wt wireTransaction) (model.Transaction, error) {
	createdAt, err := parseAPITime(wt.CreatedAt)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %d: %w", wt.ID, err)
	}

	return model.Transaction{
		ID:          wt.ID,
		Type:        model.TransactionType(wt.Type),
		ProductName: wt.ProductName,
		Quantity:    wt.Quantity,
		TotalPrice:  wt.TotalPrice,
		Note:        wt.Note,
		CreatedAt:   createdAt,
	}, nil
}

func mapProduct(wp wireProduct) (model.Product, error) {
	var updatedAt time.Time
	if wp.UpdatedAt != "" {
		var err error
		updatedAt, err = parseAPITime(wp.UpdatedAt)
		if err != nil {
			return model.Product{}, fmt.Errorf("product %d: %w", wp.ID, err)
		}
	}

	return model.Product{
		ID:          wp.ID,
		SKU:         wp.SKU,
		Name:        wp.Name,
		Description: wp.Description,
		CategoryID:  wp.CategoryID,
		Category:    wp.Category,
		Price:       wp.Price,
		Stock:       wp.Stock,
		UpdatedAt:   updatedAt,
	}, nil
}

// parseAPITime parses the API's timestamp format. The API emits RFC 3339;
// some older records carry a space separator instead of "T".
func parseAPITime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02 15:04:05", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return t, nil
}
