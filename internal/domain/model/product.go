package model

import "time"

// Product is a sellable item in the remote inventory.
// Description is markdown-formatted; the web adapter renders and sanitizes it.
type Product struct {
	ID          int64
	SKU         string
	Name        string
	Description string
	CategoryID  int64
	Category    string
	Price       float64
	Stock       int
	UpdatedAt   time.Time
}

// Category groups products.
type Category struct {
	ID   int64
	Name string
}

// Supplier is a purchasing source. Supplier data is admin-only in the GUI.
type Supplier struct {
	ID      int64
	Name    string
	Contact string
	Address string
}
