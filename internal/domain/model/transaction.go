package model

import "time"

// TransactionType discriminates buy from sell records.
type TransactionType string

const (
	TransactionSell     TransactionType = "SELL"
	TransactionPurchase TransactionType = "PURCHASE"
)

// Transaction is a single buy/sell record returned by the inventory API.
// This client never mutates transactions; it only counts, sums, and pages them.
type Transaction struct {
	ID          int64
	Type        TransactionType
	ProductName string
	Quantity    int
	TotalPrice  float64
	Note        string
	CreatedAt   time.Time
}
