package web

import (
	"fmt"
	"html/template"
	"sort"
	"time"

	"github.com/kevharding/stockpanel/internal/application"
	"github.com/kevharding/stockpanel/internal/domain/model"
)

// LoginView is the data for the login page.
type LoginView struct {
	Title     string
	Error     string
	ReturnTo  string
	CSRFToken string
}

// DailyRow is one day's accumulated sales on the dashboard.
type DailyRow struct {
	Day   int
	Total string
}

// DashboardView is the data for the dashboard page.
type DashboardView struct {
	Title         string
	IsAdmin       bool
	CSRFToken     string
	Year          int
	Month         int
	MonthName     string
	SellCount     int
	PurchaseCount int
	SellTotal     string
	PurchaseTotal string
	DailyRows     []DailyRow
}

// TransactionRow is one transaction list entry.
type TransactionRow struct {
	ID          int64
	Type        string
	ProductName string
	Quantity    int
	TotalPrice  string
	CreatedAt   string
}

// TransactionsView is the data for the paged transaction list.
type TransactionsView struct {
	Title       string
	IsAdmin     bool
	CSRFToken   string
	Rows        []TransactionRow
	Page        int
	TotalPages  int
	PageNumbers []int
}

// ProductRow is one product list entry. DescriptionHTML is markdown rendered
// to sanitized HTML.
type ProductRow struct {
	SKU             string
	Name            string
	Category        string
	Price           string
	Stock           int
	DescriptionHTML template.HTML
}

// ProductsView is the data for the paged product catalog.
type ProductsView struct {
	Title       string
	IsAdmin     bool
	CSRFToken   string
	Rows        []ProductRow
	Page        int
	TotalPages  int
	PageNumbers []int
}

// SupplierRow is one supplier list entry.
type SupplierRow struct {
	Name    string
	Contact string
	Address string
}

// SuppliersView is the data for the admin-only supplier list.
type SuppliersView struct {
	Title     string
	IsAdmin   bool
	CSRFToken string
	Rows      []SupplierRow
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// toDashboardView converts aggregation results into the dashboard view.
// Daily rows are sorted ascending by day for display.
func toDashboardView(
	year int,
	month time.Month,
	counts map[model.TransactionType]int,
	sums map[model.TransactionType]float64,
	daily map[int]float64,
) DashboardView {
	rows := make([]DailyRow, 0, len(daily))
	for day, total := range daily {
		rows = append(rows, DailyRow{Day: day, Total: money(total)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Day < rows[j].Day })

	return DashboardView{
		Title:         "Dashboard",
		Year:          year,
		Month:         int(month),
		MonthName:     month.String(),
		SellCount:     counts[model.TransactionSell],
		PurchaseCount: counts[model.TransactionPurchase],
		SellTotal:     money(sums[model.TransactionSell]),
		PurchaseTotal: money(sums[model.TransactionPurchase]),
		DailyRows:     rows,
	}
}

// toTransactionsView converts one page of transactions into its view.
func toTransactionsView(page application.Page[model.Transaction], pageNumber int) TransactionsView {
	rows := make([]TransactionRow, 0, len(page.Items))
	for _, t := range page.Items {
		rows = append(rows, TransactionRow{
			ID:          t.ID,
			Type:        string(t.Type),
			ProductName: t.ProductName,
			Quantity:    t.Quantity,
			TotalPrice:  money(t.TotalPrice),
			CreatedAt:   t.CreatedAt.In(time.Local).Format("2006-01-02 15:04"),
		})
	}

	return TransactionsView{
		Title:       "Transactions",
		Rows:        rows,
		Page:        pageNumber,
		TotalPages:  page.TotalPages,
		PageNumbers: application.VisiblePageNumbers(page.TotalPages),
	}
}

// toProductsView converts one page of products into its view.
func toProductsView(page application.Page[model.Product], pageNumber int) ProductsView {
	rows := make([]ProductRow, 0, len(page.Items))
	for _, p := range page.Items {
		rows = append(rows, ProductRow{
			SKU:             p.SKU,
			Name:            p.Name,
			Category:        p.Category,
			Price:           money(p.Price),
			Stock:           p.Stock,
			DescriptionHTML: template.HTML(RenderMarkdown(p.Description)),
		})
	}

	return ProductsView{
		Title:       "Products",
		Rows:        rows,
		Page:        pageNumber,
		TotalPages:  page.TotalPages,
		PageNumbers: application.VisiblePageNumbers(page.TotalPages),
	}
}

// toSuppliersView converts the supplier list into its view.
func toSuppliersView(suppliers []model.Supplier) SuppliersView {
	rows := make([]SupplierRow, 0, len(suppliers))
	for _, s := range suppliers {
		rows = append(rows, SupplierRow{
			Name:    s.Name,
			Contact: s.Contact,
			Address: s.Address,
		})
	}

	return SuppliersView{
		Title: "Suppliers",
		Rows:  rows,
	}
}
