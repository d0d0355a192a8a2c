// Package models holds the server-side domain entities backing the storefront.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
}

type Category struct {
	ID   int64
	Name string
	Slug string
}

// Product carries its category name alongside the foreign key because the
// API serializes categories by name.
type Product struct {
	ID           int64
	CategoryID   int64
	CategoryName string
	Name         string
	Description  string
	Price        decimal.Decimal
	Image        string
	InStock      bool
	Quantity     int
	Rating       decimal.Decimal
}

// Order doubles as the active cart (IsOrdered false, StatusInCart) and a
// placed order. At most one active cart exists per customer.
type Order struct {
	ID          int64
	CustomerID  int64
	DateOrdered time.Time
	IsOrdered   bool
	Status      string
}

const (
	StatusInCart = "In Cart"
	StatusPlaced = "Placed"
)

type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	DateAdded time.Time
}
