// Package models holds the wire types of the ShopKart REST contract as the
// backend serializes them. Prices arrive as decimal strings; decimal.Decimal
// accepts both quoted and bare JSON numbers.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is immutable reference data, fetched once at startup.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product is immutable reference data. Category carries the category name,
// not its id. Image is a path relative to the media host, possibly empty.
type Product struct {
	ID          int64           `json:"id"`
	Category    string          `json:"category"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	InStock     bool            `json:"in_stock"`
	Quantity    int             `json:"quantity"`
	Rating      decimal.Decimal `json:"rating"`
}

// CartItem is one line of the server-owned cart snapshot. UnitPrice lives in
// Product.Price; TotalPrice is the server-computed line total.
type CartItem struct {
	ID         int64           `json:"id"`
	Product    Product         `json:"product"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Cart mirrors the active server-side cart. The client never mutates it
// locally: every mutation goes to the server and the returned snapshot
// replaces the held one wholesale.
type Cart struct {
	ID         int64           `json:"id"`
	Customer   int64           `json:"customer"`
	IsOrdered  bool            `json:"is_ordered"`
	Status     string          `json:"status"`
	Items      []CartItem      `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Order is a placed order as returned by the order history listing.
type Order struct {
	ID          int64           `json:"id"`
	Status      string          `json:"status"`
	DateOrdered time.Time       `json:"date_ordered"`
	Items       []CartItem      `json:"items"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// TokenPair is the login handshake response. Refresh is empty on responses
// from the refresh endpoint, which reissues only the access token.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}
