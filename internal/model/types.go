package model

import "time"

// Product is a catalog item. Name is the primary search field; Description and
// Category are secondary search fields.
type Product struct {
	ProductID    string    `json:"productId"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CategoryID   string    `json:"categoryId"`
	Price        float64   `json:"price"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	Stock        int       `json:"stock"`
	Sizes        []string  `json:"sizes,omitempty"`
	CreationTime time.Time `json:"creationTime"`
}

// Category groups products.
type Category struct {
	CategoryID   string    `json:"categoryId"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	CreationTime time.Time `json:"creationTime"`
}

// Review is a customer rating on a product. Rating is 1..5.
type Review struct {
	ReviewID     string    `json:"reviewId"`
	ProductID    string    `json:"productId"`
	CustomerID   string    `json:"customerId"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreationTime time.Time `json:"creationTime"`
}

// WishlistItem marks a product saved by a customer.
type WishlistItem struct {
	CustomerID   string    `json:"customerId"`
	ProductID    string    `json:"productId"`
	CreationTime time.Time `json:"creationTime"`
}

// Suggestion is a lightweight search-as-you-type result.
type Suggestion struct {
	ProductID  string `json:"productId"`
	Name       string `json:"name"`
	CategoryID string `json:"categoryId"`
}

// ConversationTurn is one prior chat exchange line supplied by the caller.
type ConversationTurn struct {
	Speaker string `json:"speaker"` // "user" or "assistant"
	Text    string `json:"text"`
}

// CatalogSnapshot holds the product and category collections fetched at one
// instant. It is replaced wholesale on refresh, never patched, so category
// names always resolve against the categories captured with the same products.
type CatalogSnapshot struct {
	Products   []*Product
	Categories []*Category
	FetchedAt  time.Time
}

// SearchFilter is the post-search predicate pass applied by callers; the fuzzy
// engine itself never filters by category or price.
type SearchFilter struct {
	CategoryID string
	MinPrice   *float64
	MaxPrice   *float64
}

// Match reports whether p passes the filter.
func (f SearchFilter) Match(p *Product) bool {
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}
