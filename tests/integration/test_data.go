//go:build integration

package integration

import (
	"fmt"
	"time"
)

// ProductSeed describes a product row to insert. An empty Price stores no price.
type ProductSeed struct {
	Name        string
	Description *string
	ImageURL    *string
	Price       string
	Currency    string
	Available   bool
	CategoryID  *string
}

// Available returns a priced, available product seed
func Available(name, price string, categoryID *string) ProductSeed {
	return ProductSeed{Name: name, Price: price, Currency: "EUR", Available: true, CategoryID: categoryID}
}

// TestUser generates unique test user credentials using timestamp
func TestUser(suffix string) (email, password string) {
	ts := time.Now().UnixNano()
	email = fmt.Sprintf("test-%d-%s@example.com", ts, suffix)
	password = "TestPassword123"
	return
}

func ptr[T any](v T) *T { return &v }
