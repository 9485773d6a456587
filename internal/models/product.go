package models

import "github.com/shopspring/decimal"

// Money is an exact amount in an ISO 4217 currency.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

type Product struct {
	ID                 string
	Name               string
	DescriptionSummary *string
	ImageURL           *string
	Price              *Money // nil when the product has no price
	IsAvailable        bool
	Category           *Category // nil when uncategorised
}
