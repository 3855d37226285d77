package entity

import "github.com/shopspring/decimal"

// MedicineUsage is one group of the medicine usage report, keyed by
// medicine name, dose and unit price.
type MedicineUsage struct {
	Name          string
	Dose          string
	PricePerUnit  decimal.Decimal
	TotalQuantity int64
	TotalPrice    decimal.Decimal
}
