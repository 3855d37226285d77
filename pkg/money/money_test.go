package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		quantity int
		want     string
	}{
		{name: "whole cents", price: "8.50", quantity: 3, want: "25.50"},
		{name: "binary float trap", price: "0.10", quantity: 3, want: "0.30"},
		{name: "rounds half up", price: "0.125", quantity: 1, want: "0.13"},
		{name: "rounds down below half", price: "0.124", quantity: 1, want: "0.12"},
		{name: "large quantity", price: "19.99", quantity: 1000, want: "19990.00"},
		{name: "zero quantity contributes nothing", price: "8.50", quantity: 0, want: "0.00"},
		{name: "negative quantity contributes nothing", price: "8.50", quantity: -2, want: "0.00"},
		{name: "negative price contributes nothing", price: "-1.00", quantity: 2, want: "0.00"},
		{name: "free medicine", price: "0", quantity: 4, want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineTotal(decimal.RequireFromString(tt.price), tt.quantity)
			if Format(got) != tt.want {
				t.Errorf("LineTotal(%s, %d) = %s, want %s", tt.price, tt.quantity, Format(got), tt.want)
			}
		})
	}
}

func TestSum(t *testing.T) {
	got := Sum(
		LineTotal(decimal.RequireFromString("8.50"), 3),
		LineTotal(decimal.RequireFromString("8.50"), 2),
	)
	if Format(got) != "42.50" {
		t.Errorf("Sum() = %s, want 42.50", Format(got))
	}

	if Format(Sum()) != "0.00" {
		t.Errorf("Sum() of nothing = %s, want 0.00", Format(Sum()))
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("12.345")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if Format(d) != "12.35" {
		t.Errorf("Parse() = %s, want 12.35", Format(d))
	}

	if _, err := Parse("abc"); err == nil {
		t.Error("Parse(abc) expected error")
	}
}
