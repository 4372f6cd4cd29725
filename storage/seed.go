package storage

import (
	"github.com/Therakar/banklist/model"

	"github.com/shopspring/decimal"
)

// SeedAccounts returns the fixed demo account set. Each process starts from
// this scenario and every change is discarded on exit.
func SeedAccounts() []*model.Account {
	return []*model.Account{
		{
			Owner:        "Jonas Schmedtmann",
			PIN:          1111,
			InterestRate: decimal.RequireFromString("1.2"),
			Movements:    movements(200, 450, -400, 3000, -650, -130, 70, 1300),
		},
		{
			Owner:        "Jessica Davis",
			PIN:          2222,
			InterestRate: decimal.RequireFromString("1.5"),
			Movements:    movements(5000, 3400, -150, -790, -3210, -1000, 8500, -30),
		},
		{
			Owner:        "Steven Thomas Williams",
			PIN:          3333,
			InterestRate: decimal.RequireFromString("0.7"),
			Movements:    movements(200, -200, 340, -300, -20, 50, 400, -460),
		},
		{
			Owner:        "Sarah Smith",
			PIN:          4444,
			InterestRate: decimal.NewFromInt(1),
			Movements:    movements(430, 1000, 700, 50, 90),
		},
	}
}

func movements(amounts ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(amounts))
	for i, a := range amounts {
		out[i] = decimal.NewFromInt(a)
	}
	return out
}
