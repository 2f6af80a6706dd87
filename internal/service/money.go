package service

import "github.com/shopspring/decimal"

// roundMoney rounds to whole pence, half away from zero.
func roundMoney(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// sumMoney adds values exactly before rounding the total.
func sumMoney(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Round(2).InexactFloat64()
}
