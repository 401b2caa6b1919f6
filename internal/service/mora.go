package service

// Late-fee (mora) rules: 1% of the current remaining balance when overdue.
// Because the fee is computed on the remaining balance, it shrinks as partial
// payments come in.

import (
	"time"

	"credicaja/internal/money"

	"github.com/shopspring/decimal"
)

var tasaMora = decimal.NewFromFloat(0.01)

// EsVencida reports whether the due date falls strictly before asOf's
// calendar date. Time-of-day never counts: a cuota due today is not overdue.
func EsVencida(fechaVencimiento, asOf time.Time) bool {
	v := fechaVencimiento.Format("2006-01-02")
	h := asOf.Format("2006-01-02")
	return v < h
}

// CalcularMora returns the late-fee surcharge on the remaining balance.
func CalcularMora(saldoPendiente decimal.Decimal, vencida bool) decimal.Decimal {
	if !vencida {
		return decimal.Zero
	}
	return money.Round2(saldoPendiente.Mul(tasaMora))
}
