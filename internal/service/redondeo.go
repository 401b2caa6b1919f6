package service

// Cash-denomination rounding: only the EFECTIVO channel rounds to the nearest
// 0.10; every other channel collects exactly the requested amount.

import (
	"credicaja/internal/model"
	"credicaja/internal/money"

	"github.com/shopspring/decimal"
)

// AplicarRedondeo returns the amount actually collected and the signed
// rounding adjustment (positive when the customer pays slightly more).
func AplicarRedondeo(monto decimal.Decimal, medioPago string) (montoCobrar, ajuste decimal.Decimal) {
	if medioPago != model.MedioEfectivo {
		return monto, decimal.Zero
	}
	montoCobrar = money.CashRound(monto)
	ajuste = money.Round2(montoCobrar.Sub(monto))
	return montoCobrar, ajuste
}
