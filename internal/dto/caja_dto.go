package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AperturaCajaRequest struct {
	MontoInicial *decimal.Decimal `json:"monto_inicial" validate:"required"`
}

type CierreCajaRequest struct {
	TotalReal *decimal.Decimal `json:"total_real" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AperturaCajaResponse struct {
	CajaID        string          `json:"caja_id"`
	FechaApertura string          `json:"fecha_apertura"`
	MontoInicial  decimal.Decimal `json:"monto_inicial"`
}

type ResumenCajaResponse struct {
	CajaID        string          `json:"caja_id"`
	FechaApertura string          `json:"fecha_apertura"`
	MontoInicial  decimal.Decimal `json:"monto_inicial"`
	TotalEfectivo decimal.Decimal `json:"total_efectivo"`
	TotalTarjeta  decimal.Decimal `json:"total_tarjeta"`
	TotalYape     decimal.Decimal `json:"total_yape"`
	TotalPlin     decimal.Decimal `json:"total_plin"`
	TotalTeorico  decimal.Decimal `json:"total_teorico"`
}

type CierreCajaResponse struct {
	Mensaje      string          `json:"mensaje"`
	CajaID       string          `json:"caja_id"`
	TotalTeorico decimal.Decimal `json:"total_teorico"`
	TotalReal    decimal.Decimal `json:"total_real"`
	Diferencia   decimal.Decimal `json:"diferencia"`
	FechaCierre  string          `json:"fecha_cierre"`
}
