package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarPagoRequest struct {
	CuotaID          string           `json:"cuota_id"          validate:"required,uuid"`
	MontoPagado      *decimal.Decimal `json:"monto_pagado"      validate:"required"`
	MedioPago        string           `json:"medio_pago"        validate:"required,oneof=EFECTIVO TARJETA YAPE PLIN"`
	CanalComprobante string           `json:"canal_comprobante" validate:"omitempty,oneof=EMAIL NINGUNO"`
	Email            string           `json:"email"             validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ComprobanteRef struct {
	Serie  string `json:"serie"`
	Numero string `json:"numero"`
}

// PagoResponse is the full settlement breakdown for a recorded payment.
type PagoResponse struct {
	PagoID           string          `json:"pago_id"`
	Numero           int64           `json:"numero"`
	CuotaID          string          `json:"cuota_id"`
	MoraCalculada    decimal.Decimal `json:"mora_calculada"`
	TotalDebido      decimal.Decimal `json:"total_debido"`
	MontoSolicitado  decimal.Decimal `json:"monto_solicitado"`
	MontoCobrado     decimal.Decimal `json:"monto_cobrado"`
	RedondeoAjuste   decimal.Decimal `json:"redondeo_ajuste"`
	NuevoSaldo       decimal.Decimal `json:"nuevo_saldo"`
	CuotaPagada      bool            `json:"cuota_pagada"`
	EsPagoParcial    bool            `json:"es_pago_parcial"`
	MedioPago        string          `json:"medio_pago"`
	CanalComprobante *string         `json:"canal_comprobante"`
	EmailDestino     *string         `json:"email_destino"`
	Comprobante      ComprobanteRef  `json:"comprobante"`
	// ResultadoEnvio reports the delivery enqueue outcome ("ENCOLADO") or nil.
	// Delivery is best-effort: it never affects the already-committed payment.
	ResultadoEnvio *string `json:"resultado_envio"`
}

type PagoHistorialItem struct {
	PagoID         string          `json:"pago_id"`
	Numero         int64           `json:"numero"`
	FechaPago      string          `json:"fecha_pago"`
	MontoPagado    decimal.Decimal `json:"monto_pagado"`
	MedioPago      string          `json:"medio_pago"`
	RedondeoAjuste decimal.Decimal `json:"redondeo_ajuste"`
}
