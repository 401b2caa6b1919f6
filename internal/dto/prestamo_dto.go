package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearPrestamoRequest struct {
	ClienteID  string           `json:"cliente_id"  validate:"required,uuid"`
	MontoTotal *decimal.Decimal `json:"monto_total" validate:"required"`
	NumCuotas  int              `json:"num_cuotas"  validate:"required,min=1,max=24"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CuotaResponse struct {
	CuotaID          string          `json:"cuota_id"`
	NumeroCuota      int             `json:"numero_cuota"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
	MontoCuota       decimal.Decimal `json:"monto_cuota"`
	SaldoPendiente   decimal.Decimal `json:"saldo_pendiente"`
	Pagada           bool            `json:"pagada"`
}

type PrestamoResponse struct {
	PrestamoID    string          `json:"prestamo_id"`
	ClienteID     string          `json:"cliente_id"`
	MontoTotal    decimal.Decimal `json:"monto_total"`
	NumCuotas     int             `json:"num_cuotas"`
	MontoPorCuota decimal.Decimal `json:"monto_por_cuota"`
	FechaInicio   string          `json:"fecha_inicio"`
	Cronograma    []CuotaResponse `json:"cronograma"`
}

type PrestamoClienteResponse struct {
	PrestamoID    string          `json:"prestamo_id"`
	ClienteID     string          `json:"cliente_id"`
	ClienteNombre string          `json:"cliente_nombre"`
	ClienteEmail  *string         `json:"cliente_email"`
	MontoTotal    decimal.Decimal `json:"monto_total"`
	FechaInicio   string          `json:"fecha_inicio"`
	Cuotas        []CuotaResponse `json:"cuotas"`
}
