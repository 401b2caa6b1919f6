package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MedioPago is a closed enumeration validated at payment creation time, so
// caja aggregation can assume every persisted channel is one of these four.
const (
	MedioEfectivo = "EFECTIVO"
	MedioTarjeta  = "TARJETA"
	MedioYape     = "YAPE"
	MedioPlin     = "PLIN"
)

// Pago is an accepted payment transaction. Rows are append-only: a Pago is
// NEVER updated or deleted after creation.
//
// Numero comes from the pagos_numero_seq sequence and drives the comprobante
// numbering. SesionCajaID links the payment to the register session that was
// open when it was recorded, so session totals aggregate by foreign key
// instead of comparing timestamps.
type Pago struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero         int64           `gorm:"not null;uniqueIndex"`
	CuotaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	SesionCajaID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	FechaPago      time.Time       `gorm:"not null"`
	MontoPagado    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MedioPago      string          `gorm:"type:varchar(20);not null"`
	RedondeoAjuste decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt      time.Time
}
