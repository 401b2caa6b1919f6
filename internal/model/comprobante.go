package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SerieComprobante is the single emission series used by the register.
const SerieComprobante = "F001"

// Comprobante is the receipt emitted 1:1 for every Pago, in the same
// transaction. Numero is the payment's sequence number zero-padded to eight
// digits — a deterministic, injective function of the payment, so there is
// no separate counter to drift or collide.
type Comprobante struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PagoID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Serie         string          `gorm:"type:varchar(10);not null"`
	Numero        string          `gorm:"type:varchar(10);not null"`
	ClienteNombre string          `gorm:"not null"`
	Concepto      string          `gorm:"not null"`
	TotalPagado   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EnviadoPor    string          `gorm:"type:varchar(20);not null"`
	CreatedAt     time.Time
}
