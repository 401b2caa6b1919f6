package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Prestamo is a loan split into equal installments at creation time.
// The schedule is generated once and never regenerated.
type Prestamo struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	MontoTotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FechaInicio time.Time       `gorm:"type:date;not null"`
	CreatedAt   time.Time

	Cuotas []Cuota `gorm:"foreignKey:PrestamoID"`
}

// Cuota is a scheduled payment obligation.
// Invariant: 0 <= SaldoPendiente <= MontoCuota, and Pagada iff SaldoPendiente == 0.
// Cuotas are mutated only by applied payments and never deleted.
type Cuota struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PrestamoID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	NumeroCuota      int             `gorm:"not null"`
	FechaVencimiento time.Time       `gorm:"type:date;not null"`
	MontoCuota       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SaldoPendiente   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Pagada           bool            `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
