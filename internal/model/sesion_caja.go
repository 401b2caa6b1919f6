package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SesionCaja represents one cash-drawer lifecycle: opened once, closed once.
// At most one row may have Cerrado = false at any time (enforced by a partial
// unique index, see infra.applySchemaPatches).
//
// The closing fields are nil while the session is open and are populated
// atomically on close. A closed session is immutable history.
type SesionCaja struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FechaApertura time.Time       `gorm:"not null"`
	MontoInicial  decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	TotalEfectivo *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalTarjeta  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalYape     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalPlin     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalTeorico  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalReal     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Diferencia    *decimal.Decimal `gorm:"type:decimal(12,2)"`

	Cerrado     bool `gorm:"not null;default:false"`
	FechaCierre *time.Time
}
