package repository

import (
	"context"

	"credicaja/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PagoRepository is append-only: pagos are created, never updated or deleted.
type PagoRepository interface {
	DB() *gorm.DB
	CreateTx(tx *gorm.DB, p *model.Pago) error
	NextNumero(ctx context.Context, tx *gorm.DB) (int64, error)
	ListByCuota(ctx context.Context, cuotaID uuid.UUID) ([]model.Pago, error)
}

type pagoRepo struct{ db *gorm.DB }

func NewPagoRepository(db *gorm.DB) PagoRepository { return &pagoRepo{db: db} }

func (r *pagoRepo) DB() *gorm.DB { return r.db }

func (r *pagoRepo) CreateTx(tx *gorm.DB, p *model.Pago) error {
	return tx.Create(p).Error
}

func (r *pagoRepo) NextNumero(ctx context.Context, tx *gorm.DB) (int64, error) {
	// PostgreSQL sequence guarantees gap-free-enough, collision-free numbering
	var num int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('pagos_numero_seq')").Scan(&num).Error
	return num, err
}

func (r *pagoRepo) ListByCuota(ctx context.Context, cuotaID uuid.UUID) ([]model.Pago, error) {
	var pagos []model.Pago
	err := r.db.WithContext(ctx).
		Where("cuota_id = ?", cuotaID).
		Order("fecha_pago DESC").
		Find(&pagos).Error
	return pagos, err
}
