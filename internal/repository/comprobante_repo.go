package repository

import (
	"context"

	"credicaja/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComprobanteRepository interface {
	CreateTx(tx *gorm.DB, c *model.Comprobante) error
	FindByPagoID(ctx context.Context, pagoID uuid.UUID) (*model.Comprobante, error)
}

type comprobanteRepo struct{ db *gorm.DB }

func NewComprobanteRepository(db *gorm.DB) ComprobanteRepository {
	return &comprobanteRepo{db: db}
}

func (r *comprobanteRepo) CreateTx(tx *gorm.DB, c *model.Comprobante) error {
	return tx.Create(c).Error
}

func (r *comprobanteRepo) FindByPagoID(ctx context.Context, pagoID uuid.UUID) (*model.Comprobante, error) {
	var c model.Comprobante
	err := r.db.WithContext(ctx).Where("pago_id = ?", pagoID).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}
