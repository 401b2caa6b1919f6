package repository

import (
	"context"

	"credicaja/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PrestamoRepository interface {
	DB() *gorm.DB
	// Create persists the loan and its full schedule in one shot.
	Create(ctx context.Context, p *model.Prestamo) error
	FindByCliente(ctx context.Context, clienteID uuid.UUID) (*model.Prestamo, error)
	// TienePrestamoActivo reports whether the client has any unpaid cuota.
	TienePrestamoActivo(ctx context.Context, clienteID uuid.UUID) (bool, error)
	FindCuotaByID(ctx context.Context, id uuid.UUID) (*model.Cuota, error)
	// FindCuotaForUpdate re-reads the cuota inside tx with a row lock, so two
	// concurrent payments cannot both settle against the same stale balance.
	FindCuotaForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Cuota, error)
	UpdateCuotaSaldoTx(tx *gorm.DB, id uuid.UUID, nuevoSaldo decimal.Decimal, pagada bool) error
	// FindClienteByCuota resolves the owning client through prestamo → cliente.
	FindClienteByCuota(ctx context.Context, cuotaID uuid.UUID) (*model.Cliente, error)
}

type prestamoRepo struct{ db *gorm.DB }

func NewPrestamoRepository(db *gorm.DB) PrestamoRepository { return &prestamoRepo{db: db} }

func (r *prestamoRepo) DB() *gorm.DB { return r.db }

func (r *prestamoRepo) Create(ctx context.Context, p *model.Prestamo) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *prestamoRepo) FindByCliente(ctx context.Context, clienteID uuid.UUID) (*model.Prestamo, error) {
	var p model.Prestamo
	err := r.db.WithContext(ctx).
		Preload("Cuotas", func(db *gorm.DB) *gorm.DB {
			return db.Order("numero_cuota ASC")
		}).
		Where("cliente_id = ?", clienteID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *prestamoRepo) TienePrestamoActivo(ctx context.Context, clienteID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Cuota{}).
		Joins("JOIN prestamos ON prestamos.id = cuotas.prestamo_id").
		Where("prestamos.cliente_id = ? AND cuotas.pagada = false", clienteID).
		Count(&count).Error
	return count > 0, err
}

func (r *prestamoRepo) FindCuotaByID(ctx context.Context, id uuid.UUID) (*model.Cuota, error) {
	var c model.Cuota
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *prestamoRepo) FindCuotaForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Cuota, error) {
	var c model.Cuota
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *prestamoRepo) UpdateCuotaSaldoTx(tx *gorm.DB, id uuid.UUID, nuevoSaldo decimal.Decimal, pagada bool) error {
	return tx.Model(&model.Cuota{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"saldo_pendiente": nuevoSaldo, "pagada": pagada}).Error
}

func (r *prestamoRepo) FindClienteByCuota(ctx context.Context, cuotaID uuid.UUID) (*model.Cliente, error) {
	var cliente model.Cliente
	err := r.db.WithContext(ctx).
		Joins("JOIN prestamos ON prestamos.cliente_id = clientes.id").
		Joins("JOIN cuotas ON cuotas.prestamo_id = prestamos.id").
		Where("cuotas.id = ?", cuotaID).
		First(&cliente).Error
	if err != nil {
		return nil, err
	}
	return &cliente, nil
}
