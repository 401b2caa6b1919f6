package repository

import (
	"context"

	"credicaja/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CajaRepository interface {
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
	CreateSesionTx(tx *gorm.DB, s *model.SesionCaja) error
	UpdateSesionTx(tx *gorm.DB, s *model.SesionCaja) error
	// FindAbierta returns the open session, or gorm.ErrRecordNotFound.
	FindAbierta(ctx context.Context) (*model.SesionCaja, error)
	FindAbiertaTx(tx *gorm.DB) (*model.SesionCaja, error)
	// FindAbiertaShareTx takes a share lock on the open session row. Payments
	// hold it until they commit, so a concurrent close (which locks the row
	// FOR UPDATE) serializes against in-flight payments and vice versa.
	FindAbiertaShareTx(tx *gorm.DB) (*model.SesionCaja, error)
	// FindUltima returns the most recently opened session regardless of state,
	// so callers can tell "no session ever" apart from "latest is closed".
	FindUltima(ctx context.Context) (*model.SesionCaja, error)
	// FindUltimaForUpdateTx is the close-path variant: it locks the session
	// row for the duration of the transaction.
	FindUltimaForUpdateTx(tx *gorm.DB) (*model.SesionCaja, error)
	// SumPagosPorMedio aggregates collected amounts for the session, grouped
	// by payment channel. Only channels with at least one payment appear.
	SumPagosPorMedio(ctx context.Context, sesionID uuid.UUID) (map[string]decimal.Decimal, error)
	SumPagosPorMedioTx(tx *gorm.DB, sesionID uuid.UUID) (map[string]decimal.Decimal, error)
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) DB() *gorm.DB { return r.db }

func (r *cajaRepo) CreateSesionTx(tx *gorm.DB, s *model.SesionCaja) error {
	return tx.Create(s).Error
}

func (r *cajaRepo) UpdateSesionTx(tx *gorm.DB, s *model.SesionCaja) error {
	return tx.Save(s).Error
}

func (r *cajaRepo) FindAbierta(ctx context.Context) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := r.db.WithContext(ctx).Where("cerrado = false").First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cajaRepo) FindAbiertaTx(tx *gorm.DB) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := tx.Where("cerrado = false").First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cajaRepo) FindAbiertaShareTx(tx *gorm.DB) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
		Where("cerrado = false").First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// id DESC breaks ties between sessions opened in the same instant.
func (r *cajaRepo) FindUltima(ctx context.Context) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := r.db.WithContext(ctx).Order("fecha_apertura DESC, id DESC").First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cajaRepo) FindUltimaForUpdateTx(tx *gorm.DB) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("fecha_apertura DESC, id DESC").First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cajaRepo) SumPagosPorMedio(ctx context.Context, sesionID uuid.UUID) (map[string]decimal.Decimal, error) {
	return sumPagosPorMedio(r.db.WithContext(ctx), sesionID)
}

func (r *cajaRepo) SumPagosPorMedioTx(tx *gorm.DB, sesionID uuid.UUID) (map[string]decimal.Decimal, error) {
	return sumPagosPorMedio(tx, sesionID)
}

func sumPagosPorMedio(q *gorm.DB, sesionID uuid.UUID) (map[string]decimal.Decimal, error) {
	type row struct {
		MedioPago string
		Total     decimal.Decimal
	}
	var rows []row
	err := q.
		Model(&model.Pago{}).
		Select("medio_pago, COALESCE(SUM(monto_pagado), 0) AS total").
		Where("sesion_caja_id = ?", sesionID).
		Group("medio_pago").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sums := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		sums[r.MedioPago] = r.Total
	}
	return sums, nil
}
