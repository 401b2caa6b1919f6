package service

import (
	"context"
	"errors"
	"time"

	"credicaja/internal/dto"
	"credicaja/internal/model"
	"credicaja/internal/money"
	"credicaja/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CajaService interface {
	Abrir(ctx context.Context, montoInicial decimal.Decimal) (*dto.AperturaCajaResponse, error)
	ResumenActual(ctx context.Context) (*dto.ResumenCajaResponse, error)
	Cerrar(ctx context.Context, totalReal decimal.Decimal) (*dto.CierreCajaResponse, error)
	// SesionAbierta returns the open session, or ErrCajaNoAbierta. The payment
	// flow uses it as its pre-flight gate.
	SesionAbierta(ctx context.Context) (*model.SesionCaja, error)
	// SesionAbiertaTx re-checks the open session inside a transaction, taking
	// a share lock on its row. A close committing between the pre-flight gate
	// and the payment transaction makes this fail instead of letting the
	// payment land on a closed drawer.
	SesionAbiertaTx(tx *gorm.DB) (*model.SesionCaja, error)
}

type cajaService struct {
	repo repository.CajaRepository
	now  func() time.Time
}

func NewCajaService(repo repository.CajaRepository) CajaService {
	return &cajaService{repo: repo, now: time.Now}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// Abrir opens a new session. The existence check and the insert share one
// transaction; the partial unique index on sesion_cajas backs the same
// invariant at the database level, so concurrent opens cannot both win.
func (s *cajaService) Abrir(ctx context.Context, montoInicial decimal.Decimal) (*dto.AperturaCajaResponse, error) {
	if montoInicial.IsNegative() {
		return nil, ErrMontoInvalido
	}

	var sesion *model.SesionCaja
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.repo.FindAbiertaTx(tx); err == nil {
			return ErrCajaYaAbierta
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		sesion = &model.SesionCaja{
			FechaApertura: s.now(),
			MontoInicial:  money.Round2(montoInicial),
		}
		return s.repo.CreateSesionTx(tx, sesion)
	})
	if err != nil {
		return nil, err
	}

	return &dto.AperturaCajaResponse{
		CajaID:        sesion.ID.String(),
		FechaApertura: sesion.FechaApertura.Format(time.RFC3339),
		MontoInicial:  sesion.MontoInicial,
	}, nil
}

// resumenSesion holds the computed per-channel breakdown for an open session.
type resumenSesion struct {
	sesion   *model.SesionCaja
	efectivo decimal.Decimal
	tarjeta  decimal.Decimal
	yape     decimal.Decimal
	plin     decimal.Decimal
	teorico  decimal.Decimal
}

// validarSesionParaResumen maps load outcomes to the caja state errors:
// no session ever → ErrCajaNoExiste, latest closed → ErrCajaCerrada.
func validarSesionParaResumen(sesion *model.SesionCaja, err error) (*model.SesionCaja, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCajaNoExiste
	}
	if err != nil {
		return nil, err
	}
	if sesion.Cerrado {
		return nil, ErrCajaCerrada
	}
	return sesion, nil
}

// calcularResumen loads the latest session, rejects absent/closed states and
// recomputes the theoretical total from persisted pagos. Always derived from
// the payment rows, never from running counters.
func (s *cajaService) calcularResumen(ctx context.Context) (*resumenSesion, error) {
	sesion, err := validarSesionParaResumen(s.repo.FindUltima(ctx))
	if err != nil {
		return nil, err
	}
	sums, err := s.repo.SumPagosPorMedio(ctx, sesion.ID)
	if err != nil {
		return nil, err
	}
	return armarResumen(sesion, sums), nil
}

// calcularResumenTx is the close-path variant: it locks the session row and
// aggregates through the same transaction, so no payment can commit between
// the sum and the final update.
func (s *cajaService) calcularResumenTx(tx *gorm.DB) (*resumenSesion, error) {
	sesion, err := validarSesionParaResumen(s.repo.FindUltimaForUpdateTx(tx))
	if err != nil {
		return nil, err
	}
	sums, err := s.repo.SumPagosPorMedioTx(tx, sesion.ID)
	if err != nil {
		return nil, err
	}
	return armarResumen(sesion, sums), nil
}

func armarResumen(sesion *model.SesionCaja, sums map[string]decimal.Decimal) *resumenSesion {
	r := &resumenSesion{
		sesion:   sesion,
		efectivo: money.Round2(sums[model.MedioEfectivo]),
		tarjeta:  money.Round2(sums[model.MedioTarjeta]),
		yape:     money.Round2(sums[model.MedioYape]),
		plin:     money.Round2(sums[model.MedioPlin]),
	}
	// Only cash lives in the physical drawer together with the opening float;
	// digital channels are reported per channel and included in the theoretical
	// total the operator reconciles against.
	r.teorico = money.Round2(sesion.MontoInicial.
		Add(r.efectivo).
		Add(r.tarjeta).
		Add(r.yape).
		Add(r.plin))
	return r
}

func (s *cajaService) ResumenActual(ctx context.Context) (*dto.ResumenCajaResponse, error) {
	r, err := s.calcularResumen(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ResumenCajaResponse{
		CajaID:        r.sesion.ID.String(),
		FechaApertura: r.sesion.FechaApertura.Format(time.RFC3339),
		MontoInicial:  r.sesion.MontoInicial,
		TotalEfectivo: r.efectivo,
		TotalTarjeta:  r.tarjeta,
		TotalYape:     r.yape,
		TotalPlin:     r.plin,
		TotalTeorico:  r.teorico,
	}, nil
}

// Cerrar reconciles the declared total against the theoretical total and
// closes the session only on exact match. The session row stays locked from
// the aggregate to the final update, so close serializes against in-flight
// payments. Amounts are fixed-point with two decimals end to end, so equality
// here is exact, not approximate. On mismatch nothing is written: the session
// stays open and the error carries the breakdown.
func (s *cajaService) Cerrar(ctx context.Context, totalReal decimal.Decimal) (*dto.CierreCajaResponse, error) {
	var resp *dto.CierreCajaResponse
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		r, err := s.calcularResumenTx(tx)
		if err != nil {
			return err
		}

		real := money.Round2(totalReal)
		diferencia := money.Round2(real.Sub(r.teorico))
		if !diferencia.IsZero() {
			return &CajaDescuadradaError{
				TotalTeorico: r.teorico,
				TotalReal:    real,
				Diferencia:   diferencia,
			}
		}

		ahora := s.now()
		sesion := r.sesion
		sesion.TotalEfectivo = &r.efectivo
		sesion.TotalTarjeta = &r.tarjeta
		sesion.TotalYape = &r.yape
		sesion.TotalPlin = &r.plin
		sesion.TotalTeorico = &r.teorico
		sesion.TotalReal = &real
		sesion.Diferencia = &diferencia
		sesion.Cerrado = true
		sesion.FechaCierre = &ahora

		if err := s.repo.UpdateSesionTx(tx, sesion); err != nil {
			return err
		}

		resp = &dto.CierreCajaResponse{
			Mensaje:      "Caja cerrada correctamente",
			CajaID:       sesion.ID.String(),
			TotalTeorico: r.teorico,
			TotalReal:    real,
			Diferencia:   diferencia,
			FechaCierre:  ahora.Format(time.RFC3339),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *cajaService) SesionAbierta(ctx context.Context) (*model.SesionCaja, error) {
	sesion, err := s.repo.FindAbierta(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCajaNoAbierta
	}
	if err != nil {
		return nil, err
	}
	return sesion, nil
}

func (s *cajaService) SesionAbiertaTx(tx *gorm.DB) (*model.SesionCaja, error) {
	sesion, err := s.repo.FindAbiertaShareTx(tx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCajaNoAbierta
	}
	if err != nil {
		return nil, err
	}
	return sesion, nil
}
