package service

import (
	"context"
	"errors"
	"time"

	"credicaja/internal/dto"
	"credicaja/internal/model"
	"credicaja/internal/money"
	"credicaja/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	maxMontoPrestamo = 20000
	maxNumCuotas     = 24
	diasEntreCuotas  = 30
)

type PrestamoService interface {
	Crear(ctx context.Context, req dto.CrearPrestamoRequest) (*dto.PrestamoResponse, error)
	PorCliente(ctx context.Context, clienteID uuid.UUID) (*dto.PrestamoClienteResponse, error)
}

type prestamoService struct {
	repo        repository.PrestamoRepository
	clienteRepo repository.ClienteRepository
	now         func() time.Time
}

func NewPrestamoService(repo repository.PrestamoRepository, clienteRepo repository.ClienteRepository) PrestamoService {
	return &prestamoService{repo: repo, clienteRepo: clienteRepo, now: time.Now}
}

// Crear validates limits, generates the equal-split schedule and persists the
// loan with all its cuotas in one shot. The schedule is immutable afterwards.
func (s *prestamoService) Crear(ctx context.Context, req dto.CrearPrestamoRequest) (*dto.PrestamoResponse, error) {
	monto := *req.MontoTotal
	if !monto.IsPositive() {
		return nil, ErrMontoInvalido
	}
	if monto.GreaterThan(decimal.NewFromInt(maxMontoPrestamo)) {
		return nil, ErrMontoMaximo
	}
	if req.NumCuotas < 1 || req.NumCuotas > maxNumCuotas {
		return nil, ErrNumCuotasInvalido
	}

	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, ErrClienteNoEncontrado
	}
	if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClienteNoEncontrado
		}
		return nil, err
	}

	activo, err := s.repo.TienePrestamoActivo(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	if activo {
		return nil, ErrPrestamoActivo
	}

	montoTotal := money.Round2(monto)
	montoCuota := money.Round2(montoTotal.Div(decimal.NewFromInt(int64(req.NumCuotas))))

	inicio := s.now()
	cuotas := make([]model.Cuota, 0, req.NumCuotas)
	vencimiento := inicio
	for i := 1; i <= req.NumCuotas; i++ {
		vencimiento = vencimiento.AddDate(0, 0, diasEntreCuotas)
		cuotas = append(cuotas, model.Cuota{
			NumeroCuota:      i,
			FechaVencimiento: vencimiento,
			MontoCuota:       montoCuota,
			SaldoPendiente:   montoCuota,
		})
	}

	prestamo := &model.Prestamo{
		ClienteID:   clienteID,
		MontoTotal:  montoTotal,
		FechaInicio: inicio,
		Cuotas:      cuotas,
	}
	if err := s.repo.Create(ctx, prestamo); err != nil {
		return nil, err
	}

	return &dto.PrestamoResponse{
		PrestamoID:    prestamo.ID.String(),
		ClienteID:     clienteID.String(),
		MontoTotal:    montoTotal,
		NumCuotas:     req.NumCuotas,
		MontoPorCuota: montoCuota,
		FechaInicio:   inicio.Format("2006-01-02"),
		Cronograma:    cuotasToResponse(prestamo.Cuotas),
	}, nil
}

func (s *prestamoService) PorCliente(ctx context.Context, clienteID uuid.UUID) (*dto.PrestamoClienteResponse, error) {
	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClienteNoEncontrado
	}
	if err != nil {
		return nil, err
	}

	prestamo, err := s.repo.FindByCliente(ctx, clienteID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClienteSinPrestamo
	}
	if err != nil {
		return nil, err
	}

	return &dto.PrestamoClienteResponse{
		PrestamoID:    prestamo.ID.String(),
		ClienteID:     cliente.ID.String(),
		ClienteNombre: cliente.Nombre,
		ClienteEmail:  cliente.Email,
		MontoTotal:    prestamo.MontoTotal,
		FechaInicio:   prestamo.FechaInicio.Format("2006-01-02"),
		Cuotas:        cuotasToResponse(prestamo.Cuotas),
	}, nil
}

func cuotasToResponse(cuotas []model.Cuota) []dto.CuotaResponse {
	out := make([]dto.CuotaResponse, 0, len(cuotas))
	for _, c := range cuotas {
		out = append(out, dto.CuotaResponse{
			CuotaID:          c.ID.String(),
			NumeroCuota:      c.NumeroCuota,
			FechaVencimiento: c.FechaVencimiento.Format("2006-01-02"),
			MontoCuota:       c.MontoCuota,
			SaldoPendiente:   c.SaldoPendiente,
			Pagada:           c.Pagada,
		})
	}
	return out
}
