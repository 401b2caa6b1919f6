package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"credicaja/internal/dto"
	"credicaja/internal/model"
	"credicaja/internal/money"
	"credicaja/internal/repository"
	"credicaja/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CanalEmail   = "EMAIL"
	CanalNinguno = "NINGUNO"

	ResultadoEncolado = "ENCOLADO"
)

type PagoService interface {
	RegistrarPago(ctx context.Context, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error)
	Historial(ctx context.Context, cuotaID uuid.UUID) ([]dto.PagoHistorialItem, error)
}

type pagoService struct {
	pagoRepo        repository.PagoRepository
	prestamoRepo    repository.PrestamoRepository
	comprobanteRepo repository.ComprobanteRepository
	caja            CajaService
	dispatcher      *worker.Dispatcher
	now             func() time.Time
}

func NewPagoService(
	pagoRepo repository.PagoRepository,
	prestamoRepo repository.PrestamoRepository,
	comprobanteRepo repository.ComprobanteRepository,
	caja CajaService,
	dispatcher *worker.Dispatcher,
) PagoService {
	return &pagoService{
		pagoRepo:        pagoRepo,
		prestamoRepo:    prestamoRepo,
		comprobanteRepo: comprobanteRepo,
		caja:            caja,
		dispatcher:      dispatcher,
		now:             time.Now,
	}
}

// ── RegistrarPago ─────────────────────────────────────────────────────────────
// Full settlement pipeline:
//   1. Open-session gate (no payment outside an open caja)
//   2. Pre-flight: validate amount, resolve client (outside TX)
//   3. BEGIN TX: re-verify the session under a share lock, lock cuota row,
//      compute mora + total debido, reject excess, apply cash rounding,
//      nextval numero, create pago, update saldo, create comprobante
//   4. COMMIT
//   5. (async) enqueue receipt email — never affects the committed payment

func (s *pagoService) RegistrarPago(ctx context.Context, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error) {
	monto := *req.MontoPagado
	if !monto.IsPositive() {
		return nil, ErrMontoInvalido
	}
	canal := req.CanalComprobante
	if canal == "" {
		canal = CanalNinguno
	}

	cuotaID, err := uuid.Parse(req.CuotaID)
	if err != nil {
		return nil, ErrCuotaNoEncontrada
	}

	if _, err := s.caja.SesionAbierta(ctx); err != nil {
		return nil, err
	}

	cliente, err := s.prestamoRepo.FindClienteByCuota(ctx, cuotaID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCuotaNoEncontrada
	}
	if err != nil {
		return nil, err
	}

	var (
		pago       *model.Pago
		cuota      *model.Cuota
		mora       decimal.Decimal
		total      decimal.Decimal
		nuevoSaldo decimal.Decimal
		pagada     bool
		ajuste     decimal.Decimal
		cobrado    decimal.Decimal
	)

	err = runTx(ctx, s.pagoRepo.DB(), func(tx *gorm.DB) error {
		// The pre-flight gate is only advisory: the session could have closed
		// since. The share lock here is authoritative and blocks a concurrent
		// close until this payment commits.
		sesion, err := s.caja.SesionAbiertaTx(tx)
		if err != nil {
			return err
		}

		// Row lock: two concurrent payments against the same cuota serialize
		// here and the second one settles against the updated balance.
		cuota, err = s.prestamoRepo.FindCuotaForUpdate(tx, cuotaID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCuotaNoEncontrada
		}
		if err != nil {
			return err
		}

		vencida := EsVencida(cuota.FechaVencimiento, s.now())
		mora = CalcularMora(cuota.SaldoPendiente, vencida)
		total = money.Round2(cuota.SaldoPendiente.Add(mora))

		if monto.GreaterThan(total) {
			return &MontoExcedeDeudaError{TotalDebido: total}
		}

		cobrado, ajuste = AplicarRedondeo(monto, req.MedioPago)

		numero, err := s.pagoRepo.NextNumero(ctx, tx)
		if err != nil {
			return err
		}

		pago = &model.Pago{
			Numero:         numero,
			CuotaID:        cuota.ID,
			SesionCajaID:   sesion.ID,
			FechaPago:      s.now(),
			MontoPagado:    cobrado,
			MedioPago:      req.MedioPago,
			RedondeoAjuste: ajuste,
		}
		if err := s.pagoRepo.CreateTx(tx, pago); err != nil {
			return err
		}

		nuevoSaldo = money.Round2(cuota.SaldoPendiente.Sub(cobrado))
		if nuevoSaldo.IsNegative() {
			nuevoSaldo = decimal.Zero
		}
		pagada = nuevoSaldo.IsZero()
		if err := s.prestamoRepo.UpdateCuotaSaldoTx(tx, cuota.ID, nuevoSaldo, pagada); err != nil {
			return err
		}

		comprobante := &model.Comprobante{
			PagoID:        pago.ID,
			Serie:         model.SerieComprobante,
			Numero:        NumeroComprobante(numero),
			ClienteNombre: cliente.Nombre,
			Concepto:      fmt.Sprintf("Pago cuota %d", cuota.NumeroCuota),
			TotalPagado:   cobrado,
			EnviadoPor:    canal,
		}
		return s.comprobanteRepo.CreateTx(tx, comprobante)
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.PagoResponse{
		PagoID:           pago.ID.String(),
		Numero:           pago.Numero,
		CuotaID:          cuota.ID.String(),
		MoraCalculada:    mora,
		TotalDebido:      total,
		MontoSolicitado:  money.Round2(monto),
		MontoCobrado:     cobrado,
		RedondeoAjuste:   ajuste,
		NuevoSaldo:       nuevoSaldo,
		CuotaPagada:      pagada,
		EsPagoParcial:    !pagada,
		MedioPago:        pago.MedioPago,
		CanalComprobante: &canal,
		Comprobante: dto.ComprobanteRef{
			Serie:  model.SerieComprobante,
			Numero: NumeroComprobante(pago.Numero),
		},
	}
	if req.Email != "" {
		resp.EmailDestino = &req.Email
	}

	// Delivery wants both the channel and a target: EMAIL without an address
	// records the payment and skips the send.
	if canal == CanalEmail && req.Email != "" && s.dispatcher != nil {
		payload := worker.ComprobanteEmailPayload{
			ToEmail:        req.Email,
			Serie:          model.SerieComprobante,
			Numero:         NumeroComprobante(pago.Numero),
			ClienteNombre:  cliente.Nombre,
			Documento:      cliente.Documento,
			Concepto:       fmt.Sprintf("Pago cuota %d", cuota.NumeroCuota),
			MedioPago:      pago.MedioPago,
			MontoCobrado:   cobrado,
			RedondeoAjuste: ajuste,
			NuevoSaldo:     nuevoSaldo,
			EsPagoParcial:  !pagada,
			Fecha:          pago.FechaPago.Format("2006-01-02 15:04"),
		}
		if err := s.dispatcher.EnqueueComprobanteEmail(ctx, payload); err != nil {
			log.Error().Err(err).Int64("numero", pago.Numero).Msg("pago: failed to enqueue comprobante email")
		} else {
			resultado := ResultadoEncolado
			resp.ResultadoEnvio = &resultado
		}
	}

	return resp, nil
}

func (s *pagoService) Historial(ctx context.Context, cuotaID uuid.UUID) ([]dto.PagoHistorialItem, error) {
	if _, err := s.prestamoRepo.FindCuotaByID(ctx, cuotaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCuotaNoEncontrada
		}
		return nil, err
	}

	pagos, err := s.pagoRepo.ListByCuota(ctx, cuotaID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PagoHistorialItem, 0, len(pagos))
	for _, p := range pagos {
		items = append(items, dto.PagoHistorialItem{
			PagoID:         p.ID.String(),
			Numero:         p.Numero,
			FechaPago:      p.FechaPago.Format(time.RFC3339),
			MontoPagado:    p.MontoPagado,
			MedioPago:      p.MedioPago,
			RedondeoAjuste: p.RedondeoAjuste,
		})
	}
	return items, nil
}
