package service

import (
	"context"
	"testing"
	"time"

	"credicaja/internal/dto"
	"credicaja/internal/model"
	"credicaja/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ────────────────────────────────────────────────────────────────────

type stubPagoRepo struct {
	pagos  []*model.Pago
	numero int64
}

func (r *stubPagoRepo) DB() *gorm.DB { return nil }

func (r *stubPagoRepo) CreateTx(_ *gorm.DB, p *model.Pago) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.pagos = append(r.pagos, p)
	return nil
}

func (r *stubPagoRepo) NextNumero(_ context.Context, _ *gorm.DB) (int64, error) {
	r.numero++
	return r.numero, nil
}

func (r *stubPagoRepo) ListByCuota(_ context.Context, cuotaID uuid.UUID) ([]model.Pago, error) {
	var out []model.Pago
	for _, p := range r.pagos {
		if p.CuotaID == cuotaID {
			out = append(out, *p)
		}
	}
	return out, nil
}

var _ repository.PagoRepository = (*stubPagoRepo)(nil)

type stubPrestamoRepo struct {
	cuotas    map[uuid.UUID]*model.Cuota
	clientes  map[uuid.UUID]*model.Cliente  // keyed by cuota ID
	prestamos map[uuid.UUID]*model.Prestamo // keyed by cliente ID
	activo    bool
}

func newStubPrestamoRepo() *stubPrestamoRepo {
	return &stubPrestamoRepo{
		cuotas:    make(map[uuid.UUID]*model.Cuota),
		clientes:  make(map[uuid.UUID]*model.Cliente),
		prestamos: make(map[uuid.UUID]*model.Prestamo),
	}
}

func (r *stubPrestamoRepo) DB() *gorm.DB { return nil }

func (r *stubPrestamoRepo) Create(_ context.Context, p *model.Prestamo) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Cuotas {
		if p.Cuotas[i].ID == uuid.Nil {
			p.Cuotas[i].ID = uuid.New()
		}
		p.Cuotas[i].PrestamoID = p.ID
		r.cuotas[p.Cuotas[i].ID] = &p.Cuotas[i]
	}
	r.prestamos[p.ClienteID] = p
	return nil
}

func (r *stubPrestamoRepo) FindByCliente(_ context.Context, clienteID uuid.UUID) (*model.Prestamo, error) {
	p, ok := r.prestamos[clienteID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPrestamoRepo) TienePrestamoActivo(_ context.Context, _ uuid.UUID) (bool, error) {
	return r.activo, nil
}

func (r *stubPrestamoRepo) FindCuotaByID(_ context.Context, id uuid.UUID) (*model.Cuota, error) {
	c, ok := r.cuotas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubPrestamoRepo) FindCuotaForUpdate(_ *gorm.DB, id uuid.UUID) (*model.Cuota, error) {
	return r.FindCuotaByID(context.Background(), id)
}

func (r *stubPrestamoRepo) UpdateCuotaSaldoTx(_ *gorm.DB, id uuid.UUID, nuevoSaldo decimal.Decimal, pagada bool) error {
	c, ok := r.cuotas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.SaldoPendiente = nuevoSaldo
	c.Pagada = pagada
	return nil
}

func (r *stubPrestamoRepo) FindClienteByCuota(_ context.Context, cuotaID uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[cuotaID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

var _ repository.PrestamoRepository = (*stubPrestamoRepo)(nil)

type stubComprobanteRepo struct {
	comprobantes []*model.Comprobante
}

func (r *stubComprobanteRepo) CreateTx(_ *gorm.DB, c *model.Comprobante) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.comprobantes = append(r.comprobantes, c)
	return nil
}

func (r *stubComprobanteRepo) FindByPagoID(_ context.Context, pagoID uuid.UUID) (*model.Comprobante, error) {
	for _, c := range r.comprobantes {
		if c.PagoID == pagoID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

var _ repository.ComprobanteRepository = (*stubComprobanteRepo)(nil)

// ── Fixture ──────────────────────────────────────────────────────────────────

type pagoFixture struct {
	svc          *pagoService
	pagoRepo     *stubPagoRepo
	prestamoRepo *stubPrestamoRepo
	compRepo     *stubComprobanteRepo
	cajaRepo     *stubCajaRepo
	cuotaID      uuid.UUID
}

// newPagoFixture opens a caja and registers one cuota with the given balance
// and due date. The clock is pinned to 2024-02-01.
func newPagoFixture(t *testing.T, saldo, vencimiento string, abrirCaja bool) *pagoFixture {
	t.Helper()

	cajaRepo := newStubCajaRepo()
	cajaSvc := NewCajaService(cajaRepo)
	if abrirCaja {
		_, err := cajaSvc.Abrir(context.Background(), dec("100.00"))
		require.NoError(t, err)
	}

	prestamoRepo := newStubPrestamoRepo()
	cuotaID := uuid.New()
	prestamoRepo.cuotas[cuotaID] = &model.Cuota{
		ID:               cuotaID,
		NumeroCuota:      1,
		FechaVencimiento: fecha(vencimiento),
		MontoCuota:       dec(saldo),
		SaldoPendiente:   dec(saldo),
	}
	email := "ana@example.com"
	prestamoRepo.clientes[cuotaID] = &model.Cliente{
		ID:        uuid.New(),
		Tipo:      TipoNatural,
		Nombre:    "Ana Torres",
		Documento: "12345678",
		Email:     &email,
	}

	pagoRepo := &stubPagoRepo{}
	compRepo := &stubComprobanteRepo{}

	svc := &pagoService{
		pagoRepo:        pagoRepo,
		prestamoRepo:    prestamoRepo,
		comprobanteRepo: compRepo,
		caja:            cajaSvc,
		now:             func() time.Time { return fecha("2024-02-01") },
	}

	return &pagoFixture{
		svc:          svc,
		pagoRepo:     pagoRepo,
		prestamoRepo: prestamoRepo,
		compRepo:     compRepo,
		cajaRepo:     cajaRepo,
		cuotaID:      cuotaID,
	}
}

func (f *pagoFixture) registrar(monto, medio string) (*dto.PagoResponse, error) {
	m := dec(monto)
	return f.svc.RegistrarPago(context.Background(), dto.RegistrarPagoRequest{
		CuotaID:     f.cuotaID.String(),
		MontoPagado: &m,
		MedioPago:   medio,
	})
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestRegistrarPagoCompleto(t *testing.T) {
	f := newPagoFixture(t, "100.00", "2024-03-01", true)

	resp, err := f.registrar("100.00", model.MedioTarjeta)
	require.NoError(t, err)

	assert.Equal(t, "0.00", resp.MoraCalculada.StringFixed(2))
	assert.Equal(t, "100.00", resp.TotalDebido.StringFixed(2))
	assert.Equal(t, "100.00", resp.MontoCobrado.StringFixed(2))
	assert.Equal(t, "0.00", resp.NuevoSaldo.StringFixed(2))
	assert.True(t, resp.CuotaPagada)
	assert.False(t, resp.EsPagoParcial)
	assert.Equal(t, int64(1), resp.Numero)
	assert.Equal(t, "F001", resp.Comprobante.Serie)
	assert.Equal(t, "00000001", resp.Comprobante.Numero)

	require.Len(t, f.pagoRepo.pagos, 1)
	pago := f.pagoRepo.pagos[0]
	assert.Equal(t, f.cajaRepo.sesiones[0].ID, pago.SesionCajaID)

	require.Len(t, f.compRepo.comprobantes, 1)
	assert.Equal(t, "Pago cuota 1", f.compRepo.comprobantes[0].Concepto)
	assert.Equal(t, CanalNinguno, f.compRepo.comprobantes[0].EnviadoPor)

	assert.True(t, f.prestamoRepo.cuotas[f.cuotaID].Pagada)
}

func TestRegistrarPagoSinCajaAbierta(t *testing.T) {
	f := newPagoFixture(t, "100.00", "2024-03-01", false)

	_, err := f.registrar("50.00", model.MedioEfectivo)
	assert.ErrorIs(t, err, ErrCajaNoAbierta)
	assert.Empty(t, f.pagoRepo.pagos)
	assert.Equal(t, "100.00", f.prestamoRepo.cuotas[f.cuotaID].SaldoPendiente.StringFixed(2))
}

func TestRegistrarPagoMontoExcedeDeuda(t *testing.T) {
	f := newPagoFixture(t, "100.00", "2024-03-01", true)

	_, err := f.registrar("150.00", model.MedioTarjeta)
	var excede *MontoExcedeDeudaError
	require.ErrorAs(t, err, &excede)
	assert.Equal(t, "100.00", excede.TotalDebido.StringFixed(2))

	// rejection writes nothing
	assert.Empty(t, f.pagoRepo.pagos)
	assert.Empty(t, f.compRepo.comprobantes)
	assert.Equal(t, "100.00", f.prestamoRepo.cuotas[f.cuotaID].SaldoPendiente.StringFixed(2))
}

func TestRegistrarPagoConMora(t *testing.T) {
	// due 2024-01-01, clock at 2024-02-01: overdue, mora = 1% of 1000
	f := newPagoFixture(t, "1000.00", "2024-01-01", true)

	resp, err := f.registrar("1010.00", model.MedioTarjeta)
	require.NoError(t, err)
	assert.Equal(t, "10.00", resp.MoraCalculada.StringFixed(2))
	assert.Equal(t, "1010.00", resp.TotalDebido.StringFixed(2))
	// the surcharge settles the cuota: balance floors at zero
	assert.Equal(t, "0.00", resp.NuevoSaldo.StringFixed(2))
	assert.True(t, resp.CuotaPagada)
}

func TestRegistrarPagoEfectivoRedondea(t *testing.T) {
	f := newPagoFixture(t, "100.00", "2024-03-01", true)

	resp, err := f.registrar("50.05", model.MedioEfectivo)
	require.NoError(t, err)
	assert.Equal(t, "50.05", resp.MontoSolicitado.StringFixed(2))
	assert.Equal(t, "50.10", resp.MontoCobrado.StringFixed(2))
	assert.Equal(t, "0.05", resp.RedondeoAjuste.StringFixed(2))
	assert.Equal(t, "49.90", resp.NuevoSaldo.StringFixed(2))
	assert.True(t, resp.EsPagoParcial)

	// the collected (rounded) amount is what lands in the caja
	assert.Equal(t, "50.10", f.pagoRepo.pagos[0].MontoPagado.StringFixed(2))
}

func TestRegistrarPagosParcialesHastaSaldar(t *testing.T) {
	f := newPagoFixture(t, "100.00", "2024-03-01", true)

	resp, err := f.registrar("40.00", model.MedioYape)
	require.NoError(t, err)
	assert.Equal(t, "60.00", resp.NuevoSaldo.StringFixed(2))
	assert.False(t, resp.CuotaPagada)

	resp, err = f.registrar("60.00", model.MedioPlin)
	require.NoError(t, err)
	assert.Equal(t, "0.00", resp.NuevoSaldo.StringFixed(2))
	assert.True(t, resp.CuotaPagada)
	assert.Equal(t, int64(2), resp.Numero)
	assert.Equal(t, "00000002", resp.Comprobante.Numero)
}

// EMAIL without an address: the payment settles and delivery is skipped.
func TestRegistrarPagoEmailSinDireccion(t *testing.T) {
	f := newPagoFixture(t, "100.00", "2024-03-01", true)

	m := dec("50.00")
	resp, err := f.svc.RegistrarPago(context.Background(), dto.RegistrarPagoRequest{
		CuotaID:          f.cuotaID.String(),
		MontoPagado:      &m,
		MedioPago:        model.MedioTarjeta,
		CanalComprobante: CanalEmail,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.ResultadoEnvio)
	require.Len(t, f.pagoRepo.pagos, 1)
	assert.Equal(t, "50.00", f.prestamoRepo.cuotas[f.cuotaID].SaldoPendiente.StringFixed(2))
}

// cajaCerradaTrasGate simulates a close that commits between the pre-flight
// gate and the payment transaction: the gate still sees an open session, the
// in-transaction re-check does not.
type cajaCerradaTrasGate struct {
	CajaService
}

func (c *cajaCerradaTrasGate) SesionAbierta(ctx context.Context) (*model.SesionCaja, error) {
	sesion, err := c.CajaService.SesionAbierta(ctx)
	if err != nil {
		return nil, err
	}
	sesion.Cerrado = true
	return sesion, nil
}

func TestRegistrarPagoCajaCerradaEntreGateYTransaccion(t *testing.T) {
	f := newPagoFixture(t, "100.00", "2024-03-01", true)
	f.svc.caja = &cajaCerradaTrasGate{CajaService: f.svc.caja}

	_, err := f.registrar("50.00", model.MedioTarjeta)
	assert.ErrorIs(t, err, ErrCajaNoAbierta)

	// the interleaved close must reject the payment before any write
	assert.Empty(t, f.pagoRepo.pagos)
	assert.Empty(t, f.compRepo.comprobantes)
	assert.Equal(t, "100.00", f.prestamoRepo.cuotas[f.cuotaID].SaldoPendiente.StringFixed(2))
}

func TestRegistrarPagoMontoCero(t *testing.T) {
	f := newPagoFixture(t, "100.00", "2024-03-01", true)
	_, err := f.registrar("0", model.MedioEfectivo)
	assert.ErrorIs(t, err, ErrMontoInvalido)
}

func TestRegistrarPagoCuotaInexistente(t *testing.T) {
	f := newPagoFixture(t, "100.00", "2024-03-01", true)
	m := dec("10.00")
	_, err := f.svc.RegistrarPago(context.Background(), dto.RegistrarPagoRequest{
		CuotaID:     uuid.New().String(),
		MontoPagado: &m,
		MedioPago:   model.MedioTarjeta,
	})
	assert.ErrorIs(t, err, ErrCuotaNoEncontrada)
}

func TestHistorialDePagos(t *testing.T) {
	f := newPagoFixture(t, "100.00", "2024-03-01", true)

	_, err := f.registrar("40.00", model.MedioYape)
	require.NoError(t, err)
	_, err = f.registrar("30.00", model.MedioEfectivo)
	require.NoError(t, err)

	items, err := f.svc.Historial(context.Background(), f.cuotaID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	_, err = f.svc.Historial(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCuotaNoEncontrada)
}
