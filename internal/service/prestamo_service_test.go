package service

import (
	"context"
	"testing"
	"time"

	"credicaja/internal/dto"
	"credicaja/internal/model"
	"credicaja/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stub ClienteRepository ───────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes     map[uuid.UUID]*model.Cliente
	porDocumento map[string]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{
		clientes:     make(map[uuid.UUID]*model.Cliente),
		porDocumento: make(map[string]*model.Cliente),
	}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	r.porDocumento[c.Documento] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) FindByDocumento(_ context.Context, documento string) (*model.Cliente, error) {
	c, ok := r.porDocumento[documento]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context) ([]model.Cliente, error) {
	out := make([]model.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── Fixture ──────────────────────────────────────────────────────────────────

func newPrestamoFixture(t *testing.T) (*prestamoService, *stubPrestamoRepo, *model.Cliente) {
	t.Helper()
	prestamoRepo := newStubPrestamoRepo()
	clienteRepo := newStubClienteRepo()

	cliente := &model.Cliente{Tipo: TipoNatural, Nombre: "Ana Torres", Documento: "12345678"}
	require.NoError(t, clienteRepo.Create(context.Background(), cliente))

	svc := &prestamoService{
		repo:        prestamoRepo,
		clienteRepo: clienteRepo,
		now:         func() time.Time { return fecha("2024-02-01") },
	}
	return svc, prestamoRepo, cliente
}

func crearReq(clienteID string, monto string, cuotas int) dto.CrearPrestamoRequest {
	m := dec(monto)
	return dto.CrearPrestamoRequest{ClienteID: clienteID, MontoTotal: &m, NumCuotas: cuotas}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCrearPrestamoCronograma(t *testing.T) {
	svc, _, cliente := newPrestamoFixture(t)

	resp, err := svc.Crear(context.Background(), crearReq(cliente.ID.String(), "1200.00", 12))
	require.NoError(t, err)

	assert.Equal(t, "1200.00", resp.MontoTotal.StringFixed(2))
	assert.Equal(t, "100.00", resp.MontoPorCuota.StringFixed(2))
	require.Len(t, resp.Cronograma, 12)

	prev := fecha("2024-02-01")
	for i, cuota := range resp.Cronograma {
		assert.Equal(t, i+1, cuota.NumeroCuota)
		assert.Equal(t, "100.00", cuota.MontoCuota.StringFixed(2))
		assert.Equal(t, "100.00", cuota.SaldoPendiente.StringFixed(2))
		assert.False(t, cuota.Pagada)

		vence, err := time.Parse("2006-01-02", cuota.FechaVencimiento)
		require.NoError(t, err)
		assert.Equal(t, prev.AddDate(0, 0, 30), vence, "cuota %d", i+1)
		prev = vence
	}
}

func TestCrearPrestamoMontoNoDivisible(t *testing.T) {
	svc, _, cliente := newPrestamoFixture(t)

	resp, err := svc.Crear(context.Background(), crearReq(cliente.ID.String(), "100.00", 3))
	require.NoError(t, err)
	assert.Equal(t, "33.33", resp.MontoPorCuota.StringFixed(2))
}

func TestCrearPrestamoLimites(t *testing.T) {
	svc, _, cliente := newPrestamoFixture(t)

	_, err := svc.Crear(context.Background(), crearReq(cliente.ID.String(), "20000.01", 12))
	assert.ErrorIs(t, err, ErrMontoMaximo)

	_, err = svc.Crear(context.Background(), crearReq(cliente.ID.String(), "0", 12))
	assert.ErrorIs(t, err, ErrMontoInvalido)

	_, err = svc.Crear(context.Background(), crearReq(cliente.ID.String(), "1000", 25))
	assert.ErrorIs(t, err, ErrNumCuotasInvalido)

	// exactly at the cap is allowed
	_, err = svc.Crear(context.Background(), crearReq(cliente.ID.String(), "20000.00", 24))
	assert.NoError(t, err)
}

func TestCrearPrestamoConActivo(t *testing.T) {
	svc, prestamoRepo, cliente := newPrestamoFixture(t)
	prestamoRepo.activo = true

	_, err := svc.Crear(context.Background(), crearReq(cliente.ID.String(), "1000", 10))
	assert.ErrorIs(t, err, ErrPrestamoActivo)
}

func TestCrearPrestamoClienteInexistente(t *testing.T) {
	svc, _, _ := newPrestamoFixture(t)

	_, err := svc.Crear(context.Background(), crearReq(uuid.New().String(), "1000", 10))
	assert.ErrorIs(t, err, ErrClienteNoEncontrado)
}

func TestPrestamoPorCliente(t *testing.T) {
	svc, _, cliente := newPrestamoFixture(t)

	_, err := svc.PorCliente(context.Background(), cliente.ID)
	assert.ErrorIs(t, err, ErrClienteSinPrestamo)

	_, err = svc.Crear(context.Background(), crearReq(cliente.ID.String(), "600.00", 6))
	require.NoError(t, err)

	resp, err := svc.PorCliente(context.Background(), cliente.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Torres", resp.ClienteNombre)
	assert.Equal(t, "600.00", resp.MontoTotal.StringFixed(2))
	assert.Len(t, resp.Cuotas, 6)

	_, err = svc.PorCliente(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrClienteNoEncontrado)
}
