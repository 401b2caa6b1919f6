package service

import (
	"context"
	"errors"
	"strings"

	"credicaja/internal/dto"
	"credicaja/internal/infra"
	"credicaja/internal/model"
	"credicaja/internal/repository"

	"gorm.io/gorm"
)

const (
	TipoNatural  = "NATURAL"
	TipoJuridica = "JURIDICA"
)

// IdentityClient resolves identity documents to legal names. Satisfied by
// infra.DecolectaClient; tests substitute a stub.
type IdentityClient interface {
	ConsultarDNI(ctx context.Context, dni string) (*infra.DNIResponse, error)
	ConsultarRUC(ctx context.Context, ruc string) (*infra.RUCResponse, error)
}

type ClienteService interface {
	Listar(ctx context.Context) ([]dto.ClienteResponse, error)
	BuscarPorDocumento(ctx context.Context, documento string) (*dto.BuscarClienteResponse, error)
	// BuscarOCrear returns the existing client for the document, or creates one
	// by resolving the name through the identity API.
	BuscarOCrear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
}

type clienteService struct {
	repo         repository.ClienteRepository
	prestamoRepo repository.PrestamoRepository
	identidad    IdentityClient
	cb           *infra.CircuitBreaker
}

func NewClienteService(
	repo repository.ClienteRepository,
	prestamoRepo repository.PrestamoRepository,
	identidad IdentityClient,
	cb *infra.CircuitBreaker,
) ClienteService {
	return &clienteService{repo: repo, prestamoRepo: prestamoRepo, identidad: identidad, cb: cb}
}

func (s *clienteService) Listar(ctx context.Context) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, clienteToResponse(&clientes[i], false, ""))
	}
	return out, nil
}

func (s *clienteService) BuscarPorDocumento(ctx context.Context, documento string) (*dto.BuscarClienteResponse, error) {
	cliente, err := s.repo.FindByDocumento(ctx, documento)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClienteNoEncontrado
	}
	if err != nil {
		return nil, err
	}

	resp := &dto.BuscarClienteResponse{
		Cliente:   clienteToResponse(cliente, false, "BD"),
		EsNatural: cliente.Tipo == TipoNatural,
	}

	prestamo, err := s.prestamoRepo.FindByCliente(ctx, cliente.ID)
	if err == nil {
		resp.Prestamo = &dto.PrestamoResumen{
			PrestamoID:  prestamo.ID.String(),
			MontoTotal:  prestamo.MontoTotal.StringFixed(2),
			FechaInicio: prestamo.FechaInicio.Format("2006-01-02"),
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return resp, nil
}

func (s *clienteService) BuscarOCrear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	existing, err := s.repo.FindByDocumento(ctx, req.Documento)
	if err == nil {
		resp := clienteToResponse(existing, false, "BD")
		return &resp, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.crearDesdeAPI(ctx, req)
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if _, err := s.repo.FindByDocumento(ctx, req.Documento); err == nil {
		return nil, ErrDocumentoDuplicado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.crearDesdeAPI(ctx, req)
}

func (s *clienteService) crearDesdeAPI(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	nombre, err := s.resolverNombre(ctx, req.Tipo, req.Documento)
	if err != nil {
		return nil, &IdentidadError{Err: err}
	}

	cliente := &model.Cliente{
		Tipo:      req.Tipo,
		Nombre:    nombre,
		Documento: req.Documento,
	}
	if req.Email != "" {
		cliente.Email = &req.Email
	}
	if req.Telefono != "" {
		cliente.Telefono = &req.Telefono
	}

	if err := s.repo.Create(ctx, cliente); err != nil {
		return nil, err
	}

	resp := clienteToResponse(cliente, true, "API")
	return &resp, nil
}

// resolverNombre consults Decolecta through the circuit breaker: when the
// identity API is down the breaker fast-fails instead of piling up requests.
func (s *clienteService) resolverNombre(ctx context.Context, tipo, documento string) (string, error) {
	var nombre string
	err := s.cb.Execute(func() error {
		switch tipo {
		case TipoJuridica:
			r, err := s.identidad.ConsultarRUC(ctx, documento)
			if err != nil {
				return err
			}
			nombre = r.RazonSocial
			if nombre == "" {
				nombre = r.FullName
			}
		default:
			r, err := s.identidad.ConsultarDNI(ctx, documento)
			if err != nil {
				return err
			}
			nombre = r.FullName
			if nombre == "" {
				nombre = strings.TrimSpace(strings.Join([]string{r.FirstName, r.FirstLastName, r.SecondLastName}, " "))
			}
		}
		if strings.TrimSpace(nombre) == "" {
			return errors.New("documento sin nombre registrado")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return nombre, nil
}

func clienteToResponse(c *model.Cliente, creado bool, origen string) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:        c.ID.String(),
		Tipo:      c.Tipo,
		Nombre:    c.Nombre,
		Documento: c.Documento,
		Email:     c.Email,
		Telefono:  c.Telefono,
		Creado:    creado,
		Origen:    origen,
	}
}
