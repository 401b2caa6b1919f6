package handler

import (
	"net/http"

	"credicaja/internal/apierror"
	"credicaja/internal/dto"
	"credicaja/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Listar godoc
// @Summary Listar clientes
// @Tags clientes
// @Produce json
// @Success 200 {array} dto.ClienteResponse
// @Router /v1/clientes [get]
func (h *ClientesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BuscarPorDocumento godoc
// @Summary Buscar cliente por documento
// @Description Devuelve el cliente junto con su prestamo vigente, si lo tiene.
// @Tags clientes
// @Produce json
// @Param documento path string true "DNI o RUC"
// @Success 200 {object} dto.BuscarClienteResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/clientes/documento/{documento} [get]
func (h *ClientesHandler) BuscarPorDocumento(c *gin.Context) {
	documento := c.Param("documento")
	if documento == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Documento requerido"))
		return
	}
	resp, err := h.svc.BuscarPorDocumento(c.Request.Context(), documento)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary Crear cliente resolviendo el nombre por Decolecta
// @Description El nombre legal se obtiene del servicio de identidad segun DNI o RUC.
// @Tags clientes
// @Accept json
// @Produce json
// @Param body body dto.CrearClienteRequest true "Datos del cliente"
// @Success 201 {object} dto.ClienteResponse
// @Failure 409 {object} apierror.APIError
// @Failure 502 {object} apierror.APIError
// @Router /v1/clientes [post]
func (h *ClientesHandler) Crear(c *gin.Context) {
	var req dto.CrearClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// BuscarOCrear godoc
// @Summary Buscar cliente por documento, creandolo si no existe
// @Description Operacion de mostrador: devuelve el cliente existente u obtiene el nombre de Decolecta y lo registra.
// @Tags clientes
// @Accept json
// @Produce json
// @Param body body dto.CrearClienteRequest true "Datos del cliente"
// @Success 200 {object} dto.ClienteResponse
// @Failure 502 {object} apierror.APIError
// @Router /v1/clientes/buscar-o-crear [post]
func (h *ClientesHandler) BuscarOCrear(c *gin.Context) {
	var req dto.CrearClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.BuscarOCrear(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	status := http.StatusOK
	if resp.Creado {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}
