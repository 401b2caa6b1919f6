package handler

import (
	"net/http"

	"credicaja/internal/apierror"
	"credicaja/internal/dto"
	"credicaja/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PrestamosHandler struct{ svc service.PrestamoService }

func NewPrestamosHandler(svc service.PrestamoService) *PrestamosHandler {
	return &PrestamosHandler{svc: svc}
}

// Crear godoc
// @Summary Crear un prestamo con su cronograma
// @Description Divide el monto en cuotas iguales con vencimientos cada 30 dias.
// @Tags prestamos
// @Accept json
// @Produce json
// @Param body body dto.CrearPrestamoRequest true "Datos del prestamo"
// @Success 201 {object} dto.PrestamoResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/prestamos [post]
func (h *PrestamosHandler) Crear(c *gin.Context) {
	var req dto.CrearPrestamoRequest
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

// PorCliente godoc
// @Summary Prestamo y cuotas de un cliente
// @Tags prestamos
// @Produce json
// @Param cliente_id path string true "UUID del cliente"
// @Success 200 {object} dto.PrestamoClienteResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/prestamos/cliente/{cliente_id} [get]
func (h *PrestamosHandler) PorCliente(c *gin.Context) {
	clienteID, err := uuid.Parse(c.Param("cliente_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de cliente inválido"))
		return
	}
	resp, err := h.svc.PorCliente(c.Request.Context(), clienteID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
