package handler

import (
	"net/http"

	"credicaja/internal/apierror"
	"credicaja/internal/dto"
	"credicaja/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PagosHandler struct{ svc service.PagoService }

func NewPagosHandler(svc service.PagoService) *PagosHandler { return &PagosHandler{svc: svc} }

// Registrar godoc
// @Summary Registrar un pago de cuota
// @Description Liquida un pago contra una cuota: mora, redondeo de efectivo, comprobante y envio asincrono por email.
// @Tags pagos
// @Accept json
// @Produce json
// @Param body body dto.RegistrarPagoRequest true "Detalle del pago"
// @Success 201 {object} dto.PagoResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/pagos [post]
func (h *PagosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPago(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Historial godoc
// @Summary Historial de pagos de una cuota
// @Tags pagos
// @Produce json
// @Param cuota_id path string true "UUID de la cuota"
// @Success 200 {array} dto.PagoHistorialItem
// @Failure 404 {object} apierror.APIError
// @Router /v1/pagos/cuota/{cuota_id} [get]
func (h *PagosHandler) Historial(c *gin.Context) {
	cuotaID, err := uuid.Parse(c.Param("cuota_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de cuota inválido"))
		return
	}
	items, err := h.svc.Historial(c.Request.Context(), cuotaID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
