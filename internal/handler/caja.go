package handler

import (
	"net/http"

	"credicaja/internal/dto"
	"credicaja/internal/service"

	"github.com/gin-gonic/gin"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Abrir godoc
// @Summary Abre una nueva sesion de caja
// @Description Registra la apertura con el monto inicial. Falla si ya existe una caja abierta.
// @Tags caja
// @Accept json
// @Produce json
// @Param body body dto.AperturaCajaRequest true "Monto inicial"
// @Success 201 {object} dto.AperturaCajaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AperturaCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), *req.MontoInicial)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Resumen godoc
// @Summary Resumen de la caja abierta
// @Description Totales por medio de pago y total teorico, recalculados desde los pagos persistidos.
// @Tags caja
// @Produce json
// @Success 200 {object} dto.ResumenCajaResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/resumen [get]
func (h *CajaHandler) Resumen(c *gin.Context) {
	resp, err := h.svc.ResumenActual(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cerrar godoc
// @Summary Cierra la caja abierta
// @Description Concilia el total declarado contra el teorico; solo cierra con coincidencia exacta.
// @Tags caja
// @Accept json
// @Produce json
// @Param body body dto.CierreCajaRequest true "Total real contado"
// @Success 200 {object} dto.CierreCajaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CierreCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), *req.TotalReal)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
