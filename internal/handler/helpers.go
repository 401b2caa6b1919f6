package handler

import (
	"errors"
	"net/http"
	"reflect"

	"credicaja/internal/apierror"
	"credicaja/internal/infra"
	"credicaja/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeServiceError maps typed service errors onto HTTP statuses. The struct
// errors carry their numeric breakdown into the response envelope so the
// client can show the operator what to fix.
func writeServiceError(c *gin.Context, err error) {
	var descuadre *service.CajaDescuadradaError
	if errors.As(err, &descuadre) {
		c.JSON(http.StatusConflict, apierror.WithExtra(descuadre.Error(), map[string]interface{}{
			"total_teorico": descuadre.TotalTeorico,
			"total_real":    descuadre.TotalReal,
			"diferencia":    descuadre.Diferencia,
		}))
		return
	}

	var excede *service.MontoExcedeDeudaError
	if errors.As(err, &excede) {
		c.JSON(http.StatusUnprocessableEntity, apierror.WithExtra(excede.Error(), map[string]interface{}{
			"total_debido": excede.TotalDebido,
		}))
		return
	}

	var identidad *service.IdentidadError
	if errors.As(err, &identidad) || errors.Is(err, infra.ErrCircuitOpen) {
		c.JSON(http.StatusBadGateway, apierror.New(err.Error()))
		return
	}

	switch {
	case errors.Is(err, service.ErrCajaNoExiste),
		errors.Is(err, service.ErrCuotaNoEncontrada),
		errors.Is(err, service.ErrClienteNoEncontrado),
		errors.Is(err, service.ErrClienteSinPrestamo):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))

	case errors.Is(err, service.ErrCajaYaAbierta),
		errors.Is(err, service.ErrCajaCerrada),
		errors.Is(err, service.ErrCajaNoAbierta),
		errors.Is(err, service.ErrPrestamoActivo),
		errors.Is(err, service.ErrDocumentoDuplicado):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))

	case errors.Is(err, service.ErrMontoInvalido),
		errors.Is(err, service.ErrMontoMaximo),
		errors.Is(err, service.ErrNumCuotasInvalido):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))

	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}
