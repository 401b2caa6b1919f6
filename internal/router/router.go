package router

import (
	"time"

	"credicaja/internal/config"
	"credicaja/internal/handler"
	"credicaja/internal/infra"
	"credicaja/internal/middleware"
	"credicaja/internal/repository"
	"credicaja/internal/service"
	"credicaja/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, identidadCB *infra.CircuitBreaker, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	decolecta := infra.NewDecolectaClient(cfg.DecolectaURL, cfg.DecolectaToken, cfg.ExternalTimeout())

	// ── Repositories ─────────────────────────────────────────────────────────
	cajaRepo := repository.NewCajaRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	prestamoRepo := repository.NewPrestamoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	comprobanteRepo := repository.NewComprobanteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	cajaSvc := service.NewCajaService(cajaRepo)
	pagoSvc := service.NewPagoService(pagoRepo, prestamoRepo, comprobanteRepo, cajaSvc, dispatcher)
	prestamoSvc := service.NewPrestamoService(prestamoRepo, clienteRepo)
	clienteSvc := service.NewClienteService(clienteRepo, prestamoRepo, decolecta, identidadCB)

	// ── Handlers ─────────────────────────────────────────────────────────────
	cajaH := handler.NewCajaHandler(cajaSvc)
	pagosH := handler.NewPagosHandler(pagoSvc)
	prestamosH := handler.NewPrestamosHandler(prestamoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		caja := v1.Group("/caja")
		{
			caja.POST("/abrir", cajaH.Abrir)
			caja.GET("/resumen", cajaH.Resumen)
			caja.POST("/cerrar", cajaH.Cerrar)
		}

		v1.POST("/pagos", pagosH.Registrar)
		v1.GET("/pagos/cuota/:cuota_id", pagosH.Historial)

		v1.POST("/prestamos", prestamosH.Crear)
		v1.GET("/prestamos/cliente/:cliente_id", prestamosH.PorCliente)

		clientes := v1.Group("/clientes")
		{
			clientes.GET("", clientesH.Listar)
			clientes.POST("", clientesH.Crear)
			clientes.GET("/documento/:documento", clientesH.BuscarPorDocumento)
			clientes.POST("/buscar-o-crear", clientesH.BuscarOCrear)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
