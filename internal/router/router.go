package router

import (
	"time"

	"burgershop/internal/checkout"
	"burgershop/internal/config"
	"burgershop/internal/handler"
	"burgershop/internal/infra"
	"burgershop/internal/middleware"
	"burgershop/internal/repository"
	"burgershop/internal/service"
	"burgershop/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mpCB *infra.CircuitBreaker) *gin.Engine {
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
	mpClient := infra.NewMPClient(cfg.MPBaseURL, cfg.MPAccessToken)
	almacen := infra.NewAlmacenRedis(rdb)
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	productoRepo := repository.NewProductoRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	tamanoRepo := repository.NewTamanoRepository(db)
	guarnicionRepo := repository.NewGuarnicionRepository(db)
	adicionalRepo := repository.NewAdicionalRepository(db)
	bancoRepo := repository.NewBancoRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	tamanoSvc := service.NewTamanoService(tamanoRepo)
	guarnicionSvc := service.NewGuarnicionService(guarnicionRepo)
	adicionalSvc := service.NewAdicionalService(adicionalRepo)
	bancoSvc := service.NewBancoService(bancoRepo)
	productoSvc := service.NewProductoService(productoRepo, categoriaRepo, tamanoRepo, guarnicionRepo, adicionalRepo)
	carritoSvc := service.NewCarritoService(almacen, productoRepo, cfg.CartFreshness())
	pedidoSvc := service.NewPedidoService(pedidoRepo, productoRepo, adicionalRepo, mpClient, mpCB, dispatcher, rdb, cfg.PDFStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	tamanosH := handler.NewTamanosHandler(tamanoSvc)
	guarnicionesH := handler.NewGuarnicionesHandler(guarnicionSvc)
	adicionalesH := handler.NewAdicionalesHandler(adicionalSvc)
	bancosH := handler.NewBancosHandler(bancoSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	carritoH := handler.NewCarritoHandler(carritoSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	checkoutH := handler.NewCheckoutHandler(
		carritoSvc,
		pedidoSvc,
		checkout.Destinos{WhatsAppNumero: cfg.WhatsAppNumero},
		almacen,
	)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	// Public storefront: catalog reads, no auth
	v1 := r.Group("/v1")
	{
		v1.GET("/productos", productosH.Listar)
		v1.GET("/productos/:id", productosH.ObtenerPorID)
		v1.GET("/categorias", categoriasH.Listar)
		v1.GET("/tamanos", tamanosH.Listar)
		v1.GET("/guarniciones", guarnicionesH.Listar)
		v1.GET("/adicionales", adicionalesH.Listar)
		v1.GET("/bancos", bancosH.Listar)
	}

	// Cart & checkout: anonymous sessions keyed by token
	sesion := v1.Group("", middleware.Sesion())
	{
		sesion.GET("/carrito", carritoH.Ver)
		sesion.DELETE("/carrito", carritoH.Vaciar)
		sesion.POST("/carrito/lineas", carritoH.Agregar)
		sesion.PATCH("/carrito/lineas/:cartId", carritoH.ActualizarConfig)
		sesion.PATCH("/carrito/lineas/:cartId/cantidad", carritoH.ActualizarCantidad)
		sesion.DELETE("/carrito/lineas/:cartId", carritoH.Quitar)

		sesion.GET("/checkout", checkoutH.Estado)
		sesion.POST("/checkout/confirmar", checkoutH.Confirmar)
		sesion.POST("/checkout/pagar", checkoutH.Pagar)
		sesion.POST("/checkout/abandonar", checkoutH.Abandonar)
	}

	// Gateway notifications
	v1.POST("/pagos/webhook", pedidosH.Webhook)

	// Back-office: JWT + role
	admin := v1.Group("/admin", middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole("administrador"))
	{
		admin.POST("/productos", productosH.Crear)
		admin.PUT("/productos/:id", productosH.Actualizar)
		admin.DELETE("/productos/:id", productosH.Desactivar)
		admin.PATCH("/productos/:id/reactivar", productosH.Reactivar)

		admin.POST("/categorias", categoriasH.Crear)
		admin.PUT("/categorias/:id", categoriasH.Actualizar)
		admin.DELETE("/categorias/:id", categoriasH.Desactivar)

		admin.POST("/tamanos", tamanosH.Crear)
		admin.PUT("/tamanos/:id", tamanosH.Actualizar)
		admin.DELETE("/tamanos/:id", tamanosH.Desactivar)

		admin.POST("/guarniciones", guarnicionesH.Crear)
		admin.PUT("/guarniciones/:id", guarnicionesH.Actualizar)
		admin.DELETE("/guarniciones/:id", guarnicionesH.Desactivar)

		admin.POST("/adicionales", adicionalesH.Crear)
		admin.PUT("/adicionales/:id", adicionalesH.Actualizar)
		admin.DELETE("/adicionales/:id", adicionalesH.Desactivar)

		admin.POST("/bancos", bancosH.Crear)
		admin.PUT("/bancos/:id", bancosH.Actualizar)
		admin.DELETE("/bancos/:id", bancosH.Desactivar)

		admin.GET("/pedidos", pedidosH.Listar)
		admin.GET("/pedidos/:id", pedidosH.Obtener)
		admin.PATCH("/pedidos/:id/estado", pedidosH.ActualizarEstado)
		admin.PATCH("/pedidos/:id/estado-pago", pedidosH.ActualizarEstadoPago)
		admin.GET("/pedidos/:id/pdf", pedidosH.DescargarPDF)
	}

	return r
}
