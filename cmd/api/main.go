package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dcastano/almacen-api/internal/application/auth"
	"github.com/dcastano/almacen-api/internal/application/inventory"
	"github.com/dcastano/almacen-api/internal/application/orders"
	"github.com/dcastano/almacen-api/internal/application/reports"
	"github.com/dcastano/almacen-api/internal/application/usecase"
	infrapdf "github.com/dcastano/almacen-api/internal/infrastructure/pdf"
	"github.com/dcastano/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/dcastano/almacen-api/internal/interfaces/http"
	"github.com/dcastano/almacen-api/pkg/config"
	"github.com/dcastano/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	orderRepo := postgres.NewSaleOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportingRepo := postgres.NewReportingRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	productUC := usecase.NewProductUseCase(productRepo, supplierRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, productRepo, movementRepo)
	orderUC := orders.NewSaleOrderUseCase(txRunner, registerMovementUC, orderRepo, productRepo)

	pdfGenerator := infrapdf.NewStockReportPDF()
	reportUC := reports.NewReportUseCase(reportingRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. El middleware hace
	// panic si el JSON generado no existe, así que solo se registra cuando
	// el archivo está presente.
	if path, ok := swaggerFile("./docs/swagger.json"); ok {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: path,
			Path:     "docs",
			Title:    "Almacén API",
		}))
	} else {
		log.Warn().Str("path", "./docs/swagger.json").Msg("swagger.json no encontrado, UI de docs deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SupplierUC:       supplierUC,
		ProductUC:        productUC,
		RegisterMovement: registerMovementUC,
		OrderUC:          orderUC,
		ReportUC:         reportUC,
		AuthUC:           authUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}

// swaggerFile verifica que el swagger.json generado exista antes de montar
// el middleware de documentación.
func swaggerFile(path string) (string, bool) {
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}
