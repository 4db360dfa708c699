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

	"github.com/tu-usuario/stock-ledger/internal/application/auth"
	"github.com/tu-usuario/stock-ledger/internal/application/inventory"
	"github.com/tu-usuario/stock-ledger/internal/application/query"
	"github.com/tu-usuario/stock-ledger/internal/application/report"
	"github.com/tu-usuario/stock-ledger/internal/application/usecase"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
	"github.com/tu-usuario/stock-ledger/internal/infrastructure/events"
	"github.com/tu-usuario/stock-ledger/internal/infrastructure/memory"
	infrapdf "github.com/tu-usuario/stock-ledger/internal/infrastructure/pdf"
	"github.com/tu-usuario/stock-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/stock-ledger/internal/interfaces/http"
	"github.com/tu-usuario/stock-ledger/pkg/config"
	"github.com/tu-usuario/stock-ledger/pkg/logger"
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

	// Persistencia: PostgreSQL si hay DB configurada, almacén en memoria si no
	// (desarrollo y pruebas locales).
	var (
		txRunner     inventory.TxRunner
		productRepo  repository.ProductRepository
		movementRepo repository.MovementRepository
		accountRepo  repository.StockAccountRepository
		categoryRepo repository.CategoryRepository
		supplierRepo repository.SupplierRepository
		userRepo     repository.UserRepository
	)
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		txRunner = postgres.NewTxRunner(pool)
		productRepo = postgres.NewProductRepository(pool)
		movementRepo = postgres.NewMovementRepository(pool)
		accountRepo = postgres.NewStockAccountRepository(pool)
		categoryRepo = postgres.NewCategoryRepository(pool)
		supplierRepo = postgres.NewSupplierRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
	} else {
		log.Warn().Msg("sin DB_HOST ni DATABASE_URL: usando almacén en memoria")
		store := memory.NewStore()
		txRunner = store
		productRepo = memory.NewProductRepository(store)
		movementRepo = memory.NewMovementRepository(store)
		accountRepo = memory.NewStockAccountRepository(store)
		categoryRepo = memory.NewCategoryRepository(store)
		supplierRepo = memory.NewSupplierRepository(store)
		userRepo = memory.NewUserRepository(store)
	}

	// Alertas de stock bajo: Kafka si hay brokers, log si no.
	var alerts inventory.AlertPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()
		alerts = kafkaPublisher
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("alertas vía Kafka")
	} else {
		alerts = events.NewNoopPublisher(log)
	}

	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, productRepo, alerts, log, nil)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, supplierRepo, nil)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, nil)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, nil)
	productQueries := query.NewProductQueryUseCase(productRepo, accountRepo, categoryRepo, supplierRepo)
	movementQueries := query.NewMovementQueryUseCase(movementRepo, productRepo)
	authUC := auth.NewUseCase(userRepo, cfg.JWT, nil)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportUC := report.NewUseCase(productRepo, accountRepo, categoryRepo, pdfGenerator, nil)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		CategoryUC:       categoryUC,
		SupplierUC:       supplierUC,
		RegisterMovement: registerMovementUC,
		ProductQueries:   productQueries,
		MovementQueries:  movementQueries,
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

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
