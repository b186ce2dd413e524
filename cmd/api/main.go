package main

import (
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/event"
	"app/internal/gateway/midtrans"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

func main() {
	logger := log.New("api")

	if err := godotenv.Load(); err != nil {
		logger.Warnf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	gormDB, err := db.Connect()
	if err != nil {
		logger.Fatalf("db: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.StockMovement{},
		&model.Voucher{},
		&model.Cancellation{},
		&model.ReturnRequest{},
		&model.AuditLog{},
	); err != nil {
		logger.Fatalf("migrate: %v", err)
	}

	// repositories
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	voucherRepo := infraRepo.NewVoucherGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	// status events go to Redis when configured, otherwise nowhere
	var publisher event.StatusPublisher = event.NopPublisher{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		publisher = event.NewRedisPublisher(rdb, event.DefaultChannel)
	}

	gateway := midtrans.NewClient(cfg.MidtransBaseURL, cfg.MidtransServerKey)

	idGen := &uuidGenerator{}
	adjustor := usecase.NewInventoryAdjustor(log.New("inventory"))

	// usecases
	productUC := usecase.NewProductUsecase(productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, idGen, publisher)
	reconcileUC := usecase.NewReconcileUsecase(
		orderRepo,
		orderItemRepo,
		inventoryRepo,
		voucherRepo,
		cartRepo,
		gateway,
		adjustor,
		publisher,
		log.New("reconcile"),
	)
	cancelUC := usecase.NewCancellationUsecase(txManager, adjustor, auditRepo, publisher, log.New("cancellation"))
	returnUC := usecase.NewReturnUsecase(txManager, adjustor, auditRepo, publisher, log.New("return"))
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, auditRepo, publisher)
	inventoryUC := usecase.NewInventoryUsecase(txManager, adjustor, auditRepo)
	reportUC := usecase.NewReportUsecase(orderRepo)

	e := server.New(cfg, server.Handlers{
		Product:     handler.NewProductHandler(productUC),
		Cart:        handler.NewCartHandler(cartUC),
		Order:       handler.NewOrderHandler(orderUC, cancelUC, returnUC, reconcileUC),
		Payment:     handler.NewPaymentHandler(reconcileUC),
		AdminOrder:  handler.NewAdminOrderHandler(adminOrderUC, cancelUC, returnUC),
		AdminStock:  handler.NewAdminStockHandler(inventoryUC),
		AdminReport: handler.NewAdminReportHandler(reportUC),
	})

	if err := server.Start(e, cfg.Port); err != nil {
		logger.Fatalf("server: %v", err)
	}
}
