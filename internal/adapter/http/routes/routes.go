package routes

import (
	"context"
	"fmt"
	"log"
	_ "jardin_services/docs" // This will be auto-generated
	"jardin_services/internal/adapter/http/handlers"
	"jardin_services/internal/adapter/http/middleware"
	"jardin_services/internal/adapter/persistence/memory"
	repository2 "jardin_services/internal/adapter/persistence/repository"
	"jardin_services/internal/config"
	"jardin_services/internal/domain/entities"
	"jardin_services/internal/infrastructure/database"
	"jardin_services/internal/infrastructure/notifications"
	"jardin_services/internal/infrastructure/payments"
	"jardin_services/internal/infrastructure/storage"
	"jardin_services/internal/session"
	"jardin_services/internal/usecase"
	"jardin_services/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.New()

// Run will start the server
func Run(cfg config.Config) {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if err := getRoutes(context.Background(), cfg); err != nil {
		log.Fatalf("Failed to wire the application: %v", err)
	}

	err := router.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

type stores struct {
	requests    interfaces.IRequestRepository
	adjustments interfaces.IPriceAdjustmentRepository
	payments    interfaces.IPaymentRepository
	objects     interfaces.IObjectStorage
	// blobs is set only with the memory driver, which serves its own files.
	blobs handlers.ObjectReader
}

func newStores(ctx context.Context, cfg config.Config) (stores, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Printf("[routes] store driver=memory; data is lost on restart")
		store := memory.NewStore()
		objects := store.Objects(cfg.PublicBaseURL + "/v1" + PathObjects)
		return stores{
			requests:    store.Requests(),
			adjustments: store.Adjustments(),
			payments:    store.Payments(),
			objects:     objects,
			blobs:       objects,
		}, nil
	}

	awsCfg, err := database.NewAWSConfig(ctx, cfg)
	if err != nil {
		return stores{}, fmt.Errorf("aws config: %w", err)
	}
	ddb := database.ConnectDynamoDB(awsCfg, cfg.DynamoDBEndpoint)
	objects, err := storage.NewS3Storage(storage.NewS3Client(awsCfg, cfg.S3Endpoint), storage.S3Settings{
		Bucket:        cfg.S3Bucket,
		Region:        cfg.AWSRegion,
		Endpoint:      cfg.S3Endpoint,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	if err != nil {
		return stores{}, fmt.Errorf("s3 storage: %w", err)
	}
	return stores{
		requests:    repository2.NewRequestDynamoRepository(ddb, cfg.RequestsTable),
		adjustments: repository2.NewPriceAdjustmentDynamoRepository(ddb, cfg.AdjustmentsTable, cfg.AdjustmentLocksTable, cfg.RequestsTable),
		payments:    repository2.NewPaymentDynamoRepository(ddb, cfg.PaymentsTable),
		objects:     objects,
	}, nil
}

// newNotifier returns nil without REDIS_URL; notifications are then skipped.
func newNotifier(ctx context.Context, cfg config.Config) interfaces.INotifier {
	if cfg.RedisURL == "" {
		log.Printf("[routes] REDIS_URL not set; notifications disabled")
		return nil
	}
	rdb, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Printf("[routes] redis unavailable; notifications disabled: %v", err)
		return nil
	}
	return notifications.NewRedisNotifier(rdb)
}

func getRoutes(ctx context.Context, cfg config.Config) error {
	st, err := newStores(ctx, cfg)
	if err != nil {
		return err
	}
	notifier := newNotifier(ctx, cfg)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.PaymentGatewayMock)
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	uploader := usecase.NewEvidenceUploader(st.objects)
	requestUseCase := usecase.NewRequestUseCase(st.requests, st.payments, uploader)
	adjustmentUseCase := usecase.NewPriceAdjustmentUseCase(st.adjustments, st.requests, uploader, notifier)
	paymentUseCase := usecase.NewPaymentUseCase(st.payments, st.requests, st.adjustments, paymentGateway, notifier, usecase.PaymentSettings{
		Currency:      cfg.PaymentCurrency,
		PublicBaseURL: cfg.PublicBaseURL,
	})
	negotiationUseCase := usecase.NewNegotiationUseCase(st.adjustments, st.requests, paymentUseCase, notifier, entities.ParseSiblingPolicy(cfg.AdjustmentSiblingPolicy))

	sessions := session.NewManager(cfg.JWTSecret, cfg.SessionTTL)

	requestHandler := handlers.NewRequestHandler(requestUseCase)
	adjustmentHandler := handlers.NewAdjustmentHandler(adjustmentUseCase, negotiationUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)
	sessionHandler := handlers.NewSessionHandler(sessions)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentCallbackRoute(v1, paymentHandler)
	if st.blobs != nil {
		addObjectRoutes(v1, handlers.NewObjectHandler(st.blobs))
	}

	// Rotas autenticadas
	authed := v1.Group("", middleware.Auth(sessions))
	addSessionRoutes(authed, sessionHandler)
	addRequestRoutes(authed, requestHandler, adjustmentHandler, paymentHandler)
	addAdjustmentRoutes(authed, adjustmentHandler)
	addPaymentRoutes(authed, paymentHandler)
	return nil
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
