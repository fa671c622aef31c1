package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "orcafacil/docs"
	"orcafacil/internal/adapter/http/handlers"
	"orcafacil/internal/adapter/persistence/kv"
	"orcafacil/internal/adapter/persistence/repository"
	"orcafacil/internal/config"
	"orcafacil/internal/infrastructure/export"
	"orcafacil/internal/infrastructure/logging"
	"orcafacil/internal/infrastructure/media"
	"orcafacil/internal/infrastructure/payments"
	"orcafacil/internal/usecase"
	"orcafacil/internal/usecase/interfaces"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups everything the router serves.
type Handlers struct {
	Estimate *handlers.EstimateHandler
	Company  *handlers.CompanyProfileHandler
	Payment  *handlers.BillingPaymentHandler
}

const shutdownTimeout = 15 * time.Second

// Run opens the store, wires the application and serves HTTP until ctx is done.
func Run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	logger = logging.OrDiscard(logger)
	backend, err := kv.Open(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.WithError(err).Warn("[app][routes] store close failed")
		}
	}()

	router := NewRouter(BuildHandlers(cfg, backend, logger), cfg.CORSAllowedOrigins, logger)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, srv, logger)
}

// serve drains in-flight requests once ctx is cancelled.
func serve(ctx context.Context, srv *http.Server, logger *logrus.Logger) error {
	serverErrCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("[app][routes] listening")
		serverErrCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("[app][routes] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	if err := <-serverErrCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// BuildHandlers wires repositories, use cases and handlers over an opened backend.
func BuildHandlers(cfg *config.Config, backend *kv.Backend, logger *logrus.Logger) Handlers {
	logger = logging.OrDiscard(logger)

	estimateRepo := repository.NewEstimateKVRepository(backend.Store, backend.Locker, logger)
	companyRepo := repository.NewCompanyProfileKVRepository(backend.Store, logger)
	paymentRepo := repository.NewBillingPaymentKVRepository(backend.Store, backend.Locker, logger)

	estimateUseCase := usecase.NewEstimateUseCase(estimateRepo, export.NewXLSXExporter(), logger)
	companyUseCase := usecase.NewCompanyProfileUseCase(companyRepo, media.NewLogoProcessor(cfg.LogoMaxWidth), cfg.PhoneRegion, logger)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.PaymentGatewayMock, logger)
	if err != nil {
		logger.WithError(err).Warn("[app][routes] Mercado Pago gateway not configured")
	} else {
		paymentGateway = mpGateway
	}
	sandbox := usecase.PaymentSandbox{
		Enabled:     cfg.MercadoPagoSandbox(),
		PayerEmail:  cfg.MercadoPagoTestPayerEmail,
		PayerUserID: cfg.MercadoPagoTestPayerUserID,
	}
	paymentUseCase := usecase.NewBillingPaymentUseCase(paymentRepo, estimateRepo, paymentGateway, sandbox, logger)

	return Handlers{
		Estimate: handlers.NewEstimateHandler(estimateUseCase, logger),
		Company:  handlers.NewCompanyProfileHandler(companyUseCase, logger),
		Payment:  handlers.NewBillingPaymentHandler(paymentUseCase, logger),
	}
}

// NewRouter builds the gin engine with middlewares, swagger and the /v1 routes.
// An empty allowedOrigins lets any origin call the API.
func NewRouter(h Handlers, allowedOrigins []string, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, allowedOrigins, logging.OrDiscard(logger))

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addEstimateRoutes(v1, h.Estimate)
	addCompanyRoutes(v1, h.Company)
	addBillingRoutes(v1, h.Payment)
	return router
}

func setMiddlewares(router *gin.Engine, allowedOrigins []string, logger *logrus.Logger) {
	router.Use(gin.Logger())
	router.Use(corsMiddleware(allowedOrigins))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.WithFields(logrus.Fields{"path": c.Request.URL.Path, "panic": recovered}).Error("[app][routes] recovered from panic")
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AddAllowMethods(http.MethodPatch)
	corsConfig.AddExposeHeaders("Content-Disposition")
	return cors.New(corsConfig)
}
