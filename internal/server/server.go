package server

import (
	"net/http"

	"docmarket/internal/apperr"
	"docmarket/internal/handler"
	appmw "docmarket/internal/middleware"
	"docmarket/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	echo            *echo.Echo
	jwtSecret       string
	userHandler     *handler.UserHandler
	productHandler  *handler.ProductHandler
	purchaseHandler *handler.PurchaseHandler
	earningsHandler *handler.EarningsHandler
	webhookHandler  *handler.WebhookHandler
}

func NewServer(
	log *zap.Logger,
	jwtSecret string,
	userService service.UserService,
	productService service.ProductService,
	purchaseService service.PurchaseService,
	earningsService service.EarningsService,
	settlementService service.SettlementService,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.HTTPErrorHandler = errorHandler(e, log)

	s := &Server{
		echo:            e,
		jwtSecret:       jwtSecret,
		userHandler:     handler.NewUserHandler(userService),
		productHandler:  handler.NewProductHandler(productService),
		purchaseHandler: handler.NewPurchaseHandler(purchaseService),
		earningsHandler: handler.NewEarningsHandler(earningsService),
		webhookHandler:  handler.NewWebhookHandler(settlementService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.POST("/users/register", s.userHandler.Register)
	api.POST("/users/login", s.userHandler.Login)

	api.GET("/products", s.productHandler.ListProducts)
	api.GET("/products/:shortCode", s.productHandler.GetProduct)

	// -------- authenticated --------
	auth := api.Group("", appmw.JWTAuth(s.jwtSecret))
	auth.GET("/me", s.userHandler.GetProfile)
	auth.GET("/me/products", s.productHandler.ListMyProducts)
	auth.GET("/me/library", s.purchaseHandler.GetLibrary)
	auth.GET("/me/earnings", s.earningsHandler.ListMyEarnings)
	auth.POST("/products", s.productHandler.CreateProduct)
	auth.POST("/purchases", s.purchaseHandler.InitiatePurchase)

	// -------- gateway webhooks --------
	api.POST("/gateway/webhook", s.webhookHandler.GatewayWebhook)
}

// errorHandler translates apperr values into JSON responses; anything else
// falls through to echo's default handling.
func errorHandler(e *echo.Echo, log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if appErr, ok := apperr.As(err); ok {
			if c.Response().Committed {
				return
			}
			if appErr.Status >= http.StatusInternalServerError {
				log.Error("request failed", zap.Error(err))
			}
			_ = c.JSON(appErr.Status, map[string]string{
				"error":   appErr.Kind,
				"message": appErr.Message,
			})
			return
		}

		e.DefaultHTTPErrorHandler(err, c)
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
