package gateway

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/mealshop/pkg/auth"
	"github.com/example/mealshop/pkg/config"
	"github.com/example/mealshop/pkg/models"
)

type Gateway struct {
	config *config.Config
	logger *zap.Logger
	router *gin.Engine
	tokens *auth.TokenIssuer

	users     UserStore
	products  ProductStore
	packages  PackageStore
	orders    OrderStore
	dashboard DashboardStore
	otp       OTPStore
}

// Stores groups everything the gateway reads and writes. The concrete
// implementations live in pkg/repository; tests swap in fakes.
type Stores struct {
	Users     UserStore
	Products  ProductStore
	Packages  PackageStore
	Orders    OrderStore
	Dashboard DashboardStore
	OTP       OTPStore
}

func NewGateway(cfg *config.Config, logger *zap.Logger, stores Stores) *Gateway {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(loggerMiddleware(logger))
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CORS.AllowOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
		router.Use(cors.New(corsCfg))
	}

	return &Gateway{
		config:    cfg,
		logger:    logger,
		router:    router,
		tokens:    auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		users:     stores.Users,
		products:  stores.Products,
		packages:  stores.Packages,
		orders:    stores.Orders,
		dashboard: stores.Dashboard,
		otp:       stores.OTP,
	}
}

func (g *Gateway) SetupRoutes() {
	// Health check
	g.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Uploaded catalog images
	g.router.Static(g.config.Upload.PublicPath, g.config.Upload.Dir)

	v1 := g.router.Group("/api/v1")
	{
		authorize := v1.Group("/auth")
		{
			authorize.POST("/signup", g.signup)
			authorize.POST("/login", g.login)
		}

		products := v1.Group("/products")
		{
			products.GET("", g.listProducts)
			products.POST("", g.authRequired(), g.requireRole(models.RoleAdmin), g.createProduct)
			products.GET("/:id", g.authRequired(), g.requireRole(models.RoleAdmin), g.getProduct)
			products.PUT("/:id", g.authRequired(), g.requireRole(models.RoleAdmin), g.updateProduct)
			products.DELETE("/:id", g.authRequired(), g.requireRole(models.RoleAdmin), g.deleteProduct)
		}

		packages := v1.Group("/packages")
		{
			packages.GET("", g.listPackages)
			packages.POST("", g.authRequired(), g.requireRole(models.RoleAdmin), g.createPackage)
			packages.GET("/:id", g.authRequired(), g.getPackage)
			packages.PUT("/:id", g.authRequired(), g.requireRole(models.RoleAdmin), g.updatePackage)
			packages.DELETE("/:id", g.authRequired(), g.requireRole(models.RoleAdmin), g.deletePackage)
		}

		orders := v1.Group("/orders", g.authRequired())
		{
			orders.POST("", g.requireRole(models.RoleUser), g.createOrder)
			orders.GET("", g.requireRole(models.RoleAdmin), g.listOrders)
			orders.GET("/user/history", g.orderHistory)
			orders.GET("/:id", g.requireRole(models.RoleAdmin), g.getOrdersByUser)
			orders.PUT("/:id", g.requireRole(models.RoleAdmin), g.updateOrder)
			orders.DELETE("/:id", g.requireRole(models.RoleAdmin), g.deleteOrder)
		}

		users := v1.Group("/users")
		{
			users.POST("/generate-otp", g.generateOTP)
			users.POST("/verify-otp", g.verifyOTP)

			admin := users.Group("", g.authRequired(), g.requireRole(models.RoleAdmin))
			{
				admin.POST("", g.createUser)
				admin.GET("", g.listUsers)
				admin.GET("/:id", g.getUser)
				admin.PUT("/:id", g.updateUser)
				admin.DELETE("/:id", g.deleteUser)
			}
		}

		v1.POST("/dashboard", g.authRequired(), g.requireRole(models.RoleAdmin), g.getDashboard)
	}
}

func (g *Gateway) Start() error {
	addr := g.config.Server.Addr()
	g.logger.Info("Gateway starting", zap.String("address", addr))
	return g.router.Run(addr)
}
