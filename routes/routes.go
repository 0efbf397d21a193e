package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hotelfood/configs"
	"hotelfood/controllers"
	"hotelfood/entity"
	"hotelfood/middlewares"
	"hotelfood/pkg/cartstore"
	"hotelfood/pkg/metrics"
	"hotelfood/repository"
	"hotelfood/services"
	"hotelfood/ws"
)

// Deps is everything the HTTP layer needs from main.
type Deps struct {
	DB      *gorm.DB
	Config  *configs.Config
	Carts   cartstore.Store
	Hub     *ws.OrderHub // nil disables the live feed
	Metrics *metrics.Metrics
	Limiter *middlewares.RateLimiter
	Log     *logrus.Logger
}

// NewRouter builds the engine with the global middleware stack and every route.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(d.Log))
	if d.Metrics != nil {
		r.Use(middlewares.Metrics(d.Metrics))
	}
	r.Use(middlewares.CORSMiddleware(d.Config.CORSOrigins))

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	// Repositories
	menuRepo := repository.NewMenuRepository(d.DB)
	catRepo := repository.NewCategoryRepository(d.DB)
	orderRepo := repository.NewOrderRepository(d.DB)
	staffRepo := repository.NewStaffRepository(d.DB)
	dashRepo := repository.NewDashboardRepository(d.DB)

	// Services
	var notifier services.Notifier
	if d.Hub != nil {
		notifier = d.Hub
	}
	cartSvc := services.NewCartService(d.Carts, menuRepo)
	orderSvc := services.NewOrderService(d.DB, orderRepo, d.Carts, notifier, d.Metrics, d.Log)
	menuSvc := services.NewMenuService(menuRepo, catRepo)
	authSvc := services.NewAuthService(staffRepo, cartSvc, cfg.JWTSecret, cfg.JWTTTL)
	dashSvc := services.NewDashboardService(dashRepo, orderRepo, menuRepo, catRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc, cfg.CookieSecure, cfg.JWTTTL)
	customerCtrl := controllers.NewCustomerController(menuSvc, cartSvc, orderSvc)
	kitchenCtrl := controllers.NewKitchenController(orderSvc)
	adminCtrl := controllers.NewAdminController(dashSvc, menuSvc, orderSvc)

	limiter := d.Limiter
	if limiter == nil {
		limiter = middlewares.NewRateLimiter(cfg.LoginRatePerMin, cfg.LoginBurst, d.Log)
	}

	// Auth (public)
	r.GET("/", middlewares.OptionalAuth(cfg.JWTSecret), authCtrl.Home)
	r.POST("/", authCtrl.SelectRole)
	r.GET("/admin_login", authCtrl.StaffLoginForm)
	r.POST("/admin_login", limiter.Handler(), authCtrl.StaffLogin)
	r.GET("/logout/", middlewares.OptionalAuth(cfg.JWTSecret), authCtrl.Logout)

	// Customer
	cust := r.Group("/customer", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleCustomer))
	{
		cust.GET("/", customerCtrl.Index) // ?category=&search=
		cust.POST("/add_to_cart/:id/", customerCtrl.AddToCart)
		cust.POST("/update_cart/:id/", customerCtrl.UpdateCart)
		cust.POST("/place_order/", customerCtrl.PlaceOrder)
	}

	// Kitchen
	kitchen := r.Group("/kitchen", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleKitchen))
	{
		kitchen.GET("/", kitchenCtrl.List)
		kitchen.POST("/update_status/:order_id/", kitchenCtrl.UpdateStatus)
	}

	// Admin (admin only)
	admin := r.Group("/dashboard", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleAdmin))
	{
		admin.GET("/", adminCtrl.Index)
		admin.GET("/menu/add/", adminCtrl.MenuAddForm)
		admin.POST("/menu/add/", adminCtrl.MenuAdd)
		admin.GET("/menu/edit/:id/", adminCtrl.MenuEditForm)
		admin.POST("/menu/edit/:id/", adminCtrl.MenuEdit)
		admin.POST("/menu/delete/:id/", adminCtrl.MenuDelete)
		admin.POST("/order/update_status/:id/", adminCtrl.OrderUpdateStatus)
	}

	// Live order feed
	if d.Hub != nil {
		r.GET("/kitchen/ws", middlewares.WSAuthMiddleware(cfg.JWTSecret, entity.RoleKitchen), d.Hub.HandleWebSocket)
		r.GET("/dashboard/ws", middlewares.WSAuthMiddleware(cfg.JWTSecret, entity.RoleAdmin), d.Hub.HandleWebSocket)
	}
}
