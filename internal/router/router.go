package router

import (
	"net/http"
	"time"

	"warungpos/internal/auth"
	"warungpos/internal/checkout"
	"warungpos/internal/ledger"
	"warungpos/internal/menu"
	"warungpos/internal/middleware"
	"warungpos/internal/observability"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps is everything the HTTP surface is built from.
type Deps struct {
	Auth        *auth.Handler
	Menu        *menu.Handler
	Checkout    *checkout.Handler
	Reports     *ledger.Handler
	Tokens      *auth.TokenIssuer
	Logger      observability.Logger
	CORSOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.AuthMiddleware(d.Tokens, d.Logger)
	managerOnly := middleware.RequireRole(auth.RoleManager)

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", d.Auth.Register)
		authGroup.POST("/login", d.Auth.Login)
		authGroup.POST("/staff", requireAuth, managerOnly, d.Auth.RegisterStaff)
	}

	// ───────────────────────── MENU ─────────────────────────
	menus := r.Group("/menu")
	menus.Use(requireAuth)
	{
		menus.GET("", d.Menu.List)
		menus.GET("/:id", d.Menu.Get)
	}

	// ───────────────────────── INVENTORY ─────────────────────────
	inventory := r.Group("/inventory")
	inventory.Use(requireAuth)
	{
		inventory.GET("/low-stock", d.Menu.LowStock)
		inventory.POST("/:id/restock", managerOnly, d.Menu.Restock)
		inventory.PUT("/:id/stock", managerOnly, d.Menu.SetStock)
	}

	// ───────────────────────── CART + CHECKOUT ─────────────────────────
	r.GET("/payment-methods", requireAuth, d.Checkout.PaymentMethods)

	cart := r.Group("/cart")
	cart.Use(requireAuth)
	{
		cart.GET("", d.Checkout.GetCart)
		cart.DELETE("", d.Checkout.ClearCart)
		cart.POST("/items", d.Checkout.AddItem)
		cart.PATCH("/items/:item_id", d.Checkout.UpdateItem)
		cart.DELETE("/items/:item_id", d.Checkout.RemoveItem)
		cart.POST("/checkout", d.Checkout.Checkout)
	}

	r.GET("/orders/:id/receipt", requireAuth, d.Checkout.Receipt)

	// ───────────────────────── REPORTS ─────────────────────────
	reports := r.Group("/reports")
	reports.Use(requireAuth, managerOnly)
	{
		reports.GET("/sales", d.Reports.Sales)
	}

	return r
}
