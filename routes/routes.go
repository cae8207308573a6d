package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/heavymachinery/backend/controllers"
	"github.com/heavymachinery/backend/middleware"
	"github.com/heavymachinery/backend/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Controllers bundles everything RegisterRoutes wires up.
type Controllers struct {
	Auth    *controllers.AuthController
	Product *controllers.ProductController
	Offer   *controllers.OfferController
	Order   *controllers.OrderController
	Chat    *controllers.ChatController
	Support *controllers.SupportController
	User    *controllers.UserController
	Admin   *controllers.AdminController
}

// RegisterRoutes sets up CORS, the public catalog surface, the
// authenticated account/order/chat routes and the admin back office.
func RegisterRoutes(r *gin.Engine, c *Controllers, tokens *services.TokenService, allowedOrigins []string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "OK", "service": "heavymachinery-backend"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	auth.POST("/register", c.Auth.Register)
	auth.POST("/login", c.Auth.Login)
	auth.GET("/check", middleware.RequireAuth(tokens), c.Auth.Check)

	// Public catalog surface. Static paths coexist with the :id
	// parameter route; gin resolves static segments first.
	products := r.Group("/products")
	products.GET("", c.Product.ListProducts)
	products.GET("/search", c.Product.SearchProducts)
	products.GET("/sort/price", c.Product.SortedProducts)
	products.GET("/trending", c.Product.TrendingProducts)
	products.GET("/similar/:id", c.Product.SimilarProducts)
	products.GET("/:id", c.Product.GetProduct)

	adminProducts := products.Group("", middleware.RequireAuth(tokens), middleware.RequireAdmin())
	adminProducts.POST("", c.Product.AddProduct)
	adminProducts.PUT("/:id", c.Product.UpdateProduct)
	adminProducts.DELETE("/:id", c.Product.DeleteProduct)

	offers := r.Group("/offers")
	offers.GET("", c.Offer.ListOffers)
	offers.POST("", middleware.RequireAuth(tokens), middleware.RequireAdmin(), c.Offer.AddOffer)

	r.GET("/faqs", c.Support.ListFAQs)
	r.POST("/faqs", middleware.RequireAuth(tokens), c.Support.AddFAQ)
	r.POST("/feedback", middleware.RequireAuth(tokens), c.Support.AddFeedback)

	orders := r.Group("/orders", middleware.RequireAuth(tokens))
	orders.POST("", c.Order.CreateOrder)
	orders.GET("", c.Order.ListOrders)

	chat := r.Group("/chat", middleware.RequireAuth(tokens))
	chat.POST("/inquiry", c.Chat.Inquiry)
	chat.GET("/history", c.Chat.History)

	authed := r.Group("", middleware.RequireAuth(tokens))
	authed.GET("/users/me", c.User.Profile)
	authed.GET("/cart", c.User.GetCart)
	authed.POST("/cart", c.User.AddToCart)
	authed.DELETE("/cart", c.User.ClearCart)
	authed.DELETE("/cart/:productId", c.User.RemoveFromCart)
	authed.GET("/favorites", c.User.GetFavorites)
	authed.POST("/favorites/:productId", c.User.AddFavorite)
	authed.DELETE("/favorites/:productId", c.User.RemoveFavorite)
	authed.PUT("/subscriptions", c.User.SetSubscription)

	r.GET("/users/loyal", middleware.RequireAuth(tokens), middleware.RequireAdmin(), c.Admin.LoyalCustomers)

	admin := r.Group("/admin", middleware.RequireAuth(tokens), middleware.RequireAdmin())
	admin.GET("/stats/monthly-sales", c.Admin.MonthlySales)
	admin.GET("/stats/inventory", c.Admin.Inventory)
	admin.GET("/export/orders.csv", c.Admin.ExportOrders)
	admin.GET("/orders", c.Admin.AllOrders)
	admin.PUT("/orders/:id/status", c.Admin.UpdateOrderStatus)
}
