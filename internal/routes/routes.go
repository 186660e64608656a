package routes

import (
	"souqora_back_end/internal/handlers/payment"
	"souqora_back_end/internal/handlers/product"
	"souqora_back_end/internal/handlers/user"
	"souqora_back_end/internal/middleware"
	"souqora_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Images servies depuis MinIO
	r.GET("/:folder/:filename", product.ServeImage)

	// Webhook Stripe : hors /api/v1, body brut signé
	r.POST("/webhook-checkout", payment.StripeWebhook)

	api := r.Group("/api/v1")
	api.Use(middleware.APIRateLimit())

	// ===== Auth =====
	auth := api.Group("/auth")
	auth.POST("/signup", middleware.RegisterRateLimit(), user.Signup)
	auth.POST("/login", middleware.LoginRateLimit(), user.Login)
	auth.POST("/forgot-password", middleware.ForgotPasswordRateLimit(), user.ForgotPassword)
	auth.POST("/verify-reset-code", user.VerifyResetCode)
	auth.PUT("/reset-password", user.ResetPassword)
	auth.GET("/:provider", user.BeginAuth)
	auth.GET("/:provider/callback", user.CallbackAuth)

	// ===== Catalogue =====
	adminOrManager := middleware.AllowedTo(models.RoleAdmin, models.RoleManager)
	adminOnly := middleware.AllowedTo(models.RoleAdmin)

	categories := api.Group("/categories")
	categories.GET("", product.GetCategories)
	categories.GET("/:id", product.GetCategory)
	categories.POST("", middleware.AuthRequired(), adminOrManager, product.CreateCategory)
	categories.PUT("/:id", middleware.AuthRequired(), adminOrManager, product.UpdateCategory)
	categories.PUT("/:id/image", middleware.AuthRequired(), adminOrManager, product.UploadCategoryImage)
	categories.DELETE("/:id", middleware.AuthRequired(), adminOnly, product.DeleteCategory)
	// Sous-catégories imbriquées
	categories.GET("/:id/subcategories", rewriteParam("id", "categoryId"), product.GetSubCategories)
	categories.POST("/:id/subcategories", middleware.AuthRequired(), adminOrManager,
		rewriteParam("id", "categoryId"), product.CreateSubCategory)

	subcategories := api.Group("/subcategories")
	subcategories.GET("", product.GetSubCategories)
	subcategories.GET("/:id", product.GetSubCategory)
	subcategories.POST("", middleware.AuthRequired(), adminOrManager, product.CreateSubCategory)
	subcategories.PUT("/:id", middleware.AuthRequired(), adminOrManager, product.UpdateSubCategory)
	subcategories.DELETE("/:id", middleware.AuthRequired(), adminOnly, product.DeleteSubCategory)

	brands := api.Group("/brands")
	brands.GET("", product.GetBrands)
	brands.GET("/:id", product.GetBrand)
	brands.POST("", middleware.AuthRequired(), adminOrManager, product.CreateBrand)
	brands.PUT("/:id", middleware.AuthRequired(), adminOrManager, product.UpdateBrand)
	brands.PUT("/:id/image", middleware.AuthRequired(), adminOrManager, product.UploadBrandImage)
	brands.DELETE("/:id", middleware.AuthRequired(), adminOnly, product.DeleteBrand)

	products := api.Group("/products")
	products.GET("", product.GetProducts)
	products.GET("/:id", product.GetProduct)
	products.POST("", middleware.AuthRequired(), adminOrManager, product.CreateProduct)
	products.PUT("/:id", middleware.AuthRequired(), adminOrManager, product.UpdateProduct)
	products.PUT("/:id/images", middleware.AuthRequired(), adminOrManager, product.UploadProductImages)
	products.DELETE("/:id", middleware.AuthRequired(), adminOnly, product.DeleteProduct)
	// Avis imbriqués
	products.GET("/:id/reviews", rewriteParam("id", "productId"), product.GetReviews)
	products.POST("/:id/reviews", middleware.AuthRequired(),
		rewriteParam("id", "productId"), product.CreateReview)

	reviews := api.Group("/reviews")
	reviews.GET("", product.GetReviews)
	reviews.GET("/:id", product.GetReview)
	reviews.POST("", middleware.AuthRequired(), product.CreateReview)
	reviews.PUT("/:id", middleware.AuthRequired(), product.UpdateReview)
	reviews.DELETE("/:id", middleware.AuthRequired(), product.DeleteReview)

	// ===== Utilisateurs =====
	users := api.Group("/users", middleware.AuthRequired())
	users.GET("/me", user.GetMe)
	users.PUT("/me", user.UpdateMe)
	users.PUT("/me/password", user.ChangeMyPassword)
	users.PUT("/me/profile-image", user.UploadProfileImage)
	users.DELETE("/me", user.DeactivateMe)
	users.GET("", adminOnly, user.GetUsers)
	users.GET("/:id", adminOnly, user.GetUser)
	users.PUT("/:id", adminOnly, user.UpdateUser)
	users.DELETE("/:id", adminOnly, user.DeleteUser)

	wishlist := api.Group("/wishlist", middleware.AuthRequired())
	wishlist.GET("", user.GetMyWishlist)
	wishlist.POST("", user.AddToWishlist)
	wishlist.DELETE("/:productId", user.RemoveFromWishlist)

	addresses := api.Group("/addresses", middleware.AuthRequired())
	addresses.GET("", user.GetMyAddresses)
	addresses.POST("", user.AddAddress)
	addresses.DELETE("/:addressId", user.RemoveAddress)

	// ===== Panier =====
	cart := api.Group("/cart", middleware.AuthRequired())
	cart.GET("", user.GetMyCart)
	cart.POST("", user.AddToCart)
	cart.PUT("/apply-coupon", user.ApplyCoupon)
	cart.PUT("/:itemId", user.UpdateCartItem)
	cart.DELETE("/:itemId", user.RemoveCartItem)
	cart.DELETE("", user.ClearCart)
	cart.GET("/ws", user.CartWebSocket)

	// ===== Coupons (admin) =====
	coupons := api.Group("/coupons", middleware.AuthRequired(), adminOrManager)
	coupons.GET("", payment.GetCoupons)
	coupons.GET("/:id", payment.GetCoupon)
	coupons.POST("", payment.CreateCoupon)
	coupons.PUT("/:id", payment.UpdateCoupon)
	coupons.DELETE("/:id", payment.DeleteCoupon)

	// ===== Commandes =====
	orders := api.Group("/orders", middleware.AuthRequired())
	orders.GET("", payment.GetOrders)
	orders.GET("/:id", payment.GetOrder)
	orders.POST("/:cartId", payment.CreateCashOrder)
	orders.GET("/checkout-session/:cartId", payment.GetCheckoutSession)
	orders.PUT("/:id/pay", adminOrManager, payment.MarkOrderPaid)
	orders.PUT("/:id/deliver", adminOrManager, payment.MarkOrderDelivered)
}

// rewriteParam duplique un paramètre d'URL sous le nom attendu par le handler
// partagé entre route plate et route imbriquée
func rewriteParam(from, to string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Params = append(c.Params, gin.Param{Key: to, Value: c.Param(from)})
		c.Next()
	}
}
