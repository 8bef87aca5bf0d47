package router

import (
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/controllers"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/middlewares"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/models"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	reservationService := services.NewReservationService(db).
		WithMailer(services.NewMailerFromEnv())
	paymentService := services.NewPaymentService(db, services.NewMidtransService())

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	reservationCtrl := controllers.NewReservationController(db, reservationService)
	categoryCtrl := controllers.NewProductCategoryController(db)
	productCtrl := controllers.NewProductController(db)
	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db)
	paymentCtrl := controllers.NewPaymentController(db, paymentService)
	favouriteCtrl := controllers.NewFavouriteController(db)
	commentCtrl := controllers.NewCommentController(db)
	chatCtrl := controllers.NewChatController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Menu browsing needs no login
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/products", productCtrl.GetAllProducts)
	r.GET("/products/:slug", productCtrl.GetProductBySlug)
	r.GET("/comments/:product_id", commentCtrl.GetCommentsByProduct)

	// Tables and availability are visible to everyone
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/:table_id", tableCtrl.GetTableByID)
	r.GET("/tables/:table_id/qr", tableCtrl.GetTableQR)
	r.GET("/reservations/availability", reservationCtrl.CheckAvailability)

	// Gateway webhook authenticates via its signature, not a JWT
	r.POST("/payments/callback", paymentCtrl.HandleGatewayCallback)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", userCtrl.GetProfile)

		auth.GET("/cart", cartCtrl.GetCart)
		auth.POST("/cart/items", cartCtrl.AddItem)
		auth.PATCH("/cart/items/:item_id", cartCtrl.UpdateItem)
		auth.DELETE("/cart/items/:item_id", cartCtrl.RemoveItem)
		auth.DELETE("/cart", cartCtrl.ClearCart)

		auth.POST("/orders", orderCtrl.Checkout)
		auth.GET("/orders", orderCtrl.GetMyOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		auth.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)

		auth.POST("/payments", paymentCtrl.CreatePayment)
		auth.GET("/payments/:payment_id", paymentCtrl.GetPaymentByID)

		auth.POST("/reservations", reservationCtrl.CreateReservation)
		auth.GET("/reservations", reservationCtrl.GetMyReservations)
		auth.GET("/reservations/:reservation_id", reservationCtrl.GetReservationByID)
		auth.PATCH("/reservations/:reservation_id", reservationCtrl.UpdateReservation)
		auth.POST("/reservations/:reservation_id/cancel", reservationCtrl.CancelReservation)

		auth.GET("/favourites", favouriteCtrl.GetMyFavourites)
		auth.POST("/favourites", favouriteCtrl.AddFavourite)
		auth.DELETE("/favourites/:product_id", favouriteCtrl.RemoveFavourite)

		auth.POST("/comments", commentCtrl.CreateComment)
		auth.DELETE("/comments/:comment_id", commentCtrl.DeleteComment)

		auth.GET("/chat/messages", chatCtrl.GetMessages)
		auth.POST("/chat/messages", chatCtrl.CreateMessage)
		auth.DELETE("/chat/messages/:message_id", chatCtrl.DeleteMessage)
		auth.POST("/chat/messages/:message_id/reactions", chatCtrl.AddReaction)
		auth.DELETE("/chat/messages/:message_id/reactions", chatCtrl.RemoveReaction)
		auth.GET("/chat/ws", chatCtrl.HandleWS)

		auth.GET("/notifications", notificationCtrl.GetMyNotifications)
		auth.PATCH("/notifications/:notification_id/read", notificationCtrl.MarkRead)
	}

	// ----------------------------------------------------------------
	//                      STAFF ROUTES
	// ----------------------------------------------------------------
	staff := r.Group("/staff")
	staff.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles(models.RoleStaff))
	{
		staff.GET("/reservations", reservationCtrl.GetAllReservations)
		staff.POST("/reservations/:reservation_id/confirm", reservationCtrl.ConfirmReservation)
		staff.POST("/reservations/:reservation_id/cancel", reservationCtrl.CancelReservation)

		staff.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		staff.POST("/payments/settle", paymentCtrl.SettleCash)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles(models.RoleAdmin))
	{
		admin.POST("/users", userCtrl.CreateStaff)

		admin.POST("/tables", tableCtrl.CreateTable)
		admin.PATCH("/tables/:table_id/availability", tableCtrl.UpdateTableAvailability)
		admin.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.POST("/products", productCtrl.CreateProduct)
		admin.PATCH("/products/:product_id", productCtrl.UpdateProduct)
		admin.DELETE("/products/:product_id", productCtrl.DeleteProduct)

		admin.GET("/stats", adminCtrl.GetStats)
	}

	return r
}
