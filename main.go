package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tastehub/tastehub-api/config"
	"github.com/tastehub/tastehub-api/controllers"
	"github.com/tastehub/tastehub-api/logging"
	"github.com/tastehub/tastehub-api/middleware"
	"github.com/tastehub/tastehub-api/models"
	"github.com/tastehub/tastehub-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logging.Init(cfg.LogLevel, cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Sync()

	logging.L().Info("Starting TasteHub API server...")

	if err := config.ConnectDatabase(); err != nil {
		logging.L().Fatal("Failed to connect to database", zap.Error(err))
	}

	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.FoodItem{},
		&models.Purchase{},
		&models.ChatMessage{},
		&models.Conversation{},
		&models.Cart{},
	); err != nil {
		logging.L().Fatal("Failed to migrate database", zap.Error(err))
	}
	logging.L().Info("Database migration completed successfully")

	if cfg.AWSS3Bucket != "" {
		if _, err := services.InitS3Service(); err != nil {
			logging.L().Fatal("Failed to initialize S3 service", zap.Error(err))
		}
	} else {
		logging.L().Warn("AWS_S3_BUCKET not set, attachment uploads disabled")
	}

	router := setupRouter(cfg.IsProduction())

	addr := ":" + cfg.Port
	logging.L().Info("Server is running", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logging.L().Fatal("Failed to start server", zap.Error(err))
	}
}

// setupRouter builds the gin engine with the full route table
func setupRouter(production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/health", healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Order processor
	purchase := router.Group("/purchase")
	{
		purchase.POST("", controllers.CreatePurchase)
		purchase.GET("", controllers.ListPurchases)
		purchase.GET("/all", controllers.ListAllPurchases)
		purchase.PATCH("/:id", controllers.UpdatePurchaseStatus)
		purchase.DELETE("/:id", controllers.DeletePurchase)
	}

	// Conversation router
	chat := router.Group("/api/chat")
	{
		chat.POST("/messages/send", controllers.SendChatMessage)
		chat.GET("/messages/:userEmail", controllers.ListChatMessages)
		chat.PUT("/messages/read/:customerEmail", controllers.MarkCustomerMessagesRead)
		chat.GET("/unread-count/:userEmail", controllers.GetUnreadCount)
		chat.GET("/admin/conversations", controllers.ListConversations)
		chat.PUT("/admin/messages/read/:customerEmail", controllers.MarkAdminMessagesRead)
		chat.GET("/admin/total-unread", controllers.GetAdminTotalUnread)
		chat.POST("/attachments", controllers.UploadAttachment)
		chat.GET("/attachments/*key", controllers.GetAttachmentURL)
	}

	// Food listings
	foods := router.Group("/foods")
	{
		foods.GET("", controllers.ListFoods)
		foods.GET("/:id", controllers.GetFood)
		foods.POST("", middleware.RequireAdmin(), controllers.CreateFood)
		foods.GET("/my-foods/list", controllers.ListMyFoods)
		foods.PUT("/:id", middleware.RequireAdmin(), controllers.UpdateFood)
		foods.PATCH("/:id", controllers.PatchFoodStock)
	}

	// User profiles
	users := router.Group("/users")
	{
		users.GET("", middleware.RequireAdmin(), controllers.ListUsers)
		users.POST("", controllers.UpsertUser)
		users.GET("/:email", controllers.GetUser)
		users.PUT("/:email", controllers.UpdateUserProfile)
		users.PATCH("/:email", controllers.UpdateUserProfile)
		users.PATCH("/:email/role", middleware.RequireAdmin(), controllers.UpdateUserRole)
	}

	// Carts
	carts := router.Group("/carts")
	{
		carts.GET("/:email", controllers.GetCart)
		carts.POST("/:email/items", controllers.AddCartItem)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "TasteHub API is running",
	})
}
