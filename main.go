package main

import (
	"log"
	"os"

	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/config"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/database"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/middlewares"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/models"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/router"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/services"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/utils"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	sweeper := services.NewReservationSweeper(db)
	sweeper.Start()
	defer sweeper.Stop()

	r := router.SetupRouter(db)

	// 50 requests per second per IP across the whole API
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.Reservation{},
		&models.ProductCategory{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Favourite{},
		&models.Comment{},
		&models.Notification{},
		&models.ChatMessage{},
		&models.ChatAttachment{},
		&models.ChatReaction{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	if err := database.EnsureIndexes(db); err != nil {
		utils.ErrorLogger.Printf("Error creating indexes: %v", err)
	}

	utils.InfoLogger.Println("AutoMigrate completed.")
}
