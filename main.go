package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/stall-pos/config"
	"github.com/yeremiapane/stall-pos/database"
	"github.com/yeremiapane/stall-pos/models"
	"github.com/yeremiapane/stall-pos/router"
	"github.com/yeremiapane/stall-pos/services"
	"github.com/yeremiapane/stall-pos/utils"
	"gorm.io/gorm"
)

func init() {
	// Load .env file di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	} else {
		log.Printf("Successfully loaded .env file")
	}

	// Validate required environment variables. Missing values only
	// warn; the store client falls back to local-dev defaults.
	requiredEnvVars := []string{
		"STALL_DB_ADDR",
		"STALL_DB_CREDENTIALS",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" {
			log.Printf("Warning: Required environment variable %s is not set", envVar)
		} else {
			log.Printf("Environment variable %s is set", envVar)
		}
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		// Keep serving: the board stays empty and every store call is
		// logged until the database comes back.
		utils.ErrorLogger.Printf("Failed to open database handle: %v", err)
	}

	// Set gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)
	seedMenu(db)

	// Board state, primed once so the first viewer sees the store as it
	// is rather than an empty board.
	board := services.NewBoardService(db)
	if err := board.Refresh(); err != nil {
		utils.ErrorLogger.Printf("Initial board refresh failed: %v", err)
	}

	// Change monitor polls the db_changes journal and refreshes the
	// board when other clients touch the store.
	monitor := services.NewChangeMonitor(db, board)
	monitor.Interval = 500 * time.Millisecond
	monitor.Start()
	defer monitor.Stop()

	r := router.SetupRouter(db, board)

	// Set trusted proxies
	r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	// Run server
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
		&models.MenuItem{},
		&models.Order{},
		&models.DBChange{},
	)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to AutoMigrate: %v", err)
		return
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	// Execute triggers
	if err := database.ExecuteTriggers(db); err != nil {
		utils.ErrorLogger.Printf("Error setting up triggers: %v", err)
	}
}

// seedMenu inserts the two stall items when they are missing. The menu
// is fixed; nothing in the API mutates it.
func seedMenu(db *gorm.DB) {
	items := []models.MenuItem{
		{Kind: models.KindApple, Name: "Candy Apple", Price: 300},
		{Kind: models.KindBanana, Name: "Chocolate Banana", Price: 200},
	}
	for _, item := range items {
		var existing models.MenuItem
		if err := db.Where("kind = ?", item.Kind).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&item).Error; err != nil {
			utils.ErrorLogger.Printf("Error seeding menu item %s: %v", item.Kind, err)
		}
	}
}
