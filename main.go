package main

import (
	"log"
	"os"

	"salon-admin-backend/config"
	"salon-admin-backend/models"
	"salon-admin-backend/routes"
	"salon-admin-backend/services"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Service{},
		&models.PackageService{},
		&models.Package{},
		&models.Booking{},
		&models.BookingReturnedService{},
		&models.Installment{},
		&models.ServiceExecution{},
		&models.WorkerPoints{},
		&models.Expense{},
		&models.Advance{},
		&models.ReminderLog{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	points := services.NewPointsService(db)
	services.NewSettlementService(db, points).StartScheduler()
	services.NewReminderService(db).StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter(db)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
