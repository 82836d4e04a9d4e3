package main

import (
	"log"
	"os"

	"arco-factory-manager/config"
	"arco-factory-manager/models"
	"arco-factory-manager/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	config.ConnectDB()

	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.RateListPrice{},
		&models.Customer{},
		&models.Vendor{},
		&models.Sale{},
		&models.SaleLine{},
		&models.Estimate{},
		&models.EstimateLine{},
		&models.Transaction{},
		&models.Expense{},
		&models.Labour{},
		&models.SalaryPayment{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	r := gin.Default()
	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
