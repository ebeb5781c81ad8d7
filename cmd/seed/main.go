package main

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom/backend/internal/models"
)

// Seeds a local database with records that exercise every alert rule.
func main() {
	db, err := gorm.Open(sqlite.Open("./data/stockroom.db"), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Order{},
		&models.Package{},
		&models.InventoryItem{},
		&models.InventoryProfile{},
		&models.Warranty{},
		&models.Notification{},
		&models.Setting{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	fmt.Println("✓ Database migrated successfully")

	now := time.Now()
	expiry := now.AddDate(0, 0, 2)

	orders := []models.Order{
		{
			Code:          "ORD-1001",
			Status:        models.OrderStatusCompleted,
			PaymentStatus: models.PaymentStatusPaid,
			CustomerName:  "Alba Supplies",
			ExpiryDate:    &expiry,
			CreatedAt:     now.AddDate(0, -1, 0),
		},
		{
			Code:          "ORD-1002",
			Status:        models.OrderStatusProcessing,
			PaymentStatus: models.PaymentStatusPaid,
			CustomerName:  "Northgate Retail",
			CreatedAt:     now,
		},
		{
			Code:          "ORD-1003",
			Status:        models.OrderStatusProcessing,
			PaymentStatus: models.PaymentStatusUnpaid,
			CustomerName:  "Harbor & Co",
			CreatedAt:     now.AddDate(0, 0, -5),
		},
	}
	for i := range orders {
		if err := db.Create(&orders[i]).Error; err != nil {
			log.Fatal("Failed to seed orders:", err)
		}
	}
	fmt.Printf("✓ Seeded %d orders\n", len(orders))

	item := models.InventoryItem{
		Code:         "ITM-2001",
		Name:         "Streaming Bundle",
		AccountBased: true,
		Stock:        12,
	}
	if err := db.Create(&item).Error; err != nil {
		log.Fatal("Failed to seed inventory:", err)
	}
	profiles := []models.InventoryProfile{
		{ItemID: item.ID, Label: "Slot 1", NeedsUpdate: true},
		{ItemID: item.ID, Label: "Slot 2", NeedsUpdate: true},
		{ItemID: item.ID, Label: "Slot 3", NeedsUpdate: false},
	}
	for i := range profiles {
		if err := db.Create(&profiles[i]).Error; err != nil {
			log.Fatal("Failed to seed profiles:", err)
		}
	}
	fmt.Printf("✓ Seeded inventory item with %d profiles\n", len(profiles))

	warranty := models.Warranty{
		Code:      "WAR-3001",
		OrderID:   orders[0].ID,
		Status:    models.WarrantyStatusPending,
		CreatedAt: now,
	}
	if err := db.Create(&warranty).Error; err != nil {
		log.Fatal("Failed to seed warranty:", err)
	}
	fmt.Println("✓ Seeded warranty")

	fmt.Println("Done.")
}
