package db

import (
	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.AdminProfile{},
		&model.Category{},
		&model.Accessory{},
		&model.Pet{},
		&model.Address{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.Payment{},
		&model.Contact{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	// Categories are needed for catalog filtering
	if err := seedCategories(); err != nil {
		logger.Error("Failed to seed categories", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

func seedCategories() error {
	var count int64
	if err := DB.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding category data...")

	categories := []model.Category{
		{Name: "Dogs", Description: "Dogs of all breeds and sizes"},
		{Name: "Cats", Description: "Cats and kittens"},
		{Name: "Birds", Description: "Parrots, budgies and other birds"},
		{Name: "Fish", Description: "Aquarium fish"},
		{Name: "Food", Description: "Pet food and treats"},
		{Name: "Toys", Description: "Toys and enrichment"},
		{Name: "Grooming", Description: "Grooming and care supplies"},
	}

	totalInserted := 0
	for _, category := range categories {
		if err := DB.Create(&category).Error; err != nil {
			logger.Error("Failed to create category", err, map[string]interface{}{
				"category": category.Name,
			})
			return err
		}
		totalInserted++
	}

	logger.Info("Categories seeded successfully", map[string]interface{}{
		"total_categories": totalInserted,
	})

	return nil
}
