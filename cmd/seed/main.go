package main

import (
	"github.com/pawstore/pawstore-backend/config"
	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/internal/db"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"github.com/pawstore/pawstore-backend/pkg/util"
	"gorm.io/gorm"
)

// Seeds a demo catalog and a staff account for local development.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logger.Initialize(logger.Config{
		Level:       "info",
		Format:      "console",
		EnableColor: true,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	gdb := db.GetDB()

	if err := seedStaffAccount(gdb); err != nil {
		logger.Fatal("Failed to seed staff account", err)
	}
	if err := seedAccessories(gdb); err != nil {
		logger.Fatal("Failed to seed accessories", err)
	}
	if err := seedPets(gdb); err != nil {
		logger.Fatal("Failed to seed pets", err)
	}

	logger.Info("Seed data loaded successfully")
}

func seedStaffAccount(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&model.User{}).Where("role = ?", model.RoleStaff).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Staff account already exists, skipping...")
		return nil
	}

	hash, err := util.HashPassword("ChangeMe123!")
	if err != nil {
		return err
	}

	staff := model.User{
		Username:     "admin",
		Email:        "admin@pawstore.local",
		PasswordHash: hash,
		FirstName:    "Store",
		LastName:     "Admin",
		Role:         model.RoleStaff,
		IsActive:     true,
	}
	if err := gdb.Create(&staff).Error; err != nil {
		return err
	}

	profile := model.AdminProfile{
		UserID:       staff.ID,
		IsSuperadmin: true,
	}
	if err := gdb.Create(&profile).Error; err != nil {
		return err
	}

	logger.Info("Staff account created", map[string]interface{}{
		"username": staff.Username,
		"email":    staff.Email,
	})
	return nil
}

func categoryID(gdb *gorm.DB, name string) (uint, error) {
	var category model.Category
	if err := gdb.Where("name = ?", name).First(&category).Error; err != nil {
		return 0, err
	}
	return category.ID, nil
}

func seedAccessories(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&model.Accessory{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Accessories already seeded, skipping...")
		return nil
	}

	foodID, err := categoryID(gdb, "Food")
	if err != nil {
		return err
	}
	toysID, err := categoryID(gdb, "Toys")
	if err != nil {
		return err
	}
	groomingID, err := categoryID(gdb, "Grooming")
	if err != nil {
		return err
	}

	accessories := []model.Accessory{
		{Name: "Premium Dog Food 5kg", Description: "Chicken and rice formula for adult dogs", Price: 1499, Stock: 40, CategoryID: foodID},
		{Name: "Kitten Starter Food 2kg", Description: "High-protein food for kittens up to 12 months", Price: 899, Stock: 25, CategoryID: foodID},
		{Name: "Rope Tug Toy", Description: "Braided cotton tug toy for medium dogs", Price: 299, Stock: 60, CategoryID: toysID},
		{Name: "Feather Wand", Description: "Interactive feather teaser for cats", Price: 199, Stock: 50, CategoryID: toysID},
		{Name: "Slicker Brush", Description: "De-shedding brush for long-haired breeds", Price: 449, Stock: 30, CategoryID: groomingID},
		{Name: "Oatmeal Shampoo 250ml", Description: "Gentle shampoo for sensitive skin", Price: 349, Stock: 3, CategoryID: groomingID},
	}

	for i := range accessories {
		if err := gdb.Create(&accessories[i]).Error; err != nil {
			return err
		}
	}

	logger.Info("Accessories seeded", map[string]interface{}{
		"count": len(accessories),
	})
	return nil
}

func seedPets(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&model.Pet{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Pets already seeded, skipping...")
		return nil
	}

	dogsID, err := categoryID(gdb, "Dogs")
	if err != nil {
		return err
	}
	catsID, err := categoryID(gdb, "Cats")
	if err != nil {
		return err
	}
	birdsID, err := categoryID(gdb, "Birds")
	if err != nil {
		return err
	}

	pets := []model.Pet{
		{Name: "Bruno", Breed: "Labrador Retriever", Age: 2, City: "Mumbai", Description: "Friendly and great with kids", Vaccinated: true, AdoptionFee: 2000, CategoryID: dogsID},
		{Name: "Simba", Breed: "Indie", Age: 1, City: "Pune", Description: "Energetic rescue pup", Vaccinated: true, AdoptionFee: 500, CategoryID: dogsID},
		{Name: "Misty", Breed: "Persian", Age: 3, City: "Bengaluru", Description: "Calm lap cat, loves brushing", Vaccinated: true, AdoptionFee: 1500, CategoryID: catsID},
		{Name: "Leo", Breed: "Siamese", Age: 2, City: "Delhi", Description: "Vocal and affectionate", Vaccinated: false, AdoptionFee: 1200, CategoryID: catsID},
		{Name: "Kiwi", Breed: "Budgerigar", Age: 1, City: "Chennai", Description: "Hand-tamed budgie pair available", Vaccinated: false, AdoptionFee: 300, CategoryID: birdsID},
	}

	for i := range pets {
		if err := gdb.Create(&pets[i]).Error; err != nil {
			return err
		}
	}

	logger.Info("Pets seeded", map[string]interface{}{
		"count": len(pets),
	})
	return nil
}
