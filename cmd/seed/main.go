package main

import (
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/config"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/logger"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"

	"github.com/shopspring/decimal"
)

// Seeds the catalog with a starter set of Ghanaian instruments. Safe to
// run repeatedly; existing rows are left alone.
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("database init failed: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("database migration failed: %v", err)
	}

	categories := []models.Category{
		{Name: "Drums", Description: "Hand drums and percussion", SortOrder: 1},
		{Name: "Strings", Description: "Plucked and bowed string instruments", SortOrder: 2},
		{Name: "Wind", Description: "Flutes and horns", SortOrder: 3},
	}
	for _, category := range categories {
		var existing models.Category
		if err := models.DB.Where("name = ?", category.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&category).Error; err != nil {
				stdLog.Printf("create category %s failed: %v", category.Name, err)
			} else {
				stdLog.Printf("created category: %s", category.Name)
			}
		} else {
			stdLog.Printf("category already exists: %s", category.Name)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("name IN ?", []string{"Drums", "Strings", "Wind"}).Find(&categoryList).Error; err != nil {
		stdLog.Fatalf("load categories failed: %v", err)
	}
	for _, category := range categoryList {
		categoryIDs[category.Name] = category.ID
	}

	brands := []models.Brand{
		{Name: "Kumasi Drumworks", CategoryID: categoryIDs["Drums"]},
		{Name: "Accra Strings Co", CategoryID: categoryIDs["Strings"]},
		{Name: "Tamale Winds", CategoryID: categoryIDs["Wind"]},
	}
	brandIDs := map[string]uint{}
	for _, brand := range brands {
		var existing models.Brand
		if err := models.DB.Where("name = ? AND category_id = ?", brand.Name, brand.CategoryID).First(&existing).Error; err != nil {
			if err := models.DB.Create(&brand).Error; err != nil {
				stdLog.Printf("create brand %s failed: %v", brand.Name, err)
				continue
			}
			stdLog.Printf("created brand: %s", brand.Name)
			brandIDs[brand.Name] = brand.ID
		} else {
			brandIDs[brand.Name] = existing.ID
		}
	}

	drumBrand := brandIDs["Kumasi Drumworks"]
	stringBrand := brandIDs["Accra Strings Co"]
	windBrand := brandIDs["Tamale Winds"]

	products := []models.Product{
		{
			Title:       "Djembe Drum, Carved Tweneboa",
			Description: "Hand-carved djembe with goatskin head, rope-tuned.",
			CategoryID:  categoryIDs["Drums"],
			BrandID:     &drumBrand,
			Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("450.00")),
			Stock:       12,
			Status:      "active",
			SortOrder:   1,
		},
		{
			Title:       "Talking Drum (Donno)",
			Description: "Hourglass tension drum with curved stick.",
			CategoryID:  categoryIDs["Drums"],
			BrandID:     &drumBrand,
			Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("280.00")),
			Stock:       20,
			Status:      "active",
			SortOrder:   2,
		},
		{
			Title:       "Seperewa Harp-Lute, 10 String",
			Description: "Traditional Akan harp-lute, cedar body.",
			CategoryID:  categoryIDs["Strings"],
			BrandID:     &stringBrand,
			Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("795.50")),
			Stock:       5,
			Status:      "active",
			SortOrder:   1,
		},
		{
			Title:       "Gyil Xylophone, 14 Key",
			Description: "Pentatonic gyil with gourd resonators.",
			CategoryID:  categoryIDs["Strings"],
			BrandID:     &stringBrand,
			Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("1250.00")),
			Stock:       3,
			Status:      "active",
			SortOrder:   2,
		},
		{
			Title:       "Atenteben Bamboo Flute",
			Description: "Diatonic bamboo flute in C.",
			CategoryID:  categoryIDs["Wind"],
			BrandID:     &windBrand,
			Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("95.00")),
			Stock:       40,
			Status:      "active",
			SortOrder:   1,
		},
	}
	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("title = ?", product.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("create product %s failed: %v", product.Title, err)
			} else {
				stdLog.Printf("created product: %s", product.Title)
			}
		} else {
			stdLog.Printf("product already exists: %s", product.Title)
		}
	}

	stdLog.Printf("seed finished")
}
