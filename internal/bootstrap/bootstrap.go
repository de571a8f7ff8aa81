// Package bootstrap prepares the store before the server takes traffic:
// it creates the schema and plants the default accounts, categories and
// sample products. Every step is insert-or-ignore, so running it against
// an already populated database changes nothing.
package bootstrap

import (
	"context"
	"fmt"
	"math/rand/v2"

	"gorm.io/gorm"

	"github.com/toggar/toggar-backend/internal/hash"
	"github.com/toggar/toggar-backend/internal/models"
)

const (
	AdminEmail = "admin@toggar.com"
	UserEmail  = "user@toggar.com"

	// Known demo credential, same for both default accounts.
	defaultPassword = "password"
)

var categoryNames = []string{
	"Screens",
	"Batteries",
	"Cases",
	"Chargers",
	"Cables",
	"Headphones",
	"Screen Protectors",
}

type sampleProduct struct {
	name        string
	description string
	price       float64
	stock       int
	imageURL    string
}

var sampleProducts = []sampleProduct{
	{"iPhone 14 Screen", "Original iPhone 14 OLED Screen Replacement", 299.99, 50, "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=300"},
	{"Samsung Galaxy S23 Battery", "Original Samsung Galaxy S23 Battery 3900mAh", 45.99, 30, "https://images.unsplash.com/photo-1609592806719-7d3d7d7f5b2f?w=300"},
	{"iPhone 14 Pro Case", "Premium Leather Case for iPhone 14 Pro", 39.99, 100, "https://images.unsplash.com/photo-1565849904461-04a58ad377e0?w=300"},
	{"Fast Charger 65W", "USB-C Fast Charger 65W with Cable", 29.99, 75, "https://images.unsplash.com/photo-1588872657578-7efd1f1555ed?w=300"},
	{"USB-C Cable 2m", "Premium USB-C to USB-C Cable 2 meters", 15.99, 200, "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=300"},
	{"Wireless Earbuds", "Bluetooth 5.0 Wireless Earbuds with Case", 79.99, 40, "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=300"},
	{"Screen Protector Pack", "Tempered Glass Screen Protector (3 Pack)", 12.99, 150, "https://images.unsplash.com/photo-1574944985070-8f3ebc6b79d2?w=300"},
	{"iPhone 13 Battery", "Original iPhone 13 Battery Replacement", 39.99, 25, "https://images.unsplash.com/photo-1609592806719-7d3d7d7f5b2f?w=300"},
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Account{}, &models.Category{}, &models.Product{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Seed is not safe to run concurrently with itself, but any interleaving
// still converges on the same data.
func Seed(ctx context.Context, db *gorm.DB) error {
	if err := seedAccounts(ctx, db); err != nil {
		return err
	}
	if err := seedCategories(ctx, db); err != nil {
		return err
	}
	return seedProducts(ctx, db)
}

func seedAccounts(ctx context.Context, db *gorm.DB) error {
	pwHash, err := hash.HashPassword(defaultPassword)
	if err != nil {
		return fmt.Errorf("hash default password: %w", err)
	}

	defaults := []models.Account{
		{Name: "Admin User", Email: AdminEmail, PasswordHash: pwHash, Role: models.RoleAdmin},
		{Name: "Regular User", Email: UserEmail, PasswordHash: pwHash, Role: models.RoleUser},
	}

	for _, want := range defaults {
		var acc models.Account
		err := db.WithContext(ctx).
			Where(models.Account{Email: want.Email}).
			Attrs(want).
			FirstOrCreate(&acc).Error
		if err != nil {
			return fmt.Errorf("seed account %s: %w", want.Email, err)
		}
	}
	return nil
}

func seedCategories(ctx context.Context, db *gorm.DB) error {
	for _, name := range categoryNames {
		var cat models.Category
		err := db.WithContext(ctx).
			Where(models.Category{Name: name}).
			FirstOrCreate(&cat).Error
		if err != nil {
			return fmt.Errorf("seed category %s: %w", name, err)
		}
	}
	return nil
}

func seedProducts(ctx context.Context, db *gorm.DB) error {
	// Demo data only: each sample product lands in one of the first three
	// categories, picked at random. Idempotency is keyed on name, so a
	// re-run never reshuffles existing rows.
	var cats []models.Category
	if err := db.WithContext(ctx).Order("id").Limit(3).Find(&cats).Error; err != nil {
		return fmt.Errorf("load seed categories: %w", err)
	}
	if len(cats) == 0 {
		return fmt.Errorf("no categories to assign products to")
	}

	for _, p := range sampleProducts {
		categoryID := cats[rand.IntN(len(cats))].ID
		var prod models.Product
		err := db.WithContext(ctx).
			Where(models.Product{Name: p.name}).
			Attrs(models.Product{
				Description: p.description,
				Price:       p.price,
				Stock:       p.stock,
				CategoryID:  &categoryID,
				ImageURL:    p.imageURL,
			}).
			FirstOrCreate(&prod).Error
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.name, err)
		}
	}
	return nil
}
