package repositories_test

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/aldeanavidad/tienda/app/models"
	"github.com/aldeanavidad/tienda/pkg/database"
)

// openTestDB gives each test its own sqlite database with the full
// schema in place.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Offer{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

// seedProduct inserts a product and returns it.
func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int, active bool) models.Product {
	t.Helper()

	p := models.Product{
		Name:     name,
		Price:    price,
		Category: "dulces",
		Stock:    stock,
		Active:   active,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product %s: %v", name, err)
	}
	return p
}
