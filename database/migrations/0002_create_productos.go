package migrations

import (
	"gorm.io/gorm"

	"github.com/aldeanavidad/tienda/app/models"
	"github.com/aldeanavidad/tienda/pkg/migration"
)

type createProductos struct{}

func (createProductos) Up(db *gorm.DB) error {
	return db.Migrator().AutoMigrate(&models.Product{})
}

func (createProductos) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Product{})
}

func init() {
	migration.Register("20251101000002_create_productos_table", createProductos{})
}
