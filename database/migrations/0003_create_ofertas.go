package migrations

import (
	"gorm.io/gorm"

	"github.com/aldeanavidad/tienda/app/models"
	"github.com/aldeanavidad/tienda/pkg/migration"
)

type createOfertas struct{}

func (createOfertas) Up(db *gorm.DB) error {
	return db.Migrator().AutoMigrate(&models.Offer{})
}

func (createOfertas) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Offer{})
}

func init() {
	migration.Register("20251101000003_create_ofertas_table", createOfertas{})
}
