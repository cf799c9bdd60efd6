package migrations

import (
	"gorm.io/gorm"

	"github.com/aldeanavidad/tienda/app/models"
	"github.com/aldeanavidad/tienda/pkg/migration"
)

type createUsuarios struct{}

func (createUsuarios) Up(db *gorm.DB) error {
	return db.Migrator().AutoMigrate(&models.User{})
}

func (createUsuarios) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.User{})
}

func init() {
	migration.Register("20251101000001_create_usuarios_table", createUsuarios{})
}
