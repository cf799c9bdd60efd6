package migrations

import (
	"gorm.io/gorm"

	"github.com/aldeanavidad/tienda/app/models"
	"github.com/aldeanavidad/tienda/pkg/migration"
)

// pedidos and pedido_items migrate together: an item table without its
// header table is useless on rollback.
type createPedidos struct{}

func (createPedidos) Up(db *gorm.DB) error {
	return db.Migrator().AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (createPedidos) Down(db *gorm.DB) error {
	if err := db.Migrator().DropTable(&models.OrderItem{}); err != nil {
		return err
	}
	return db.Migrator().DropTable(&models.Order{})
}

func init() {
	migration.Register("20251101000004_create_pedidos_tables", createPedidos{})
}
