package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aldeanavidad/tienda/app/models"
)

// Order creation errors. All three map to 409 on the checkout endpoints.
var (
	ErrProductInactive   = errors.New("producto no disponible")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrOrderNotFound     = errors.New("pedido no encontrado")
	ErrInvalidStatus     = errors.New("estado no válido")
)

// LineError says which product made a checkout line fail, so a
// multi-line cart can tell the customer what to remove. It wraps one
// of the creation sentinels above.
type LineError struct {
	Err       error
	ProductID uint
	Name      string
}

func (e *LineError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %q (id=%d)", e.Err, e.Name, e.ProductID)
	}
	return fmt.Sprintf("%s (id=%d)", e.Err, e.ProductID)
}

func (e *LineError) Unwrap() error { return e.Err }

// OrderLine is one requested line of a new order.
type OrderLine struct {
	ProductID uint
	Quantity  int
}

// OrderRepository handles database operations for Order, including the
// checkout transaction.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create runs the checkout transaction. It inserts the order header,
// then per line verifies the product and decrements stock with a
// conditional update, snapshots the unit price, and finally writes the
// accumulated total. Any failure rolls the whole order back.
//
// The stock decrement is guarded in SQL:
//
//	UPDATE productos SET stock = stock - ? WHERE id = ? AND stock >= ?
//
// so two concurrent checkouts can never oversell: the second one sees
// zero rows affected and the transaction aborts.
func (r *OrderRepository) Create(order *models.Order, lines []OrderLine) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		order.Status = models.StatusPending
		order.Total = 0
		order.Items = nil

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		var total float64
		for _, line := range lines {
			var p models.Product
			if err := tx.First(&p, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &LineError{Err: ErrProductNotFound, ProductID: line.ProductID}
				}
				return err
			}
			if !p.Active {
				return &LineError{Err: ErrProductInactive, ProductID: p.ID, Name: p.Name}
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &LineError{Err: ErrInsufficientStock, ProductID: p.ID, Name: p.Name}
			}

			item := models.OrderItem{
				OrderID:     order.ID,
				ProductID:   p.ID,
				Quantity:    line.Quantity,
				UnitPrice:   p.Price,
				ProductName: p.Name,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			order.Items = append(order.Items, item)
			total += p.Price * float64(line.Quantity)
		}

		order.Total = total
		return tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("total", total).Error
	})
}

// List returns the most recent orders with their lines, newest first.
// The admin panel shows at most 200.
func (r *OrderRepository) List(limit int) ([]models.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	var orders []models.Order
	err := r.db.
		Preload("Items").
		Order("id DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	r.fillProductNames(orders)
	return orders, nil
}

// fillProductNames resolves producto_id -> nombre for admin listings.
func (r *OrderRepository) fillProductNames(orders []models.Order) {
	ids := map[uint]bool{}
	for _, o := range orders {
		for _, it := range o.Items {
			ids[it.ProductID] = true
		}
	}
	if len(ids) == 0 {
		return
	}

	idList := make([]uint, 0, len(ids))
	for id := range ids {
		idList = append(idList, id)
	}

	var products []models.Product
	if err := r.db.Where("id IN ?", idList).Find(&products).Error; err != nil {
		return
	}
	names := make(map[uint]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	for oi := range orders {
		for ii := range orders[oi].Items {
			orders[oi].Items[ii].ProductName = names[orders[oi].Items[ii].ProductID]
		}
	}
}

// FindByID returns one order with its lines.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var o models.Order
	err := r.db.Preload("Items").First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return o, ErrOrderNotFound
	}
	return o, err
}

// UpdateStatus moves an order to a new state. Any member of the state
// enum is accepted from any other state.
func (r *OrderRepository) UpdateStatus(id uint, status string) (models.Order, error) {
	if !models.ValidStatus(status) {
		return models.Order{}, ErrInvalidStatus
	}
	o, err := r.FindByID(id)
	if err != nil {
		return models.Order{}, err
	}
	if err := r.db.Model(&o).Update("estado", status).Error; err != nil {
		return models.Order{}, err
	}
	o.Status = status
	return o, nil
}
