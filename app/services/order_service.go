package services

import (
	"errors"
	"time"

	"github.com/aldeanavidad/tienda/app/models"
	"github.com/aldeanavidad/tienda/app/repositories"
	"github.com/aldeanavidad/tienda/pkg/event"
	"github.com/aldeanavidad/tienda/pkg/metrics"
)

// EventOrderCreated is fired after every committed checkout. The admin
// live feed subscribes to it.
const EventOrderCreated = "pedido.creado"

var ErrOrderInvalid = errors.New("pedido inválido")

// OrderInput is a checkout request before it touches the database.
type OrderInput struct {
	CustomerName string
	Phone        string
	PickupDate   *time.Time
	PickupPlace  string
	Notes        string
	Items        []repositories.OrderLine
}

// OrderService validates checkout requests and drives the order
// transaction.
type OrderService struct {
	orders *repositories.OrderRepository
}

func NewOrderService(orders *repositories.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// Validate checks an input before any database work. It returns a
// field -> message map in the same shape as struct tag validation.
func (s *OrderService) Validate(in OrderInput) map[string]string {
	errs := map[string]string{}

	if in.CustomerName == "" {
		errs["nombreCliente"] = "El nombre es obligatorio"
	}
	if in.Phone == "" {
		errs["telefono"] = "El teléfono es obligatorio"
	}
	if len(in.Items) == 0 {
		errs["items"] = "El pedido debe tener al menos un producto"
	}
	for _, it := range in.Items {
		if it.ProductID == 0 {
			errs["items"] = "Cada línea necesita un producto válido"
			break
		}
		if it.Quantity <= 0 {
			errs["items"] = "Las cantidades deben ser mayores que cero"
			break
		}
	}

	return errs
}

// Create runs a validated checkout. createdBy is nil for the public
// endpoint and the admin's user id for panel-entered orders.
func (s *OrderService) Create(in OrderInput, createdBy *uint) (models.Order, error) {
	if errs := s.Validate(in); len(errs) > 0 {
		metrics.OrdersRejected.WithLabelValues("validation").Inc()
		return models.Order{}, ErrOrderInvalid
	}

	order := models.Order{
		CustomerName: in.CustomerName,
		Phone:        in.Phone,
		PickupDate:   in.PickupDate,
		PickupPlace:  in.PickupPlace,
		Notes:        in.Notes,
		CreatedBy:    createdBy,
	}

	if err := s.orders.Create(&order, in.Items); err != nil {
		s.countRejection(err)
		return models.Order{}, err
	}

	origin := "publico"
	if createdBy != nil {
		origin = "admin"
	}
	metrics.OrdersCreated.WithLabelValues(origin).Inc()
	metrics.OrderValue.Observe(order.Total)

	event.FireAsync(EventOrderCreated, order)

	return order, nil
}

func (s *OrderService) countRejection(err error) {
	switch {
	case errors.Is(err, repositories.ErrProductNotFound):
		metrics.OrdersRejected.WithLabelValues("not_found").Inc()
	case errors.Is(err, repositories.ErrProductInactive):
		metrics.OrdersRejected.WithLabelValues("inactive").Inc()
	case errors.Is(err, repositories.ErrInsufficientStock):
		metrics.OrdersRejected.WithLabelValues("stock").Inc()
	}
}

// List proxies the admin order listing.
func (s *OrderService) List(limit int) ([]models.Order, error) {
	return s.orders.List(limit)
}

// UpdateStatus proxies the state change.
func (s *OrderService) UpdateStatus(id uint, status string) (models.Order, error) {
	return s.orders.UpdateStatus(id, status)
}
