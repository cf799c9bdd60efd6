package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aldeanavidad/tienda/app/repositories"
	"github.com/aldeanavidad/tienda/app/services"
	"github.com/aldeanavidad/tienda/pkg/bind"
	"github.com/aldeanavidad/tienda/pkg/middleware"
	"github.com/aldeanavidad/tienda/pkg/response"
	"github.com/aldeanavidad/tienda/pkg/validate"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Request field names are camelCase on the wire even though the stored
// columns are snake_case; the frontend already speaks this shape.
type orderItemRequest struct {
	ProductID uint `json:"productoId" validate:"required,integer,gte=1"`
	Quantity  int  `json:"cantidad" validate:"required,integer,gte=1"`
}

type createOrderRequest struct {
	CustomerName string             `json:"nombreCliente" validate:"required,max=255"`
	Phone        string             `json:"telefono" validate:"required,max=50"`
	PickupDate   string             `json:"fechaRecogida" validate:"nullable,date"`
	PickupPlace  string             `json:"lugarRecogida" validate:"nullable,max=255"`
	Notes        string             `json:"observaciones" validate:"nullable"`
	Items        []orderItemRequest `json:"items"`
}

func (req createOrderRequest) toInput() services.OrderInput {
	in := services.OrderInput{
		CustomerName: strings.TrimSpace(req.CustomerName),
		Phone:        strings.TrimSpace(req.Phone),
		PickupPlace:  strings.TrimSpace(req.PickupPlace),
		Notes:        strings.TrimSpace(req.Notes),
	}
	if req.PickupDate != "" {
		if t, err := validate.ParseDate(req.PickupDate); err == nil {
			in.PickupDate = &t
		}
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, repositories.OrderLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	return in
}

// StorePublic is the public cart checkout. No authentication; the
// response carries what the frontend needs to compose the WhatsApp
// message.
func (c *OrderController) StorePublic(w http.ResponseWriter, r *http.Request) {
	c.store(w, r, nil)
}

// StoreAdmin records a phone-in order from the panel, stamping the
// admin's user id on it.
func (c *OrderController) StoreAdmin(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "No autenticado")
		return
	}
	c.store(w, r, &userID)
}

func (c *OrderController) store(w http.ResponseWriter, r *http.Request, createdBy *uint) {
	var req createOrderRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	in := req.toInput()
	if errs := c.orders.Validate(in); len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.Create(in, createdBy)
	if err != nil {
		var line *repositories.LineError
		switch {
		case errors.As(err, &line) && errors.Is(err, repositories.ErrProductNotFound):
			response.Conflict(w, fmt.Sprintf("Producto no encontrado (id=%d)", line.ProductID))
		case errors.As(err, &line) && errors.Is(err, repositories.ErrProductInactive):
			response.Conflict(w, fmt.Sprintf("Producto no disponible: %q", line.Name))
		case errors.As(err, &line) && errors.Is(err, repositories.ErrInsufficientStock):
			response.Conflict(w, fmt.Sprintf("Sin stock suficiente para %q", line.Name))
		case errors.Is(err, services.ErrOrderInvalid):
			response.ValidationError(w, c.orders.Validate(in))
		default:
			response.Internal(w)
		}
		return
	}

	body := map[string]interface{}{
		"ok":       true,
		"pedidoId": order.ID,
		"total":    order.Total,
	}
	if createdBy == nil {
		// The public flow needs the lines to compose the WhatsApp message.
		lineas := make([]map[string]interface{}, 0, len(order.Items))
		for _, it := range order.Items {
			lineas = append(lineas, map[string]interface{}{
				"productoId":     it.ProductID,
				"nombre":         it.ProductName,
				"cantidad":       it.Quantity,
				"precioUnitario": it.UnitPrice,
			})
		}
		body["lineas"] = lineas
		body["lugarRecogida"] = order.PickupPlace
	}
	response.Created(w, body)
}

// Index lists recent orders with their lines for the panel.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.List(200)
	if err != nil {
		response.Internal(w)
		return
	}
	response.Success(w, orders)
}

type updateStatusRequest struct {
	Status string `json:"estado" validate:"required,in=pendiente,confirmado,entregado"`
}

// UpdateStatus moves an order to a new lifecycle state.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.UpdateStatus(id, req.Status)
	switch {
	case errors.Is(err, repositories.ErrOrderNotFound):
		response.NotFound(w, "Pedido no encontrado")
		return
	case errors.Is(err, repositories.ErrInvalidStatus):
		response.ValidationError(w, map[string]string{"estado": "Estado no válido"})
		return
	case err != nil:
		response.Internal(w)
		return
	}

	response.Success(w, order)
}
