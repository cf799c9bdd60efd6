package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aldeanavidad/tienda/app/models"
	"github.com/aldeanavidad/tienda/app/repositories"
	"github.com/aldeanavidad/tienda/app/services"
	"github.com/aldeanavidad/tienda/pkg/bind"
	"github.com/aldeanavidad/tienda/pkg/response"
	"github.com/aldeanavidad/tienda/pkg/validate"
)

type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// Index lists active products for the public storefront. Accepts an
// optional exact-match ?categoria= filter.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("categoria"))

	products, err := c.catalog.PublicProducts(category)
	if err != nil {
		response.Internal(w)
		return
	}
	response.Success(w, products)
}

// AdminIndex lists every product, deactivated included.
func (c *ProductController) AdminIndex(w http.ResponseWriter, r *http.Request) {
	products, err := c.catalog.AdminProducts()
	if err != nil {
		response.Internal(w)
		return
	}
	response.Success(w, products)
}

type createProductForm struct {
	Name        string  `json:"nombre" validate:"required,max=255"`
	Description string  `json:"descripcion" validate:"nullable"`
	Price       float64 `json:"precio" validate:"required,numeric,gte=0"`
	Category    string  `json:"categoria" validate:"required,max=100"`
	Stock       int     `json:"stock" validate:"nullable,integer,gte=0"`
}

// Store creates a product from a multipart form. The optional "imagen"
// field is stored on the configured disk.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(services.MaxImageBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Formulario inválido")
		return
	}

	form := createProductForm{
		Name:        strings.TrimSpace(r.FormValue("nombre")),
		Description: strings.TrimSpace(r.FormValue("descripcion")),
		Category:    strings.TrimSpace(r.FormValue("categoria")),
	}
	form.Price, _ = strconv.ParseFloat(r.FormValue("precio"), 64)
	form.Stock, _ = strconv.Atoi(r.FormValue("stock"))

	if errs := validate.Struct(form); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	product := models.Product{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Category:    form.Category,
		Stock:       form.Stock,
		Active:      true,
	}

	image, header, err := r.FormFile("imagen")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		response.Error(w, http.StatusBadRequest, "Imagen inválida")
		return
	}
	if image != nil {
		defer image.Close()
	}

	if err := c.catalog.CreateProduct(&product, image, header); err != nil {
		if errors.Is(err, services.ErrNotAnImage) {
			response.ValidationError(w, map[string]string{"imagen": "El archivo debe ser una imagen"})
			return
		}
		response.Internal(w)
		return
	}

	response.Created(w, product)
}

type updateStockRequest struct {
	Stock *int `json:"stock" validate:"required,integer,gte=0"`
}

// UpdateStock sets the absolute stock of a product.
func (c *ProductController) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(w, r)
	if !ok {
		return
	}

	var req updateStockRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.catalog.UpdateStock(id, *req.Stock)
	switch {
	case errors.Is(err, repositories.ErrProductNotFound):
		response.NotFound(w, "Producto no encontrado")
		return
	case err != nil:
		response.Internal(w)
		return
	}

	response.Success(w, product)
}

// Destroy soft-deletes a product so past orders keep their lines.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(w, r)
	if !ok {
		return
	}

	err := c.catalog.DeactivateProduct(id)
	switch {
	case errors.Is(err, repositories.ErrProductNotFound):
		response.NotFound(w, "Producto no encontrado")
		return
	case err != nil:
		response.Internal(w)
		return
	}

	response.Success(w, map[string]interface{}{"ok": true})
}

// paramID parses the {id} path parameter, writing a 404 on garbage.
func paramID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.NotFound(w, "Recurso no encontrado")
		return 0, false
	}
	return uint(id), true
}
