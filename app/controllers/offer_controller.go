package controllers

import (
	"net/http"
	"strings"

	"github.com/aldeanavidad/tienda/app/models"
	"github.com/aldeanavidad/tienda/app/services"
	"github.com/aldeanavidad/tienda/pkg/bind"
	"github.com/aldeanavidad/tienda/pkg/response"
	"github.com/aldeanavidad/tienda/pkg/validate"
)

type OfferController struct {
	catalog *services.CatalogService
}

func NewOfferController(catalog *services.CatalogService) *OfferController {
	return &OfferController{catalog: catalog}
}

// Index lists offers currently inside their date window.
func (c *OfferController) Index(w http.ResponseWriter, r *http.Request) {
	offers, err := c.catalog.PublicOffers()
	if err != nil {
		response.Internal(w)
		return
	}
	response.Success(w, offers)
}

// AdminIndex lists every offer for the panel.
func (c *OfferController) AdminIndex(w http.ResponseWriter, r *http.Request) {
	offers, err := c.catalog.AdminOffers()
	if err != nil {
		response.Internal(w)
		return
	}
	response.Success(w, offers)
}

type createOfferRequest struct {
	Title       string  `json:"titulo" validate:"required,max=255"`
	Description string  `json:"descripcion" validate:"nullable"`
	Discount    float64 `json:"descuento" validate:"nullable,numeric,gte=0,lte=100"`
	StartsAt    string  `json:"fecha_inicio" validate:"nullable,date"`
	EndsAt      string  `json:"fecha_fin" validate:"nullable,date"`
}

// Store creates an offer. Empty date bounds leave that side open.
func (c *OfferController) Store(w http.ResponseWriter, r *http.Request) {
	var req createOfferRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	offer := models.Offer{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Discount:    req.Discount,
		Active:      true,
	}
	if req.StartsAt != "" {
		t, _ := validate.ParseDate(req.StartsAt)
		offer.StartsAt = &t
	}
	if req.EndsAt != "" {
		t, _ := validate.ParseDate(req.EndsAt)
		offer.EndsAt = &t
	}
	if offer.StartsAt != nil && offer.EndsAt != nil && offer.EndsAt.Before(*offer.StartsAt) {
		response.ValidationError(w, map[string]string{
			"fecha_fin": "La fecha de fin no puede ser anterior al inicio",
		})
		return
	}

	if err := c.catalog.CreateOffer(&offer); err != nil {
		response.Internal(w)
		return
	}

	response.Created(w, offer)
}
