package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/aldeanavidad/tienda/app/models"
)

// OfferRepository handles database operations for Offer.
type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// ListActive returns offers that are active and whose date window
// contains now. Both bounds are compared at day granularity, so an
// offer ending today stays visible through its whole last day. A NULL
// bound does not constrain that side.
func (r *OfferRepository) ListActive(now time.Time) ([]models.Offer, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var offers []models.Offer
	err := r.db.
		Where("activo = ?", true).
		Where("fecha_inicio IS NULL OR fecha_inicio <= ?", today).
		Where("fecha_fin IS NULL OR fecha_fin >= ?", today).
		Order("id DESC").
		Find(&offers).Error
	return offers, err
}

// ListAll returns every offer for the admin panel.
func (r *OfferRepository) ListAll() ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.Order("id DESC").Find(&offers).Error
	return offers, err
}

// Create persists a new offer.
func (r *OfferRepository) Create(o *models.Offer) error {
	return r.db.Create(o).Error
}
