package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/aldeanavidad/tienda/app/models"
)

// ErrProductNotFound is returned when a product id does not exist.
var ErrProductNotFound = errors.New("producto no encontrado")

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ListActive returns active products, optionally filtered by exact
// category, newest first. This backs the public catalog.
func (r *ProductRepository) ListActive(category string) ([]models.Product, error) {
	q := r.db.Where("activo = ?", true)
	if category != "" {
		q = q.Where("categoria = ?", category)
	}
	var products []models.Product
	err := q.Order("id DESC").Find(&products).Error
	return products, err
}

// ListAll returns every product including deactivated ones, for the
// admin panel.
func (r *ProductRepository) ListAll() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Order("id DESC").Find(&products).Error
	return products, err
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var p models.Product
	err := r.db.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p, ErrProductNotFound
	}
	return p, err
}

// Create persists a new product.
func (r *ProductRepository) Create(p *models.Product) error {
	return r.db.Create(p).Error
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(p *models.Product) error {
	return r.db.Save(p).Error
}

// UpdateStock sets the absolute stock value of a product. Existence is
// checked up front; affected-row counts are not portable across drivers
// when the new value equals the old one.
func (r *ProductRepository) UpdateStock(id uint, stock int) (models.Product, error) {
	p, err := r.FindByID(id)
	if err != nil {
		return models.Product{}, err
	}
	if err := r.db.Model(&p).Update("stock", stock).Error; err != nil {
		return models.Product{}, err
	}
	p.Stock = stock
	return p, nil
}

// SoftDelete marks a product inactive. The row is kept so order lines
// referencing it stay intact.
func (r *ProductRepository) SoftDelete(id uint) error {
	p, err := r.FindByID(id)
	if err != nil {
		return err
	}
	return r.db.Model(&p).Update("activo", false).Error
}
