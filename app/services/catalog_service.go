package services

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aldeanavidad/tienda/app/models"
	"github.com/aldeanavidad/tienda/app/repositories"
	"github.com/aldeanavidad/tienda/pkg/cache"
	"github.com/aldeanavidad/tienda/pkg/storage"
)

// Catalog listing cache keys share this prefix so one invalidation
// sweep clears every category variant.
const cachePrefix = "catalogo:"

const listingTTL = 60 * time.Second

// Image upload limits.
const MaxImageBytes = 5 << 20 // 5 MB

var ErrNotAnImage = errors.New("el archivo debe ser una imagen")

// CatalogService serves products and offers, with a Redis read cache
// in front of the public listings.
type CatalogService struct {
	products *repositories.ProductRepository
	offers   *repositories.OfferRepository
}

func NewCatalogService(products *repositories.ProductRepository, offers *repositories.OfferRepository) *CatalogService {
	return &CatalogService{products: products, offers: offers}
}

// PublicProducts returns active products, optionally filtered by
// category, through the cache.
func (s *CatalogService) PublicProducts(category string) ([]models.Product, error) {
	key := cachePrefix + "productos:" + category
	var products []models.Product
	err := cache.Remember(key, listingTTL, &products, func() (interface{}, error) {
		return s.products.ListActive(category)
	})
	return products, err
}

// PublicOffers returns the offers currently inside their date window.
func (s *CatalogService) PublicOffers() ([]models.Offer, error) {
	key := cachePrefix + "ofertas"
	var offers []models.Offer
	err := cache.Remember(key, listingTTL, &offers, func() (interface{}, error) {
		return s.offers.ListActive(time.Now())
	})
	return offers, err
}

// AdminProducts returns every product, bypassing the cache.
func (s *CatalogService) AdminProducts() ([]models.Product, error) {
	return s.products.ListAll()
}

// AdminOffers returns every offer, bypassing the cache.
func (s *CatalogService) AdminOffers() ([]models.Offer, error) {
	return s.offers.ListAll()
}

// CreateProduct persists a product, storing the image first when one
// was uploaded.
func (s *CatalogService) CreateProduct(p *models.Product, image multipart.File, header *multipart.FileHeader) error {
	if image != nil && header != nil {
		url, err := s.storeImage(image, header)
		if err != nil {
			return err
		}
		p.ImageURL = url
	}

	if err := s.products.Create(p); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// CreateOffer persists an offer and clears the listing cache.
func (s *CatalogService) CreateOffer(o *models.Offer) error {
	if err := s.offers.Create(o); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// UpdateStock sets a product's absolute stock value.
func (s *CatalogService) UpdateStock(id uint, stock int) (models.Product, error) {
	p, err := s.products.UpdateStock(id, stock)
	if err != nil {
		return models.Product{}, err
	}
	s.invalidate()
	return p, nil
}

// DeactivateProduct soft-deletes a product.
func (s *CatalogService) DeactivateProduct(id uint) error {
	if err := s.products.SoftDelete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *CatalogService) invalidate() {
	_ = cache.DelPrefix(cachePrefix)
}

// storeImage validates the upload and writes it to the default disk
// under productos/, returning the public URL.
func (s *CatalogService) storeImage(image multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > MaxImageBytes {
		return "", fmt.Errorf("imagen demasiado grande (máximo %d MB)", MaxImageBytes>>20)
	}
	if ct := header.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return "", ErrNotAnImage
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := fmt.Sprintf("%d-%09d%s", time.Now().UnixMilli(), rand.Intn(1e9), ext)
	path := "productos/" + name

	if err := storage.PutStream(path, io.LimitReader(image, MaxImageBytes)); err != nil {
		return "", err
	}
	return storage.URL(path), nil
}
