package repositories

import (
	"errors"

	"feedback_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	FindByID(id string) (*models.Product, error)
	FindAll(limit, offset int) ([]models.Product, error)
	CountAll() (int64, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error

	// UpdateAverageRating writes the cached aggregate. The rating aggregator
	// is the only caller.
	UpdateAverageRating(id string, rating float64) error
}

type ProductRepositoryImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

func (r *ProductRepositoryImpl) FindByID(id string) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepositoryImpl) FindAll(limit, offset int) ([]models.Product, error) {
	var products []models.Product
	query := r.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	err := query.Find(&products).Error
	return products, err
}

func (r *ProductRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (r *ProductRepositoryImpl) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *ProductRepositoryImpl) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *ProductRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ProductRepositoryImpl) UpdateAverageRating(id string, rating float64) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("average_rating", rating).Error
}
