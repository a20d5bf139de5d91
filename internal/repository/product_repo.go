package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Dhruvp132/Dhyan-ecom/internal/entity"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).Preload("Categories").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) GetProducts(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).Preload("Categories").Find(&products).Error
	return products, err
}

func (r *ProductRepository) GetProductsByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).Preload("Categories").
		Joins("JOIN product_categories pc ON pc.product_id = products.id").
		Joins("JOIN categories c ON c.id = pc.category_id").
		Where("c.name = ?", category).
		Find(&products).Error
	return products, err
}

// GetProductsByIDs loads the products referenced by a cart or order in one
// query, keyed by id for snapshot building.
func (r *ProductRepository) GetProductsByIDs(ctx context.Context, ids []string) (map[string]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

// SearchProducts does a case-insensitive name/description match with
// pagination, returning the page and the total match count.
func (r *ProductRepository) SearchProducts(ctx context.Context, query string, page, limit int) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	pattern := "%" + query + "%"
	base := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("name LIKE ? OR description LIKE ?", pattern, pattern)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.Preload("Categories").
		Offset((page - 1) * limit).Limit(limit).
		Find(&products).Error
	return products, total, err
}

func (r *ProductRepository) SearchCategories(ctx context.Context, query string, limit int) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&entity.Category{}).
		Where("name LIKE ?", "%"+query+"%").
		Distinct("name").Limit(limit).
		Pluck("name", &names).Error
	return names, err
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *ProductRepository) ProductExists(ctx context.Context, id string) (bool, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).Select("id").First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FindOrCreateCategory backs the seeding path; category names are unique.
func (r *ProductRepository) FindOrCreateCategory(ctx context.Context, name string, newID func() string) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		category = entity.Category{ID: newID(), Name: name}
		if err := r.db.WithContext(ctx).Create(&category).Error; err != nil {
			return nil, err
		}
		return &category, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}
