package product

import (
	"context"

	"FreshTrack/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	ProductRepository interface {
		Create(ctx context.Context, product *entities.Product) error
		FindByID(ctx context.Context, id string) (*entities.Product, error)
		Update(ctx context.Context, id string, mutate func(*entities.Product)) error
		Delete(ctx context.Context, id string) error
		List(ctx context.Context, userID string) ([]*entities.Product, error)
	}

	productRepository struct {
		db *gorm.DB
	}
)

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entities.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*entities.Product, error) {
	var product entities.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Update is an atomic read-modify-write: the row is locked for the duration
// of the mutator, and a missing row surfaces as gorm.ErrRecordNotFound.
func (r *productRepository) Update(ctx context.Context, id string, mutate func(*entities.Product)) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product entities.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&product).Error; err != nil {
			return err
		}
		mutate(&product)
		return tx.Save(&product).Error
	})
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Product{}).Error
}

func (r *productRepository) List(ctx context.Context, userID string) ([]*entities.Product, error) {
	var products []*entities.Product
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("expiration_date asc").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
