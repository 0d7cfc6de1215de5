package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ayethu/autoparts-backend/internal/item/domain"
)

type GormItemRepository struct {
	db *gorm.DB
}

func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

func (r *GormItemRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Item{})
}

func (r *GormItemRepository) Create(ctx context.Context, item *domain.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *GormItemRepository) FindByID(ctx context.Context, id uint) (*domain.Item, error) {
	var item domain.Item
	err := r.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *GormItemRepository) FindByProductCode(ctx context.Context, code string) (*domain.Item, error) {
	var item domain.Item
	err := r.db.WithContext(ctx).Where("product_code = ?", code).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *GormItemRepository) FindAll(ctx context.Context) ([]domain.Item, error) {
	var items []domain.Item
	err := r.db.WithContext(ctx).Order("id").Find(&items).Error
	return items, err
}

func (r *GormItemRepository) FindByCategory(ctx context.Context, category string) ([]domain.Item, error) {
	var items []domain.Item
	err := r.db.WithContext(ctx).Where("category = ?", category).Order("id").Find(&items).Error
	return items, err
}

func (r *GormItemRepository) FindLowStock(ctx context.Context, threshold int) ([]domain.Item, error) {
	var items []domain.Item
	err := r.db.WithContext(ctx).Where("quantity < ?", threshold).Order("quantity").Find(&items).Error
	return items, err
}

func (r *GormItemRepository) Update(ctx context.Context, item *domain.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *GormItemRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Item{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *GormItemRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Item{}).Count(&count).Error
	return count, err
}

func (r *GormItemRepository) TotalQuantity(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Item{}).
		Select("COALESCE(SUM(quantity), 0)").Scan(&total).Error
	return total, err
}

// DecrementStock performs the check-and-decrement as a single conditional
// UPDATE. The WHERE guard makes the operation atomic per item: under
// concurrent callers the database serializes the row update, and the
// quantity can never go negative.
func (r *GormItemRepository) DecrementStock(ctx context.Context, id uint, quantity int) error {
	res := r.db.WithContext(ctx).Model(&domain.Item{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Either the item is gone or the stock ran out between
		// validation and commit; distinguish for the caller.
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrInsufficientStock
	}
	return nil
}
