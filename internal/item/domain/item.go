package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Item categories
const (
	CategorySpareParts     = "Spare Parts"
	CategoryLubricants     = "Lubricants"
	CategoryCarAccessories = "Car Accessories"

	// CategoryUnknown is used by reports when a line references an item
	// that no longer resolves.
	CategoryUnknown = "Unknown"
)

// DefaultLowStockThreshold marks items that need restocking soon
const DefaultLowStockThreshold = 10

// Item represents a stocked shop item
type Item struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"not null"`
	Category      string          `json:"category" gorm:"not null;index"`
	ProductCode   string          `json:"product_code" gorm:"uniqueIndex;not null"`
	SalesPrice    decimal.Decimal `json:"sales_price" gorm:"type:decimal(20,2);not null"`
	PurchasePrice decimal.Decimal `json:"purchase_price" gorm:"type:decimal(20,2);default:0"`
	Quantity      int             `json:"quantity" gorm:"not null;default:0"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Item) TableName() string {
	return "items"
}

// InStock checks whether the requested quantity is currently available
func (i *Item) InStock(quantity int) bool {
	return quantity > 0 && i.Quantity >= quantity
}

// ValidCategory reports whether category is one of the shop's categories
func ValidCategory(category string) bool {
	switch category {
	case CategorySpareParts, CategoryLubricants, CategoryCarAccessories:
		return true
	}
	return false
}

// ItemRepository defines the contract for item data access.
//
// DecrementStock is the stock store's one serialization point: the
// quantity check and the decrement must happen as a single step so that
// concurrent sales can never jointly oversell an item.
type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	FindByID(ctx context.Context, id uint) (*Item, error)
	FindByProductCode(ctx context.Context, code string) (*Item, error)
	FindAll(ctx context.Context) ([]Item, error)
	FindByCategory(ctx context.Context, category string) ([]Item, error)
	FindLowStock(ctx context.Context, threshold int) ([]Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	TotalQuantity(ctx context.Context) (int64, error)
	DecrementStock(ctx context.Context, id uint, quantity int) error
}
