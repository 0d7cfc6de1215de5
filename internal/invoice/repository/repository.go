package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	itemdomain "github.com/ayethu/autoparts-backend/internal/item/domain"
	"github.com/ayethu/autoparts-backend/internal/invoice/domain"
)

type GormInvoiceRepository struct {
	db *gorm.DB
}

func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func (r *GormInvoiceRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Invoice{}, &domain.InvoiceLine{})
}

// Create commits the invoice and its stock decrements in one transaction.
// Each line uses a conditional UPDATE so the availability check and the
// decrement are a single step; any line that cannot be satisfied rolls the
// whole transaction back.
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range invoice.Lines {
			line := &invoice.Lines[i]
			res := tx.Model(&itemdomain.Item{}).
				Where("id = ? AND quantity >= ?", line.ItemID, line.Quantity).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("item %d: %w", line.ItemID, itemdomain.ErrInsufficientStock)
			}
		}
		return tx.Create(invoice).Error
	})
}

func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uint) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.WithContext(ctx).Preload("Lines").First(&invoice, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *GormInvoiceRepository) FindByCustomerID(ctx context.Context, customerID uint) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.WithContext(ctx).Preload("Lines").
		Where("customer_id = ?", customerID).
		Order("created_at").Find(&invoices).Error
	return invoices, err
}

// FindByDateRange returns invoices created in [from, to). Zero bounds are
// open-ended.
func (r *GormInvoiceRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]domain.Invoice, error) {
	q := r.db.WithContext(ctx).Preload("Lines")
	if !from.IsZero() {
		q = q.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("created_at < ?", to)
	}
	var invoices []domain.Invoice
	err := q.Order("created_at").Find(&invoices).Error
	return invoices, err
}

func (r *GormInvoiceRepository) FindAll(ctx context.Context) ([]domain.Invoice, error) {
	return r.FindByDateRange(ctx, time.Time{}, time.Time{})
}

// UpdatePayment revises the payment fields under a row lock so two
// concurrent edits of the same invoice cannot lose an update. Lines and
// stock are never touched.
func (r *GormInvoiceRepository) UpdatePayment(ctx context.Context, id uint, amountPaid decimal.Decimal) (*domain.Invoice, error) {
	var updated domain.Invoice
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invoice domain.Invoice
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&invoice, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrInvoiceNotFound
			}
			return err
		}

		if amountPaid.IsNegative() || amountPaid.GreaterThan(invoice.TotalAmount) {
			return domain.ErrPaymentOutOfRange
		}

		invoice.SettlePayment(amountPaid)
		if err := tx.Model(&domain.Invoice{}).Where("id = ?", id).Updates(map[string]interface{}{
			"amount_paid":         invoice.AmountPaid,
			"outstanding_balance": invoice.OutstandingBalance,
			"payment_status":      invoice.PaymentStatus,
		}).Error; err != nil {
			return err
		}

		updated = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, updated.ID)
}

// AssignCustomer attaches a persisted customer to an existing invoice
func (r *GormInvoiceRepository) AssignCustomer(ctx context.Context, id uint, customerID uint) (*domain.Invoice, error) {
	res := r.db.WithContext(ctx).Model(&domain.Invoice{}).
		Where("id = ?", id).
		Update("customer_id", customerID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrInvoiceNotFound
	}
	return r.FindByID(ctx, id)
}
