//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	customerhttp "github.com/ayethu/autoparts-backend/internal/customer/delivery/http"
	customerdomain "github.com/ayethu/autoparts-backend/internal/customer/domain"
	customerrepo "github.com/ayethu/autoparts-backend/internal/customer/repository"
	customerquery "github.com/ayethu/autoparts-backend/internal/customer/usecase/query"
	"github.com/ayethu/autoparts-backend/internal/gate"
	gatehttp "github.com/ayethu/autoparts-backend/internal/gate/delivery/http"
	invoicehttp "github.com/ayethu/autoparts-backend/internal/invoice/delivery/http"
	invoicedomain "github.com/ayethu/autoparts-backend/internal/invoice/domain"
	invoicerepo "github.com/ayethu/autoparts-backend/internal/invoice/repository"
	itemhttp "github.com/ayethu/autoparts-backend/internal/item/delivery/http"
	itemdomain "github.com/ayethu/autoparts-backend/internal/item/domain"
	itemrepo "github.com/ayethu/autoparts-backend/internal/item/repository"
	reporthttp "github.com/ayethu/autoparts-backend/internal/report/delivery/http"
	reportquery "github.com/ayethu/autoparts-backend/internal/report/usecase/query"
	"github.com/ayethu/autoparts-backend/kafka"
)

// ProvideItemRepository provides the item repository wrapped with tracing
func ProvideItemRepository(db *gorm.DB) itemdomain.ItemRepository {
	return itemrepo.NewTracingItemRepository(itemrepo.NewGormItemRepository(db))
}

// ProvideCustomerRepository provides the customer repository
func ProvideCustomerRepository(db *gorm.DB) customerdomain.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(db)
}

// ProvideInvoiceRepository provides the invoice repository wrapped with tracing
func ProvideInvoiceRepository(db *gorm.DB) invoicedomain.InvoiceRepository {
	return invoicerepo.NewTracingInvoiceRepository(invoicerepo.NewGormInvoiceRepository(db))
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideItemRepository,
	ProvideCustomerRepository,
	ProvideInvoiceRepository,
)

var QueryHandlerSet = wire.NewSet(
	customerquery.NewOutstandingBalanceHandler,
	reportquery.NewDailySummaryHandler,
	reportquery.NewSalesTrackerHandler,
	reportquery.NewDashboardHandler,
)

var HandlerSet = wire.NewSet(
	itemhttp.NewItemHandler,
	customerhttp.NewCustomerHandler,
	invoicehttp.NewInvoiceHandler,
	reporthttp.NewReportHandler,
	gate.New,
	gatehttp.NewGateHandler,
	wire.Struct(new(Handlers), "*"),
)

// InitializeHandlers initializes every HTTP handler with all dependencies
func InitializeHandlers(db *gorm.DB, publisher *kafka.Publisher) (*Handlers, error) {
	wire.Build(
		RepositorySet,
		QueryHandlerSet,
		HandlerSet,
	)
	return nil, nil
}
