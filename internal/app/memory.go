package app

import (
	customerhttp "github.com/ayethu/autoparts-backend/internal/customer/delivery/http"
	customerrepo "github.com/ayethu/autoparts-backend/internal/customer/repository"
	customerquery "github.com/ayethu/autoparts-backend/internal/customer/usecase/query"
	"github.com/ayethu/autoparts-backend/internal/gate"
	gatehttp "github.com/ayethu/autoparts-backend/internal/gate/delivery/http"
	invoicehttp "github.com/ayethu/autoparts-backend/internal/invoice/delivery/http"
	invoicerepo "github.com/ayethu/autoparts-backend/internal/invoice/repository"
	itemhttp "github.com/ayethu/autoparts-backend/internal/item/delivery/http"
	itemrepo "github.com/ayethu/autoparts-backend/internal/item/repository"
	reporthttp "github.com/ayethu/autoparts-backend/internal/report/delivery/http"
	reportquery "github.com/ayethu/autoparts-backend/internal/report/usecase/query"
	"github.com/ayethu/autoparts-backend/kafka"
)

// InitializeMemoryHandlers wires every handler against the in-memory
// storage driver. Data lives for the process lifetime only; meant for
// development and tests, not production.
func InitializeMemoryHandlers(publisher *kafka.Publisher) *Handlers {
	items := itemrepo.NewMemoryItemRepository()
	customers := customerrepo.NewMemoryCustomerRepository()
	invoices := invoicerepo.NewMemoryInvoiceRepository(items)

	balanceHandler := customerquery.NewOutstandingBalanceHandler(invoices)
	dailySummaryHandler := reportquery.NewDailySummaryHandler(invoices, items)
	salesTrackerHandler := reportquery.NewSalesTrackerHandler(invoices, items)
	dashboardHandler := reportquery.NewDashboardHandler(invoices, items)

	return &Handlers{
		Items:     itemhttp.NewItemHandler(items),
		Customers: customerhttp.NewCustomerHandler(customers, balanceHandler),
		Invoices:  invoicehttp.NewInvoiceHandler(invoices, items, customers, publisher),
		Reports:   reporthttp.NewReportHandler(dailySummaryHandler, salesTrackerHandler, dashboardHandler),
		Gate:      gatehttp.NewGateHandler(gate.New()),
	}
}
