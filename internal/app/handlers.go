package app

import (
	"github.com/gorilla/mux"

	customerhttp "github.com/ayethu/autoparts-backend/internal/customer/delivery/http"
	gatehttp "github.com/ayethu/autoparts-backend/internal/gate/delivery/http"
	invoicehttp "github.com/ayethu/autoparts-backend/internal/invoice/delivery/http"
	itemhttp "github.com/ayethu/autoparts-backend/internal/item/delivery/http"
	reporthttp "github.com/ayethu/autoparts-backend/internal/report/delivery/http"
)

// Handlers bundles every HTTP handler of the backend
type Handlers struct {
	Items     *itemhttp.ItemHandler
	Customers *customerhttp.CustomerHandler
	Invoices  *invoicehttp.InvoiceHandler
	Reports   *reporthttp.ReportHandler
	Gate      *gatehttp.GateHandler
}

// RegisterRoutes registers every route on the router
func (h *Handlers) RegisterRoutes(router *mux.Router) {
	h.Gate.RegisterRoutes(router)
	h.Items.RegisterRoutes(router)
	h.Customers.RegisterRoutes(router)
	h.Invoices.RegisterRoutes(router)
	h.Reports.RegisterRoutes(router)
}
