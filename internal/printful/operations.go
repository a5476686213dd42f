package printful

import "net/http"

// Operation identifies one of the supported Printful API calls.
type Operation string

const (
	OpSyncProducts    Operation = "syncProducts"
	OpSyncVariant     Operation = "syncVariant"
	OpStoreInfo       Operation = "getStoreInfo"
	OpProductsVariant Operation = "productsVariant"
	OpProducts        Operation = "products"
	OpShippingRates   Operation = "shippingRates"
	OpCreateOrder     Operation = "createOrder"
	OpGetWebhooks     Operation = "getWebhooks"
	OpSetWebhooks     Operation = "setWebhooks"
	OpUnsetWebhooks   Operation = "unsetWebhooks"
)

type endpoint struct {
	path   string
	method string
}

// endpoints maps each operation to its path template and HTTP verb.
// GET operations place parameters in the query string, everything else
// sends a JSON body (with optional extra query parameters).
var endpoints = map[Operation]endpoint{
	OpSyncProducts:    {path: "sync/products", method: http.MethodGet},
	OpSyncVariant:     {path: "sync/variant", method: http.MethodGet},
	OpStoreInfo:       {path: "store", method: http.MethodGet},
	OpProductsVariant: {path: "products/variant", method: http.MethodGet},
	OpProducts:        {path: "products", method: http.MethodGet},
	OpShippingRates:   {path: "shipping/rates", method: http.MethodPost},
	OpCreateOrder:     {path: "orders", method: http.MethodPost},
	OpGetWebhooks:     {path: "webhooks", method: http.MethodGet},
	OpSetWebhooks:     {path: "webhooks", method: http.MethodPost},
	OpUnsetWebhooks:   {path: "webhooks", method: http.MethodDelete},
}
