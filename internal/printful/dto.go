package printful

import "fmt"

// SyncProduct is a catalog product as listed by GET sync/products.
type SyncProduct struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Variants   int    `json:"variants"`
	Synced     int    `json:"synced"`
	Thumbnail  string `json:"thumbnail_url,omitempty"`
}

// SyncProductDetail is a single product with its full variant list.
type SyncProductDetail struct {
	SyncProduct  SyncProduct   `json:"sync_product"`
	SyncVariants []SyncVariant `json:"sync_variants"`
}

// SyncVariant combines a base product template with one concrete
// printable variant (color/size/etc.).
type SyncVariant struct {
	ID            int64             `json:"id"`
	ExternalID    string            `json:"external_id"`
	SyncProductID int64             `json:"sync_product_id"`
	Name          string            `json:"name"`
	Synced        bool              `json:"synced"`
	VariantID     int64             `json:"variant_id"`
	RetailPrice   string            `json:"retail_price"`
	Currency      string            `json:"currency"`
	Product       VariantProductRef `json:"product"`
	Files         []File            `json:"files"`
}

// SKU derives the deterministic local SKU for this sync variant.
func (v SyncVariant) SKU() string {
	return fmt.Sprintf("PF-%d-%d", v.Product.ProductID, v.Product.VariantID)
}

// VariantProductRef identifies the catalog product/variant pair backing a
// sync variant.
type VariantProductRef struct {
	VariantID int64  `json:"variant_id"`
	ProductID int64  `json:"product_id"`
	Image     string `json:"image,omitempty"`
	Name      string `json:"name,omitempty"`
}

// File is an asset descriptor attached to a sync variant, tagged by
// purpose (e.g. "preview", "default").
type File struct {
	ID         int64  `json:"id"`
	Type       string `json:"type"`
	URL        string `json:"url,omitempty"`
	Filename   string `json:"filename"`
	PreviewURL string `json:"preview_url"`
	Thumbnail  string `json:"thumbnail_url,omitempty"`
}

// VariantParameters is the attribute parameter bag of a catalog variant
// detail (size, color and other printable options).
type VariantParameters map[string]interface{}

// Get returns the named parameter rendered as a string.
func (p VariantParameters) Get(name string) (string, bool) {
	raw, ok := p[name]
	if !ok || raw == nil {
		return "", false
	}
	switch v := raw.(type) {
	case string:
		return v, v != ""
	case float64:
		return fmt.Sprintf("%v", v), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}

// VariantDetail is the response of GET products/variant/{id}.
type VariantDetail struct {
	Variant VariantParameters `json:"variant"`
}

// StoreInfo describes the Printful store an API key belongs to.
type StoreInfo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Type     string `json:"type,omitempty"`
}

// Recipient is the shipping recipient block of order and rate requests.
type Recipient struct {
	Name        string `json:"name,omitempty"`
	Company     string `json:"company,omitempty"`
	Address1    string `json:"address1"`
	City        string `json:"city"`
	StateCode   string `json:"state_code,omitempty"`
	CountryCode string `json:"country_code"`
	Zip         string `json:"zip"`
}

// OrderItem is a fulfillment line item referencing a sync variant by its
// external ID.
type OrderItem struct {
	ExternalVariantID string `json:"external_variant_id"`
	Quantity          int    `json:"quantity"`
	Name              string `json:"name,omitempty"`
	RetailPrice       string `json:"retail_price,omitempty"`
	SKU               string `json:"sku,omitempty"`
}

// OrderRequest is a fulfillment order submission.
type OrderRequest struct {
	// ExternalID correlates the Printful order with the local shipment.
	ExternalID string      `json:"external_id"`
	Recipient  Recipient   `json:"recipient"`
	Items      []OrderItem `json:"items"`
	Shipping   string      `json:"shipping,omitempty"`
}

// OrderResult is the created Printful order.
type OrderResult struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
}

// ShippingRateRequest asks for shipping options for a recipient and items.
type ShippingRateRequest struct {
	Recipient Recipient   `json:"recipient"`
	Items     []OrderItem `json:"items"`
}

// ShippingRate is one quoted shipping option.
type ShippingRate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Rate     string `json:"rate"`
	Currency string `json:"currency"`
}

// WebhookInfo is the current remote webhook configuration.
type WebhookInfo struct {
	URL   string   `json:"url"`
	Types []string `json:"types"`
}

// WebhookConfig sets the webhook callback URL and subscribed event types.
type WebhookConfig struct {
	URL   string   `json:"url"`
	Types []string `json:"types"`
}
