package printful

// Webhook event types this integration subscribes to.
const (
	WebhookPackageShipped = "package_shipped"
)

// WebhookEvent is the inbound webhook payload envelope. Printful POSTs
// JSON with a type discriminator and event-specific blocks under "data".
type WebhookEvent struct {
	Type    string      `json:"type"`
	Created int64       `json:"created"`
	Retries int         `json:"retries,omitempty"`
	Data    WebhookData `json:"data"`
}

// WebhookData holds the event-specific payload blocks.
type WebhookData struct {
	Order    *WebhookOrder    `json:"order,omitempty"`
	Shipment *WebhookShipment `json:"shipment,omitempty"`
}

// WebhookOrder identifies the Printful order an event refers to. The
// external ID is the local shipment ID submitted at order creation.
type WebhookOrder struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"external_id"`
}

// WebhookShipment carries tracking data of a shipped package.
type WebhookShipment struct {
	ID             int64  `json:"id"`
	Created        int64  `json:"created"`
	Carrier        string `json:"carrier"`
	Service        string `json:"service"`
	TrackingNumber string `json:"tracking_number"`
	TrackingURL    string `json:"tracking_url,omitempty"`
}
