package printful

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// SyncProducts lists one page of the store's sync products.
func (c *Client) SyncProducts(ctx context.Context, offset, limit int) ([]SyncProduct, *Paging, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))

	envelope, err := c.Call(ctx, OpSyncProducts, Params{Query: query})
	if err != nil {
		return nil, nil, err
	}

	var products []SyncProduct
	if err := json.Unmarshal(envelope.Result, &products); err != nil {
		return nil, nil, fmt.Errorf("failed to parse sync products: %w", err)
	}
	return products, envelope.Paging, nil
}

// SyncProductDetail fetches one sync product with its full variant list,
// addressed by its external ID.
func (c *Client) SyncProductDetail(ctx context.Context, externalID string) (*SyncProductDetail, error) {
	envelope, err := c.Call(ctx, OpSyncProducts, Params{PathSuffix: "@" + externalID})
	if err != nil {
		return nil, err
	}

	var detail SyncProductDetail
	if err := json.Unmarshal(envelope.Result, &detail); err != nil {
		return nil, fmt.Errorf("failed to parse sync product detail: %w", err)
	}
	return &detail, nil
}

// ProductsVariant fetches the catalog variant detail holding the attribute
// parameter bag (size, color, ...).
func (c *Client) ProductsVariant(ctx context.Context, variantID int64) (*VariantDetail, error) {
	envelope, err := c.Call(ctx, OpProductsVariant, Params{PathSuffix: strconv.FormatInt(variantID, 10)})
	if err != nil {
		return nil, err
	}

	var detail VariantDetail
	if err := json.Unmarshal(envelope.Result, &detail); err != nil {
		return nil, fmt.Errorf("failed to parse variant detail: %w", err)
	}
	return &detail, nil
}

// StoreInfo fetches the store the active API key belongs to. Used as a
// connection/credential validation check.
func (c *Client) StoreInfo(ctx context.Context) (*StoreInfo, error) {
	envelope, err := c.Call(ctx, OpStoreInfo, Params{})
	if err != nil {
		return nil, err
	}

	var info StoreInfo
	if err := json.Unmarshal(envelope.Result, &info); err != nil {
		return nil, fmt.Errorf("failed to parse store info: %w", err)
	}
	return &info, nil
}

// ShippingRates computes shipping options for a recipient and item set.
func (c *Client) ShippingRates(ctx context.Context, req *ShippingRateRequest) ([]ShippingRate, error) {
	envelope, err := c.Call(ctx, OpShippingRates, Params{Body: req})
	if err != nil {
		return nil, err
	}

	var rates []ShippingRate
	if err := json.Unmarshal(envelope.Result, &rates); err != nil {
		return nil, fmt.Errorf("failed to parse shipping rates: %w", err)
	}
	return rates, nil
}

// CreateOrder submits a fulfillment order. With confirm false the order is
// left as a draft pending manual review. update_existing is always set so
// that resubmitting the same external ID is idempotent remotely.
func (c *Client) CreateOrder(ctx context.Context, req *OrderRequest, confirm bool) (*OrderResult, error) {
	query := url.Values{}
	query.Set("update_existing", "1")
	if confirm {
		query.Set("confirm", "1")
	} else {
		query.Set("confirm", "0")
	}

	envelope, err := c.Call(ctx, OpCreateOrder, Params{Query: query, Body: req})
	if err != nil {
		return nil, err
	}

	var result OrderResult
	if err := json.Unmarshal(envelope.Result, &result); err != nil {
		return nil, fmt.Errorf("failed to parse order result: %w", err)
	}
	return &result, nil
}

// GetWebhooks returns the remote webhook configuration.
func (c *Client) GetWebhooks(ctx context.Context) (*WebhookInfo, error) {
	envelope, err := c.Call(ctx, OpGetWebhooks, Params{})
	if err != nil {
		return nil, err
	}

	var info WebhookInfo
	if err := json.Unmarshal(envelope.Result, &info); err != nil {
		return nil, fmt.Errorf("failed to parse webhook info: %w", err)
	}
	return &info, nil
}

// SetWebhooks subscribes the given callback URL to the given event types.
func (c *Client) SetWebhooks(ctx context.Context, cfg WebhookConfig) error {
	_, err := c.Call(ctx, OpSetWebhooks, Params{Body: cfg})
	return err
}

// UnsetWebhooks removes the remote webhook configuration.
func (c *Client) UnsetWebhooks(ctx context.Context) error {
	_, err := c.Call(ctx, OpUnsetWebhooks, Params{})
	return err
}
