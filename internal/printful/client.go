package printful

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/scottsawyer/commerce-printful/pkg/errors"
)

// DefaultBaseURL is the production Printful API endpoint.
const DefaultBaseURL = "https://api.printful.com/"

// Client is a typed Printful REST client. A client instance is bound to a
// single API key; use WithKey to derive a client scoped to another store's
// credentials instead of mutating a shared instance.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Printful API client without credentials.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// WithKey returns a copy of the client bound to the given API key.
func (c *Client) WithKey(apiKey string) *Client {
	clone := *c
	clone.apiKey = apiKey
	return &clone
}

// Params carries per-call request parameters.
type Params struct {
	// PathSuffix is appended to the operation path, e.g. a product ID.
	PathSuffix string
	// Query parameters. For GET operations this is the only payload.
	Query url.Values
	// Body is JSON-encoded for non-GET operations.
	Body interface{}
}

// Envelope is the standard Printful success response wrapper.
type Envelope struct {
	Code   int             `json:"code"`
	Result json.RawMessage `json:"result"`
	Paging *Paging         `json:"paging,omitempty"`
}

// Paging describes result pagination of list operations.
type Paging struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Call performs a single API operation.
func (c *Client) Call(ctx context.Context, op Operation, p Params) (*Envelope, error) {
	if c.apiKey == "" {
		return nil, &errors.ErrConfiguration{Message: "API key not set"}
	}

	ep, ok := endpoints[op]
	if !ok {
		return nil, &errors.ErrConfiguration{Message: fmt.Sprintf("unsupported operation %q", op)}
	}

	uri := c.baseURL + ep.path
	if p.PathSuffix != "" {
		uri += "/" + p.PathSuffix
	}
	if len(p.Query) > 0 {
		uri += "?" + p.Query.Encode()
	}

	var body io.Reader
	if ep.method != http.MethodGet && p.Body != nil {
		jsonData, err := json.Marshal(p.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, ep.method, uri, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.apiKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errors.ErrTransport{Op: string(op), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.ErrTransport{Op: string(op), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := "Unknown error"
		var errResp errorEnvelope
		if err := json.Unmarshal(raw, &errResp); err == nil && errResp.Error.Message != "" {
			message = errResp.Error.Message
		}
		c.logger.Warn("Printful API error",
			zap.String("operation", string(op)),
			zap.Int("status", resp.StatusCode),
			zap.String("message", message),
		)
		return nil, &errors.ErrAPI{
			Message:       message,
			StatusCode:    resp.StatusCode,
			RequestParams: c.requestInfo(op, p),
		}
	}

	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &envelope, nil
}

// requestInfo captures the original request parameters for diagnostics.
func (c *Client) requestInfo(op Operation, p Params) map[string]interface{} {
	info := map[string]interface{}{
		"operation": string(op),
		"path":      endpoints[op].path,
	}
	if p.PathSuffix != "" {
		info["path_suffix"] = p.PathSuffix
	}
	if len(p.Query) > 0 {
		info["query"] = p.Query.Encode()
	}
	if p.Body != nil {
		info["body"] = p.Body
	}
	return info
}
