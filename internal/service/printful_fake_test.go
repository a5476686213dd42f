package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/scottsawyer/commerce-printful/internal/printful"
)

// fakePrintful is an httptest-backed stand-in for the Printful API.
type fakePrintful struct {
	mu sync.Mutex

	products      []printful.SyncProduct
	details       map[string]*printful.SyncProductDetail
	variantParams map[int64]printful.VariantParameters
	rates         []printful.ShippingRate

	// detailStatus, when non-zero, fails every product detail fetch.
	detailStatus int
	// detailDropConn closes the TCP connection on detail fetches without
	// writing a response, surfacing as a transport error to the client.
	detailDropConn bool
	// ratesStatus/ratesMessage, when set, fail the rate call with an
	// API error envelope.
	ratesStatus  int
	ratesMessage string

	storeInfo *printful.StoreInfo

	orderRequests []recordedOrder
	webhookSets   []printful.WebhookConfig
	webhookUnsets int
	detailCalls   int
	variantCalls  int

	server *httptest.Server
}

type recordedOrder struct {
	Query   url.Values
	Request printful.OrderRequest
	APIKey  string
}

func newFakePrintful(t *testing.T) *fakePrintful {
	t.Helper()
	f := &fakePrintful{
		details:       make(map[string]*printful.SyncProductDetail),
		variantParams: make(map[int64]printful.VariantParameters),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakePrintful) URL() string { return f.server.URL }

func (f *fakePrintful) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	switch {
	case path == "/sync/products":
		f.handleList(w, r)
	case strings.HasPrefix(path, "/sync/products/"):
		f.handleDetail(w, r)
	case strings.HasPrefix(path, "/products/variant/"):
		f.handleVariant(w, r)
	case path == "/shipping/rates":
		f.handleRates(w, r)
	case path == "/orders":
		f.handleOrders(w, r)
	case path == "/store":
		f.handleStore(w, r)
	case path == "/webhooks":
		f.handleWebhooks(w, r)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

func (f *fakePrintful) handleList(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = len(f.products)
	}

	page := []printful.SyncProduct{}
	for i := offset; i < len(f.products) && i < offset+limit; i++ {
		page = append(page, f.products[i])
	}

	writeResult(w, map[string]interface{}{
		"code":   200,
		"result": page,
		"paging": map[string]int{"total": len(f.products), "offset": offset, "limit": limit},
	})
}

func (f *fakePrintful) handleDetail(w http.ResponseWriter, r *http.Request) {
	f.detailCalls++
	if f.detailDropConn {
		if hijacker, ok := w.(http.Hijacker); ok {
			if conn, _, err := hijacker.Hijack(); err == nil {
				conn.Close()
			}
		}
		return
	}
	if f.detailStatus != 0 {
		writeError(w, f.detailStatus, "Product detail unavailable")
		return
	}

	ref := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/sync/products/"), "@")
	detail, ok := f.details[ref]
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeResult(w, map[string]interface{}{"code": 200, "result": detail})
}

func (f *fakePrintful) handleVariant(w http.ResponseWriter, r *http.Request) {
	f.variantCalls++
	id, _ := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/products/variant/"), 10, 64)
	params, ok := f.variantParams[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeResult(w, map[string]interface{}{
		"code":   200,
		"result": map[string]interface{}{"variant": params},
	})
}

func (f *fakePrintful) handleRates(w http.ResponseWriter, r *http.Request) {
	if f.ratesStatus != 0 {
		writeError(w, f.ratesStatus, f.ratesMessage)
		return
	}
	writeResult(w, map[string]interface{}{"code": 200, "result": f.rates})
}

func (f *fakePrintful) handleOrders(w http.ResponseWriter, r *http.Request) {
	var req printful.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed order")
		return
	}
	key, _, _ := r.BasicAuth()
	f.orderRequests = append(f.orderRequests, recordedOrder{
		Query:   r.URL.Query(),
		Request: req,
		APIKey:  key,
	})
	writeResult(w, map[string]interface{}{
		"code": 200,
		"result": printful.OrderResult{
			ID:         int64(1000 + len(f.orderRequests)),
			ExternalID: req.ExternalID,
			Status:     "pending",
		},
	})
}

func (f *fakePrintful) handleStore(w http.ResponseWriter, r *http.Request) {
	if f.storeInfo == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeResult(w, map[string]interface{}{"code": 200, "result": f.storeInfo})
}

func (f *fakePrintful) handleWebhooks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodDelete:
		f.webhookUnsets++
		writeResult(w, map[string]interface{}{"code": 200, "result": printful.WebhookInfo{}})
	case http.MethodPost:
		var cfg printful.WebhookConfig
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			writeError(w, http.StatusBadRequest, "Malformed webhook config")
			return
		}
		f.webhookSets = append(f.webhookSets, cfg)
		writeResult(w, map[string]interface{}{"code": 200, "result": printful.WebhookInfo{URL: cfg.URL, Types: cfg.Types}})
	default:
		writeResult(w, map[string]interface{}{"code": 200, "result": printful.WebhookInfo{}})
	}
}

func (f *fakePrintful) recordedOrders() []recordedOrder {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedOrder, len(f.orderRequests))
	copy(out, f.orderRequests)
	return out
}

func writeResult(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"code":%d,"error":{"message":%q}}`, status, message)
}
