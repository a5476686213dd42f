package errors

import (
	"encoding/json"
	"fmt"
)

// ErrConfiguration signals missing or inconsistent integration configuration,
// e.g. an unset API key or a product bundle with no mapped Printful store.
// Not retryable without operator intervention.
type ErrConfiguration struct {
	Message string
}

func (e *ErrConfiguration) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// ErrTransport wraps network-level failures (DNS, TLS, timeouts) talking to
// the Printful API. The step that hit it can be retried later as a whole.
type ErrTransport struct {
	Op  string
	Err error
}

func (e *ErrTransport) Error() string {
	return fmt.Sprintf("printful transport error during %s: %v", e.Op, e.Err)
}

func (e *ErrTransport) Unwrap() error {
	return e.Err
}

// ErrAPI is a non-2xx response from the Printful API. It carries the parsed
// error message and the original request parameters for diagnostics.
type ErrAPI struct {
	Message       string
	StatusCode    int
	RequestParams interface{}
}

func (e *ErrAPI) Error() string {
	return e.Message
}

// FullInfo returns the message together with the originating request payload.
func (e *ErrAPI) FullInfo() string {
	info := e.Message
	if e.RequestParams != nil {
		if raw, err := json.Marshal(e.RequestParams); err == nil {
			info += "\nRequest:\n" + string(raw)
		}
	}
	return info
}

// ErrAsset signals a variant image fetch or write failure. Recoverable at
// the granularity of the single mapped field.
type ErrAsset struct {
	URL string
	Err error
}

func (e *ErrAsset) Error() string {
	return fmt.Sprintf("variant asset error (%s): %v", e.URL, e.Err)
}

func (e *ErrAsset) Unwrap() error {
	return e.Err
}

// ErrNotFound signals a missing local record.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}
