package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the upload and analysis pipelines.
//
// Handlers map these to HTTP status codes; internal callers test them
// with errors.Is so wrapped context (file name, attempt counts) can be
// added freely along the way.
var (
	// ErrUnsupportedFormat is returned before any parse attempt when the
	// uploaded file extension is not one of .csv, .xlsx, .xls.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrNoReadableTable is returned after every (encoding, separator,
	// skip-rows) combination failed to surface the required columns.
	ErrNoReadableTable = errors.New("no readable table found")

	// ErrSymbolNotFound marks a ticker the quote provider could not resolve.
	// It is accumulated per symbol and never aborts a batch.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrStoreUnavailable is returned when the portfolio store connection
	// could not be established or was lost.
	ErrStoreUnavailable = errors.New("portfolio store unavailable")

	// ErrVersionNotFound is returned when a requested portfolio version
	// does not exist in the store.
	ErrVersionNotFound = errors.New("portfolio version not found")
)

// ProviderError represents a failed call to an external quote provider.
//
// The StatusCode distinguishes the two classes the analyzer cares about:
//   - 404-class responses mean "this ticker does not exist" and are
//     non-fatal: the symbol joins the not-found set and the batch goes on.
//   - Anything else (429, 5xx, or StatusCode == 0 for transport-level
//     failures) is fatal for the remaining batch.
type ProviderError struct {
	Symbol     string
	StatusCode int // 0 when the request never produced an HTTP response
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider request for %s failed with status %d: %v", e.Symbol, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider request for %s failed: %v", e.Symbol, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Fatal reports whether this error must abort the remaining batch.
// Only a plain HTTP 404 is survivable; everything else stops processing.
func (e *ProviderError) Fatal() bool { return e.StatusCode != 404 }

// IsFatalProvider reports whether err carries a batch-fatal provider failure.
// A nil error and the not-found sentinel are both non-fatal.
func IsFatalProvider(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Fatal()
	}
	return false
}
