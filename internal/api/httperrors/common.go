package httperrors

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github/chapool/dex-wallet/internal/session"
	"github/chapool/dex-wallet/internal/wallet/adapter"
	"github/chapool/dex-wallet/internal/wallet/address"
	"github/chapool/dex-wallet/internal/wallet/evm"
)

// Public error types returned in the "type" field of error responses.
const (
	TypeGeneric               = "generic"
	TypeSeedGenerationFailed  = "SEED_GENERATION_FAILED"
	TypeInvalidAddress        = "INVALID_ADDRESS"
	TypeNoSession             = "NO_SESSION"
	TypeWatchOnly             = "WATCH_ONLY"
	TypeNoTransactionSource   = "NO_TRANSACTION_SOURCE"
	TypeInvalidRequestPayload = "INVALID_REQUEST_PAYLOAD"
)

var (
	ErrBadRequestSeedGenerationFailed = NewHTTPError(http.StatusBadRequest, TypeSeedGenerationFailed, "The given words do not form a valid mnemonic.")
	ErrBadRequestInvalidAddress       = NewHTTPError(http.StatusBadRequest, TypeInvalidAddress, "The given address is not a valid hex address.")
	ErrConflictNoSession              = NewHTTPError(http.StatusConflict, TypeNoSession, "No wallet session is active.")
	ErrForbiddenWatchOnly             = NewHTTPError(http.StatusForbidden, TypeWatchOnly, "The session is watch-only.")
	ErrServiceUnavailableNoTxSource   = NewHTTPError(http.StatusServiceUnavailable, TypeNoTransactionSource, "No transaction source is configured for this chain.")
)

// HTTPError is the JSON body of every error response.
type HTTPError struct {
	Code   int    `json:"status"`
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

func NewHTTPError(code int, errorType string, title string) *HTTPError {
	return &HTTPError{
		Code:  code,
		Type:  errorType,
		Title: title,
	}
}

func NewHTTPErrorWithDetail(code int, errorType string, title string, detail string) *HTTPError {
	return &HTTPError{
		Code:   code,
		Type:   errorType,
		Title:  title,
		Detail: detail,
	}
}

func (e *HTTPError) Error() string {
	if len(e.Detail) > 0 {
		return fmt.Sprintf("HTTPError %d (%s): %s - %s", e.Code, e.Type, e.Title, e.Detail)
	}

	return fmt.Sprintf("HTTPError %d (%s): %s", e.Code, e.Type, e.Title)
}

// FromDomainError maps the known domain errors to their public counterpart.
// It returns nil for errors without a mapping.
func FromDomainError(err error) *HTTPError {
	switch {
	case errors.Is(err, session.ErrSeedGenerationFailed):
		return ErrBadRequestSeedGenerationFailed
	case errors.Is(err, address.ErrInvalidAddress):
		return ErrBadRequestInvalidAddress
	case errors.Is(err, adapter.ErrWatchOnly):
		return ErrForbiddenWatchOnly
	case errors.Is(err, evm.ErrNoTransactionSource):
		return ErrServiceUnavailableNoTxSource
	case errors.Is(err, evm.ErrClosed):
		return ErrConflictNoSession
	default:
		return nil
	}
}
