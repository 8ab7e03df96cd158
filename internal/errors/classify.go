package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
)

// error categories, used in logs only; users always see one generic message
const (
	CategoryNetwork    = "network"
	CategoryTimeout    = "timeout"
	CategoryCanceled   = "canceled"
	CategoryDecode     = "decode"
	CategoryStatus     = "status"
	CategoryValidation = "validation"
	CategoryNotFound   = "not_found"
	CategoryUnknown    = "unknown"
)

// Classify names the broad kind of err for log fields.
func Classify(err error) string {
	if err == nil {
		return CategoryUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTimeout
	}

	if errors.Is(err, context.Canceled) {
		return CategoryCanceled
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return CategoryTimeout
		}
		return CategoryNetwork
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return CategoryDecode
	}

	// fallback to string matching for wrapped or foreign errors
	errMsg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline"):
		return CategoryTimeout
	case strings.Contains(errMsg, "returned status"):
		return CategoryStatus
	case strings.Contains(errMsg, "failed to parse"):
		return CategoryDecode
	case strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "dial") ||
		strings.Contains(errMsg, "network"):
		return CategoryNetwork
	case strings.Contains(errMsg, "not found"):
		return CategoryNotFound
	case strings.Contains(errMsg, "validation") || strings.Contains(errMsg, "binding") ||
		strings.Contains(errMsg, "invalid") || strings.Contains(errMsg, "required"):
		return CategoryValidation
	default:
		return CategoryUnknown
	}
}
