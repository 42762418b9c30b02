package client

import (
	"context"
	"errors"
	"strings"

	"github.com/kjstillabower/weather-planner-service/internal/forecast"
	"github.com/kjstillabower/weather-planner-service/internal/location"
)

// ErrorCategory is a stable label for error classification in metrics.
type ErrorCategory string

// Error category constants used as metric labels (planErrorsTotal).
const (
	ErrorCategoryTimeout          ErrorCategory = "timeout"
	ErrorCategoryNetwork          ErrorCategory = "network"
	ErrorCategoryFetchFailed      ErrorCategory = "fetch_failed"
	ErrorCategoryPermissionDenied ErrorCategory = "permission_denied"
	ErrorCategoryMalformedInput   ErrorCategory = "malformed_input"
	ErrorCategoryEmptyInput       ErrorCategory = "empty_input"
	ErrorCategoryParsing          ErrorCategory = "parsing"
	ErrorCategoryValidation       ErrorCategory = "validation"
	ErrorCategoryUnknown          ErrorCategory = "unknown"
)

// CategorizeError maps an error to a stable ErrorCategory for metrics.
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrorCategoryTimeout
	}

	if errors.Is(err, location.ErrPermissionDenied) {
		return ErrorCategoryPermissionDenied
	}

	if errors.Is(err, forecast.ErrMalformedInput) {
		return ErrorCategoryMalformedInput
	}

	if errors.Is(err, forecast.ErrEmptyInput) {
		return ErrorCategoryEmptyInput
	}

	if errors.Is(err, ErrFetchFailed) {
		return ErrorCategoryFetchFailed
	}

	errStr := err.Error()
	if strings.Contains(errStr, "network") || strings.Contains(errStr, "connection") ||
		strings.Contains(errStr, "connection refused") {
		return ErrorCategoryNetwork
	}

	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "context deadline exceeded") {
		return ErrorCategoryTimeout
	}

	if strings.Contains(errStr, "parse") || strings.Contains(errStr, "unmarshal") {
		return ErrorCategoryParsing
	}

	if strings.Contains(errStr, "invalid") || strings.Contains(errStr, "validation") {
		return ErrorCategoryValidation
	}

	return ErrorCategoryUnknown
}
