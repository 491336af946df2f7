package router

import (
	"net"
	"net/http"

	"github.com/chestno/chestno/internal/errors"
	"github.com/chestno/chestno/internal/httpclient"
	"github.com/chestno/chestno/internal/logger"
)

// ShouldRetry reports whether a delivery error is worth another attempt.
// Transient upstream failures and timeouts retry; endpoint rejections and
// business errors do not.
func ShouldRetry(logger *logger.Logger, err error) bool {
	if httpErr, ok := httpclient.IsHTTPError(err); ok {
		switch httpErr.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			logger.Debugw("retrying due to HTTP error",
				"status_code", httpErr.StatusCode,
				"error", httpErr,
			)
			return true
		}
		logger.Debugw("non-retryable HTTP error",
			"status_code", httpErr.StatusCode,
			"error", httpErr,
		)
		return false
	}

	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		logger.Debugw("retrying due to network timeout", "error", netErr)
		return true
	}

	if errors.IsValidation(err) ||
		errors.IsNotFound(err) ||
		errors.IsPermissionDenied(err) {
		return false
	}

	return true
}
