// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"affiliate-tracker-api/core/errors"
	"github.com/danielgtaylor/huma/v2"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	if errors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	if errors.IsConflict(err) {
		return huma.Error409Conflict(err.Error())
	}

	if errors.IsSourceUnavailable(err) {
		// Upstream publication sources are retryable
		return huma.Error503ServiceUnavailable("Publication source unavailable", err)
	}

	if errors.IsReportWrite(err) {
		return huma.Error500InternalServerError("Report generation failed", err)
	}

	// Default to internal server error for unknown errors
	return huma.Error500InternalServerError("Internal server error", err)
}
