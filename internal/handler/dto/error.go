// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/cadastra/cadastra/internal/validation"

// ErrorBody carries a machine-readable code and a human message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope for non-validation API errors.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ValidationErrorResponse carries field-path-keyed validation issues.
type ValidationErrorResponse struct {
	Errors validation.Issues `json:"errors"`
}
