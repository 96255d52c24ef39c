// Package dto contains data transfer objects.
package dto

// APIResponse represents a standard API response wrapper.
type APIResponse[T any] struct {
	// Success indicates if the API call was successful.
	Success bool `json:"success"`

	// Data contains the payload of the response.
	Data T `json:"data,omitempty"`

	// Error contains error details if the API call was not successful.
	Error *APIError `json:"error,omitempty"`
}

// APIError represents error details in an API response.
type APIError struct {
	// Code is the error code.
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Details provides additional information about the error.
	Details map[string]any `json:"details,omitempty"`
}

// NewSuccessResponse creates a new API success response.
//
// Parameters:
//   - data: The response data
//
// Returns:
//   - APIResponse[T]: The success response wrapper
func NewSuccessResponse[T any](data T) APIResponse[T] {
	return APIResponse[T]{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates a new API error response.
//
// Parameters:
//   - code: The error code
//   - message: The error message
//
// Returns:
//   - APIResponse[T]: The error response wrapper
func NewErrorResponse[T any](code, message string) APIResponse[T] {
	return APIResponse[T]{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Status indicates the health status.
	Status string `json:"status"`

	// Version is the application version.
	Version string `json:"version"`

	// Uptime is how long the service has been running.
	Uptime string `json:"uptime"`

	// Checks contains individual component health check
	Checks map[string]HealthCheckResult `json:"checks"`
}

// HealthCheckResult represents a single health check result.
type HealthCheckResult struct {
	// Status indicates the health status of the component.
	Status string `json:"status"`

	// Message provides additional information about the health status.
	Message string `json:"message,omitempty"`
}
