package errors

// Error codes for standardized error responses
const (
	// Authentication errors
	ErrCodeUnauthorized           = "unauthorized"
	ErrCodeInvalidToken           = "invalid_token"
	ErrCodeAuthenticationRequired = "authentication_required"

	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"

	// Resource errors
	ErrCodeNotFound      = "not_found"
	ErrCodeAlreadyExists = "already_exists"
	ErrCodeUserNotFound  = "user_not_found"

	// Business logic errors
	ErrCodeRegistrationFailed  = "registration_failed"
	ErrCodeLoginFailed         = "login_failed"
	ErrCodeInvalidCollectionID = "invalid_collection_id"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
)
