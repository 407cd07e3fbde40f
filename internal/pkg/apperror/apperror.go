package apperror

// AppError carries an HTTP status code alongside a user-facing message.
// Domain packages declare their failure modes as package-level AppError
// values so handlers can map them to responses without switch tables.
type AppError struct {
	Code    int    // HTTP status code (e.g., 400, 404, 409)
	Message string // User-facing error message
}

func (e *AppError) Error() string {
	return e.Message
}

// New creates an AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}
