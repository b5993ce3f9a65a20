package handlers

const (
	SessionCookieName = "session_id"
	FlashCookieName   = "flash"

	ErrInvalidFormData     = "Invalid form data"
	ErrInternalServerError = "Internal server error"
)
