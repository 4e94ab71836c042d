package errors

import "net/http"

var (
	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrValidationFailed = New(
		"VALIDATION_FAILED",
		"Request validation failed",
		http.StatusBadRequest,
	)

	ErrEmptyContent = New(
		"EMPTY_CONTENT",
		"Editor content cannot be empty",
		http.StatusBadRequest,
	)

	ErrInvalidAttachment = New(
		"INVALID_ATTACHMENT",
		"Only .pdf attachments are accepted",
		http.StatusBadRequest,
	)

	ErrReportNotFound = New(
		"REPORT_NOT_FOUND",
		"Report not found",
		http.StatusNotFound,
	)

	ErrSessionIDRequired = New(
		"SESSION_ID_REQUIRED",
		"sessionId is required",
		http.StatusBadRequest,
	)

	ErrResponseRequired = New(
		"RESPONSE_REQUIRED",
		"response is required",
		http.StatusBadRequest,
	)

	ErrChatResponseNotFound = New(
		"CHAT_RESPONSE_NOT_FOUND",
		"No response found for this sessionId",
		http.StatusNotFound,
	)

	ErrUnknownAdminLevel = New(
		"UNKNOWN_ADMIN_LEVEL",
		"Unknown administrative level",
		http.StatusBadRequest,
	)

	ErrGeodataUnavailable = New(
		"GEODATA_UNAVAILABLE",
		"Failed to load administrative geography",
		http.StatusInternalServerError,
	)

	ErrUpstream = New(
		"UPSTREAM_ERROR",
		"Upstream service failed",
		http.StatusBadGateway,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Authentication required",
		http.StatusUnauthorized,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrStorageError = New(
		"STORAGE_ERROR",
		"Attachment storage failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
